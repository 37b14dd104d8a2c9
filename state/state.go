// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"log/slog"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/meterio/stakevest/vault"
)

// State is keyed storage for the ledger engines. Values are raw encodings; the
// engines own the RLP schema of what lives under each key.
type State struct {
	db     *leveldb.DB
	logger *slog.Logger
}

// New opens persistent state at the given path.
func New(path string) (*State, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}
	return &State{db: db, logger: slog.Default().With("pkg", "state")}, nil
}

// NewMem creates state backed by an in-memory store.
func NewMem() *State {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		panic(err)
	}
	return &State{db: db, logger: slog.Default().With("pkg", "state")}
}

func (s *State) Close() error {
	return s.db.Close()
}

// DecodeStorage reads the raw value under key and hands it to fn. A missing key
// is handed over as an empty slice, not an error.
func (s *State) DecodeStorage(key vault.Bytes32, fn func(raw []byte) error) {
	raw, err := s.db.Get(key.Bytes(), nil)
	if err != nil && err != leveldb.ErrNotFound {
		s.logger.Warn("read storage failed", "key", key, "err", err)
		return
	}
	if err := fn(raw); err != nil {
		s.logger.Warn("decode storage failed", "key", key, "err", err)
	}
}

// EncodeStorage writes the value produced by fn under key.
func (s *State) EncodeStorage(key vault.Bytes32, fn func() ([]byte, error)) {
	raw, err := fn()
	if err != nil {
		s.logger.Warn("encode storage failed", "key", key, "err", err)
		return
	}
	if err := s.db.Put(key.Bytes(), raw, nil); err != nil {
		s.logger.Warn("write storage failed", "key", key, "err", err)
	}
}
