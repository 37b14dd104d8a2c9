// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package env

import (
	"github.com/meterio/stakevest/vault"
)

// Env is the per-call execution context of a ledger operation: the authenticated
// caller identity, the externally sampled wall-clock time and the events collected
// while the operation runs. Time is never cached across calls.
type Env struct {
	caller vault.Address
	now    uint64

	events []interface{}
}

func New(caller vault.Address, now uint64) *Env {
	return &Env{
		caller: caller,
		now:    now,
		events: make([]interface{}, 0),
	}
}

func (e *Env) Caller() vault.Address { return e.caller }
func (e *Env) Now() uint64           { return e.now }

func (e *Env) AddEvent(ev interface{}) {
	e.events = append(e.events, ev)
}

func (e *Env) Events() []interface{} {
	return e.events
}
