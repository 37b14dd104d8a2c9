// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"bytes"
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/meterio/stakevest/vault"
)

// StakeBalance accumulates the principal one caller has deposited into one pool.
// It only enforces the per-caller min/max bounds and is never reduced by claims.
type StakeBalance struct {
	Key    vault.Bytes32
	Amount *big.Int
}

// BalanceKey derives the (pool, caller) mapping key.
func BalanceKey(poolHash vault.Bytes32, addr vault.Address) vault.Bytes32 {
	return vault.Blake2b(poolHash.Bytes(), addr.Bytes())
}

func (b *StakeBalance) ToString() string {
	return fmt.Sprintf("StakeBalance(%v) amount=%v", b.Key, b.Amount)
}

// BalanceList is kept sorted by key so the RLP encoding is deterministic.
type BalanceList struct {
	balances []*StakeBalance
}

func newBalanceList(balances []*StakeBalance) *BalanceList {
	if balances == nil {
		balances = make([]*StakeBalance, 0)
	}
	sort.SliceStable(balances, func(i, j int) bool {
		return bytes.Compare(balances[i].Key.Bytes(), balances[j].Key.Bytes()) <= 0
	})
	return &BalanceList{balances: balances}
}

func (l *BalanceList) indexOf(key vault.Bytes32) (int, int) {
	if len(l.balances) <= 0 {
		return -1, 0
	}
	lo := 0
	hi := len(l.balances)
	for lo < hi {
		m := (lo + hi) / 2
		cmp := bytes.Compare(key.Bytes(), l.balances[m].Key.Bytes())
		if cmp < 0 {
			hi = m
		} else if cmp > 0 {
			lo = m + 1
		} else {
			return m, -1
		}
	}
	return -1, hi
}

// Get returns the accumulated amount under key, zero if absent.
func (l *BalanceList) Get(key vault.Bytes32) *big.Int {
	index, _ := l.indexOf(key)
	if index < 0 {
		return new(big.Int)
	}
	return new(big.Int).Set(l.balances[index].Amount)
}

// Set stores amount under key, inserting in sorted order when absent.
func (l *BalanceList) Set(key vault.Bytes32, amount *big.Int) {
	index, insertIndex := l.indexOf(key)
	if index >= 0 {
		l.balances[index].Amount = amount
		return
	}
	entry := &StakeBalance{Key: key, Amount: amount}
	if len(l.balances) == 0 {
		l.balances = append(l.balances, entry)
		return
	}
	newList := make([]*StakeBalance, insertIndex)
	copy(newList, l.balances[:insertIndex])
	newList = append(newList, entry)
	newList = append(newList, l.balances[insertIndex:]...)
	l.balances = newList
}

func (l *BalanceList) Count() int {
	return len(l.balances)
}

func (l *BalanceList) ToString() string {
	if l == nil || len(l.balances) == 0 {
		return "BalanceList (size:0)"
	}
	s := []string{fmt.Sprintf("BalanceList (size:%v) {", len(l.balances))}
	for i, b := range l.balances {
		s = append(s, fmt.Sprintf("  %d.%v", i, b.ToString()))
	}
	s = append(s, "}")
	return strings.Join(s, "\n")
}
