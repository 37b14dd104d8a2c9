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

// Position is a single stake instance: principal plus reward, fixed at deposit
// time, maturing at UnlockTime. Positions are removed on claim and never mutated.
type Position struct {
	UnlockTime  uint64
	TotalAmount *big.Int
}

func (p *Position) Matured(now uint64) bool {
	return now > p.UnlockTime
}

func (p *Position) ToString() string {
	return fmt.Sprintf("Position(unlock=%v, amount=%v)", p.UnlockTime, p.TotalAmount)
}

// Stakeholder holds one caller's open positions. Position order is not stable
// across claims: removal swaps the last element into the removed slot.
type Stakeholder struct {
	Addr      vault.Address
	Positions []*Position
}

func NewStakeholder(addr vault.Address) *Stakeholder {
	return &Stakeholder{
		Addr:      addr,
		Positions: make([]*Position, 0),
	}
}

func (s *Stakeholder) AddPosition(p *Position) {
	s.Positions = append(s.Positions, p)
}

func (s *Stakeholder) RemovePosition(idx uint32) {
	last := len(s.Positions) - 1
	if int(idx) > last {
		return
	}
	s.Positions[idx] = s.Positions[last]
	s.Positions = s.Positions[:last]
}

func (s *Stakeholder) ToString() string {
	ps := make([]string, 0, len(s.Positions))
	for _, p := range s.Positions {
		ps = append(ps, p.ToString())
	}
	return fmt.Sprintf("Stakeholder(%v) [%v]", s.Addr, strings.Join(ps, ", "))
}

// StakeholderList is kept sorted by address so the RLP encoding is deterministic.
type StakeholderList struct {
	holders []*Stakeholder
}

func newStakeholderList(holders []*Stakeholder) *StakeholderList {
	if holders == nil {
		holders = make([]*Stakeholder, 0)
	}
	sort.SliceStable(holders, func(i, j int) bool {
		return bytes.Compare(holders[i].Addr.Bytes(), holders[j].Addr.Bytes()) <= 0
	})
	return &StakeholderList{holders: holders}
}

func (l *StakeholderList) indexOf(addr vault.Address) (int, int) {
	// return values:
	//     first parameter: if found, the index of the item
	//     second parameter: if not found, the correct insert index of the item
	if len(l.holders) <= 0 {
		return -1, 0
	}
	lo := 0
	hi := len(l.holders)
	for lo < hi {
		m := (lo + hi) / 2
		cmp := bytes.Compare(addr.Bytes(), l.holders[m].Addr.Bytes())
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

func (l *StakeholderList) Get(addr vault.Address) *Stakeholder {
	index, _ := l.indexOf(addr)
	if index < 0 {
		return nil
	}
	return l.holders[index]
}

func (l *StakeholderList) Exist(addr vault.Address) bool {
	index, _ := l.indexOf(addr)
	return index >= 0
}

func (l *StakeholderList) Add(s *Stakeholder) {
	index, insertIndex := l.indexOf(s.Addr)
	if index < 0 {
		if len(l.holders) == 0 {
			l.holders = append(l.holders, s)
			return
		}
		newList := make([]*Stakeholder, insertIndex)
		copy(newList, l.holders[:insertIndex])
		newList = append(newList, s)
		newList = append(newList, l.holders[insertIndex:]...)
		l.holders = newList
	} else {
		l.holders[index] = s
	}
}

func (l *StakeholderList) Remove(addr vault.Address) {
	index, _ := l.indexOf(addr)
	if index >= 0 {
		l.holders = append(l.holders[:index], l.holders[index+1:]...)
	}
}

func (l *StakeholderList) Count() int {
	return len(l.holders)
}

func (l *StakeholderList) ToList() []Stakeholder {
	result := make([]Stakeholder, 0)
	for _, s := range l.holders {
		result = append(result, *s)
	}
	return result
}

func (l *StakeholderList) ToString() string {
	if l == nil || len(l.holders) == 0 {
		return "StakeholderList (size:0)"
	}
	s := []string{fmt.Sprintf("StakeholderList (size:%v) {", len(l.holders))}
	for i, h := range l.holders {
		s = append(s, fmt.Sprintf("  %d.%v", i, h.ToString()))
	}
	s = append(s, "}")
	return strings.Join(s, "\n")
}
