// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vesting

import (
	"bytes"
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/meterio/stakevest/vault"
)

// Vest is one linear-release grant: StartAmount becomes available right after
// StartDate and the release grows linearly to TotalAmount at EndDate. Claimed
// tracks the cumulative amount already withdrawn. Grants are never removed;
// a fully claimed grant just stays with zero claimable.
type Vest struct {
	StartAmount *big.Int
	TotalAmount *big.Int
	StartDate   uint64
	EndDate     uint64
	Claimed     *big.Int
}

func (v *Vest) ToString() string {
	return fmt.Sprintf("Vest(start=%v, total=%v, window=[%v,%v], claimed=%v)",
		v.StartAmount, v.TotalAmount, v.StartDate, v.EndDate, v.Claimed)
}

// Remainder is the unclaimed ceiling of the grant.
func (v *Vest) Remainder() *big.Int {
	return new(big.Int).Sub(v.TotalAmount, v.Claimed)
}

// ClaimableAt computes the amount claimable from v at the given time: zero
// before the window opens, the full remainder at or after the window closes,
// a linear interpolation in between. Integer division truncates toward zero,
// so rounding always under-releases, never over-releases.
func ClaimableAt(v *Vest, now uint64) *big.Int {
	if now <= v.StartDate {
		return new(big.Int)
	}
	if now >= v.EndDate {
		return v.Remainder()
	}
	elapsed := new(big.Int).SetUint64(now - v.StartDate)
	window := new(big.Int).SetUint64(v.EndDate - v.StartDate)
	released := new(big.Int).Sub(v.TotalAmount, v.StartAmount)
	released.Mul(released, elapsed)
	released.Div(released, window)
	released.Add(released, v.StartAmount)
	released.Sub(released, v.Claimed)
	if released.Sign() < 0 {
		return new(big.Int)
	}
	return released
}

// VestHolder holds one beneficiary's grants.
type VestHolder struct {
	Addr  vault.Address
	Vests []*Vest
}

func NewVestHolder(addr vault.Address) *VestHolder {
	return &VestHolder{
		Addr:  addr,
		Vests: make([]*Vest, 0),
	}
}

func (h *VestHolder) AddVest(v *Vest) {
	h.Vests = append(h.Vests, v)
}

func (h *VestHolder) ToString() string {
	vs := make([]string, 0, len(h.Vests))
	for _, v := range h.Vests {
		vs = append(vs, v.ToString())
	}
	return fmt.Sprintf("VestHolder(%v) [%v]", h.Addr, strings.Join(vs, ", "))
}

// VestHolderList is kept sorted by address so the RLP encoding is deterministic.
type VestHolderList struct {
	holders []*VestHolder
}

func newVestHolderList(holders []*VestHolder) *VestHolderList {
	if holders == nil {
		holders = make([]*VestHolder, 0)
	}
	sort.SliceStable(holders, func(i, j int) bool {
		return bytes.Compare(holders[i].Addr.Bytes(), holders[j].Addr.Bytes()) <= 0
	})
	return &VestHolderList{holders: holders}
}

func (l *VestHolderList) indexOf(addr vault.Address) (int, int) {
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

func (l *VestHolderList) Get(addr vault.Address) *VestHolder {
	index, _ := l.indexOf(addr)
	if index < 0 {
		return nil
	}
	return l.holders[index]
}

func (l *VestHolderList) Add(h *VestHolder) {
	index, insertIndex := l.indexOf(h.Addr)
	if index < 0 {
		if len(l.holders) == 0 {
			l.holders = append(l.holders, h)
			return
		}
		newList := make([]*VestHolder, insertIndex)
		copy(newList, l.holders[:insertIndex])
		newList = append(newList, h)
		newList = append(newList, l.holders[insertIndex:]...)
		l.holders = newList
	} else {
		l.holders[index] = h
	}
}

func (l *VestHolderList) Count() int {
	return len(l.holders)
}

func (l *VestHolderList) ToList() []VestHolder {
	result := make([]VestHolder, 0)
	for _, h := range l.holders {
		result = append(result, *h)
	}
	return result
}

func (l *VestHolderList) ToString() string {
	if l == nil || len(l.holders) == 0 {
		return "VestHolderList (size:0)"
	}
	s := []string{fmt.Sprintf("VestHolderList (size:%v) {", len(l.holders))}
	for i, h := range l.holders {
		s = append(s, fmt.Sprintf("  %d.%v", i, h.ToString()))
	}
	s = append(s, "}")
	return strings.Join(s, "\n")
}
