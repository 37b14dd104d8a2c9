// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/meterio/stakevest/vault"
)

// Pool is one staking offer: a deposit window, per-caller bounds, a lock duration
// and a fixed per-mille reward rate, with the whole reward pre-reserved at creation.
type Pool struct {
	MinStake        *big.Int
	MaxStake        *big.Int
	StartTime       uint64 // deposit window opens (exclusive)
	EndTime         uint64 // deposit window closes (exclusive)
	RewardRateMilli uint64 // reward units per 1000 units of principal
	LockPeriod      uint64 // seconds from deposit to maturity
	MaxTotalStaked  *big.Int
	TotalStaked     *big.Int
	PoolHash        vault.Bytes32
}

// Hash derives the pool identity from its seven creation parameters. TotalStaked
// is excluded so the hash stays stable for the pool's whole life.
func (p *Pool) Hash() (hash vault.Bytes32) {
	hw := vault.NewBlake2b()
	rlp.Encode(hw, []interface{}{
		p.MinStake,
		p.MaxStake,
		p.StartTime,
		p.EndTime,
		p.RewardRateMilli,
		p.LockPeriod,
		p.MaxTotalStaked,
	})
	hw.Sum(hash[:0])
	return
}

func NewPool(minStake, maxStake *big.Int, startTime, endTime, rewardRateMilli, lockPeriod uint64, maxTotalStaked *big.Int) *Pool {
	p := &Pool{
		MinStake:        minStake,
		MaxStake:        maxStake,
		StartTime:       startTime,
		EndTime:         endTime,
		RewardRateMilli: rewardRateMilli,
		LockPeriod:      lockPeriod,
		MaxTotalStaked:  maxTotalStaked,
		TotalStaked:     big.NewInt(0),
	}
	p.PoolHash = p.Hash()
	return p
}

// Reserve is the reward pre-reserved for this pool at creation time.
func (p *Pool) Reserve() *big.Int {
	return rewardOf(p.MaxTotalStaked, p.RewardRateMilli)
}

// UnusedReserve is the reserved reward not backing any position yet.
func (p *Pool) UnusedReserve() *big.Int {
	unused := new(big.Int).Sub(p.MaxTotalStaked, p.TotalStaked)
	return rewardOf(unused, p.RewardRateMilli)
}

func (p *Pool) ToString() string {
	return fmt.Sprintf("Pool(%v) min=%v, max=%v, start=%v, end=%v, rate=%v, lock=%v, cap=%v, staked=%v",
		p.PoolHash, p.MinStake, p.MaxStake, p.StartTime, p.EndTime, p.RewardRateMilli, p.LockPeriod, p.MaxTotalStaked, p.TotalStaked)
}

// rewardOf computes principal * rate / 1000, truncating toward zero.
func rewardOf(principal *big.Int, rateMilli uint64) *big.Int {
	r := new(big.Int).Mul(principal, new(big.Int).SetUint64(rateMilli))
	return r.Div(r, new(big.Int).SetUint64(vault.RewardRateDenom))
}

// PoolList is the ordered pool collection. Removal swaps the last element into
// the removed slot and truncates, so indexes are not stable across removals;
// PoolHash is the only stable identity.
type PoolList struct {
	pools []*Pool
}

func newPoolList(pools []*Pool) *PoolList {
	if pools == nil {
		pools = make([]*Pool, 0)
	}
	return &PoolList{pools: pools}
}

func (l *PoolList) Get(idx uint32) *Pool {
	if int(idx) >= len(l.pools) {
		return nil
	}
	return l.pools[idx]
}

// GetByHash scans for the pool with the given identity hash.
func (l *PoolList) GetByHash(hash vault.Bytes32) *Pool {
	for _, p := range l.pools {
		if p.PoolHash == hash {
			return p
		}
	}
	return nil
}

func (l *PoolList) Add(p *Pool) {
	l.pools = append(l.pools, p)
}

func (l *PoolList) Remove(idx uint32) {
	last := len(l.pools) - 1
	if int(idx) > last {
		return
	}
	l.pools[idx] = l.pools[last]
	l.pools = l.pools[:last]
}

func (l *PoolList) Count() int {
	return len(l.pools)
}

func (l *PoolList) ToList() []Pool {
	result := make([]Pool, 0)
	for _, p := range l.pools {
		result = append(result, *p)
	}
	return result
}

func (l *PoolList) ToString() string {
	s := []string{fmt.Sprintf("PoolList (size:%v) {", len(l.pools))}
	for i, p := range l.pools {
		s = append(s, fmt.Sprintf("  %d.%v", i, p.ToString()))
	}
	s = append(s, "}")
	return strings.Join(s, "\n")
}
