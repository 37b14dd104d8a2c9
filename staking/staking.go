// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"errors"
	"log/slog"
	"math/big"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/meterio/stakevest/auth"
	"github.com/meterio/stakevest/env"
	"github.com/meterio/stakevest/state"
	"github.com/meterio/stakevest/token"
	"github.com/meterio/stakevest/vault"
)

var (
	ErrOnlyAdministrator       = errors.New("only administrator")
	ErrOnlyVestingContract     = errors.New("only vesting contract")
	ErrWrongPoolIndex          = errors.New("wrong pool index")
	ErrPoolNotYetOpen          = errors.New("pool not yet open")
	ErrAlreadyClosed           = errors.New("pool already closed")
	ErrPoolMinStake            = errors.New("stake below pool minimum")
	ErrPoolMaxStake            = errors.New("stake above pool maximum")
	ErrPoolIsFull              = errors.New("pool is full")
	ErrZeroAmount              = errors.New("zero amount")
	ErrTimestampsMisconfigured = errors.New("timestamps misconfigured")
	ErrNoStakesForCaller       = errors.New("no stakes for caller")
	ErrNothingToClaim          = errors.New("nothing to claim")
	ErrNothingToReclaim        = errors.New("nothing to reclaim")
	ErrPoolHashMismatch        = errors.New("pool hash mismatch")
	ErrStakeContractNotSet     = errors.New("stake contract not set")
	ErrContractAlreadySet      = errors.New("contract already set")
	ErrTransferFailed          = errors.New("token transfer failed")
)

var (
	poolCountGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "staking_pool_count",
		Help: "Number of live staking pools",
	})
	depositCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "staking_deposits_total",
		Help: "Accumulated counter for accepted deposits",
	})
	claimCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "staking_claims_total",
		Help: "Accumulated counter for successful claims",
	})
)

func init() {
	prometheus.MustRegister(poolCountGauge)
	prometheus.MustRegister(depositCounter)
	prometheus.MustRegister(claimCounter)
}

// DepositEvent is emitted for observers on every accepted deposit.
type DepositEvent struct {
	Caller     vault.Address
	PoolID     uint32
	Amount     *big.Int
	UnlockTime uint64
}

// WithdrawEvent is emitted on every successful claim of matured positions.
type WithdrawEvent struct {
	Caller vault.Address
	Amount *big.Int
}

// Staking is the staking ledger: the pool registry, the per-caller position
// ledger and the reward reservation accounting. It owns the token account at
// `addr` which escrows all staked principal and reserved reward.
type Staking struct {
	state  *state.State
	token  token.Ledger
	auth   auth.Authority
	addr   vault.Address
	logger *slog.Logger
}

func NewStaking(st *state.State, tok token.Ledger, au auth.Authority, addr vault.Address) *Staking {
	return &Staking{
		state:  st,
		token:  tok,
		auth:   au,
		addr:   addr,
		logger: slog.Default().With("pkg", "staking"),
	}
}

// Address returns the ledger's own token account.
func (s *Staking) Address() vault.Address {
	return s.addr
}

// SetVestingContract binds the vesting ledger identity permitted to call
// Claim2Stake. One-shot: rebinding is rejected.
func (s *Staking) SetVestingContract(e *env.Env, addr vault.Address) error {
	if !s.auth.IsAdministrator(e.Caller()) {
		return ErrOnlyAdministrator
	}
	if !s.GetVestingContract().IsZero() {
		return ErrContractAlreadySet
	}
	s.SetVestingContractAddr(addr)
	s.logger.Info("vesting contract bound", "addr", addr)
	return nil
}

// VestingContract reports the bound vesting ledger identity. The vesting side
// reads this back at bind time to confirm the two ledgers point at each other.
func (s *Staking) VestingContract() vault.Address {
	return s.GetVestingContract()
}

// SetBridgeTarget designates the single pool the vesting ledger may deposit
// into, remembered as (index, hash) so later pool reorganization is detected.
func (s *Staking) SetBridgeTarget(e *env.Env, poolIdx uint32) error {
	if !s.auth.IsAdministrator(e.Caller()) {
		return ErrOnlyAdministrator
	}
	pools := s.GetPoolList()
	p := pools.Get(poolIdx)
	if p == nil {
		return ErrWrongPoolIndex
	}
	s.SetBridgeTargetRef(&BridgeTarget{Index: poolIdx, Hash: p.PoolHash})
	s.logger.Info("bridge target set", "index", poolIdx, "hash", p.PoolHash)
	return nil
}

// PoolCount returns the number of live pools.
func (s *Staking) PoolCount() int {
	return s.GetPoolList().Count()
}

// PoolAt resolves a pool by index. Index stability is not guaranteed across
// reclamation; use the pool hash for stable references.
func (s *Staking) PoolAt(idx uint32) (Pool, error) {
	p := s.GetPoolList().Get(idx)
	if p == nil {
		return Pool{}, ErrWrongPoolIndex
	}
	return *p, nil
}

// Pools returns a snapshot of all live pools.
func (s *Staking) Pools() []Pool {
	return s.GetPoolList().ToList()
}

// PositionsOf returns a snapshot of the caller's open positions.
func (s *Staking) PositionsOf(addr vault.Address) []Position {
	holder := s.GetStakeholderList().Get(addr)
	if holder == nil {
		return []Position{}
	}
	result := make([]Position, 0, len(holder.Positions))
	for _, p := range holder.Positions {
		result = append(result, *p)
	}
	return result
}

// StakeOf returns the principal the caller has accumulated in the given pool.
func (s *Staking) StakeOf(poolHash vault.Bytes32, addr vault.Address) *big.Int {
	return s.GetBalanceList().Get(BalanceKey(poolHash, addr))
}
