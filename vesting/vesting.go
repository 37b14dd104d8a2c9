// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vesting

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
	ErrZeroAddress             = errors.New("zero address")
	ErrZeroAmount              = errors.New("zero amount")
	ErrStartDateInPast         = errors.New("start date in past")
	ErrTimestampsMisconfigured = errors.New("timestamps misconfigured")
	ErrStartExceedsTotal       = errors.New("start amount exceeds total amount")
	ErrNoLocksForCaller        = errors.New("no locks for caller")
	ErrNothingToClaim          = errors.New("nothing to claim")
	ErrStakeContractNotSet     = errors.New("stake contract not set")
	ErrContractAlreadySet      = errors.New("contract already set")
	ErrCounterpartMismatch     = errors.New("staking counterpart does not point back")
	ErrTransferFailed          = errors.New("token transfer failed")
)

var (
	lockCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vesting_locks_total",
		Help: "Accumulated counter for added vesting locks",
	})
	vestClaimCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vesting_claims_total",
		Help: "Accumulated counter for successful vesting claims",
	})
)

func init() {
	prometheus.MustRegister(lockCounter)
	prometheus.MustRegister(vestClaimCounter)
}

// VestingAddedEvent is emitted for observers on every added grant.
type VestingAddedEvent struct {
	Beneficiary vault.Address
	StartAmount *big.Int
	TotalAmount *big.Int
	StartDate   uint64
	EndDate     uint64
}

// ClaimedEvent is emitted on every successful claim, direct or bridged.
type ClaimedEvent struct {
	Caller vault.Address
	Amount *big.Int
}

// StakeLedger is the slice of the staking ledger the bridge needs.
type StakeLedger interface {
	Address() vault.Address
	VestingContract() vault.Address
	Claim2Stake(e *env.Env, beneficiary vault.Address, amount *big.Int) error
}

// Vesting is the vesting ledger: linear-release grants escrowed in the token
// account at `addr`, plus the bridge into a bound staking ledger.
type Vesting struct {
	state   *state.State
	token   token.Ledger
	auth    auth.Authority
	addr    vault.Address
	staking StakeLedger
	logger  *slog.Logger
}

func NewVesting(st *state.State, tok token.Ledger, au auth.Authority, addr vault.Address) *Vesting {
	return &Vesting{
		state:  st,
		token:  tok,
		auth:   au,
		addr:   addr,
		logger: slog.Default().With("pkg", "vesting"),
	}
}

// Address returns the ledger's own token account.
func (v *Vesting) Address() vault.Address {
	return v.addr
}

// SetStakingContract binds the staking ledger the bridge deposits into. The
// binding is mutual: it aborts unless the staking side already reports this
// ledger's own identity back, and it leaves a standing allowance so the
// staking side can pull bridged principal. One-shot: rebinding is rejected.
func (v *Vesting) SetStakingContract(e *env.Env, ledger StakeLedger) error {
	if !v.auth.IsAdministrator(e.Caller()) {
		return ErrOnlyAdministrator
	}
	if v.staking != nil || !v.GetStakingContract().IsZero() {
		return ErrContractAlreadySet
	}
	if ledger.VestingContract() != v.addr {
		return ErrCounterpartMismatch
	}
	// unlimited pull for bridged deposits, bounded in practice by vestedTotal
	unlimited := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	if !v.token.Approve(v.addr, ledger.Address(), unlimited) {
		return ErrTransferFailed
	}
	v.staking = ledger
	v.SetStakingContractAddr(ledger.Address())
	v.logger.Info("staking contract bound", "addr", ledger.Address())
	return nil
}

// RestoreStakingContract re-attaches the bound staking ledger object after a
// restart. The stored address must match; the mutual binding itself is not
// redone.
func (v *Vesting) RestoreStakingContract(ledger StakeLedger) error {
	stored := v.GetStakingContract()
	if stored.IsZero() || stored != ledger.Address() {
		return ErrStakeContractNotSet
	}
	v.staking = ledger
	return nil
}

// VestedTotal is the process-wide escrowed remainder across all grants.
func (v *Vesting) VestedTotal() *big.Int {
	return v.GetVestedTotal()
}

// TotalSupply reports the escrowed remainder, ERC20-style.
func (v *Vesting) TotalSupply() *big.Int {
	return v.GetVestedTotal()
}

// BalanceOf sums the unclaimed remainder over all grants of addr, so external
// wallets can display a vesting balance without special-casing this ledger.
func (v *Vesting) BalanceOf(addr vault.Address) *big.Int {
	holder := v.GetVestHolderList().Get(addr)
	sum := new(big.Int)
	if holder == nil {
		return sum
	}
	for _, vest := range holder.Vests {
		sum.Add(sum, vest.Remainder())
	}
	return sum
}

// ClaimableOf sums the currently claimable amount over all grants of addr.
func (v *Vesting) ClaimableOf(addr vault.Address, now uint64) *big.Int {
	holder := v.GetVestHolderList().Get(addr)
	sum := new(big.Int)
	if holder == nil {
		return sum
	}
	for _, vest := range holder.Vests {
		sum.Add(sum, ClaimableAt(vest, now))
	}
	return sum
}

// VestsOf returns a snapshot of the caller's grants.
func (v *Vesting) VestsOf(addr vault.Address) []Vest {
	holder := v.GetVestHolderList().Get(addr)
	if holder == nil {
		return []Vest{}
	}
	result := make([]Vest, 0, len(holder.Vests))
	for _, vest := range holder.Vests {
		result = append(result, *vest)
	}
	return result
}

// Transfer is the ERC20-facade claim trigger: the nominal parameters are
// ignored and the caller's matured amount is paid out.
func (v *Vesting) Transfer(e *env.Env, _ vault.Address, _ *big.Int) error {
	return v.ClaimAll(e)
}
