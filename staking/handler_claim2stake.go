package staking

import (
	"math/big"

	"github.com/meterio/stakevest/env"
	"github.com/meterio/stakevest/vault"
)

// Claim2Stake deposits amount into the designated bridge pool on behalf of
// beneficiary. Only the bound vesting ledger may call; the principal is pulled
// from the vesting ledger's token account via its standing allowance. The
// remembered pool hash is re-checked against the live pool at the remembered
// index so a reorganized registry surfaces as an error instead of a deposit
// into the wrong pool.
func (s *Staking) Claim2Stake(e *env.Env, beneficiary vault.Address, amount *big.Int) error {
	vesting := s.GetVestingContract()
	if vesting.IsZero() || e.Caller() != vesting {
		return ErrOnlyVestingContract
	}
	target := s.GetBridgeTarget()
	if target == nil {
		return ErrStakeContractNotSet
	}
	pool := s.GetPoolList().Get(target.Index)
	if pool == nil || pool.PoolHash != target.Hash {
		return ErrPoolHashMismatch
	}

	pull := func() bool {
		return s.token.TransferFrom(s.addr, vesting, s.addr, amount)
	}
	return s.depositFor(e, target.Index, beneficiary, amount, pull)
}
