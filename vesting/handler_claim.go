package vesting

import (
	"math/big"

	"github.com/meterio/stakevest/env"
	"github.com/meterio/stakevest/vault"
)

// collectClaimable advances every grant of caller by its matured amount and
// returns the total. The caller of this helper commits or discards the list.
func (v *Vesting) collectClaimable(holders *VestHolderList, caller vault.Address, now uint64) (*big.Int, error) {
	holder := holders.Get(caller)
	if holder == nil || len(holder.Vests) == 0 {
		return nil, ErrNoLocksForCaller
	}
	sum := new(big.Int)
	for _, vest := range holder.Vests {
		claimable := ClaimableAt(vest, now)
		if claimable.Sign() > 0 {
			vest.Claimed = new(big.Int).Add(vest.Claimed, claimable)
			sum.Add(sum, claimable)
		}
	}
	if sum.Sign() == 0 {
		return nil, ErrNothingToClaim
	}
	return sum, nil
}

// ClaimAll pays out the caller's matured amount across all grants.
func (v *Vesting) ClaimAll(e *env.Env) error {
	holders := v.GetVestHolderList()
	sum, err := v.collectClaimable(holders, e.Caller(), e.Now())
	if err != nil {
		return err
	}

	vestedTotal := v.GetVestedTotal()
	vestedTotal.Sub(vestedTotal, sum)

	if !v.token.Transfer(v.addr, e.Caller(), sum) {
		v.logger.Error("claim payout failed", "caller", e.Caller(), "amount", sum)
		return ErrTransferFailed
	}

	v.SetVestHolderList(holders)
	v.SetVestedTotal(vestedTotal)

	vestClaimCounter.Inc()
	e.AddEvent(&ClaimedEvent{Caller: e.Caller(), Amount: sum})
	v.logger.Info("claimed", "caller", e.Caller(), "amount", sum)
	return nil
}

// Claim2Stake redirects the caller's matured amount straight into the bound
// staking ledger's bridge pool instead of paying it out. The staking side
// pulls the principal from this ledger's escrow account.
func (v *Vesting) Claim2Stake(e *env.Env) error {
	if v.staking == nil {
		return ErrStakeContractNotSet
	}
	holders := v.GetVestHolderList()
	sum, err := v.collectClaimable(holders, e.Caller(), e.Now())
	if err != nil {
		return err
	}

	vestedTotal := v.GetVestedTotal()
	vestedTotal.Sub(vestedTotal, sum)

	senv := env.New(v.addr, e.Now())
	if err := v.staking.Claim2Stake(senv, e.Caller(), sum); err != nil {
		v.logger.Error("bridged claim failed", "caller", e.Caller(), "amount", sum, "err", err)
		return err
	}
	for _, ev := range senv.Events() {
		e.AddEvent(ev)
	}

	v.SetVestHolderList(holders)
	v.SetVestedTotal(vestedTotal)

	vestClaimCounter.Inc()
	e.AddEvent(&ClaimedEvent{Caller: e.Caller(), Amount: sum})
	v.logger.Info("claimed to stake", "caller", e.Caller(), "amount", sum)
	return nil
}
