package staking

import (
	"math/big"

	"github.com/meterio/stakevest/env"
)

// ClaimAll pays out every matured position of the caller in a single pass.
// Removal swaps the last position into the removed slot, so the slot is
// re-examined before the cursor advances.
func (s *Staking) ClaimAll(e *env.Env) error {
	holders := s.GetStakeholderList()
	holder := holders.Get(e.Caller())
	if holder == nil || len(holder.Positions) == 0 {
		return ErrNoStakesForCaller
	}

	now := e.Now()
	sum := new(big.Int)
	for i := 0; i < len(holder.Positions); {
		p := holder.Positions[i]
		if p.Matured(now) {
			sum.Add(sum, p.TotalAmount)
			holder.RemovePosition(uint32(i))
			continue // a new element occupies slot i now
		}
		i++
	}
	if sum.Sign() == 0 {
		return ErrNothingToClaim
	}
	if len(holder.Positions) == 0 {
		holders.Remove(holder.Addr)
	}

	stakedAndReward := s.TotalStakedAndReward()
	stakedAndReward.Sub(stakedAndReward, sum)

	if !s.token.Transfer(s.addr, e.Caller(), sum) {
		s.logger.Error("claim payout failed", "caller", e.Caller(), "amount", sum)
		return ErrTransferFailed
	}

	s.SetStakeholderList(holders)
	s.SetTotalStakedAndReward(stakedAndReward)

	claimCounter.Inc()
	e.AddEvent(&WithdrawEvent{Caller: e.Caller(), Amount: sum})
	s.logger.Info("claimed all", "caller", e.Caller(), "amount", sum)
	return nil
}

// ClaimOne pays out a single matured position addressed by slot. It lets a
// caller drain positions one at a time when a bulk claim cannot complete.
// Slot addressing is not stable across claims.
func (s *Staking) ClaimOne(e *env.Env, slot uint32) error {
	holders := s.GetStakeholderList()
	holder := holders.Get(e.Caller())
	if holder == nil || len(holder.Positions) == 0 {
		return ErrNoStakesForCaller
	}
	if int(slot) >= len(holder.Positions) {
		return ErrNothingToClaim
	}
	p := holder.Positions[slot]
	if !p.Matured(e.Now()) {
		return ErrNothingToClaim
	}

	amount := new(big.Int).Set(p.TotalAmount)
	holder.RemovePosition(slot)
	if len(holder.Positions) == 0 {
		holders.Remove(holder.Addr)
	}

	stakedAndReward := s.TotalStakedAndReward()
	stakedAndReward.Sub(stakedAndReward, amount)

	if !s.token.Transfer(s.addr, e.Caller(), amount) {
		s.logger.Error("claim payout failed", "caller", e.Caller(), "amount", amount)
		return ErrTransferFailed
	}

	s.SetStakeholderList(holders)
	s.SetTotalStakedAndReward(stakedAndReward)

	claimCounter.Inc()
	e.AddEvent(&WithdrawEvent{Caller: e.Caller(), Amount: amount})
	s.logger.Info("claimed one", "caller", e.Caller(), "slot", slot, "amount", amount)
	return nil
}
