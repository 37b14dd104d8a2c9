package staking

import (
	"math/big"

	"github.com/meterio/stakevest/env"
)

// ReclaimExpiredPools removes every pool whose deposit window has passed and
// returns its unused reward reserve to the administrator. The scan runs
// backward so swap-with-last removal never skips an element.
func (s *Staking) ReclaimExpiredPools(e *env.Env) error {
	if !s.auth.IsAdministrator(e.Caller()) {
		return ErrOnlyAdministrator
	}

	pools := s.GetPoolList()
	now := e.Now()
	reclaimed := new(big.Int)
	removed := 0
	for i := pools.Count() - 1; i >= 0; i-- {
		p := pools.Get(uint32(i))
		if now <= p.EndTime {
			continue
		}
		reclaimed.Add(reclaimed, p.UnusedReserve())
		pools.Remove(uint32(i))
		removed++
	}
	if removed == 0 || reclaimed.Sign() == 0 {
		return ErrNothingToReclaim
	}

	freeRewards := s.TotalFreeRewards()
	freeRewards.Sub(freeRewards, reclaimed)

	if !s.token.Transfer(s.addr, e.Caller(), reclaimed) {
		s.logger.Error("reclaim payout failed", "admin", e.Caller(), "amount", reclaimed)
		return ErrTransferFailed
	}

	s.SetPoolList(pools)
	s.SetTotalFreeRewards(freeRewards)

	poolCountGauge.Set(float64(pools.Count()))
	s.logger.Info("reclaimed expired pools", "removed", removed, "amount", reclaimed)
	return nil
}
