package staking

import (
	"math/big"

	"github.com/meterio/stakevest/env"
)

// CreatePool registers a new staking offer and pre-reserves its whole reward,
// pulled from the administrator's token balance. The reserve is computed against
// the pool capacity, not eventual deposits; reclamation reconciles the surplus
// after the pool closes.
func (s *Staking) CreatePool(e *env.Env, minStake, maxStake *big.Int, startTime, endTime, rewardRateMilli, lockPeriod uint64, maxTotalStaked *big.Int) error {
	if !s.auth.IsAdministrator(e.Caller()) {
		return ErrOnlyAdministrator
	}
	if minStake == nil || minStake.Sign() <= 0 || maxStake == nil || maxTotalStaked == nil {
		return ErrZeroAmount
	}
	if minStake.Cmp(maxStake) >= 0 {
		return ErrPoolMinStake
	}
	if maxTotalStaked.Cmp(maxStake) < 0 {
		return ErrPoolMaxStake
	}
	if endTime <= startTime || lockPeriod == 0 {
		return ErrTimestampsMisconfigured
	}

	pool := NewPool(minStake, maxStake, startTime, endTime, rewardRateMilli, lockPeriod, maxTotalStaked)
	reserve := pool.Reserve()

	pools := s.GetPoolList()
	freeRewards := s.TotalFreeRewards()

	// sanity checked, pull the whole reserve before any state change
	if !s.token.Transfer(e.Caller(), s.addr, reserve) {
		s.logger.Error("reserve pull failed", "admin", e.Caller(), "reserve", reserve)
		return ErrTransferFailed
	}

	pools.Add(pool)
	s.SetPoolList(pools)
	s.SetTotalFreeRewards(freeRewards.Add(freeRewards, reserve))

	poolCountGauge.Set(float64(pools.Count()))
	s.logger.Info("pool created", "hash", pool.PoolHash, "reserve", reserve, "cap", maxTotalStaked)
	return nil
}
