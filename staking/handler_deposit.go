package staking

import (
	"math/big"

	"github.com/meterio/stakevest/env"
	"github.com/meterio/stakevest/vault"
)

// Deposit stakes amount into the pool at poolIdx for the caller. Principal is
// pulled from the caller; the reward share was pre-funded at pool creation.
func (s *Staking) Deposit(e *env.Env, poolIdx uint32, amount *big.Int) error {
	pull := func() bool {
		return s.token.Transfer(e.Caller(), s.addr, amount)
	}
	return s.depositFor(e, poolIdx, e.Caller(), amount, pull)
}

// depositFor is the deposit core shared by Deposit and Claim2Stake: owner gets
// the position, pull funds the principal.
func (s *Staking) depositFor(e *env.Env, poolIdx uint32, owner vault.Address, amount *big.Int, pull func() bool) error {
	if amount == nil || amount.Sign() <= 0 {
		return ErrZeroAmount
	}

	pools := s.GetPoolList()
	pool := pools.Get(poolIdx)
	if pool == nil {
		return ErrWrongPoolIndex
	}
	now := e.Now()
	if now <= pool.StartTime {
		return ErrPoolNotYetOpen
	}
	if now >= pool.EndTime {
		return ErrAlreadyClosed
	}

	balances := s.GetBalanceList()
	key := BalanceKey(pool.PoolHash, owner)
	newBalance := new(big.Int).Add(balances.Get(key), amount)
	if newBalance.Cmp(pool.MinStake) < 0 {
		return ErrPoolMinStake
	}
	if newBalance.Cmp(pool.MaxStake) > 0 {
		return ErrPoolMaxStake
	}
	newTotal := new(big.Int).Add(pool.TotalStaked, amount)
	if newTotal.Cmp(pool.MaxTotalStaked) > 0 {
		return ErrPoolIsFull
	}

	reward := rewardOf(amount, pool.RewardRateMilli)
	position := &Position{
		UnlockTime:  now + pool.LockPeriod,
		TotalAmount: new(big.Int).Add(amount, reward),
	}

	holders := s.GetStakeholderList()
	holder := holders.Get(owner)
	if holder == nil {
		holder = NewStakeholder(owner)
		holder.AddPosition(position)
		holders.Add(holder)
	} else {
		holder.AddPosition(position)
	}

	pool.TotalStaked = newTotal
	balances.Set(key, newBalance)
	freeRewards := s.TotalFreeRewards()
	stakedAndReward := s.TotalStakedAndReward()
	freeRewards.Sub(freeRewards, reward)
	stakedAndReward.Add(stakedAndReward, position.TotalAmount)

	// principal moves last; a failed pull aborts with no state written
	if !pull() {
		s.logger.Error("principal pull failed", "owner", owner, "amount", amount)
		return ErrTransferFailed
	}

	s.SetPoolList(pools)
	s.SetStakeholderList(holders)
	s.SetBalanceList(balances)
	s.SetTotalFreeRewards(freeRewards)
	s.SetTotalStakedAndReward(stakedAndReward)

	depositCounter.Inc()
	e.AddEvent(&DepositEvent{
		Caller:     owner,
		PoolID:     poolIdx,
		Amount:     amount,
		UnlockTime: position.UnlockTime,
	})
	s.logger.Info("deposit accepted", "owner", owner, "pool", poolIdx, "amount", amount, "unlock", position.UnlockTime)
	return nil
}
