// Copyright (c) 2020 The Meter.io developers
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying

// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/meterio/stakevest/staking"
)

type Pool struct {
	PoolHash        string `json:"poolHash"`
	MinStake        string `json:"minStake"`
	MaxStake        string `json:"maxStake"`
	StartTime       uint64 `json:"startTime"`
	EndTime         uint64 `json:"endTime"`
	RewardRateMilli uint64 `json:"rewardRateMilli"`
	LockPeriod      uint64 `json:"lockPeriod"`
	MaxTotalStaked  string `json:"maxTotalStaked"`
	TotalStaked     string `json:"totalStaked"`
}

func convertPool(p staking.Pool) *Pool {
	return &Pool{
		PoolHash:        p.PoolHash.String(),
		MinStake:        p.MinStake.String(),
		MaxStake:        p.MaxStake.String(),
		StartTime:       p.StartTime,
		EndTime:         p.EndTime,
		RewardRateMilli: p.RewardRateMilli,
		LockPeriod:      p.LockPeriod,
		MaxTotalStaked:  p.MaxTotalStaked.String(),
		TotalStaked:     p.TotalStaked.String(),
	}
}

func convertPoolList(pools []staking.Pool) []*Pool {
	result := make([]*Pool, 0, len(pools))
	for _, p := range pools {
		result = append(result, convertPool(p))
	}
	return result
}

type Position struct {
	UnlockTime  uint64 `json:"unlockTime"`
	TotalAmount string `json:"totalAmount"`
}

func convertPositions(positions []staking.Position) []*Position {
	result := make([]*Position, 0, len(positions))
	for _, p := range positions {
		result = append(result, &Position{
			UnlockTime:  p.UnlockTime,
			TotalAmount: p.TotalAmount.String(),
		})
	}
	return result
}

type Totals struct {
	PoolCount            int    `json:"poolCount"`
	TotalStakedAndReward string `json:"totalStakedAndReward"`
	TotalFreeRewards     string `json:"totalFreeRewards"`
}
