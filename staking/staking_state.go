// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"bytes"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/meterio/stakevest/vault"
)

// the global storage keys of the staking ledger
var (
	StakingLedgerAddr = vault.BytesToAddress([]byte("staking-ledger-address"))

	PoolListKey             = vault.Blake2b([]byte("pool-list-key"))
	StakeholderListKey      = vault.Blake2b([]byte("stake-holder-list-key"))
	BalanceListKey          = vault.Blake2b([]byte("pool-balance-list-key"))
	TotalStakedAndRewardKey = vault.Blake2b([]byte("total-staked-and-reward-key"))
	TotalFreeRewardsKey     = vault.Blake2b([]byte("total-free-rewards-key"))
	VestingContractKey      = vault.Blake2b([]byte("vesting-contract-key"))
	BridgeTargetKey         = vault.Blake2b([]byte("bridge-target-key"))
)

// BridgeTarget remembers the pool the vesting ledger is allowed to deposit into.
// The hash is re-checked against the live pool at Index on every bridge call.
type BridgeTarget struct {
	Index uint32
	Hash  vault.Bytes32
}

// Pool List
func (s *Staking) GetPoolList() (result *PoolList) {
	s.state.DecodeStorage(PoolListKey, func(raw []byte) error {
		pools := make([]*Pool, 0)
		if len(raw) > 0 {
			if err := rlp.Decode(bytes.NewReader(raw), &pools); err != nil {
				s.logger.Warn("Error during decoding pool list", "err", err)
				return err
			}
		}
		result = newPoolList(pools)
		return nil
	})
	return
}

func (s *Staking) SetPoolList(poolList *PoolList) {
	s.state.EncodeStorage(PoolListKey, func() ([]byte, error) {
		return rlp.EncodeToBytes(poolList.pools)
	})
}

// Stakeholder List
func (s *Staking) GetStakeholderList() (result *StakeholderList) {
	s.state.DecodeStorage(StakeholderListKey, func(raw []byte) error {
		holders := make([]*Stakeholder, 0)
		if len(raw) > 0 {
			if err := rlp.Decode(bytes.NewReader(raw), &holders); err != nil {
				s.logger.Warn("Error during decoding stakeholder list", "err", err)
				return err
			}
		}
		result = newStakeholderList(holders)
		return nil
	})
	return
}

func (s *Staking) SetStakeholderList(holderList *StakeholderList) {
	s.state.EncodeStorage(StakeholderListKey, func() ([]byte, error) {
		return rlp.EncodeToBytes(holderList.holders)
	})
}

// Balance List
func (s *Staking) GetBalanceList() (result *BalanceList) {
	s.state.DecodeStorage(BalanceListKey, func(raw []byte) error {
		balances := make([]*StakeBalance, 0)
		if len(raw) > 0 {
			if err := rlp.Decode(bytes.NewReader(raw), &balances); err != nil {
				s.logger.Warn("Error during decoding balance list", "err", err)
				return err
			}
		}
		result = newBalanceList(balances)
		return nil
	})
	return
}

func (s *Staking) SetBalanceList(balanceList *BalanceList) {
	s.state.EncodeStorage(BalanceListKey, func() ([]byte, error) {
		return rlp.EncodeToBytes(balanceList.balances)
	})
}

func (s *Staking) getCounter(key vault.Bytes32) (result *big.Int) {
	result = new(big.Int)
	s.state.DecodeStorage(key, func(raw []byte) error {
		if len(raw) > 0 {
			if err := rlp.Decode(bytes.NewReader(raw), result); err != nil {
				s.logger.Warn("Error during decoding counter", "err", err)
				return err
			}
		}
		return nil
	})
	return
}

func (s *Staking) setCounter(key vault.Bytes32, val *big.Int) {
	s.state.EncodeStorage(key, func() ([]byte, error) {
		return rlp.EncodeToBytes(val)
	})
}

// TotalStakedAndReward is the sum of all outstanding position amounts.
func (s *Staking) TotalStakedAndReward() *big.Int {
	return s.getCounter(TotalStakedAndRewardKey)
}

func (s *Staking) SetTotalStakedAndReward(val *big.Int) {
	s.setCounter(TotalStakedAndRewardKey, val)
}

// TotalFreeRewards is the reserved-but-not-yet-allocated reward across live pools.
func (s *Staking) TotalFreeRewards() *big.Int {
	return s.getCounter(TotalFreeRewardsKey)
}

func (s *Staking) SetTotalFreeRewards(val *big.Int) {
	s.setCounter(TotalFreeRewardsKey, val)
}

func (s *Staking) GetVestingContract() (result vault.Address) {
	s.state.DecodeStorage(VestingContractKey, func(raw []byte) error {
		if len(raw) > 0 {
			if err := rlp.Decode(bytes.NewReader(raw), &result); err != nil {
				s.logger.Warn("Error during decoding vesting contract", "err", err)
				return err
			}
		}
		return nil
	})
	return
}

func (s *Staking) SetVestingContractAddr(addr vault.Address) {
	s.state.EncodeStorage(VestingContractKey, func() ([]byte, error) {
		return rlp.EncodeToBytes(addr)
	})
}

func (s *Staking) GetBridgeTarget() (result *BridgeTarget) {
	s.state.DecodeStorage(BridgeTargetKey, func(raw []byte) error {
		if len(raw) > 0 {
			target := BridgeTarget{}
			if err := rlp.Decode(bytes.NewReader(raw), &target); err != nil {
				s.logger.Warn("Error during decoding bridge target", "err", err)
				return err
			}
			result = &target
		}
		return nil
	})
	return
}

func (s *Staking) SetBridgeTargetRef(target *BridgeTarget) {
	s.state.EncodeStorage(BridgeTargetKey, func() ([]byte, error) {
		return rlp.EncodeToBytes(target)
	})
}
