// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vesting

import (
	"bytes"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/meterio/stakevest/vault"
)

// the global storage keys of the vesting ledger
var (
	VestingLedgerAddr = vault.BytesToAddress([]byte("vesting-ledger-address"))

	VestHolderListKey  = vault.Blake2b([]byte("vest-holder-list-key"))
	VestedTotalKey     = vault.Blake2b([]byte("vested-total-key"))
	StakingContractKey = vault.Blake2b([]byte("staking-contract-key"))
)

// VestHolder List
func (v *Vesting) GetVestHolderList() (result *VestHolderList) {
	v.state.DecodeStorage(VestHolderListKey, func(raw []byte) error {
		holders := make([]*VestHolder, 0)
		if len(raw) > 0 {
			if err := rlp.Decode(bytes.NewReader(raw), &holders); err != nil {
				v.logger.Warn("Error during decoding vest holder list", "err", err)
				return err
			}
		}
		result = newVestHolderList(holders)
		return nil
	})
	return
}

func (v *Vesting) SetVestHolderList(holderList *VestHolderList) {
	v.state.EncodeStorage(VestHolderListKey, func() ([]byte, error) {
		return rlp.EncodeToBytes(holderList.holders)
	})
}

func (v *Vesting) GetVestedTotal() (result *big.Int) {
	result = new(big.Int)
	v.state.DecodeStorage(VestedTotalKey, func(raw []byte) error {
		if len(raw) > 0 {
			if err := rlp.Decode(bytes.NewReader(raw), result); err != nil {
				v.logger.Warn("Error during decoding vested total", "err", err)
				return err
			}
		}
		return nil
	})
	return
}

func (v *Vesting) SetVestedTotal(val *big.Int) {
	v.state.EncodeStorage(VestedTotalKey, func() ([]byte, error) {
		return rlp.EncodeToBytes(val)
	})
}

func (v *Vesting) GetStakingContract() (result vault.Address) {
	v.state.DecodeStorage(StakingContractKey, func(raw []byte) error {
		if len(raw) > 0 {
			if err := rlp.Decode(bytes.NewReader(raw), &result); err != nil {
				v.logger.Warn("Error during decoding staking contract", "err", err)
				return err
			}
		}
		return nil
	})
	return
}

func (v *Vesting) SetStakingContractAddr(addr vault.Address) {
	v.state.EncodeStorage(StakingContractKey, func() ([]byte, error) {
		return rlp.EncodeToBytes(addr)
	})
}
