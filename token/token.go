// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math/big"

	"github.com/meterio/stakevest/vault"
)

// Ledger is the fungible-token collaborator consumed by the staking and vesting
// engines. Every call either fully succeeds or reports failure with no effect.
type Ledger interface {
	// Transfer moves amount from `from` to `to`. The caller vouches for `from`.
	Transfer(from, to vault.Address, amount *big.Int) bool
	// TransferFrom moves amount from `from` to `to`, spending `spender`'s allowance.
	TransferFrom(spender, from, to vault.Address, amount *big.Int) bool
	BalanceOf(addr vault.Address) *big.Int
	Approve(owner, spender vault.Address, amount *big.Int) bool
	Allowance(owner, spender vault.Address) *big.Int
}
