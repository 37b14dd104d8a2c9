// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vault

import "math/big"

// Constants of the ledger engines.
const (
	// RewardRateDenom reward rates are expressed per-mille: reward units per 1000 units of principal.
	RewardRateDenom uint64 = 1000
)

var (
	// UnitWei the smallest denomination scale, 1 token = 1e18 wei.
	UnitWei = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
)
