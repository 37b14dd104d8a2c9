// Copyright (c) 2020 The Meter.io developers
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying

// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vesting

import (
	"github.com/meterio/stakevest/vesting"
)

type Vest struct {
	StartAmount string `json:"startAmount"`
	TotalAmount string `json:"totalAmount"`
	StartDate   uint64 `json:"startDate"`
	EndDate     uint64 `json:"endDate"`
	Claimed     string `json:"claimed"`
}

func convertVests(vests []vesting.Vest) []*Vest {
	result := make([]*Vest, 0, len(vests))
	for _, v := range vests {
		result = append(result, &Vest{
			StartAmount: v.StartAmount.String(),
			TotalAmount: v.TotalAmount.String(),
			StartDate:   v.StartDate,
			EndDate:     v.EndDate,
			Claimed:     v.Claimed.String(),
		})
	}
	return result
}

type Balance struct {
	Balance   string `json:"balance"`
	Claimable string `json:"claimable"`
}

type Total struct {
	VestedTotal string `json:"vestedTotal"`
}
