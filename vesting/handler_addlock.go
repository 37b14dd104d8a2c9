package vesting

import (
	"math/big"

	"github.com/meterio/stakevest/env"
	"github.com/meterio/stakevest/vault"
)

// AddLock escrows a new linear-release grant for beneficiary, pulling the full
// totalAmount from the administrator before any state change.
func (v *Vesting) AddLock(e *env.Env, beneficiary vault.Address, startAmount, totalAmount *big.Int, startDate, endDate uint64) error {
	if !v.auth.IsAdministrator(e.Caller()) {
		return ErrOnlyAdministrator
	}
	if beneficiary.IsZero() {
		return ErrZeroAddress
	}
	if totalAmount == nil || totalAmount.Sign() <= 0 || startAmount == nil || startAmount.Sign() < 0 {
		return ErrZeroAmount
	}
	if startAmount.Cmp(totalAmount) > 0 {
		return ErrStartExceedsTotal
	}
	if startDate <= e.Now() {
		return ErrStartDateInPast
	}
	if endDate <= startDate {
		return ErrTimestampsMisconfigured
	}

	holders := v.GetVestHolderList()
	vestedTotal := v.GetVestedTotal()

	// sanity checked, pull the escrow before any state change
	if !v.token.Transfer(e.Caller(), v.addr, totalAmount) {
		v.logger.Error("escrow pull failed", "admin", e.Caller(), "amount", totalAmount)
		return ErrTransferFailed
	}

	vest := &Vest{
		StartAmount: startAmount,
		TotalAmount: totalAmount,
		StartDate:   startDate,
		EndDate:     endDate,
		Claimed:     big.NewInt(0),
	}
	holder := holders.Get(beneficiary)
	if holder == nil {
		holder = NewVestHolder(beneficiary)
		holder.AddVest(vest)
		holders.Add(holder)
	} else {
		holder.AddVest(vest)
	}

	v.SetVestHolderList(holders)
	v.SetVestedTotal(vestedTotal.Add(vestedTotal, totalAmount))

	lockCounter.Inc()
	e.AddEvent(&VestingAddedEvent{
		Beneficiary: beneficiary,
		StartAmount: startAmount,
		TotalAmount: totalAmount,
		StartDate:   startDate,
		EndDate:     endDate,
	})
	v.logger.Info("lock added", "beneficiary", beneficiary, "total", totalAmount, "window", endDate-startDate)
	return nil
}
