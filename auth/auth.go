// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auth

import (
	"errors"

	"github.com/meterio/stakevest/vault"
)

// Authority answers the single capability question the engines ask.
type Authority interface {
	IsAdministrator(caller vault.Address) bool
}

var (
	errNotAdministrator   = errors.New("caller is not the administrator")
	errNotPendingAdmin    = errors.New("caller is not the pending administrator")
	errZeroAdministrator  = errors.New("administrator is zero address")
	errPendingNotProposed = errors.New("no pending administrator proposed")
)

// Admin is a single administrator with two-step transfer and renouncement.
type Admin struct {
	current vault.Address
	pending vault.Address
}

func NewAdmin(administrator vault.Address) *Admin {
	return &Admin{current: administrator}
}

func (a *Admin) IsAdministrator(caller vault.Address) bool {
	return !a.current.IsZero() && caller == a.current
}

func (a *Admin) Administrator() vault.Address {
	return a.current
}

// TransferAdmin proposes a new administrator. Takes effect only after AcceptAdmin.
func (a *Admin) TransferAdmin(caller, newAdmin vault.Address) error {
	if !a.IsAdministrator(caller) {
		return errNotAdministrator
	}
	if newAdmin.IsZero() {
		return errZeroAdministrator
	}
	a.pending = newAdmin
	return nil
}

// AcceptAdmin completes the two-step transfer; only the proposed address may call.
func (a *Admin) AcceptAdmin(caller vault.Address) error {
	if a.pending.IsZero() {
		return errPendingNotProposed
	}
	if caller != a.pending {
		return errNotPendingAdmin
	}
	a.current = a.pending
	a.pending = vault.Address{}
	return nil
}

// RenounceAdmin gives up administration forever.
func (a *Admin) RenounceAdmin(caller vault.Address) error {
	if !a.IsAdministrator(caller) {
		return errNotAdministrator
	}
	a.current = vault.Address{}
	a.pending = vault.Address{}
	return nil
}
