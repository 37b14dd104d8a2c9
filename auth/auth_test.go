package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meterio/stakevest/auth"
	"github.com/meterio/stakevest/vault"
)

var (
	AdminAddr    = vault.MustParseAddress("0x0205c2D862cA051010698b69b54278cbAf945C0b")
	NewAdminAddr = vault.MustParseAddress("0x8A88c59bF15451F9Deb1d62f7734FeCe2002668E")
	OutsiderAddr = vault.MustParseAddress("0x6f91b8aae9f62bcc966f86b64e8c67fbda309a33")
)

func TestIsAdministrator(t *testing.T) {
	a := auth.NewAdmin(AdminAddr)
	assert.True(t, a.IsAdministrator(AdminAddr))
	assert.False(t, a.IsAdministrator(OutsiderAddr))
	assert.False(t, a.IsAdministrator(vault.Address{}))
}

func TestTransferAdmin(t *testing.T) {
	a := auth.NewAdmin(AdminAddr)

	assert.Error(t, a.TransferAdmin(OutsiderAddr, NewAdminAddr))
	assert.Error(t, a.TransferAdmin(AdminAddr, vault.Address{}))
	assert.Error(t, a.AcceptAdmin(NewAdminAddr)) // nothing proposed yet

	assert.NoError(t, a.TransferAdmin(AdminAddr, NewAdminAddr))
	// the proposal alone changes nothing
	assert.True(t, a.IsAdministrator(AdminAddr))
	assert.False(t, a.IsAdministrator(NewAdminAddr))

	assert.Error(t, a.AcceptAdmin(OutsiderAddr))
	assert.NoError(t, a.AcceptAdmin(NewAdminAddr))
	assert.True(t, a.IsAdministrator(NewAdminAddr))
	assert.False(t, a.IsAdministrator(AdminAddr))
}

func TestRenounceAdmin(t *testing.T) {
	a := auth.NewAdmin(AdminAddr)
	assert.Error(t, a.RenounceAdmin(OutsiderAddr))
	assert.NoError(t, a.RenounceAdmin(AdminAddr))
	assert.False(t, a.IsAdministrator(AdminAddr))
	// nobody can administrate or propose afterwards
	assert.Error(t, a.TransferAdmin(AdminAddr, NewAdminAddr))
}
