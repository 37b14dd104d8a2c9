package token_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meterio/stakevest/token"
	"github.com/meterio/stakevest/vault"
)

var (
	AliceAddr = vault.MustParseAddress("0x0205c2D862cA051010698b69b54278cbAf945C0b")
	BobAddr   = vault.MustParseAddress("0x8A88c59bF15451F9Deb1d62f7734FeCe2002668E")
	CarolAddr = vault.MustParseAddress("0x6f91b8aae9f62bcc966f86b64e8c67fbda309a33")
)

func TestTransfer(t *testing.T) {
	l := token.NewMemLedger()
	l.Mint(AliceAddr, big.NewInt(100))

	assert.True(t, l.Transfer(AliceAddr, BobAddr, big.NewInt(40)))
	assert.Equal(t, 0, big.NewInt(60).Cmp(l.BalanceOf(AliceAddr)))
	assert.Equal(t, 0, big.NewInt(40).Cmp(l.BalanceOf(BobAddr)))

	// overdraft and negative amounts are refused without effect
	assert.False(t, l.Transfer(AliceAddr, BobAddr, big.NewInt(61)))
	assert.False(t, l.Transfer(AliceAddr, BobAddr, big.NewInt(-1)))
	assert.Equal(t, 0, big.NewInt(60).Cmp(l.BalanceOf(AliceAddr)))

	// zero-amount transfers succeed
	assert.True(t, l.Transfer(AliceAddr, BobAddr, big.NewInt(0)))
}

func TestTransferFrom(t *testing.T) {
	l := token.NewMemLedger()
	l.Mint(AliceAddr, big.NewInt(100))

	assert.False(t, l.TransferFrom(CarolAddr, AliceAddr, BobAddr, big.NewInt(10)))

	assert.True(t, l.Approve(AliceAddr, CarolAddr, big.NewInt(30)))
	assert.Equal(t, 0, big.NewInt(30).Cmp(l.Allowance(AliceAddr, CarolAddr)))

	assert.True(t, l.TransferFrom(CarolAddr, AliceAddr, BobAddr, big.NewInt(10)))
	assert.Equal(t, 0, big.NewInt(20).Cmp(l.Allowance(AliceAddr, CarolAddr)))
	assert.Equal(t, 0, big.NewInt(10).Cmp(l.BalanceOf(BobAddr)))

	// allowance caps the pull even when the balance would cover it
	assert.False(t, l.TransferFrom(CarolAddr, AliceAddr, BobAddr, big.NewInt(25)))

	// allowance without balance still fails the underlying transfer
	assert.True(t, l.Approve(BobAddr, CarolAddr, big.NewInt(99)))
	assert.False(t, l.TransferFrom(CarolAddr, BobAddr, AliceAddr, big.NewInt(50)))
	assert.Equal(t, 0, big.NewInt(99).Cmp(l.Allowance(BobAddr, CarolAddr)))
}

func TestBalanceOfIsACopy(t *testing.T) {
	l := token.NewMemLedger()
	l.Mint(AliceAddr, big.NewInt(100))

	bal := l.BalanceOf(AliceAddr)
	bal.SetInt64(0)
	assert.Equal(t, 0, big.NewInt(100).Cmp(l.BalanceOf(AliceAddr)))
}
