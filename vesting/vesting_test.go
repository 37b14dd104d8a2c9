package vesting_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meterio/stakevest/auth"
	"github.com/meterio/stakevest/env"
	"github.com/meterio/stakevest/staking"
	"github.com/meterio/stakevest/state"
	"github.com/meterio/stakevest/token"
	"github.com/meterio/stakevest/vault"
	"github.com/meterio/stakevest/vesting"
)

var (
	AdminAddr  = vault.MustParseAddress("0x0205c2D862cA051010698b69b54278cbAf945C0b")
	HolderAddr = vault.MustParseAddress("0x8A88c59bF15451F9Deb1d62f7734FeCe2002668E")
)

func wei(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1e18))
}

func newTestVesting() (*vesting.Vesting, *token.MemLedger) {
	tok := token.NewMemLedger()
	tok.Mint(AdminAddr, wei(100000))
	v := vesting.NewVesting(state.NewMem(), tok, auth.NewAdmin(AdminAddr), vesting.VestingLedgerAddr)
	return v, tok
}

// addGrant escrows the reference grant: 1 token immediately at startDate 2000,
// growing linearly to 3 tokens at endDate 12000.
func addGrant(t *testing.T, v *vesting.Vesting) {
	err := v.AddLock(env.New(AdminAddr, 1000), HolderAddr, wei(1), wei(3), 2000, 12000)
	require.NoError(t, err)
}

func TestClaimableAt(t *testing.T) {
	vest := &vesting.Vest{
		StartAmount: wei(1),
		TotalAmount: wei(3),
		StartDate:   2000,
		EndDate:     12000,
		Claimed:     big.NewInt(0),
	}

	// nothing before and at the start date
	assert.Equal(t, 0, vesting.ClaimableAt(vest, 1999).Sign())
	assert.Equal(t, 0, vesting.ClaimableAt(vest, 2000).Sign())

	// halfway: 1 + (3-1)*5000/10000 = 2
	assert.Equal(t, 0, wei(2).Cmp(vesting.ClaimableAt(vest, 7000)))

	// full amount at and after the end date
	assert.Equal(t, 0, wei(3).Cmp(vesting.ClaimableAt(vest, 12000)))
	assert.Equal(t, 0, wei(3).Cmp(vesting.ClaimableAt(vest, 99999)))

	// already-claimed amount is subtracted
	vest.Claimed = wei(2)
	assert.Equal(t, 0, wei(1).Cmp(vesting.ClaimableAt(vest, 12000)))
	assert.Equal(t, 0, vesting.ClaimableAt(vest, 7000).Sign())
}

func TestClaimableAtTruncates(t *testing.T) {
	// 3-second window: interior points divide with a remainder
	vest := &vesting.Vest{
		StartAmount: wei(1),
		TotalAmount: wei(3),
		StartDate:   2000,
		EndDate:     2003,
		Claimed:     big.NewInt(0),
	}
	// 1e18 + 2e18/3, truncated
	expected, _ := new(big.Int).SetString("1666666666666666666", 10)
	assert.Equal(t, 0, expected.Cmp(vesting.ClaimableAt(vest, 2001)))
}

func TestAddLock(t *testing.T) {
	v, tok := newTestVesting()

	err := v.AddLock(env.New(HolderAddr, 1000), HolderAddr, wei(1), wei(3), 2000, 12000)
	assert.Equal(t, vesting.ErrOnlyAdministrator, err)

	adminBefore := tok.BalanceOf(AdminAddr)
	addGrant(t, v)

	assert.Equal(t, 0, wei(3).Cmp(v.VestedTotal()))
	assert.Equal(t, 0, wei(3).Cmp(tok.BalanceOf(vesting.VestingLedgerAddr)))
	assert.Equal(t, 0, new(big.Int).Sub(adminBefore, wei(3)).Cmp(tok.BalanceOf(AdminAddr)))
	assert.Equal(t, 0, wei(3).Cmp(v.BalanceOf(HolderAddr)))

	// a second grant for the same beneficiary accumulates
	err = v.AddLock(env.New(AdminAddr, 1000), HolderAddr, big.NewInt(0), wei(5), 3000, 4000)
	require.NoError(t, err)
	assert.Equal(t, 0, wei(8).Cmp(v.VestedTotal()))
	assert.Len(t, v.VestsOf(HolderAddr), 2)
}

func TestAddLockValidation(t *testing.T) {
	v, _ := newTestVesting()
	e := env.New(AdminAddr, 1000)

	tests := []struct {
		beneficiary  vault.Address
		start, total *big.Int
		sd, ed       uint64
		expected     error
	}{
		{vault.Address{}, wei(1), wei(3), 2000, 12000, vesting.ErrZeroAddress},
		{HolderAddr, wei(1), big.NewInt(0), 2000, 12000, vesting.ErrZeroAmount},
		{HolderAddr, big.NewInt(-1), wei(3), 2000, 12000, vesting.ErrZeroAmount},
		{HolderAddr, wei(4), wei(3), 2000, 12000, vesting.ErrStartExceedsTotal},
		{HolderAddr, wei(1), wei(3), 1000, 12000, vesting.ErrStartDateInPast},
		{HolderAddr, wei(1), wei(3), 500, 12000, vesting.ErrStartDateInPast},
		{HolderAddr, wei(1), wei(3), 2000, 2000, vesting.ErrTimestampsMisconfigured},
		{HolderAddr, wei(1), wei(3), 2000, 1500, vesting.ErrTimestampsMisconfigured},
	}
	for _, tt := range tests {
		err := v.AddLock(e, tt.beneficiary, tt.start, tt.total, tt.sd, tt.ed)
		assert.Equal(t, tt.expected, err)
	}
	assert.Equal(t, 0, v.VestedTotal().Sign())
}

func TestAddLockPullFailure(t *testing.T) {
	tok := token.NewMemLedger() // admin holds nothing
	v := vesting.NewVesting(state.NewMem(), tok, auth.NewAdmin(AdminAddr), vesting.VestingLedgerAddr)

	err := v.AddLock(env.New(AdminAddr, 1000), HolderAddr, wei(1), wei(3), 2000, 12000)
	assert.Equal(t, vesting.ErrTransferFailed, err)
	assert.Equal(t, 0, v.VestedTotal().Sign())
	assert.Len(t, v.VestsOf(HolderAddr), 0)
}

func TestClaimAll(t *testing.T) {
	v, tok := newTestVesting()
	addGrant(t, v)

	err := v.ClaimAll(env.New(AdminAddr, 7000))
	assert.Equal(t, vesting.ErrNoLocksForCaller, err)

	err = v.ClaimAll(env.New(HolderAddr, 1500))
	assert.Equal(t, vesting.ErrNothingToClaim, err)

	// halfway through the window: 2 of 3 released
	e := env.New(HolderAddr, 7000)
	require.NoError(t, v.ClaimAll(e))
	assert.Equal(t, 0, wei(2).Cmp(tok.BalanceOf(HolderAddr)))
	assert.Equal(t, 0, wei(1).Cmp(v.VestedTotal()))
	assert.Equal(t, 0, wei(1).Cmp(v.BalanceOf(HolderAddr)))
	require.Len(t, e.Events(), 1)
	claimed := e.Events()[0].(*vesting.ClaimedEvent)
	assert.Equal(t, HolderAddr, claimed.Caller)
	assert.Equal(t, 0, wei(2).Cmp(claimed.Amount))

	// immediate second claim releases nothing
	err = v.ClaimAll(env.New(HolderAddr, 7000))
	assert.Equal(t, vesting.ErrNothingToClaim, err)

	// past the end date the remainder pays out
	require.NoError(t, v.ClaimAll(env.New(HolderAddr, 20000)))
	assert.Equal(t, 0, wei(3).Cmp(tok.BalanceOf(HolderAddr)))
	assert.Equal(t, 0, v.VestedTotal().Sign())
	assert.Equal(t, 0, tok.BalanceOf(vesting.VestingLedgerAddr).Sign())

	err = v.ClaimAll(env.New(HolderAddr, 30000))
	assert.Equal(t, vesting.ErrNothingToClaim, err)
}

func TestTransferFacade(t *testing.T) {
	v, tok := newTestVesting()
	addGrant(t, v)

	// parameters are nominal, the caller's matured amount pays out
	require.NoError(t, v.Transfer(env.New(HolderAddr, 7000), AdminAddr, wei(999)))
	assert.Equal(t, 0, wei(2).Cmp(tok.BalanceOf(HolderAddr)))

	assert.Equal(t, 0, wei(1).Cmp(v.TotalSupply()))
	assert.Equal(t, 0, wei(1).Cmp(v.ClaimableOf(HolderAddr, 20000)))
	assert.Equal(t, 0, v.ClaimableOf(AdminAddr, 20000).Sign())
}

// bridged returns a staking engine sharing tok, with a deposit pool at index 0
// already designated as the bridge target and vesting bound both ways.
func bridged(t *testing.T, v *vesting.Vesting, tok *token.MemLedger) *staking.Staking {
	s := staking.NewStaking(state.NewMem(), tok, auth.NewAdmin(AdminAddr), staking.StakingLedgerAddr)
	e := env.New(AdminAddr, 50)
	require.NoError(t, s.CreatePool(e, wei(1), wei(10), 100, 999999, 10, 3600, wei(1000)))
	require.NoError(t, s.SetBridgeTarget(e, 0))
	require.NoError(t, s.SetVestingContract(e, v.Address()))
	require.NoError(t, v.SetStakingContract(e, s))
	return s
}

func TestSetStakingContract(t *testing.T) {
	v, tok := newTestVesting()

	// the staking side does not point back yet
	s := staking.NewStaking(state.NewMem(), tok, auth.NewAdmin(AdminAddr), staking.StakingLedgerAddr)
	err := v.SetStakingContract(env.New(AdminAddr, 50), s)
	assert.Equal(t, vesting.ErrCounterpartMismatch, err)

	err = v.SetStakingContract(env.New(HolderAddr, 50), s)
	assert.Equal(t, vesting.ErrOnlyAdministrator, err)

	s = bridged(t, v, tok)

	// one-shot binding
	err = v.SetStakingContract(env.New(AdminAddr, 50), s)
	assert.Equal(t, vesting.ErrContractAlreadySet, err)

	// the standing allowance lets the staking ledger pull escrow
	allowance := tok.Allowance(vesting.VestingLedgerAddr, staking.StakingLedgerAddr)
	assert.True(t, allowance.Cmp(wei(1000000)) > 0)
}

func TestRestoreStakingContract(t *testing.T) {
	v, tok := newTestVesting()
	s := bridged(t, v, tok)

	// a fresh engine over the same state simulates a restart
	other := staking.NewStaking(state.NewMem(), tok, auth.NewAdmin(AdminAddr), vault.BytesToAddress([]byte("other")))
	err := v.RestoreStakingContract(other)
	assert.Equal(t, vesting.ErrStakeContractNotSet, err)

	assert.NoError(t, v.RestoreStakingContract(s))
}

func TestClaim2Stake(t *testing.T) {
	v, tok := newTestVesting()

	err := v.Claim2Stake(env.New(HolderAddr, 7000))
	assert.Equal(t, vesting.ErrStakeContractNotSet, err)

	s := bridged(t, v, tok)
	addGrant(t, v)

	err = v.Claim2Stake(env.New(HolderAddr, 1500))
	assert.Equal(t, vesting.ErrNothingToClaim, err)

	// halfway: 2 tokens leave vesting escrow and become a staked position
	e := env.New(HolderAddr, 7000)
	require.NoError(t, v.Claim2Stake(e))

	assert.Equal(t, 0, wei(1).Cmp(v.VestedTotal()))
	assert.Equal(t, 0, wei(1).Cmp(tok.BalanceOf(vesting.VestingLedgerAddr)))
	assert.Equal(t, 0, tok.BalanceOf(HolderAddr).Sign())

	positions := s.PositionsOf(HolderAddr)
	require.Len(t, positions, 1)
	assert.Equal(t, uint64(7000+3600), positions[0].UnlockTime)
	// 2 principal + 1% reward
	expected := new(big.Int).Add(wei(2), new(big.Int).Div(wei(2), big.NewInt(100)))
	assert.Equal(t, 0, expected.Cmp(positions[0].TotalAmount))

	// both the bridged deposit and the claim surface as events
	var sawDeposit, sawClaimed bool
	for _, ev := range e.Events() {
		switch ev.(type) {
		case *staking.DepositEvent:
			sawDeposit = true
		case *vesting.ClaimedEvent:
			sawClaimed = true
		}
	}
	assert.True(t, sawDeposit)
	assert.True(t, sawClaimed)

	// the grant advanced: nothing more to bridge right now
	err = v.Claim2Stake(env.New(HolderAddr, 7000))
	assert.Equal(t, vesting.ErrNothingToClaim, err)

	// the staked position pays out the usual way once matured
	require.NoError(t, s.ClaimAll(env.New(HolderAddr, 20000)))
	assert.Equal(t, 0, expected.Cmp(tok.BalanceOf(HolderAddr)))
}

func TestClaim2StakeRespectsPoolRules(t *testing.T) {
	v, tok := newTestVesting()
	bridged(t, v, tok)

	// grant releasing more than the pool's per-caller max of 10
	err := v.AddLock(env.New(AdminAddr, 1000), HolderAddr, wei(20), wei(20), 2000, 12000)
	require.NoError(t, err)

	e := env.New(HolderAddr, 7000)
	err = v.Claim2Stake(e)
	assert.Equal(t, staking.ErrPoolMaxStake, err)

	// the failed bridge leaves the grant untouched
	assert.Equal(t, 0, wei(20).Cmp(v.VestedTotal()))
	assert.Equal(t, 0, wei(20).Cmp(v.ClaimableOf(HolderAddr, 7000)))
	require.NoError(t, v.ClaimAll(env.New(HolderAddr, 7000)))
	assert.Equal(t, 0, wei(20).Cmp(tok.BalanceOf(HolderAddr)))
}
