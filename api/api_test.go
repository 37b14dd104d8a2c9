package api_test

import (
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meterio/stakevest/api"
	stakingapi "github.com/meterio/stakevest/api/staking"
	vestingapi "github.com/meterio/stakevest/api/vesting"
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

func newTestServer(t *testing.T) *httptest.Server {
	tok := token.NewMemLedger()
	tok.Mint(AdminAddr, wei(100000))
	tok.Mint(HolderAddr, wei(1000))
	au := auth.NewAdmin(AdminAddr)

	s := staking.NewStaking(state.NewMem(), tok, au, staking.StakingLedgerAddr)
	v := vesting.NewVesting(state.NewMem(), tok, au, vesting.VestingLedgerAddr)

	e := env.New(AdminAddr, 50)
	require.NoError(t, s.CreatePool(e, wei(1), wei(10), 100, 999999, 10, 3600, wei(1000)))
	require.NoError(t, s.Deposit(env.New(HolderAddr, 500), 0, wei(4)))
	require.NoError(t, v.AddLock(e, HolderAddr, wei(1), wei(3), 2000, 12000))

	ts := httptest.NewServer(api.New(s, v, "*"))
	t.Cleanup(ts.Close)
	return ts
}

func httpGetJSON(t *testing.T, url string, out interface{}) int {
	res, err := http.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	if out != nil && res.StatusCode == http.StatusOK {
		require.NoError(t, json.Unmarshal(body, out))
	}
	return res.StatusCode
}

func TestPoolEndpoints(t *testing.T) {
	ts := newTestServer(t)

	var pools []*stakingapi.Pool
	code := httpGetJSON(t, ts.URL+"/staking/pools", &pools)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, pools, 1)
	assert.Equal(t, wei(1).String(), pools[0].MinStake)
	assert.Equal(t, wei(4).String(), pools[0].TotalStaked)
	assert.Equal(t, uint64(10), pools[0].RewardRateMilli)

	var pool stakingapi.Pool
	code = httpGetJSON(t, ts.URL+"/staking/pools/"+pools[0].PoolHash, &pool)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, pools[0].PoolHash, pool.PoolHash)

	code = httpGetJSON(t, ts.URL+"/staking/pools/"+vault.Blake2b([]byte("no such pool")).String(), nil)
	assert.Equal(t, http.StatusNotFound, code)

	code = httpGetJSON(t, ts.URL+"/staking/pools/nothex", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestPositionAndTotalsEndpoints(t *testing.T) {
	ts := newTestServer(t)

	var positions []*stakingapi.Position
	code := httpGetJSON(t, ts.URL+"/staking/positions/"+HolderAddr.String(), &positions)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, positions, 1)
	assert.Equal(t, uint64(500+3600), positions[0].UnlockTime)

	// unknown addresses answer with an empty list, not an error
	code = httpGetJSON(t, ts.URL+"/staking/positions/"+AdminAddr.String(), &positions)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, positions, 0)

	var totals stakingapi.Totals
	code = httpGetJSON(t, ts.URL+"/staking/totals", &totals)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, totals.PoolCount)
}

func TestVestingEndpoints(t *testing.T) {
	ts := newTestServer(t)

	var vests []*vestingapi.Vest
	code := httpGetJSON(t, ts.URL+"/vesting/locks/"+HolderAddr.String(), &vests)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, vests, 1)
	assert.Equal(t, wei(3).String(), vests[0].TotalAmount)
	assert.Equal(t, uint64(2000), vests[0].StartDate)

	var balance vestingapi.Balance
	code = httpGetJSON(t, ts.URL+"/vesting/balance/"+HolderAddr.String(), &balance)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, wei(3).String(), balance.Balance)

	var total vestingapi.Total
	code = httpGetJSON(t, ts.URL+"/vesting/total", &total)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, wei(3).String(), total.VestedTotal)

	code = httpGetJSON(t, ts.URL+"/vesting/locks/nothex", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	code := httpGetJSON(t, ts.URL+"/metrics", nil)
	assert.Equal(t, http.StatusOK, code)
}
