package vault_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meterio/stakevest/vault"
)

func TestParseAddress(t *testing.T) {
	addr, err := vault.ParseAddress("0x0205c2D862cA051010698b69b54278cbAf945C0b")
	require.NoError(t, err)
	assert.Equal(t, "0x0205c2d862ca051010698b69b54278cbaf945c0b", addr.String())
	assert.False(t, addr.IsZero())
	assert.True(t, vault.Address{}.IsZero())

	_, err = vault.ParseAddress("0x0205")
	assert.Error(t, err)
	_, err = vault.ParseAddress("not hex at all")
	assert.Error(t, err)
}

func TestBytes32JSON(t *testing.T) {
	b32 := vault.Blake2b([]byte("json-round-trip"))
	data, err := json.Marshal(&b32)
	require.NoError(t, err)

	var decoded vault.Bytes32
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, b32, decoded)
}

func TestBlake2b(t *testing.T) {
	a := vault.Blake2b([]byte("stake"), []byte("vest"))
	b := vault.Blake2b([]byte("stakevest"))
	c := vault.Blake2b([]byte("stake"), []byte("vest"))

	// chunking does not matter, content does
	assert.Equal(t, a, b)
	assert.Equal(t, a, c)
	assert.NotEqual(t, a, vault.Blake2b([]byte("stakedvest")))
	assert.False(t, a.IsZero())
}
