package types_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/paw-chain/amm/x/amm/types"
)

func TestPoolKey(t *testing.T) {
	key := types.PoolKey(testPair)

	require.True(t, bytes.HasPrefix(key, types.PoolKeyPrefix))
	require.Equal(t, append([]byte{0x01, 4}, append([]byte("upaw"), append([]byte{5}, []byte("uatom")...)...)...), key)

	// length prefixes keep ("abc","defg") and ("abcd","efg") apart
	require.NotEqual(t,
		types.PoolKey(types.NewTradingPair("abc", "defg")),
		types.PoolKey(types.NewTradingPair("abcd", "efg")),
	)
}

func TestLiquidityTokenKey(t *testing.T) {
	key := types.LiquidityTokenKey(lpToken)

	require.True(t, bytes.HasPrefix(key, types.LiquidityTokenKeyPrefix))
	require.Equal(t, string(lpToken), string(key[len(types.LiquidityTokenKeyPrefix):]))
}
