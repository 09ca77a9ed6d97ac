package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/paw-chain/amm/x/amm/types"
)

const (
	assetA  types.AssetID = "upaw"
	assetB  types.AssetID = "uatom"
	assetC  types.AssetID = "uusdc"
	lpToken types.AssetID = "lp-upaw-uatom"
)

var testPair = types.NewTradingPair(assetA, assetB)

// makePool builds a pool snapshot with the given reserves and total liquidity.
func makePool(reserveA, reserveB, total uint64) types.LiquidityPool {
	pool := types.NewLiquidityPool(testPair, lpToken)
	pool.ReserveA = types.NewBalance(reserveA)
	pool.ReserveB = types.NewBalance(reserveB)
	pool.TotalLiquidity = types.NewBalance(total)
	return pool
}

func TestNewLiquidityPool_IsEmpty(t *testing.T) {
	pool := types.NewLiquidityPool(testPair, lpToken)

	require.True(t, pool.IsEmpty())
	require.Equal(t, testPair, pool.Assets)
	require.Equal(t, lpToken, pool.LiquidityToken)
	require.NoError(t, pool.Validate())
}

func TestTradingPairValidate(t *testing.T) {
	tests := []struct {
		name string
		pair types.TradingPair
		ok   bool
	}{
		{"valid", testPair, true},
		{"reversed is also valid", types.NewTradingPair(assetB, assetA), true},
		{"identical assets", types.NewTradingPair(assetA, assetA), false},
		{"empty asset a", types.NewTradingPair("", assetB), false},
		{"bad denom b", types.NewTradingPair(assetA, "1bad"), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.pair.Validate()
			if tc.ok {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, types.ErrInvalidTradingPair)
		})
	}
}

func TestTradingPairIsOrdered(t *testing.T) {
	reversed := types.NewTradingPair(assetB, assetA)

	require.NotEqual(t, testPair, reversed)
	require.NotEqual(t, types.PoolKey(testPair), types.PoolKey(reversed))
	require.True(t, reversed.Contains(assetA))
	require.False(t, reversed.Contains(assetC))
	require.Equal(t, "upaw/uatom", testPair.String())
}

func TestLiquidityPoolValidate(t *testing.T) {
	tests := []struct {
		name    string
		pool    types.LiquidityPool
		wantErr error
	}{
		{"empty", makePool(0, 0, 0), nil},
		{"funded", makePool(100, 200, 141), nil},
		{"missing reserve b", makePool(100, 0, 10), types.ErrInvalidPoolState},
		{"missing liquidity", makePool(100, 100, 0), types.ErrInvalidPoolState},
		{"liquidity without reserves", makePool(0, 0, 5), types.ErrInvalidPoolState},
		{
			"liquidity token is a pool asset",
			func() types.LiquidityPool {
				p := makePool(0, 0, 0)
				p.LiquidityToken = assetA
				return p
			}(),
			types.ErrInvalidPoolState,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.pool.Validate()
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestReserveOf(t *testing.T) {
	pool := makePool(10, 20, 14)

	r, err := pool.ReserveOf(assetA)
	require.NoError(t, err)
	require.Equal(t, types.NewBalance(10), r)

	r, err = pool.ReserveOf(assetB)
	require.NoError(t, err)
	require.Equal(t, types.NewBalance(20), r)

	_, err = pool.ReserveOf(assetC)
	require.ErrorIs(t, err, types.ErrInvalidAsset)
}

func TestConstantProduct(t *testing.T) {
	pool := types.NewLiquidityPool(testPair, lpToken)
	pool.ReserveA = types.MaxBalance()
	pool.ReserveB = types.MaxBalance()

	// (2^256-1)^2 needs 512 bits and must not be truncated.
	require.Equal(t, 512, pool.ConstantProduct().BitLen())
	require.Equal(t, "200", makePool(10, 20, 14).ConstantProduct().String())
}
