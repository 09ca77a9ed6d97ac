package keeper_test

import (
	"math/big"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/amm/x/amm/types"
	ledgertypes "github.com/paw-chain/amm/x/ledger/types"
)

func TestSwap_Valid(t *testing.T) {
	k, ledger, ctx := setupPool(t, 1_000, 1_000)
	require.NoError(t, ledger.Fund(ctx, bob, upaw, bal(1_000)))

	out, err := k.Swap(ctx, bob, pair, upaw, bal(1_000), uatom, bal(499))
	require.NoError(t, err)
	require.Equal(t, bal(499), out)

	pool, err := k.GetPool(ctx, pair)
	require.NoError(t, err)
	require.Equal(t, bal(2_000), pool.ReserveA, "the fee stays in the pool")
	require.Equal(t, bal(501), pool.ReserveB)

	require.True(t, ledger.GetBalance(ctx, bob, upaw).IsZero())
	require.Equal(t, bal(499), ledger.GetBalance(ctx, bob, uatom))
	requireInvariants(t, k, ctx)
}

func TestSwap_Rejections(t *testing.T) {
	k, ledger, ctx := setupPool(t, 1_000, 1_000)
	require.NoError(t, ledger.Fund(ctx, bob, upaw, bal(100)))

	before, err := k.GetPool(ctx, pair)
	require.NoError(t, err)

	tests := []struct {
		name     string
		pair     types.TradingPair
		assetIn  types.AssetID
		amountIn uint64
		assetOut types.AssetID
		min      uint64
		wantErr  error
	}{
		{"unknown pool", types.NewTradingPair(upaw, uusdc), upaw, 10, uusdc, 0, types.ErrPoolNotFound},
		{"asset in not in pair", pair, uusdc, 10, uatom, 0, types.ErrInvalidAssetIn},
		{"asset out not in pair", pair, upaw, 10, uusdc, 0, types.ErrInvalidAssetOut},
		{"slippage", pair, upaw, 100, uatom, 91, types.ErrInsufficientAmountOut},
		{"insufficient funds", pair, upaw, 101, uatom, 0, ledgertypes.ErrInsufficientFunds},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := k.Swap(ctx, bob, tc.pair, tc.assetIn, bal(tc.amountIn), tc.assetOut, bal(tc.min))
			require.ErrorIs(t, err, tc.wantErr)
		})
	}

	after, err := k.GetPool(ctx, pair)
	require.NoError(t, err)
	require.Equal(t, before, after)
	require.Equal(t, bal(100), ledger.GetBalance(ctx, bob, upaw))
	requireInvariants(t, k, ctx)
}

func TestSwap_RoundTripLosesToFee(t *testing.T) {
	k, ledger, ctx := setupPool(t, 1_000_000, 1_000_000)
	require.NoError(t, ledger.Fund(ctx, bob, upaw, bal(10_000)))

	out, err := k.Swap(ctx, bob, pair, upaw, bal(10_000), uatom, types.ZeroBalance())
	require.NoError(t, err)

	back, err := k.Swap(ctx, bob, pair, uatom, out, upaw, types.ZeroBalance())
	require.NoError(t, err)
	require.True(t, back.LT(bal(10_000)), "got back %s", back)

	pool, err := k.GetPool(ctx, pair)
	require.NoError(t, err)
	require.GreaterOrEqual(t, pool.ConstantProduct().Cmp(big.NewInt(1_000_000*1_000_000)), 0, "k must not shrink")
	requireInvariants(t, k, ctx)
}

func TestQuoteSwapAndSpotPrice(t *testing.T) {
	k, _, ctx := setupPool(t, 1_000, 4_000)

	quoted, err := k.QuoteSwap(ctx, pair, upaw, bal(100), uatom)
	require.NoError(t, err)
	// fee 0, 100*4000/1100 = 363
	require.Equal(t, bal(363), quoted)

	price, err := k.SpotPrice(ctx, pair, upaw)
	require.NoError(t, err)
	require.True(t, price.Equal(math.LegacyNewDec(4)), "got %s", price)

	_, err = k.SpotPrice(ctx, types.NewTradingPair(upaw, uusdc), upaw)
	require.ErrorIs(t, err, types.ErrPoolNotFound)

	pool, err := k.PoolByLiquidityToken(ctx, lpToken)
	require.NoError(t, err)
	require.Equal(t, pair, pool.Assets)

	_, err = k.PoolByLiquidityToken(ctx, "lp-missing")
	require.ErrorIs(t, err, types.ErrPoolNotFound)
}
