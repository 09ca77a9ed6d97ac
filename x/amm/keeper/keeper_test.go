package keeper_test

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/paw-chain/amm/testutil/keeper"
	"github.com/paw-chain/amm/x/amm/keeper"
	"github.com/paw-chain/amm/x/amm/types"
	ledgerkeeper "github.com/paw-chain/amm/x/ledger/keeper"
)

const (
	upaw    types.AssetID = "upaw"
	uatom   types.AssetID = "uatom"
	uusdc   types.AssetID = "uusdc"
	lpToken types.AssetID = "lp-upaw-uatom"

	alice = "alice"
	bob   = "bob"
)

var pair = types.NewTradingPair(upaw, uatom)

func bal(v uint64) types.Balance { return types.NewBalance(v) }

func amounts(a, b uint64) types.Amounts { return types.NewAmounts(bal(a), bal(b)) }

// setupPool creates the upaw/uatom pool and deposits (a, b) from alice.
func setupPool(t *testing.T, a, b uint64) (*keeper.Keeper, ledgerkeeper.Keeper, sdk.Context) {
	k, ledger, ctx := keepertest.AMMKeeper(t)
	_, err := k.CreatePool(ctx, alice, pair, lpToken)
	require.NoError(t, err)

	fund(t, ledger, ctx, alice, a, b)
	_, err = k.AddLiquidity(ctx, alice, pair, amounts(a, b), types.ZeroBalance())
	require.NoError(t, err)
	return k, ledger, ctx
}

func fund(t *testing.T, ledger ledgerkeeper.Keeper, ctx sdk.Context, account string, a, b uint64) {
	require.NoError(t, ledger.Fund(ctx, account, upaw, bal(a)))
	require.NoError(t, ledger.Fund(ctx, account, uatom, bal(b)))
}

func requireInvariants(t *testing.T, k *keeper.Keeper, ctx sdk.Context) {
	msg, broken := keeper.AllInvariants(*k)(ctx)
	require.False(t, broken, msg)
}

func TestCreatePool(t *testing.T) {
	k, _, ctx := keepertest.AMMKeeper(t)

	pool, err := k.CreatePool(ctx, alice, pair, lpToken)
	require.NoError(t, err)
	require.True(t, pool.IsEmpty())

	stored, err := k.GetPool(ctx, pair)
	require.NoError(t, err)
	require.Equal(t, pool, stored)
	require.True(t, k.HasPool(ctx, pair))

	got, err := k.GetPairByLiquidityToken(ctx, lpToken)
	require.NoError(t, err)
	require.Equal(t, pair, got)

	var found bool
	for _, ev := range ctx.EventManager().Events() {
		if ev.Type == types.EventTypeCreatePool {
			found = true
		}
	}
	require.True(t, found, "create_pool event emitted")
	requireInvariants(t, k, ctx)
}

func TestCreatePool_Rejections(t *testing.T) {
	k, ledger, ctx := keepertest.AMMKeeper(t)
	_, err := k.CreatePool(ctx, alice, pair, lpToken)
	require.NoError(t, err)
	require.NoError(t, ledger.Fund(ctx, alice, "ufunded", bal(1)))

	tests := []struct {
		name    string
		pair    types.TradingPair
		token   types.AssetID
		wantErr error
	}{
		{"duplicate pair", pair, "lp-other", types.ErrPoolAlreadyExists},
		{"token bound to another pair", types.NewTradingPair(upaw, uusdc), lpToken, types.ErrLiquidityTokenInUse},
		{"token with existing supply", types.NewTradingPair(upaw, uusdc), "ufunded", types.ErrLiquidityTokenInUse},
		{"token traded in another pool", types.NewTradingPair(uusdc, "ufoo"), uatom, types.ErrLiquidityTokenInUse},
		{"identical assets", types.NewTradingPair(upaw, upaw), "lp-upaw", types.ErrInvalidTradingPair},
		{"token is a pool asset", types.NewTradingPair(upaw, uusdc), uusdc, types.ErrInvalidPoolState},
		{"invalid token", types.NewTradingPair(upaw, uusdc), "", types.ErrInvalidPoolState},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := k.CreatePool(ctx, alice, tc.pair, tc.token)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}

	pools, err := k.GetAllPools(ctx)
	require.NoError(t, err)
	require.Len(t, pools, 1)
}

func TestCreatePool_ReversedPairIsDistinct(t *testing.T) {
	k, _, ctx := keepertest.AMMKeeper(t)

	_, err := k.CreatePool(ctx, alice, pair, lpToken)
	require.NoError(t, err)
	_, err = k.CreatePool(ctx, alice, types.NewTradingPair(uatom, upaw), "lp-uatom-upaw")
	require.NoError(t, err)

	pools, err := k.GetAllPools(ctx)
	require.NoError(t, err)
	require.Len(t, pools, 2)
}

func TestGetPool_NotFound(t *testing.T) {
	k, _, ctx := keepertest.AMMKeeper(t)

	_, err := k.GetPool(ctx, pair)
	require.ErrorIs(t, err, types.ErrPoolNotFound)
	_, err = k.GetPairByLiquidityToken(ctx, lpToken)
	require.ErrorIs(t, err, types.ErrPoolNotFound)
	require.False(t, k.HasPool(ctx, pair))
}

func TestSetPool_RejectsInvalidState(t *testing.T) {
	k, _, ctx := keepertest.AMMKeeper(t)

	pool := types.NewLiquidityPool(pair, lpToken)
	pool.ReserveA = bal(10)
	require.ErrorIs(t, k.SetPool(ctx, pool), types.ErrInvalidPoolState)
	require.False(t, k.HasPool(ctx, pair))
}

func TestCustodyAccountCannotActOnPools(t *testing.T) {
	k, ledger, ctx := setupPool(t, 1_000, 1_000)
	before, err := k.GetPool(ctx, pair)
	require.NoError(t, err)

	ops := map[string]func() error{
		"create pool": func() error {
			_, err := k.CreatePool(ctx, types.PoolAccount, types.NewTradingPair(upaw, uusdc), "lp-upaw-uusdc")
			return err
		},
		"add liquidity": func() error {
			_, err := k.AddLiquidity(ctx, types.PoolAccount, pair, amounts(100, 100), types.ZeroBalance())
			return err
		},
		"remove liquidity": func() error {
			_, err := k.RemoveLiquidity(ctx, types.PoolAccount, pair, bal(100), types.Amounts{})
			return err
		},
		"swap": func() error {
			_, err := k.Swap(ctx, types.PoolAccount, pair, upaw, bal(900), uatom, types.ZeroBalance())
			return err
		},
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			require.ErrorIs(t, op(), types.ErrReservedAccount)
		})
	}

	after, err := k.GetPool(ctx, pair)
	require.NoError(t, err)
	require.Equal(t, before, after)
	require.False(t, k.HasPool(ctx, types.NewTradingPair(upaw, uusdc)))
	require.Equal(t, bal(1_000), ledger.GetBalance(ctx, types.PoolAccount, upaw))
	requireInvariants(t, k, ctx)
}

func TestFundRestriction(t *testing.T) {
	k, ledger, ctx := setupPool(t, 1_000, 1_000)

	require.ErrorIs(t, ledger.Fund(ctx, "mallory", lpToken, bal(1_000)), types.ErrLiquidityTokenInUse)
	require.ErrorIs(t, ledger.Fund(ctx, types.PoolAccount, upaw, bal(1)), types.ErrReservedAccount)
	require.True(t, ledger.TotalSupply(ctx, lpToken).Equal(bal(1_000)))

	_, err := k.RemoveLiquidity(ctx, "mallory", pair, bal(1_000), types.Amounts{})
	require.Error(t, err)
	require.True(t, ledger.GetBalance(ctx, "mallory", upaw).IsZero())

	require.NoError(t, ledger.Fund(ctx, "mallory", uusdc, bal(5)), "plain assets stay fundable")
	requireInvariants(t, k, ctx)
}
