package keeper_test

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	keepertest "github.com/paw-chain/amm/testutil/keeper"
	"github.com/paw-chain/amm/x/amm/keeper"
	"github.com/paw-chain/amm/x/amm/types"
)

type invariantRegistry struct {
	routes []string
}

func (r *invariantRegistry) RegisterRoute(moduleName, route string, _ sdk.Invariant) {
	r.routes = append(r.routes, moduleName+"/"+route)
}

func TestRegisterInvariants(t *testing.T) {
	k, _, _ := keepertest.AMMKeeper(t)
	ir := &invariantRegistry{}

	keeper.RegisterInvariants(ir, *k)
	require.ElementsMatch(t, []string{
		"amm/pool-state",
		"amm/liquidity-token",
		"amm/share-supply",
		"amm/pool-balance",
	}, ir.routes)
}

func TestShareSupplyInvariant_Broken(t *testing.T) {
	k, ledger, ctx := setupPool(t, 1_000, 1_000)

	// shares minted outside the pool
	require.NoError(t, ledger.MintShares(ctx, lpToken, bob, bal(1)))

	_, broken := keeper.ShareSupplyInvariant(*k)(ctx)
	require.True(t, broken)
	_, broken = keeper.AllInvariants(*k)(ctx)
	require.True(t, broken)
}

func TestPoolBalanceInvariant_Broken(t *testing.T) {
	k, ledger, ctx := setupPool(t, 1_000, 1_000)

	// drain the pool account behind the keeper's back
	require.NoError(t, ledger.Transfer(ctx, upaw, types.PoolAccount, bob, bal(1)))

	msg, broken := keeper.PoolBalanceInvariant(*k)(ctx)
	require.True(t, broken, msg)
	require.Contains(t, msg, "upaw")
}

func TestPoolBalanceInvariant_SharedAsset(t *testing.T) {
	k, ledger, ctx := setupPool(t, 1_000, 1_000)

	other := types.NewTradingPair(upaw, uusdc)
	_, err := k.CreatePool(ctx, alice, other, "lp-upaw-uusdc")
	require.NoError(t, err)
	require.NoError(t, ledger.Fund(ctx, alice, upaw, bal(500)))
	require.NoError(t, ledger.Fund(ctx, alice, uusdc, bal(500)))
	_, err = k.AddLiquidity(ctx, alice, other, amounts(500, 500), types.ZeroBalance())
	require.NoError(t, err)
	requireInvariants(t, k, ctx)

	// 1500 upaw backs two pools; losing one unit breaks the sum
	require.NoError(t, ledger.Transfer(ctx, upaw, types.PoolAccount, bob, bal(1)))
	_, broken := keeper.PoolBalanceInvariant(*k)(ctx)
	require.True(t, broken)
}

// TestInvariantsHoldUnderRandomOperations drives random keeper operations from
// a few accounts and checks every invariant after each step.
func TestInvariantsHoldUnderRandomOperations(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		k, ledger, ctx := keepertest.AMMKeeper(t)
		_, err := k.CreatePool(ctx, alice, pair, lpToken)
		require.NoError(rt, err)

		accounts := []string{alice, bob, "carol"}
		for _, account := range accounts {
			require.NoError(rt, ledger.Fund(ctx, account, upaw, bal(1<<40)))
			require.NoError(rt, ledger.Fund(ctx, account, uatom, bal(1<<40)))
		}

		steps := rapid.IntRange(1, 25).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			account := rapid.SampledFrom(accounts).Draw(rt, "account")
			switch rapid.IntRange(0, 2).Draw(rt, "op") {
			case 0:
				a := rapid.Uint64Range(0, 1<<30).Draw(rt, "a")
				b := rapid.Uint64Range(0, 1<<30).Draw(rt, "b")
				_, _ = k.AddLiquidity(ctx, account, pair, amounts(a, b), types.ZeroBalance())
			case 1:
				held := ledger.GetBalance(ctx, account, lpToken).Uint64()
				burn := rapid.Uint64Range(0, held+1).Draw(rt, "burn")
				_, _ = k.RemoveLiquidity(ctx, account, pair, bal(burn), types.Amounts{})
			default:
				assetIn, assetOut := upaw, uatom
				if rapid.Bool().Draw(rt, "reverse") {
					assetIn, assetOut = uatom, upaw
				}
				amountIn := rapid.Uint64Range(0, 1<<30).Draw(rt, "amountIn")
				_, _ = k.Swap(ctx, account, pair, assetIn, bal(amountIn), assetOut, types.ZeroBalance())
			}

			msg, broken := keeper.AllInvariants(*k)(ctx)
			if broken {
				rt.Fatalf("invariant broken after step %d: %s", i, msg)
			}
		}
	})
}
