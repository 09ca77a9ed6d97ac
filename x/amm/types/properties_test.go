package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/paw-chain/amm/x/amm/types"
)

// drawFundedPool seeds a pool with a first deposit drawn from rapid.
func drawFundedPool(t *rapid.T) types.LiquidityPool {
	a := rapid.Uint64Range(1, 1<<62).Draw(t, "seedA")
	b := rapid.Uint64Range(1, 1<<62).Draw(t, "seedB")

	pool, _, err := types.Mint(
		types.NewLiquidityPool(testPair, lpToken),
		types.NewAmounts(types.NewBalance(a), types.NewBalance(b)),
		types.ZeroBalance(),
	)
	require.NoError(t, err)
	return pool
}

// TestSwapConstantProductNeverDecreases checks reserve_a * reserve_b after
// every successful swap.
func TestSwapConstantProductNeverDecreases(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		pool := drawFundedPool(t)
		aToB := rapid.Bool().Draw(t, "aToB")
		amountIn := types.NewBalance(rapid.Uint64().Draw(t, "amountIn"))

		assetIn, assetOut := assetA, assetB
		if !aToB {
			assetIn, assetOut = assetB, assetA
		}

		next, out, err := types.Swap(pool, assetIn, amountIn, assetOut, types.ZeroBalance())
		if err != nil {
			require.Equal(t, pool, next)
			return
		}

		if next.ConstantProduct().Cmp(pool.ConstantProduct()) < 0 {
			t.Fatalf("k decreased: %s -> %s", pool.ConstantProduct(), next.ConstantProduct())
		}
		reserveOut, _ := pool.ReserveOf(assetOut)
		if !out.LT(reserveOut) {
			t.Fatalf("swap paid out %s from reserve %s", out, reserveOut)
		}
		require.NoError(t, next.Validate())
		require.Equal(t, pool.TotalLiquidity, next.TotalLiquidity)
	})
}

// TestSwapConstantProductGrowsWithFee checks that a charged fee always stays
// in the pool.
func TestSwapConstantProductGrowsWithFee(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		pool := drawFundedPool(t)
		// 334 is the smallest input charged a fee.
		amountIn := types.NewBalance(rapid.Uint64Range(334, 1<<62).Draw(t, "amountIn"))

		fee, err := types.SwapFee(amountIn)
		require.NoError(t, err)
		require.False(t, fee.IsZero())

		next, _, err := types.Swap(pool, assetA, amountIn, assetB, types.ZeroBalance())
		if err != nil {
			require.Equal(t, pool, next)
			return
		}
		if next.ConstantProduct().Cmp(pool.ConstantProduct()) != 1 {
			t.Fatalf("k did not grow with fee %s: %s -> %s", fee, pool.ConstantProduct(), next.ConstantProduct())
		}
	})
}

// TestMintThenBurnNeverReturnsMore checks that a deposit immediately withdrawn
// never pays back more than was put in.
func TestMintThenBurnNeverReturnsMore(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		pool := drawFundedPool(t)
		a := rapid.Uint64Range(1, 1<<62).Draw(t, "depositA")
		b := rapid.Uint64Range(1, 1<<62).Draw(t, "depositB")

		afterMint, minted, err := types.Mint(pool, types.NewAmounts(types.NewBalance(a), types.NewBalance(b)), types.ZeroBalance())
		require.NoError(t, err)
		require.NoError(t, afterMint.Validate())
		if minted.IsZero() {
			return
		}

		afterBurn, out, err := types.Burn(afterMint, minted, types.Amounts{})
		require.NoError(t, err)
		require.NoError(t, afterBurn.Validate())

		if out.AmountA.GT(types.NewBalance(a)) || out.AmountB.GT(types.NewBalance(b)) {
			t.Fatalf("deposited (%d, %d), withdrew (%s, %s)", a, b, out.AmountA, out.AmountB)
		}
		require.Equal(t, pool.TotalLiquidity, afterBurn.TotalLiquidity)
	})
}

// TestBurnKeepsPoolConsistent checks that any partial or full burn leaves a
// valid pool and releases no more than the reserves.
func TestBurnKeepsPoolConsistent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		pool := drawFundedPool(t)
		total := pool.TotalLiquidity.Uint64()
		burned := types.NewBalance(rapid.Uint64Range(1, total).Draw(t, "burned"))

		next, out, err := types.Burn(pool, burned, types.Amounts{})
		require.NoError(t, err)
		require.NoError(t, next.Validate())
		require.True(t, out.AmountA.LTE(pool.ReserveA))
		require.True(t, out.AmountB.LTE(pool.ReserveB))

		if burned == pool.TotalLiquidity {
			require.True(t, next.IsEmpty())
		} else {
			require.False(t, next.ReserveA.IsZero())
			require.False(t, next.ReserveB.IsZero())
		}
	})
}

// TestFailedOperationsLeaveStateUnchanged drives random operations and checks
// that every rejection returns the exact input snapshot.
func TestFailedOperationsLeaveStateUnchanged(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		pool := types.NewLiquidityPool(testPair, lpToken)
		steps := rapid.IntRange(1, 30).Draw(t, "steps")

		for i := 0; i < steps; i++ {
			var (
				next types.LiquidityPool
				err  error
			)
			switch rapid.IntRange(0, 2).Draw(t, "op") {
			case 0:
				amounts := types.NewAmounts(
					types.NewBalance(rapid.Uint64Range(0, 1<<40).Draw(t, "mintA")),
					types.NewBalance(rapid.Uint64Range(0, 1<<40).Draw(t, "mintB")),
				)
				next, _, err = types.Mint(pool, amounts, types.NewBalance(rapid.Uint64Range(0, 1<<20).Draw(t, "minLiquidity")))
			case 1:
				burned := types.NewBalance(rapid.Uint64Range(0, 1<<41).Draw(t, "burned"))
				next, _, err = types.Burn(pool, burned, types.Amounts{})
			default:
				assetIn := rapid.SampledFrom([]types.AssetID{assetA, assetB, assetC}).Draw(t, "assetIn")
				assetOut := rapid.SampledFrom([]types.AssetID{assetA, assetB, assetC}).Draw(t, "assetOut")
				amountIn := types.NewBalance(rapid.Uint64Range(0, 1<<40).Draw(t, "amountIn"))
				next, _, err = types.Swap(pool, assetIn, amountIn, assetOut, types.NewBalance(rapid.Uint64Range(0, 1<<20).Draw(t, "minOut")))
			}

			if err != nil {
				require.Equal(t, pool, next)
				require.NotEqual(t, types.ClassUnknown, types.ClassifyError(err), "unclassified error %v", err)
				continue
			}
			require.NoError(t, next.Validate())
			pool = next
		}
	})
}
