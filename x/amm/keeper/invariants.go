package keeper

import (
	"fmt"
	"math/big"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/amm/types"
)

// RegisterInvariants registers all AMM invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "pool-state", PoolStateInvariant(k))
	ir.RegisterRoute(types.ModuleName, "liquidity-token", LiquidityTokenInvariant(k))
	ir.RegisterRoute(types.ModuleName, "share-supply", ShareSupplyInvariant(k))
	ir.RegisterRoute(types.ModuleName, "pool-balance", PoolBalanceInvariant(k))
}

// AllInvariants runs all invariants of the AMM module
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		for _, inv := range []sdk.Invariant{
			PoolStateInvariant(k),
			LiquidityTokenInvariant(k),
			ShareSupplyInvariant(k),
			PoolBalanceInvariant(k),
		} {
			if res, stop := inv(ctx); stop {
				return res, stop
			}
		}
		return "", false
	}
}

// PoolStateInvariant checks that every pool is either fully empty or has
// positive reserves on both sides and positive liquidity.
func PoolStateInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		err := k.IteratePools(ctx, func(pool types.LiquidityPool) bool {
			if err := pool.Validate(); err != nil {
				count++
				msg += fmt.Sprintf("pool %s: %v\n", pool.Assets, err)
			}
			return false
		})
		if err != nil {
			count++
			msg += fmt.Sprintf("iterate pools: %v\n", err)
		}

		return sdk.FormatInvariant(
			types.ModuleName, "pool-state",
			fmt.Sprintf("found %d invalid pools\n%s", count, msg),
		), count != 0
	}
}

// LiquidityTokenInvariant checks that the liquidity-token index and the pool
// records agree in both directions.
func LiquidityTokenInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		pools, err := k.GetAllPools(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "liquidity-token", err.Error()), true
		}
		for _, pool := range pools {
			pair, err := k.GetPairByLiquidityToken(ctx, pool.LiquidityToken)
			if err != nil || pair != pool.Assets {
				count++
				msg += fmt.Sprintf("pool %s: token %s resolves to %s (%v)\n", pool.Assets, pool.LiquidityToken, pair, err)
			}
		}

		indexed := 0
		err = k.iterateTokenIndex(ctx, func(token types.AssetID, pair types.TradingPair) bool {
			indexed++
			pool, err := k.GetPool(ctx, pair)
			if err != nil || pool.LiquidityToken != token {
				count++
				msg += fmt.Sprintf("token %s: indexed pair %s does not issue it\n", token, pair)
			}
			return false
		})
		if err != nil {
			count++
			msg += fmt.Sprintf("iterate token index: %v\n", err)
		}
		if indexed != len(pools) {
			count++
			msg += fmt.Sprintf("%d indexed tokens for %d pools\n", indexed, len(pools))
		}

		return sdk.FormatInvariant(
			types.ModuleName, "liquidity-token",
			fmt.Sprintf("found %d liquidity token mismatches\n%s", count, msg),
		), count != 0
	}
}

// ShareSupplyInvariant checks that the ledger supply of every liquidity token
// equals its pool's total liquidity.
func ShareSupplyInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		err := k.IteratePools(ctx, func(pool types.LiquidityPool) bool {
			supply := k.bank.TotalSupply(ctx, pool.LiquidityToken)
			if !supply.Equal(pool.TotalLiquidity) {
				count++
				msg += fmt.Sprintf("pool %s: %s supply %s != total liquidity %s\n",
					pool.Assets, pool.LiquidityToken, supply, pool.TotalLiquidity)
			}
			return false
		})
		if err != nil {
			count++
			msg += fmt.Sprintf("iterate pools: %v\n", err)
		}

		return sdk.FormatInvariant(
			types.ModuleName, "share-supply",
			fmt.Sprintf("found %d pools with mismatched share supply\n%s", count, msg),
		), count != 0
	}
}

// PoolBalanceInvariant checks that the pool account holds at least the sum of
// every pool's reserves for each asset.
func PoolBalanceInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		// Several pools can share an asset, so reserves are summed per asset.
		reserves := make(map[types.AssetID]*big.Int)
		var order []types.AssetID
		add := func(asset types.AssetID, amount types.Balance) {
			sum, ok := reserves[asset]
			if !ok {
				sum = new(big.Int)
				reserves[asset] = sum
				order = append(order, asset)
			}
			sum.Add(sum, amount.BigInt())
		}

		err := k.IteratePools(ctx, func(pool types.LiquidityPool) bool {
			add(pool.Assets.AssetA, pool.ReserveA)
			add(pool.Assets.AssetB, pool.ReserveB)
			return false
		})
		if err != nil {
			count++
			msg += fmt.Sprintf("iterate pools: %v\n", err)
		}

		for _, asset := range order {
			held := k.bank.GetBalance(ctx, types.PoolAccount, asset).BigInt()
			if held.Cmp(reserves[asset]) < 0 {
				count++
				msg += fmt.Sprintf("asset %s: pool account holds %s < reserves %s\n", asset, held, reserves[asset])
			}
		}

		return sdk.FormatInvariant(
			types.ModuleName, "pool-balance",
			fmt.Sprintf("found %d assets with reserve > pool account balance\n%s", count, msg),
		), count != 0
	}
}
