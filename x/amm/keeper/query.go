package keeper

import (
	"context"

	"cosmossdk.io/math"

	"github.com/paw-chain/amm/x/amm/types"
)

// QuoteSwap returns the amount a swap would deliver at the current reserves.
func (k Keeper) QuoteSwap(ctx context.Context, pair types.TradingPair, assetIn types.AssetID, amountIn types.Balance, assetOut types.AssetID) (types.Balance, error) {
	pool, err := k.GetPool(ctx, pair)
	if err != nil {
		return types.Balance{}, err
	}
	return types.QuoteSwap(pool, assetIn, amountIn, assetOut)
}

// SpotPrice returns the marginal price of base in the pool for pair.
func (k Keeper) SpotPrice(ctx context.Context, pair types.TradingPair, base types.AssetID) (math.LegacyDec, error) {
	pool, err := k.GetPool(ctx, pair)
	if err != nil {
		return math.LegacyDec{}, err
	}
	return types.SpotPrice(pool, base)
}

// PoolByLiquidityToken returns the pool whose shares are denominated in token.
func (k Keeper) PoolByLiquidityToken(ctx context.Context, token types.AssetID) (types.LiquidityPool, error) {
	pair, err := k.GetPairByLiquidityToken(ctx, token)
	if err != nil {
		return types.LiquidityPool{}, err
	}
	return k.GetPool(ctx, pair)
}
