package keeper

import (
	"context"
	"fmt"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/amm/types"
)

// Swap exchanges amountIn of assetIn from trader for assetOut out of the pool
// for pair, failing if fewer than minAmountOut units would be delivered.
func (k Keeper) Swap(ctx context.Context, trader string, pair types.TradingPair, assetIn types.AssetID, amountIn types.Balance, assetOut types.AssetID, minAmountOut types.Balance) (types.Balance, error) {
	start := time.Now()
	defer func() {
		k.metrics.OperationLatency.WithLabelValues(opSwap).Observe(time.Since(start).Seconds())
	}()

	pool, amountOut, err := k.swap(ctx, trader, pair, assetIn, amountIn, assetOut, minAmountOut)
	if err != nil {
		k.metrics.recordFailure(opSwap, pair, err)
		k.Logger(ctx).Debug("swap rejected", "pair", pair.String(), "trader", trader, "error", err)
		return types.Balance{}, err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSwap,
			sdk.NewAttribute(types.AttributeKeyPair, pair.String()),
			sdk.NewAttribute(types.AttributeKeyTrader, trader),
			sdk.NewAttribute(types.AttributeKeyAssetIn, assetIn.String()),
			sdk.NewAttribute(types.AttributeKeyAssetOut, assetOut.String()),
			sdk.NewAttribute(types.AttributeKeyAmountIn, amountIn.String()),
			sdk.NewAttribute(types.AttributeKeyAmountOut, amountOut.String()),
		),
	)

	k.metrics.recordSuccess(opSwap, pool)
	k.metrics.SwapVolume.WithLabelValues(pair.String(), assetIn.String()).Add(amountIn.Float64())
	if fee, err := types.SwapFee(amountIn); err == nil {
		k.metrics.SwapFeesCharged.WithLabelValues(pair.String(), assetIn.String()).Add(fee.Float64())
	}
	k.Logger(ctx).Info("swap executed",
		"pair", pair.String(),
		"trader", trader,
		"asset_in", assetIn.String(),
		"amount_in", amountIn.String(),
		"amount_out", amountOut.String(),
	)

	return amountOut, nil
}

func (k Keeper) swap(ctx context.Context, trader string, pair types.TradingPair, assetIn types.AssetID, amountIn types.Balance, assetOut types.AssetID, minAmountOut types.Balance) (types.LiquidityPool, types.Balance, error) {
	if err := validateCaller(trader); err != nil {
		return types.LiquidityPool{}, types.Balance{}, err
	}
	pool, err := k.GetPool(ctx, pair)
	if err != nil {
		return types.LiquidityPool{}, types.Balance{}, err
	}

	next, amountOut, err := types.Swap(pool, assetIn, amountIn, assetOut, minAmountOut)
	if err != nil {
		return types.LiquidityPool{}, types.Balance{}, err
	}

	cacheCtx, write := sdk.UnwrapSDKContext(ctx).CacheContext()
	if err := k.bank.Transfer(cacheCtx, assetIn, trader, types.PoolAccount, amountIn); err != nil {
		return types.LiquidityPool{}, types.Balance{}, fmt.Errorf("pay %s: %w", assetIn, err)
	}
	if err := k.bank.Transfer(cacheCtx, assetOut, types.PoolAccount, trader, amountOut); err != nil {
		return types.LiquidityPool{}, types.Balance{}, fmt.Errorf("deliver %s: %w", assetOut, err)
	}
	if err := k.SetPool(cacheCtx, next); err != nil {
		return types.LiquidityPool{}, types.Balance{}, err
	}
	write()

	return next, amountOut, nil
}
