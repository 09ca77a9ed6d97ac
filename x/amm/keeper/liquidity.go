package keeper

import (
	"context"
	"fmt"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/amm/types"
)

// AddLiquidity deposits amounts into the pool for pair and credits provider
// with the liquidity shares minted. Nothing is written unless the deposit
// transfers, the share mint and the pool update all succeed.
func (k Keeper) AddLiquidity(ctx context.Context, provider string, pair types.TradingPair, amounts types.Amounts, minLiquidity types.Balance) (types.Balance, error) {
	start := time.Now()
	defer func() {
		k.metrics.OperationLatency.WithLabelValues(opAddLiquidity).Observe(time.Since(start).Seconds())
	}()

	pool, minted, err := k.addLiquidity(ctx, provider, pair, amounts, minLiquidity)
	if err != nil {
		k.metrics.recordFailure(opAddLiquidity, pair, err)
		k.Logger(ctx).Debug("add liquidity rejected", "pair", pair.String(), "provider", provider, "error", err)
		return types.Balance{}, err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeMintLiquidity,
			sdk.NewAttribute(types.AttributeKeyPair, pair.String()),
			sdk.NewAttribute(types.AttributeKeyProvider, provider),
			sdk.NewAttribute(types.AttributeKeyAmountA, amounts.AmountA.String()),
			sdk.NewAttribute(types.AttributeKeyAmountB, amounts.AmountB.String()),
			sdk.NewAttribute(types.AttributeKeyLiquidityMinted, minted.String()),
		),
	)
	k.metrics.recordSuccess(opAddLiquidity, pool)
	k.Logger(ctx).Info("liquidity added",
		"pair", pair.String(),
		"provider", provider,
		"amount_a", amounts.AmountA.String(),
		"amount_b", amounts.AmountB.String(),
		"minted", minted.String(),
	)

	return minted, nil
}

func (k Keeper) addLiquidity(ctx context.Context, provider string, pair types.TradingPair, amounts types.Amounts, minLiquidity types.Balance) (types.LiquidityPool, types.Balance, error) {
	if err := validateCaller(provider); err != nil {
		return types.LiquidityPool{}, types.Balance{}, err
	}
	pool, err := k.GetPool(ctx, pair)
	if err != nil {
		return types.LiquidityPool{}, types.Balance{}, err
	}

	next, minted, err := types.Mint(pool, amounts, minLiquidity)
	if err != nil {
		return types.LiquidityPool{}, types.Balance{}, err
	}

	cacheCtx, write := sdk.UnwrapSDKContext(ctx).CacheContext()
	if err := k.bank.Transfer(cacheCtx, pair.AssetA, provider, types.PoolAccount, amounts.AmountA); err != nil {
		return types.LiquidityPool{}, types.Balance{}, fmt.Errorf("deposit %s: %w", pair.AssetA, err)
	}
	if err := k.bank.Transfer(cacheCtx, pair.AssetB, provider, types.PoolAccount, amounts.AmountB); err != nil {
		return types.LiquidityPool{}, types.Balance{}, fmt.Errorf("deposit %s: %w", pair.AssetB, err)
	}
	if err := k.bank.MintShares(cacheCtx, pool.LiquidityToken, provider, minted); err != nil {
		return types.LiquidityPool{}, types.Balance{}, fmt.Errorf("mint %s: %w", pool.LiquidityToken, err)
	}
	if err := k.SetPool(cacheCtx, next); err != nil {
		return types.LiquidityPool{}, types.Balance{}, err
	}
	write()

	return next, minted, nil
}

// RemoveLiquidity burns liquidity shares held by provider and releases the
// matching reserves to it. The shares are burned before any reserve leaves
// the pool account.
func (k Keeper) RemoveLiquidity(ctx context.Context, provider string, pair types.TradingPair, liquidity types.Balance, minAmounts types.Amounts) (types.Amounts, error) {
	start := time.Now()
	defer func() {
		k.metrics.OperationLatency.WithLabelValues(opRemoveLiquidity).Observe(time.Since(start).Seconds())
	}()

	pool, out, err := k.removeLiquidity(ctx, provider, pair, liquidity, minAmounts)
	if err != nil {
		k.metrics.recordFailure(opRemoveLiquidity, pair, err)
		k.Logger(ctx).Debug("remove liquidity rejected", "pair", pair.String(), "provider", provider, "error", err)
		return types.Amounts{}, err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeBurnLiquidity,
			sdk.NewAttribute(types.AttributeKeyPair, pair.String()),
			sdk.NewAttribute(types.AttributeKeyProvider, provider),
			sdk.NewAttribute(types.AttributeKeyLiquidityBurned, liquidity.String()),
			sdk.NewAttribute(types.AttributeKeyAmountA, out.AmountA.String()),
			sdk.NewAttribute(types.AttributeKeyAmountB, out.AmountB.String()),
		),
	)
	k.metrics.recordSuccess(opRemoveLiquidity, pool)
	k.Logger(ctx).Info("liquidity removed",
		"pair", pair.String(),
		"provider", provider,
		"burned", liquidity.String(),
		"amount_a", out.AmountA.String(),
		"amount_b", out.AmountB.String(),
	)

	return out, nil
}

func (k Keeper) removeLiquidity(ctx context.Context, provider string, pair types.TradingPair, liquidity types.Balance, minAmounts types.Amounts) (types.LiquidityPool, types.Amounts, error) {
	if err := validateCaller(provider); err != nil {
		return types.LiquidityPool{}, types.Amounts{}, err
	}
	pool, err := k.GetPool(ctx, pair)
	if err != nil {
		return types.LiquidityPool{}, types.Amounts{}, err
	}

	next, out, err := types.Burn(pool, liquidity, minAmounts)
	if err != nil {
		return types.LiquidityPool{}, types.Amounts{}, err
	}

	cacheCtx, write := sdk.UnwrapSDKContext(ctx).CacheContext()
	if err := k.bank.BurnShares(cacheCtx, pool.LiquidityToken, provider, liquidity); err != nil {
		return types.LiquidityPool{}, types.Amounts{}, fmt.Errorf("burn %s: %w", pool.LiquidityToken, err)
	}
	if err := k.bank.Transfer(cacheCtx, pair.AssetA, types.PoolAccount, provider, out.AmountA); err != nil {
		return types.LiquidityPool{}, types.Amounts{}, fmt.Errorf("release %s: %w", pair.AssetA, err)
	}
	if err := k.bank.Transfer(cacheCtx, pair.AssetB, types.PoolAccount, provider, out.AmountB); err != nil {
		return types.LiquidityPool{}, types.Amounts{}, fmt.Errorf("release %s: %w", pair.AssetB, err)
	}
	if err := k.SetPool(cacheCtx, next); err != nil {
		return types.LiquidityPool{}, types.Amounts{}, err
	}
	write()

	return next, out, nil
}
