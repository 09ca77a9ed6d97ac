package keeper

import (
	"context"
	"time"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/amm/types"
)

var _ types.PoolRegistry = Keeper{}

// CreatePool registers an empty pool for pair whose shares are issued as
// liquidityToken. The pair must be new and the token must be unused, both as
// another pool's token and as an asset with existing supply.
func (k Keeper) CreatePool(ctx context.Context, creator string, pair types.TradingPair, liquidityToken types.AssetID) (types.LiquidityPool, error) {
	start := time.Now()
	defer func() {
		k.metrics.OperationLatency.WithLabelValues(opCreatePool).Observe(time.Since(start).Seconds())
	}()

	pool, err := k.createPool(ctx, creator, pair, liquidityToken)
	if err != nil {
		k.metrics.recordFailure(opCreatePool, pair, err)
		return types.LiquidityPool{}, err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeCreatePool,
			sdk.NewAttribute(types.AttributeKeyPair, pair.String()),
			sdk.NewAttribute(types.AttributeKeyLiquidityToken, liquidityToken.String()),
			sdk.NewAttribute(types.AttributeKeyCreator, creator),
		),
	)
	k.metrics.recordSuccess(opCreatePool, pool)
	k.Logger(ctx).Info("pool created", "pair", pair.String(), "liquidity_token", liquidityToken.String(), "creator", creator)

	return pool, nil
}

func (k Keeper) createPool(ctx context.Context, creator string, pair types.TradingPair, liquidityToken types.AssetID) (types.LiquidityPool, error) {
	if err := validateCaller(creator); err != nil {
		return types.LiquidityPool{}, err
	}
	pool := types.NewLiquidityPool(pair, liquidityToken)
	if err := pool.Validate(); err != nil {
		return types.LiquidityPool{}, err
	}
	if k.HasPool(ctx, pair) {
		return types.LiquidityPool{}, types.ErrPoolAlreadyExists.Wrapf("pair %s", pair)
	}
	if bound, err := k.GetPairByLiquidityToken(ctx, liquidityToken); err == nil {
		return types.LiquidityPool{}, types.ErrLiquidityTokenInUse.Wrapf("%s is bound to %s", liquidityToken, bound)
	}
	if supply := k.bank.TotalSupply(ctx, liquidityToken); !supply.IsZero() {
		return types.LiquidityPool{}, types.ErrLiquidityTokenInUse.Wrapf("%s already has supply %s", liquidityToken, supply)
	}
	var traded *types.TradingPair
	err := k.IteratePools(ctx, func(existing types.LiquidityPool) bool {
		if existing.Assets.Contains(liquidityToken) {
			traded = &existing.Assets
			return true
		}
		return false
	})
	if err != nil {
		return types.LiquidityPool{}, err
	}
	if traded != nil {
		return types.LiquidityPool{}, types.ErrLiquidityTokenInUse.Wrapf("%s is traded in %s", liquidityToken, *traded)
	}
	if err := k.SetPool(ctx, pool); err != nil {
		return types.LiquidityPool{}, err
	}
	return pool, nil
}

// GetPool returns the pool registered for pair.
func (k Keeper) GetPool(ctx context.Context, pair types.TradingPair) (types.LiquidityPool, error) {
	bz := k.getStore(ctx).Get(types.PoolKey(pair))
	if bz == nil {
		return types.LiquidityPool{}, types.ErrPoolNotFound.Wrapf("pair %s", pair)
	}
	return types.UnmarshalPool(bz)
}

// HasPool reports whether a pool is registered for pair.
func (k Keeper) HasPool(ctx context.Context, pair types.TradingPair) bool {
	return k.getStore(ctx).Has(types.PoolKey(pair))
}

// SetPool validates and stores pool, keeping the liquidity-token index in step.
// A liquidity token can only ever be bound to one pair.
func (k Keeper) SetPool(ctx context.Context, pool types.LiquidityPool) error {
	if err := pool.Validate(); err != nil {
		return err
	}

	store := k.getStore(ctx)
	tokenKey := types.LiquidityTokenKey(pool.LiquidityToken)
	if bz := store.Get(tokenKey); bz != nil {
		bound, err := types.UnmarshalPair(bz)
		if err != nil {
			return err
		}
		if bound != pool.Assets {
			return types.ErrLiquidityTokenInUse.Wrapf("%s is bound to %s", pool.LiquidityToken, bound)
		}
	}

	poolBz, err := types.MarshalPool(pool)
	if err != nil {
		return err
	}
	pairBz, err := types.MarshalPair(pool.Assets)
	if err != nil {
		return err
	}
	store.Set(types.PoolKey(pool.Assets), poolBz)
	store.Set(tokenKey, pairBz)
	return nil
}

// GetPairByLiquidityToken resolves a liquidity token back to its pair.
func (k Keeper) GetPairByLiquidityToken(ctx context.Context, token types.AssetID) (types.TradingPair, error) {
	bz := k.getStore(ctx).Get(types.LiquidityTokenKey(token))
	if bz == nil {
		return types.TradingPair{}, types.ErrPoolNotFound.Wrapf("no pool issues %s", token)
	}
	return types.UnmarshalPair(bz)
}

// IteratePools calls cb for each stored pool in key order until cb returns true.
func (k Keeper) IteratePools(ctx context.Context, cb func(pool types.LiquidityPool) (stop bool)) error {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.PoolKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		pool, err := types.UnmarshalPool(iterator.Value())
		if err != nil {
			return err
		}
		if cb(pool) {
			break
		}
	}
	return nil
}

// GetAllPools returns every stored pool.
func (k Keeper) GetAllPools(ctx context.Context) ([]types.LiquidityPool, error) {
	pools := []types.LiquidityPool{}
	err := k.IteratePools(ctx, func(pool types.LiquidityPool) bool {
		pools = append(pools, pool)
		return false
	})
	return pools, err
}

// iterateTokenIndex walks the liquidity-token reverse index.
func (k Keeper) iterateTokenIndex(ctx context.Context, cb func(token types.AssetID, pair types.TradingPair) (stop bool)) error {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.LiquidityTokenKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		pair, err := types.UnmarshalPair(iterator.Value())
		if err != nil {
			return err
		}
		token := types.AssetID(iterator.Key()[len(types.LiquidityTokenKeyPrefix):])
		if cb(token, pair) {
			break
		}
	}
	return nil
}
