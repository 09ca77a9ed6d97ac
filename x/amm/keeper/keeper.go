package keeper

import (
	"context"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/amm/types"
)

// Keeper of the amm store
type Keeper struct {
	storeKey storetypes.StoreKey
	bank     types.BankKeeper
	metrics  *AMMMetrics
}

// NewKeeper creates a new amm Keeper instance
func NewKeeper(key storetypes.StoreKey, bank types.BankKeeper) *Keeper {
	return &Keeper{
		storeKey: key,
		bank:     bank,
		metrics:  NewAMMMetrics(),
	}
}

// getStore returns the KVStore for the amm module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}

// validateCaller rejects the custody account as a trader or provider, since
// its transfers to and from the pool would move nothing.
func validateCaller(account string) error {
	if account == types.PoolAccount {
		return types.ErrReservedAccount.Wrapf("%s cannot act on pools", account)
	}
	return nil
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", "x/"+types.ModuleName)
}
