package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// SetRawForTest writes bz under key in the ledger store, bypassing encoding.
func SetRawForTest(k Keeper, ctx sdk.Context, key, bz []byte) {
	k.getStore(ctx).Set(key, bz)
}
