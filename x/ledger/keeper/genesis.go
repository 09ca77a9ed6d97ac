package keeper

import (
	"context"
	"fmt"

	storetypes "cosmossdk.io/store/types"

	ammtypes "github.com/paw-chain/amm/x/amm/types"
	"github.com/paw-chain/amm/x/ledger/types"
)

// InitGenesis credits every genesis balance, building supplies as it goes.
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return err
	}
	for _, b := range genState.Balances {
		if err := k.credit(ctx, b.Asset, b.Account, b.Amount); err != nil {
			return fmt.Errorf("failed to credit %s: %w", b.Account, err)
		}
	}
	return nil
}

// ExportGenesis returns every non-zero balance in key order.
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.BalanceKeyPrefix)
	defer iterator.Close()

	gs := types.DefaultGenesis()
	for ; iterator.Valid(); iterator.Next() {
		account, asset, err := types.ParseBalanceKey(iterator.Key())
		if err != nil {
			return nil, err
		}
		amount, err := ammtypes.BalanceFromBytes(iterator.Value())
		if err != nil {
			return nil, fmt.Errorf("balance of %s in %s: %w", account, asset, err)
		}
		gs.Balances = append(gs.Balances, types.AccountBalance{Account: account, Asset: asset, Amount: amount})
	}
	return gs, nil
}
