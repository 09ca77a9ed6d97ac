package keeper

import (
	"context"
	"fmt"

	"github.com/paw-chain/amm/x/amm/types"
)

// InitGenesis initializes the amm module's state from a genesis state
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return err
	}

	for _, pool := range genState.Pools {
		if k.HasPool(ctx, pool.Assets) {
			return types.ErrPoolAlreadyExists.Wrapf("pair %s", pool.Assets)
		}
		if err := k.SetPool(ctx, pool); err != nil {
			return fmt.Errorf("failed to set pool %s: %w", pool.Assets, err)
		}
	}
	return nil
}

// ExportGenesis returns the amm module's exported genesis
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	pools, err := k.GetAllPools(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get pools: %w", err)
	}
	return &types.GenesisState{Pools: pools}, nil
}
