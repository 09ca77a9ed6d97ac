package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/paw-chain/amm/x/amm/types"
)

func TestGenesisState_Validate(t *testing.T) {
	other := types.NewLiquidityPool(types.NewTradingPair(assetA, assetC), "lp-upaw-uusdc")

	tests := []struct {
		name     string
		genState *types.GenesisState
		valid    bool
	}{
		{
			name:     "default is valid",
			genState: types.DefaultGenesis(),
			valid:    true,
		},
		{
			name: "two pools",
			genState: &types.GenesisState{
				Pools: []types.LiquidityPool{makePool(100, 200, 141), other},
			},
			valid: true,
		},
		{
			name: "reversed pair is a distinct pool",
			genState: &types.GenesisState{
				Pools: []types.LiquidityPool{
					makePool(100, 200, 141),
					types.NewLiquidityPool(types.NewTradingPair(assetB, assetA), "lp-uatom-upaw"),
				},
			},
			valid: true,
		},
		{
			name: "duplicate pair",
			genState: &types.GenesisState{
				Pools: []types.LiquidityPool{
					makePool(100, 200, 141),
					types.NewLiquidityPool(testPair, "lp-other"),
				},
			},
			valid: false,
		},
		{
			name: "duplicate liquidity token",
			genState: &types.GenesisState{
				Pools: []types.LiquidityPool{
					makePool(100, 200, 141),
					types.NewLiquidityPool(types.NewTradingPair(assetA, assetC), lpToken),
				},
			},
			valid: false,
		},
		{
			name: "partially funded pool",
			genState: &types.GenesisState{
				Pools: []types.LiquidityPool{makePool(100, 0, 0)},
			},
			valid: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.genState.Validate()
			if tc.valid {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, types.ErrInvalidGenesis)
		})
	}
}

func TestParseGenesis(t *testing.T) {
	gs, err := types.ParseGenesis([]byte(`{"pools":[{"assets":{"asset_a":"upaw","asset_b":"uatom"},"reserve_a":"100","reserve_b":"200","total_liquidity":"141","liquidity_token":"lp-upaw-uatom"}]}`))
	require.NoError(t, err)
	require.Equal(t, []types.LiquidityPool{makePool(100, 200, 141)}, gs.Pools)
	require.NoError(t, gs.Validate())

	gs, err = types.ParseGenesis([]byte(`{}`))
	require.NoError(t, err)
	require.NotNil(t, gs.Pools)

	_, err = types.ParseGenesis([]byte(`{"pools":[{"reserve_a":"-1"}]}`))
	require.ErrorIs(t, err, types.ErrInvalidGenesis)
}
