package types

import (
	"encoding/json"
)

// GenesisState is the exported set of pools.
type GenesisState struct {
	Pools []LiquidityPool `json:"pools"`
}

// DefaultGenesis returns a genesis state with no pools.
func DefaultGenesis() *GenesisState {
	return &GenesisState{Pools: []LiquidityPool{}}
}

// Validate checks every pool and rejects duplicate pairs or liquidity tokens.
func (gs GenesisState) Validate() error {
	pairs := make(map[TradingPair]struct{}, len(gs.Pools))
	tokens := make(map[AssetID]TradingPair, len(gs.Pools))

	for i, pool := range gs.Pools {
		if err := pool.Validate(); err != nil {
			return ErrInvalidGenesis.Wrapf("pool %d: %v", i, err)
		}
		if _, dup := pairs[pool.Assets]; dup {
			return ErrInvalidGenesis.Wrapf("duplicate pool %s", pool.Assets)
		}
		pairs[pool.Assets] = struct{}{}

		if other, dup := tokens[pool.LiquidityToken]; dup {
			return ErrInvalidGenesis.Wrapf("liquidity token %s used by %s and %s", pool.LiquidityToken, other, pool.Assets)
		}
		tokens[pool.LiquidityToken] = pool.Assets
	}
	return nil
}

// ParseGenesis decodes a JSON genesis document.
func ParseGenesis(bz []byte) (*GenesisState, error) {
	var gs GenesisState
	if err := json.Unmarshal(bz, &gs); err != nil {
		return nil, ErrInvalidGenesis.Wrapf("decode: %v", err)
	}
	if gs.Pools == nil {
		gs.Pools = []LiquidityPool{}
	}
	return &gs, nil
}
