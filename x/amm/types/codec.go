package types

import (
	"encoding/json"
)

// MarshalPool encodes a pool record for the store.
func MarshalPool(pool LiquidityPool) ([]byte, error) {
	return json.Marshal(pool)
}

// UnmarshalPool decodes a pool record written by MarshalPool.
func UnmarshalPool(bz []byte) (LiquidityPool, error) {
	var pool LiquidityPool
	if err := json.Unmarshal(bz, &pool); err != nil {
		return LiquidityPool{}, ErrInvalidPoolState.Wrapf("decode pool: %v", err)
	}
	return pool, nil
}

// MarshalPair encodes a trading pair for the liquidity-token index.
func MarshalPair(pair TradingPair) ([]byte, error) {
	return json.Marshal(pair)
}

// UnmarshalPair decodes a pair written by MarshalPair.
func UnmarshalPair(bz []byte) (TradingPair, error) {
	var pair TradingPair
	if err := json.Unmarshal(bz, &pair); err != nil {
		return TradingPair{}, ErrInvalidPoolState.Wrapf("decode pair: %v", err)
	}
	return pair, nil
}
