package types

const (
	// ModuleName defines the module name
	ModuleName = "amm"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// PoolAccount is the ledger account that custodies every pool's reserves.
	PoolAccount = ModuleName + "/pool"
)

// Store key prefixes
var (
	PoolKeyPrefix           = []byte{0x01} // pair -> LiquidityPool
	LiquidityTokenKeyPrefix = []byte{0x02} // liquidity token -> pair
)

// PoolKey returns the store key for the pool of pair.
//
// Assets are length-prefixed and kept in the order given: (A,B) and (B,A)
// are different keys.
func PoolKey(pair TradingPair) []byte {
	key := make([]byte, 0, len(PoolKeyPrefix)+2+len(pair.AssetA)+len(pair.AssetB))
	key = append(key, PoolKeyPrefix...)
	key = appendLengthPrefixed(key, string(pair.AssetA))
	return appendLengthPrefixed(key, string(pair.AssetB))
}

// LiquidityTokenKey returns the reverse-index key for a liquidity token.
func LiquidityTokenKey(token AssetID) []byte {
	key := make([]byte, 0, len(LiquidityTokenKeyPrefix)+len(token))
	key = append(key, LiquidityTokenKeyPrefix...)
	return append(key, string(token)...)
}

// appendLengthPrefixed relies on denoms being at most 128 bytes long.
func appendLengthPrefixed(key []byte, s string) []byte {
	key = append(key, byte(len(s)))
	return append(key, s...)
}
