package types

import (
	ammtypes "github.com/paw-chain/amm/x/amm/types"
)

const (
	// ModuleName defines the module name
	ModuleName = "ledger"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// MaxAccountLength is the longest account name the key layout can hold.
	MaxAccountLength = 255
)

// Store key prefixes
var (
	BalanceKeyPrefix = []byte{0x01} // account, asset -> Balance
	SupplyKeyPrefix  = []byte{0x02} // asset -> Balance
)

// AccountBalancesPrefix returns the prefix under which all balances of
// account are stored.
func AccountBalancesPrefix(account string) []byte {
	key := make([]byte, 0, len(BalanceKeyPrefix)+1+len(account))
	key = append(key, BalanceKeyPrefix...)
	key = append(key, byte(len(account)))
	return append(key, account...)
}

// BalanceKey returns the store key for account's balance of asset.
func BalanceKey(account string, asset ammtypes.AssetID) []byte {
	return append(AccountBalancesPrefix(account), string(asset)...)
}

// SupplyKey returns the store key for the total supply of asset.
func SupplyKey(asset ammtypes.AssetID) []byte {
	key := make([]byte, 0, len(SupplyKeyPrefix)+len(asset))
	key = append(key, SupplyKeyPrefix...)
	return append(key, string(asset)...)
}
