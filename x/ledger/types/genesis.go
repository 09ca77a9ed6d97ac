package types

import (
	"fmt"

	ammtypes "github.com/paw-chain/amm/x/amm/types"
)

// AccountBalance is one account's holding of one asset.
type AccountBalance struct {
	Account string           `json:"account"`
	Asset   ammtypes.AssetID `json:"asset"`
	Amount  ammtypes.Balance `json:"amount"`
}

// GenesisState holds every non-zero balance. Supplies are derived from it.
type GenesisState struct {
	Balances []AccountBalance `json:"balances"`
}

// DefaultGenesis returns a genesis state with no balances.
func DefaultGenesis() *GenesisState {
	return &GenesisState{Balances: []AccountBalance{}}
}

// Validate rejects invalid entries and duplicate (account, asset) pairs.
func (gs GenesisState) Validate() error {
	seen := make(map[string]struct{}, len(gs.Balances))
	for i, b := range gs.Balances {
		if err := ValidateAccount(b.Account); err != nil {
			return fmt.Errorf("balance %d: %w", i, err)
		}
		if err := b.Asset.Validate(); err != nil {
			return fmt.Errorf("balance %d: %w", i, err)
		}
		key := string(BalanceKey(b.Account, b.Asset))
		if _, dup := seen[key]; dup {
			return fmt.Errorf("duplicate balance for %s in %s", b.Account, b.Asset)
		}
		seen[key] = struct{}{}
	}
	return nil
}

// ParseBalanceKey splits a balance store key into account and asset.
func ParseBalanceKey(key []byte) (string, ammtypes.AssetID, error) {
	if len(key) < len(BalanceKeyPrefix)+1 {
		return "", "", fmt.Errorf("balance key too short")
	}
	rest := key[len(BalanceKeyPrefix):]
	n := int(rest[0])
	if len(rest) < 1+n {
		return "", "", fmt.Errorf("balance key truncated")
	}
	return string(rest[1 : 1+n]), ammtypes.AssetID(rest[1+n:]), nil
}
