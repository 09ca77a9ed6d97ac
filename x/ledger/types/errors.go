package types

import (
	"strings"

	errorsmod "cosmossdk.io/errors"
)

// x/ledger module sentinel errors
var (
	ErrInsufficientFunds = errorsmod.Register(ModuleName, 2, "insufficient funds")
	ErrInvalidAccount    = errorsmod.Register(ModuleName, 3, "invalid account")
	ErrSupplyOverflow    = errorsmod.Register(ModuleName, 4, "supply overflow")
	ErrInvalidAsset      = errorsmod.Register(ModuleName, 5, "invalid asset")
	ErrCorruptBalance    = errorsmod.Register(ModuleName, 6, "corrupt balance record")
)

// ValidateAccount checks that account fits the ledger key layout.
func ValidateAccount(account string) error {
	if strings.TrimSpace(account) == "" {
		return ErrInvalidAccount.Wrap("account must not be empty")
	}
	if len(account) > MaxAccountLength {
		return ErrInvalidAccount.Wrapf("account longer than %d bytes", MaxAccountLength)
	}
	return nil
}
