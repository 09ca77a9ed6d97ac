package types

import (
	"context"

	ammtypes "github.com/paw-chain/amm/x/amm/types"
)

// FundRestrictionFn can refuse to credit account with asset from outside the
// ledger. Genesis balances are not subject to it.
type FundRestrictionFn func(ctx context.Context, account string, asset ammtypes.AssetID) error

// NoOpFundRestrictionFn accepts every credit.
func NoOpFundRestrictionFn(_ context.Context, _ string, _ ammtypes.AssetID) error {
	return nil
}

// Then returns a restriction that runs r and then second, stopping at the
// first error.
func (r FundRestrictionFn) Then(second FundRestrictionFn) FundRestrictionFn {
	if second == nil {
		return r
	}
	if r == nil {
		return second
	}
	return func(ctx context.Context, account string, asset ammtypes.AssetID) error {
		if err := r(ctx, account, asset); err != nil {
			return err
		}
		return second(ctx, account, asset)
	}
}
