package keeper

import (
	"context"

	"github.com/paw-chain/amm/x/amm/types"
)

// FundRestriction refuses outside credits of pool shares and of the custody
// account. Shares are only issued against deposits. It is installed on the
// ledger with AppendFundRestriction.
func (k Keeper) FundRestriction(ctx context.Context, account string, asset types.AssetID) error {
	if err := validateCaller(account); err != nil {
		return err
	}
	if pair, err := k.GetPairByLiquidityToken(ctx, asset); err == nil {
		return types.ErrLiquidityTokenInUse.Wrapf("%s shares of %s are only minted by deposits", asset, pair)
	}
	return nil
}
