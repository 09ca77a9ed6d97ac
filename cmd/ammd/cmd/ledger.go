package cmd

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	"github.com/paw-chain/amm/app"
	"github.com/paw-chain/amm/x/amm/types"
)

func fundCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "fund [account] [asset] [amount]",
		Short: "Credit an account from outside the ledger",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, asset := args[0], types.AssetID(args[1])
			amount, err := parseBalanceArg("amount", args[2])
			if err != nil {
				return err
			}

			return rt.withApp(func(a *app.App) error {
				var balance types.Balance
				err := a.Execute(func(ctx sdk.Context) error {
					if err := a.LedgerKeeper.Fund(ctx, account, asset, amount); err != nil {
						return err
					}
					balance = a.LedgerKeeper.GetBalance(ctx, account, asset)
					return nil
				})
				if err != nil {
					return err
				}
				return printJSON(cmd, map[string]interface{}{"account": account, "asset": asset, "amount": balance})
			})
		},
	}
}

func balanceCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "balance [account] [asset]",
		Short: "Show an account balance",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, asset := args[0], types.AssetID(args[1])
			return rt.withApp(func(a *app.App) error {
				return a.Query(func(ctx sdk.Context) error {
					balance := a.LedgerKeeper.GetBalance(ctx, account, asset)
					return printJSON(cmd, map[string]interface{}{"account": account, "asset": asset, "amount": balance})
				})
			})
		},
	}
}
