package cmd

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	"github.com/paw-chain/amm/app"
	"github.com/paw-chain/amm/x/amm/types"
)

const (
	flagMinLiquidity = "min-liquidity"
	flagMinAmountA   = "min-amount-a"
	flagMinAmountB   = "min-amount-b"
	flagMinAmountOut = "min-amount-out"
	flagBase         = "base"
)

func createPoolCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-pool [asset-a] [asset-b] [liquidity-token]",
		Short: "Register an empty pool for a trading pair",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			creator, _ := cmd.Flags().GetString(flagFrom)
			pair := pairArgs(args)
			token := types.AssetID(args[2])

			return rt.withApp(func(a *app.App) error {
				var pool types.LiquidityPool
				err := a.Execute(func(ctx sdk.Context) error {
					var err error
					pool, err = a.AMMKeeper.CreatePool(ctx, creator, pair, token)
					return err
				})
				if err != nil {
					return err
				}
				return printJSON(cmd, pool)
			})
		},
	}
	cmd.Flags().String(flagFrom, "", "account recorded as the pool creator")
	_ = cmd.MarkFlagRequired(flagFrom)
	return cmd
}

func poolCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "pool [asset-a] [asset-b]",
		Short: "Show the pool of a trading pair",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pair := pairArgs(args)
			return rt.withApp(func(a *app.App) error {
				return a.Query(func(ctx sdk.Context) error {
					pool, err := a.AMMKeeper.GetPool(ctx, pair)
					if err != nil {
						return err
					}
					return printJSON(cmd, pool)
				})
			})
		},
	}
}

func poolsCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "pools",
		Short: "List every pool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rt.withApp(func(a *app.App) error {
				return a.Query(func(ctx sdk.Context) error {
					pools, err := a.AMMKeeper.GetAllPools(ctx)
					if err != nil {
						return err
					}
					if pools == nil {
						pools = []types.LiquidityPool{}
					}
					return printJSON(cmd, pools)
				})
			})
		},
	}
}

func quoteCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "quote [asset-a] [asset-b] [asset-in] [amount-in] [asset-out]",
		Short: "Price a swap against committed state without executing it",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			pair := pairArgs(args)
			amountIn, err := parseBalanceArg("amount-in", args[3])
			if err != nil {
				return err
			}

			return rt.withApp(func(a *app.App) error {
				return a.Query(func(ctx sdk.Context) error {
					out, err := a.AMMKeeper.QuoteSwap(ctx, pair, types.AssetID(args[2]), amountIn, types.AssetID(args[4]))
					if err != nil {
						return err
					}
					return printJSON(cmd, map[string]types.Balance{"amount_out": out})
				})
			})
		},
	}
}

func priceCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "price [asset-a] [asset-b]",
		Short: "Show the spot price of the base asset in the other asset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pair := pairArgs(args)
			base, _ := cmd.Flags().GetString(flagBase)
			if base == "" {
				base = pair.AssetA.String()
			}

			return rt.withApp(func(a *app.App) error {
				return a.Query(func(ctx sdk.Context) error {
					price, err := a.AMMKeeper.SpotPrice(ctx, pair, types.AssetID(base))
					if err != nil {
						return err
					}
					return printJSON(cmd, map[string]string{"base": base, "price": price.String()})
				})
			})
		},
	}
	cmd.Flags().String(flagBase, "", "asset to price (defaults to asset-a)")
	return cmd
}

func addLiquidityCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-liquidity [asset-a] [asset-b] [amount-a] [amount-b]",
		Short: "Deposit both assets and receive liquidity shares",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, _ := cmd.Flags().GetString(flagFrom)
			pair := pairArgs(args)
			amountA, err := parseBalanceArg("amount-a", args[2])
			if err != nil {
				return err
			}
			amountB, err := parseBalanceArg("amount-b", args[3])
			if err != nil {
				return err
			}
			minLiquidity, err := balanceFlag(cmd, flagMinLiquidity)
			if err != nil {
				return err
			}

			return rt.withApp(func(a *app.App) error {
				var minted types.Balance
				err := a.Execute(func(ctx sdk.Context) error {
					var err error
					minted, err = a.AMMKeeper.AddLiquidity(ctx, provider, pair, types.NewAmounts(amountA, amountB), minLiquidity)
					return err
				})
				if err != nil {
					return err
				}
				return printJSON(cmd, map[string]types.Balance{"liquidity_minted": minted})
			})
		},
	}
	cmd.Flags().String(flagFrom, "", "depositing account")
	cmd.Flags().String(flagMinLiquidity, "0", "fail unless at least this many shares are minted")
	_ = cmd.MarkFlagRequired(flagFrom)
	return cmd
}

func removeLiquidityCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove-liquidity [asset-a] [asset-b] [liquidity]",
		Short: "Burn liquidity shares for a proportional share of both reserves",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, _ := cmd.Flags().GetString(flagFrom)
			pair := pairArgs(args)
			liquidity, err := parseBalanceArg("liquidity", args[2])
			if err != nil {
				return err
			}
			minA, err := balanceFlag(cmd, flagMinAmountA)
			if err != nil {
				return err
			}
			minB, err := balanceFlag(cmd, flagMinAmountB)
			if err != nil {
				return err
			}

			return rt.withApp(func(a *app.App) error {
				var out types.Amounts
				err := a.Execute(func(ctx sdk.Context) error {
					var err error
					out, err = a.AMMKeeper.RemoveLiquidity(ctx, provider, pair, liquidity, types.NewAmounts(minA, minB))
					return err
				})
				if err != nil {
					return err
				}
				return printJSON(cmd, out)
			})
		},
	}
	cmd.Flags().String(flagFrom, "", "withdrawing account")
	cmd.Flags().String(flagMinAmountA, "0", "minimum amount of asset-a to receive")
	cmd.Flags().String(flagMinAmountB, "0", "minimum amount of asset-b to receive")
	_ = cmd.MarkFlagRequired(flagFrom)
	return cmd
}

func swapCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swap [asset-a] [asset-b] [asset-in] [amount-in] [asset-out]",
		Short: "Swap an exact input amount for as much output as the pool gives",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			trader, _ := cmd.Flags().GetString(flagFrom)
			pair := pairArgs(args)
			amountIn, err := parseBalanceArg("amount-in", args[3])
			if err != nil {
				return err
			}
			minOut, err := balanceFlag(cmd, flagMinAmountOut)
			if err != nil {
				return err
			}

			return rt.withApp(func(a *app.App) error {
				var out types.Balance
				err := a.Execute(func(ctx sdk.Context) error {
					var err error
					out, err = a.AMMKeeper.Swap(ctx, trader, pair, types.AssetID(args[2]), amountIn, types.AssetID(args[4]), minOut)
					return err
				})
				if err != nil {
					return err
				}
				return printJSON(cmd, map[string]types.Balance{"amount_out": out})
			})
		},
	}
	cmd.Flags().String(flagFrom, "", "trading account")
	cmd.Flags().String(flagMinAmountOut, "0", "fail unless at least this much is delivered")
	_ = cmd.MarkFlagRequired(flagFrom)
	return cmd
}
