package cmd

import (
	"encoding/json"
	"fmt"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"

	"github.com/paw-chain/amm/app"
	"github.com/paw-chain/amm/x/amm/types"
)

const flagFrom = "from"

// runtime carries what PersistentPreRunE resolved to the subcommands.
type runtime struct {
	config *Config
	logger log.Logger
}

// NewRootCmd creates the ammd root command.
func NewRootCmd() *cobra.Command {
	rt := &runtime{}

	rootCmd := &cobra.Command{
		Use:   app.Name,
		Short: "Constant-product AMM state machine",
		Long: `ammd runs a two-asset constant-product automated market maker over a
versioned key-value store. Every state-changing command commits a new version.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())

			v, err := newViper(cmd.Flags())
			if err != nil {
				return err
			}
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			rt.config = cfg
			rt.logger = cfg.newLogger()
			return nil
		},
	}

	addPersistentFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		createPoolCmd(rt),
		poolCmd(rt),
		poolsCmd(rt),
		quoteCmd(rt),
		priceCmd(rt),
		addLiquidityCmd(rt),
		removeLiquidityCmd(rt),
		swapCmd(rt),
		fundCmd(rt),
		balanceCmd(rt),
		exportGenesisCmd(rt),
		initGenesisCmd(rt),
		checkInvariantsCmd(rt),
		serveCmd(rt),
	)

	return rootCmd
}

// withApp opens the application for the duration of fn.
func (rt *runtime) withApp(fn func(a *app.App) error) error {
	db, err := app.OpenDB(rt.config.Home, rt.config.DBBackend)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	var opts []app.Option
	if rt.config.InvariantChecks {
		opts = append(opts, app.WithInvariantChecks())
	}
	a, err := app.New(rt.logger, db, opts...)
	if err != nil {
		_ = db.Close()
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			rt.logger.Error("failed to close database", "error", err)
		}
	}()

	return fn(a)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseBalanceArg(name, s string) (types.Balance, error) {
	b, err := types.ParseBalance(s)
	if err != nil {
		return types.Balance{}, fmt.Errorf("invalid %s: %w", name, err)
	}
	return b, nil
}

func balanceFlag(cmd *cobra.Command, name string) (types.Balance, error) {
	s, err := cmd.Flags().GetString(name)
	if err != nil {
		return types.Balance{}, err
	}
	return parseBalanceArg(name, s)
}

func pairArgs(args []string) types.TradingPair {
	return types.NewTradingPair(types.AssetID(args[0]), types.AssetID(args[1]))
}
