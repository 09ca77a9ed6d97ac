package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/paw-chain/amm/app"
)

const flagOutput = "output"

func exportGenesisCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export-genesis",
		Short: "Export committed state as a genesis document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			output, _ := cmd.Flags().GetString(flagOutput)
			return rt.withApp(func(a *app.App) error {
				genesis, err := a.ExportGenesis()
				if err != nil {
					return err
				}
				if output == "" {
					return printJSON(cmd, genesis)
				}
				bz, err := json.MarshalIndent(genesis, "", "  ")
				if err != nil {
					return err
				}
				return os.WriteFile(output, bz, 0o600)
			})
		},
	}
	cmd.Flags().String(flagOutput, "", "write to this file instead of stdout")
	return cmd
}

func initGenesisCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "init-genesis [genesis-file]",
		Short: "Load a genesis document into an empty store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bz, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var genesis app.GenesisState
			if err := json.Unmarshal(bz, &genesis); err != nil {
				return fmt.Errorf("failed to decode genesis: %w", err)
			}

			return rt.withApp(func(a *app.App) error {
				if h := a.LastHeight(); h != 0 {
					return fmt.Errorf("store already initialized at height %d", h)
				}
				if err := a.InitChain(genesis); err != nil {
					return err
				}
				return printJSON(cmd, map[string]int64{"height": a.LastHeight()})
			})
		},
	}
}

func checkInvariantsCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "check-invariants",
		Short: "Run every invariant against committed state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rt.withApp(func(a *app.App) error {
				if msg, broken := a.CheckInvariants(); broken {
					return errors.Join(app.ErrInvariantBroken, errors.New(msg))
				}
				return printJSON(cmd, map[string]interface{}{"height": a.LastHeight(), "broken": false})
			})
		},
	}
}
