package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/paw-chain/amm/api"
	"github.com/paw-chain/amm/app"
	"github.com/paw-chain/amm/app/telemetry"
)

func serveCmd(rt *runtime) *cobra.Command {
	defaults := api.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			provider, err := telemetry.NewProvider(rt.config.Telemetry)
			if err != nil {
				return err
			}
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), rt.config.API.ShutdownTimeout)
				defer cancel()
				if err := provider.Shutdown(ctx); err != nil {
					rt.logger.Error("failed to flush traces", "error", err)
				}
			}()
			rt.config.API.Tracer = provider.Tracer()

			return rt.withApp(func(a *app.App) error {
				server, err := api.NewServer(a, rt.config.API)
				if err != nil {
					return err
				}
				return server.Start(cmd.Context())
			})
		},
	}

	// Flag names double as config keys.
	cmd.Flags().String(keyAPIListen, defaults.ListenAddr, "address to listen on")
	cmd.Flags().Int(keyAPIRateLimit, defaults.RateLimitRPS, "requests per second allowed per client IP")
	cmd.Flags().Bool(keyAPIFaucet, defaults.FaucetEnabled, "expose POST /faucet")
	cmd.Flags().Duration(keyAPIReadTimeout, defaults.ReadTimeout, "HTTP read timeout")
	cmd.Flags().Duration(keyAPIWriteTimeout, defaults.WriteTimeout, "HTTP write timeout")
	cmd.Flags().Duration(keyAPIShutdownTimeout, defaults.ShutdownTimeout, "graceful shutdown timeout")
	cmd.Flags().StringSlice(keyAPICORSOrigins, defaults.CORSOrigins, "allowed CORS origins")
	cmd.Flags().Bool(keyTelemetryEnabled, false, "export traces over OTLP/HTTP")
	cmd.Flags().String(keyTelemetryEndpoint, "", "OTLP/HTTP collector address")
	return cmd
}
