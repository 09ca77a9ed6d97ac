package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cosmossdk.io/log"
	"github.com/rs/zerolog"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/paw-chain/amm/api"
	"github.com/paw-chain/amm/app"
	"github.com/paw-chain/amm/app/telemetry"
)

const (
	envPrefix = "AMMD"

	flagHome            = "home"
	flagLogLevel        = "log-level"
	flagLogFormat       = "log-format"
	flagDBBackend       = "db-backend"
	flagInvariantChecks = "invariant-checks"

	keyAPIListen          = "api.listen"
	keyAPIRateLimit       = "api.rate-limit-rps"
	keyAPIFaucet          = "api.faucet"
	keyAPIReadTimeout     = "api.read-timeout"
	keyAPIWriteTimeout    = "api.write-timeout"
	keyAPIShutdownTimeout = "api.shutdown-timeout"
	keyAPICORSOrigins     = "api.cors-origins"

	keyTelemetryEnabled    = "telemetry.enabled"
	keyTelemetryEndpoint   = "telemetry.endpoint"
	keyTelemetrySampleRate = "telemetry.sample-rate"
	keyTelemetryEnv        = "telemetry.environment"

	logFormatJSON  = "json"
	logFormatPlain = "plain"
)

// DefaultHome is the default home directory for config and data.
var DefaultHome = func() string {
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "." + app.Name
	}
	return filepath.Join(userHome, "."+app.Name)
}()

// Config is the resolved command configuration. Flags take precedence over
// AMMD_ environment variables, which take precedence over config/ammd.toml.
type Config struct {
	Home            string
	LogLevel        zerolog.Level
	LogFormat       string
	DBBackend       string
	InvariantChecks bool
	API             *api.Config
	Telemetry       telemetry.Config
}

func addPersistentFlags(fs *pflag.FlagSet) {
	fs.String(flagHome, DefaultHome, "directory for config and data")
	fs.String(flagLogLevel, zerolog.InfoLevel.String(), "log level (trace|debug|info|warn|error)")
	fs.String(flagLogFormat, logFormatPlain, "log output format (plain|json)")
	fs.String(flagDBBackend, "goleveldb", "database backend (goleveldb|memdb|...)")
	fs.Bool(flagInvariantChecks, true, "check every invariant before committing a state change")
}

func newViper(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	defaults := api.DefaultConfig()
	v.SetDefault(keyAPIListen, defaults.ListenAddr)
	v.SetDefault(keyAPIRateLimit, defaults.RateLimitRPS)
	v.SetDefault(keyAPIFaucet, defaults.FaucetEnabled)
	v.SetDefault(keyAPIReadTimeout, defaults.ReadTimeout)
	v.SetDefault(keyAPIWriteTimeout, defaults.WriteTimeout)
	v.SetDefault(keyAPIShutdownTimeout, defaults.ShutdownTimeout)
	v.SetDefault(keyAPICORSOrigins, defaults.CORSOrigins)
	v.SetDefault(keyTelemetryEnabled, false)
	v.SetDefault(keyTelemetrySampleRate, 1.0)
	v.SetDefault(keyTelemetryEnv, "local")

	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	return v, nil
}

// loadConfig reads config/ammd.toml under the resolved home, if present.
func loadConfig(v *viper.Viper) (*Config, error) {
	home := v.GetString(flagHome)

	v.SetConfigType("toml")
	v.SetConfigFile(filepath.Join(home, "config", app.Name+".toml"))
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, os.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	level, err := zerolog.ParseLevel(v.GetString(flagLogLevel))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", flagLogLevel, err)
	}
	format := v.GetString(flagLogFormat)
	if format != logFormatJSON && format != logFormatPlain {
		return nil, fmt.Errorf("invalid %s %q", flagLogFormat, format)
	}
	invariants, err := cast.ToBoolE(v.Get(flagInvariantChecks))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", flagInvariantChecks, err)
	}

	apiCfg, err := loadAPIConfig(v)
	if err != nil {
		return nil, err
	}
	telemetryCfg, err := loadTelemetryConfig(v)
	if err != nil {
		return nil, err
	}

	return &Config{
		Home:            home,
		LogLevel:        level,
		LogFormat:       format,
		DBBackend:       v.GetString(flagDBBackend),
		InvariantChecks: invariants,
		API:             apiCfg,
		Telemetry:       telemetryCfg,
	}, nil
}

// loadAPIConfig coerces values strictly; a bad environment variable is an
// error instead of a silent zero.
func loadAPIConfig(v *viper.Viper) (*api.Config, error) {
	rps, err := cast.ToIntE(v.Get(keyAPIRateLimit))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", keyAPIRateLimit, err)
	}
	faucet, err := cast.ToBoolE(v.Get(keyAPIFaucet))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", keyAPIFaucet, err)
	}

	durations := make(map[string]time.Duration, 3)
	for _, key := range []string{keyAPIReadTimeout, keyAPIWriteTimeout, keyAPIShutdownTimeout} {
		d, err := cast.ToDurationE(v.Get(key))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", key, err)
		}
		durations[key] = d
	}

	origins, err := cast.ToStringSliceE(v.Get(keyAPICORSOrigins))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", keyAPICORSOrigins, err)
	}

	return &api.Config{
		ListenAddr:      cast.ToString(v.Get(keyAPIListen)),
		CORSOrigins:     origins,
		RateLimitRPS:    rps,
		FaucetEnabled:   faucet,
		ReadTimeout:     durations[keyAPIReadTimeout],
		WriteTimeout:    durations[keyAPIWriteTimeout],
		ShutdownTimeout: durations[keyAPIShutdownTimeout],
	}, nil
}

func loadTelemetryConfig(v *viper.Viper) (telemetry.Config, error) {
	enabled, err := cast.ToBoolE(v.Get(keyTelemetryEnabled))
	if err != nil {
		return telemetry.Config{}, fmt.Errorf("invalid %s: %w", keyTelemetryEnabled, err)
	}
	rate, err := cast.ToFloat64E(v.Get(keyTelemetrySampleRate))
	if err != nil {
		return telemetry.Config{}, fmt.Errorf("invalid %s: %w", keyTelemetrySampleRate, err)
	}
	return telemetry.Config{
		Enabled:     enabled,
		Endpoint:    cast.ToString(v.Get(keyTelemetryEndpoint)),
		SampleRate:  rate,
		Environment: cast.ToString(v.Get(keyTelemetryEnv)),
	}, nil
}

func (c *Config) newLogger() log.Logger {
	opts := []log.Option{log.LevelOption(c.LogLevel)}
	if c.LogFormat == logFormatJSON {
		opts = append(opts, log.OutputJSONOption())
	}
	return log.NewLogger(os.Stderr, opts...)
}
