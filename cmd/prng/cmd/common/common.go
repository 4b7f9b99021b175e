// Package common implements helpers shared by the prng sub-commands.
package common

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/oasisprotocol/prng-suite/common/persistent"
	"github.com/oasisprotocol/prng-suite/config"
	"github.com/oasisprotocol/prng-suite/history"
	"github.com/oasisprotocol/prng-suite/metrics"
)

const (
	// CfgConfigFile is the config file flag.
	CfgConfigFile = "config"
	// CfgDataDir is the data directory flag.
	CfgDataDir = "datadir"
	// CfgBins is the chi-square bin count flag.
	CfgBins = "tests.bins"
	// CfgSignificance is the significance level flag.
	CfgSignificance = "tests.significance"
	// CfgMetricsAddr is the prometheus push gateway address flag.
	CfgMetricsAddr = "metrics.address"
	// CfgMetricsJob is the prometheus job name flag.
	CfgMetricsJob = "metrics.job_name"
)

var (
	// RootFlags has the flags shared by every command.
	RootFlags = flag.NewFlagSet("", flag.ContinueOnError)

	cfg = config.DefaultConfig()
)

// Config returns the loaded configuration.
func Config() *config.Config {
	return &cfg
}

// InitConfig reads the config file if one is given, overlays the bound
// flags and validates the result.
func InitConfig() error {
	if cfgFile := viper.GetString(CfgConfigFile); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file '%s': %w", cfgFile, err)
		}
	}

	loaded := config.DefaultConfig()
	// Configured lists replace the defaults rather than merging into them.
	if viper.IsSet("generator.mrg.initial_values") {
		loaded.Generator.MRG.InitialValues = nil
	}
	if viper.IsSet("generator.mrg.multipliers") {
		loaded.Generator.MRG.Multipliers = nil
	}
	if err := viper.Unmarshal(&loaded, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "yaml"
	}); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	cfg = loaded

	return nil
}

// OpenHistory opens the history store in the configured data directory.
// The returned function closes the underlying store.
func OpenHistory() (*history.Store, func() error, error) {
	dataDir := cfg.DataDir
	if dataDir == "" {
		return nil, nil, fmt.Errorf("no data directory configured, use --%s", CfgDataDir)
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	common, err := persistent.NewCommonStore(dataDir)
	if err != nil {
		return nil, nil, err
	}
	store, err := history.New(common)
	if err != nil {
		return nil, nil, multierr.Append(err, common.Close())
	}
	return store, common.Close, nil
}

// NewPusher returns the configured metrics pusher, or nil if metrics are
// not pushed.
func NewPusher(grouping map[string]string) *metrics.Pusher {
	if cfg.Metrics.Address == "" {
		return nil
	}
	metrics.Init()
	return metrics.NewPusher(cfg.Metrics.Address, cfg.Metrics.JobName, grouping)
}

func init() {
	defaults := config.DefaultConfig()

	RootFlags.String(CfgConfigFile, "", "config file")
	RootFlags.String(CfgDataDir, defaults.DataDir, "data directory for the test history")
	RootFlags.Int(CfgBins, defaults.Tests.Bins, "number of chi-square bins")
	RootFlags.Float64(CfgSignificance, defaults.Tests.Significance, "significance level")
	RootFlags.String(CfgMetricsAddr, defaults.Metrics.Address, "Prometheus push gateway address")
	RootFlags.String(CfgMetricsJob, defaults.Metrics.JobName, "Prometheus job name")

	_ = viper.BindPFlags(RootFlags)
}
