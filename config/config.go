// Package config implements the prng-suite configuration options.
package config

import (
	"fmt"

	"github.com/oasisprotocol/prng-suite/generator"
)

// Config is the top-level configuration structure.
type Config struct {
	// Data directory holding the history store.
	DataDir string `yaml:"datadir,omitempty"`
	// Generator parameters, per generator kind.
	Generator GeneratorConfig `yaml:"generator"`
	// Randomness test configuration.
	Tests TestsConfig `yaml:"tests"`
	// Metrics configuration.
	Metrics MetricsConfig `yaml:"metrics,omitempty"`
}

// GeneratorConfig holds the construction parameters of every generator kind.
type GeneratorConfig struct {
	LCG LCGConfig `yaml:"lcg"`
	MCG MCGConfig `yaml:"mcg"`
	ICG ICGConfig `yaml:"icg"`
	LFG LFGConfig `yaml:"lfg"`
	MRG MRGConfig `yaml:"mrg"`
	MSM MSMConfig `yaml:"msm"`
}

// LCGConfig is the linear congruential generator configuration.
type LCGConfig struct {
	Seed       uint64 `yaml:"seed"`
	Multiplier uint64 `yaml:"multiplier"`
	Increment  uint64 `yaml:"increment"`
	Modulus    uint64 `yaml:"modulus"`
}

// MCGConfig is the multiplicative congruential generator configuration.
type MCGConfig struct {
	Seed       uint64 `yaml:"seed"`
	Multiplier uint64 `yaml:"multiplier"`
	Modulus    uint64 `yaml:"modulus"`
}

// ICGConfig is the inversive congruential generator configuration.
type ICGConfig struct {
	Seed       uint64 `yaml:"seed"`
	Multiplier uint64 `yaml:"multiplier"`
	Increment  uint64 `yaml:"increment"`
	Modulus    uint64 `yaml:"modulus"`
}

// LFGConfig is the lagged Fibonacci generator configuration.
type LFGConfig struct {
	Seed uint64 `yaml:"seed"`
	// Short lag j, must be less than the long lag.
	ShortLag int `yaml:"short_lag"`
	// Long lag k, also the window size.
	LongLag int `yaml:"long_lag"`
	// Combining operation, one of "+", "-", "*" or "^".
	Operation string `yaml:"operation"`
}

// MRGConfig is the multiple recursive generator configuration.
type MRGConfig struct {
	// Initial window, oldest first.
	InitialValues []uint64 `yaml:"initial_values"`
	Multipliers   []uint64 `yaml:"multipliers"`
	Modulus       uint64   `yaml:"modulus"`
}

// MSMConfig is the mid-square method configuration.
type MSMConfig struct {
	Seed uint64 `yaml:"seed"`
}

// TestsConfig is the randomness test configuration.
type TestsConfig struct {
	// Number of chi-square bins.
	Bins int `yaml:"bins"`
	// Significance level used by all tests.
	Significance float64 `yaml:"significance"`
}

// MetricsConfig is the metrics configuration.
type MetricsConfig struct {
	// Prometheus push gateway address, metrics are not pushed when empty.
	Address string `yaml:"address,omitempty"`
	// Job name used when pushing.
	JobName string `yaml:"job_name,omitempty"`
}

// Validate validates the configuration settings.
//
// Generator parameters are validated by the generator constructors.
func (c *Config) Validate() error {
	if c.Tests.Bins < 2 {
		return fmt.Errorf("tests.bins must be at least 2, got %d", c.Tests.Bins)
	}
	if c.Tests.Significance <= 0 || c.Tests.Significance >= 1 {
		return fmt.Errorf("tests.significance must be in (0, 1), got %g", c.Tests.Significance)
	}
	if c.Metrics.Address != "" && c.Metrics.JobName == "" {
		return fmt.Errorf("metrics.job_name must be set when pushing metrics")
	}
	return nil
}

// DefaultConfig returns the default configuration settings.
func DefaultConfig() Config {
	return Config{
		DataDir: "",
		Generator: GeneratorConfig{
			LCG: LCGConfig{
				Seed:       generator.DefaultLCGSeed,
				Multiplier: generator.DefaultLCGMultiplier,
				Increment:  generator.DefaultLCGIncrement,
				Modulus:    generator.DefaultLCGModulus,
			},
			MCG: MCGConfig{
				Seed:       generator.DefaultMCGSeed,
				Multiplier: generator.DefaultMCGMultiplier,
				Modulus:    generator.DefaultMCGModulus,
			},
			ICG: ICGConfig{
				Seed:       generator.DefaultICGSeed,
				Multiplier: generator.DefaultICGMultiplier,
				Increment:  generator.DefaultICGIncrement,
				Modulus:    generator.DefaultICGModulus,
			},
			LFG: LFGConfig{
				Seed:      generator.DefaultLFGSeed,
				ShortLag:  generator.DefaultLFGShortLag,
				LongLag:   generator.DefaultLFGLongLag,
				Operation: generator.DefaultLFGOperation.String(),
			},
			MRG: MRGConfig{
				InitialValues: append([]uint64(nil), generator.DefaultMRGInitialValues...),
				Multipliers:   append([]uint64(nil), generator.DefaultMRGMultipliers...),
				Modulus:       generator.DefaultMRGModulus,
			},
			MSM: MSMConfig{
				Seed: generator.DefaultMSMSeed,
			},
		},
		Tests: TestsConfig{
			Bins:         10,
			Significance: 0.05,
		},
		Metrics: MetricsConfig{
			JobName: "prng-suite",
		},
	}
}
