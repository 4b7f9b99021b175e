// Package registry constructs generators by kind from configuration.
package registry

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/oasisprotocol/prng-suite/common/errors"
	"github.com/oasisprotocol/prng-suite/config"
	"github.com/oasisprotocol/prng-suite/generator"
	"github.com/oasisprotocol/prng-suite/generator/api"
)

// Kind is a short generator identifier used on the command line.
type Kind string

// Supported generator kinds.
const (
	KindLCG Kind = "lcg"
	KindMCG Kind = "mcg"
	KindICG Kind = "icg"
	KindLFG Kind = "lfg"
	KindMRG Kind = "mrg"
	KindMSM Kind = "msm"
)

// ErrUnknownKind is the error returned for an unsupported generator kind.
var ErrUnknownKind = errors.New(api.ModuleName, 4, "generator: unknown kind")

type factory func(cfg *config.GeneratorConfig) (api.Generator, error)

var factories = map[Kind]factory{
	KindLCG: func(cfg *config.GeneratorConfig) (api.Generator, error) {
		c := cfg.LCG
		return generator.NewLCG(c.Seed, c.Multiplier, c.Increment, c.Modulus)
	},
	KindMCG: func(cfg *config.GeneratorConfig) (api.Generator, error) {
		c := cfg.MCG
		return generator.NewMCG(c.Seed, c.Multiplier, c.Modulus)
	},
	KindICG: func(cfg *config.GeneratorConfig) (api.Generator, error) {
		c := cfg.ICG
		return generator.NewICG(c.Seed, c.Multiplier, c.Increment, c.Modulus)
	},
	KindLFG: func(cfg *config.GeneratorConfig) (api.Generator, error) {
		c := cfg.LFG
		op, err := generator.ParseOperation(c.Operation)
		if err != nil {
			return nil, err
		}
		return generator.NewLFG(c.Seed, c.ShortLag, c.LongLag, op)
	},
	KindMRG: func(cfg *config.GeneratorConfig) (api.Generator, error) {
		c := cfg.MRG
		return generator.NewMRG(c.InitialValues, c.Multipliers, c.Modulus)
	},
	KindMSM: func(cfg *config.GeneratorConfig) (api.Generator, error) {
		return generator.NewMSM(cfg.MSM.Seed)
	},
}

// Kinds returns all supported generator kinds in lexical order.
func Kinds() []Kind {
	kinds := maps.Keys(factories)
	slices.Sort(kinds)
	return kinds
}

// New constructs the generator of the given kind.
func New(kind Kind, cfg *config.GeneratorConfig) (api.Generator, error) {
	f, ok := factories[kind]
	if !ok {
		return nil, errors.WithContext(ErrUnknownKind, fmt.Sprintf("'%s'", kind))
	}
	gen, err := f(cfg)
	if err != nil {
		return nil, fmt.Errorf("registry: failed to create %s generator: %w", kind, err)
	}
	return gen, nil
}

// Seed returns the configured seed of the given kind. MRG, which is seeded
// from its initial window, reports its most recent initial value.
func Seed(kind Kind, cfg *config.GeneratorConfig) uint64 {
	switch kind {
	case KindLCG:
		return cfg.LCG.Seed
	case KindMCG:
		return cfg.MCG.Seed
	case KindICG:
		return cfg.ICG.Seed
	case KindLFG:
		return cfg.LFG.Seed
	case KindMRG:
		if n := len(cfg.MRG.InitialValues); n > 0 {
			return cfg.MRG.InitialValues[n-1]
		}
	case KindMSM:
		return cfg.MSM.Seed
	}
	return 0
}
