package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"

	cmdCommon "github.com/oasisprotocol/prng-suite/cmd/prng/cmd/common"
	"github.com/oasisprotocol/prng-suite/generator/api"
	"github.com/oasisprotocol/prng-suite/generator/registry"
	"github.com/oasisprotocol/prng-suite/metrics"
)

const (
	cfgCount  = "count"
	cfgSeed   = "seed"
	cfgFormat = "format"

	formatText = "text"
	formatJSON = "json"
)

var (
	generateFlags = flag.NewFlagSet("", flag.ContinueOnError)

	generateCount  int
	generateSeed   uint64
	generateFormat string

	generateCmd = &cobra.Command{
		Use:   "generate <kind>",
		Short: "generate a sequence of values",
		RunE:  doGenerate,
	}
)

type generateOutput struct {
	Kind      string    `json:"kind"`
	Generator string    `json:"generator"`
	Seed      uint64    `json:"seed"`
	Values    []float64 `json:"values"`
}

// seededGenerator builds the generator of the given kind, reseeding it when
// the seed flag of cmd was given. It returns the generator and its seed.
func seededGenerator(cmd *cobra.Command, kind string, seed uint64) (api.Generator, uint64, error) {
	gen, err := newGenerator(kind)
	if err != nil {
		return nil, 0, err
	}
	if !cmd.Flags().Changed(cfgSeed) {
		return gen, registry.Seed(registry.Kind(kind), &cmdCommon.Config().Generator), nil
	}
	if err = gen.SetSeed(seed); err != nil {
		return nil, 0, fmt.Errorf("failed to seed %s: %w", kind, err)
	}
	return gen, seed, nil
}

func doGenerate(cmd *cobra.Command, args []string) error {
	kind := args[0]

	gen, seed, err := seededGenerator(cmd, kind, generateSeed)
	if err != nil {
		return err
	}
	gen = metrics.WrapGenerator(gen)

	values, genErr := gen.GenerateSequence(generateCount)
	logger.Info("generated sequence",
		"kind", kind,
		"seed", seed,
		"count", len(values),
		"err", genErr,
	)

	w := cmd.OutOrStdout()
	switch generateFormat {
	case formatText:
		for _, v := range values {
			fmt.Fprintln(w, strconv.FormatFloat(v, 'f', -1, 64))
		}
	case formatJSON:
		out, err := cmdCommon.PrettyJSONMarshal(&generateOutput{
			Kind:      kind,
			Generator: gen.Name(),
			Seed:      seed,
			Values:    values,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(out))
	default:
		return fmt.Errorf("unsupported output format '%s'", generateFormat)
	}

	if genErr != nil {
		return fmt.Errorf("generation stopped after %d values: %w", len(values), genErr)
	}
	return nil
}

func registerGenerate(parentCmd *cobra.Command) {
	generateFlags.IntVar(&generateCount, cfgCount, 10, "number of values to generate")
	generateFlags.Uint64Var(&generateSeed, cfgSeed, 0, "reseed the generator (default: configured seed)")
	generateFlags.StringVar(&generateFormat, cfgFormat, formatText, "output format [text,json]")

	kindArgs(generateCmd)
	generateCmd.Flags().AddFlagSet(generateFlags)
	parentCmd.AddCommand(generateCmd)
}
