package cmd

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"go.uber.org/multierr"

	cmdCommon "github.com/oasisprotocol/prng-suite/cmd/prng/cmd/common"
	"github.com/oasisprotocol/prng-suite/common/iterflag"
	"github.com/oasisprotocol/prng-suite/metrics"
	"github.com/oasisprotocol/prng-suite/randtest"
)

var (
	sweepFlags = flag.NewFlagSet("", flag.ContinueOnError)

	sweepSeed  uint64 = 1
	sweepCount        = 1000

	sweepSeedCtl  = iterflag.NewControl(&sweepSeed, cfgSeed)
	sweepCountCtl = iterflag.NewControl(&sweepCount, cfgCount)

	sweepCmd = &cobra.Command{
		Use:   "sweep <kind>",
		Short: "run the test suite over ranges of seeds and sequence lengths",
		Long: `Run the randomness test suite for every combination of seed and
sequence length. Ranges are given as start:end:step with an exclusive end,
for example --seed=1:100:10 --count=100:1001:300.`,
		RunE: doSweep,
	}
)

func doSweep(cmd *cobra.Command, args []string) error {
	kind := args[0]
	cfg := cmdCommon.Config()

	// Validate the kind and configuration before iterating.
	if _, err := newGenerator(kind); err != nil {
		return err
	}

	suite, err := randtest.NewSuite(cfg.Tests.Bins)
	if err != nil {
		return err
	}

	it, err := iterflag.NewIterator(sweepSeedCtl, sweepCountCtl)
	if err != nil {
		return err
	}

	header := []string{"Seed", "Count"}
	for _, t := range suite {
		header = append(header, t.Name())
	}
	table := newTable(cmd.OutOrStdout())
	table.SetHeader(header)

	passed := make([]int, len(suite))
	var runs int
	var errs error
	iterErr := it.ForEach(func() error {
		row := []string{strconv.FormatUint(sweepSeed, 10), strconv.Itoa(sweepCount)}

		gen, err := newGenerator(kind)
		if err == nil {
			err = gen.SetSeed(sweepSeed)
		}
		var numbers []float64
		if err == nil {
			numbers, err = metrics.WrapGenerator(gen).GenerateSequence(sweepCount)
		}
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("seed %d count %d: %w", sweepSeed, sweepCount, err))
			for range suite {
				row = append(row, "ERROR")
			}
			table.Append(row)
			return nil
		}

		runs++
		for i, res := range randtest.RunSuite(suite, numbers, cfg.Tests.Significance) {
			metrics.ObserveResult(res)
			if res.Passed {
				passed[i]++
			}
			row = append(row, res.Outcome())
		}
		table.Append(row)
		return nil
	})
	errs = multierr.Append(errs, iterErr)
	table.Render()

	w := cmd.OutOrStdout()
	fmt.Fprintln(w)
	summary := newTable(w)
	summary.SetHeader([]string{"Test", "Passed", "Runs"})
	summary.SetAlignment(tablewriter.ALIGN_LEFT)
	for i, t := range suite {
		summary.Append([]string{t.Name(), strconv.Itoa(passed[i]), strconv.Itoa(runs)})
	}
	summary.Render()

	logger.Info("sweep finished",
		"kind", kind,
		"runs", runs,
		"errors", len(multierr.Errors(errs)),
	)

	if pusher := cmdCommon.NewPusher(metrics.KindGrouping(kind)); pusher != nil {
		errs = multierr.Append(errs, pusher.Push(cmd.Context()))
	}
	return errs
}

func registerSweep(parentCmd *cobra.Command) {
	sweepFlags.Var(sweepSeedCtl, cfgSeed, "seed range")
	sweepFlags.Var(sweepCountCtl, cfgCount, "sequence length range")

	kindArgs(sweepCmd)
	sweepCmd.Flags().AddFlagSet(sweepFlags)
	parentCmd.AddCommand(sweepCmd)
}
