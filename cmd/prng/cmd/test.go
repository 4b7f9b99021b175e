package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"go.uber.org/multierr"

	cmdCommon "github.com/oasisprotocol/prng-suite/cmd/prng/cmd/common"
	"github.com/oasisprotocol/prng-suite/history"
	"github.com/oasisprotocol/prng-suite/metrics"
	"github.com/oasisprotocol/prng-suite/randtest"
	"github.com/oasisprotocol/prng-suite/randtest/api"
)

var (
	testFlags = flag.NewFlagSet("", flag.ContinueOnError)

	testCount int
	testSeed  uint64

	testCmd = &cobra.Command{
		Use:   "test <kind>",
		Short: "run the randomness test suite against a generator",
		RunE:  doTest,
	}
)

// keyStatistics renders the statistics of a result on one line.
func keyStatistics(res *api.Result) string {
	parts := make([]string, 0, len(res.Statistics))
	for _, s := range res.Statistics {
		parts = append(parts, s.Name+"="+strconv.FormatFloat(s.Value, 'f', 4, 64))
	}
	return strings.Join(parts, " ")
}

// newTable returns a table writer that keeps every cell on one line.
func newTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	return table
}

func writeResults(w io.Writer, results []*api.Result) {
	for _, res := range results {
		fmt.Fprintf(w, "%s\n%s\n\n", res.Name, res.Message)
	}

	table := newTable(w)
	table.SetHeader([]string{"Test", "Result", "Statistics"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, res := range results {
		table.Append([]string{res.Name, res.Outcome(), keyStatistics(res)})
	}
	table.Render()
}

func doTest(cmd *cobra.Command, args []string) error {
	kind := args[0]
	cfg := cmdCommon.Config()

	gen, seed, err := seededGenerator(cmd, kind, testSeed)
	if err != nil {
		return err
	}
	gen = metrics.WrapGenerator(gen)

	suite, err := randtest.NewSuite(cfg.Tests.Bins)
	if err != nil {
		return err
	}

	numbers, err := gen.GenerateSequence(testCount)
	if err != nil {
		return fmt.Errorf("failed to generate %d values: %w", testCount, err)
	}

	results := randtest.RunSuite(suite, numbers, cfg.Tests.Significance)
	for _, res := range results {
		metrics.ObserveResult(res)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Generator: %s\nSeed: %d\nCount: %d\n\n", gen.Name(), seed, len(numbers))
	writeResults(w, results)

	if cfg.DataDir != "" {
		rec := &history.Record{
			Kind:          kind,
			GeneratorName: gen.Name(),
			Seed:          seed,
			Count:         len(numbers),
			Significance:  cfg.Tests.Significance,
			Results:       results,
		}
		if err = storeRecord(rec); err != nil {
			return err
		}
		fmt.Fprintf(w, "Stored as %s\n", rec.ID)
	}

	if pusher := cmdCommon.NewPusher(metrics.KindGrouping(kind)); pusher != nil {
		if err = pusher.Push(cmd.Context()); err != nil {
			return err
		}
	}

	logger.Info("test suite finished",
		"kind", kind,
		"seed", seed,
		"count", len(numbers),
	)
	return nil
}

func storeRecord(rec *history.Record) (err error) {
	store, closeFn, err := cmdCommon.OpenHistory()
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, closeFn())
	}()
	return store.Add(rec)
}

func registerTest(parentCmd *cobra.Command) {
	testFlags.IntVar(&testCount, cfgCount, 1000, "number of values to test")
	testFlags.Uint64Var(&testSeed, cfgSeed, 0, "reseed the generator (default: configured seed)")

	kindArgs(testCmd)
	testCmd.Flags().AddFlagSet(testFlags)
	parentCmd.AddCommand(testCmd)
}
