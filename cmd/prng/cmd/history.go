package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	cmdCommon "github.com/oasisprotocol/prng-suite/cmd/prng/cmd/common"
	"github.com/oasisprotocol/prng-suite/history"
)

var (
	historyCmd = &cobra.Command{
		Use:   "history",
		Short: "inspect stored test suite reports",
	}

	historyListCmd = &cobra.Command{
		Use:   "list",
		Short: "list stored reports, oldest first",
		Args:  cobra.NoArgs,
		RunE:  doHistoryList,
	}

	historyShowCmd = &cobra.Command{
		Use:   "show <id>",
		Short: "show a stored report",
		Args:  cobra.ExactArgs(1),
		RunE:  doHistoryShow,
	}
)

func withHistory(fn func(*history.Store) error) (err error) {
	store, closeFn, err := cmdCommon.OpenHistory()
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, closeFn())
	}()
	return fn(store)
}

func doHistoryList(cmd *cobra.Command, args []string) error {
	return withHistory(func(store *history.Store) error {
		records, err := store.List()
		if err != nil {
			return err
		}

		table := newTable(cmd.OutOrStdout())
		table.SetHeader([]string{"ID", "Time", "Kind", "Seed", "Count", "Passed"})
		for _, rec := range records {
			table.Append([]string{
				rec.ID,
				rec.Time().Format(time.RFC3339),
				rec.Kind,
				strconv.FormatUint(rec.Seed, 10),
				strconv.Itoa(rec.Count),
				fmt.Sprintf("%d/%d", rec.Passed(), len(rec.Results)),
			})
		}
		table.Render()
		return nil
	})
}

func doHistoryShow(cmd *cobra.Command, args []string) error {
	return withHistory(func(store *history.Store) error {
		rec, err := store.Get(args[0])
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "ID: %s\nTime: %s\nGenerator: %s\nSeed: %d\nCount: %d\nSignificance: %.4f\n\n",
			rec.ID,
			rec.Time().Format(time.RFC3339Nano),
			rec.GeneratorName,
			rec.Seed,
			rec.Count,
			rec.Significance,
		)
		writeResults(w, rec.Results)
		return nil
	})
}

func registerHistory(parentCmd *cobra.Command) {
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	parentCmd.AddCommand(historyCmd)
}
