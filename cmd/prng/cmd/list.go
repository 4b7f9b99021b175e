package cmd

import (
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "list the supported generators",
	Args:  cobra.NoArgs,
	RunE:  doList,
}

func doList(cmd *cobra.Command, args []string) error {
	table := newTable(cmd.OutOrStdout())
	table.SetHeader([]string{"Kind", "Generator"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, kind := range kindNames() {
		gen, err := newGenerator(kind)
		if err != nil {
			// Misconfigured generators are still listed.
			table.Append([]string{kind, "invalid configuration: " + err.Error()})
			continue
		}
		table.Append([]string{kind, gen.Name()})
	}
	table.Render()
	return nil
}

func registerList(parentCmd *cobra.Command) {
	parentCmd.AddCommand(listCmd)
}
