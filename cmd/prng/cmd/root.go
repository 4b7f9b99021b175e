// Package cmd implements the commands for the prng executable.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	cmdCommon "github.com/oasisprotocol/prng-suite/cmd/prng/cmd/common"
	"github.com/oasisprotocol/prng-suite/common/cbor"
	"github.com/oasisprotocol/prng-suite/common/errors"
	"github.com/oasisprotocol/prng-suite/common/logging"
	"github.com/oasisprotocol/prng-suite/common/version"
	"github.com/oasisprotocol/prng-suite/generator/api"
	"github.com/oasisprotocol/prng-suite/generator/registry"
)

var logger = logging.GetLogger("cmd/prng")

var rootCmd = &cobra.Command{
	Use:          "prng",
	Short:        "Classic pseudo-random number generators and randomness tests",
	Version:      version.SoftwareVersion,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := cmdCommon.InitConfig(); err != nil {
			return err
		}
		return cmdCommon.InitLogging()
	},
}

// RootCommand returns the root (top level) cobra.Command.
func RootCommand() *cobra.Command {
	return rootCmd
}

// Execute spawns the main entry point after handling the config file
// and command line arguments.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		module, code := errors.Code(err)
		logger.Error("command failed",
			"err", err,
			"module", module,
			"code", code,
		)
		os.Exit(1)
	}
}

// newGenerator builds the configured generator of the given kind.
func newGenerator(kind string) (api.Generator, error) {
	return registry.New(registry.Kind(kind), &cmdCommon.Config().Generator)
}

func kindNames() []string {
	var kinds []string
	for _, k := range registry.Kinds() {
		kinds = append(kinds, string(k))
	}
	return kinds
}

// kindArgs are the positional argument rules of commands taking a single
// generator kind.
func kindArgs(cmd *cobra.Command) {
	cmd.Args = cobra.ExactValidArgs(1)
	cmd.ValidArgs = kindNames()
}

func init() {
	rootCmd.PersistentFlags().AddFlagSet(cmdCommon.RootFlags)
	rootCmd.PersistentFlags().AddFlagSet(cmdCommon.LoggingFlags)
	rootCmd.PersistentFlags().AddFlagSet(cbor.Flags)

	// Register all of the sub-commands.
	for _, v := range []func(*cobra.Command){
		registerList,
		registerGenerate,
		registerTest,
		registerSweep,
		registerHistory,
	} {
		v(rootCmd)
	}
}
