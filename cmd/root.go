package cmd

import (
	"github.com/spf13/cobra"
	"github.com/zachzundel/zos/logging"
)

// rootCmd represents the root CLI command object which all other commands stem from.
var rootCmd = &cobra.Command{
	Use:   "zos",
	Short: "A smart contract storage layout analyzer for upgrade safety",
	Long:  "zos computes canonical storage layout descriptors for smart contracts, for use in upgrade-safety checks",
}

// cmdLogger is the logger that will be used for the cmd package
var cmdLogger = logging.GlobalLogger.NewSubLogger("module", "cmd")

// Execute provides an exportable function to invoke the CLI.
// Returns an error if one was encountered.
func Execute() error {
	return rootCmd.Execute()
}
