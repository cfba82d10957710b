package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/zachzundel/zos/artifacts"
	"github.com/zachzundel/zos/cmd/exitcodes"
	"github.com/zachzundel/zos/logging"
	"github.com/zachzundel/zos/storage"
)

// storageCmd represents the command provider for storage layout extraction
var storageCmd = &cobra.Command{
	Use:               "storage <contract>",
	Short:             "Computes the storage layout of a contract",
	Long:              `Computes the canonical storage layout descriptor of a contract from its build artifacts and renders it as JSON`,
	Args:              cmdValidateStorageArgs,
	ValidArgsFunction: cmdValidStorageArgs,
	RunE:              cmdRunStorage,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	// Add all the flags allowed for the storage command
	addStorageFlags()

	// Add the storage command and its associated flags to the root command
	rootCmd.AddCommand(storageCmd)
}

// cmdValidStorageArgs will return which flags are valid for dynamic completion for the storage command
func cmdValidStorageArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	// Gather a list of flags that are available to be used in the current command but have not been used yet
	var unusedFlags []string
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		if !flag.Changed {
			unusedFlags = append(unusedFlags, "--"+flag.Name)
		}
	})
	return unusedFlags, cobra.ShellCompDirectiveNoFileComp
}

// cmdValidateStorageArgs makes sure that a single contract name is provided to the storage command
func cmdValidateStorageArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		err = fmt.Errorf("storage accepts exactly one positional argument, the name of the contract to analyze")
		cmdLogger.Error("Failed to validate args to the storage command", err)
		return err
	}
	return nil
}

// cmdRunStorage executes the CLI storage command: it indexes the build directory,
// locates the target contract's artifact, extracts its storage layout, and renders the
// layout as indented JSON to stdout or to the file given by --out.
func cmdRunStorage(cmd *cobra.Command, args []string) error {
	contractName := args[0]

	// The global logger starts out disabled; enable console output at the requested
	// verbosity before any other work logs.
	verbosity, err := cmd.Flags().GetString("verbosity")
	if err != nil {
		return err
	}
	level, err := zerolog.ParseLevel(verbosity)
	if err != nil {
		return fmt.Errorf("could not parse the verbosity level %q: %v", verbosity, err)
	}
	logging.GlobalLogger = logging.NewLogger(level, true)
	cmdLogger = logging.GlobalLogger.NewSubLogger("module", "cmd")

	// Index the build directory.
	buildDirectory, err := cmd.Flags().GetString("build-dir")
	if err != nil {
		cmdLogger.Error("Failed to run the storage command", err)
		return err
	}
	cmdLogger.Info("Reading build artifacts from: ", buildDirectory)
	repository, err := artifacts.NewDirRepository(buildDirectory)
	if err != nil {
		cmdLogger.Error("Failed to read the build artifact directory", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeHandledError)
	}

	// Locate the target contract's artifact and extract its layout. Any extraction
	// error means the layout could not be safely computed, with no partial result.
	artifact, err := repository.GetArtifact(contractName)
	if err != nil {
		cmdLogger.Error("Failed to locate the contract's build artifact", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeHandledError)
	}
	layout, err := storage.ExtractLayout(repository, artifact)
	if err != nil {
		// The failure is fully reported here; carry only the exit code upward so the
		// top-level handler does not print it a second time.
		cmdLogger.Error("Failed to compute the storage layout of ", contractName, err)
		return exitcodes.NewErrorWithExitCode(nil, exitcodes.ExitCodeAnalysisFailed)
	}

	// Render the layout as indented JSON.
	encoded, err := json.MarshalIndent(layout, "", "  ")
	if err != nil {
		cmdLogger.Error("Failed to encode the storage layout", err)
		return err
	}
	outPath, err := cmd.Flags().GetString("out")
	if err != nil {
		cmdLogger.Error("Failed to run the storage command", err)
		return err
	}
	if outPath != "" {
		if err = os.WriteFile(outPath, append(encoded, '\n'), 0644); err != nil {
			cmdLogger.Error("Failed to write the storage layout to ", outPath, err)
			return err
		}
		cmdLogger.Info("Storage layout for ", contractName, " written to: ", outPath)
		return nil
	}
	fmt.Println(string(encoded))
	return nil
}
