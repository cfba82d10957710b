package cmd

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/zachzundel/zos/artifacts"
)

// addStorageFlags adds the various flags for the storage command
func addStorageFlags() {
	// Build artifact directory
	storageCmd.Flags().String("build-dir", artifacts.DefaultBuildDirectory,
		fmt.Sprintf("directory containing the build artifacts to analyze (unless a different one is provided, will use %q)", artifacts.DefaultBuildDirectory))

	// Output file (stdout when empty)
	storageCmd.Flags().String("out", "",
		"file to write the layout JSON to (writes to stdout if not provided)")

	// Log verbosity
	storageCmd.Flags().String("verbosity", zerolog.InfoLevel.String(),
		"log verbosity (trace, debug, info, warn, error)")
}
