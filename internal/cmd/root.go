// internal/cmd/root.go
// Package cmd wires the tidyss command-line interface.
package cmd

import (
	"github.com/spf13/cobra"

	"tidyss/internal/version"
)

// NewRootCommand builds the root tidyss command with all subcommands.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tidyss",
		Short: "FASTQ support for tidy sample sheets",
		Long: `tidyss discovers FASTQ files, extracts sample, lane and read metadata
from filenames and embedded sequence identifiers, and aggregates the
results into a samplesheet document.`,
		Version: version.Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.AddCommand(NewDiscoverCommand())
	cmd.AddCommand(NewCheckCommand())
	cmd.AddCommand(NewCountCommand())

	return cmd
}
