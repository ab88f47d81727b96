// internal/cmd/count.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"tidyss-core/fastq"
)

// NewCountCommand builds the count subcommand. Reads are counted as
// lines / 4, scanning each whole file.
func NewCountCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "count <path>...",
		Short: "Count the reads in FASTQ files",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runCount,
	}
}

func runCount(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, path := range args {
		n, err := fastq.CountReads(path)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "%s\t%d\n", path, n)
	}
	return nil
}
