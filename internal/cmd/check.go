// internal/cmd/check.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"tidyss-core/fastq"
)

// NewCheckCommand builds the check subcommand, which classifies each given
// path and prints the full metadata record as a YAML document.
func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <path>...",
		Short: "Classify FASTQ files and print their metadata",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runCheck,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, path := range args {
		rec, err := fastq.Parse(path)
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(rec)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, "---")
		_, _ = out.Write(data)
	}
	return nil
}
