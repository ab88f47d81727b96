// internal/cmd/discover.go
package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tidyss-core/fastq"
	"tidyss-core/samplesheet"
	"tidyss/internal/scan"
	"tidyss/internal/sheetio"
)

type discoverOptions struct {
	appendPath string
	loader     string
	filter     string
	out        string
	format     string
	quiet      bool
}

// NewDiscoverCommand builds the discover subcommand: walk → classify →
// filter → aggregate → save.
func NewDiscoverCommand() *cobra.Command {
	opts := &discoverOptions{}
	cmd := &cobra.Command{
		Use:   "discover <path>...",
		Short: "Search paths for FASTQ files and build a samplesheet",
		Long: `Search path(s) for FASTQ files and extract sample information from
the filename and sequence identifiers to construct a samplesheet.

A single file that fails classification aborts the whole run: samplesheet
correctness depends on complete data, not best-effort data. Without --out
the run is log-only and no document is written.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiscover(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.appendPath, "append", "a", "", "append samples to an existing samplesheet")
	cmd.Flags().StringVarP(&opts.loader, "loader", "l", sheetio.FormatYAML, "format of the existing samplesheet: yaml | json")
	cmd.Flags().StringVarP(&opts.filter, "filter", "f", "", "regex pattern to filter matching files (prefix match)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", `output path, "-" for stdout (omit to skip writing)`)
	cmd.Flags().StringVar(&opts.format, "format", sheetio.FormatYAML, "output format: yaml | json")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress the per-file summary on stderr")

	return cmd
}

func runDiscover(cmd *cobra.Command, args []string, opts *discoverOptions) error {
	var paths []string
	for _, root := range args {
		found, err := scan.Walk(root)
		if err != nil {
			return err
		}
		paths = append(paths, found...)
	}
	if opts.filter != "" {
		var err error
		paths, err = scan.Filter(paths, opts.filter)
		if err != nil {
			return err
		}
	}

	records := make([]fastq.Record, 0, len(paths))
	for _, p := range paths {
		rec, err := fastq.Parse(p)
		if err != nil {
			return err
		}
		records = append(records, rec)
	}

	if !opts.quiet {
		printSummary(cmd.ErrOrStderr(), records)
	}

	if opts.out == "" {
		return nil
	}

	samples := samplesheet.Build(records)
	var doc *samplesheet.Map
	if opts.appendPath != "" {
		loaded, err := sheetio.Load(opts.appendPath, opts.loader)
		if err != nil {
			return err
		}
		samplesheet.Merge(loaded, samples)
		doc = loaded
	} else {
		doc = samplesheet.New(samples)
	}

	if opts.out == "-" {
		return sheetio.Write(cmd.OutOrStdout(), doc, opts.format)
	}
	return sheetio.Save(opts.out, doc, opts.format)
}

var summaryHeader = color.New(color.FgCyan, color.Bold)

// printSummary emits one tab-separated diagnostic line per classified file.
func printSummary(w io.Writer, records []fastq.Record) {
	_, _ = summaryHeader.Fprintln(w, "Filename\tSequenceID\tPath")
	for _, rec := range records {
		seqid := rec.SeqidPattern
		if seqid == "" {
			seqid = "none"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", rec.FilenamePattern, seqid, rec.Path)
	}
}
