package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/syssam/strand/compiler/load"
	"github.com/syssam/strand/compiler/resolve"
	"github.com/syssam/strand/export"
)

type sequencesOptions struct {
	output string
	format string
}

func newSequencesCmd() *cobra.Command {
	opts := &sequencesOptions{}
	cmd := &cobra.Command{
		Use:   "sequences FILE...",
		Short: "Derive missing sequences of composite parts",
		Long: `Sequences loads the given design documents and derives the sequence
of every composite DNA part whose fillers are fully specified,
iterating until no further part can be resolved. Parts that stay
unresolved are reported; partial progress is a normal outcome, not a
failure.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSequences(cmd.OutOrStdout(), opts, args)
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&opts.format, "format", "yaml", "output format: yaml, json, or msgpack")
	return cmd
}

func runSequences(stdout io.Writer, opts *sequencesOptions, files []string) error {
	format, err := export.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	doc, err := load.Files(files...)
	if err != nil {
		return err
	}

	_, report := resolve.New().Sequences(doc)
	printReport(stdout, report)
	return writeOutput(opts.output, func(w io.Writer) error {
		return export.Document(w, doc, format)
	})
}

// printReport renders the structured run report for humans.
func printReport(w io.Writer, report *resolve.Report) {
	fmt.Fprintf(w, "run %s: %d DNA parts, %d pending, %d computed in %d round(s)\n",
		report.RunID, report.DNAParts, report.Pending, len(report.Computed), report.Rounds)
	for _, o := range report.Computed {
		fmt.Fprintf(w, "  computed %s (%d elements, %s)\n", o.PartID, o.Length, o.Digest)
	}
	for _, s := range report.Stuck {
		fmt.Fprintf(w, "  stuck %s: %s\n", s.PartID, s.Reason)
	}
}
