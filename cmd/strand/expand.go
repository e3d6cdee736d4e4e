package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/syssam/strand"
	"github.com/syssam/strand/compiler/expand"
	"github.com/syssam/strand/compiler/load"
	"github.com/syssam/strand/export"
)

type expandOptions struct {
	targets []string
	output  string
	format  string
}

func newExpandCmd() *cobra.Command {
	opts := &expandOptions{}
	cmd := &cobra.Command{
		Use:   "expand FILE...",
		Short: "Expand combinatorial templates into concrete variants",
		Long: `Expand loads the given design documents into one shared document,
expands the requested templates (or every root template when none is
named), and writes the resulting collections together with the parts
they depend on.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExpand(cmd.OutOrStdout(), opts, args)
		},
	}
	cmd.Flags().StringArrayVarP(&opts.targets, "target", "x", nil, "template to expand, by name or identity; repeatable")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&opts.format, "format", "yaml", "output format: yaml, json, or msgpack")
	return cmd
}

func runExpand(stdout io.Writer, opts *expandOptions, files []string) error {
	format, err := export.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	doc, err := load.Files(files...)
	if err != nil {
		return err
	}
	targets, err := pickTargets(doc, opts.targets)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		return fmt.Errorf("no templates to expand in %d file(s)", len(files))
	}

	cols, err := expand.New(doc).Expand(targets...)
	if err != nil {
		return err
	}
	for i, c := range cols {
		fmt.Fprintf(stdout, "%s: %d designs\n", targets[i].Identity, len(c.Members))
	}
	return writeOutput(opts.output, func(w io.Writer) error {
		return export.Collections(w, doc, cols, format)
	})
}

// pickTargets resolves the named templates, defaulting to the
// document's root templates.
func pickTargets(doc *strand.Document, names []string) ([]*strand.Template, error) {
	if len(names) == 0 {
		return doc.RootTemplates(), nil
	}
	targets := make([]*strand.Template, 0, len(names))
	for _, name := range names {
		t, ok := doc.Template(name)
		if !ok {
			var err error
			t, err = doc.TemplateNamed(name)
			if err != nil {
				return nil, err
			}
		}
		targets = append(targets, t)
	}
	return targets, nil
}

func writeOutput(path string, write func(io.Writer) error) error {
	if path == "" {
		return write(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
