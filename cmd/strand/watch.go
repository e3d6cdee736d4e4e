package main

import (
	"context"
	"io"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	opts := &expandOptions{}
	cmd := &cobra.Command{
		Use:   "watch FILE...",
		Short: "Re-expand templates whenever an input file changes",
		Long: `Watch runs an expansion, then watches the input files and re-runs the
expansion on every change. Each run loads a fresh document, so a
failed run never poisons the next one.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, cmd.OutOrStdout(), opts, args)
		},
	}
	cmd.Flags().StringArrayVarP(&opts.targets, "target", "x", nil, "template to expand, by name or identity; repeatable")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&opts.format, "format", "yaml", "output format: yaml, json, or msgpack")
	return cmd
}

// debounceWindow coalesces the bursts of write events editors produce
// for a single save.
const debounceWindow = 250 * time.Millisecond

func runWatch(ctx context.Context, stdout io.Writer, opts *expandOptions, files []string) error {
	run := func() {
		if err := runExpand(stdout, opts, files); err != nil {
			slog.Error("expansion failed", "error", err)
		}
	}
	run()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	for _, f := range files {
		if err := watcher.Add(f); err != nil {
			return err
		}
	}
	slog.Info("watching for changes", "files", len(files))

	var pending *time.Timer
	defer func() {
		if pending != nil {
			pending.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			slog.Debug("input changed", "file", event.Name)
			if pending != nil {
				pending.Stop()
			}
			pending = time.AfterFunc(debounceWindow, run)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch error", "error", err)
		}
	}
}
