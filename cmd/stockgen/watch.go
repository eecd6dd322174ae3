package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/gnana997/stockgen/pkg/tags"
)

func newWatchCmd(root *rootOptions) *cobra.Command {
	opts := &tagsOptions{}
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Normalize section tags on every save",
		Long:  "Runs a full tag normalization, then watches the sections directory and\nre-normalizes files as they change. Stops on interrupt.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := root.load(cmd)
			if err != nil {
				return err
			}
			opts.apply(cfg)
			if cmd.Flags().Changed("debounce") {
				cfg.Tags.Debounce = debounce
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			tooling, err := newTagTooling(cfg, false, cfg.Workers, logger)
			if err != nil {
				return err
			}
			defer tooling.Close()

			ctx := cmd.Context()
			report, err := tooling.fixer.Run(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printTagReport(out, report, cfg.Tags.Root)

			w, err := tags.NewWatcher(tooling.fixer, tags.WatchOptions{
				Debounce: cfg.Tags.Debounce,
				OnResult: func(result *tags.FileResult, err error) {
					if err != nil {
						cmd.PrintErrf("%s %v\n", failMark("✗"), err)
						return
					}
					printFileResult(out, result, cfg.Tags.Root, false)
				},
			}, logger)
			if err != nil {
				return err
			}
			if err := w.Start(ctx); err != nil {
				return err
			}
			defer w.Stop()

			cmd.Printf("%s watching %s (ctrl-c to stop)\n", bold("tags"), cfg.Tags.Root)
			<-ctx.Done()
			return nil
		},
	}

	opts.bind(cmd)
	cmd.Flags().DurationVar(&debounce, "debounce", tags.DefaultDebounce, "quiet period before a changed file is rewritten")
	return cmd
}
