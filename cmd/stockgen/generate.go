package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gnana997/stockgen/pkg/pipeline"
)

type generateOptions struct {
	seed        uint64
	elementsOut string
	stylesOut   string
	format      string
	workers     int
}

func newGenerateCmd(root *rootOptions) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:       "generate [elements|styles|all]",
		Short:     "Generate the element and/or text style catalogs",
		Long:      "Generate the element catalog, the text style catalog, or both (default).\nWithout --seed a random seed is drawn and printed so the run can be replayed.",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"elements", "styles", "all"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "all"
			if len(args) == 1 {
				target = args[0]
			}
			return runGenerate(cmd, root, opts, target)
		},
	}

	f := cmd.Flags()
	f.Uint64Var(&opts.seed, "seed", 0, "random seed; identical seeds produce identical files")
	f.StringVar(&opts.elementsOut, "elements-out", "", "element catalog path (default from config)")
	f.StringVar(&opts.stylesOut, "styles-out", "", "text style catalog path (default from config)")
	f.StringVar(&opts.format, "format", "", "force json or yaml instead of using the file extension")
	f.IntVar(&opts.workers, "workers", 0, "concurrent category builds (0 = number of CPUs)")
	return cmd
}

func runGenerate(cmd *cobra.Command, root *rootOptions, opts *generateOptions, target string) error {
	cfg, logger, err := root.load(cmd)
	if err != nil {
		return err
	}

	if opts.elementsOut != "" {
		cfg.Output.ElementsPath = opts.elementsOut
	}
	if opts.stylesOut != "" {
		cfg.Output.StylesPath = opts.stylesOut
	}
	if opts.format != "" {
		cfg.Output.Format = opts.format
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = &opts.seed
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = opts.workers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	format, err := cfg.Output.FormatOverride()
	if err != nil {
		return err
	}
	runOpts := pipeline.Options{
		Seed:    cfg.Seed,
		Format:  format,
		Workers: cfg.Workers,
	}
	if target == "elements" || target == "all" {
		runOpts.ElementsPath = cfg.Output.ElementsPath
	}
	if target == "styles" || target == "all" {
		runOpts.StylesPath = cfg.Output.StylesPath
	}

	gen, err := pipeline.New(cfg.Elements, cfg.Styles, logger)
	if err != nil {
		return err
	}
	result, err := gen.Run(cmd.Context(), runOpts)
	if err != nil {
		cmd.PrintErrf("%s generation failed\n", failMark("✗"))
		return err
	}

	out := cmd.OutOrStdout()
	if runOpts.ElementsPath != "" {
		fmt.Fprintf(out, "%s %s  %d items in %d categories\n",
			okMark("✓"), runOpts.ElementsPath, result.ElementCount, len(result.Elements))
	}
	if runOpts.StylesPath != "" {
		fmt.Fprintf(out, "%s %s  %d styles\n", okMark("✓"), runOpts.StylesPath, result.StyleCount)
	}
	fmt.Fprintf(out, "%s %d  (%s)\n", bold("seed"), result.Seed, result.Duration.Round(time.Millisecond))
	return nil
}
