package main

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gnana997/stockgen/pkg/config"
	"github.com/gnana997/stockgen/pkg/parser"
	"github.com/gnana997/stockgen/pkg/tags"
	"github.com/gnana997/stockgen/pkg/util"
)

type tagsOptions struct {
	root       string
	vocabulary string
	dryRun     bool
	workers    int
}

func (o *tagsOptions) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.root, "root", "", "sections directory (default from config)")
	f.StringVar(&o.vocabulary, "vocabulary", "", "vocabulary YAML replacing the built-in one")
}

func (o *tagsOptions) apply(cfg *config.Config) {
	if o.root != "" {
		cfg.Tags.Root = o.root
	}
	if o.vocabulary != "" {
		cfg.Tags.Vocabulary = o.vocabulary
	}
}

// tagTooling is a Fixer plus the resources it borrows.
type tagTooling struct {
	fixer  *tags.Fixer
	parser *parser.ParserManager
	cache  util.FileCache
}

func (t *tagTooling) Close() {
	t.cache.Close()
	t.parser.Close()
}

func newTagTooling(cfg *config.Config, dryRun bool, workers int, logger *slog.Logger) (*tagTooling, error) {
	vocab, err := tags.LoadVocabulary(cfg.Tags.Vocabulary, logger)
	if err != nil {
		return nil, err
	}

	cacheCfg := util.DefaultFileCacheConfig()
	cacheCfg.Logger = logger
	cache, err := util.NewFileCache(cacheCfg)
	if err != nil {
		return nil, err
	}

	pm := parser.NewParserManager(logger, workers)
	fixer, err := tags.NewFixer(tags.FixerConfig{
		Root:    cfg.Tags.Root,
		Include: cfg.Tags.Include,
		Exclude: cfg.Tags.Exclude,
		DryRun:  dryRun,
		Workers: workers,
	}, tags.NewRewriter(pm, vocab), cache, logger)
	if err != nil {
		cache.Close()
		pm.Close()
		return nil, err
	}
	return &tagTooling{fixer: fixer, parser: pm, cache: cache}, nil
}

func newTagsCmd(root *rootOptions) *cobra.Command {
	opts := &tagsOptions{}

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Normalize moods/purpose tag arrays in section files",
		Long:  "Rewrites legacy values inside `moods: [...]` and `purpose: [...]` arrays of\nsection definition files to the closed vocabulary. Other code is never touched.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := root.load(cmd)
			if err != nil {
				return err
			}
			opts.apply(cfg)
			if cmd.Flags().Changed("workers") {
				cfg.Workers = opts.workers
			}

			tooling, err := newTagTooling(cfg, opts.dryRun, cfg.Workers, logger)
			if err != nil {
				return err
			}
			defer tooling.Close()

			report, err := tooling.fixer.Run(cmd.Context())
			if err != nil {
				return err
			}
			printTagReport(cmd.OutOrStdout(), report, cfg.Tags.Root)
			if len(report.Failures) > 0 {
				return fmt.Errorf("%d section file(s) could not be normalized", len(report.Failures))
			}
			return nil
		},
	}

	opts.bind(cmd)
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "report changes without writing files")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "concurrent file rewrites (0 = number of CPUs)")
	return cmd
}

func printTagReport(out io.Writer, report *tags.Report, root string) {
	for _, file := range report.Files {
		printFileResult(out, file, root, report.DryRun)
	}
	for _, failure := range report.Failures {
		fmt.Fprintf(out, "%s %s: %v\n", failMark("✗"), relPath(root, failure.Path), failure.Err)
	}

	verb := "rewrote"
	if report.DryRun {
		verb = "would rewrite"
	}
	fmt.Fprintf(out, "%s scanned %d files, %s %d values in %d files, %d unknown values\n",
		bold("tags"), report.FilesScanned, verb, report.ValuesRewritten, report.FilesChanged, report.UnknownValues)
}

func printFileResult(out io.Writer, file *tags.FileResult, root string, dryRun bool) {
	path := relPath(root, file.Path)
	if file.Changed() {
		mark := okMark("✓")
		if dryRun {
			mark = warnMark("~")
		}
		fmt.Fprintf(out, "%s %s\n", mark, path)
		for _, c := range file.Changes {
			fmt.Fprintf(out, "    %d:%d  %s  %q -> %q\n", c.Line, c.Column, c.Field, c.From, c.To)
		}
	}
	for _, u := range file.Unknowns {
		fmt.Fprintf(out, "%s %s:%d:%d  unknown %s value %q\n", warnMark("!"), path, u.Line, u.Column, u.Field, u.Value)
	}
}

func relPath(root, path string) string {
	abs, err := filepath.Abs(root)
	if err != nil {
		return path
	}
	if rel, err := filepath.Rel(abs, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}
