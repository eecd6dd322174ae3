// Package pipeline runs a full generation: it builds every category
// concurrently, validates both catalogs, then writes them.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gnana997/stockgen/pkg/catalog"
	"github.com/gnana997/stockgen/pkg/elements"
	"github.com/gnana997/stockgen/pkg/sampling"
	"github.com/gnana997/stockgen/pkg/styles"
	"github.com/gnana997/stockgen/pkg/util"
)

// Options selects what a run produces.
type Options struct {
	// ElementsPath is the element catalog destination. Empty skips it.
	ElementsPath string

	// StylesPath is the style catalog destination. Empty skips it.
	StylesPath string

	// Seed fixes the run. Nil draws a fresh seed, reported in Result.
	Seed *uint64

	// Format overrides the extension-derived serialization format.
	Format catalog.Format

	// Workers bounds concurrent category builds. Zero uses GetOptimalPoolSize.
	Workers int
}

// Result reports what a run produced.
type Result struct {
	Seed         uint64
	Elements     catalog.ElementCatalog
	Styles       catalog.StyleCatalog
	ElementCount int
	StyleCount   int
	Duration     time.Duration
}

// Generator owns the configured expander and synthesizer.
type Generator struct {
	expander    *elements.Expander
	synthesizer *styles.Synthesizer
	logger      *slog.Logger
}

// New builds a Generator. Configuration errors surface here, before any work.
func New(elementCfg elements.Config, styleCfg styles.Config, logger *slog.Logger) (*Generator, error) {
	if logger == nil {
		logger = slog.Default()
	}
	expander, err := elements.NewExpander(elementCfg, logger)
	if err != nil {
		return nil, err
	}
	synthesizer, err := styles.NewSynthesizer(styleCfg, logger)
	if err != nil {
		return nil, err
	}
	return &Generator{expander: expander, synthesizer: synthesizer, logger: logger}, nil
}

// Build generates the requested catalogs in memory without writing them.
// Each category draws from its own stream of the seed, so the output does
// not depend on scheduling.
func (g *Generator) Build(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()

	seed := sampling.RandomSeed()
	if opts.Seed != nil {
		seed = *opts.Seed
	} else {
		g.logger.Info("no seed given, drew one", "seed", seed)
	}

	var (
		elementNames = g.expander.Categories()
		styleNames   = g.synthesizer.Categories()
		elementSlots = make([]catalog.AssetCategory, len(elementNames))
		styleSlots   = make([][]catalog.StyleRecord, len(styleNames))
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(util.GetOptimalPoolSizeWithOverride(opts.Workers))

	if opts.ElementsPath != "" {
		for i, name := range elementNames {
			eg.Go(func() error {
				if err := egCtx.Err(); err != nil {
					return err
				}
				cat, err := g.expander.Build(name, sampling.NewStream(seed, uint64(i)))
				if err != nil {
					return err
				}
				elementSlots[i] = cat
				return nil
			})
		}
	}
	if opts.StylesPath != "" {
		for i, name := range styleNames {
			eg.Go(func() error {
				if err := egCtx.Err(); err != nil {
					return err
				}
				records, err := g.synthesizer.Build(name, sampling.NewStream(seed, styles.StreamOffset+uint64(i)))
				if err != nil {
					return err
				}
				styleSlots[i] = records
				return nil
			})
		}
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	result := &Result{Seed: seed}
	if opts.ElementsPath != "" {
		result.Elements = catalog.ElementCatalog(elementSlots)
		result.ElementCount = result.Elements.ItemCount()
	}
	if opts.StylesPath != "" {
		for _, records := range styleSlots {
			result.Styles = append(result.Styles, records...)
		}
		result.StyleCount = result.Styles.ItemCount()
	}

	if err := validate(result); err != nil {
		return nil, err
	}

	result.Duration = time.Since(start)
	return result, nil
}

// Run builds the requested catalogs and writes them. Nothing is written
// unless every requested catalog builds, validates and stages. Only a failed
// rename after the first commit can leave one catalog replaced.
func (g *Generator) Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	if opts.ElementsPath == "" && opts.StylesPath == "" {
		return nil, fmt.Errorf("%w: nothing to generate", catalog.ErrConfiguration)
	}

	for _, path := range []string{opts.ElementsPath, opts.StylesPath} {
		if path == "" {
			continue
		}
		if err := catalog.CheckDestination(path); err != nil {
			return nil, err
		}
	}

	result, err := g.Build(ctx, opts)
	if err != nil {
		return nil, err
	}

	// Both files are staged before either is renamed into place, so an
	// encode or write failure leaves every destination untouched.
	var staged []*catalog.Staged
	defer func() {
		for _, st := range staged {
			st.Discard()
		}
	}()
	if opts.ElementsPath != "" {
		st, err := stage(opts.ElementsPath, result.Elements, opts.Format)
		if err != nil {
			return nil, err
		}
		staged = append(staged, st)
	}
	if opts.StylesPath != "" {
		st, err := stage(opts.StylesPath, result.Styles, opts.Format)
		if err != nil {
			return nil, err
		}
		staged = append(staged, st)
	}

	for _, st := range staged {
		if err := st.Commit(); err != nil {
			return nil, err
		}
		g.logger.Info("wrote catalog", "path", st.Path())
	}

	result.Duration = time.Since(start)
	g.logger.Info("generation complete",
		"seed", result.Seed,
		"elements", result.ElementCount,
		"styles", result.StyleCount,
		"duration", result.Duration)
	return result, nil
}

func stage(path string, v any, override catalog.Format) (*catalog.Staged, error) {
	data, err := catalog.Encode(v, catalog.FormatForPath(path, override))
	if err != nil {
		return nil, err
	}
	return catalog.Stage(path, data, 0644)
}

func validate(result *Result) error {
	var errs []error
	if result.Elements != nil {
		errs = append(errs, result.Elements.Validate()...)
	}
	if result.Styles != nil {
		errs = append(errs, result.Styles.Validate()...)
	}
	if len(errs) > 0 {
		return fmt.Errorf("generated catalog failed validation: %w", errors.Join(errs...))
	}
	return nil
}
