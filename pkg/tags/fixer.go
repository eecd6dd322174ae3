package tags

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/gnana997/stockgen/pkg/catalog"
	"github.com/gnana997/stockgen/pkg/util"
)

// FixerConfig selects the section files to normalize.
type FixerConfig struct {
	Root    string
	Include []string
	Exclude []string

	// DryRun reports changes without writing files.
	DryRun bool

	// Workers bounds concurrent file rewrites. Zero uses GetOptimalPoolSize.
	Workers int
}

// Failure is a file that could not be processed.
type Failure struct {
	Path string
	Err  error
}

// Report summarizes a Fixer run.
type Report struct {
	FilesScanned    int
	FilesChanged    int
	ValuesRewritten int
	UnknownValues   int

	// Files holds results that changed something or found unknown values,
	// sorted by path.
	Files    []*FileResult
	Failures []Failure
	DryRun   bool
}

// Fixer discovers section files and rewrites their tag arrays in place.
type Fixer struct {
	config   FixerConfig
	rewriter *Rewriter
	cache    util.FileCache
	needles  []string
	logger   *slog.Logger

	// onWrite, when set, is called with the bytes written to a file.
	onWrite func(path string, data []byte)
}

// NewFixer validates the glob patterns and creates a Fixer. The cache is
// used for reads and is invalidated before every write.
func NewFixer(config FixerConfig, rewriter *Rewriter, cache util.FileCache, logger *slog.Logger) (*Fixer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if config.Root == "" {
		return nil, fmt.Errorf("%w: sections root is empty", catalog.ErrConfiguration)
	}
	for _, pattern := range config.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("%w: invalid exclude pattern: %s", catalog.ErrConfiguration, pattern)
		}
	}
	for _, pattern := range config.Include {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("%w: invalid include pattern: %s", catalog.ErrConfiguration, pattern)
		}
	}

	// A file can only hold a normalized array if it names one of the fields.
	var needles []string
	for _, field := range rewriter.vocab.Fields() {
		needles = append(needles, field+":", `"`+field+`"`, "'"+field+"'")
	}

	return &Fixer{
		config:   config,
		rewriter: rewriter,
		cache:    cache,
		needles:  needles,
		logger:   logger,
	}, nil
}

// Discover returns the sorted absolute paths of matching section files.
func (f *Fixer) Discover() ([]string, error) {
	absRoot, err := filepath.Abs(f.config.Root)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve sections root: %v", catalog.ErrIO, err)
	}
	if info, err := os.Stat(absRoot); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: sections root %s is not a directory", catalog.ErrIO, absRoot)
	}

	var files []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if path == absRoot {
			return nil
		}
		if !f.Matches(absRoot, path, d.IsDir()) {
			if d.IsDir() && f.excluded(absRoot, path) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// Matches reports whether path under root passes the exclude and include
// patterns. Directories only need to pass the excludes.
func (f *Fixer) Matches(root, path string, isDir bool) bool {
	if f.excluded(root, path) {
		return false
	}
	if isDir {
		return true
	}
	rel, ok := relSlash(root, path)
	if !ok {
		return false
	}
	if len(f.config.Include) == 0 {
		return true
	}
	for _, pattern := range f.config.Include {
		if m, _ := doublestar.Match(pattern, rel); m {
			return true
		}
	}
	return false
}

func (f *Fixer) excluded(root, path string) bool {
	rel, ok := relSlash(root, path)
	if !ok {
		return true
	}
	for _, pattern := range f.config.Exclude {
		if m, _ := doublestar.Match(pattern, rel); m {
			return true
		}
	}
	return false
}

func relSlash(root, path string) (string, bool) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// FixFile normalizes one file. Files that never mention a normalized field
// are not parsed. Unless DryRun is set, a changed file is replaced
// atomically with its original permissions.
func (f *Fixer) FixFile(ctx context.Context, path string) (*FileResult, error) {
	mentions, err := f.cache.Contains(path, f.needles...)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", catalog.ErrIO, path, err)
	}
	if !mentions {
		return &FileResult{Path: path}, nil
	}

	source, err := f.cache.Read(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", catalog.ErrIO, path, err)
	}
	result, err := f.rewriter.Rewrite(ctx, source, path)
	if err != nil {
		return nil, err
	}
	if !result.Changed() || f.config.DryRun {
		return result, nil
	}

	perm := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	f.cache.Invalidate(path)
	if err := catalog.AtomicWrite(path, result.Output, perm); err != nil {
		return nil, err
	}
	if f.onWrite != nil {
		f.onWrite(path, result.Output)
	}
	f.logger.Info("normalized section file", "path", path, "changes", len(result.Changes))
	return result, nil
}

// Run normalizes every discovered file. Per-file problems are collected in
// the report; only discovery and cancellation errors are returned.
func (f *Fixer) Run(ctx context.Context) (*Report, error) {
	files, err := f.Discover()
	if err != nil {
		return nil, err
	}

	results := make([]*FileResult, len(files))
	var (
		mu       sync.Mutex
		failures []Failure
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(util.GetOptimalPoolSizeWithOverride(f.config.Workers))
	for i, path := range files {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			result, err := f.FixFile(egCtx, path)
			if err != nil {
				f.logger.Warn("failed to normalize section file", "path", path, "error", err)
				mu.Lock()
				failures = append(failures, Failure{Path: path, Err: err})
				mu.Unlock()
				return nil
			}
			results[i] = result
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	report := &Report{FilesScanned: len(files), DryRun: f.config.DryRun}
	for _, r := range results {
		if r == nil {
			continue
		}
		if r.Changed() {
			report.FilesChanged++
			report.ValuesRewritten += len(r.Changes)
		}
		report.UnknownValues += len(r.Unknowns)
		if r.Changed() || len(r.Unknowns) > 0 {
			report.Files = append(report.Files, r)
		}
	}
	sort.Slice(failures, func(i, j int) bool { return failures[i].Path < failures[j].Path })
	report.Failures = failures

	f.logger.Info("tag normalization complete",
		"files_scanned", report.FilesScanned,
		"files_changed", report.FilesChanged,
		"values_rewritten", report.ValuesRewritten,
		"unknown_values", report.UnknownValues,
		"failures", len(report.Failures),
		"dry_run", report.DryRun)
	return report, nil
}
