// Package parser wraps tree-sitter grammars for the section files whose tag
// arrays get normalized.
package parser

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"unsafe"

	ts "github.com/tree-sitter/go-tree-sitter"
	ts_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	ts_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/gnana997/stockgen/pkg/util"
)

type poolKey struct {
	lang  Language
	isTSX bool
}

// ParserManager manages tree-sitter parsers with lazy, per-grammar pools.
//
// Memory Management:
//   - ParserManager owns its pools and must be closed via Close()
//   - Callers own returned Trees and must call tree.Close()
//
// Thread Safety:
//   - Safe for concurrent use; up to PoolSize goroutines parse one grammar at once
//
// Example:
//
//	manager := NewParserManager(logger, 0)
//	defer manager.Close()
//
//	tree, err := manager.ParseFile(ctx, source, "lib/builder/sections/hero.ts")
//	if err != nil {
//	    return err
//	}
//	defer tree.Close()
type ParserManager struct {
	pools    map[poolKey]*parserPool
	poolSize int
	mutex    sync.RWMutex
	logger   *slog.Logger

	parsesCalled int
}

// NewParserManager creates a ParserManager. poolSize <= 0 uses
// util.GetOptimalPoolSize(), matching the worker count of callers.
func NewParserManager(logger *slog.Logger, poolSize int) *ParserManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &ParserManager{
		pools:    make(map[poolKey]*parserPool),
		poolSize: util.GetOptimalPoolSizeWithOverride(poolSize),
		logger:   logger,
	}
}

// Parse parses source with the given grammar.
//
// Returns a Tree that MUST be closed by the caller. Trees containing syntax
// errors are still returned; callers decide whether partial trees are usable.
func (pm *ParserManager) Parse(ctx context.Context, source []byte, lang Language, isTSX bool) (*ts.Tree, error) {
	if lang == LanguageUnknown {
		return nil, fmt.Errorf("cannot parse unknown language")
	}

	pm.mutex.Lock()
	pm.parsesCalled++
	pm.mutex.Unlock()

	pool, err := pm.getOrCreatePool(lang, isTSX)
	if err != nil {
		return nil, fmt.Errorf("failed to get pool for %s: %w", lang, err)
	}

	parser, err := pool.acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire parser: %w", err)
	}
	tree := parser.Parse(source, nil)
	pool.release(parser)

	if tree == nil {
		return nil, fmt.Errorf("parser.Parse returned nil tree")
	}
	return tree, nil
}

// ParseFile detects the grammar from filePath and parses source.
func (pm *ParserManager) ParseFile(ctx context.Context, source []byte, filePath string) (*ts.Tree, error) {
	lang := DetectLanguage(filePath)
	if lang == LanguageUnknown {
		return nil, fmt.Errorf("unsupported file extension: %s", filePath)
	}
	return pm.Parse(ctx, source, lang, IsTSXFile(filePath))
}

// Close releases all parser pool resources.
func (pm *ParserManager) Close() error {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()

	pm.logger.Debug("closing ParserManager", "parses_called", pm.parsesCalled)
	for _, pool := range pm.pools {
		pool.close()
	}
	pm.pools = make(map[poolKey]*parserPool)
	return nil
}

// getOrCreatePool returns the pool for a grammar, creating it on first use.
func (pm *ParserManager) getOrCreatePool(lang Language, isTSX bool) (*parserPool, error) {
	key := poolKey{lang: lang, isTSX: isTSX}

	pm.mutex.RLock()
	pool, exists := pm.pools[key]
	pm.mutex.RUnlock()
	if exists {
		return pool, nil
	}

	pm.mutex.Lock()
	defer pm.mutex.Unlock()

	if pool, exists = pm.pools[key]; exists {
		return pool, nil
	}

	langPtr, err := languagePointer(lang, isTSX)
	if err != nil {
		return nil, err
	}
	pool = newParserPool(lang, langPtr, isTSX, pm.poolSize, pm.logger)
	pm.pools[key] = pool

	pm.logger.Debug("created new parser pool",
		"language", lang.String(),
		"isTSX", isTSX,
		"maxSize", pm.poolSize)
	return pool, nil
}

func languagePointer(lang Language, isTSX bool) (unsafe.Pointer, error) {
	switch lang {
	case LanguageTypeScript:
		if isTSX {
			return ts_typescript.LanguageTSX(), nil
		}
		return ts_typescript.LanguageTypescript(), nil
	case LanguageJavaScript:
		return ts_javascript.Language(), nil
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang.String())
	}
}

// ParserStats contains parser usage statistics.
type ParserStats struct {
	ParsersCreated int
	ParsesCalled   int
}

// GetStats returns parser usage statistics.
func (pm *ParserManager) GetStats() ParserStats {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()

	total := 0
	for _, pool := range pm.pools {
		total += pool.createdCount()
	}
	return ParserStats{ParsersCreated: total, ParsesCalled: pm.parsesCalled}
}
