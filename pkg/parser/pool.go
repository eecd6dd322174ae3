package parser

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"unsafe"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// parserPool hands out parsers for one grammar. Parsers are created lazily
// up to maxSize; beyond that, acquire waits for a release or for ctx.
type parserPool struct {
	pool    chan *ts.Parser
	langPtr unsafe.Pointer
	lang    Language
	isTSX   bool
	maxSize int

	mutex   sync.Mutex
	created int

	logger *slog.Logger
}

func newParserPool(lang Language, langPtr unsafe.Pointer, isTSX bool, maxSize int, logger *slog.Logger) *parserPool {
	return &parserPool{
		pool:    make(chan *ts.Parser, maxSize),
		langPtr: langPtr,
		lang:    lang,
		isTSX:   isTSX,
		maxSize: maxSize,
		logger:  logger,
	}
}

// acquire returns an idle parser, creates one if the pool has room, or
// waits until one is released.
func (p *parserPool) acquire(ctx context.Context) (*ts.Parser, error) {
	select {
	case parser := <-p.pool:
		return parser, nil
	default:
	}

	if parser, err := p.tryCreate(); parser != nil || err != nil {
		return parser, err
	}

	select {
	case parser := <-p.pool:
		return parser, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// tryCreate returns (nil, nil) when the pool is already at maxSize.
func (p *parserPool) tryCreate() (*ts.Parser, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.created >= p.maxSize {
		return nil, nil
	}

	parser := ts.NewParser()
	if parser == nil {
		return nil, fmt.Errorf("failed to create parser")
	}
	if err := parser.SetLanguage(ts.NewLanguage(p.langPtr)); err != nil {
		parser.Close()
		return nil, fmt.Errorf("failed to set language: %w", err)
	}

	p.created++
	p.logger.Debug("created parser in pool",
		"language", p.lang.String(),
		"isTSX", p.isTSX,
		"pool_size", p.created)
	return parser, nil
}

// release returns a parser to the pool.
func (p *parserPool) release(parser *ts.Parser) {
	if parser == nil {
		return
	}
	select {
	case p.pool <- parser:
	default:
		parser.Close()
		p.logger.Warn("parser pool full, closing excess parser", "language", p.lang.String())
	}
}

// close releases idle parsers. Parsers still checked out are closed by
// release once the pool channel is full.
func (p *parserPool) close() {
	count := 0
	for {
		select {
		case parser := <-p.pool:
			parser.Close()
			count++
		default:
			p.logger.Debug("closed parser pool",
				"language", p.lang.String(),
				"isTSX", p.isTSX,
				"parsers_closed", count)
			return
		}
	}
}

func (p *parserPool) createdCount() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.created
}
