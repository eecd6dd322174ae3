// Package styles synthesizes the text-style catalog: ten typographic
// categories, each filled by independent per-record draws.
package styles

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/gnana997/stockgen/pkg/catalog"
	"github.com/gnana997/stockgen/pkg/sampling"
)

// DefaultCount is the number of records drawn per category.
const DefaultCount = 50

// StreamOffset separates style streams from element streams under one seed.
const StreamOffset uint64 = 1 << 32

// Config controls the style synthesizer.
type Config struct {
	// Count is the number of records per category. Zero yields empty
	// categories; start from DefaultConfig for the stock size.
	Count int `yaml:"count"`

	// Counts overrides Count for individual categories, keyed by category name.
	Counts map[string]int `yaml:"counts,omitempty"`

	// Accent selects the palette for accent-colored categories.
	Accent string `yaml:"accent"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{Count: DefaultCount, Accent: string(AccentVibrant)}
}

// Synthesizer draws style records. It holds no random state of its own.
type Synthesizer struct {
	counts map[string]int
	accent Accent
	logger *slog.Logger
}

// NewSynthesizer validates config. Unknown category names in Counts wrap
// catalog.ErrConfiguration; negative counts wrap catalog.ErrQuota.
func NewSynthesizer(config Config, logger *slog.Logger) (*Synthesizer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if config.Count < 0 {
		return nil, fmt.Errorf("%w: style count is %d", catalog.ErrQuota, config.Count)
	}

	accent, err := ParseAccent(config.Accent)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(styleCategories))
	for _, c := range styleCategories {
		counts[c.name] = config.Count
	}
	for name, n := range config.Counts {
		if _, ok := counts[name]; !ok {
			return nil, fmt.Errorf("%w: unknown style category %q", catalog.ErrConfiguration, name)
		}
		if n < 0 {
			return nil, fmt.Errorf("%w: %s count is %d", catalog.ErrQuota, name, n)
		}
		counts[name] = n
	}

	return &Synthesizer{counts: counts, accent: accent, logger: logger}, nil
}

// Categories returns the style category names in catalog order.
func (s *Synthesizer) Categories() []string {
	names := make([]string, len(styleCategories))
	for i, c := range styleCategories {
		names[i] = c.name
	}
	return names
}

// Build draws the records of one category from r. Each record draws its
// text first and its attributes after, so records are independent of each
// other and duplicates are possible.
func (s *Synthesizer) Build(name string, r *rand.Rand) ([]catalog.StyleRecord, error) {
	for _, c := range styleCategories {
		if c.name != name {
			continue
		}
		n := s.counts[name]
		out := make([]catalog.StyleRecord, 0, n)
		for i := 0; i < n; i++ {
			text := sampling.Pick(r, c.texts)
			out = append(out, catalog.StyleRecord{
				Category: c.name,
				Label:    text,
				Preview:  text,
				Style:    c.draw(r, s.accent),
			})
		}
		s.logger.Debug("style category synthesized", "category", name, "records", n)
		return out, nil
	}
	return nil, fmt.Errorf("%w: unknown style category %q", catalog.ErrConfiguration, name)
}

// BuildAll draws every category sequentially from one seed, using the same
// per-category streams as the concurrent pipeline.
func (s *Synthesizer) BuildAll(seed uint64) (catalog.StyleCatalog, error) {
	var out catalog.StyleCatalog
	for i, c := range styleCategories {
		records, err := s.Build(c.name, sampling.NewStream(seed, StreamOffset+uint64(i)))
		if err != nil {
			return nil, err
		}
		out = append(out, records...)
	}
	return out, nil
}
