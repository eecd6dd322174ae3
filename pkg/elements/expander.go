// Package elements expands small base attribute sets into the element palette:
// shapes, frames, buttons, badges and titles.
package elements

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/gnana997/stockgen/pkg/catalog"
	"github.com/gnana997/stockgen/pkg/sampling"
)

// Category names in the order they appear in the element catalog.
const (
	CategoryShapes  = "shapes"
	CategoryFrames  = "frames"
	CategoryButtons = "buttons"
	CategoryBadges  = "badges"
	CategoryTitles  = "titles"
)

// Targets is the per-category item count of the element catalog.
type Targets struct {
	Shapes  int `yaml:"shapes"`
	Frames  int `yaml:"frames"`
	Buttons int `yaml:"buttons"`
	Badges  int `yaml:"badges"`
	Titles  int `yaml:"titles"`
}

// DefaultTargets returns the stock palette sizes.
func DefaultTargets() Targets {
	return Targets{
		Shapes:  50,
		Frames:  50,
		Buttons: 150,
		Badges:  150,
		Titles:  100,
	}
}

// Config controls the element expander.
type Config struct {
	Targets Targets `yaml:"targets"`

	// IconHost is the icon service host used in image payload URLs.
	IconHost string `yaml:"icon_host"`

	// IconColor is the URL-encoded color query value, e.g. "%23666".
	IconColor string `yaml:"icon_color"`

	// IconIDs overrides or extends the canonical icon -> id table.
	IconIDs map[string]string `yaml:"icon_ids,omitempty"`
}

// DefaultConfig returns the configuration that reproduces the stock palette.
func DefaultConfig() Config {
	return Config{
		Targets:   DefaultTargets(),
		IconHost:  "api.iconify.design",
		IconColor: "%23666",
	}
}

// builder produces one category from its own random stream.
type builder func(e *Expander, target int, r *rand.Rand) ([]catalog.AssetItem, error)

type categorySpec struct {
	name   string
	target func(Targets) int
	build  builder
}

var categorySpecs = []categorySpec{
	{CategoryShapes, func(t Targets) int { return t.Shapes }, buildShapes},
	{CategoryFrames, func(t Targets) int { return t.Frames }, buildFrames},
	{CategoryButtons, func(t Targets) int { return t.Buttons }, buildButtons},
	{CategoryBadges, func(t Targets) int { return t.Badges }, buildBadges},
	{CategoryTitles, func(t Targets) int { return t.Titles }, buildTitles},
}

// Expander builds element categories. It is immutable after construction and
// safe for concurrent Build calls with distinct random sources.
type Expander struct {
	config Config
	icons  IconTable
	logger *slog.Logger
}

// NewExpander validates the configuration and icon table.
//
// Returns an error wrapping catalog.ErrConfiguration when the icon table is
// incomplete or malformed, and catalog.ErrQuota when a target is negative.
func NewExpander(config Config, logger *slog.Logger) (*Expander, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if config.IconHost == "" {
		config.IconHost = DefaultConfig().IconHost
	}
	if config.IconColor == "" {
		config.IconColor = DefaultConfig().IconColor
	}
	if strings.ContainsAny(config.IconHost, "/ ") {
		return nil, fmt.Errorf("%w: icon host %q must be a bare host name", catalog.ErrConfiguration, config.IconHost)
	}
	if strings.ContainsAny(config.IconColor, " \t\n") {
		return nil, fmt.Errorf("%w: icon color %q contains whitespace", catalog.ErrConfiguration, config.IconColor)
	}

	for _, spec := range categorySpecs {
		if n := spec.target(config.Targets); n < 0 {
			return nil, fmt.Errorf("%w: %s target is %d", catalog.ErrQuota, spec.name, n)
		}
	}

	icons, err := buildIconTable(config.IconIDs)
	if err != nil {
		return nil, err
	}

	return &Expander{config: config, icons: icons, logger: logger}, nil
}

// Categories returns the element category names in catalog order.
func (e *Expander) Categories() []string {
	names := make([]string, len(categorySpecs))
	for i, spec := range categorySpecs {
		names[i] = spec.name
	}
	return names
}

// Build produces one category using r as its only source of randomness.
func (e *Expander) Build(name string, r *rand.Rand) (catalog.AssetCategory, error) {
	for _, spec := range categorySpecs {
		if spec.name != name {
			continue
		}
		target := spec.target(e.config.Targets)
		items, err := spec.build(e, target, r)
		if err != nil {
			return catalog.AssetCategory{}, fmt.Errorf("building %s: %w", name, err)
		}
		e.logger.Debug("category expanded", "category", name, "target", target, "items", len(items))
		return catalog.AssetCategory{Name: name, Items: items}, nil
	}
	return catalog.AssetCategory{}, fmt.Errorf("%w: unknown element category %q", catalog.ErrConfiguration, name)
}

// BuildAll builds every category sequentially from one seed, using the same
// per-category streams as the concurrent pipeline.
func (e *Expander) BuildAll(seed uint64) (catalog.ElementCatalog, error) {
	out := make(catalog.ElementCatalog, 0, len(categorySpecs))
	for i, spec := range categorySpecs {
		cat, err := e.Build(spec.name, sampling.NewStream(seed, uint64(i)))
		if err != nil {
			return nil, err
		}
		out = append(out, cat)
	}
	return out, nil
}

// IconSrc returns the icon-service URL for an icon id.
func (e *Expander) IconSrc(iconID string) string {
	return fmt.Sprintf("https://%s/mdi:%s.svg?color=%s", e.config.IconHost, iconID, e.config.IconColor)
}

// fillTo keeps fixed items first and samples the procedural remainder into the
// open slots. When fixed alone exceeds target it is sampled down instead.
func fillTo(fixed []catalog.AssetItem, pool []catalog.AssetItem, target int, r *rand.Rand) ([]catalog.AssetItem, error) {
	if target <= len(fixed) {
		return sampling.WithoutReplacement(fixed, target, r)
	}
	extra, err := sampling.WithoutReplacement(pool, target-len(fixed), r)
	if err != nil {
		return nil, err
	}
	out := make([]catalog.AssetItem, 0, len(fixed)+len(extra))
	out = append(out, fixed...)
	return append(out, extra...), nil
}
