package config

import (
	"fmt"
	"time"

	"github.com/gnana997/stockgen/pkg/catalog"
	"github.com/gnana997/stockgen/pkg/elements"
	"github.com/gnana997/stockgen/pkg/styles"
)

// DefaultPath is where the CLI looks for project configuration.
const DefaultPath = ".stockgen/config.yaml"

// Config holds the contents of .stockgen/config.yaml.
type Config struct {
	Output   OutputConfig    `yaml:"output"`
	Seed     *uint64         `yaml:"seed,omitempty" env:"STOCKGEN_SEED"`
	Workers  int             `yaml:"workers" env:"STOCKGEN_WORKERS"`
	Elements elements.Config `yaml:"elements"`
	Styles   styles.Config   `yaml:"styles"`
	Tags     TagsConfig      `yaml:"tags"`
	MCP      MCPConfig       `yaml:"mcp"`
	Log      LogConfig       `yaml:"log"`
}

// OutputConfig names the catalog destinations.
type OutputConfig struct {
	ElementsPath string `yaml:"elements" env:"STOCKGEN_ELEMENTS_OUT"`
	StylesPath   string `yaml:"styles" env:"STOCKGEN_STYLES_OUT"`

	// Format forces json or yaml. Empty derives it from each path's extension.
	Format string `yaml:"format" env:"STOCKGEN_FORMAT"`
}

// TagsConfig drives the section tag normalizer and watch mode.
type TagsConfig struct {
	Root    string   `yaml:"root" env:"STOCKGEN_SECTIONS_ROOT"`
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`

	// Vocabulary is a YAML file replacing the embedded vocabulary.
	Vocabulary string `yaml:"vocabulary" env:"STOCKGEN_VOCABULARY"`

	Debounce time.Duration `yaml:"debounce" env:"STOCKGEN_WATCH_DEBOUNCE"`
}

// MCPConfig configures `stockgen serve`.
type MCPConfig struct {
	// LogPath enables the JSONL tool-call log when non-empty.
	LogPath string `yaml:"log_path" env:"STOCKGEN_MCP_LOG"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `yaml:"level" env:"STOCKGEN_LOG_LEVEL"`
	Format string `yaml:"format" env:"STOCKGEN_LOG_FORMAT"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Output: OutputConfig{
			ElementsPath: "data/stockElements.json",
			StylesPath:   "data/textStyles.json",
		},
		Elements: elements.DefaultConfig(),
		Styles:   styles.DefaultConfig(),
		Tags: TagsConfig{
			Root:     "lib/builder/sections",
			Include:  []string{"**/*.{ts,js}"},
			Exclude:  []string{"**/node_modules/**", "**/*.d.ts"},
			Debounce: 200 * time.Millisecond,
		},
		Log: LogConfig{Level: "info", Format: "json"},
	}
}

// LoadFile loads path over Default.
func LoadFile(path string) (*Config, error) {
	cfg, err := Load(path, Default())
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that no component validates on its own.
func (c *Config) Validate() error {
	if _, err := catalog.ParseFormat(c.Output.Format); err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0, got %d", catalog.ErrConfiguration, c.Workers)
	}
	if c.Tags.Debounce < 0 {
		return fmt.Errorf("%w: tags.debounce must be >= 0, got %s", catalog.ErrConfiguration, c.Tags.Debounce)
	}
	return nil
}

// FormatOverride returns the configured catalog format, or "" when each
// path's extension should decide.
func (o OutputConfig) FormatOverride() (catalog.Format, error) {
	if o.Format == "" {
		return "", nil
	}
	return catalog.ParseFormat(o.Format)
}
