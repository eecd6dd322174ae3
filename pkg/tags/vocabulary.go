// Package tags normalizes the categorical tag arrays (moods, purpose) in
// section definition files to a closed vocabulary.
package tags

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gnana997/stockgen/catalogs"
	"github.com/gnana997/stockgen/pkg/catalog"
)

// Vocabulary is the closed value set of one tag field plus the rewrites that
// map legacy values onto it.
type Vocabulary struct {
	Field    string            `yaml:"field"`
	Allowed  []string          `yaml:"allowed"`
	Rewrites map[string]string `yaml:"rewrites"`

	allowed map[string]struct{}
	targets map[string]struct{}
}

// IsAllowed reports whether value is in the field's closed set.
func (v *Vocabulary) IsAllowed(value string) bool {
	_, ok := v.allowed[value]
	return ok
}

// IsTarget reports whether value is the result of some rewrite.
func (v *Vocabulary) IsTarget(value string) bool {
	_, ok := v.targets[value]
	return ok
}

// VocabularySet holds the vocabulary of every normalized field.
type VocabularySet struct {
	fields  []*Vocabulary
	byField map[string]*Vocabulary
}

type vocabularyFile struct {
	Fields []*Vocabulary `yaml:"fields"`
}

// Fields returns the normalized field names in file order.
func (s *VocabularySet) Fields() []string {
	names := make([]string, len(s.fields))
	for i, v := range s.fields {
		names[i] = v.Field
	}
	return names
}

// Lookup returns the vocabulary for field, or nil when the field is not
// normalized.
func (s *VocabularySet) Lookup(field string) *Vocabulary {
	return s.byField[field]
}

// DefaultVocabulary parses the embedded vocabulary.
func DefaultVocabulary(logger *slog.Logger) (*VocabularySet, error) {
	return ParseVocabulary(catalogs.VocabularyYAML, logger)
}

// LoadVocabulary reads a vocabulary file. An empty path returns the
// embedded default.
func LoadVocabulary(path string, logger *slog.Logger) (*VocabularySet, error) {
	if path == "" {
		return DefaultVocabulary(logger)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read vocabulary %s: %v", catalog.ErrConfiguration, path, err)
	}
	return ParseVocabulary(data, logger)
}

// ParseVocabulary decodes and validates a vocabulary document.
//
// Rejected:
//   - fields with an empty name, duplicated, or without allowed values
//   - rewrites whose key is already allowed, or whose target is empty
//   - chained rewrites (a target that is itself a rewrite key), which would
//     make normalization depend on how many times it runs
//   - values containing quotes, backslashes or line breaks
//
// A rewrite target outside the field's allowed set is kept and logged as a
// warning.
func ParseVocabulary(data []byte, logger *slog.Logger) (*VocabularySet, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var file vocabularyFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: parse vocabulary: %v", catalog.ErrConfiguration, err)
	}

	set := &VocabularySet{byField: make(map[string]*Vocabulary, len(file.Fields))}
	var errs []error
	for i, v := range file.Fields {
		if v == nil || v.Field == "" {
			errs = append(errs, fmt.Errorf("fields[%d]: missing field name", i))
			continue
		}
		if _, dup := set.byField[v.Field]; dup {
			errs = append(errs, fmt.Errorf("fields[%d]: duplicate field %q", i, v.Field))
			continue
		}
		errs = append(errs, v.compile(logger)...)
		set.fields = append(set.fields, v)
		set.byField[v.Field] = v
	}
	if len(set.fields) == 0 && len(errs) == 0 {
		errs = append(errs, errors.New("no fields defined"))
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: invalid vocabulary: %w", catalog.ErrConfiguration, errors.Join(errs...))
	}
	return set, nil
}

func (v *Vocabulary) compile(logger *slog.Logger) []error {
	var errs []error
	if len(v.Allowed) == 0 {
		errs = append(errs, fmt.Errorf("%s: no allowed values", v.Field))
	}

	v.allowed = make(map[string]struct{}, len(v.Allowed))
	for _, value := range v.Allowed {
		if err := checkValue(value); err != nil {
			errs = append(errs, fmt.Errorf("%s: allowed value %q: %w", v.Field, value, err))
			continue
		}
		v.allowed[value] = struct{}{}
	}

	keys := make([]string, 0, len(v.Rewrites))
	for from := range v.Rewrites {
		keys = append(keys, from)
	}
	sort.Strings(keys)

	v.targets = make(map[string]struct{}, len(v.Rewrites))

	for _, from := range keys {
		to := v.Rewrites[from]
		switch {
		case checkValue(from) != nil:
			errs = append(errs, fmt.Errorf("%s: rewrite key %q: %w", v.Field, from, checkValue(from)))
		case checkValue(to) != nil:
			errs = append(errs, fmt.Errorf("%s: rewrite %q -> %q: %w", v.Field, from, to, checkValue(to)))
		case v.IsAllowed(from):
			errs = append(errs, fmt.Errorf("%s: rewrite key %q is already an allowed value", v.Field, from))
		default:
			if _, chained := v.Rewrites[to]; chained {
				errs = append(errs, fmt.Errorf("%s: rewrite %q -> %q chains into another rewrite", v.Field, from, to))
			} else if !v.IsAllowed(to) {
				logger.Warn("rewrite target outside allowed values",
					"field", v.Field, "from", from, "to", to)
			}
			v.targets[to] = struct{}{}
		}
	}
	return errs
}

func checkValue(value string) error {
	if value == "" {
		return errors.New("empty value")
	}
	if strings.ContainsAny(value, "'\"`\\\r\n") {
		return errors.New("contains a quote, backslash or line break")
	}
	return nil
}
