package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

var (
	// IconIDPattern matches a service-side icon identifier (e.g. "arrow-right").
	IconIDPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

	// iconSrcPattern matches https://<host>/mdi:<icon-id>.svg?color=<hex>.
	iconSrcPattern = regexp.MustCompile(`^https://[A-Za-z0-9.-]+/mdi:[a-z0-9]+(?:-[a-z0-9]+)*\.svg\?color=\S+$`)
)

// IsIconSrc reports whether src is a well-formed icon-service URL.
func IsIconSrc(src string) bool {
	return iconSrcPattern.MatchString(src)
}

// ElementIndex provides O(1) lookups into an element catalog.
type ElementIndex struct {
	// CategoryByName maps category name -> *AssetCategory.
	CategoryByName map[string]*AssetCategory

	// ItemsByType maps item type -> items of that type across categories.
	ItemsByType map[ItemType][]*AssetItem
}

// StyleIndex groups style records by category.
type StyleIndex struct {
	// Categories lists style categories in first-seen order.
	Categories []string

	// RecordsByCategory maps category name -> records in draw order.
	RecordsByCategory map[string][]*StyleRecord
}

// Validate checks the element catalog for internal consistency.
// Returns a slice of validation errors (empty slice if valid).
func (c ElementCatalog) Validate() []error {
	var errs []error
	seen := make(map[string]bool, len(c))

	for i, cat := range c {
		if cat.Name == "" {
			errs = append(errs, fmt.Errorf("categories[%d]: name is required", i))
			continue
		}
		if seen[cat.Name] {
			errs = append(errs, fmt.Errorf("categories[%d]: duplicate category name %q", i, cat.Name))
			continue
		}
		seen[cat.Name] = true

		for j, item := range cat.Items {
			errs = append(errs, validateItem(cat.Name, j, item)...)
		}
	}

	return errs
}

// validateItem checks that an item's payload keys agree with its type.
func validateItem(category string, idx int, item AssetItem) []error {
	var errs []error
	where := fmt.Sprintf("category %q items[%d]", category, idx)

	if item.Label == "" {
		errs = append(errs, fmt.Errorf("%s: label is required", where))
	}
	if !validItemTypes[item.Type] {
		errs = append(errs, fmt.Errorf("%s: invalid type %q", where, item.Type))
	}
	if item.PreviewType != "" && item.PreviewType != PreviewCSS {
		errs = append(errs, fmt.Errorf("%s: invalid previewType %q", where, item.PreviewType))
	}
	if item.Payload == nil {
		return append(errs, fmt.Errorf("%s: payload is required", where))
	}

	switch item.Type {
	case TypeImage:
		src, _ := stringAttr(item.Payload, "src")
		if !IsIconSrc(src) {
			errs = append(errs, fmt.Errorf("%s: image src %q is not an icon-service URL", where, src))
		}
	case TypeText:
		if content, _ := stringAttr(item.Payload, "content"); content == "" {
			errs = append(errs, fmt.Errorf("%s: text item requires payload.content", where))
		}
		if _, ok := item.Payload.Get("fontSize"); !ok {
			errs = append(errs, fmt.Errorf("%s: text item requires payload.fontSize", where))
		}
	}

	return errs
}

// Validate checks every style record. Preview must equal label verbatim.
func (c StyleCatalog) Validate() []error {
	var errs []error
	for i, rec := range c {
		if rec.Category == "" {
			errs = append(errs, fmt.Errorf("styles[%d]: category is required", i))
		}
		if rec.Label == "" {
			errs = append(errs, fmt.Errorf("styles[%d]: label is required", i))
		}
		if rec.Preview != rec.Label {
			errs = append(errs, fmt.Errorf("styles[%d]: preview %q does not match label %q", i, rec.Preview, rec.Label))
		}
		if rec.Style == nil {
			errs = append(errs, fmt.Errorf("styles[%d]: style is required", i))
			continue
		}
		for _, key := range []string{"fontSize", "fontFamily"} {
			if _, ok := rec.Style.Get(key); !ok {
				errs = append(errs, fmt.Errorf("styles[%d]: style.%s is required", i, key))
			}
		}
	}
	return errs
}

// BuildIndex creates lookup maps for fast access.
// Should be called after Validate() passes.
func (c ElementCatalog) BuildIndex() *ElementIndex {
	idx := &ElementIndex{
		CategoryByName: make(map[string]*AssetCategory, len(c)),
		ItemsByType:    make(map[ItemType][]*AssetItem),
	}
	for i := range c {
		cat := &c[i]
		idx.CategoryByName[cat.Name] = cat
		for j := range cat.Items {
			item := &cat.Items[j]
			idx.ItemsByType[item.Type] = append(idx.ItemsByType[item.Type], item)
		}
	}
	return idx
}

// BuildIndex groups records by category, keeping first-seen category order.
func (c StyleCatalog) BuildIndex() *StyleIndex {
	idx := &StyleIndex{RecordsByCategory: make(map[string][]*StyleRecord)}
	for i := range c {
		rec := &c[i]
		if _, ok := idx.RecordsByCategory[rec.Category]; !ok {
			idx.Categories = append(idx.Categories, rec.Category)
		}
		idx.RecordsByCategory[rec.Category] = append(idx.RecordsByCategory[rec.Category], rec)
	}
	return idx
}

// LoadElements reads, validates and indexes an element catalog file.
// The format is chosen from the file extension.
func LoadElements(path string) (ElementCatalog, *ElementIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read element catalog: %w", err)
	}
	return LoadElementsBytes(data, FormatForPath(path, ""))
}

// LoadElementsBytes parses an element catalog, validates it, and builds the index.
func LoadElementsBytes(data []byte, format Format) (ElementCatalog, *ElementIndex, error) {
	var cat ElementCatalog
	if err := decode(data, format, &cat); err != nil {
		return nil, nil, fmt.Errorf("failed to parse element catalog: %w", err)
	}
	if errs := cat.Validate(); len(errs) > 0 {
		return nil, nil, fmt.Errorf("element catalog validation failed: %w", errors.Join(errs...))
	}
	return cat, cat.BuildIndex(), nil
}

// LoadStyles reads, validates and indexes a style catalog file.
func LoadStyles(path string) (StyleCatalog, *StyleIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read style catalog: %w", err)
	}
	return LoadStylesBytes(data, FormatForPath(path, ""))
}

// LoadStylesBytes parses a style catalog, validates it, and builds the index.
func LoadStylesBytes(data []byte, format Format) (StyleCatalog, *StyleIndex, error) {
	var cat StyleCatalog
	if err := decode(data, format, &cat); err != nil {
		return nil, nil, fmt.Errorf("failed to parse style catalog: %w", err)
	}
	if errs := cat.Validate(); len(errs) > 0 {
		return nil, nil, fmt.Errorf("style catalog validation failed: %w", errors.Join(errs...))
	}
	return cat, cat.BuildIndex(), nil
}

func decode(data []byte, format Format, v any) error {
	if format == FormatYAML {
		return yaml.Unmarshal(data, v)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// stringAttr returns attrs[key] when it is a string.
func stringAttr(attrs *Attrs, key string) (string, bool) {
	v, ok := attrs.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
