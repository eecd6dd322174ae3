package catalog

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ItemType is the rendering primitive the builder uses for an asset.
type ItemType string

const (
	TypeRectangle ItemType = "rectangle"
	TypeCircle    ItemType = "circle"
	TypeImage     ItemType = "image"
	TypeText      ItemType = "text"
)

// PreviewCSS marks items the builder previews by applying the payload as CSS.
const PreviewCSS = "css"

// validItemTypes defines the allowed item types.
var validItemTypes = map[ItemType]bool{
	TypeRectangle: true,
	TypeCircle:    true,
	TypeImage:     true,
	TypeText:      true,
}

// IsValidItemType reports whether t is a known item type.
func IsValidItemType(t ItemType) bool {
	return validItemTypes[t]
}

// Attrs is an insertion-ordered attribute bag. Keys serialize in the order
// they were set, so payloads read the way they were assembled.
type Attrs = orderedmap.OrderedMap[string, any]

// NewAttrs builds an Attrs from alternating key/value arguments.
// It panics on an odd argument count or a non-string key.
func NewAttrs(kv ...any) *Attrs {
	if len(kv)%2 != 0 {
		panic(fmt.Sprintf("catalog.NewAttrs: odd argument count %d", len(kv)))
	}
	attrs := orderedmap.New[string, any]()
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("catalog.NewAttrs: key at %d is %T, not string", i, kv[i]))
		}
		attrs.Set(key, kv[i+1])
	}
	return attrs
}

// AssetItem is one entry of an element palette.
type AssetItem struct {
	Label       string   `json:"label" yaml:"label"`
	Icon        string   `json:"icon,omitempty" yaml:"icon,omitempty"`
	PreviewType string   `json:"previewType,omitempty" yaml:"previewType,omitempty"`
	Type        ItemType `json:"type" yaml:"type"`
	Payload     *Attrs   `json:"payload" yaml:"payload"`
}

// AssetCategory groups the items of one palette tab.
type AssetCategory struct {
	Name  string      `json:"category" yaml:"category"`
	Items []AssetItem `json:"items" yaml:"items"`
}

// ElementCatalog is the element palette artifact: categories in declared order.
type ElementCatalog []AssetCategory

// ItemCount returns the total number of items across all categories.
func (c ElementCatalog) ItemCount() int {
	n := 0
	for _, cat := range c {
		n += len(cat.Items)
	}
	return n
}

// StyleRecord is a text-styling preset for the typography palette.
type StyleRecord struct {
	Category string `json:"category" yaml:"category"`
	Label    string `json:"label" yaml:"label"`
	Preview  string `json:"preview" yaml:"preview"`
	Style    *Attrs `json:"style" yaml:"style"`
}

// StyleCatalog is the text-style artifact: a flat list in category-block order.
type StyleCatalog []StyleRecord

// ItemCount returns the number of style records.
func (c StyleCatalog) ItemCount() int {
	return len(c)
}

// Countable is implemented by both catalog artifacts.
type Countable interface {
	ItemCount() int
}
