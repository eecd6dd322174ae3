package elements

import (
	"fmt"
	"sort"

	"github.com/gnana997/stockgen/pkg/catalog"
)

// shapeSpec is one hand-authored entry of the shapes palette.
type shapeSpec struct {
	Label string
	Icon  string
	Type  catalog.ItemType
}

// extensionSpec is an icon-backed shape whose service id is fixed per entry.
// Two entries may share a display icon and still resolve to different ids.
type extensionSpec struct {
	Label  string
	Icon   string
	IconID string
}

// basicShapes are always emitted, in this order, ahead of the extension pool.
var basicShapes = []shapeSpec{
	{"Rectangle", "Square", catalog.TypeRectangle},
	{"Circle", "Circle", catalog.TypeCircle},
	{"Triangle", "Triangle", catalog.TypeImage},
	{"Star", "Star", catalog.TypeImage},
	{"Heart", "Heart", catalog.TypeImage},
	{"Hexagon", "Hexagon", catalog.TypeImage},
	{"Octagon", "Octagon", catalog.TypeImage},
	{"Pentagon", "Pentagon", catalog.TypeImage},
	{"Cloud", "Cloud", catalog.TypeImage},
	{"Message", "MessageCircle", catalog.TypeImage},
	{"Zap", "Zap", catalog.TypeImage},
	{"Sun", "Sun", catalog.TypeImage},
	{"Moon", "Moon", catalog.TypeImage},
	{"Check", "Check", catalog.TypeImage},
	{"X", "X", catalog.TypeImage},
	{"Shield", "Shield", catalog.TypeImage},
	{"Tag", "Tag", catalog.TypeImage},
	{"Bookmark", "Bookmark", catalog.TypeImage},
	{"Arrow R", "ArrowRight", catalog.TypeImage},
	{"Arrow L", "ArrowLeft", catalog.TypeImage},
	{"Diamond", "Diamond", catalog.TypeImage},
	{"Ring", "CircleDot", catalog.TypeImage},
	{"User", "User", catalog.TypeImage},
	{"Home", "Home", catalog.TypeImage},
	{"Settings", "Settings", catalog.TypeImage},
	{"Search", "Search", catalog.TypeImage},
	{"Bell", "Bell", catalog.TypeImage},
}

// defaultIconIDs maps a canonical icon name to its mdi identifier.
// Every image-typed basic shape must have an entry.
var defaultIconIDs = map[string]string{
	"Triangle":      "triangle",
	"Star":          "star",
	"Heart":         "heart",
	"Hexagon":       "hexagon",
	"Octagon":       "octagon",
	"Pentagon":      "pentagon",
	"Cloud":         "cloud",
	"MessageCircle": "message",
	"Zap":           "lightning-bolt",
	"Sun":           "white-balance-sunny",
	"Moon":          "moon-waning-crescent",
	"Check":         "check-bold",
	"X":             "close-thick",
	"Shield":        "shield",
	"Tag":           "tag",
	"Bookmark":      "bookmark",
	"ArrowRight":    "arrow-right",
	"ArrowLeft":     "arrow-left",
	"Diamond":       "cards-diamond",
	"CircleDot":     "ring",
	"User":          "account",
	"Home":          "home",
	"Settings":      "cog",
	"Search":        "magnify",
	"Bell":          "bell",
}

// extensionShapes is the pool sampled to fill the shapes palette up to its target.
var extensionShapes = []extensionSpec{
	{"Camera", "Camera", "camera"},
	{"Video", "Video", "video"},
	{"Music", "Music", "music-note"},
	{"Map", "Map", "map-marker"},
	{"Calendar", "Calendar", "calendar"},
	{"Clock", "Clock", "clock"},
	{"Phone", "Phone", "phone"},
	{"Mail", "Mail", "email"},
	{"Lock", "Lock", "lock"},
	{"Unlock", "Unlock", "lock-open"},
	{"Eye", "Eye", "eye"},
	{"Eye Off", "EyeOff", "eye-off"},
	{"Trash", "Trash2", "delete"},
	{"Edit", "Edit", "pencil"},
	{"Share", "Share", "share-variant"},
	{"Download", "Download", "download"},
	{"Upload", "Upload", "upload"},
	{"Filter", "Filter", "filter"},
	{"Sort", "List", "sort"},
	{"Grid", "Grid", "grid"},
	{"List", "List", "format-list-bulleted"},
	{"Menu", "Menu", "menu"},
	{"More", "MoreHorizontal", "dots-horizontal"},
}

// IconTable resolves canonical icon names to icon-service identifiers.
type IconTable map[string]string

// buildIconTable merges overrides onto the defaults and validates the result
// against every shape that needs it. All problems are reported, sorted by icon.
func buildIconTable(overrides map[string]string) (IconTable, error) {
	table := make(IconTable, len(defaultIconIDs)+len(overrides))
	for icon, id := range defaultIconIDs {
		table[icon] = id
	}
	for icon, id := range overrides {
		table[icon] = id
	}

	var problems []string
	for _, s := range basicShapes {
		if s.Type != catalog.TypeImage {
			continue
		}
		id, ok := table[s.Icon]
		switch {
		case !ok:
			problems = append(problems, fmt.Sprintf("shape %q: no icon id for %q", s.Label, s.Icon))
		case !catalog.IconIDPattern.MatchString(id):
			problems = append(problems, fmt.Sprintf("shape %q: malformed icon id %q", s.Label, id))
		}
	}
	for _, s := range extensionShapes {
		if !catalog.IconIDPattern.MatchString(s.IconID) {
			problems = append(problems, fmt.Sprintf("shape %q: malformed icon id %q", s.Label, s.IconID))
		}
	}
	for icon, id := range overrides {
		if !catalog.IconIDPattern.MatchString(id) {
			problems = append(problems, fmt.Sprintf("icon override %q: malformed icon id %q", icon, id))
		}
	}

	labels := make(map[string]bool, len(basicShapes)+len(extensionShapes))
	for _, s := range basicShapes {
		if labels[s.Label] {
			problems = append(problems, fmt.Sprintf("duplicate shape label %q", s.Label))
		}
		labels[s.Label] = true
	}
	for _, s := range extensionShapes {
		if labels[s.Label] {
			problems = append(problems, fmt.Sprintf("duplicate shape label %q", s.Label))
		}
		labels[s.Label] = true
	}

	if len(problems) > 0 {
		sort.Strings(problems)
		return nil, fmt.Errorf("%w: icon table: %v", catalog.ErrConfiguration, problems)
	}
	return table, nil
}
