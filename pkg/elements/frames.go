package elements

import (
	"fmt"
	"math/rand/v2"

	"github.com/gnana997/stockgen/pkg/catalog"
	"github.com/gnana997/stockgen/pkg/sampling"
)

var (
	frameBorderStyles = []string{"solid", "dashed", "dotted", "double"}
	frameColors       = []string{"#000", "#333", "#666", "#2563eb", "#dc2626", "#16a34a", "#d97706", "#9333ea"}
	frameRadii        = []int{0, 8, 16, 24, 999}
)

const (
	frameMinStroke = 2
	frameMaxStroke = 8
	frameSize      = 200
)

// deviceFrames are the hand-authored frames that lead the category.
func deviceFrames() []catalog.AssetItem {
	return []catalog.AssetItem{
		{
			Label: "Phone", Icon: "Smartphone", Type: catalog.TypeRectangle,
			Payload: catalog.NewAttrs(
				"width", 180, "height", 320, "borderRadius", 24,
				"border", "4px solid #333", "backgroundColor", "transparent",
			),
		},
		{
			Label: "Tablet", Icon: "Tablet", Type: catalog.TypeRectangle,
			Payload: catalog.NewAttrs(
				"width", 240, "height", 320, "borderRadius", 16,
				"border", "4px solid #333", "backgroundColor", "transparent",
			),
		},
		{
			Label: "Browser", Icon: "Layout", Type: catalog.TypeRectangle,
			Payload: catalog.NewAttrs(
				"width", 300, "height", 200, "borderRadius", 8,
				"border", "2px solid #ccc", "backgroundColor", "#fff",
				"boxShadow", "0 4px 6px -1px rgba(0, 0, 0, 0.1)",
			),
		},
		{
			Label: "Polaroid", Icon: "Image", Type: catalog.TypeRectangle,
			Payload: catalog.NewAttrs(
				"width", 220, "height", 260, "backgroundColor", "#fff",
				"padding", "16px 16px 60px 16px", "boxShadow", "0 4px 6px rgba(0,0,0,0.1)",
			),
		},
		{
			Label: "Circle Frame", Icon: "CircleDashed", Type: catalog.TypeCircle,
			Payload: catalog.NewAttrs(
				"width", 200, "height", 200,
				"border", "4px solid #333", "backgroundColor", "transparent",
			),
		},
	}
}

// buildFrames emits the device frames, then one procedural frame per open
// slot. Each procedural frame draws its attributes independently, so two
// slots may come out identical apart from the label.
func buildFrames(_ *Expander, target int, r *rand.Rand) ([]catalog.AssetItem, error) {
	fixed := deviceFrames()
	if target <= len(fixed) {
		return sampling.WithoutReplacement(fixed, target, r)
	}

	items := make([]catalog.AssetItem, 0, target)
	items = append(items, fixed...)
	for i := 1; len(items) < target; i++ {
		style := sampling.Pick(r, frameBorderStyles)
		color := sampling.Pick(r, frameColors)
		width := sampling.IntBetween(r, frameMinStroke, frameMaxStroke)
		radius := sampling.Pick(r, frameRadii)

		items = append(items, catalog.AssetItem{
			Label: fmt.Sprintf("Frame %d", i),
			Icon:  "Layout",
			Type:  catalog.TypeRectangle,
			Payload: catalog.NewAttrs(
				"width", frameSize,
				"height", frameSize,
				"border", fmt.Sprintf("%dpx %s %s", width, style, color),
				"borderRadius", radius,
				"backgroundColor", "transparent",
			),
		})
	}
	return items, nil
}
