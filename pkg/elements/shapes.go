package elements

import (
	"fmt"
	"math/rand/v2"

	"github.com/gnana997/stockgen/pkg/catalog"
)

func buildShapes(e *Expander, target int, r *rand.Rand) ([]catalog.AssetItem, error) {
	fixed := make([]catalog.AssetItem, 0, len(basicShapes))
	for _, s := range basicShapes {
		item := catalog.AssetItem{Label: s.Label, Icon: s.Icon, Type: s.Type, Payload: catalog.NewAttrs()}
		if s.Type == catalog.TypeImage {
			id, ok := e.icons[s.Icon]
			if !ok {
				// Unreachable after NewExpander validation.
				return nil, fmt.Errorf("%w: no icon id for %q", catalog.ErrConfiguration, s.Icon)
			}
			item.Payload.Set("src", e.IconSrc(id))
		}
		fixed = append(fixed, item)
	}

	pool := make([]catalog.AssetItem, 0, len(extensionShapes))
	for _, s := range extensionShapes {
		pool = append(pool, catalog.AssetItem{
			Label:   s.Label,
			Icon:    s.Icon,
			Type:    catalog.TypeImage,
			Payload: catalog.NewAttrs("src", e.IconSrc(s.IconID)),
		})
	}

	return fillTo(fixed, pool, target, r)
}
