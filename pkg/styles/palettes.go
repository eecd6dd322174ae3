package styles

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/gnana997/stockgen/pkg/catalog"
	"github.com/gnana997/stockgen/pkg/sampling"
)

var (
	vibrantColors = []string{
		"#FF0000", "#00FF00", "#0000FF", "#FFFF00", "#00FFFF",
		"#FF00FF", "#FF4500", "#FF1493", "#00BFFF", "#32CD32",
	}
	pastelColors = []string{
		"#FFB3BA", "#FFDFBA", "#FFFFBA", "#BAFFC9", "#BAE1FF", "#E6E6FA", "#FFC0CB", "#DDA0DD",
	}
)

// Accent selects where the accent-colored categories (Retro, Fun, Social,
// Outline) draw their colors from.
type Accent string

const (
	AccentVibrant Accent = "vibrant"
	AccentPastel  Accent = "pastel"
	AccentRandom  Accent = "random"
)

// ParseAccent resolves an accent name. The empty string means vibrant.
func ParseAccent(s string) (Accent, error) {
	switch Accent(strings.ToLower(strings.TrimSpace(s))) {
	case "", AccentVibrant:
		return AccentVibrant, nil
	case AccentPastel:
		return AccentPastel, nil
	case AccentRandom:
		return AccentRandom, nil
	default:
		return "", fmt.Errorf("%w: unknown accent palette %q (want vibrant, pastel or random)", catalog.ErrConfiguration, s)
	}
}

// draw returns one accent color.
func (a Accent) draw(r *rand.Rand) string {
	switch a {
	case AccentPastel:
		return sampling.Pick(r, pastelColors)
	case AccentRandom:
		return sampling.HexColor(r)
	default:
		return sampling.Pick(r, vibrantColors)
	}
}
