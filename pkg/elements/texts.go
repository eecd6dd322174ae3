package elements

import (
	"fmt"
	"math/rand/v2"

	"github.com/gnana997/stockgen/pkg/catalog"
	"github.com/gnana997/stockgen/pkg/sampling"
)

type colorPair struct {
	Background string
	Foreground string
}

var (
	buttonTexts = []string{
		"Buy Now", "Sign Up", "Learn More", "Get Started", "Subscribe",
		"Join Us", "Shop Now", "Book Now", "Contact Us", "Read More",
		"Download", "Play", "Watch", "Listen", "Vote",
	}
	buttonColors = []colorPair{
		{"#2563eb", "#fff"}, {"#dc2626", "#fff"}, {"#16a34a", "#fff"}, {"#d97706", "#fff"},
		{"#9333ea", "#fff"}, {"#000000", "#fff"}, {"#fff", "#000"}, {"#f43f5e", "#fff"},
		{"#0ea5e9", "#fff"}, {"#8b5cf6", "#fff"}, {"#ec4899", "#fff"}, {"#14b8a6", "#fff"},
	}

	badgeTexts = []string{
		"SALE", "NEW", "HOT", "FREE", "PRO", "BETA", "50% OFF", "SOLD OUT",
		"LIMITED", "TOP", "VIP", "BEST", "10%", "20%", "30%", "40%",
		"50%", "60%", "70%", "80%", "90%", "100%",
	}
	badgeColors = []string{
		"#dc2626", "#16a34a", "#ea580c", "#2563eb", "#000000",
		"#7c3aed", "#db2777", "#475569", "#ca8a04", "#0891b2",
	}

	titleTexts = []string{
		"BIG SALE", "HUGE SAVINGS", "LIMITED TIME", "DON'T MISS OUT", "FLASH SALE",
		"SUMMER VIBES", "WINTER SALE", "SPRING COLLECTION", "AUTUMN LOOK",
		"NEW ARRIVALS", "BACK IN STOCK", "TRENDING NOW", "EDITOR'S PICK",
		"SPECIAL OFFER", "EXCLUSIVE DEAL", "MEMBERS ONLY", "JOIN THE CLUB",
		"HELLO WORLD", "WELCOME", "GOOD VIBES", "STAY TUNED", "COMING SOON",
		"GRAND OPENING", "FINAL CLEARANCE", "BEST SELLER", "TOP RATED",
	}
	titleFonts  = []string{"Inter", "Serif", "Monospace", "Cursive", "Fantasy"}
	titleColors = []string{"#000", "#333", "#2563eb", "#dc2626", "#16a34a", "#d97706", "#9333ea", "#db2777"}
)

// buttonCandidates enumerates texts x color pairs x {Flat, Outline, Pill}.
func buttonCandidates() []catalog.AssetItem {
	out := make([]catalog.AssetItem, 0, len(buttonTexts)*len(buttonColors)*3)
	for _, text := range buttonTexts {
		for _, c := range buttonColors {
			out = append(out,
				textItem(text+" Flat", catalog.NewAttrs(
					"content", text, "backgroundColor", c.Background, "color", c.Foreground,
					"borderRadius", 6, "padding", 12, "fontSize", 16, "textAlign", "center",
					"width", 120, "height", 44, "fontWeight", "600",
				)),
				textItem(text+" Outline", catalog.NewAttrs(
					"content", text, "backgroundColor", "transparent", "color", c.Background,
					"border", fmt.Sprintf("2px solid %s", c.Background),
					"borderRadius", 6, "padding", 12, "fontSize", 16, "textAlign", "center",
					"width", 120, "height", 44, "fontWeight", "600",
				)),
				textItem(text+" Pill", catalog.NewAttrs(
					"content", text, "backgroundColor", c.Background, "color", c.Foreground,
					"borderRadius", 999, "padding", 12, "fontSize", 16, "textAlign", "center",
					"width", 120, "height", 44, "fontWeight", "600",
				)),
			)
		}
	}
	return out
}

// badgeCandidates enumerates texts x colors x {plain, Pill}.
func badgeCandidates() []catalog.AssetItem {
	out := make([]catalog.AssetItem, 0, len(badgeTexts)*len(badgeColors)*2)
	for _, text := range badgeTexts {
		for _, color := range badgeColors {
			out = append(out,
				textItem(text, badgePayload(text, color, 4)),
				textItem(text+" Pill", badgePayload(text, color, 999)),
			)
		}
	}
	return out
}

func badgePayload(text, color string, radius int) *catalog.Attrs {
	return catalog.NewAttrs(
		"content", text, "backgroundColor", color, "color", "#fff",
		"borderRadius", radius, "fontSize", 12, "fontWeight", "bold",
		"textAlign", "center", "width", "auto", "padding", "4px 8px",
	)
}

// titleCandidates enumerates texts x colors; each candidate draws its font.
func titleCandidates(r *rand.Rand) []catalog.AssetItem {
	out := make([]catalog.AssetItem, 0, len(titleTexts)*len(titleColors))
	for _, text := range titleTexts {
		for _, color := range titleColors {
			out = append(out, textItem(text, catalog.NewAttrs(
				"content", text,
				"color", color,
				"fontSize", 32,
				"fontWeight", "900",
				"textAlign", "center",
				"fontFamily", sampling.Pick(r, titleFonts),
				"textTransform", "uppercase",
			)))
		}
	}
	return out
}

func textItem(label string, payload *catalog.Attrs) catalog.AssetItem {
	return catalog.AssetItem{
		Label:       label,
		PreviewType: catalog.PreviewCSS,
		Type:        catalog.TypeText,
		Payload:     payload,
	}
}

func buildButtons(_ *Expander, target int, r *rand.Rand) ([]catalog.AssetItem, error) {
	return sampling.WithoutReplacement(buttonCandidates(), target, r)
}

func buildBadges(_ *Expander, target int, r *rand.Rand) ([]catalog.AssetItem, error) {
	return sampling.WithoutReplacement(badgeCandidates(), target, r)
}

func buildTitles(_ *Expander, target int, r *rand.Rand) ([]catalog.AssetItem, error) {
	return sampling.WithoutReplacement(titleCandidates(r), target, r)
}
