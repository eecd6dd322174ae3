package styles

import (
	"fmt"
	"math/rand/v2"

	"github.com/gnana997/stockgen/pkg/catalog"
	"github.com/gnana997/stockgen/pkg/sampling"
)

// Style category names, in catalog order.
const (
	CategoryHeadlines = "Headlines"
	CategorySale      = "Sale"
	CategoryLuxury    = "Luxury"
	CategoryTech      = "Tech"
	CategoryRetro     = "Retro"
	CategoryMinimal   = "Minimal"
	CategoryFun       = "Fun"
	CategoryQuote     = "Quote"
	CategorySocial    = "Social"
	CategoryOutline   = "Outline"
)

// recipe draws the style attributes for one record. The label has already
// been drawn from texts; recipes draw everything else in a fixed order.
type recipe func(r *rand.Rand, accent Accent) *catalog.Attrs

type styleCategory struct {
	name  string
	texts []string
	draw  recipe
}

var styleCategories = []styleCategory{
	{
		name: CategoryHeadlines,
		texts: []string{
			"BREAKING NEWS", "JUST IN", "BIG ANNOUNCEMENT", "DON'T MISS OUT", "LIMITED TIME",
			"EXCLUSIVE", "NEW ARRIVAL", "BEST SELLER", "TOP RATED", "TRENDING NOW",
			"HEADLINE", "ATTENTION", "IMPORTANT", "UPDATE", "NOTICE",
		},
		draw: func(r *rand.Rand, _ Accent) *catalog.Attrs {
			color := sampling.Pick(r, []string{"#000000", "#1a1a1a", "#2d3748", "#1e3a8a", "#b91c1c"})
			font := sampling.Pick(r, []string{"Impact, sans-serif", "Arial Black, sans-serif", "Verdana, sans-serif", "Tahoma, sans-serif"})
			return catalog.NewAttrs(
				"fontSize", 60,
				"fontFamily", font,
				"fontWeight", "900",
				"color", color,
				"textTransform", "uppercase",
				"letterSpacing", sampling.IntBetween(r, -2, 2),
				"lineHeight", 1.1,
			)
		},
	},
	{
		name: CategorySale,
		texts: []string{
			"SALE", "50% OFF", "BUY 1 GET 1", "CLEARANCE", "FLASH SALE",
			"PROMO", "DISCOUNT", "SAVE BIG", "HOT DEAL", "FINAL CALL",
			"OFFER", "DEAL", "BEST PRICE", "HUGE SAVINGS", "LIMITED OFFER",
		},
		draw: func(r *rand.Rand, _ Accent) *catalog.Attrs {
			color := sampling.Pick(r, []string{"#ef4444", "#f97316", "#eab308", "#dc2626"})
			return catalog.NewAttrs(
				"fontSize", 72,
				"fontFamily", "Arial Black, sans-serif",
				"fontWeight", "900",
				"color", color,
				"textTransform", "uppercase",
				"textShadow", "2px 2px 0px #ffffff, 4px 4px 0px #000000",
				"transform", fmt.Sprintf("rotate(%ddeg)", sampling.IntBetween(r, -5, 5)),
			)
		},
	},
	{
		name: CategoryLuxury,
		texts: []string{
			"Elegant", "Premium", "Exclusive", "Luxury", "Finest Quality",
			"Sophisticated", "Timeless", "Signature", "Collection", "Boutique",
			"Opulence", "Grandeur", "Prestige", "Elite", "Refined",
		},
		draw: func(r *rand.Rand, _ Accent) *catalog.Attrs {
			return catalog.NewAttrs(
				"fontSize", 54,
				"fontFamily", sampling.Pick(r, []string{"Georgia, serif", "Times New Roman, serif", "Palatino, serif"}),
				"fontWeight", "400",
				"fontStyle", sampling.Pick(r, []string{"normal", "italic"}),
				"color", sampling.Pick(r, []string{"#D4AF37", "#C0C0C0", "#000000", "#2C3E50", "#800020"}),
				"letterSpacing", sampling.IntBetween(r, 1, 4),
				"textShadow", "1px 1px 2px rgba(0,0,0,0.1)",
			)
		},
	},
	{
		name: CategoryTech,
		texts: []string{
			"CYBER MONDAY", "TECH WEEK", "FUTURE", "DIGITAL", "ONLINE ONLY",
			"APP EXCLUSIVE", "LOADING...", "SYSTEM READY", "VIRTUAL", "INNOVATION",
			"DATA", "NETWORK", "CODE", "MATRIX", "GLITCH",
		},
		draw: func(r *rand.Rand, _ Accent) *catalog.Attrs {
			glow := sampling.Pick(r, []string{"#00ff00", "#ff00ff", "#00ffff", "#ffff00"})
			return catalog.NewAttrs(
				"fontSize", 48,
				"fontFamily", sampling.Pick(r, []string{"Courier New, monospace", "Lucida Console, monospace"}),
				"fontWeight", "bold",
				"color", "#ffffff",
				"textShadow", fmt.Sprintf("0 0 5px %s, 0 0 10px %s, 0 0 20px %s", glow, glow, glow),
				"textTransform", "uppercase",
				"letterSpacing", 2,
			)
		},
	},
	{
		name: CategoryRetro,
		texts: []string{
			"RETRO", "VINTAGE", "CLASSIC", "OLD SCHOOL", "THROWBACK",
			"NOSTALGIA", "GROOVY", "RADICAL", "ARCADE", "REWIND",
			"DISCO", "FUNKY", "VIBE", "STYLE", "COOL",
		},
		draw: func(r *rand.Rand, accent Accent) *catalog.Attrs {
			face := accent.draw(r)
			shadow := accent.draw(r)
			return catalog.NewAttrs(
				"fontSize", 60,
				"fontFamily", "Georgia, serif",
				"fontWeight", "900",
				"color", face,
				"textShadow", fmt.Sprintf("3px 3px 0px %s, 6px 6px 0px #000000", shadow),
				"fontStyle", "italic",
			)
		},
	},
	{
		name: CategoryMinimal,
		texts: []string{
			"Simple.", "Clean.", "Minimal.", "Less is more.", "Pure.",
			"Essential.", "Basic.", "Modern.", "Sleek.", "Fresh.",
			"White.", "Space.", "Calm.", "Soft.", "Light.",
		},
		draw: func(r *rand.Rand, _ Accent) *catalog.Attrs {
			return catalog.NewAttrs(
				"fontSize", 42,
				"fontFamily", sampling.Pick(r, []string{"Arial, sans-serif", "Helvetica, sans-serif", "Segoe UI, sans-serif"}),
				"fontWeight", sampling.Pick(r, []string{"300", "400", "500"}),
				"color", "#333333",
				"letterSpacing", sampling.IntBetween(r, 1, 3),
				"textTransform", sampling.Pick(r, []string{"none", "uppercase", "lowercase"}),
			)
		},
	},
	{
		name: CategoryFun,
		texts: []string{
			"Party!", "Fun!", "Wow!", "Amazing!", "Cool!",
			"Yay!", "Pop!", "Boom!", "Zap!", "Omg!",
			"Super!", "Sweet!", "Nice!", "Yolo!", "Epic!",
		},
		draw: func(r *rand.Rand, accent Accent) *catalog.Attrs {
			color := accent.draw(r)
			return catalog.NewAttrs(
				"fontSize", 56,
				"fontFamily", sampling.Pick(r, []string{"Comic Sans MS, cursive", "Arial Rounded MT Bold, sans-serif"}),
				"fontWeight", "bold",
				"color", color,
				"WebkitTextStroke", "1px #000000",
				"textShadow", "2px 2px 0px rgba(0,0,0,0.2)",
			)
		},
	},
	{
		name: CategoryQuote,
		texts: []string{
			"“Dream Big”", "“Stay Wild”", "“Be Kind”", "“Good Vibes”", "“Just Do It”",
			"“Live Laugh Love”", "“Carpe Diem”", "“Stay Focused”", "“Keep Going”", "“You Got This”",
			"“Believe”", "“Inspire”", "“Create”", "“Love”", "“Hope”",
		},
		draw: func(_ *rand.Rand, _ Accent) *catalog.Attrs {
			return catalog.NewAttrs(
				"fontSize", 48,
				"fontFamily", "Georgia, serif",
				"fontStyle", "italic",
				"color", "#4a5568",
				"textAlign", "center",
				"lineHeight", 1.4,
			)
		},
	},
	{
		name: CategorySocial,
		texts: []string{
			"#OOTD", "#TBT", "#FYP", "#Viral", "#Trending",
			"#Love", "#InstaGood", "#FollowMe", "#Like", "#Share",
			"#Subscribe", "#LinkInBio", "#NewPost", "#Giveaway", "#Contest",
		},
		draw: func(r *rand.Rand, accent Accent) *catalog.Attrs {
			return catalog.NewAttrs(
				"fontSize", 52,
				"fontFamily", "Arial, sans-serif",
				"fontWeight", "800",
				"color", "#ffffff",
				"backgroundColor", accent.draw(r),
				"padding", "10px",
				"borderRadius", "8px",
				"textTransform", "uppercase",
			)
		},
	},
	{
		name: CategoryOutline,
		texts: []string{
			"OUTLINE", "STROKE", "HOLLOW", "BORDER", "EDGE",
			"FRAME", "TRANSPARENT", "GHOST", "SKETCH", "DRAWING",
			"LINE", "SHAPE", "FORM", "CONTOUR", "TRACE",
		},
		draw: func(r *rand.Rand, accent Accent) *catalog.Attrs {
			color := accent.draw(r)
			return catalog.NewAttrs(
				"fontSize", 64,
				"fontFamily", "Impact, sans-serif",
				"fontWeight", "900",
				"color", "transparent",
				"WebkitTextStroke", fmt.Sprintf("2px %s", color),
			)
		},
	},
}
