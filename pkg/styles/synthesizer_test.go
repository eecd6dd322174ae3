package styles

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/stockgen/pkg/catalog"
	"github.com/gnana997/stockgen/pkg/sampling"
)

func newTestSynthesizer(t *testing.T, cfg Config) *Synthesizer {
	t.Helper()
	s, err := NewSynthesizer(cfg, nil)
	require.NoError(t, err)
	return s
}

func attr(t *testing.T, rec catalog.StyleRecord, key string) any {
	t.Helper()
	v, ok := rec.Style.Get(key)
	require.True(t, ok, "%s record %q missing %s", rec.Category, rec.Label, key)
	return v
}

func TestNewSynthesizer_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"negative count", Config{Count: -1}, catalog.ErrQuota},
		{"negative category count", Config{Counts: map[string]int{"Sale": -3}}, catalog.ErrQuota},
		{"unknown category", Config{Counts: map[string]int{"Grunge": 5}}, catalog.ErrConfiguration},
		{"unknown accent", Config{Accent: "neon"}, catalog.ErrConfiguration},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSynthesizer(tc.cfg, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want))
		})
	}
}

func TestCategories_Order(t *testing.T) {
	s := newTestSynthesizer(t, DefaultConfig())
	assert.Equal(t, []string{
		"Headlines", "Sale", "Luxury", "Tech", "Retro",
		"Minimal", "Fun", "Quote", "Social", "Outline",
	}, s.Categories())
}

func TestBuildAll_DefaultShape(t *testing.T) {
	s := newTestSynthesizer(t, DefaultConfig())
	cat, err := s.BuildAll(42)
	require.NoError(t, err)
	require.Len(t, cat, 500)
	assert.Empty(t, cat.Validate())

	// Flat list in category-block order.
	names := s.Categories()
	for i, rec := range cat {
		assert.Equal(t, names[i/50], rec.Category)
		assert.Equal(t, rec.Label, rec.Preview)
	}
}

func TestBuildAll_SameSeedIsByteIdentical(t *testing.T) {
	s := newTestSynthesizer(t, DefaultConfig())
	a, err := s.BuildAll(77)
	require.NoError(t, err)
	b, err := s.BuildAll(77)
	require.NoError(t, err)

	da, err := catalog.Encode(a, catalog.FormatJSON)
	require.NoError(t, err)
	db, err := catalog.Encode(b, catalog.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, da, db)
}

func TestBuild_Sale(t *testing.T) {
	s := newTestSynthesizer(t, DefaultConfig())
	recs, err := s.Build(CategorySale, sampling.NewStream(9, StreamOffset+1))
	require.NoError(t, err)
	require.Len(t, recs, 50)

	rotate := regexp.MustCompile(`^rotate\((-?[0-5])deg\)$`)
	colors := []string{"#ef4444", "#f97316", "#eab308", "#dc2626"}
	for _, rec := range recs {
		assert.Equal(t, "2px 2px 0px #ffffff, 4px 4px 0px #000000", attr(t, rec, "textShadow"))
		assert.Regexp(t, rotate, attr(t, rec, "transform"))
		assert.Contains(t, colors, attr(t, rec, "color"))
		assert.Equal(t, 72, attr(t, rec, "fontSize"))
	}
}

func TestBuild_RangesAreClosed(t *testing.T) {
	s := newTestSynthesizer(t, Config{Count: 400})

	headlines, err := s.Build(CategoryHeadlines, sampling.NewStream(1, 0))
	require.NoError(t, err)
	seen := map[int]bool{}
	for _, rec := range headlines {
		v := attr(t, rec, "letterSpacing").(int)
		require.True(t, v >= -2 && v <= 2, "letterSpacing %d", v)
		seen[v] = true
	}
	assert.Len(t, seen, 5)

	luxury, err := s.Build(CategoryLuxury, sampling.NewStream(1, 2))
	require.NoError(t, err)
	for _, rec := range luxury {
		v := attr(t, rec, "letterSpacing").(int)
		assert.True(t, v >= 1 && v <= 4, "letterSpacing %d", v)
	}
}

func TestBuild_TechGlowRepeatsOneColor(t *testing.T) {
	s := newTestSynthesizer(t, DefaultConfig())
	recs, err := s.Build(CategoryTech, sampling.NewStream(3, 3))
	require.NoError(t, err)

	glow := regexp.MustCompile(`^0 0 5px (#[0-9a-f]{6}), 0 0 10px (#[0-9a-f]{6}), 0 0 20px (#[0-9a-f]{6})$`)
	for _, rec := range recs {
		m := glow.FindStringSubmatch(attr(t, rec, "textShadow").(string))
		require.Len(t, m, 4)
		assert.Equal(t, m[1], m[2])
		assert.Equal(t, m[2], m[3])
	}
}

func TestBuild_AccentPalettes(t *testing.T) {
	tests := []struct {
		accent string
		check  func(t *testing.T, color string)
	}{
		{"vibrant", func(t *testing.T, c string) { assert.Contains(t, vibrantColors, c) }},
		{"pastel", func(t *testing.T, c string) { assert.Contains(t, pastelColors, c) }},
		{"random", func(t *testing.T, c string) { assert.Regexp(t, `^#[0-9a-f]{6}$`, c) }},
	}
	for _, tc := range tests {
		t.Run(tc.accent, func(t *testing.T) {
			s := newTestSynthesizer(t, Config{Count: 20, Accent: tc.accent})
			recs, err := s.Build(CategorySocial, sampling.NewStream(5, 8))
			require.NoError(t, err)
			require.Len(t, recs, 20)
			for _, rec := range recs {
				tc.check(t, attr(t, rec, "backgroundColor").(string))
			}
		})
	}
}

func TestBuild_PerCategoryCounts(t *testing.T) {
	s := newTestSynthesizer(t, Config{Count: 5, Counts: map[string]int{"Quote": 0, "Retro": 12}})
	cat, err := s.BuildAll(1)
	require.NoError(t, err)

	counts := map[string]int{}
	for _, rec := range cat {
		counts[rec.Category]++
	}
	assert.Equal(t, 0, counts["Quote"])
	assert.Equal(t, 12, counts["Retro"])
	assert.Equal(t, 5, counts["Sale"])
	assert.Equal(t, 8*5+12, len(cat))
}

func TestBuild_ZeroCountIsEmpty(t *testing.T) {
	s := newTestSynthesizer(t, Config{Counts: map[string]int{"Sale": 3}})
	cat, err := s.BuildAll(9)
	require.NoError(t, err)
	require.Len(t, cat, 3)
	for _, rec := range cat {
		assert.Equal(t, "Sale", rec.Category)
	}

	recs, err := s.Build("Headlines", sampling.NewStream(9, 0))
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestBuild_UnknownCategory(t *testing.T) {
	s := newTestSynthesizer(t, DefaultConfig())
	_, err := s.Build("Grunge", sampling.NewStream(1, 0))
	require.Error(t, err)
	assert.True(t, errors.Is(err, catalog.ErrConfiguration))
}

func TestBuild_LabelsFromCategoryTexts(t *testing.T) {
	s := newTestSynthesizer(t, DefaultConfig())
	cat, err := s.BuildAll(5)
	require.NoError(t, err)

	texts := map[string][]string{}
	for _, c := range styleCategories {
		texts[c.name] = c.texts
	}
	for _, rec := range cat {
		assert.Contains(t, texts[rec.Category], rec.Label)
	}
}

func TestParseAccent(t *testing.T) {
	a, err := ParseAccent("")
	require.NoError(t, err)
	assert.Equal(t, AccentVibrant, a)

	a, err = ParseAccent(" Pastel ")
	require.NoError(t, err)
	assert.Equal(t, AccentPastel, a)
}
