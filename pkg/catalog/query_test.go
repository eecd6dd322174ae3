package catalog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testQueryService() *QueryService {
	return NewQueryService(minimalElements(), minimalStyles())
}

func TestListAssetCategories(t *testing.T) {
	qs := testQueryService()
	cats := qs.ListAssetCategories()
	require.Len(t, cats, 2)
	assert.Equal(t, CategorySummary{Name: "shapes", Count: 2}, cats[0])
	assert.Equal(t, CategorySummary{Name: "buttons", Count: 1}, cats[1])
}

func TestListAssetItems(t *testing.T) {
	qs := testQueryService()

	tests := []struct {
		name       string
		category   string
		itemType   ItemType
		keyword    string
		limit      int
		wantLabels []string
		wantFound  bool
	}{
		{name: "no filter", wantLabels: []string{"Rectangle", "Star", "Buy Now Flat"}, wantFound: true},
		{name: "by category", category: "shapes", wantLabels: []string{"Rectangle", "Star"}, wantFound: true},
		{name: "category ignores case", category: "Shapes", wantLabels: []string{"Rectangle", "Star"}, wantFound: true},
		{name: "by type", itemType: TypeText, wantLabels: []string{"Buy Now Flat"}, wantFound: true},
		{name: "category and type", category: "shapes", itemType: TypeImage, wantLabels: []string{"Star"}, wantFound: true},
		{name: "keyword on content", keyword: "buy now", wantLabels: []string{"Buy Now Flat"}, wantFound: true},
		{name: "keyword on label", keyword: "STAR", wantLabels: []string{"Star"}, wantFound: true},
		{name: "limit", limit: 1, wantLabels: []string{"Rectangle"}, wantFound: true},
		{name: "unknown category", category: "stickers", wantFound: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			items, found := qs.ListAssetItems(tc.category, tc.itemType, tc.keyword, tc.limit)
			assert.Equal(t, tc.wantFound, found)
			var labels []string
			for _, it := range items {
				labels = append(labels, it.Label)
			}
			assert.Equal(t, tc.wantLabels, labels)
		})
	}
}

func TestListStyleCategories(t *testing.T) {
	qs := testQueryService()
	assert.Equal(t, []CategorySummary{{Name: "Sale", Count: 1}, {Name: "Quote", Count: 1}}, qs.ListStyleCategories())
}

func TestSearchStyles(t *testing.T) {
	qs := testQueryService()

	got := qs.SearchStyles("sale", "", 0)
	require.Len(t, got, 1)
	assert.Equal(t, "SALE", got[0].Label)

	got = qs.SearchStyles("", "kind", 0)
	require.Len(t, got, 1)
	assert.Equal(t, "Quote", got[0].Category)

	assert.Empty(t, qs.SearchStyles("Retro", "", 0))
}

func TestQueryService_EmptyCatalogs(t *testing.T) {
	qs := NewQueryService(nil, nil)
	assert.Empty(t, qs.ListAssetCategories())
	assert.Empty(t, qs.ListStyleCategories())
	assert.Empty(t, qs.SearchStyles("", "", 0))
}

func TestLoadAndQuery(t *testing.T) {
	dir := t.TempDir()
	elementsPath := filepath.Join(dir, "stockElements.json")
	stylesPath := filepath.Join(dir, "textStyles.json")
	_, err := WriteFile(elementsPath, minimalElements(), FormatJSON)
	require.NoError(t, err)
	_, err = WriteFile(stylesPath, minimalStyles(), FormatJSON)
	require.NoError(t, err)

	qs, err := LoadAndQuery(elementsPath, stylesPath)
	require.NoError(t, err)
	assert.Len(t, qs.ListAssetCategories(), 2)
	assert.Len(t, qs.ListStyleCategories(), 2)

	qs, err = LoadAndQuery("", stylesPath)
	require.NoError(t, err)
	assert.Empty(t, qs.ListAssetCategories())
}
