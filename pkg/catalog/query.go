package catalog

import "strings"

// CategorySummary is a category name with its item count.
type CategorySummary struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// QueryService provides read-only query methods over loaded catalogs.
// Either catalog may be absent; queries against it return empty results.
type QueryService struct {
	Elements     ElementCatalog
	ElementIndex *ElementIndex
	Styles       StyleCatalog
	StyleIndex   *StyleIndex
}

// NewQueryService creates a QueryService from validated catalogs.
func NewQueryService(elements ElementCatalog, styles StyleCatalog) *QueryService {
	return &QueryService{
		Elements:     elements,
		ElementIndex: elements.BuildIndex(),
		Styles:       styles,
		StyleIndex:   styles.BuildIndex(),
	}
}

// LoadAndQuery loads the catalog files that are named and returns a ready-to-use
// QueryService. Pass "" to skip a catalog.
func LoadAndQuery(elementsPath, stylesPath string) (*QueryService, error) {
	var (
		elements ElementCatalog
		styles   StyleCatalog
		err      error
	)
	if elementsPath != "" {
		if elements, _, err = LoadElements(elementsPath); err != nil {
			return nil, err
		}
	}
	if stylesPath != "" {
		if styles, _, err = LoadStyles(stylesPath); err != nil {
			return nil, err
		}
	}
	return NewQueryService(elements, styles), nil
}

// ListAssetCategories returns element categories in catalog order.
func (q *QueryService) ListAssetCategories() []CategorySummary {
	result := make([]CategorySummary, 0, len(q.Elements))
	for _, cat := range q.Elements {
		result = append(result, CategorySummary{Name: cat.Name, Count: len(cat.Items)})
	}
	return result
}

// ListAssetItems returns items filtered by category, type and keyword.
// All filters are optional (pass "" to skip) and combine with AND logic.
// The keyword matches case-insensitively against the label and payload content.
// Category names match case-insensitively, as in SearchStyles.
// limit <= 0 means no limit. The bool is false when the category does not exist.
func (q *QueryService) ListAssetItems(category string, itemType ItemType, keyword string, limit int) ([]AssetItem, bool) {
	var candidates []*AssetItem

	switch {
	case category != "":
		cat, ok := q.assetCategory(category)
		if !ok {
			return nil, false
		}
		for i := range cat.Items {
			candidates = append(candidates, &cat.Items[i])
		}
	case itemType != "":
		candidates = q.ElementIndex.ItemsByType[itemType]
	default:
		for i := range q.Elements {
			for j := range q.Elements[i].Items {
				candidates = append(candidates, &q.Elements[i].Items[j])
			}
		}
	}

	keyword = strings.ToLower(keyword)
	result := make([]AssetItem, 0)

	for _, item := range candidates {
		if itemType != "" && item.Type != itemType {
			continue
		}
		if keyword != "" && !itemMatches(item, keyword) {
			continue
		}
		result = append(result, *item)
		if limit > 0 && len(result) >= limit {
			break
		}
	}

	return result, true
}

func (q *QueryService) assetCategory(name string) (*AssetCategory, bool) {
	if cat, ok := q.ElementIndex.CategoryByName[name]; ok {
		return cat, true
	}
	for i := range q.Elements {
		if strings.EqualFold(q.Elements[i].Name, name) {
			return &q.Elements[i], true
		}
	}
	return nil, false
}

func itemMatches(item *AssetItem, keyword string) bool {
	if strings.Contains(strings.ToLower(item.Label), keyword) {
		return true
	}
	if item.Payload != nil {
		if content, ok := stringAttr(item.Payload, "content"); ok {
			return strings.Contains(strings.ToLower(content), keyword)
		}
	}
	return false
}

// ListStyleCategories returns style categories in catalog order.
func (q *QueryService) ListStyleCategories() []CategorySummary {
	result := make([]CategorySummary, 0, len(q.StyleIndex.Categories))
	for _, name := range q.StyleIndex.Categories {
		result = append(result, CategorySummary{Name: name, Count: len(q.StyleIndex.RecordsByCategory[name])})
	}
	return result
}

// SearchStyles returns style records filtered by category and keyword.
// Category matching is case-insensitive; the keyword matches the label.
func (q *QueryService) SearchStyles(category, keyword string, limit int) []StyleRecord {
	keyword = strings.ToLower(keyword)
	result := make([]StyleRecord, 0)

	for _, rec := range q.Styles {
		if category != "" && !strings.EqualFold(rec.Category, category) {
			continue
		}
		if keyword != "" && !strings.Contains(strings.ToLower(rec.Label), keyword) {
			continue
		}
		result = append(result, rec)
		if limit > 0 && len(result) >= limit {
			break
		}
	}

	return result
}
