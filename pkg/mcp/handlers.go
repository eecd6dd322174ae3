package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gnana997/stockgen/pkg/catalog"
)

// itemsResponse wraps filtered results with the applied limit so callers can
// tell a short catalog from a truncated answer.
type itemsResponse[T any] struct {
	Count     int  `json:"count"`
	Truncated bool `json:"truncated"`
	Items     []T  `json:"items"`
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// limitArg reads "limit", defaulting and clamping it.
func limitArg(req mcp.CallToolRequest) (int, error) {
	limit := req.GetInt("limit", defaultItemLimit)
	if limit <= 0 {
		return 0, fmt.Errorf("limit must be positive, got %d", limit)
	}
	return min(limit, maxItemLimit), nil
}

func (s *Server) handleListAssetCategories(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.query.ListAssetCategories())
}

func (s *Server) handleGetAssetItems(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit, err := limitArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	itemType := catalog.ItemType(req.GetString("type", ""))
	if itemType != "" && !catalog.IsValidItemType(itemType) {
		return mcp.NewToolResultError(fmt.Sprintf("unknown item type %q", itemType)), nil
	}

	category := req.GetString("category", "")
	// One extra item tells us whether the answer was cut short.
	items, ok := s.query.ListAssetItems(category, itemType, req.GetString("keyword", ""), limit+1)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("category %q not found; call list_asset_categories", category)), nil
	}

	resp := itemsResponse[catalog.AssetItem]{Items: items}
	if len(items) > limit {
		resp.Items = items[:limit]
		resp.Truncated = true
	}
	resp.Count = len(resp.Items)
	return jsonResult(resp)
}

func (s *Server) handleListStyleCategories(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.query.ListStyleCategories())
}

func (s *Server) handleSearchTextStyles(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit, err := limitArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	records := s.query.SearchStyles(req.GetString("category", ""), req.GetString("keyword", ""), limit+1)
	resp := itemsResponse[catalog.StyleRecord]{Items: records}
	if len(records) > limit {
		resp.Items = records[:limit]
		resp.Truncated = true
	}
	resp.Count = len(resp.Items)
	return jsonResult(resp)
}
