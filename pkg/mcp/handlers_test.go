package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/stockgen/pkg/catalog"
	"github.com/gnana997/stockgen/pkg/elements"
	"github.com/gnana997/stockgen/pkg/mcplog"
	"github.com/gnana997/stockgen/pkg/styles"
	"github.com/gnana997/stockgen/pkg/util"
)

// --- helpers ---

func testQueryService(t *testing.T) *catalog.QueryService {
	t.Helper()
	exp, err := elements.NewExpander(elements.DefaultConfig(), util.NopLogger())
	require.NoError(t, err)
	elems, err := exp.BuildAll(11)
	require.NoError(t, err)

	syn, err := styles.NewSynthesizer(styles.DefaultConfig(), util.NopLogger())
	require.NoError(t, err)
	recs, err := syn.BuildAll(11)
	require.NoError(t, err)

	return catalog.NewQueryService(elems, recs)
}

func testServer(t *testing.T) *Server {
	t.Helper()
	return NewServer(testQueryService(t), nil)
}

func callTool(t *testing.T, s *Server, req mcp.CallToolRequest) *mcp.CallToolResult {
	t.Helper()
	var handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

	switch req.Params.Name {
	case "list_asset_categories":
		handler = s.handleListAssetCategories
	case "get_asset_items":
		handler = s.handleGetAssetItems
	case "list_style_categories":
		handler = s.handleListStyleCategories
	case "search_text_styles":
		handler = s.handleSearchTextStyles
	default:
		t.Fatalf("unknown tool: %s", req.Params.Name)
	}

	result, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func makeRequest(toolName string, args map[string]any) mcp.CallToolRequest {
	var arguments any
	if args != nil {
		arguments = args
	}
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      toolName,
			Arguments: arguments,
		},
	}
}

func resultJSON(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])
	return textContent.Text
}

type itemsPage struct {
	Count     int              `json:"count"`
	Truncated bool             `json:"truncated"`
	Items     []map[string]any `json:"items"`
}

func decodePage(t *testing.T, result *mcp.CallToolResult) itemsPage {
	t.Helper()
	var page itemsPage
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &page))
	return page
}

// --- list_asset_categories ---

func TestHandleListAssetCategories(t *testing.T) {
	result := callTool(t, testServer(t), makeRequest("list_asset_categories", nil))
	assert.False(t, result.IsError)

	var cats []catalog.CategorySummary
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &cats))
	assert.Equal(t, []catalog.CategorySummary{
		{Name: elements.CategoryShapes, Count: 50},
		{Name: elements.CategoryFrames, Count: 50},
		{Name: elements.CategoryButtons, Count: 150},
		{Name: elements.CategoryBadges, Count: 150},
		{Name: elements.CategoryTitles, Count: 100},
	}, cats)
}

// --- get_asset_items ---

func TestHandleGetAssetItems_DefaultLimit(t *testing.T) {
	page := decodePage(t, callTool(t, testServer(t), makeRequest("get_asset_items", nil)))
	assert.Equal(t, 50, page.Count)
	assert.True(t, page.Truncated)
	assert.Equal(t, "Rectangle", page.Items[0]["label"])
}

func TestHandleGetAssetItems_ByCategory(t *testing.T) {
	page := decodePage(t, callTool(t, testServer(t), makeRequest("get_asset_items", map[string]any{
		"category": elements.CategoryFrames,
		"limit":    float64(500),
	})))
	assert.Equal(t, 50, page.Count)
	assert.False(t, page.Truncated)
	for _, item := range page.Items {
		assert.Contains(t, []any{"rectangle", "circle"}, item["type"])
	}
}

func TestHandleGetAssetItems_ByTypeAndKeyword(t *testing.T) {
	page := decodePage(t, callTool(t, testServer(t), makeRequest("get_asset_items", map[string]any{
		"type":    "image",
		"keyword": "star",
	})))
	require.NotZero(t, page.Count)
	for _, item := range page.Items {
		assert.Equal(t, "image", item["type"])
		assert.Contains(t, item["label"], "Star")
	}
}

func TestHandleGetAssetItems_PayloadKeepsOrder(t *testing.T) {
	result := callTool(t, testServer(t), makeRequest("get_asset_items", map[string]any{
		"category": elements.CategoryShapes,
		"keyword":  "heart",
		"limit":    float64(1),
	}))
	text := resultJSON(t, result)
	assert.Contains(t, text, `"payload":{"src":"https://api.iconify.design/mdi:heart.svg?color=%23666"}`)
}

func TestHandleGetAssetItems_Errors(t *testing.T) {
	s := testServer(t)
	tests := []struct {
		name string
		args map[string]any
	}{
		{"unknown category", map[string]any{"category": "Stickers"}},
		{"unknown type", map[string]any{"type": "video"}},
		{"zero limit", map[string]any{"limit": float64(0)}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := callTool(t, s, makeRequest("get_asset_items", tc.args))
			assert.True(t, result.IsError)
		})
	}
}

// --- list_style_categories ---

func TestHandleListStyleCategories(t *testing.T) {
	result := callTool(t, testServer(t), makeRequest("list_style_categories", nil))

	var cats []catalog.CategorySummary
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &cats))
	require.Len(t, cats, 10)
	assert.Equal(t, "Headlines", cats[0].Name)
	assert.Equal(t, "Outline", cats[9].Name)
	for _, c := range cats {
		assert.Equal(t, 50, c.Count)
	}
}

// --- search_text_styles ---

func TestHandleSearchTextStyles(t *testing.T) {
	page := decodePage(t, callTool(t, testServer(t), makeRequest("search_text_styles", map[string]any{
		"category": "sale",
		"limit":    float64(100),
	})))
	assert.Equal(t, 50, page.Count)
	assert.False(t, page.Truncated)
	for _, rec := range page.Items {
		assert.Equal(t, "Sale", rec["category"])
		assert.Equal(t, rec["label"], rec["preview"])
	}
}

func TestHandleSearchTextStyles_Clamped(t *testing.T) {
	page := decodePage(t, callTool(t, testServer(t), makeRequest("search_text_styles", map[string]any{
		"limit": float64(10000),
	})))
	assert.Equal(t, 500, page.Count)
	assert.False(t, page.Truncated)
}

func TestHandleSearchTextStyles_NoMatch(t *testing.T) {
	page := decodePage(t, callTool(t, testServer(t), makeRequest("search_text_styles", map[string]any{
		"keyword": "no such label anywhere",
	})))
	assert.Equal(t, 0, page.Count)
	assert.NotNil(t, page.Items)
}

// --- server wiring ---

func TestRegisteredTools(t *testing.T) {
	var names []string
	for _, tool := range RegisteredTools() {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description)
	}
	assert.Equal(t, []string{"list_asset_categories", "get_asset_items", "list_style_categories", "search_text_styles"}, names)
}

func TestInProcessClient_LogsCalls(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "mcp.jsonl")
	logger, err := mcplog.NewLogger(logPath)
	require.NoError(t, err)
	defer logger.Close()

	s := NewServer(testQueryService(t), logger)
	c, err := client.NewInProcessClient(s.MCPServer())
	require.NoError(t, err)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, c.Start(ctx))

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: "stockgen-test", Version: "1.0.0"}
	info, err := c.Initialize(ctx, initReq)
	require.NoError(t, err)
	assert.Equal(t, "stockgen", info.ServerInfo.Name)

	tools, err := c.ListTools(ctx, mcp.ListToolsRequest{})
	require.NoError(t, err)
	assert.Len(t, tools.Tools, 4)

	req := mcp.CallToolRequest{}
	req.Params.Name = "get_asset_items"
	req.Params.Arguments = map[string]any{"category": elements.CategoryBadges, "limit": 3}
	result, err := c.CallTool(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 3, decodePage(t, result).Count)

	require.NoError(t, logger.Close())
	f, err := os.Open(logPath)
	require.NoError(t, err)
	defer f.Close()

	var entries []mcplog.LogEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e mcplog.LogEntry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &e))
		entries = append(entries, e)
	}
	require.Len(t, entries, 1)
	assert.Equal(t, "get_asset_items", entries[0].Tool)
	assert.Equal(t, elements.CategoryBadges, entries[0].Params["category"])
	assert.False(t, entries[0].IsError)
}
