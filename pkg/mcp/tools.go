package mcp

import "github.com/mark3labs/mcp-go/mcp"

const (
	defaultItemLimit = 50
	maxItemLimit     = 500
)

func listAssetCategoriesTool() mcp.Tool {
	return mcp.NewTool("list_asset_categories",
		mcp.WithDescription("Returns the element catalog's categories (Shapes, Frames, Buttons, Badges, Titles) with item counts, in catalog order."),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func getAssetItemsTool() mcp.Tool {
	return mcp.NewTool("get_asset_items",
		mcp.WithDescription("Returns element catalog items with their payloads. Filters combine with AND; all are optional."),
		mcp.WithString("category", mcp.Description("Exact category name, e.g. \"Buttons\"")),
		mcp.WithString("type",
			mcp.Description("Item rendering type"),
			mcp.Enum("rectangle", "circle", "image", "text"),
		),
		mcp.WithString("keyword", mcp.Description("Case-insensitive match against label and text content")),
		mcp.WithNumber("limit", mcp.Description("Maximum items to return (default 50, max 500)")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func listStyleCategoriesTool() mcp.Tool {
	return mcp.NewTool("list_style_categories",
		mcp.WithDescription("Returns the text style catalog's categories with record counts, in catalog order."),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func searchTextStylesTool() mcp.Tool {
	return mcp.NewTool("search_text_styles",
		mcp.WithDescription("Returns text style records (label plus CSS style map) filtered by category and label keyword."),
		mcp.WithString("category", mcp.Description("Category name, case-insensitive, e.g. \"Sale\"")),
		mcp.WithString("keyword", mcp.Description("Case-insensitive match against the label")),
		mcp.WithNumber("limit", mcp.Description("Maximum records to return (default 50, max 500)")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

// RegisteredTools returns the tool definitions the server exposes.
func RegisteredTools() []mcp.Tool {
	return []mcp.Tool{
		listAssetCategoriesTool(),
		getAssetItemsTool(),
		listStyleCategoriesTool(),
		searchTextStylesTool(),
	}
}
