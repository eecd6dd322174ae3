package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/gnana997/stockgen/pkg/catalog"
)

const maxCellWidth = 60

func newInspectCmd(root *rootOptions) *cobra.Command {
	paths := &catalogPaths{}
	var (
		category string
		sample   int
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarize generated catalogs",
		Long:  "Prints per-category counts for both catalogs. With --category, prints a\nsample of that category's items or style records.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := root.load(cmd)
			if err != nil {
				return err
			}
			qs, err := paths.load(cfg.Output.ElementsPath, cfg.Output.StylesPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if category == "" {
				renderSummary(out, qs)
				return nil
			}
			if items, ok := qs.ListAssetItems(category, "", "", sample); ok {
				renderItems(out, category, items)
				return nil
			}
			if records := qs.SearchStyles(category, "", sample); len(records) > 0 {
				renderStyles(out, records)
				return nil
			}
			return fmt.Errorf("no asset or style category named %q", category)
		},
	}

	paths.bind(cmd)
	cmd.Flags().StringVar(&category, "category", "", "show items of this category")
	cmd.Flags().IntVar(&sample, "sample", 10, "number of items to show with --category")
	return cmd
}

func newTable(out io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.SetTitle(title)
	return t
}

func renderSummary(out io.Writer, qs *catalog.QueryService) {
	elements := newTable(out, "Element catalog")
	elements.AppendHeader(table.Row{"Category", "Items"})
	for _, c := range qs.ListAssetCategories() {
		elements.AppendRow(table.Row{c.Name, c.Count})
	}
	elements.AppendFooter(table.Row{"Total", qs.Elements.ItemCount()})
	elements.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	elements.Render()

	styles := newTable(out, "Text style catalog")
	styles.AppendHeader(table.Row{"Category", "Styles"})
	for _, c := range qs.ListStyleCategories() {
		styles.AppendRow(table.Row{c.Name, c.Count})
	}
	styles.AppendFooter(table.Row{"Total", qs.Styles.ItemCount()})
	styles.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	styles.Render()
}

func renderItems(out io.Writer, category string, items []catalog.AssetItem) {
	t := newTable(out, category)
	t.AppendHeader(table.Row{"#", "Label", "Type", "Icon", "Payload"})
	for i, item := range items {
		t.AppendRow(table.Row{i + 1, item.Label, item.Type, item.Icon, summarizeAttrs(item.Payload)})
	}
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 5, WidthMax: maxCellWidth}})
	t.Render()
}

func renderStyles(out io.Writer, records []catalog.StyleRecord) {
	t := newTable(out, records[0].Category)
	t.AppendHeader(table.Row{"#", "Label", "Style"})
	for i, rec := range records {
		t.AppendRow(table.Row{i + 1, rec.Label, summarizeAttrs(rec.Style)})
	}
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 3, WidthMax: maxCellWidth}})
	t.Render()
}

// summarizeAttrs renders attrs as "key=value" pairs in insertion order.
func summarizeAttrs(attrs *catalog.Attrs) string {
	if attrs == nil {
		return ""
	}
	parts := make([]string, 0, attrs.Len())
	for pair := attrs.Oldest(); pair != nil; pair = pair.Next() {
		parts = append(parts, fmt.Sprintf("%s=%v", pair.Key, pair.Value))
	}
	return strings.Join(parts, " ")
}
