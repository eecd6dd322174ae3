package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gnana997/stockgen/pkg/catalog"
	mcpserver "github.com/gnana997/stockgen/pkg/mcp"
	"github.com/gnana997/stockgen/pkg/mcplog"
)

type catalogPaths struct {
	elements string
	styles   string
}

func (p *catalogPaths) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.elements, "elements", "", "element catalog to load (default from config)")
	cmd.Flags().StringVar(&p.styles, "styles", "", "text style catalog to load (default from config)")
}

// load reads both catalogs, falling back to the configured output paths.
func (p *catalogPaths) load(elementsPath, stylesPath string) (*catalog.QueryService, error) {
	if p.elements != "" {
		elementsPath = p.elements
	}
	if p.styles != "" {
		stylesPath = p.styles
	}
	qs, err := catalog.LoadAndQuery(elementsPath, stylesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalogs (run `stockgen generate` first?): %w", err)
	}
	return qs, nil
}

func newServeCmd(root *rootOptions) *cobra.Command {
	paths := &catalogPaths{}
	var logPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the generated catalogs over MCP (stdio)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := root.load(cmd)
			if err != nil {
				return err
			}
			if logPath != "" {
				cfg.MCP.LogPath = logPath
			}

			qs, err := paths.load(cfg.Output.ElementsPath, cfg.Output.StylesPath)
			if err != nil {
				return err
			}

			callLog, err := mcplog.NewLogger(cfg.MCP.LogPath)
			if err != nil {
				return err
			}
			defer callLog.Close()

			logger.Info("serving catalogs over stdio",
				"asset_categories", len(qs.Elements),
				"style_records", len(qs.Styles),
				"call_log", cfg.MCP.LogPath)
			return mcpserver.NewServer(qs, callLog).ServeStdio()
		},
	}

	paths.bind(cmd)
	cmd.Flags().StringVar(&logPath, "mcp-log", "", "append a JSONL record of every tool call to this file")
	return cmd
}
