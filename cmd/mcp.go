package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	mcpserver "github.com/ziadkadry99/symburst/internal/mcp"
	"github.com/ziadkadry99/symburst/internal/viewer"
)

var mcpDataset string

var mcpCmd = &cobra.Command{
	Use:   "mcp [symbols-file]",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing the sunburst chart as tools for AI agents.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := zap.L()

		database, store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		doc, err := loadDocument(context.Background(), cfg, store, args, mcpDataset)
		if err != nil {
			// Continue blank: open_dataset can still load data.
			fmt.Fprintf(os.Stderr, "Warning: could not load symbols: %v\n", err)
		}
		session, err := viewer.NewSession(doc, logger, viewOptions(cfg, nil)...)
		if err != nil {
			return err
		}

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "symburst MCP server started on stdio (session=%s)\n", session.ID())

		srv := mcpserver.NewServer(session, store)
		return srv.Serve()
	},
}

func init() {
	mcpCmd.Flags().StringVar(&mcpDataset, "dataset", "", "ID of an imported dataset to load")
	rootCmd.AddCommand(mcpCmd)
}
