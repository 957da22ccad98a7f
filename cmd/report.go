package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/symburst/internal/report"
	"github.com/ziadkadry99/symburst/internal/tree"
	"github.com/ziadkadry99/symburst/internal/view"
)

var (
	reportDataset string
	reportTypes   []string
	reportDepth   int
	reportZoom    string
	reportHTML    string
)

var reportCmd = &cobra.Command{
	Use:   "report [symbols-file]",
	Short: "Print a memory breakdown as markdown or write it as HTML",
	Long: `Builds the chart for the selected types and prints one table row per node,
down to --depth rings below the chart root. --zoom selects a subtree by its
slash-separated path below the root, e.g. --zoom drivers/uart.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx := context.Background()

		database, store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		doc, err := loadDocument(ctx, cfg, store, args, reportDataset)
		if err != nil {
			return err
		}

		ctrl, err := view.New(doc, append(viewOptions(cfg, reportTypes), view.WithLogger(zap.L()))...)
		if err != nil {
			return err
		}

		if reportZoom != "" {
			if err := zoomPath(ctrl, reportZoom); err != nil {
				return err
			}
		}

		md := report.Markdown(ctrl.State(), reportDepth)
		if reportHTML == "" {
			fmt.Print(md)
			return nil
		}

		page, err := report.HTML(ctrl.State().App+" memory breakdown", md)
		if err != nil {
			return err
		}
		if err := os.WriteFile(reportHTML, page, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", reportHTML, err)
		}
		fmt.Fprintf(os.Stderr, "Report written to %s\n", reportHTML)
		return nil
	},
}

// zoomPath clicks through the named path one ring at a time, the way a user
// would in the viewer.
func zoomPath(ctrl *view.Controller, path string) error {
	t := ctrl.State().Tree
	cur := t.Root()
	for _, name := range strings.Split(strings.Trim(path, "/"), "/") {
		next, ok := t.Child(cur, name)
		if !ok {
			return fmt.Errorf("zoom %s: %q not found below %q: %w", path, name, t.Name(cur), tree.ErrNodeNotFound)
		}
		if _, err := ctrl.OnNodeClick(next); err != nil {
			return fmt.Errorf("zoom %s: %w", path, err)
		}
		cur = next
	}
	return nil
}

func init() {
	reportCmd.Flags().StringVar(&reportDataset, "dataset", "", "ID of an imported dataset to report on")
	reportCmd.Flags().StringSliceVar(&reportTypes, "types", nil, "Symbol types to include (t, d, b); defaults to config")
	reportCmd.Flags().IntVar(&reportDepth, "depth", report.DefaultDepth, "Rings below the chart root to list")
	reportCmd.Flags().StringVar(&reportZoom, "zoom", "", "Slash-separated path of the subtree to report on")
	reportCmd.Flags().StringVar(&reportHTML, "html", "", "Write an HTML page to this file instead of printing markdown")
	rootCmd.AddCommand(reportCmd)
}
