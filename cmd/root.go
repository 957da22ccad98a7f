package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/symburst/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "symburst",
	Short: "Sunburst explorer for firmware memory usage",
	Long: `symburst reads a symbol list extracted from a linked firmware image and
shows where the bytes go as an interactive sunburst chart: directories,
object files and symbols as concentric rings, sized by their share of
code, data or bss. The chart can be explored in the browser, driven by AI
agents over MCP, or summarised as a markdown/HTML report.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
