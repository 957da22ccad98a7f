package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/symburst/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize symburst configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure symburst for your project and generates a .symburst.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
