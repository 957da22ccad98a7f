package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/symburst/internal/progress"
	"github.com/ziadkadry99/symburst/internal/symbols"
)

var importCmd = &cobra.Command{
	Use:   "import <symbols-file>",
	Short: "Store a symbol file as a dataset",
	Long:  `Parses a JSON or YAML symbol file and stores it in the local database so it can be viewed later with --dataset.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		doc, err := symbols.Load(args[0])
		if err != nil {
			return err
		}

		database, store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		ds, err := store.Save(context.Background(), doc, args[0], progress.NewReporter("Importing symbols"))
		if err != nil {
			return fmt.Errorf("saving dataset: %w", err)
		}

		fmt.Printf("Imported %d records from %s as dataset %s\n", ds.RecordCount, args[0], ds.ID)
		if ds.MalformedCount > 0 {
			fmt.Printf("  %d malformed record(s) will be reported in the viewer\n", ds.MalformedCount)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
