package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "Manage imported symbol datasets",
}

var datasetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List imported datasets",
	RunE:  runDatasetsList,
}

var datasetsRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Delete an imported dataset",
	Args:  cobra.ExactArgs(1),
	RunE:  runDatasetsRemove,
}

func init() {
	datasetsCmd.AddCommand(datasetsListCmd)
	datasetsCmd.AddCommand(datasetsRemoveCmd)
	rootCmd.AddCommand(datasetsCmd)
}

func runDatasetsList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	database, store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	list, err := store.List(context.Background())
	if err != nil {
		return fmt.Errorf("listing datasets: %w", err)
	}

	if len(list) == 0 {
		fmt.Println("No datasets imported. Use `symburst import <file>` to add one.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tAPP\tRECORDS\tMALFORMED\tIMPORTED\tSOURCE")
	for _, ds := range list {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\n",
			ds.ID, ds.App, ds.RecordCount, ds.MalformedCount, ds.CreatedAt.Format("2006-01-02 15:04:05"), ds.Source)
	}
	w.Flush()

	return nil
}

func runDatasetsRemove(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	database, store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := store.Delete(context.Background(), args[0]); err != nil {
		return err
	}

	fmt.Printf("Dataset %s removed\n", args[0])
	return nil
}
