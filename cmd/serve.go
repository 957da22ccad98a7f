package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/symburst/internal/datasets"
	"github.com/ziadkadry99/symburst/internal/server"
	"github.com/ziadkadry99/symburst/internal/viewer"
)

var (
	servePort     int
	serveDataset  string
	serveAllowAll bool
)

var serveCmd = &cobra.Command{
	Use:   "serve [symbols-file]",
	Short: "Start the interactive sunburst viewer",
	Long: `Starts an HTTP server with the sunburst page, a REST API for filter/zoom/hover
events and a WebSocket at /ws/view that pushes every new chart state.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := zap.L()

		port := cfg.Port
		if cmd.Flags().Changed("port") {
			port = servePort
		}

		database, store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// An unreadable input leaves the viewer blank instead of failing.
		doc, err := loadDocument(ctx, cfg, store, args, serveDataset)
		if err != nil {
			logger.Error("loading symbols", zap.Error(err))
		}
		session, err := viewer.NewSession(doc, logger, viewOptions(cfg, nil)...)
		if err != nil {
			return err
		}

		srv := server.New(server.Config{
			Port:     port,
			AllowAll: cfg.AllowAllOrigins || serveAllowAll,
		}, database, logger)

		viewer.RegisterRoutes(srv.Router(), session)
		datasets.RegisterRoutes(srv.Router(), store)

		// Graceful shutdown.
		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		fmt.Fprintf(os.Stderr, "symburst %s viewer on http://localhost:%d\n", Version, port)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", database.Path())
		return srv.Start()
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on (overrides config)")
	serveCmd.Flags().StringVar(&serveDataset, "dataset", "", "ID of an imported dataset to show instead of a file")
	serveCmd.Flags().BoolVar(&serveAllowAll, "allow-all", false, "Allow all CORS origins")
	rootCmd.AddCommand(serveCmd)
}
