package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ziadkadry99/symburst/internal/config"
	"github.com/ziadkadry99/symburst/internal/datasets"
	"github.com/ziadkadry99/symburst/internal/db"
	"github.com/ziadkadry99/symburst/internal/layout"
	"github.com/ziadkadry99/symburst/internal/symbols"
	"github.com/ziadkadry99/symburst/internal/view"
)

// loadConfig loads and validates the config and installs the global logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `symburst init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	zap.ReplaceGlobals(logger)
	return cfg, nil
}

// newLogger builds a JSON logger on stderr, or a development logger with
// --verbose. Stdout stays free for reports and MCP messages.
func newLogger(level config.LogLevel) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	zcfg := zap.NewProductionConfig()
	if lvl, err := zapcore.ParseLevel(string(level)); err == nil {
		zcfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	return zcfg.Build()
}

// openStore opens the dataset database under the configured data directory.
func openStore(cfg *config.Config) (*db.DB, *datasets.Store, error) {
	database, err := db.Open(cfg.DatabasePath())
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	return database, datasets.NewStore(database), nil
}

// loadDocument reads the symbols to show: a stored dataset when datasetID
// is set, otherwise the file given as argument or configured as input.
// Configured exclude patterns are applied to the records.
func loadDocument(ctx context.Context, cfg *config.Config, store *datasets.Store, args []string, datasetID string) (*symbols.Document, error) {
	var (
		doc *symbols.Document
		err error
	)
	switch {
	case datasetID != "":
		if store == nil {
			return nil, fmt.Errorf("no dataset store available")
		}
		doc, err = store.Document(ctx, datasetID)
	case len(args) > 0:
		doc, err = symbols.Load(args[0])
	default:
		doc, err = symbols.Load(cfg.Input)
	}
	if err != nil {
		return nil, err
	}

	if len(cfg.Exclude) > 0 {
		before := len(doc.Symbols)
		doc.Symbols = symbols.Exclude(doc.Symbols, cfg.Exclude)
		zap.L().Debug("excluded records", zap.Int("excluded", before-len(doc.Symbols)), zap.Strings("patterns", cfg.Exclude))
	}
	return doc, nil
}

// viewOptions maps the config onto controller options.
func viewOptions(cfg *config.Config, types []string) []view.Option {
	if len(types) == 0 {
		types = cfg.Types
	}
	opts := []view.Option{
		view.WithTypes(symbols.ParseTypeSet(types...)),
		view.WithLayoutOptions(layout.WithRadius(cfg.Radius)),
	}
	if cfg.App != "" {
		opts = append(opts, view.WithRootLabel(cfg.App))
	}
	return opts
}
