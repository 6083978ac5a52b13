// Package cli provides the start-up steps shared by every expnote command.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"expnote/internal/backend"
	"expnote/internal/config"
	applog "expnote/internal/log"
	"expnote/internal/sheets"
	"expnote/internal/sheets/google"
)

// SetupLogger builds the stderr logger for the given level and installs it
// as the slog default.
func SetupLogger(level string) (*applog.Logger, error) {
	lvl, err := applog.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := applog.DefaultConfig()
	cfg.Level = lvl
	cfg.Component = applog.ComponentCLI
	logger := applog.New(cfg)
	applog.SetDefault(logger)
	return logger, nil
}

// LoadEnvFile loads the .env file for local development.
// A missing file is not an error.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig reads the environment and validates the result.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// OpenBackend opens the configured ledger store and its optional publisher.
// Callers must run the returned Cleanup when done.
func OpenBackend(ctx context.Context, logger *applog.Logger, cfg *config.Config) (*backend.BackendResult, error) {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	res, err := backend.NewFactory(logger.WithComponent(applog.ComponentBackend).Logger).CreateBackend(ctx, bcfg)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to open ledger",
			applog.NewFields().
				WithError(err).
				WithErrorType(applog.ErrorTypeDatabase).
				ToSlice()...)
		return nil, err
	}
	return res, nil
}

// NewExporter checks the export settings and connects to Google Sheets.
func NewExporter(ctx context.Context, cfg *config.Config) (sheets.StatementExporter, error) {
	if err := cfg.ValidateExport(); err != nil {
		return nil, err
	}
	client, err := google.New(ctx, google.Options{
		SpreadsheetID:   cfg.GoogleSpreadsheetID,
		SheetName:       cfg.GoogleSheetName,
		CredentialsJSON: cfg.GoogleServiceAccountJSON,
		CredentialsFile: cfg.GoogleServiceAccountFile,
	})
	if err != nil {
		return nil, fmt.Errorf("sheets client: %w", err)
	}
	return client, nil
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
