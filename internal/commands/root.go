package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"expnote/internal/buildinfo"
	"expnote/internal/cli"
	"expnote/internal/config"
	applog "expnote/internal/log"
	"expnote/internal/services"
)

// app carries what every subcommand needs once the environment is read.
type app struct {
	now func() time.Time
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{now: time.Now})
}

func newRootCommand(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "expnote",
		Short:   "Personal income and expense ledger",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newSaveCommand(a, saveIncome),
		newSaveCommand(a, saveExpense),
		newViewCommand(a),
		newExportCommand(a),
	)

	return rootCmd
}

// session is one opened ledger plus the settings it was opened with.
type session struct {
	cfg     *config.Config
	logger  *applog.Logger
	service *services.LedgerService
	close   func()
}

// open reads .env and the environment, then opens the ledger. The returned
// context carries the session logger.
func (a *app) open(ctx context.Context) (context.Context, *session, error) {
	cli.LoadEnvFile()
	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		return ctx, nil, err
	}
	logger, err := cli.SetupLogger(cfg.LogLevel)
	if err != nil {
		return ctx, nil, err
	}
	res, err := cli.OpenBackend(ctx, logger, cfg)
	if err != nil {
		return ctx, nil, err
	}
	ctx = applog.WithContext(ctx, logger)
	return ctx, &session{
		cfg:     cfg,
		logger:  logger,
		service: res.Service,
		close: func() {
			if err := res.Cleanup(); err != nil {
				logger.WarnContext(ctx, "Failed to close ledger", applog.FieldError, err)
			}
		},
	}, nil
}
