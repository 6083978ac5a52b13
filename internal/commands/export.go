package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"expnote/internal/cli"
	"expnote/internal/core"
	applog "expnote/internal/log"
)

func newExportCommand(a *app) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:       "export [month|all]",
		Short:     "Write a statement to Google Sheets",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(core.ViewMonth), string(core.ViewAll)},
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := core.ViewMonth
			if len(args) > 0 {
				parsed, err := core.ParseViewMode(args[0])
				if err != nil {
					return err
				}
				mode = parsed
			}

			ctx, s, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			exporter, err := cli.NewExporter(ctx, s.cfg)
			if err != nil {
				s.logger.ErrorContext(ctx, "Export not configured",
					applog.FieldErrorType, applog.ErrorTypeConfiguration,
					applog.FieldError, err)
				return err
			}

			if mode == core.ViewAll {
				month = ""
			}
			st, err := a.statement(ctx, s, mode, month)
			if err != nil {
				return err
			}
			ref, err := exporter.ExportStatement(ctx, st)
			if err != nil {
				return fmt.Errorf("export statement: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d rows to %s\n", len(st.Rows), ref)
			return err
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "month to export as YYYY-MM (default current month)")

	return cmd
}
