package commands

import (
	"context"

	"github.com/spf13/cobra"

	"expnote/internal/core"
)

func newViewCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Show a running-balance statement",
	}

	var month string
	monthCmd := &cobra.Command{
		Use:   "month",
		Short: "Statement for the current month, or --month YYYY-MM",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runView(cmd, core.ViewMonth, month)
		},
	}
	monthCmd.Flags().StringVar(&month, "month", "", "month to show as YYYY-MM (default current month)")

	allCmd := &cobra.Command{
		Use:   "all",
		Short: "Statement over every transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runView(cmd, core.ViewAll, "")
		},
	}

	cmd.AddCommand(monthCmd, allCmd)
	return cmd
}

func (a *app) runView(cmd *cobra.Command, mode core.ViewMode, month string) error {
	ctx, s, err := a.open(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	st, err := a.statement(ctx, s, mode, month)
	if err != nil {
		return err
	}
	return renderStatement(cmd.OutOrStdout(), st)
}

// statement resolves mode and the optional explicit month into a statement.
func (a *app) statement(ctx context.Context, s *session, mode core.ViewMode, month string) (core.Statement, error) {
	if month != "" {
		ym, err := core.ParseYearMonth(month)
		if err != nil {
			return core.Statement{}, err
		}
		return s.service.MonthStatement(ctx, ym)
	}
	return s.service.Statement(ctx, mode, a.now())
}
