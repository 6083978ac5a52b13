package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"expnote/internal/core"
)

type saveKind struct {
	use   string
	short string
	kind  core.Kind
	label string
}

var (
	saveIncome  = saveKind{use: "income", short: "Record money received", kind: core.Credit, label: "Income"}
	saveExpense = saveKind{use: "expense", short: "Record money spent", kind: core.Debit, label: "Expense"}
)

func newSaveCommand(a *app, k saveKind) *cobra.Command {
	var amount, date, desc string

	cmd := &cobra.Command{
		Use:   k.use,
		Short: k.short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, s, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			t, err := s.service.Save(ctx, k.kind, amount, desc, date)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s saved: #%d %s on %s\n",
				k.label, t.ID, t.Amount(), t.Date.Display())
			return err
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "amount, e.g. 12.50 (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&date, "date", "", "date as DD-MM-YYYY or DD:MM:YYYY (required)")
	_ = cmd.MarkFlagRequired("date")
	cmd.Flags().StringVar(&desc, "desc", "", "description")

	return cmd
}
