package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"expnote/internal/core"
)

// cellText keeps free text on one table cell.
var cellText = strings.NewReplacer("\t", " ", "\r\n", " ", "\n", " ", "\r", " ")

// renderStatement prints the title and an aligned five-column table.
func renderStatement(w io.Writer, st core.Statement) error {
	if _, err := fmt.Fprintln(w, st.Title); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Date\tDescription\tIncome\tExpense\tBalance")
	for _, r := range st.Rows {
		if r.Opening {
			fmt.Fprintf(tw, "%s\t-\t-\t-\t%s\n", r.DisplayDate, r.Balance)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			r.DisplayDate, cellText.Replace(r.Description), amountCell(r.Credit), amountCell(r.Debit), r.Balance)
	}
	return tw.Flush()
}

// amountCell shows a zero side as "-".
func amountCell(m core.Money) string {
	if m.IsZero() {
		return "-"
	}
	return m.String()
}
