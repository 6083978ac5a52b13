package core

import "fmt"

// OpeningLabel marks the synthetic first row of every statement.
const OpeningLabel = "OPEN"

// ViewMode selects which transactions a statement covers.
type ViewMode string

const (
	ViewMonth ViewMode = "month"
	ViewAll   ViewMode = "all"
)

// ParseViewMode accepts "month" or "all".
func ParseViewMode(s string) (ViewMode, error) {
	switch ViewMode(s) {
	case ViewMonth, ViewAll:
		return ViewMode(s), nil
	}
	return "", invalid("mode", fmt.Errorf("unknown view mode %q", s))
}

// Title is the heading shown above a statement.
func (v ViewMode) Title() string {
	if v == ViewMonth {
		return "View Transaction (Current Month)"
	}
	return "Monthly Statement (All)"
}

// StatementRow is one display line of a statement. Opening rows carry no
// description or amounts, only the balance brought forward.
type StatementRow struct {
	DisplayDate string
	Description string
	Credit      Money
	Debit       Money
	Balance     Money
	Opening     bool
}

// Statement is a running-balance view over an ordered set of transactions.
type Statement struct {
	Title   string
	Month   *YearMonth // nil for the all-time view
	Opening Money
	Rows    []StatementRow
}

// BuildStatement folds txns, in the order given, into running-balance rows.
// The first row is always the opening balance, so len(rows) == len(txns)+1.
func BuildStatement(opening Money, txns []Transaction) []StatementRow {
	rows := make([]StatementRow, 0, len(txns)+1)
	balance := opening
	rows = append(rows, StatementRow{
		DisplayDate: OpeningLabel,
		Balance:     balance,
		Opening:     true,
	})
	for _, t := range txns {
		balance = balance.Add(t.Net())
		rows = append(rows, StatementRow{
			DisplayDate: t.Date.Display(),
			Description: t.Description,
			Credit:      t.Credit,
			Debit:       t.Debit,
			Balance:     balance,
		})
	}
	return rows
}

// Closing returns the balance on the last row.
func (s Statement) Closing() Money {
	if len(s.Rows) == 0 {
		return s.Opening
	}
	return s.Rows[len(s.Rows)-1].Balance
}

// Totals sums income and expense over the non-opening rows.
func (s Statement) Totals() (income, expense Money) {
	for _, r := range s.Rows {
		if r.Opening {
			continue
		}
		income = income.Add(r.Credit)
		expense = expense.Add(r.Debit)
	}
	return income, expense
}
