package commands

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expnote/internal/core"
)

// setupLedger points the commands at a fresh SQLite file.
func setupLedger(t *testing.T) {
	t.Helper()
	t.Setenv("DATA_BACKEND", "sqlite")
	t.Setenv("SQLITE_DB_PATH", filepath.Join(t.TempDir(), "ledger.db"))
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("AMQP_URL", "")
	t.Setenv("GOOGLE_SPREADSHEET_ID", "")
}

func run(t *testing.T, now time.Time, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand(&app{now: func() time.Time { return now }})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func lines(out string) []string {
	var res []string
	for _, l := range strings.Split(strings.TrimSpace(out), "\n") {
		res = append(res, strings.Join(strings.Fields(l), " "))
	}
	return res
}

func TestSaveAndViewAll(t *testing.T) {
	setupLedger(t)
	now := time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC)

	out, err := run(t, now, "income", "--amount", "100", "--desc", "Salary", "--date", "01-03-2024")
	require.NoError(t, err)
	assert.Equal(t, "Income saved: #1 100.00 on 01:03:2024\n", out)

	out, err = run(t, now, "expense", "--amount", "30.00", "--desc", "Groceries", "--date", "05:03:2024")
	require.NoError(t, err)
	assert.Equal(t, "Expense saved: #2 30.00 on 05:03:2024\n", out)

	out, err = run(t, now, "view", "all")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Monthly Statement (All)",
		"Date Description Income Expense Balance",
		"OPEN - - - 0.00",
		"01:03:2024 Salary 100.00 - 100.00",
		"05:03:2024 Groceries - 30.00 70.00",
	}, lines(out))
}

func TestViewCurrentMonthCarriesOpeningBalance(t *testing.T) {
	setupLedger(t)
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	for _, args := range [][]string{
		{"income", "--amount", "500", "--date", "20-05-2024"},
		{"expense", "--amount", "120.50", "--date", "31-05-2024"},
		{"expense", "--amount", "10", "--desc", "Lunch", "--date", "03-06-2024"},
		{"income", "--amount", "1000", "--desc", "Salary", "--date", "01-06-2024"},
	} {
		_, err := run(t, now, args...)
		require.NoError(t, err)
	}

	out, err := run(t, now, "view", "month")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"View Transaction (Current Month)",
		"Date Description Income Expense Balance",
		"OPEN - - - 379.50",
		"01:06:2024 Salary 1000.00 - 1379.50",
		"03:06:2024 Lunch - 10.00 1369.50",
	}, lines(out))

	out, err = run(t, now, "view", "month", "--month", "2024-05")
	require.NoError(t, err)
	assert.Equal(t, "View Transaction (2024-05)", lines(out)[0])
	assert.Equal(t, "OPEN - - - 0.00", lines(out)[2])
	assert.Len(t, lines(out), 5)
}

func TestSaveRejectsInvalidInput(t *testing.T) {
	setupLedger(t)
	now := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	_, err := run(t, now, "income", "--amount", "abc", "--date", "01-01-2024")
	require.Error(t, err)
	var verr *core.ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, "amount", verr.Field)

	_, err = run(t, now, "expense", "--amount", "5", "--date", "2024-01-01")
	assert.ErrorIs(t, err, core.ErrInvalidDate)

	_, err = run(t, now, "income", "--amount", "5")
	assert.Error(t, err, "date flag is required")

	out, err := run(t, now, "view", "all")
	require.NoError(t, err)
	assert.Len(t, lines(out), 3, "only title, header and OPEN row expected")
}

func TestViewRejectsBadMonth(t *testing.T) {
	setupLedger(t)
	_, err := run(t, time.Now(), "view", "month", "--month", "June")
	assert.ErrorIs(t, err, core.ErrInvalidMonth)
}

func TestExportRequiresSheetsConfig(t *testing.T) {
	setupLedger(t)
	_, err := run(t, time.Now(), "export", "all")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_SPREADSHEET_ID")

	_, err = run(t, time.Now(), "export", "week")
	assert.Error(t, err)
}

func TestInvalidConfig(t *testing.T) {
	setupLedger(t)
	t.Setenv("DATA_BACKEND", "postgres")
	_, err := run(t, time.Now(), "view", "all")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid data backend")
}

func TestVersion(t *testing.T) {
	out, err := run(t, time.Now(), "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "dev (commit: none")
}

func TestRenderStatement(t *testing.T) {
	st := core.Statement{
		Title: "Monthly Statement (All)",
		Rows: core.BuildStatement(core.Money{Cents: -250}, []core.Transaction{
			{ID: 1, Date: core.NewDate(2024, 2, 1), Description: "Rent", Debit: core.Money{Cents: 50000}},
		}),
	}
	var buf bytes.Buffer
	require.NoError(t, renderStatement(&buf, st))
	assert.Equal(t, []string{
		"Monthly Statement (All)",
		"Date Description Income Expense Balance",
		"OPEN - - - -2.50",
		"01:02:2024 Rent - 500.00 -502.50",
	}, lines(buf.String()))
}

func TestRenderStatementKeepsDescriptionInOneCell(t *testing.T) {
	st := core.Statement{
		Title: "Monthly Statement (All)",
		Rows: core.BuildStatement(core.Money{}, []core.Transaction{
			{ID: 1, Date: core.NewDate(2024, 2, 1), Description: "Rent\tFeb\nflat", Debit: core.Money{Cents: 50000}},
		}),
	}
	var buf bytes.Buffer
	require.NoError(t, renderStatement(&buf, st))

	out := lines(buf.String())
	require.Len(t, out, 4)
	assert.Equal(t, "01:02:2024 Rent Feb flat - 500.00 -500.00", out[3])
	assert.NotContains(t, buf.String(), "\t")
}
