package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"expnote/internal/core"
	applog "expnote/internal/log"
	ports "expnote/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// valueInputOption lets the sheet parse "100.00" as a number.
const valueInputOption = "USER_ENTERED"

var header = []any{"Date", "Description", "Income", "Expense", "Balance"}

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// Ensure interface conformance
var _ ports.StatementExporter = (*Client)(nil)

// Options selects the target sheet and the service account used to reach it.
// CredentialsJSON wins over CredentialsFile when both are set.
type Options struct {
	SpreadsheetID   string
	SheetName       string
	CredentialsJSON string
	CredentialsFile string
}

// New creates a Sheets client authenticated with a service account.
func New(ctx context.Context, opts Options) (*Client, error) {
	spreadsheetID := strings.TrimSpace(opts.SpreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	sheetName := strings.TrimSpace(opts.SheetName)
	if sheetName == "" {
		sheetName = "Statement"
	}

	creds, err := loadCredentials(ctx, opts)
	if err != nil {
		return nil, err
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(creds),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return newClient(svc, spreadsheetID, sheetName), nil
}

func newClient(svc *gsheet.Service, spreadsheetID, sheetName string) *Client {
	return &Client{svc: svc, spreadsheetID: spreadsheetID, sheetName: sheetName}
}

func loadCredentials(ctx context.Context, opts Options) ([]byte, error) {
	inline := strings.TrimSpace(opts.CredentialsJSON)
	file := strings.TrimSpace(opts.CredentialsFile)

	switch {
	case inline != "":
		slog.DebugContext(ctx, "Using inline service account credentials",
			applog.FieldComponent, applog.ComponentSheets)
		return []byte(inline), nil
	case file != "":
		slog.DebugContext(ctx, "Reading service account credentials",
			applog.FieldComponent, applog.ComponentSheets,
			"path", file)
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return data, nil
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}
}

// ExportStatement clears columns A:E of the sheet and writes st from A1.
func (c *Client) ExportStatement(ctx context.Context, st core.Statement) (string, error) {
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}

	clearRange := fmt.Sprintf("%s!A:E", c.sheetName)
	_, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, clearRange, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to clear %s: %w", clearRange, err)
	}

	values := statementValues(st)
	rng := fmt.Sprintf("%s!A1:E%d", c.sheetName, len(values))
	resp, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, &gsheet.ValueRange{Values: values}).
		ValueInputOption(valueInputOption).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to update %s: %w", rng, err)
	}

	ref := rng
	if resp != nil && resp.UpdatedRange != "" {
		ref = resp.UpdatedRange
	}
	slog.InfoContext(ctx, "Exported statement",
		applog.FieldComponent, applog.ComponentSheets,
		applog.FieldOperation, applog.OpExport,
		applog.FieldRows, len(st.Rows),
		applog.FieldSheetsRef, ref)
	return ref, nil
}

// statementValues lays a statement out as a header followed by one row per
// statement row. Empty amounts are left blank.
func statementValues(st core.Statement) [][]any {
	out := make([][]any, 0, len(st.Rows)+1)
	out = append(out, header)
	for _, r := range st.Rows {
		out = append(out, []any{
			r.DisplayDate,
			r.Description,
			amountCell(r.Credit),
			amountCell(r.Debit),
			r.Balance.String(),
		})
	}
	return out
}

func amountCell(m core.Money) string {
	if m.IsZero() {
		return ""
	}
	return m.String()
}
