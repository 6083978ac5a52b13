package google

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"expnote/internal/core"
)

func sampleStatement() core.Statement {
	opening := core.Money{}
	rows := []core.StatementRow{
		{DisplayDate: core.OpeningLabel, Balance: opening, Opening: true},
		{DisplayDate: "01:03:2024", Description: "Salary", Credit: core.Money{Cents: 10000}, Balance: core.Money{Cents: 10000}},
		{DisplayDate: "05:03:2024", Description: "Groceries", Debit: core.Money{Cents: 3000}, Balance: core.Money{Cents: 7000}},
	}
	return core.Statement{Title: core.ViewAll.Title(), Opening: opening, Rows: rows}
}

func TestStatementValues(t *testing.T) {
	got := statementValues(sampleStatement())

	want := [][]any{
		{"Date", "Description", "Income", "Expense", "Balance"},
		{"OPEN", "", "", "", "0.00"},
		{"01:03:2024", "Salary", "100.00", "", "100.00"},
		{"05:03:2024", "Groceries", "", "30.00", "70.00"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d rows, want %d", len(got), len(want))
	}
	for i := range want {
		for j := range want[i] {
			if got[i][j] != want[i][j] {
				t.Errorf("row %d col %d: got %v, want %v", i, j, got[i][j], want[i][j])
			}
		}
	}
}

func TestNew_MissingSpreadsheetID(t *testing.T) {
	_, err := New(context.Background(), Options{CredentialsJSON: "{}"})
	if err == nil {
		t.Fatal("expected error for missing spreadsheet id")
	}
	if err.Error() != "missing GOOGLE_SPREADSHEET_ID" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNew_MissingCredentials(t *testing.T) {
	_, err := New(context.Background(), Options{SpreadsheetID: "sheet-id"})
	if err == nil {
		t.Fatal("expected error for missing credentials")
	}
	if !strings.Contains(err.Error(), "missing service account credentials") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadCredentials(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sa.json")
	if err := os.WriteFile(path, []byte(`{"from":"file"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	got, err := loadCredentials(ctx, Options{CredentialsJSON: `{"from":"env"}`, CredentialsFile: path})
	if err != nil || string(got) != `{"from":"env"}` {
		t.Errorf("inline json should win, got %q, %v", got, err)
	}

	got, err = loadCredentials(ctx, Options{CredentialsFile: path})
	if err != nil || string(got) != `{"from":"file"}` {
		t.Errorf("file credentials: got %q, %v", got, err)
	}

	if _, err := loadCredentials(ctx, Options{CredentialsFile: filepath.Join(dir, "missing.json")}); err == nil {
		t.Error("expected error for missing credentials file")
	}
}

func TestExportStatement(t *testing.T) {
	var calls []string
	var written gsheet.ValueRange

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method)
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, ":clear"):
			_, _ = w.Write([]byte(`{}`))
		case r.Method == http.MethodPut:
			if r.URL.Query().Get("valueInputOption") != valueInputOption {
				t.Errorf("valueInputOption = %q", r.URL.Query().Get("valueInputOption"))
			}
			if err := json.NewDecoder(r.Body).Decode(&written); err != nil {
				t.Errorf("decode body: %v", err)
			}
			_, _ = w.Write([]byte(`{"updatedRange":"Statement!A1:E4"}`))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	svc, err := gsheet.NewService(ctx,
		goption.WithEndpoint(srv.URL+"/"),
		goption.WithoutAuthentication())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	client := newClient(svc, "sheet-id", "Statement")
	ref, err := client.ExportStatement(ctx, sampleStatement())
	if err != nil {
		t.Fatalf("ExportStatement() error = %v", err)
	}
	if ref != "Statement!A1:E4" {
		t.Errorf("ref = %q", ref)
	}
	if len(calls) != 2 || calls[0] != http.MethodPost || calls[1] != http.MethodPut {
		t.Errorf("calls = %v, want clear then update", calls)
	}
	if len(written.Values) != 4 {
		t.Fatalf("wrote %d rows, want 4", len(written.Values))
	}
	if written.Values[3][3] != "30.00" {
		t.Errorf("groceries expense cell = %v", written.Values[3][3])
	}
}

func TestExportStatement_Uninitialized(t *testing.T) {
	c := &Client{}
	if _, err := c.ExportStatement(context.Background(), sampleStatement()); err == nil {
		t.Error("expected error for nil service")
	}
}
