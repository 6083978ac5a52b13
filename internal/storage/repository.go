package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"expnote/internal/core"
	"expnote/internal/ledger"
	applog "expnote/internal/log"

	_ "modernc.org/sqlite"
)

var _ ledger.Store = (*SQLiteRepository)(nil)

// SQLiteRepository is the durable ledger store. It owns the single
// connection to the database file until Close.
type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	// Run migrations before the main handle is opened
	if err := RunMigrations(dbPath); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	repo := &SQLiteRepository{
		db:      db,
		queries: New(db),
	}

	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Append implements ledger.Appender. Both date columns are derived from the
// same calendar date here.
func (r *SQLiteRepository) Append(ctx context.Context, t core.Transaction) (int64, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}

	row, err := r.queries.CreateTxn(ctx, CreateTxnParams{
		Date:        t.Date.Display(),
		DateSort:    t.Date.SortKey(),
		Description: t.Description,
		Cr:          t.Credit.Cents,
		Dr:          t.Debit.Cents,
	})
	if err != nil {
		return 0, fmt.Errorf("create txn: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved to SQLite",
		applog.FieldComponent, applog.ComponentStorage,
		applog.FieldTxnID, row.ID,
		applog.FieldSortDate, row.DateSort,
		applog.FieldCreditCents, row.Cr,
		applog.FieldDebitCents, row.Dr)

	return row.ID, nil
}

// SumBefore implements ledger.BalanceReader
func (r *SQLiteRepository) SumBefore(ctx context.Context, month core.YearMonth) (core.Money, error) {
	total, err := r.queries.SumBefore(ctx, month.FirstDay().SortKey())
	if err != nil {
		return core.Money{}, fmt.Errorf("sum before %s: %w", month, err)
	}
	return core.Money{Cents: total}, nil
}

// ListInMonth implements ledger.Lister
func (r *SQLiteRepository) ListInMonth(ctx context.Context, month core.YearMonth) ([]core.Transaction, error) {
	rows, err := r.queries.ListTxnsBetween(ctx, ListTxnsBetweenParams{
		From:  month.FirstDay().SortKey(),
		Until: month.Next().FirstDay().SortKey(),
	})
	if err != nil {
		return nil, fmt.Errorf("list txns in %s: %w", month, err)
	}
	return r.toTransactions(ctx, rows)
}

// ListAll implements ledger.Lister
func (r *SQLiteRepository) ListAll(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.queries.ListTxns(ctx)
	if err != nil {
		return nil, fmt.Errorf("list txns: %w", err)
	}
	return r.toTransactions(ctx, rows)
}

func (r *SQLiteRepository) toTransactions(ctx context.Context, rows []Txn) ([]core.Transaction, error) {
	out := make([]core.Transaction, len(rows))
	for i, row := range rows {
		date, err := core.ParseSortKey(row.DateSort)
		if err != nil {
			return nil, fmt.Errorf("txn %d: %w", row.ID, err)
		}
		if date.Display() != row.Date {
			slog.WarnContext(ctx, "Display date disagrees with sort date, using sort date",
				applog.FieldComponent, applog.ComponentStorage,
				applog.FieldTxnID, row.ID,
				"date", row.Date,
				applog.FieldSortDate, row.DateSort)
		}
		out[i] = core.Transaction{
			ID:          row.ID,
			Date:        date,
			Description: row.Description,
			Credit:      core.Money{Cents: row.Cr},
			Debit:       core.Money{Cents: row.Dr},
		}
	}
	slog.DebugContext(ctx, "Loaded transactions",
		applog.FieldComponent, applog.ComponentStorage,
		applog.FieldOperation, applog.OpList,
		applog.FieldRows, len(out))
	return out, nil
}
