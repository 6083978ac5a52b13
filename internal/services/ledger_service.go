package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"expnote/internal/core"
	"expnote/internal/ledger"
	applog "expnote/internal/log"
)

// EventPublisher announces saved transactions to downstream consumers.
type EventPublisher interface {
	PublishTransactionAppended(ctx context.Context, t core.Transaction) error
}

// LedgerService is the entry point front ends use to record transactions
// and read statements. It holds the store handle until Close.
type LedgerService struct {
	store     ledger.Store
	publisher EventPublisher
}

// NewLedgerService wires a store and an optional publisher (nil disables events).
func NewLedgerService(store ledger.Store, publisher EventPublisher) *LedgerService {
	return &LedgerService{
		store:     store,
		publisher: publisher,
	}
}

// Save parses raw user input, appends one transaction and returns it with
// its id. Invalid input yields a *core.ValidationError and writes nothing.
func (s *LedgerService) Save(ctx context.Context, kind core.Kind, rawAmount, description, rawDate string) (core.Transaction, error) {
	logger := applog.FromContext(ctx).WithComponent(applog.ComponentLedger)

	t, err := parseInput(kind, rawAmount, description, rawDate)
	if err != nil {
		logger.WarnContext(ctx, "Transaction rejected",
			applog.NewFields().
				WithOperation(applog.OpValidate).
				WithErrorType(applog.ErrorTypeValidation).
				WithError(err).
				ToSlice()...)
		return core.Transaction{}, err
	}

	id, err := s.store.Append(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}
	t.ID = id
	logger.InfoContext(ctx, "Transaction recorded",
		applog.NewFields().
			WithOperation(applog.OpAppend).
			WithTransaction(id, string(t.Kind()), t.Date.SortKey(), t.Amount().Cents).
			ToSlice()...)

	// Publish is best effort: the row is already durable
	if err := s.publish(ctx, t); err != nil {
		logger.ErrorContext(ctx, "Failed to publish ledger event",
			applog.FieldOperation, applog.OpPublish,
			applog.FieldTxnID, id,
			applog.FieldError, err)
	}

	return t, nil
}

func parseInput(kind core.Kind, rawAmount, description, rawDate string) (core.Transaction, error) {
	if !kind.Valid() {
		return core.Transaction{}, &core.ValidationError{Field: "type", Err: core.ErrInvalidKind}
	}
	amount, err := core.ParseAmount(rawAmount)
	if err != nil {
		return core.Transaction{}, err
	}
	date, err := core.ParseDate(rawDate)
	if err != nil {
		return core.Transaction{}, err
	}
	return core.NewTransaction(kind, amount, description, date)
}

// Statement builds the current-month or all-time view relative to now.
func (s *LedgerService) Statement(ctx context.Context, mode core.ViewMode, now time.Time) (core.Statement, error) {
	switch mode {
	case core.ViewMonth:
		st, err := s.MonthStatement(ctx, core.MonthOf(now))
		if err != nil {
			return core.Statement{}, err
		}
		st.Title = mode.Title()
		return st, nil
	case core.ViewAll:
		txns, err := s.store.ListAll(ctx)
		if err != nil {
			return core.Statement{}, fmt.Errorf("list transactions: %w", err)
		}
		s.logStatement(ctx, mode, "", len(txns))
		return core.Statement{
			Title: mode.Title(),
			Rows:  core.BuildStatement(core.Money{}, txns),
		}, nil
	}
	return core.Statement{}, &core.ValidationError{Field: "mode", Err: fmt.Errorf("unknown view mode %q", mode)}
}

// MonthStatement opens with everything before month and lists the month itself.
func (s *LedgerService) MonthStatement(ctx context.Context, month core.YearMonth) (core.Statement, error) {
	opening, err := s.store.SumBefore(ctx, month)
	if err != nil {
		return core.Statement{}, fmt.Errorf("opening balance: %w", err)
	}
	txns, err := s.store.ListInMonth(ctx, month)
	if err != nil {
		return core.Statement{}, fmt.Errorf("list transactions: %w", err)
	}
	s.logStatement(ctx, core.ViewMonth, month.String(), len(txns))

	m := month
	return core.Statement{
		Title:   fmt.Sprintf("View Transaction (%s)", month),
		Month:   &m,
		Opening: opening,
		Rows:    core.BuildStatement(opening, txns),
	}, nil
}

func (s *LedgerService) logStatement(ctx context.Context, mode core.ViewMode, month string, n int) {
	slog.DebugContext(ctx, "Statement built",
		applog.FieldComponent, applog.ComponentLedger,
		applog.FieldOperation, applog.OpStatement,
		applog.FieldViewMode, string(mode),
		applog.FieldMonth, month,
		applog.FieldRows, n)
}

func (s *LedgerService) publish(ctx context.Context, t core.Transaction) error {
	if s.publisher == nil {
		slog.DebugContext(ctx, "No event publisher configured, skipping ledger event")
		return nil
	}
	return s.publisher.PublishTransactionAppended(ctx, t)
}

// Close releases the store and, when it holds one, the publisher connection.
func (s *LedgerService) Close() error {
	var errs []error

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("store: %w", err))
		}
	}

	if c, ok := s.publisher.(io.Closer); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("publisher: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close ledger service: %w", errors.Join(errs...))
	}

	return nil
}
