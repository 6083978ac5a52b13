// Package ledger defines the ports every ledger store implements.
package ledger

import (
	"context"

	"expnote/internal/core"
)

// Ports for ledger storage backends.
type (
	// Appender durably records a new transaction and returns its id.
	Appender interface {
		Append(ctx context.Context, t core.Transaction) (id int64, err error)
	}

	// BalanceReader sums credit minus debit over everything before a month.
	BalanceReader interface {
		// SumBefore returns zero when no transaction precedes the month.
		SumBefore(ctx context.Context, month core.YearMonth) (core.Money, error)
	}

	// Lister returns transactions ordered by sort date, ties by id.
	Lister interface {
		ListInMonth(ctx context.Context, month core.YearMonth) ([]core.Transaction, error)
		ListAll(ctx context.Context) ([]core.Transaction, error)
	}

	Store interface {
		Appender
		BalanceReader
		Lister
		Close() error
	}
)
