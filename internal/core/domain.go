package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	Credit Kind = "CR"
	Debit  Kind = "DR"
)

const (
	// DisplayLayout is the user-facing date form stored in txn.date.
	DisplayLayout = "02:01:2006"
	// SortLayout is the lexicographically ordered form stored in txn.date_sort.
	SortLayout = "2006-01-02"
	// inputLayout accepts one or two digit day and month after separator normalization.
	inputLayout = "2-1-2006"
	monthLayout = "2006-01"
)

type (
	// Kind tells income (CR) from expense (DR).
	Kind string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// YearMonth identifies a calendar month for monthly views.
	YearMonth struct {
		Year  int
		Month time.Month
	}

	Transaction struct {
		ID          int64
		Date        Date
		Description string
		Credit      Money // zero for a debit
		Debit       Money // zero for a credit
	}
)

var (
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidKind   = errors.New("invalid transaction type")
	ErrInvalidMonth  = errors.New("invalid month")
	ErrUnbalancedLeg = errors.New("transaction must have exactly one of credit or debit")
)

// ValidationError reports user input that was rejected before anything was written.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}

// ParseKind accepts CR/DR as well as the income/expense aliases.
func ParseKind(s string) (Kind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CR", "CREDIT", "INCOME":
		return Credit, nil
	case "DR", "DEBIT", "EXPENSE":
		return Debit, nil
	}
	return "", invalid("type", ErrInvalidKind)
}

func (k Kind) Valid() bool {
	return k == Credit || k == Debit
}

// ParseDate accepts day-month-year separated by '-' or ':'. Any other
// format is rejected.
func ParseDate(raw string) (Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Date{}, invalid("date", ErrInvalidDate)
	}
	normalized := strings.ReplaceAll(raw, ":", "-")
	t, err := time.Parse(inputLayout, normalized)
	if err != nil || t.Year() < 1 {
		return Date{}, invalid("date", fmt.Errorf("%w: %q", ErrInvalidDate, raw))
	}
	return Date{Time: t}, nil
}

// ParseSortKey reads back a date_sort value.
func ParseSortKey(s string) (Date, error) {
	t, err := time.Parse(SortLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: sort key %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Display returns the DD:MM:YYYY form.
func (d Date) Display() string {
	return d.Format(DisplayLayout)
}

// SortKey returns the YYYY-MM-DD form.
func (d Date) SortKey() string {
	return d.Format(SortLayout)
}

// YearMonth returns the month the date falls in.
func (d Date) YearMonth() YearMonth {
	return YearMonth{Year: d.Year(), Month: d.Month()}
}

// MonthOf returns the calendar month of t in t's location.
func MonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// ParseYearMonth parses YYYY-MM.
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse(monthLayout, strings.TrimSpace(s))
	if err != nil {
		return YearMonth{}, invalid("month", fmt.Errorf("%w: %q", ErrInvalidMonth, s))
	}
	return MonthOf(t), nil
}

func (m YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// FirstDay returns day 1 of the month.
func (m YearMonth) FirstDay() Date {
	return NewDate(m.Year, int(m.Month), 1)
}

// Next returns the following month.
func (m YearMonth) Next() YearMonth {
	return MonthOf(m.FirstDay().AddDate(0, 1, 0))
}

func (m YearMonth) Contains(d Date) bool {
	return d.YearMonth() == m
}

// NewTransaction builds an unsaved transaction of the given kind. The amount
// lands in the credit or debit column and the other one stays zero.
func NewTransaction(kind Kind, amount Money, description string, date Date) (Transaction, error) {
	if !kind.Valid() {
		return Transaction{}, invalid("type", ErrInvalidKind)
	}
	if err := amount.Validate(); err != nil {
		return Transaction{}, invalid("amount", err)
	}
	if err := date.Validate(); err != nil {
		return Transaction{}, invalid("date", err)
	}
	t := Transaction{Date: date, Description: description}
	if kind == Credit {
		t.Credit = amount
	} else {
		t.Debit = amount
	}
	return t, nil
}

func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if t.Credit.IsNegative() || t.Debit.IsNegative() {
		return ErrInvalidAmount
	}
	if t.Credit.Cents > MaxCents || t.Debit.Cents > MaxCents {
		return ErrInvalidAmount
	}
	if t.Credit.IsZero() == t.Debit.IsZero() {
		return ErrUnbalancedLeg
	}
	return nil
}

// Kind derives the transaction type from the nonzero column.
func (t Transaction) Kind() Kind {
	if t.Credit.IsZero() {
		return Debit
	}
	return Credit
}

// Amount returns the nonzero side.
func (t Transaction) Amount() Money {
	if t.Credit.IsZero() {
		return t.Debit
	}
	return t.Credit
}

// Net is credit minus debit.
func (t Transaction) Net() Money {
	return t.Credit.Sub(t.Debit)
}
