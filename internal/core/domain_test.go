package core

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in      string
		display string
		sortKey string
		ok      bool
	}{
		{"15-06-2024", "15:06:2024", "2024-06-15", true},
		{"15:06:2024", "15:06:2024", "2024-06-15", true},
		{"1-3-2024", "01:03:2024", "2024-03-01", true},
		{" 05-12-2023 ", "05:12:2023", "2023-12-05", true},
		{"29-02-2024", "29:02:2024", "2024-02-29", true},
		{"01-01-0001", "01:01:0001", "0001-01-01", true},
		{"01-01-0000", "", "", false},
		{"", "", "", false},
		{"2024-06-15", "", "", false},
		{"15/06/2024", "", "", false},
		{"31-04-2024", "", "", false},
		{"29-02-2023", "", "", false},
		{"15-13-2024", "", "", false},
		{"15-06-24", "", "", false},
		{"yesterday", "", "", false},
	}
	for _, tc := range cases {
		d, err := ParseDate(tc.in)
		if !tc.ok {
			if err == nil {
				t.Fatalf("%q expected error, got %v", tc.in, d)
			}
			if !errors.Is(err, ErrInvalidDate) {
				t.Fatalf("%q expected ErrInvalidDate, got %v", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q unexpected error: %v", tc.in, err)
		}
		if d.Display() != tc.display || d.SortKey() != tc.sortKey {
			t.Fatalf("%q got display=%q sort=%q", tc.in, d.Display(), d.SortKey())
		}
	}
}

func TestDateRoundTrip(t *testing.T) {
	start := NewDate(2023, 1, 1)
	for i := 0; i < 800; i++ {
		d := Date{Time: start.AddDate(0, 0, i)}

		fromDisplay, err := ParseDate(d.Display())
		if err != nil {
			t.Fatalf("parse display %q: %v", d.Display(), err)
		}
		fromSort, err := ParseSortKey(fromDisplay.SortKey())
		if err != nil {
			t.Fatalf("parse sort key %q: %v", fromDisplay.SortKey(), err)
		}
		if !fromSort.Equal(d.Time) || fromSort.Display() != d.Display() {
			t.Fatalf("round trip of %s gave %s", d.Display(), fromSort.Display())
		}
	}
}

func TestYearMonth(t *testing.T) {
	m, err := ParseYearMonth("2024-12")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.String() != "2024-12" {
		t.Fatalf("got %s", m)
	}
	if m.FirstDay().SortKey() != "2024-12-01" {
		t.Fatalf("first day %s", m.FirstDay().SortKey())
	}
	if m.Next().String() != "2025-01" {
		t.Fatalf("next %s", m.Next())
	}
	if !m.Contains(NewDate(2024, 12, 31)) || m.Contains(NewDate(2025, 12, 1)) {
		t.Fatalf("contains mismatch")
	}
	if got := MonthOf(time.Date(2024, 3, 9, 23, 0, 0, 0, time.UTC)); got.String() != "2024-03" {
		t.Fatalf("month of %s", got)
	}
	for _, bad := range []string{"", "2024", "2024-13", "03-2024"} {
		if _, err := ParseYearMonth(bad); !errors.Is(err, ErrInvalidMonth) {
			t.Fatalf("%q expected ErrInvalidMonth, got %v", bad, err)
		}
	}
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{"CR": Credit, "income": Credit, "dr": Debit, "Expense": Debit} {
		got, err := ParseKind(in)
		if err != nil || got != want {
			t.Fatalf("%q expected %s, got %s (err=%v)", in, want, got, err)
		}
	}
	if _, err := ParseKind("transfer"); !errors.Is(err, ErrInvalidKind) {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
}

func TestNewTransaction(t *testing.T) {
	date := NewDate(2024, 3, 1)

	cr, err := NewTransaction(Credit, Money{Cents: 10000}, "Salary", date)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cr.Credit.Cents != 10000 || !cr.Debit.IsZero() || cr.Kind() != Credit {
		t.Fatalf("unexpected credit transaction: %+v", cr)
	}

	dr, err := NewTransaction(Debit, Money{Cents: 3000}, "", date)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dr.Debit.Cents != 3000 || !dr.Credit.IsZero() || dr.Net().Cents != -3000 {
		t.Fatalf("unexpected debit transaction: %+v", dr)
	}

	for _, k := range []Kind{Credit, Debit} {
		tx, _ := NewTransaction(k, Money{Cents: 1}, "x", date)
		if err := tx.Validate(); err != nil {
			t.Fatalf("kind %s: %v", k, err)
		}
		if tx.Credit.IsZero() == tx.Debit.IsZero() {
			t.Fatalf("kind %s: exactly one side must be nonzero: %+v", k, tx)
		}
	}

	bads := []struct {
		kind   Kind
		amount Money
		date   Date
	}{
		{"XX", Money{Cents: 1}, date},
		{Credit, Money{Cents: 0}, date},
		{Debit, Money{Cents: -1}, date},
		{Credit, Money{Cents: 1}, Date{}},
	}
	for i, b := range bads {
		if _, err := NewTransaction(b.kind, b.amount, "x", b.date); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestTransactionValidate(t *testing.T) {
	date := NewDate(2025, 1, 1)
	bads := []Transaction{
		{Date: date},
		{Date: date, Credit: Money{Cents: 1}, Debit: Money{Cents: 1}},
		{Date: date, Credit: Money{Cents: -1}},
		{Credit: Money{Cents: 1}},
		{Date: date, Debit: Money{Cents: MaxCents + 1}},
	}
	for i, tx := range bads {
		if err := tx.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}
