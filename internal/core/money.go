// Package core provides the ledger domain: transactions, money, dates and
// the running-balance statement.
//
// This file contains functions for parsing monetary amounts from user input
// and converting between cents and decimal representations.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MaxCents caps a single amount at 1,000,000,000.00. Running balances over
// any realistic number of rows stay far inside int64 cents.
const MaxCents int64 = 100_000_000_000

var maxAmount = decimal.New(MaxCents, -2)

// ParseAmount converts a decimal string to Money with half-up rounding to cents.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators. Signed,
// zero, empty and non-numeric inputs are rejected with a ValidationError.
//
// Examples:
//
//	ParseAmount("12.34")  -> 1234 cents
//	ParseAmount("12,34")  -> 1234 cents
//	ParseAmount("12.345") -> 1235 cents
//	ParseAmount("12.344") -> 1234 cents
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, invalid("amount", ErrInvalidAmount)
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return Money{}, invalid("amount", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, invalid("amount", ErrInvalidAmount)
	}
	if d.GreaterThan(maxAmount) {
		return Money{}, invalid("amount", ErrInvalidAmount)
	}
	m := MoneyFromDecimal(d)
	if err := m.Validate(); err != nil {
		return Money{}, invalid("amount", err)
	}
	return m, nil
}

// MoneyFromDecimal rounds d half away from zero to whole cents.
func MoneyFromDecimal(d decimal.Decimal) Money {
	return Money{Cents: d.Round(2).Shift(2).IntPart()}
}

// Validate reports whether m is a usable transaction amount.
func (m Money) Validate() error {
	if m.Cents <= 0 || m.Cents > MaxCents {
		return ErrInvalidAmount
	}
	return nil
}

// Decimal returns the exact decimal value of m.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

// String formats m with two decimals, e.g. "-70.00".
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

func (m Money) Add(o Money) Money { return Money{Cents: m.Cents + o.Cents} }
func (m Money) Sub(o Money) Money { return Money{Cents: m.Cents - o.Cents} }

func (m Money) IsZero() bool     { return m.Cents == 0 }
func (m Money) IsNegative() bool { return m.Cents < 0 }
