package memory

import (
	"context"
	"sort"
	"sync"

	"expnote/internal/core"
	"expnote/internal/ledger"
)

var _ ledger.Store = (*Store)(nil)

// Store keeps transactions in process memory. Nothing survives Close.
type Store struct {
	mu     sync.Mutex
	nextID int64
	items  []core.Transaction
}

func New() *Store {
	return &Store{nextID: 1}
}

// Append validates and stores the transaction under the next id.
func (s *Store) Append(_ context.Context, t core.Transaction) (int64, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.nextID
	s.nextID++
	s.items = append(s.items, t)
	return t.ID, nil
}

// SumBefore returns credit minus debit over transactions dated before the month.
func (s *Store) SumBefore(_ context.Context, month core.YearMonth) (core.Money, error) {
	cutoff := month.FirstDay().SortKey()
	s.mu.Lock()
	defer s.mu.Unlock()
	var sum core.Money
	for _, t := range s.items {
		if t.Date.SortKey() < cutoff {
			sum = sum.Add(t.Net())
		}
	}
	return sum, nil
}

func (s *Store) ListInMonth(_ context.Context, month core.YearMonth) ([]core.Transaction, error) {
	return s.filter(month.Contains), nil
}

func (s *Store) ListAll(_ context.Context) ([]core.Transaction, error) {
	return s.filter(func(core.Date) bool { return true }), nil
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) filter(keep func(core.Date) bool) []core.Transaction {
	s.mu.Lock()
	out := make([]core.Transaction, 0, len(s.items))
	for _, t := range s.items {
		if keep(t.Date) {
			out = append(out, t)
		}
	}
	s.mu.Unlock()

	// items are in id order already, so a stable sort keeps id as tie-breaker
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.SortKey() < out[j].Date.SortKey()
	})
	return out
}
