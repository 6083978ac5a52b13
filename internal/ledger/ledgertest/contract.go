// Package ledgertest holds the behavior every ledger.Store must share.
package ledgertest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expnote/internal/core"
	"expnote/internal/ledger"
)

// Factory returns an empty store. The suite closes it.
type Factory func(t *testing.T) ledger.Store

// Run exercises append, ordering and opening-balance semantics against a
// fresh store per subtest.
func Run(t *testing.T, newStore Factory) {
	t.Run("AppendAssignsIncreasingIDs", func(t *testing.T) {
		s := open(t, newStore)
		ctx := context.Background()

		first, err := s.Append(ctx, tx(t, core.Credit, 100, "a", 2024, 3, 1))
		require.NoError(t, err)
		second, err := s.Append(ctx, tx(t, core.Debit, 50, "b", 2024, 1, 1))
		require.NoError(t, err)
		assert.Greater(t, second, first)
	})

	t.Run("AppendRejectsInvalid", func(t *testing.T) {
		s := open(t, newStore)
		ctx := context.Background()

		bad := core.Transaction{Date: core.NewDate(2024, 1, 1), Credit: core.Money{Cents: 1}, Debit: core.Money{Cents: 1}}
		_, err := s.Append(ctx, bad)
		require.Error(t, err)

		all, err := s.ListAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("AppendRejectsOversizedAmount", func(t *testing.T) {
		s := open(t, newStore)
		ctx := context.Background()

		huge := core.Transaction{Date: core.NewDate(2024, 1, 1), Credit: core.Money{Cents: core.MaxCents + 1}}
		_, err := s.Append(ctx, huge)
		require.ErrorIs(t, err, core.ErrInvalidAmount)

		for i := 0; i < 2; i++ {
			_, err := s.Append(ctx, tx(t, core.Credit, core.MaxCents, "cap", 2024, 1, 1))
			require.NoError(t, err)
		}

		opening, err := s.SumBefore(ctx, core.YearMonth{Year: 2024, Month: time.February})
		require.NoError(t, err)
		assert.Equal(t, 2*core.MaxCents, opening.Cents)

		all, err := s.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		rows := core.BuildStatement(core.Money{}, all)
		assert.Equal(t, "2000000000.00", rows[2].Balance.String())
	})

	t.Run("SalaryThenGroceries", func(t *testing.T) {
		s := open(t, newStore)
		ctx := context.Background()

		_, err := s.Append(ctx, tx(t, core.Credit, 10000, "Salary", 2024, 3, 1))
		require.NoError(t, err)
		_, err = s.Append(ctx, tx(t, core.Debit, 3000, "Groceries", 2024, 3, 5))
		require.NoError(t, err)

		all, err := s.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "Salary", all[0].Description)
		assert.Equal(t, "Groceries", all[1].Description)
		assert.Equal(t, "01:03:2024", all[0].Date.Display())
		assert.Equal(t, int64(10000), all[0].Credit.Cents)
		assert.True(t, all[0].Debit.IsZero())
		assert.Equal(t, int64(3000), all[1].Debit.Cents)
		assert.True(t, all[1].Credit.IsZero())

		rows := core.BuildStatement(core.Money{}, all)
		require.Len(t, rows, 3)
		assert.Equal(t, "0.00", rows[0].Balance.String())
		assert.Equal(t, "100.00", rows[1].Balance.String())
		assert.Equal(t, "70.00", rows[2].Balance.String())
	})

	t.Run("OrderBySortDateThenID", func(t *testing.T) {
		s := open(t, newStore)
		ctx := context.Background()

		// inserted out of date order; two share 2024-02-10
		ids := map[string]int64{}
		for _, in := range []struct {
			desc    string
			y, m, d int
			kind    core.Kind
		}{
			{"late", 2024, 5, 1, core.Credit},
			{"tie-1", 2024, 2, 10, core.Debit},
			{"early", 2023, 12, 31, core.Credit},
			{"tie-2", 2024, 2, 10, core.Credit},
			{"mid", 2024, 2, 9, core.Debit},
		} {
			id, err := s.Append(ctx, tx(t, in.kind, 100, in.desc, in.y, in.m, in.d))
			require.NoError(t, err)
			ids[in.desc] = id
		}

		all, err := s.ListAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"early", "mid", "tie-1", "tie-2", "late"}, descriptions(all))
		assert.Less(t, ids["tie-1"], ids["tie-2"])
		for _, got := range all {
			assert.Equal(t, ids[got.Description], got.ID)
		}

		feb, err := s.ListInMonth(ctx, core.YearMonth{Year: 2024, Month: 2})
		require.NoError(t, err)
		assert.Equal(t, []string{"mid", "tie-1", "tie-2"}, descriptions(feb))

		empty, err := s.ListInMonth(ctx, core.YearMonth{Year: 2024, Month: 3})
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("SumBefore", func(t *testing.T) {
		s := open(t, newStore)
		ctx := context.Background()

		zero, err := s.SumBefore(ctx, core.YearMonth{Year: 2024, Month: 3})
		require.NoError(t, err)
		assert.True(t, zero.IsZero())

		// insertion order deliberately unrelated to date order
		_, err = s.Append(ctx, tx(t, core.Debit, 2500, "march", 2024, 3, 1))
		require.NoError(t, err)
		_, err = s.Append(ctx, tx(t, core.Credit, 10000, "jan", 2024, 1, 15))
		require.NoError(t, err)
		_, err = s.Append(ctx, tx(t, core.Debit, 1234, "feb-end", 2024, 2, 29))
		require.NoError(t, err)
		_, err = s.Append(ctx, tx(t, core.Credit, 1, "prev-year", 2023, 12, 31))
		require.NoError(t, err)

		cases := []struct {
			month core.YearMonth
			want  int64
		}{
			{core.YearMonth{Year: 2023, Month: 12}, 0},
			{core.YearMonth{Year: 2024, Month: 1}, 1},
			{core.YearMonth{Year: 2024, Month: 2}, 10001},
			{core.YearMonth{Year: 2024, Month: 3}, 10001 - 1234},
			{core.YearMonth{Year: 2024, Month: 4}, 10001 - 1234 - 2500},
			{core.YearMonth{Year: 2030, Month: 1}, 10001 - 1234 - 2500},
		}
		for _, tc := range cases {
			got, err := s.SumBefore(ctx, tc.month)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.Cents, "sum before %s", tc.month)
		}
	})
}

func open(t *testing.T, newStore Factory) ledger.Store {
	t.Helper()
	s := newStore(t)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func tx(t *testing.T, kind core.Kind, cents int64, desc string, y, m, d int) core.Transaction {
	t.Helper()
	out, err := core.NewTransaction(kind, core.Money{Cents: cents}, desc, core.NewDate(y, m, d))
	require.NoError(t, err)
	return out
}

func descriptions(txns []core.Transaction) []string {
	out := make([]string, len(txns))
	for i, t := range txns {
		out[i] = t.Description
	}
	return out
}
