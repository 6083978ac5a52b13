package storage

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

// Txn mirrors one row of the txn table. Amounts are cents.
type Txn struct {
	ID          int64
	Date        string
	DateSort    string
	Description string
	Cr          int64
	Dr          int64
}

const createTxn = `INSERT INTO txn (date, date_sort, description, cr, dr)
VALUES (?, ?, ?, ?, ?)
RETURNING id, date, date_sort, description, cr, dr`

type CreateTxnParams struct {
	Date        string
	DateSort    string
	Description string
	Cr          int64
	Dr          int64
}

func (q *Queries) CreateTxn(ctx context.Context, arg CreateTxnParams) (Txn, error) {
	row := q.db.QueryRowContext(ctx, createTxn,
		arg.Date,
		arg.DateSort,
		arg.Description,
		arg.Cr,
		arg.Dr,
	)
	var i Txn
	err := row.Scan(
		&i.ID,
		&i.Date,
		&i.DateSort,
		&i.Description,
		&i.Cr,
		&i.Dr,
	)
	return i, err
}

const sumBefore = `SELECT CAST(IFNULL(SUM(cr - dr), 0) AS INTEGER)
FROM txn
WHERE date_sort < ?`

func (q *Queries) SumBefore(ctx context.Context, dateSort string) (int64, error) {
	row := q.db.QueryRowContext(ctx, sumBefore, dateSort)
	var total int64
	err := row.Scan(&total)
	return total, err
}

const listTxnsBetween = `SELECT id, date, date_sort, description, cr, dr
FROM txn
WHERE date_sort >= ? AND date_sort < ?
ORDER BY date_sort, id`

type ListTxnsBetweenParams struct {
	From  string
	Until string
}

func (q *Queries) ListTxnsBetween(ctx context.Context, arg ListTxnsBetweenParams) ([]Txn, error) {
	rows, err := q.db.QueryContext(ctx, listTxnsBetween, arg.From, arg.Until)
	if err != nil {
		return nil, err
	}
	return scanTxns(rows)
}

const listTxns = `SELECT id, date, date_sort, description, cr, dr
FROM txn
ORDER BY date_sort, id`

func (q *Queries) ListTxns(ctx context.Context) ([]Txn, error) {
	rows, err := q.db.QueryContext(ctx, listTxns)
	if err != nil {
		return nil, err
	}
	return scanTxns(rows)
}

func scanTxns(rows *sql.Rows) ([]Txn, error) {
	defer rows.Close()
	var items []Txn
	for rows.Next() {
		var i Txn
		if err := rows.Scan(
			&i.ID,
			&i.Date,
			&i.DateSort,
			&i.Description,
			&i.Cr,
			&i.Dr,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
