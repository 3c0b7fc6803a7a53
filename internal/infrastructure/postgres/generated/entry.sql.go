
package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const countApprovedLoans = `-- name: CountApprovedLoans :one
SELECT COUNT(*) FROM entries WHERE account_no = $1 AND kind = 'loan' AND loan_approved
`

func (q *Queries) CountApprovedLoans(ctx context.Context, accountNo int64) (int64, error) {
	row := q.db.QueryRow(ctx, countApprovedLoans, accountNo)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createEntry = `-- name: CreateEntry :one
INSERT INTO entries (id, account_no, amount, balance_after, kind, loan_approved, transfer_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, account_no, amount, balance_after, kind, loan_approved, transfer_id, created_at
`

type CreateEntryParams struct {
	ID           string             `json:"id"`
	AccountNo    int64              `json:"account_no"`
	Amount       pgtype.Numeric     `json:"amount"`
	BalanceAfter pgtype.Numeric     `json:"balance_after"`
	Kind         string             `json:"kind"`
	LoanApproved bool               `json:"loan_approved"`
	TransferID   pgtype.Text        `json:"transfer_id"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateEntry(ctx context.Context, arg CreateEntryParams) (Entry, error) {
	row := q.db.QueryRow(ctx, createEntry,
		arg.ID,
		arg.AccountNo,
		arg.Amount,
		arg.BalanceAfter,
		arg.Kind,
		arg.LoanApproved,
		arg.TransferID,
		arg.CreatedAt,
	)
	var i Entry
	err := row.Scan(
		&i.ID,
		&i.AccountNo,
		&i.Amount,
		&i.BalanceAfter,
		&i.Kind,
		&i.LoanApproved,
		&i.TransferID,
		&i.CreatedAt,
	)
	return i, err
}

const getEntryByID = `-- name: GetEntryByID :one
SELECT id, account_no, amount, balance_after, kind, loan_approved, transfer_id, created_at FROM entries WHERE id = $1
`

func (q *Queries) GetEntryByID(ctx context.Context, id string) (Entry, error) {
	row := q.db.QueryRow(ctx, getEntryByID, id)
	var i Entry
	err := row.Scan(
		&i.ID,
		&i.AccountNo,
		&i.Amount,
		&i.BalanceAfter,
		&i.Kind,
		&i.LoanApproved,
		&i.TransferID,
		&i.CreatedAt,
	)
	return i, err
}

const getEntryByIDForUpdate = `-- name: GetEntryByIDForUpdate :one
SELECT id, account_no, amount, balance_after, kind, loan_approved, transfer_id, created_at FROM entries WHERE id = $1 FOR UPDATE
`

func (q *Queries) GetEntryByIDForUpdate(ctx context.Context, id string) (Entry, error) {
	row := q.db.QueryRow(ctx, getEntryByIDForUpdate, id)
	var i Entry
	err := row.Scan(
		&i.ID,
		&i.AccountNo,
		&i.Amount,
		&i.BalanceAfter,
		&i.Kind,
		&i.LoanApproved,
		&i.TransferID,
		&i.CreatedAt,
	)
	return i, err
}

const listEntriesByAccount = `-- name: ListEntriesByAccount :many
SELECT id, account_no, amount, balance_after, kind, loan_approved, transfer_id, created_at FROM entries
WHERE account_no = $1
ORDER BY created_at, id
LIMIT $2 OFFSET $3
`

type ListEntriesByAccountParams struct {
	AccountNo int64 `json:"account_no"`
	Limit     int32 `json:"limit"`
	Offset    int32 `json:"offset"`
}

func (q *Queries) ListEntriesByAccount(ctx context.Context, arg ListEntriesByAccountParams) ([]Entry, error) {
	rows, err := q.db.Query(ctx, listEntriesByAccount, arg.AccountNo, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Entry{}
	for rows.Next() {
		var i Entry
		if err := rows.Scan(
			&i.ID,
			&i.AccountNo,
			&i.Amount,
			&i.BalanceAfter,
			&i.Kind,
			&i.LoanApproved,
			&i.TransferID,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listEntriesByAccountInRange = `-- name: ListEntriesByAccountInRange :many
SELECT id, account_no, amount, balance_after, kind, loan_approved, transfer_id, created_at FROM entries
WHERE account_no = $1 AND created_at >= $2 AND created_at <= $3
ORDER BY created_at, id
`

type ListEntriesByAccountInRangeParams struct {
	AccountNo   int64              `json:"account_no"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
	CreatedAt_2 pgtype.Timestamptz `json:"created_at_2"`
}

func (q *Queries) ListEntriesByAccountInRange(ctx context.Context, arg ListEntriesByAccountInRangeParams) ([]Entry, error) {
	rows, err := q.db.Query(ctx, listEntriesByAccountInRange, arg.AccountNo, arg.CreatedAt, arg.CreatedAt_2)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Entry{}
	for rows.Next() {
		var i Entry
		if err := rows.Scan(
			&i.ID,
			&i.AccountNo,
			&i.Amount,
			&i.BalanceAfter,
			&i.Kind,
			&i.LoanApproved,
			&i.TransferID,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listLoanEntriesByAccount = `-- name: ListLoanEntriesByAccount :many
SELECT id, account_no, amount, balance_after, kind, loan_approved, transfer_id, created_at FROM entries
WHERE account_no = $1 AND kind = 'loan'
ORDER BY created_at, id
`

func (q *Queries) ListLoanEntriesByAccount(ctx context.Context, accountNo int64) ([]Entry, error) {
	rows, err := q.db.Query(ctx, listLoanEntriesByAccount, accountNo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Entry{}
	for rows.Next() {
		var i Entry
		if err := rows.Scan(
			&i.ID,
			&i.AccountNo,
			&i.Amount,
			&i.BalanceAfter,
			&i.Kind,
			&i.LoanApproved,
			&i.TransferID,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const sumEntryAmountsInRange = `-- name: SumEntryAmountsInRange :one
SELECT COALESCE(SUM(amount), 0)::numeric FROM entries
WHERE created_at >= $1 AND created_at <= $2
`

type SumEntryAmountsInRangeParams struct {
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
	CreatedAt_2 pgtype.Timestamptz `json:"created_at_2"`
}

func (q *Queries) SumEntryAmountsInRange(ctx context.Context, arg SumEntryAmountsInRangeParams) (pgtype.Numeric, error) {
	row := q.db.QueryRow(ctx, sumEntryAmountsInRange, arg.CreatedAt, arg.CreatedAt_2)
	var column_1 pgtype.Numeric
	err := row.Scan(&column_1)
	return column_1, err
}

const sumEntrySignedDeltas = `-- name: SumEntrySignedDeltas :one
SELECT COALESCE(SUM(
  CASE
    WHEN kind IN ('deposit', 'transfer_received') THEN amount
    WHEN kind IN ('withdrawal', 'transfer_sent') THEN -amount
    WHEN kind = 'loan' AND loan_approved THEN amount
    ELSE 0
  END
), 0)::numeric FROM entries
`

func (q *Queries) SumEntrySignedDeltas(ctx context.Context) (pgtype.Numeric, error) {
	row := q.db.QueryRow(ctx, sumEntrySignedDeltas)
	var column_1 pgtype.Numeric
	err := row.Scan(&column_1)
	return column_1, err
}

const updateEntryLoanState = `-- name: UpdateEntryLoanState :exec
UPDATE entries
SET kind = $2, loan_approved = $3, balance_after = $4
WHERE id = $1
`

type UpdateEntryLoanStateParams struct {
	ID           string         `json:"id"`
	Kind         string         `json:"kind"`
	LoanApproved bool           `json:"loan_approved"`
	BalanceAfter pgtype.Numeric `json:"balance_after"`
}

func (q *Queries) UpdateEntryLoanState(ctx context.Context, arg UpdateEntryLoanStateParams) error {
	_, err := q.db.Exec(ctx, updateEntryLoanState, arg.ID, arg.Kind, arg.LoanApproved, arg.BalanceAfter)
	return err
}
