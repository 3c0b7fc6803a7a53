
package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const countAccounts = `-- name: CountAccounts :one
SELECT COUNT(*) FROM accounts
`

func (q *Queries) CountAccounts(ctx context.Context) (int64, error) {
	row := q.db.QueryRow(ctx, countAccounts)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createAccount = `-- name: CreateAccount :one
INSERT INTO accounts (user_id, balance, is_bankrupt, version, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING account_no, user_id, balance, is_bankrupt, version, created_at, updated_at
`

type CreateAccountParams struct {
	UserID     string             `json:"user_id"`
	Balance    pgtype.Numeric     `json:"balance"`
	IsBankrupt bool               `json:"is_bankrupt"`
	Version    int64              `json:"version"`
	CreatedAt  pgtype.Timestamptz `json:"created_at"`
	UpdatedAt  pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) CreateAccount(ctx context.Context, arg CreateAccountParams) (Account, error) {
	row := q.db.QueryRow(ctx, createAccount,
		arg.UserID,
		arg.Balance,
		arg.IsBankrupt,
		arg.Version,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	var i Account
	err := row.Scan(
		&i.AccountNo,
		&i.UserID,
		&i.Balance,
		&i.IsBankrupt,
		&i.Version,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getAccountByNumber = `-- name: GetAccountByNumber :one
SELECT account_no, user_id, balance, is_bankrupt, version, created_at, updated_at FROM accounts WHERE account_no = $1
`

func (q *Queries) GetAccountByNumber(ctx context.Context, accountNo int64) (Account, error) {
	row := q.db.QueryRow(ctx, getAccountByNumber, accountNo)
	var i Account
	err := row.Scan(
		&i.AccountNo,
		&i.UserID,
		&i.Balance,
		&i.IsBankrupt,
		&i.Version,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getAccountByNumberForUpdate = `-- name: GetAccountByNumberForUpdate :one
SELECT account_no, user_id, balance, is_bankrupt, version, created_at, updated_at FROM accounts WHERE account_no = $1 FOR UPDATE
`

func (q *Queries) GetAccountByNumberForUpdate(ctx context.Context, accountNo int64) (Account, error) {
	row := q.db.QueryRow(ctx, getAccountByNumberForUpdate, accountNo)
	var i Account
	err := row.Scan(
		&i.AccountNo,
		&i.UserID,
		&i.Balance,
		&i.IsBankrupt,
		&i.Version,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getAccountsByNumbersForUpdate = `-- name: GetAccountsByNumbersForUpdate :many
SELECT account_no, user_id, balance, is_bankrupt, version, created_at, updated_at FROM accounts WHERE account_no = ANY($1::bigint[]) ORDER BY account_no FOR UPDATE
`

func (q *Queries) GetAccountsByNumbersForUpdate(ctx context.Context, dollar_1 []int64) ([]Account, error) {
	rows, err := q.db.Query(ctx, getAccountsByNumbersForUpdate, dollar_1)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Account{}
	for rows.Next() {
		var i Account
		if err := rows.Scan(
			&i.AccountNo,
			&i.UserID,
			&i.Balance,
			&i.IsBankrupt,
			&i.Version,
			&i.CreatedAt,
			&i.UpdatedAt,
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

const listAccounts = `-- name: ListAccounts :many
SELECT account_no, user_id, balance, is_bankrupt, version, created_at, updated_at FROM accounts ORDER BY account_no LIMIT $1 OFFSET $2
`

type ListAccountsParams struct {
	Limit  int32 `json:"limit"`
	Offset int32 `json:"offset"`
}

func (q *Queries) ListAccounts(ctx context.Context, arg ListAccountsParams) ([]Account, error) {
	rows, err := q.db.Query(ctx, listAccounts, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Account{}
	for rows.Next() {
		var i Account
		if err := rows.Scan(
			&i.AccountNo,
			&i.UserID,
			&i.Balance,
			&i.IsBankrupt,
			&i.Version,
			&i.CreatedAt,
			&i.UpdatedAt,
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

const sumAccountBalances = `-- name: SumAccountBalances :one
SELECT COALESCE(SUM(balance), 0)::numeric FROM accounts
`

func (q *Queries) SumAccountBalances(ctx context.Context) (pgtype.Numeric, error) {
	row := q.db.QueryRow(ctx, sumAccountBalances)
	var column_1 pgtype.Numeric
	err := row.Scan(&column_1)
	return column_1, err
}

const updateAccountBalance = `-- name: UpdateAccountBalance :exec
UPDATE accounts
SET balance = $2, version = version + 1, updated_at = $3
WHERE account_no = $1
`

type UpdateAccountBalanceParams struct {
	AccountNo int64              `json:"account_no"`
	Balance   pgtype.Numeric     `json:"balance"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateAccountBalance(ctx context.Context, arg UpdateAccountBalanceParams) error {
	_, err := q.db.Exec(ctx, updateAccountBalance, arg.AccountNo, arg.Balance, arg.UpdatedAt)
	return err
}
