
package generated

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Account struct {
	AccountNo  int64              `json:"account_no"`
	UserID     string             `json:"user_id"`
	Balance    pgtype.Numeric     `json:"balance"`
	IsBankrupt bool               `json:"is_bankrupt"`
	Version    int64              `json:"version"`
	CreatedAt  pgtype.Timestamptz `json:"created_at"`
	UpdatedAt  pgtype.Timestamptz `json:"updated_at"`
}

type Entry struct {
	ID           string             `json:"id"`
	AccountNo    int64              `json:"account_no"`
	Amount       pgtype.Numeric     `json:"amount"`
	BalanceAfter pgtype.Numeric     `json:"balance_after"`
	Kind         string             `json:"kind"`
	LoanApproved bool               `json:"loan_approved"`
	TransferID   pgtype.Text        `json:"transfer_id"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
}

type OutboxEvent struct {
	ID            string             `json:"id"`
	AggregateID   string             `json:"aggregate_id"`
	AggregateType string             `json:"aggregate_type"`
	EventType     string             `json:"event_type"`
	Payload       []byte             `json:"payload"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
	PublishedAt   pgtype.Timestamptz `json:"published_at"`
	Published     bool               `json:"published"`
}
