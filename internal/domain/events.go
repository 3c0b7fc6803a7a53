package domain

import "time"

// Notification event types, one per successful mutating operation.
const (
	EventTypeDeposit          = "transaction.deposit"
	EventTypeWithdrawal       = "transaction.withdrawal"
	EventTypeLoanRequested    = "loan.requested"
	EventTypeLoanApproved     = "loan.approved"
	EventTypeLoanPaid         = "loan.paid"
	EventTypeTransferSent     = "transfer.sent"
	EventTypeTransferReceived = "transfer.received"
)

// Aggregate types
const (
	AggregateTypeAccount = "account"
	AggregateTypeEntry   = "entry"
)

// OutboxEvent is a notification trigger written in the same transaction as
// the operation it describes. A background publisher delivers it; delivery
// failure never rolls back the operation.
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	// Payload holds a TransactionEvent or TransferEvent when the event is
	// first written; events read back from the store carry the decoded
	// JSON object instead.
	Payload     any
	CreatedAt   time.Time
	PublishedAt *time.Time
	Published   bool
}

// TransactionEvent is the payload for deposit/withdrawal/loan notifications.
type TransactionEvent struct {
	UserID    string `json:"user_id"`
	AccountNo int64  `json:"account_no"`
	Amount    string `json:"amount"`
	Kind      string `json:"kind"`
	EntryID   string `json:"entry_id"`
}

// TransferEvent is the payload for either leg of a transfer notification.
type TransferEvent struct {
	UserID             string `json:"user_id"`
	AccountNo          int64  `json:"account_no"`
	CounterpartyUserID string `json:"counterparty_user_id"`
	CounterpartyNo     int64  `json:"counterparty_account_no"`
	Amount             string `json:"amount"`
	Kind               string `json:"kind"`
	TransferID         string `json:"transfer_id"`
}
