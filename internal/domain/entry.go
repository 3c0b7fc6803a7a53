package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType identifies the kind of ledger entry.
type TransactionType string

const (
	TransactionDeposit          TransactionType = "deposit"
	TransactionWithdrawal       TransactionType = "withdrawal"
	TransactionLoan             TransactionType = "loan"
	TransactionLoanPaid         TransactionType = "loan_paid"
	TransactionTransferSent     TransactionType = "transfer_sent"
	TransactionTransferReceived TransactionType = "transfer_received"
)

// LoanState is the per-entry loan state machine. Legal transitions are
// Pending -> Approved -> Repaid; nothing else.
type LoanState string

const (
	LoanPending  LoanState = "pending"
	LoanApproved LoanState = "approved"
	LoanRepaid   LoanState = "repaid"
)

// Entry represents a single ledger entry. Entries are append-only and
// immutable except for the loan state transitions below.
type Entry struct {
	ID           string
	AccountNo    int64
	Amount       decimal.Decimal
	BalanceAfter decimal.Decimal
	Kind         TransactionType
	LoanApproved bool
	TransferID   string
	CreatedAt    time.Time
}

// IsLoan reports whether the entry participates in the loan state machine.
func (e *Entry) IsLoan() bool {
	return e.Kind == TransactionLoan || e.Kind == TransactionLoanPaid
}

// LoanState derives the state machine position from the stored fields.
func (e *Entry) LoanState() (LoanState, bool) {
	switch {
	case e.Kind == TransactionLoanPaid:
		return LoanRepaid, true
	case e.Kind == TransactionLoan && e.LoanApproved:
		return LoanApproved, true
	case e.Kind == TransactionLoan:
		return LoanPending, true
	default:
		return "", false
	}
}

// Approve transitions a pending loan to approved and records the balance
// snapshot after the loan amount was credited.
func (e *Entry) Approve(balanceAfter decimal.Decimal) error {
	state, ok := e.LoanState()
	if !ok {
		return ErrNotALoan
	}
	if state != LoanPending {
		return ErrLoanAlreadyApproved
	}

	e.LoanApproved = true
	e.BalanceAfter = balanceAfter

	return nil
}

// MarkRepaid transitions an approved loan to repaid and records the balance
// snapshot after the loan amount was debited.
func (e *Entry) MarkRepaid(balanceAfter decimal.Decimal) error {
	state, ok := e.LoanState()
	if !ok {
		return ErrNotALoan
	}
	if state != LoanApproved {
		return ErrLoanNotApproved
	}

	e.Kind = TransactionLoanPaid
	e.BalanceAfter = balanceAfter

	return nil
}

// SignedDelta returns the net effect this entry has had on its account's
// balance. A pending loan has not moved money yet, and a repaid loan credited
// and later debited the same amount, so both net to zero.
func (e *Entry) SignedDelta() decimal.Decimal {
	switch e.Kind {
	case TransactionDeposit, TransactionTransferReceived:
		return e.Amount
	case TransactionWithdrawal, TransactionTransferSent:
		return e.Amount.Neg()
	case TransactionLoan:
		if e.LoanApproved {
			return e.Amount
		}
		return decimal.Zero
	default:
		return decimal.Zero
	}
}
