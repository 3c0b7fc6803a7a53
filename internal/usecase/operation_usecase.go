package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bankcore/internal/domain"
)

// OperationKind identifies one of the balance-mutating operations.
type OperationKind string

const (
	OperationDeposit     OperationKind = "deposit"
	OperationWithdraw    OperationKind = "withdraw"
	OperationLoanRequest OperationKind = "loan_request"
	OperationLoanApprove OperationKind = "loan_approve"
	OperationLoanPay     OperationKind = "loan_pay"
	OperationTransfer    OperationKind = "transfer"
)

// OperationUseCase is the operation engine. Every mutating operation is
// validate-then-commit: threshold checks run before any lock, state-dependent
// checks re-run under the account row lock, and the balance write, entry
// append(s) and outbox event share one transaction. Store-level conflicts are
// retried internally; business rejections are terminal.
type OperationUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	entryRepo   EntryRepository
	outboxRepo  OutboxRepository
	idGen       IDGenerator
	retrier     Retrier
}

// NewOperationUseCase creates a new OperationUseCase.
func NewOperationUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	retrier Retrier,
) *OperationUseCase {
	return &OperationUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		outboxRepo:  outboxRepo,
		idGen:       idGen,
		retrier:     retrier,
	}
}

// OperationInput represents a request for any operation kind.
type OperationInput struct {
	Kind               OperationKind
	AccountNo          int64
	Amount             decimal.Decimal
	RecipientAccountNo int64  // transfer only
	EntryID            string // loan approve/pay only
}

// OperationResult carries the entries produced by a successful operation.
// Transfers fill SentEntry/ReceivedEntry; everything else fills Entry.
type OperationResult struct {
	Entry         *domain.Entry
	SentEntry     *domain.Entry
	ReceivedEntry *domain.Entry
}

// Execute dispatches an operation by kind.
func (uc *OperationUseCase) Execute(ctx context.Context, input OperationInput) (*OperationResult, error) {
	switch input.Kind {
	case OperationDeposit:
		entry, err := uc.Deposit(ctx, input.AccountNo, input.Amount)
		if err != nil {
			return nil, err
		}
		return &OperationResult{Entry: entry}, nil

	case OperationWithdraw:
		entry, err := uc.Withdraw(ctx, input.AccountNo, input.Amount)
		if err != nil {
			return nil, err
		}
		return &OperationResult{Entry: entry}, nil

	case OperationLoanRequest:
		entry, err := uc.RequestLoan(ctx, input.AccountNo, input.Amount)
		if err != nil {
			return nil, err
		}
		return &OperationResult{Entry: entry}, nil

	case OperationLoanApprove:
		entry, err := uc.ApproveLoan(ctx, input.EntryID)
		if err != nil {
			return nil, err
		}
		return &OperationResult{Entry: entry}, nil

	case OperationLoanPay:
		entry, err := uc.PayLoan(ctx, input.EntryID)
		if err != nil {
			return nil, err
		}
		return &OperationResult{Entry: entry}, nil

	case OperationTransfer:
		sent, received, err := uc.Transfer(ctx, input.AccountNo, input.RecipientAccountNo, input.Amount)
		if err != nil {
			return nil, err
		}
		return &OperationResult{SentEntry: sent, ReceivedEntry: received}, nil

	default:
		return nil, domain.ErrUnknownOperation
	}
}

// Deposit credits amount to the account and appends a deposit entry.
func (uc *OperationUseCase) Deposit(ctx context.Context, accountNo int64, amount decimal.Decimal) (*domain.Entry, error) {
	if err := domain.ValidateAmount(amount); err != nil {
		return nil, err
	}
	if err := domain.ValidateDepositAmount(amount); err != nil {
		return nil, err
	}

	var entry *domain.Entry

	err := uc.retrier.Retry(ctx, func() error {
		e, err := uc.deposit(ctx, accountNo, amount)
		if err != nil {
			return err
		}
		entry = e
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

func (uc *OperationUseCase) deposit(ctx context.Context, accountNo int64, amount decimal.Decimal) (*domain.Entry, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(txCtx)

	account, err := uc.accountRepo.GetByNumberForUpdate(txCtx, tx, accountNo)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	newBalance := account.ApplyCredit(amount)

	entry := &domain.Entry{
		ID:           uc.idGen.Generate(),
		AccountNo:    accountNo,
		Amount:       amount,
		BalanceAfter: newBalance,
		Kind:         domain.TransactionDeposit,
		CreatedAt:    now,
	}

	if err := uc.entryRepo.Create(txCtx, tx, entry); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateBalance(txCtx, tx, accountNo, newBalance, now); err != nil {
		return nil, err
	}

	if err := uc.appendTransactionEvent(txCtx, tx, account, entry, domain.EventTypeDeposit, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return entry, nil
}

// Withdraw debits amount from the account and appends a withdrawal entry.
func (uc *OperationUseCase) Withdraw(ctx context.Context, accountNo int64, amount decimal.Decimal) (*domain.Entry, error) {
	if err := domain.ValidateAmount(amount); err != nil {
		return nil, err
	}
	if err := domain.ValidateWithdrawalAmount(amount); err != nil {
		return nil, err
	}

	var entry *domain.Entry

	err := uc.retrier.Retry(ctx, func() error {
		e, err := uc.withdraw(ctx, accountNo, amount)
		if err != nil {
			return err
		}
		entry = e
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

func (uc *OperationUseCase) withdraw(ctx context.Context, accountNo int64, amount decimal.Decimal) (*domain.Entry, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(txCtx)

	account, err := uc.accountRepo.GetByNumberForUpdate(txCtx, tx, accountNo)
	if err != nil {
		return nil, err
	}

	if err := account.ValidateWithdrawal(amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	newBalance := account.ApplyDebit(amount)

	entry := &domain.Entry{
		ID:           uc.idGen.Generate(),
		AccountNo:    accountNo,
		Amount:       amount,
		BalanceAfter: newBalance,
		Kind:         domain.TransactionWithdrawal,
		CreatedAt:    now,
	}

	if err := uc.entryRepo.Create(txCtx, tx, entry); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateBalance(txCtx, tx, accountNo, newBalance, now); err != nil {
		return nil, err
	}

	if err := uc.appendTransactionEvent(txCtx, tx, account, entry, domain.EventTypeWithdrawal, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return entry, nil
}

// RequestLoan appends a pending loan entry. The balance is untouched until
// the loan is approved.
func (uc *OperationUseCase) RequestLoan(ctx context.Context, accountNo int64, amount decimal.Decimal) (*domain.Entry, error) {
	if err := domain.ValidateAmount(amount); err != nil {
		return nil, err
	}

	var entry *domain.Entry

	err := uc.retrier.Retry(ctx, func() error {
		e, err := uc.requestLoan(ctx, accountNo, amount)
		if err != nil {
			return err
		}
		entry = e
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

func (uc *OperationUseCase) requestLoan(ctx context.Context, accountNo int64, amount decimal.Decimal) (*domain.Entry, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(txCtx)

	account, err := uc.accountRepo.GetByNumberForUpdate(txCtx, tx, accountNo)
	if err != nil {
		return nil, err
	}

	approved, err := uc.entryRepo.CountApprovedLoans(txCtx, tx, accountNo)
	if err != nil {
		return nil, err
	}

	if approved >= domain.MaxApprovedLoans {
		return nil, domain.ErrLoanLimitReached
	}

	now := time.Now().UTC()

	// A pending loan does not move money: the snapshot is the balance as of
	// the request.
	entry := &domain.Entry{
		ID:           uc.idGen.Generate(),
		AccountNo:    accountNo,
		Amount:       amount,
		BalanceAfter: account.Balance,
		Kind:         domain.TransactionLoan,
		LoanApproved: false,
		CreatedAt:    now,
	}

	if err := uc.entryRepo.Create(txCtx, tx, entry); err != nil {
		return nil, err
	}

	if err := uc.appendTransactionEvent(txCtx, tx, account, entry, domain.EventTypeLoanRequested, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return entry, nil
}

// ApproveLoan is the administrative trigger: it credits the loan amount and
// transitions the entry from pending to approved. The approved-loan cap is
// re-checked under the lock so a fourth loan can never become approved, no
// matter how requests and approvals interleave.
func (uc *OperationUseCase) ApproveLoan(ctx context.Context, entryID string) (*domain.Entry, error) {
	var entry *domain.Entry

	err := uc.retrier.Retry(ctx, func() error {
		e, err := uc.approveLoan(ctx, entryID)
		if err != nil {
			return err
		}
		entry = e
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

func (uc *OperationUseCase) approveLoan(ctx context.Context, entryID string) (*domain.Entry, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(txCtx)

	entry, err := uc.entryRepo.GetByIDForUpdate(txCtx, tx, entryID)
	if err != nil {
		return nil, err
	}

	account, err := uc.accountRepo.GetByNumberForUpdate(txCtx, tx, entry.AccountNo)
	if err != nil {
		return nil, err
	}

	approved, err := uc.entryRepo.CountApprovedLoans(txCtx, tx, entry.AccountNo)
	if err != nil {
		return nil, err
	}

	if approved >= domain.MaxApprovedLoans {
		return nil, domain.ErrLoanLimitReached
	}

	now := time.Now().UTC()
	newBalance := account.ApplyCredit(entry.Amount)

	if err := entry.Approve(newBalance); err != nil {
		return nil, err
	}

	if err := uc.entryRepo.UpdateLoanState(txCtx, tx, entry); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateBalance(txCtx, tx, entry.AccountNo, newBalance, now); err != nil {
		return nil, err
	}

	if err := uc.appendTransactionEvent(txCtx, tx, account, entry, domain.EventTypeLoanApproved, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return entry, nil
}

// PayLoan repays an approved loan in full. The loan amount must be strictly
// less than the account balance; an equal balance is rejected.
func (uc *OperationUseCase) PayLoan(ctx context.Context, entryID string) (*domain.Entry, error) {
	var entry *domain.Entry

	err := uc.retrier.Retry(ctx, func() error {
		e, err := uc.payLoan(ctx, entryID)
		if err != nil {
			return err
		}
		entry = e
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

func (uc *OperationUseCase) payLoan(ctx context.Context, entryID string) (*domain.Entry, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(txCtx)

	entry, err := uc.entryRepo.GetByIDForUpdate(txCtx, tx, entryID)
	if err != nil {
		return nil, err
	}

	if state, ok := entry.LoanState(); !ok {
		return nil, domain.ErrNotALoan
	} else if state != domain.LoanApproved {
		return nil, domain.ErrLoanNotApproved
	}

	account, err := uc.accountRepo.GetByNumberForUpdate(txCtx, tx, entry.AccountNo)
	if err != nil {
		return nil, err
	}

	if !entry.Amount.LessThan(account.Balance) {
		return nil, domain.ErrLoanExceedsBalance
	}

	now := time.Now().UTC()
	newBalance := account.ApplyDebit(entry.Amount)

	if err := entry.MarkRepaid(newBalance); err != nil {
		return nil, err
	}

	if err := uc.entryRepo.UpdateLoanState(txCtx, tx, entry); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateBalance(txCtx, tx, entry.AccountNo, newBalance, now); err != nil {
		return nil, err
	}

	if err := uc.appendTransactionEvent(txCtx, tx, account, entry, domain.EventTypeLoanPaid, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return entry, nil
}

// Transfer moves amount between two accounts, producing one sent and one
// received entry that commit together or not at all.
func (uc *OperationUseCase) Transfer(ctx context.Context, fromAccountNo, toAccountNo int64, amount decimal.Decimal) (sent, received *domain.Entry, err error) {
	if err := domain.ValidateAmount(amount); err != nil {
		return nil, nil, err
	}

	if fromAccountNo == toAccountNo {
		return nil, nil, domain.ErrSameAccount
	}

	err = uc.retrier.Retry(ctx, func() error {
		s, r, err := uc.transfer(ctx, fromAccountNo, toAccountNo, amount)
		if err != nil {
			return err
		}
		sent, received = s, r
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return sent, received, nil
}

func (uc *OperationUseCase) transfer(ctx context.Context, fromAccountNo, toAccountNo int64, amount decimal.Decimal) (*domain.Entry, *domain.Entry, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(txCtx)

	// Lock both accounts in ascending account-number order (DEADLOCK PREVENTION).
	accountNos := []int64{fromAccountNo, toAccountNo}
	if accountNos[0] > accountNos[1] {
		accountNos[0], accountNos[1] = accountNos[1], accountNos[0]
	}

	accounts, err := uc.accountRepo.GetByNumbersForUpdate(txCtx, tx, accountNos)
	if err != nil {
		return nil, nil, err
	}

	var sender, recipient *domain.Account
	for _, a := range accounts {
		switch a.AccountNo {
		case fromAccountNo:
			sender = a
		case toAccountNo:
			recipient = a
		}
	}

	if sender == nil {
		return nil, nil, domain.ErrAccountNotFound
	}
	if recipient == nil {
		return nil, nil, domain.ErrRecipientNotFound
	}

	if err := sender.ValidateTransferOut(amount); err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	transferID := uc.idGen.Generate()

	senderBalance := sender.ApplyDebit(amount)
	sentEntry := &domain.Entry{
		ID:           uc.idGen.Generate(),
		AccountNo:    fromAccountNo,
		Amount:       amount,
		BalanceAfter: senderBalance,
		Kind:         domain.TransactionTransferSent,
		TransferID:   transferID,
		CreatedAt:    now,
	}

	recipientBalance := recipient.ApplyCredit(amount)
	receivedEntry := &domain.Entry{
		ID:           uc.idGen.Generate(),
		AccountNo:    toAccountNo,
		Amount:       amount,
		BalanceAfter: recipientBalance,
		Kind:         domain.TransactionTransferReceived,
		TransferID:   transferID,
		CreatedAt:    now,
	}

	if err := uc.entryRepo.Create(txCtx, tx, sentEntry); err != nil {
		return nil, nil, err
	}
	if err := uc.entryRepo.Create(txCtx, tx, receivedEntry); err != nil {
		return nil, nil, err
	}

	if err := uc.accountRepo.UpdateBalance(txCtx, tx, fromAccountNo, senderBalance, now); err != nil {
		return nil, nil, err
	}
	if err := uc.accountRepo.UpdateBalance(txCtx, tx, toAccountNo, recipientBalance, now); err != nil {
		return nil, nil, err
	}

	if err := uc.appendTransferEvent(txCtx, tx, sender, recipient, sentEntry, domain.EventTypeTransferSent, now); err != nil {
		return nil, nil, err
	}
	if err := uc.appendTransferEvent(txCtx, tx, recipient, sender, receivedEntry, domain.EventTypeTransferReceived, now); err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, nil, err
	}

	return sentEntry, receivedEntry, nil
}

func (uc *OperationUseCase) appendTransactionEvent(
	ctx context.Context,
	tx Transaction,
	account *domain.Account,
	entry *domain.Entry,
	eventType string,
	now time.Time,
) error {
	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   entry.ID,
		AggregateType: domain.AggregateTypeEntry,
		EventType:     eventType,
		Payload: &domain.TransactionEvent{
			UserID:    account.UserID,
			AccountNo: account.AccountNo,
			Amount:    entry.Amount.String(),
			Kind:      string(entry.Kind),
			EntryID:   entry.ID,
		},
		CreatedAt: now,
		Published: false,
	}

	return uc.outboxRepo.Create(ctx, tx, event)
}

func (uc *OperationUseCase) appendTransferEvent(
	ctx context.Context,
	tx Transaction,
	account, counterparty *domain.Account,
	entry *domain.Entry,
	eventType string,
	now time.Time,
) error {
	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   entry.ID,
		AggregateType: domain.AggregateTypeEntry,
		EventType:     eventType,
		Payload: &domain.TransferEvent{
			UserID:             account.UserID,
			AccountNo:          account.AccountNo,
			CounterpartyUserID: counterparty.UserID,
			CounterpartyNo:     counterparty.AccountNo,
			Amount:             entry.Amount.String(),
			Kind:               string(entry.Kind),
			TransferID:         entry.TransferID,
		},
		CreatedAt: now,
		Published: false,
	}

	return uc.outboxRepo.Create(ctx, tx, event)
}
