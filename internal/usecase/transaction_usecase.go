package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bcsbank/restbank/internal/domain"
)

// TransactionUseCase is the transaction engine: it validates a
// proposed transaction against current ledger state, derives the
// resulting balance(s), appends the immutable record(s) and mutates
// account state, all inside one ledger transaction.
type TransactionUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	txRepo      TransactionRepository
	outboxRepo  OutboxRepository
	idGen       IDGenerator
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	txRepo TransactionRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
) *TransactionUseCase {
	return &TransactionUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		txRepo:      txRepo,
		outboxRepo:  outboxRepo,
		idGen:       idGen,
	}
}

// Process classifies the request, checks its preconditions, writes the
// record(s) and updates balances. It always returns a Result: every
// classified failure lands in Result.Err with ledger state unchanged.
func (uc *TransactionUseCase) Process(ctx context.Context, req domain.TransactionRequest) domain.Result {
	result := domain.Result{AccountID: req.AccountID}

	if err := req.Validate(); err != nil {
		return result.Fail(err)
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return result.Fail(err)
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, req.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return result.Fail(&domain.AccountNotFoundError{AccountID: req.AccountID})
		}
		return result.Fail(err)
	}

	switch req.Type {
	case domain.TypeNewAccount:
		return uc.newAccount(ctx, tx, account)
	case domain.TypeDeposit:
		return uc.deposit(ctx, tx, account, req.Amount)
	case domain.TypeWithdrawal:
		return uc.withdraw(ctx, tx, account, req.Amount)
	case domain.TypeSendMoney:
		return uc.send(ctx, tx, account, req)
	case domain.TypeReceiveMoney:
		return uc.receive(ctx, tx, req)
	default:
		return result.Fail(&domain.UnknownTransactionTypeError{Type: req.Type})
	}
}

// newAccount files the opening record for a freshly created account.
// Amount and balance are forced to zero, both counterparties stay
// empty; the account balance is untouched.
func (uc *TransactionUseCase) newAccount(ctx context.Context, tx Tx, account *domain.Account) domain.Result {
	result := domain.Result{AccountID: account.ID}

	record := &domain.Transaction{
		AccountID: account.ID,
		Type:      domain.TypeNewAccount,
		Amount:    0,
		Balance:   0,
	}

	id, err := uc.appendRecord(ctx, tx, record)
	if err != nil {
		return result.Fail(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return result.Fail(err)
	}

	result.TransactionID = id
	result.Message = "Successfully added 'new account' transaction"
	return result
}

func (uc *TransactionUseCase) deposit(ctx context.Context, tx Tx, account *domain.Account, amount int64) domain.Result {
	result := domain.Result{AccountID: account.ID}

	if err := account.ValidateCredit(amount); err != nil {
		return result.Fail(err)
	}

	newBalance := account.ApplyCredit(amount)

	record := &domain.Transaction{
		AccountID:      account.ID,
		Type:           domain.TypeDeposit,
		Amount:         amount,
		Balance:        newBalance,
		SenderNumber:   domain.ATM,
		ReceiverNumber: account.Number,
	}

	id, err := uc.applyRecord(ctx, tx, record, account.ID, newBalance)
	if err != nil {
		return result.Fail(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return result.Fail(err)
	}

	result.TransactionID = id
	result.Message = "Successfully made deposit to account " + account.Number
	return result
}

func (uc *TransactionUseCase) withdraw(ctx context.Context, tx Tx, account *domain.Account, amount int64) domain.Result {
	result := domain.Result{AccountID: account.ID}

	if err := account.ValidateDebit(amount); err != nil {
		return result.FailWith(err, fmt.Sprintf("not enough money to complete the withdrawal of %d", amount))
	}

	newBalance := account.ApplyDebit(amount)

	record := &domain.Transaction{
		AccountID:      account.ID,
		Type:           domain.TypeWithdrawal,
		Amount:         amount,
		Balance:        newBalance,
		SenderNumber:   account.Number,
		ReceiverNumber: domain.ATM,
	}

	id, err := uc.applyRecord(ctx, tx, record, account.ID, newBalance)
	if err != nil {
		return result.Fail(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return result.Fail(err)
	}

	result.TransactionID = id
	result.Message = "Successfully made withdrawal from account number " + account.Number
	return result
}

// send debits the sender and, when the receiver number resolves inside
// this ledger, credits the receiver under a second record with its own
// later id. An unresolved receiver is not an error: the debit stands
// and the money leaves the ledger's visible accounting (external
// transfer).
func (uc *TransactionUseCase) send(ctx context.Context, tx Tx, sender *domain.Account, req domain.TransactionRequest) domain.Result {
	result := domain.Result{AccountID: sender.ID}

	if err := sender.ValidateDebit(req.Amount); err != nil {
		return result.FailWith(err, fmt.Sprintf("not enough money to transfer %d", req.Amount))
	}

	var receiver *domain.Account
	if req.ReceiverNumber == sender.Number {
		receiver = sender
	} else {
		found, err := uc.accountRepo.GetByNumberForUpdate(ctx, tx, req.ReceiverNumber)
		switch {
		case err == nil:
			receiver = found
		case errors.Is(err, domain.ErrAccountNotFound):
			// external transfer, sender leg only
		default:
			return result.Fail(err)
		}
	}

	// All preconditions up front so a failure never leaves a lone debit.
	if receiver != nil && receiver != sender {
		if err := receiver.ValidateCredit(req.Amount); err != nil {
			return result.Fail(err)
		}
	}

	senderBalance := sender.ApplyDebit(req.Amount)

	senderRecord := &domain.Transaction{
		AccountID:      sender.ID,
		Type:           domain.TypeSendMoney,
		Amount:         req.Amount,
		Balance:        senderBalance,
		SenderNumber:   sender.Number,
		ReceiverNumber: req.ReceiverNumber,
	}

	id, err := uc.applyRecord(ctx, tx, senderRecord, sender.ID, senderBalance)
	if err != nil {
		return result.Fail(err)
	}
	sender.Balance = senderBalance

	if receiver != nil {
		receiverBalance := receiver.ApplyCredit(req.Amount)

		receiverRecord := &domain.Transaction{
			AccountID:      receiver.ID,
			Type:           domain.TypeReceiveMoney,
			Amount:         req.Amount,
			Balance:        receiverBalance,
			SenderNumber:   sender.Number,
			ReceiverNumber: receiver.Number,
		}

		if _, err := uc.applyRecord(ctx, tx, receiverRecord, receiver.ID, receiverBalance); err != nil {
			return result.Fail(err)
		}
		receiver.Balance = receiverBalance
	}

	if err := tx.Commit(ctx); err != nil {
		return result.Fail(err)
	}

	result.TransactionID = id
	result.Message = "Successfully sent money to account number " + req.ReceiverNumber
	return result
}

// receive credits an incoming transfer from outside the ledger. The
// record is filed under the resolved receiver, with the ATM sentinel
// as the counterparty.
func (uc *TransactionUseCase) receive(ctx context.Context, tx Tx, req domain.TransactionRequest) domain.Result {
	result := domain.Result{AccountID: req.AccountID}

	receiver, err := uc.accountRepo.GetByNumberForUpdate(ctx, tx, req.ReceiverNumber)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return result.Fail(&domain.AccountNotFoundError{Number: req.ReceiverNumber})
		}
		return result.Fail(err)
	}
	result.AccountID = receiver.ID

	if err := receiver.ValidateCredit(req.Amount); err != nil {
		return result.Fail(err)
	}

	newBalance := receiver.ApplyCredit(req.Amount)

	record := &domain.Transaction{
		AccountID:      receiver.ID,
		Type:           domain.TypeReceiveMoney,
		Amount:         req.Amount,
		Balance:        newBalance,
		SenderNumber:   domain.ATM,
		ReceiverNumber: receiver.Number,
	}

	id, err := uc.applyRecord(ctx, tx, record, receiver.ID, newBalance)
	if err != nil {
		return result.Fail(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return result.Fail(err)
	}

	result.TransactionID = id
	result.Message = fmt.Sprintf("Transaction completed. %s received %d", receiver.Number, req.Amount)
	return result
}

// appendRecord allocates the next transaction id, stamps and appends
// the record, advances the counter and queues the outbox event.
// Record before balance: the append is the source of truth.
func (uc *TransactionUseCase) appendRecord(ctx context.Context, tx Tx, record *domain.Transaction) (int, error) {
	id, err := uc.txRepo.NextID(ctx, tx)
	if err != nil {
		return 0, err
	}

	record.ID = id
	record.Timestamp = time.Now().UTC()

	if err := uc.txRepo.Append(ctx, tx, record); err != nil {
		return 0, err
	}

	if err := uc.txRepo.IncrementID(ctx, tx); err != nil {
		return 0, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   fmt.Sprintf("%d", id),
		AggregateType: domain.AggregateTypeTransaction,
		EventType:     domain.EventTypeTransactionCreated,
		Payload: map[string]any{
			"transaction_id":   id,
			"account_id":       record.AccountID,
			"transaction_type": string(record.Type),
			"amount":           record.Amount,
			"balance":          record.Balance,
		},
		CreatedAt: record.Timestamp,
	}

	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return 0, err
	}

	return id, nil
}

// applyRecord appends one record and then mutates the account balance,
// in that order.
func (uc *TransactionUseCase) applyRecord(ctx context.Context, tx Tx, record *domain.Transaction, accountID int, balance int64) (int, error) {
	id, err := uc.appendRecord(ctx, tx, record)
	if err != nil {
		return 0, err
	}

	if err := uc.accountRepo.UpdateBalance(ctx, tx, accountID, balance, record.Timestamp); err != nil {
		return 0, err
	}

	return id, nil
}
