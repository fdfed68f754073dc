// Package testutil wires a complete in-memory bank for integration
// tests: store, repositories and use cases, assembled the same way
// the server main does it.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/bcsbank/restbank/internal/adapter/repository/memory"
	"github.com/bcsbank/restbank/internal/domain"
	"github.com/bcsbank/restbank/internal/usecase"
)

// ExampleAccount returns an unsaved account with a random number,
// fixed owner name and a zero balance.
func ExampleAccount() *domain.Account {
	return &domain.Account{
		Number:    domain.NewAccountNumber(),
		FirstName: "Juss",
		LastName:  "Kolm",
		Balance:   0,
		Locked:    false,
	}
}

// ExampleTransaction returns an unsaved send of 100 with fixed
// counterparties.
func ExampleTransaction() *domain.Transaction {
	return &domain.Transaction{
		AccountID:      123,
		Balance:        1000,
		Amount:         100,
		Type:           domain.TypeSendMoney,
		SenderNumber:   "EE1230",
		ReceiverNumber: "EE4560",
		Timestamp:      time.Now(),
	}
}

// Bank bundles a wired ledger for tests.
type Bank struct {
	Store       *memory.Store
	TxManager   *memory.TxManager
	Accounts    *memory.AccountRepository
	Records     *memory.TransactionRepository
	Ledger      *memory.LedgerRepository
	Outbox      *memory.OutboxRepository
	Engine      *usecase.TransactionUseCase
	AccountUC   *usecase.AccountUseCase
	StatementUC *usecase.StatementUseCase
	LedgerUC    *usecase.LedgerUseCase

	t *testing.T
}

// NewBank wires a fresh ledger.
func NewBank(t *testing.T) *Bank {
	t.Helper()

	store := memory.NewStore()
	txManager := memory.NewTxManager(store)
	accounts := memory.NewAccountRepository(store)
	records := memory.NewTransactionRepository(store)
	ledger := memory.NewLedgerRepository(store)
	outbox := memory.NewOutboxRepository(store)
	idGen := memory.NewULIDGenerator()

	engine := usecase.NewTransactionUseCase(txManager, accounts, records, outbox, idGen)
	accountUC := usecase.NewAccountUseCase(txManager, accounts, outbox, engine, idGen)
	statementUC := usecase.NewStatementUseCase(records)
	ledgerUC := usecase.NewLedgerUseCase(ledger)

	return &Bank{
		Store:       store,
		TxManager:   txManager,
		Accounts:    accounts,
		Records:     records,
		Ledger:      ledger,
		Outbox:      outbox,
		Engine:      engine,
		AccountUC:   accountUC,
		StatementUC: statementUC,
		LedgerUC:    ledgerUC,
		t:           t,
	}
}

// CreateAccount opens an account through the account use case.
func (b *Bank) CreateAccount(ctx context.Context, firstName, lastName string) *domain.Account {
	b.t.Helper()

	account, err := b.AccountUC.CreateAccount(ctx, usecase.CreateAccountInput{
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		b.t.Fatalf("failed to create account: %v", err)
	}

	return account
}

// CreateAccountWithBalance opens an account and deposits an opening
// balance through the engine.
func (b *Bank) CreateAccountWithBalance(ctx context.Context, firstName, lastName string, balance int64) *domain.Account {
	b.t.Helper()

	account := b.CreateAccount(ctx, firstName, lastName)
	if balance == 0 {
		return account
	}

	result := b.Engine.Process(ctx, domain.TransactionRequest{
		Type:      domain.TypeDeposit,
		AccountID: account.ID,
		Amount:    balance,
	})
	if !result.OK() {
		b.t.Fatalf("failed to fund account: %s", result.Err)
	}

	account.Balance = balance
	return account
}

// MustProcess runs a request through the engine and fails the test on
// a classified failure.
func (b *Bank) MustProcess(ctx context.Context, req domain.TransactionRequest) domain.Result {
	b.t.Helper()

	result := b.Engine.Process(ctx, req)
	if !result.OK() {
		b.t.Fatalf("transaction failed: %s", result.Err)
	}

	return result
}
