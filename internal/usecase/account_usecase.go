package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bcsbank/restbank/internal/domain"
)

// AccountUseCase handles account lifecycle: creation, owner updates,
// deletion and lookups. Balance mutation stays with the engine.
type AccountUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	outboxRepo  OutboxRepository
	engine      *TransactionUseCase
	idGen       IDGenerator
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	outboxRepo OutboxRepository,
	engine *TransactionUseCase,
	idGen IDGenerator,
) *AccountUseCase {
	return &AccountUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		outboxRepo:  outboxRepo,
		engine:      engine,
		idGen:       idGen,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	FirstName string
	LastName  string
}

// CreateAccount creates an account with a fresh random account number
// and a zero balance, then files its opening record through the engine.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	now := time.Now().UTC()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	number, err := uc.pickNumber(ctx, tx)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		Number:    number,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Balance:   0,
		Locked:    false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.accountRepo.Create(ctx, tx, account); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   fmt.Sprintf("%d", account.ID),
		AggregateType: domain.AggregateTypeAccount,
		EventType:     domain.EventTypeAccountCreated,
		Payload: map[string]any{
			"account_id":     account.ID,
			"account_number": account.Number,
			"first_name":     account.FirstName,
			"last_name":      account.LastName,
		},
		CreatedAt: now,
	}

	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return nil, err
	}

	// Opening record files in the same transaction as the insert, so a
	// committed account always carries its record trail. The engine leg
	// commits.
	result := uc.engine.newAccount(ctx, tx, account)
	if !result.OK() {
		return nil, errors.New(result.Err)
	}

	return account, nil
}

// pickNumber draws random account numbers until one is free.
func (uc *AccountUseCase) pickNumber(ctx context.Context, tx Tx) (string, error) {
	for i := 0; i < MaxNumberAttempts; i++ {
		number := domain.NewAccountNumber()

		taken, err := uc.accountRepo.NumberExists(ctx, tx, number)
		if err != nil {
			return "", err
		}
		if !taken {
			return number, nil
		}
	}

	return "", domain.ErrAccountNumberTaken
}

// UpdateOwnerInput represents input for updating owner details.
type UpdateOwnerInput struct {
	FirstName string
	LastName  string
	AccountID int
}

// UpdateOwnerDetails renames the account owner. Only the name fields
// are touched.
func (uc *AccountUseCase) UpdateOwnerDetails(ctx context.Context, input UpdateOwnerInput) (*domain.Account, error) {
	now := time.Now().UTC()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, input.AccountID)
	if err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateOwner(ctx, tx, input.AccountID, input.FirstName, input.LastName, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	account.FirstName = input.FirstName
	account.LastName = input.LastName
	account.UpdatedAt = now
	return account, nil
}

// DeleteAccount removes the account from the ledger. Its transaction
// records stay behind: the history is append-only.
func (uc *AccountUseCase) DeleteAccount(ctx context.Context, id int) error {
	now := time.Now().UTC()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return err
	}

	if err := uc.accountRepo.Delete(ctx, tx, id); err != nil {
		return err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   fmt.Sprintf("%d", account.ID),
		AggregateType: domain.AggregateTypeAccount,
		EventType:     domain.EventTypeAccountDeleted,
		Payload: map[string]any{
			"account_id":     account.ID,
			"account_number": account.Number,
		},
		CreatedAt: now,
	}

	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id int) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// GetAccountByNumber retrieves an account by its account number.
func (uc *AccountUseCase) GetAccountByNumber(ctx context.Context, number string) (*domain.Account, error) {
	return uc.accountRepo.GetByNumber(ctx, number)
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}
	if input.Limit > 100 {
		input.Limit = 100
	}
	if input.Offset < 0 {
		input.Offset = 0
	}
	return uc.accountRepo.List(ctx, input.Limit, input.Offset)
}
