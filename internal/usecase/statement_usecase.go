package usecase

import (
	"context"

	"github.com/bcsbank/restbank/internal/domain"
)

// StatementUseCase answers read-only queries over transaction records.
type StatementUseCase struct {
	txRepo TransactionRepository
}

// NewStatementUseCase creates a new StatementUseCase.
func NewStatementUseCase(txRepo TransactionRepository) *StatementUseCase {
	return &StatementUseCase{txRepo: txRepo}
}

// GetTransaction retrieves a transaction record by id.
func (uc *StatementUseCase) GetTransaction(ctx context.Context, id int) (*domain.Transaction, error) {
	return uc.txRepo.GetByID(ctx, id)
}

// ListByAccountInput represents input for listing records.
type ListByAccountInput struct {
	AccountID int
	Limit     int
	Offset    int
}

// ListByAccount lists the records filed under an account, oldest first.
func (uc *StatementUseCase) ListByAccount(ctx context.Context, input ListByAccountInput) ([]*domain.Transaction, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	if input.Limit > 100 {
		input.Limit = 100
	}

	if input.Offset < 0 {
		input.Offset = 0
	}

	return uc.txRepo.ListByAccount(ctx, input.AccountID, input.Limit, input.Offset)
}
