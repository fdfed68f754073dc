package memory

import (
	"context"

	"github.com/bcsbank/restbank/internal/domain"
	"github.com/bcsbank/restbank/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository over
// the in-memory store. Records are append-only; nothing here mutates
// or removes a written record.
type TransactionRepository struct {
	store *Store
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(store *Store) *TransactionRepository {
	return &TransactionRepository{store: store}
}

// NextID returns the counter value the next record will take.
func (r *TransactionRepository) NextID(ctx context.Context, tx usecase.Tx) (int, error) {
	st, err := asStoreTx(tx)
	if err != nil {
		return 0, err
	}

	return st.nextTxID, nil
}

// IncrementID advances the counter. Committing the transaction makes
// the advance permanent, so ids of committed records are never reused.
func (r *TransactionRepository) IncrementID(ctx context.Context, tx usecase.Tx) error {
	st, err := asStoreTx(tx)
	if err != nil {
		return err
	}

	st.nextTxID++
	return nil
}

// Append stages a record for the transaction log.
func (r *TransactionRepository) Append(ctx context.Context, tx usecase.Tx, record *domain.Transaction) error {
	st, err := asStoreTx(tx)
	if err != nil {
		return err
	}

	st.records = append(st.records, cloneRecord(record))
	return nil
}

// GetByID retrieves a record by id.
func (r *TransactionRepository) GetByID(ctx context.Context, id int) (*domain.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, record := range r.store.records {
		if record.ID == id {
			return cloneRecord(record), nil
		}
	}

	return nil, domain.ErrTransactionNotFound
}

// ListByAccount lists records filed under an account, oldest first.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID int, limit, offset int) ([]*domain.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var matched []*domain.Transaction
	for _, record := range r.store.records {
		if record.AccountID == accountID {
			matched = append(matched, record)
		}
	}

	if offset < 0 {
		offset = 0
	}
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}

	out := make([]*domain.Transaction, 0, len(matched))
	for _, record := range matched {
		out = append(out, cloneRecord(record))
	}

	return out, nil
}
