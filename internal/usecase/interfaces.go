package usecase

import (
	"context"
	"time"

	"github.com/bcsbank/restbank/internal/domain"
)

// AccountRepository defines data access for accounts.
//
// Methods taking a Tx run inside an open ledger transaction and expect
// the ledger lock to be held; the remaining methods are self-locking
// snapshot reads/writes for callers outside the engine.
type AccountRepository interface {
	Create(ctx context.Context, tx Tx, account *domain.Account) error
	GetByID(ctx context.Context, id int) (*domain.Account, error)
	GetByNumber(ctx context.Context, number string) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx Tx, id int) (*domain.Account, error)
	GetByNumberForUpdate(ctx context.Context, tx Tx, number string) (*domain.Account, error)
	NumberExists(ctx context.Context, tx Tx, number string) (bool, error)
	UpdateBalance(ctx context.Context, tx Tx, id int, balance int64, updatedAt time.Time) error
	UpdateOwner(ctx context.Context, tx Tx, id int, firstName, lastName string, updatedAt time.Time) error
	Delete(ctx context.Context, tx Tx, id int) error
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

// TransactionRepository defines data access for transaction records
// and the ledger-wide id counter.
type TransactionRepository interface {
	// NextID returns the current counter value without consuming it.
	NextID(ctx context.Context, tx Tx) (int, error)
	// IncrementID advances the counter past the value NextID returned.
	IncrementID(ctx context.Context, tx Tx) error
	Append(ctx context.Context, tx Tx, record *domain.Transaction) error
	GetByID(ctx context.Context, id int) (*domain.Transaction, error)
	ListByAccount(ctx context.Context, accountID int, limit, offset int) ([]*domain.Transaction, error)
}

// LedgerRepository defines ledger-wide queries.
type LedgerRepository interface {
	// Totals returns the account count, record count and summed balance
	// across all accounts, read in one consistent snapshot.
	Totals(ctx context.Context) (accounts, transactions int, totalBalance int64, err error)
	// Balances returns the current balance per existing account id.
	Balances(ctx context.Context) (map[int]int64, error)
	// LatestRecordBalances returns, per account id, the post-application
	// balance on the most recent record filed under that account.
	LatestRecordBalances(ctx context.Context) (map[int]int64, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Tx, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// Tx represents an open ledger transaction. Writes made through a Tx
// become visible only on Commit; Rollback discards them. Rollback
// after Commit is a no-op, so callers can keep it deferred.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles ledger transaction lifecycle. Begin takes
// exclusive access to the whole ledger and is not reentrant: a caller
// holding an open Tx must not Begin another.
type TransactionManager interface {
	Begin(ctx context.Context) (Tx, error)
}

// IDGenerator generates unique IDs for outbox events.
type IDGenerator interface {
	Generate() string
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
