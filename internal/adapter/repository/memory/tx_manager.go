package memory

import (
	"context"
	"errors"
	"time"

	"github.com/bcsbank/restbank/internal/domain"
	"github.com/bcsbank/restbank/internal/usecase"
)

// ErrTxClosed is returned when a Tx is used after Commit or Rollback.
var ErrTxClosed = errors.New("ledger transaction already closed")

// TxManager hands out exclusive ledger transactions. Begin blocks
// until the ledger lock is free; it is not reentrant.
type TxManager struct {
	store *Store
}

// NewTxManager creates a new TxManager over the store.
func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

// Begin acquires exclusive access to the ledger.
func (m *TxManager) Begin(ctx context.Context) (usecase.Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.store.mu.Lock()

	return &storeTx{
		store:         m.store,
		balances:      make(map[int]balanceUpdate),
		owners:        make(map[int]ownerUpdate),
		nextAccountID: m.store.nextAccountID,
		nextTxID:      m.store.nextTxID,
	}, nil
}

type balanceUpdate struct {
	updatedAt time.Time
	balance   int64
}

type ownerUpdate struct {
	updatedAt time.Time
	firstName string
	lastName  string
}

// storeTx stages writes against the store while holding its lock.
type storeTx struct {
	store         *Store
	balances      map[int]balanceUpdate
	owners        map[int]ownerUpdate
	created       []*domain.Account
	deleted       []int
	records       []*domain.Transaction
	events        []*domain.OutboxEvent
	nextAccountID int
	nextTxID      int
	closed        bool
}

// Commit applies all staged writes and releases the ledger lock.
func (tx *storeTx) Commit(ctx context.Context) error {
	if tx.closed {
		return ErrTxClosed
	}
	tx.closed = true
	defer tx.store.mu.Unlock()

	s := tx.store

	for _, a := range tx.created {
		s.accounts[a.ID] = cloneAccount(a)
		s.byNumber[a.Number] = a.ID
	}

	for id, u := range tx.owners {
		if a, ok := s.accounts[id]; ok {
			a.FirstName = u.firstName
			a.LastName = u.lastName
			a.UpdatedAt = u.updatedAt
		}
	}

	for id, u := range tx.balances {
		if a, ok := s.accounts[id]; ok {
			a.Balance = u.balance
			a.UpdatedAt = u.updatedAt
		}
	}

	for _, id := range tx.deleted {
		if a, ok := s.accounts[id]; ok {
			delete(s.byNumber, a.Number)
			delete(s.accounts, id)
		}
	}

	s.records = append(s.records, tx.records...)
	s.outbox = append(s.outbox, tx.events...)
	s.nextAccountID = tx.nextAccountID
	s.nextTxID = tx.nextTxID

	return nil
}

// Rollback discards staged writes and releases the ledger lock.
// Calling it after Commit is a no-op, so it can stay deferred.
func (tx *storeTx) Rollback(ctx context.Context) error {
	if tx.closed {
		return nil
	}
	tx.closed = true
	tx.store.mu.Unlock()

	return nil
}

// stagedAccount resolves an id against staged creations first, then
// committed state, honoring staged deletes and balance updates.
func (tx *storeTx) stagedAccount(id int) (*domain.Account, bool) {
	for _, d := range tx.deleted {
		if d == id {
			return nil, false
		}
	}

	var found *domain.Account
	for _, a := range tx.created {
		if a.ID == id {
			found = a
			break
		}
	}
	if found == nil {
		committed, ok := tx.store.accounts[id]
		if !ok {
			return nil, false
		}
		found = committed
	}

	out := cloneAccount(found)
	if u, ok := tx.balances[id]; ok {
		out.Balance = u.balance
		out.UpdatedAt = u.updatedAt
	}
	if u, ok := tx.owners[id]; ok {
		out.FirstName = u.firstName
		out.LastName = u.lastName
		out.UpdatedAt = u.updatedAt
	}

	return out, true
}

// stagedNumber resolves an account number the same way.
func (tx *storeTx) stagedNumber(number string) (*domain.Account, bool) {
	for _, a := range tx.created {
		if a.Number == number {
			return tx.stagedAccount(a.ID)
		}
	}

	committed, ok := tx.store.lookupNumber(number)
	if !ok {
		return nil, false
	}

	return tx.stagedAccount(committed.ID)
}

func asStoreTx(tx usecase.Tx) (*storeTx, error) {
	st, ok := tx.(*storeTx)
	if !ok || st == nil {
		return nil, errors.New("memory: foreign transaction handle")
	}
	if st.closed {
		return nil, ErrTxClosed
	}
	return st, nil
}
