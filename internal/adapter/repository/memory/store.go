// Package memory implements the ledger store: accounts, transaction
// records, the id counter and the event outbox for one bank instance,
// held entirely in process memory.
//
// A single mutex serializes every ledger transaction. Begin acquires
// it, Commit/Rollback release it, so a check-then-act sequence such as
// a withdrawal's sufficiency check can never interleave with another
// writer. Writes made through an open Tx are staged and become visible
// only on Commit.
package memory

import (
	"sync"

	"github.com/bcsbank/restbank/internal/domain"
)

// Store holds all state for one ledger.
type Store struct {
	mu            sync.Mutex
	accounts      map[int]*domain.Account
	byNumber      map[string]int
	records       []*domain.Transaction
	outbox        []*domain.OutboxEvent
	nextAccountID int
	nextTxID      int
}

// NewStore creates an empty ledger. Both id counters start at 1.
func NewStore() *Store {
	return &Store{
		accounts:      make(map[int]*domain.Account),
		byNumber:      make(map[string]int),
		nextAccountID: 1,
		nextTxID:      1,
	}
}

func cloneAccount(a *domain.Account) *domain.Account {
	c := *a
	return &c
}

func cloneRecord(r *domain.Transaction) *domain.Transaction {
	c := *r
	return &c
}

// lookupNumber resolves an account number against committed state.
// Caller must hold the store lock.
func (s *Store) lookupNumber(number string) (*domain.Account, bool) {
	id, ok := s.byNumber[number]
	if !ok {
		return nil, false
	}
	return s.accounts[id], true
}
