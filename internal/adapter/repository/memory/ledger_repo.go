package memory

import "context"

// LedgerRepository implements usecase.LedgerRepository with
// whole-ledger snapshot reads.
type LedgerRepository struct {
	store *Store
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(store *Store) *LedgerRepository {
	return &LedgerRepository{store: store}
}

// Totals returns account count, record count and summed balance in one
// consistent snapshot.
func (r *LedgerRepository) Totals(ctx context.Context) (accounts, transactions int, totalBalance int64, err error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, a := range r.store.accounts {
		totalBalance += a.Balance
	}

	return len(r.store.accounts), len(r.store.records), totalBalance, nil
}

// Balances returns the current balance per existing account id.
func (r *LedgerRepository) Balances(ctx context.Context) (map[int]int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	balances := make(map[int]int64, len(r.store.accounts))
	for id, a := range r.store.accounts {
		balances[id] = a.Balance
	}

	return balances, nil
}

// LatestRecordBalances returns the post-application balance on the
// most recent record per account. Records are stored in id order, so
// the last match wins.
func (r *LedgerRepository) LatestRecordBalances(ctx context.Context) (map[int]int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	latest := make(map[int]int64)
	for _, record := range r.store.records {
		latest[record.AccountID] = record.Balance
	}

	return latest, nil
}
