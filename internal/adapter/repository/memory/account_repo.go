package memory

import (
	"context"
	"sort"
	"time"

	"github.com/bcsbank/restbank/internal/domain"
	"github.com/bcsbank/restbank/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository over the
// in-memory store.
type AccountRepository struct {
	store *Store
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(store *Store) *AccountRepository {
	return &AccountRepository{store: store}
}

// Create assigns the next account id and stages the insert.
func (r *AccountRepository) Create(ctx context.Context, tx usecase.Tx, account *domain.Account) error {
	st, err := asStoreTx(tx)
	if err != nil {
		return err
	}

	if !domain.ValidAccountNumber(account.Number) {
		return domain.ErrInvalidAccountNumber
	}
	if _, taken := st.stagedNumber(account.Number); taken {
		return domain.ErrAccountNumberTaken
	}

	account.ID = st.nextAccountID
	st.nextAccountID++
	st.created = append(st.created, cloneAccount(account))

	return nil
}

// GetByID returns a copy of the account, outside any transaction.
func (r *AccountRepository) GetByID(ctx context.Context, id int) (*domain.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	account, ok := r.store.accounts[id]
	if !ok {
		return nil, &domain.AccountNotFoundError{AccountID: id}
	}

	return cloneAccount(account), nil
}

// GetByNumber returns a copy of the account, outside any transaction.
func (r *AccountRepository) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	account, ok := r.store.lookupNumber(number)
	if !ok {
		return nil, &domain.AccountNotFoundError{Number: number}
	}

	return cloneAccount(account), nil
}

// GetByIDForUpdate reads an account inside an open transaction,
// seeing staged writes.
func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Tx, id int) (*domain.Account, error) {
	st, err := asStoreTx(tx)
	if err != nil {
		return nil, err
	}

	account, ok := st.stagedAccount(id)
	if !ok {
		return nil, &domain.AccountNotFoundError{AccountID: id}
	}

	return account, nil
}

// GetByNumberForUpdate reads an account by number inside an open
// transaction, seeing staged writes.
func (r *AccountRepository) GetByNumberForUpdate(ctx context.Context, tx usecase.Tx, number string) (*domain.Account, error) {
	st, err := asStoreTx(tx)
	if err != nil {
		return nil, err
	}

	account, ok := st.stagedNumber(number)
	if !ok {
		return nil, &domain.AccountNotFoundError{Number: number}
	}

	return account, nil
}

// NumberExists reports whether an account number is in use, staged
// creations included.
func (r *AccountRepository) NumberExists(ctx context.Context, tx usecase.Tx, number string) (bool, error) {
	st, err := asStoreTx(tx)
	if err != nil {
		return false, err
	}

	_, ok := st.stagedNumber(number)
	return ok, nil
}

// UpdateBalance stages a balance write for an existing account.
func (r *AccountRepository) UpdateBalance(ctx context.Context, tx usecase.Tx, id int, balance int64, updatedAt time.Time) error {
	st, err := asStoreTx(tx)
	if err != nil {
		return err
	}

	if _, ok := st.stagedAccount(id); !ok {
		return &domain.AccountNotFoundError{AccountID: id}
	}

	st.balances[id] = balanceUpdate{balance: balance, updatedAt: updatedAt}
	return nil
}

// UpdateOwner stages an owner-name write for an existing account.
func (r *AccountRepository) UpdateOwner(ctx context.Context, tx usecase.Tx, id int, firstName, lastName string, updatedAt time.Time) error {
	st, err := asStoreTx(tx)
	if err != nil {
		return err
	}

	if _, ok := st.stagedAccount(id); !ok {
		return &domain.AccountNotFoundError{AccountID: id}
	}

	st.owners[id] = ownerUpdate{firstName: firstName, lastName: lastName, updatedAt: updatedAt}
	return nil
}

// Delete stages removal of an account. Records filed under it stay.
func (r *AccountRepository) Delete(ctx context.Context, tx usecase.Tx, id int) error {
	st, err := asStoreTx(tx)
	if err != nil {
		return err
	}

	if _, ok := st.stagedAccount(id); !ok {
		return &domain.AccountNotFoundError{AccountID: id}
	}

	st.deleted = append(st.deleted, id)
	return nil
}

// List returns accounts ordered by id with pagination.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	ids := make([]int, 0, len(r.store.accounts))
	for id := range r.store.accounts {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	if offset < 0 {
		offset = 0
	}
	if offset >= len(ids) {
		return nil, nil
	}
	ids = ids[offset:]
	if limit < len(ids) {
		ids = ids[:limit]
	}

	accounts := make([]*domain.Account, 0, len(ids))
	for _, id := range ids {
		accounts = append(accounts, cloneAccount(r.store.accounts[id]))
	}

	return accounts, nil
}
