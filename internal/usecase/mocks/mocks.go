package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bcsbank/restbank/internal/domain"
	"github.com/bcsbank/restbank/internal/usecase"
)

// MockTx is a no-op ledger transaction.
type MockTx struct {
	Committed  bool
	RolledBack bool
}

func (t *MockTx) Commit(ctx context.Context) error {
	t.Committed = true
	return nil
}

func (t *MockTx) Rollback(ctx context.Context) error {
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Tx, error)

	Begun []*MockTx
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Tx, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	tx := &MockTx{}
	m.Begun = append(m.Begun, tx)
	return tx, nil
}

// MockAccountRepository is a mock implementation of AccountRepository.
// The default behavior applies writes directly to the backing map,
// ignoring transaction staging.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[int]*domain.Account
	nextID   int

	CreateFunc               func(ctx context.Context, tx usecase.Tx, account *domain.Account) error
	GetByIDFunc              func(ctx context.Context, id int) (*domain.Account, error)
	GetByNumberFunc          func(ctx context.Context, number string) (*domain.Account, error)
	GetByIDForUpdateFunc     func(ctx context.Context, tx usecase.Tx, id int) (*domain.Account, error)
	GetByNumberForUpdateFunc func(ctx context.Context, tx usecase.Tx, number string) (*domain.Account, error)
	NumberExistsFunc         func(ctx context.Context, tx usecase.Tx, number string) (bool, error)
	UpdateBalanceFunc        func(ctx context.Context, tx usecase.Tx, id int, balance int64, updatedAt time.Time) error
	UpdateOwnerFunc          func(ctx context.Context, tx usecase.Tx, id int, firstName, lastName string, updatedAt time.Time) error
	DeleteFunc               func(ctx context.Context, tx usecase.Tx, id int) error
	ListFunc                 func(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[int]*domain.Account),
		nextID:   1,
	}
}

// Seed inserts an account directly, bypassing any mocked behavior.
func (m *MockAccountRepository) Seed(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	if account.ID >= m.nextID {
		m.nextID = account.ID + 1
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, tx usecase.Tx, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	account.ID = m.nextID
	m.nextID++
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id int) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc, nil
	}
	return nil, &domain.AccountNotFoundError{AccountID: id}
}

func (m *MockAccountRepository) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	if m.GetByNumberFunc != nil {
		return m.GetByNumberFunc(ctx, number)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, acc := range m.accounts {
		if acc.Number == number {
			return acc, nil
		}
	}
	return nil, &domain.AccountNotFoundError{Number: number}
}

func (m *MockAccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Tx, id int) (*domain.Account, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockAccountRepository) GetByNumberForUpdate(ctx context.Context, tx usecase.Tx, number string) (*domain.Account, error) {
	if m.GetByNumberForUpdateFunc != nil {
		return m.GetByNumberForUpdateFunc(ctx, tx, number)
	}
	return m.GetByNumber(ctx, number)
}

func (m *MockAccountRepository) NumberExists(ctx context.Context, tx usecase.Tx, number string) (bool, error) {
	if m.NumberExistsFunc != nil {
		return m.NumberExistsFunc(ctx, tx, number)
	}
	_, err := m.GetByNumber(ctx, number)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Tx, id int, balance int64, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok {
		acc.Balance = balance
		acc.UpdatedAt = updatedAt
	}
	return nil
}

func (m *MockAccountRepository) UpdateOwner(ctx context.Context, tx usecase.Tx, id int, firstName, lastName string, updatedAt time.Time) error {
	if m.UpdateOwnerFunc != nil {
		return m.UpdateOwnerFunc(ctx, tx, id, firstName, lastName, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok {
		acc.FirstName = firstName
		acc.LastName = lastName
		acc.UpdatedAt = updatedAt
	}
	return nil
}

func (m *MockAccountRepository) Delete(ctx context.Context, tx usecase.Tx, id int) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.accounts, id)
	return nil
}

func (m *MockAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, acc := range m.accounts {
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

// MockTransactionRepository is a mock implementation of
// TransactionRepository backed by a slice and a counter.
type MockTransactionRepository struct {
	mu      sync.RWMutex
	records []*domain.Transaction
	counter int

	NextIDFunc        func(ctx context.Context, tx usecase.Tx) (int, error)
	IncrementIDFunc   func(ctx context.Context, tx usecase.Tx) error
	AppendFunc        func(ctx context.Context, tx usecase.Tx, record *domain.Transaction) error
	GetByIDFunc       func(ctx context.Context, id int) (*domain.Transaction, error)
	ListByAccountFunc func(ctx context.Context, accountID int, limit, offset int) ([]*domain.Transaction, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{counter: 1}
}

// Records returns everything appended so far.
func (m *MockTransactionRepository) Records() []*domain.Transaction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Transaction, len(m.records))
	copy(out, m.records)
	return out
}

func (m *MockTransactionRepository) NextID(ctx context.Context, tx usecase.Tx) (int, error) {
	if m.NextIDFunc != nil {
		return m.NextIDFunc(ctx, tx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.counter, nil
}

func (m *MockTransactionRepository) IncrementID(ctx context.Context, tx usecase.Tx) error {
	if m.IncrementIDFunc != nil {
		return m.IncrementIDFunc(ctx, tx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return nil
}

func (m *MockTransactionRepository) Append(ctx context.Context, tx usecase.Tx, record *domain.Transaction) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, tx, record)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, record)
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id int) (*domain.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, record := range m.records {
		if record.ID == id {
			return record, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) ListByAccount(ctx context.Context, accountID int, limit, offset int) ([]*domain.Transaction, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var matched []*domain.Transaction
	for _, record := range m.records {
		if record.AccountID == accountID {
			matched = append(matched, record)
		}
	}
	return matched, nil
}

// MockOutboxRepository is a mock implementation of OutboxRepository.
type MockOutboxRepository struct {
	mu     sync.RWMutex
	events []*domain.OutboxEvent

	CreateFunc          func(ctx context.Context, tx usecase.Tx, event *domain.OutboxEvent) error
	GetUnpublishedFunc  func(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublishedFunc   func(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublishedFunc func(ctx context.Context, before time.Time) error
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

// Events returns everything created so far.
func (m *MockOutboxRepository) Events() []*domain.OutboxEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.OutboxEvent, len(m.events))
	copy(out, m.events)
	return out
}

func (m *MockOutboxRepository) Create(ctx context.Context, tx usecase.Tx, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	if m.GetUnpublishedFunc != nil {
		return m.GetUnpublishedFunc(ctx, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var events []*domain.OutboxEvent
	for _, event := range m.events {
		if event.Published {
			continue
		}
		events = append(events, event)
		if len(events) == limit {
			break
		}
	}
	return events, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	if m.MarkPublishedFunc != nil {
		return m.MarkPublishedFunc(ctx, id, publishedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, event := range m.events {
		if event.ID == id {
			event.Published = true
			t := publishedAt
			event.PublishedAt = &t
		}
	}
	return nil
}

func (m *MockOutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	if m.DeletePublishedFunc != nil {
		return m.DeletePublishedFunc(ctx, before)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.events[:0]
	for _, event := range m.events {
		if event.Published && event.PublishedAt != nil && event.PublishedAt.Before(before) {
			continue
		}
		kept = append(kept, event)
	}
	m.events = kept
	return nil
}

// MockLedgerRepository is a mock implementation of LedgerRepository.
type MockLedgerRepository struct {
	TotalsFunc               func(ctx context.Context) (int, int, int64, error)
	BalancesFunc             func(ctx context.Context) (map[int]int64, error)
	LatestRecordBalancesFunc func(ctx context.Context) (map[int]int64, error)
}

func NewMockLedgerRepository() *MockLedgerRepository {
	return &MockLedgerRepository{}
}

func (m *MockLedgerRepository) Totals(ctx context.Context) (int, int, int64, error) {
	if m.TotalsFunc != nil {
		return m.TotalsFunc(ctx)
	}
	return 0, 0, 0, nil
}

func (m *MockLedgerRepository) Balances(ctx context.Context) (map[int]int64, error) {
	if m.BalancesFunc != nil {
		return m.BalancesFunc(ctx)
	}
	return map[int]int64{}, nil
}

func (m *MockLedgerRepository) LatestRecordBalances(ctx context.Context) (map[int]int64, error) {
	if m.LatestRecordBalancesFunc != nil {
		return m.LatestRecordBalancesFunc(ctx)
	}
	return map[int]int64{}, nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("event-%d", m.counter)
}
