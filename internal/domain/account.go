package domain

import (
	"math"
	"time"
)

// Account represents a bank account holding a minor-unit balance.
// Locked is reserved for a future lockout feature; the transaction
// engine does not consult it yet.
type Account struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	Number    string
	FirstName string
	LastName  string
	ID        int
	Balance   int64
	Locked    bool
}

// HasAtLeast reports whether the account holds at least amount.
// This is the single funds-sufficiency gate for withdrawals and sends.
func (a *Account) HasAtLeast(amount int64) bool {
	return a.Balance >= amount
}

// ValidateDebit checks if the account can be debited by amount
// without going negative.
func (a *Account) ValidateDebit(amount int64) error {
	if !a.HasAtLeast(amount) {
		return &InsufficientFundsError{AccountID: a.ID, Requested: amount}
	}
	return nil
}

// ValidateCredit checks if crediting amount would overflow the balance.
func (a *Account) ValidateCredit(amount int64) error {
	if amount > math.MaxInt64-a.Balance {
		return &AmountOverflowError{AccountID: a.ID, Amount: amount}
	}
	return nil
}

// ApplyDebit returns the balance after a debit of amount.
func (a *Account) ApplyDebit(amount int64) int64 {
	return a.Balance - amount
}

// ApplyCredit returns the balance after a credit of amount.
func (a *Account) ApplyCredit(amount int64) int64 {
	return a.Balance + amount
}
