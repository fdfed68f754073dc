package domain

import (
	"errors"
	"fmt"
)

var (
	// Account errors
	ErrAccountNotFound      = errors.New("account not found")
	ErrAccountNumberTaken   = errors.New("account number already in use")
	ErrInvalidAccountNumber = errors.New("invalid account number format")

	// Transaction errors
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrUnknownTransactionType = errors.New("unknown transaction type")
	ErrAmountOverflow         = errors.New("amount overflows account balance")
	ErrNegativeAmount         = errors.New("amount must not be negative")
	ErrTransactionNotFound    = errors.New("transaction not found")
)

// AccountNotFoundError carries the identifier that failed to resolve:
// either an account id or an account number, depending on the lookup.
type AccountNotFoundError struct {
	Number    string
	AccountID int
}

func (e *AccountNotFoundError) Error() string {
	if e.Number != "" {
		return fmt.Sprintf("no such account in our bank: %s", e.Number)
	}
	return fmt.Sprintf("account ID %d does not exist", e.AccountID)
}

func (e *AccountNotFoundError) Unwrap() error { return ErrAccountNotFound }

// InsufficientFundsError reports a withdrawal or send exceeding the
// available balance.
type InsufficientFundsError struct {
	AccountID int
	Requested int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("not enough money to complete the transaction of %d", e.Requested)
}

func (e *InsufficientFundsError) Unwrap() error { return ErrInsufficientFunds }

// UnknownTransactionTypeError reports a type outside the closed set.
type UnknownTransactionTypeError struct {
	Type TransactionType
}

func (e *UnknownTransactionTypeError) Error() string {
	return fmt.Sprintf("unknown transaction type: %q", string(e.Type))
}

func (e *UnknownTransactionTypeError) Unwrap() error { return ErrUnknownTransactionType }

// AmountOverflowError reports a credit that would overflow the
// account balance. Wraparound is never allowed.
type AmountOverflowError struct {
	AccountID int
	Amount    int64
}

func (e *AmountOverflowError) Error() string {
	return fmt.Sprintf("crediting %d would overflow the balance of account %d", e.Amount, e.AccountID)
}

func (e *AmountOverflowError) Unwrap() error { return ErrAmountOverflow }
