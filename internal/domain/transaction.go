package domain

import "time"

// TransactionType classifies a transaction. The wire codes are
// single characters inherited from the public API.
type TransactionType string

const (
	TypeNewAccount   TransactionType = "n"
	TypeDeposit      TransactionType = "d"
	TypeWithdrawal   TransactionType = "w"
	TypeSendMoney    TransactionType = "s"
	TypeReceiveMoney TransactionType = "r"
)

// Valid reports whether t is one of the closed set of types.
func (t TransactionType) Valid() bool {
	switch t {
	case TypeNewAccount, TypeDeposit, TypeWithdrawal, TypeSendMoney, TypeReceiveMoney:
		return true
	}
	return false
}

// Describe returns a human-readable name for the type.
func (t TransactionType) Describe() string {
	switch t {
	case TypeNewAccount:
		return "new account"
	case TypeDeposit:
		return "deposit"
	case TypeWithdrawal:
		return "withdrawal"
	case TypeSendMoney:
		return "send money"
	case TypeReceiveMoney:
		return "receive money"
	}
	return "unknown"
}

// Transaction is an immutable record of one balance-affecting event
// for one account. Records are append-only: once written they are
// never edited or deleted, even when the account itself is removed.
type Transaction struct {
	Timestamp      time.Time
	Type           TransactionType
	SenderNumber   string
	ReceiverNumber string
	ID             int
	AccountID      int
	Amount         int64
	// Balance is the filed account's balance after this record applied.
	Balance int64
}
