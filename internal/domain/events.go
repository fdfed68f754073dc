package domain

import "time"

// Event types
const (
	EventTypeTransactionCreated = "transaction.created"
	EventTypeAccountCreated     = "account.created"
	EventTypeAccountDeleted     = "account.deleted"
)

// Aggregate types
const (
	AggregateTypeTransaction = "transaction"
	AggregateTypeAccount     = "account"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// TransactionCreatedEvent payload
type TransactionCreatedEvent struct {
	TransactionID   int    `json:"transaction_id"`
	AccountID       int    `json:"account_id"`
	TransactionType string `json:"transaction_type"`
	Amount          int64  `json:"amount"`
	Balance         int64  `json:"balance"`
}

// AccountCreatedEvent payload
type AccountCreatedEvent struct {
	AccountID     int    `json:"account_id"`
	AccountNumber string `json:"account_number"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
}

// AccountDeletedEvent payload
type AccountDeletedEvent struct {
	AccountID     int    `json:"account_id"`
	AccountNumber string `json:"account_number"`
}
