package dto

import (
	"time"

	"github.com/bcsbank/restbank/internal/domain"
	"github.com/bcsbank/restbank/internal/usecase"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	AccountNumber string    `json:"accountNumber"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	ID            int       `json:"id"`
	Balance       int64     `json:"balance"`
	Locked        bool      `json:"locked"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:            a.ID,
		AccountNumber: a.Number,
		FirstName:     a.FirstName,
		LastName:      a.LastName,
		Balance:       a.Balance,
		Locked:        a.Locked,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse wraps an account listing.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// TransactionResponse represents a transaction record in API responses.
type TransactionResponse struct {
	Timestamp             time.Time `json:"timestamp"`
	TransactionType       string    `json:"transactionType"`
	SenderAccountNumber   string    `json:"senderAccountNumber,omitempty"`
	ReceiverAccountNumber string    `json:"receiverAccountNumber,omitempty"`
	ID                    int       `json:"id"`
	AccountID             int       `json:"accountId"`
	Amount                int64     `json:"amount"`
	Balance               int64     `json:"balance"`
}

// TransactionFromDomain converts a domain record to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:                    t.ID,
		AccountID:             t.AccountID,
		TransactionType:       string(t.Type),
		Amount:                t.Amount,
		Balance:               t.Balance,
		SenderAccountNumber:   t.SenderNumber,
		ReceiverAccountNumber: t.ReceiverNumber,
		Timestamp:             t.Timestamp,
	}
}

// TransactionsFromDomain converts domain records to responses.
func TransactionsFromDomain(records []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(records))
	for i, t := range records {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// ResultResponse represents the engine's result on the wire. Exactly
// one of message and error is present.
type ResultResponse struct {
	Message       string `json:"message,omitempty"`
	Error         string `json:"error,omitempty"`
	AccountID     int    `json:"accountId"`
	TransactionID int    `json:"transactionId,omitempty"`
}

// ResultFromDomain converts an engine result to a response.
func ResultFromDomain(r domain.Result) *ResultResponse {
	return &ResultResponse{
		AccountID:     r.AccountID,
		TransactionID: r.TransactionID,
		Message:       r.Message,
		Error:         r.Err,
	}
}

// ConsistencyResponse represents a ledger consistency report.
type ConsistencyResponse struct {
	Status             string `json:"status"`
	MismatchedAccounts []int  `json:"mismatchedAccounts,omitempty"`
	Accounts           int    `json:"accounts"`
	Transactions       int    `json:"transactions"`
	TotalBalance       int64  `json:"totalBalance"`
	Consistent         bool   `json:"consistent"`
}

// ConsistencyFromReport converts a consistency report to a response.
func ConsistencyFromReport(r *usecase.ConsistencyReport) *ConsistencyResponse {
	status := "ok"
	if !r.Consistent {
		status = "inconsistent"
	}
	return &ConsistencyResponse{
		Status:             status,
		MismatchedAccounts: r.Mismatched,
		Accounts:           r.Accounts,
		Transactions:       r.Transactions,
		TotalBalance:       r.TotalBalance,
		Consistent:         r.Consistent,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
