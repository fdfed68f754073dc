package dto

import (
	"github.com/bcsbank/restbank/internal/domain"
	"github.com/bcsbank/restbank/internal/usecase"
)

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
	}
}

// UpdateOwnerRequest represents a request to rename the account owner.
type UpdateOwnerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateOwnerRequest) ToUseCaseInput(accountID int) usecase.UpdateOwnerInput {
	return usecase.UpdateOwnerInput{
		AccountID: accountID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
	}
}

// TransactionRequest represents a proposed transaction.
type TransactionRequest struct {
	TransactionType       string `json:"transactionType"`
	SenderAccountNumber   string `json:"senderAccountNumber,omitempty"`
	ReceiverAccountNumber string `json:"receiverAccountNumber,omitempty"`
	AccountID             int    `json:"accountId"`
	Amount                int64  `json:"amount"`
}

// ToDomain converts to the engine's request type.
func (r *TransactionRequest) ToDomain() domain.TransactionRequest {
	return domain.TransactionRequest{
		AccountID:      r.AccountID,
		Type:           domain.TransactionType(r.TransactionType),
		Amount:         r.Amount,
		SenderNumber:   r.SenderAccountNumber,
		ReceiverNumber: r.ReceiverAccountNumber,
	}
}
