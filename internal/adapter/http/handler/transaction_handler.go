package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bcsbank/restbank/internal/adapter/http/dto"
	"github.com/bcsbank/restbank/internal/domain"
	"github.com/bcsbank/restbank/internal/infrastructure/metrics"
)

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	Process(ctx context.Context, req domain.TransactionRequest) domain.Result
}

// StatementService defines read access to transaction records.
type StatementService interface {
	GetTransaction(ctx context.Context, id int) (*domain.Transaction, error)
}

// TransactionHandler handles transaction-related HTTP requests.
type TransactionHandler struct {
	engine    TransactionService
	statement StatementService
	metrics   *metrics.Metrics
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(engine TransactionService, statement StatementService, m *metrics.Metrics) *TransactionHandler {
	return &TransactionHandler{engine: engine, statement: statement, metrics: m}
}

// Create runs a transaction through the engine. The engine result is
// the response body either way; the status code classifies failures.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result := h.engine.Process(r.Context(), req.ToDomain())

	if h.metrics != nil {
		h.metrics.ObserveTransaction(req.TransactionType, result.OK(), req.Amount)
	}

	if !result.OK() {
		writeJSON(w, mapDomainError(result.Cause), dto.ResultFromDomain(result))
		return
	}

	writeJSON(w, http.StatusCreated, dto.ResultFromDomain(result))
}

// Get retrieves a transaction record by id.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid transaction ID", chi.URLParam(r, "id"))
		return
	}

	record, err := h.statement.GetTransaction(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get transaction", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(record))
}
