package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bcsbank/restbank/internal/adapter/http/dto"
	"github.com/bcsbank/restbank/internal/domain"
	"github.com/bcsbank/restbank/internal/usecase"
)

// AccountStatementService lists records filed under an account.
type AccountStatementService interface {
	ListByAccount(ctx context.Context, input usecase.ListByAccountInput) ([]*domain.Transaction, error)
}

// StatementHandler handles per-account statement requests.
type StatementHandler struct {
	statementUC AccountStatementService
}

// NewStatementHandler creates a new StatementHandler.
func NewStatementHandler(statementUC AccountStatementService) *StatementHandler {
	return &StatementHandler{statementUC: statementUC}
}

// ListByAccount lists the records filed under an account.
func (h *StatementHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid account ID", chi.URLParam(r, "id"))
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	records, err := h.statementUC.ListByAccount(r.Context(), usecase.ListByAccountInput{
		AccountID: id,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(records))
}
