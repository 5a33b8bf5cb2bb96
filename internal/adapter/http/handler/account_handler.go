package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kesbank/savings-eligibility/internal/adapter/http/dto"
	"github.com/kesbank/savings-eligibility/internal/domain"
	"github.com/kesbank/savings-eligibility/internal/usecase"
)

// AccountHandler serves account snapshot lookups. It is a passthrough to the
// account service; nothing is cached.
type AccountHandler struct {
	accounts usecase.AccountReader
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accounts usecase.AccountReader) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// Get retrieves a fresh account snapshot by number.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")
	if len(number) != domain.AccountNumberLength {
		writeError(w, http.StatusBadRequest, "invalid account number",
			"account number must be exactly 12 characters")
		return
	}

	snapshot, err := h.accounts.GetByNumber(r.Context(), number)
	if err != nil {
		status := mapDomainError(err)
		if status == http.StatusInternalServerError {
			status = http.StatusBadGateway
		}
		writeError(w, status, "failed to get account", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(snapshot))
}
