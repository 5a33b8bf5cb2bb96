package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kesbank/savings-eligibility/internal/adapter/http/dto"
	"github.com/kesbank/savings-eligibility/internal/domain"
	"github.com/kesbank/savings-eligibility/internal/usecase"
)

// DecisionService defines the behavior needed by DecisionHandler.
type DecisionService interface {
	GetDecision(ctx context.Context, id string) (*domain.Decision, error)
	ListDecisions(ctx context.Context, input usecase.ListDecisionsInput) ([]*domain.Decision, error)
}

// DecisionHandler serves the decision audit log.
type DecisionHandler struct {
	decisionUC DecisionService
}

// NewDecisionHandler creates a new DecisionHandler.
func NewDecisionHandler(decisionUC DecisionService) *DecisionHandler {
	return &DecisionHandler{decisionUC: decisionUC}
}

// Get retrieves a decision by ID.
func (h *DecisionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing decision ID", "")
		return
	}

	decision, err := h.decisionUC.GetDecision(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get decision", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.DecisionFromDomain(decision))
}

// List lists decisions with filtering and pagination.
func (h *DecisionHandler) List(w http.ResponseWriter, r *http.Request) {
	input := usecase.ListDecisionsInput{
		AccountNumber: r.URL.Query().Get("account_number"),
		RejectedOnly:  r.URL.Query().Get("rejected_only") == "true",
		Limit:         parseIntQuery(r, "limit", 20),
		Offset:        parseIntQuery(r, "offset", 0),
	}

	if kind := r.URL.Query().Get("kind"); kind != "" {
		input.Kind = domain.NormalizeTransactionKind(kind)
	}

	decisions, err := h.decisionUC.ListDecisions(r.Context(), input)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list decisions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"decisions": dto.DecisionsFromDomain(decisions),
		"count":     len(decisions),
	})
}
