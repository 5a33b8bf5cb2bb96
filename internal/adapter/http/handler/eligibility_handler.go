package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/kesbank/savings-eligibility/internal/adapter/http/dto"
	"github.com/kesbank/savings-eligibility/internal/adapter/http/middleware"
	"github.com/kesbank/savings-eligibility/internal/domain"
	"github.com/kesbank/savings-eligibility/internal/infrastructure/metrics"
	"github.com/kesbank/savings-eligibility/internal/usecase"
)

// EligibilityService defines the behavior needed by EligibilityHandler.
type EligibilityService interface {
	Evaluate(ctx context.Context, p domain.ProposedTransaction) (*domain.EligibilityResult, error)
}

// DecisionRecorder records evaluation outcomes in the decision log.
type DecisionRecorder interface {
	Record(ctx context.Context, input usecase.RecordDecisionInput) (*domain.Decision, error)
}

// EligibilityHandler handles evaluation requests.
type EligibilityHandler struct {
	eligibilityUC EligibilityService
	decisions     DecisionRecorder
	metrics       *metrics.Metrics
	logger        zerolog.Logger
}

// NewEligibilityHandler creates a new EligibilityHandler.
func NewEligibilityHandler(eligibilityUC EligibilityService, decisions DecisionRecorder, m *metrics.Metrics, logger zerolog.Logger) *EligibilityHandler {
	return &EligibilityHandler{
		eligibilityUC: eligibilityUC,
		decisions:     decisions,
		metrics:       m,
		logger:        logger,
	}
}

// Evaluate evaluates a proposed transaction. Rejections are 200 responses:
// they are evaluator outcomes, not transport errors. Only an aborted
// evaluation (account service unreachable) is an error status.
func (h *EligibilityHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req dto.EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	proposed, err := req.ToProposed()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid currency", err.Error())
		return
	}

	if !proposed.Kind.IsEvaluable() {
		writeError(w, http.StatusBadRequest, "unsupported transaction kind",
			"kind must be Deposit, Withdrawal, or Transfer")
		return
	}

	start := time.Now()
	result, err := h.eligibilityUC.Evaluate(r.Context(), proposed)
	if err != nil {
		h.metrics.EvaluationErrors.WithLabelValues("accessor_failure").Inc()
		h.logger.Error().Err(err).
			Str("kind", string(proposed.Kind)).
			Str("source_account_number", proposed.SourceAccountNumber).
			Msg("evaluation aborted")
		writeError(w, http.StatusBadGateway, "evaluation unavailable",
			"the account service could not be reached; do not submit the transaction")
		return
	}

	h.metrics.EvaluationDuration.WithLabelValues(string(proposed.Kind)).Observe(time.Since(start).Seconds())
	h.metrics.Evaluations.WithLabelValues(string(proposed.Kind), outcomeLabel(result)).Inc()
	if !result.Eligible {
		h.metrics.Rejections.WithLabelValues(string(result.Reason)).Inc()
	}

	decisionID := h.record(r, proposed, result)

	writeJSON(w, http.StatusOK, dto.EvaluationFromDomain(result, decisionID))
}

// record writes the decision to the audit log. Recording is best-effort: a
// log failure must not turn a computed decision into an error for the teller.
func (h *EligibilityHandler) record(r *http.Request, proposed domain.ProposedTransaction, result *domain.EligibilityResult) string {
	input := usecase.RecordDecisionInput{
		Proposed:  proposed,
		Result:    result,
		RequestID: chimiddleware.GetReqID(r.Context()),
	}

	if principal, ok := middleware.GetPrincipalFromContext(r.Context()); ok {
		input.EvaluatedBy = principal.Email
	}

	decision, err := h.decisions.Record(r.Context(), input)
	if err != nil {
		h.metrics.DBErrors.WithLabelValues("record_decision").Inc()
		h.logger.Error().Err(err).Msg("failed to record decision")
		return ""
	}

	h.metrics.DecisionsRecorded.WithLabelValues(outcomeLabel(result)).Inc()
	return decision.ID
}

func outcomeLabel(result *domain.EligibilityResult) string {
	if result.Eligible {
		return "eligible"
	}
	return "rejected"
}
