package handler

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/kesbank/savings-eligibility/internal/domain"
	"github.com/kesbank/savings-eligibility/internal/infrastructure/metrics"
)

// promauto registers against the default registry, so the package shares one
// instance across tests.
var (
	testMetricsOnce sync.Once
	testMetricsInst *metrics.Metrics
)

func testMetrics() *metrics.Metrics {
	testMetricsOnce.Do(func() {
		testMetricsInst = metrics.New()
	})
	return testMetricsInst
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrAccountNotFound, http.StatusNotFound},
		{domain.ErrDecisionNotFound, http.StatusNotFound},
		{fmt.Errorf("lookup: %w", domain.ErrMalformedAccount), http.StatusBadGateway},
		{domain.ErrUnauthorized, http.StatusUnauthorized},
		{domain.ErrInsufficientRole, http.StatusForbidden},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := mapDomainError(tt.err); got != tt.want {
			t.Errorf("mapDomainError(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
