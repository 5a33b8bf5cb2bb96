// Package accountapi is the read-side adapter for the core-banking account
// service. It serves the evaluator's two lookups: account snapshots, which
// fail closed, and posted period totals, which fail open by mapping every
// failure to domain.ErrAggregateUnavailable.
package accountapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/kesbank/savings-eligibility/internal/domain"
)

// Config holds client configuration.
type Config struct {
	BaseURL          string
	APIKey           string
	Timeout          time.Duration
	AggregateTimeout time.Duration
	MaxRetries       int
	InitialInterval  time.Duration
	MaxInterval      time.Duration
	MaxElapsedTime   time.Duration
}

// Client talks to the account service over HTTP. It implements
// usecase.AccountReader and usecase.AggregateReader.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     zerolog.Logger

	aggregateTimeout time.Duration
	maxRetries       int
	initialInterval  time.Duration
	maxInterval      time.Duration
	maxElapsedTime   time.Duration
}

// NewClient creates a new account service client.
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.AggregateTimeout <= 0 {
		cfg.AggregateTimeout = 3 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.InitialInterval <= 0 {
		cfg.InitialInterval = 50 * time.Millisecond
	}
	if cfg.MaxInterval <= 0 {
		cfg.MaxInterval = 1 * time.Second
	}
	if cfg.MaxElapsedTime <= 0 {
		cfg.MaxElapsedTime = 5 * time.Second
	}

	return &Client{
		baseURL:          cfg.BaseURL,
		apiKey:           cfg.APIKey,
		httpClient:       &http.Client{Timeout: cfg.Timeout},
		logger:           logger.With().Str("component", "accountapi").Logger(),
		aggregateTimeout: cfg.AggregateTimeout,
		maxRetries:       cfg.MaxRetries,
		initialInterval:  cfg.InitialInterval,
		maxInterval:      cfg.MaxInterval,
		maxElapsedTime:   cfg.MaxElapsedTime,
	}
}

// GetByNumber fetches a fresh account snapshot. A 404 becomes
// domain.ErrAccountNotFound; any other failure is returned as-is so the
// caller aborts the evaluation.
func (c *Client) GetByNumber(ctx context.Context, accountNumber string) (*domain.AccountSnapshot, error) {
	endpoint := fmt.Sprintf("%s/accounts/%s", c.baseURL, url.PathEscape(accountNumber))

	body, err := c.getWithRetry(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	snapshot, err := decodeAccountPayload(body)
	if err != nil {
		return nil, err
	}

	return snapshot, nil
}

// Total fetches the posted total for one account, kind, and period. Every
// failure, including malformed responses, maps to
// domain.ErrAggregateUnavailable so the evaluator can skip the check.
// Totals get a single attempt under a short deadline; the evaluator would
// rather skip the limit check than stall the teller behind retries.
func (c *Client) Total(ctx context.Context, accountNumber string, kind domain.TransactionKind, period domain.AggregatePeriod, referenceDate time.Time) (decimal.Decimal, error) {
	query := url.Values{}
	query.Set("kind", string(kind))
	query.Set("period", string(period))
	query.Set("date", referenceDate.Format("2006-01-02"))

	endpoint := fmt.Sprintf("%s/accounts/%s/transactions/total?%s",
		c.baseURL, url.PathEscape(accountNumber), query.Encode())

	ctx, cancel := context.WithTimeout(ctx, c.aggregateTimeout)
	defer cancel()

	body, err := c.get(ctx, endpoint)
	if err != nil {
		c.logger.Warn().Err(err).
			Str("account_number", accountNumber).
			Str("kind", string(kind)).
			Str("period", string(period)).
			Msg("aggregate total unavailable")
		return decimal.Zero, fmt.Errorf("%w: %w", domain.ErrAggregateUnavailable, err)
	}

	var payload struct {
		Total json.Number `json:"total"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return decimal.Zero, fmt.Errorf("%w: decode total: %w", domain.ErrAggregateUnavailable, err)
	}

	total, err := decimal.NewFromString(payload.Total.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: parse total %q: %w", domain.ErrAggregateUnavailable, payload.Total, err)
	}

	return total, nil
}

// Ping checks reachability of the account service for readiness probes.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("account service unhealthy: status %d", resp.StatusCode)
	}
	return nil
}

// getWithRetry performs a GET with exponential backoff. Transport failures
// and 5xx responses are retried; 4xx responses are permanent.
func (c *Client) getWithRetry(ctx context.Context, endpoint string) ([]byte, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.initialInterval
	b.MaxInterval = c.maxInterval
	b.MaxElapsedTime = c.maxElapsedTime

	var body []byte
	retryCount := 0

	err := backoff.Retry(func() error {
		var err error
		body, err = c.get(ctx, endpoint)
		if err == nil {
			return nil
		}

		if !isRetryable(err) {
			return backoff.Permanent(err)
		}

		retryCount++
		if retryCount > c.maxRetries {
			return backoff.Permanent(err)
		}

		c.logger.Warn().Err(err).
			Int("retry", retryCount).
			Str("endpoint", endpoint).
			Msg("retrying account service request")

		return err
	}, backoff.WithContext(b, ctx))

	return body, err
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &transientError{err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, &transientError{err: err}
		}
		return body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrAccountNotFound
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, &transientError{err: fmt.Errorf("account service returned status %d", resp.StatusCode)}
	default:
		return nil, fmt.Errorf("account service returned status %d", resp.StatusCode)
	}
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

// transientError marks failures worth retrying.
type transientError struct {
	err error
}

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

func isRetryable(err error) bool {
	var te *transientError
	return errors.As(err, &te)
}
