package domain

import "errors"

var (
	// Account service errors
	ErrAccountNotFound      = errors.New("account not found")
	ErrAggregateUnavailable = errors.New("aggregate total unavailable")
	ErrMalformedAccount     = errors.New("malformed account response")

	// Decision log errors
	ErrDecisionNotFound = errors.New("decision not found")

	// Authentication errors
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInsufficientRole = errors.New("insufficient role for this operation")
)
