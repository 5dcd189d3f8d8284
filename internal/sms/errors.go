package sms

import (
	"errors"
	"fmt"
)

// Sentinel errors raised before any network call is made.
var (
	// ErrInvalidPhone is returned when a phone number is empty or contains no digits.
	ErrInvalidPhone = errors.New("invalid phone number")
	// ErrInvalidRequest is returned when Send preconditions fail.
	ErrInvalidRequest = errors.New("invalid send request")
)

// GatewayError is an application-level failure reported by Termii: an explicit
// error status in the body, a non-ok response code, or an unusable response.
// It can arrive with an HTTP 200 transport status.
type GatewayError struct {
	StatusCode int    // HTTP status of the response, 0 if not applicable
	Code       string // provider response code, "" when absent
	Message    string // best-available message from body, raw text, or status
}

func (e *GatewayError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("termii: gateway error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("termii: gateway error: %s", e.Message)
}

// NetworkError is a transport failure: connection refused, DNS, or timeout.
// Distinct from GatewayError so callers can decide whether a retry makes sense.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("termii: network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
