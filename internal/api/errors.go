package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies API failures so callers branch on meaning, not status codes.
type Kind int

const (
	// KindServer covers 5xx and any status not classified below.
	KindServer Kind = iota
	// KindValidation is a rejected request body or parameter (400, 422).
	KindValidation
	// KindAuthorization is a missing or wrong claim password (401, 403).
	KindAuthorization
	// KindNotFound is an unknown claim or photo id (404).
	KindNotFound
	// KindNetwork is a transport failure before any response arrived.
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not-found"
	case KindNetwork:
		return "network"
	default:
		return "server"
	}
}

// Error is returned for every failed API call.
type Error struct {
	Err        error
	Status     string
	Body       string
	Kind       Kind
	StatusCode int
}

func (e *Error) Error() string {
	if e.Kind == KindNetwork {
		return fmt.Sprintf("network error: %v", e.Err)
	}
	body := e.Body
	if body == "" {
		body = "request failed"
	}
	return fmt.Sprintf("HTTP %s: %s", e.Status, body)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindForStatus maps an HTTP status code to a Kind.
func KindForStatus(code int) Kind {
	switch code {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return KindValidation
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindAuthorization
	case http.StatusNotFound:
		return KindNotFound
	default:
		return KindServer
	}
}

func newStatusError(resp *http.Response, body string) *Error {
	status := resp.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	return &Error{
		Kind:       KindForStatus(resp.StatusCode),
		StatusCode: resp.StatusCode,
		Status:     status,
		Body:       body,
	}
}

func newNetworkError(err error) *Error {
	return &Error{Kind: KindNetwork, Err: err}
}

// KindOf returns the Kind of err, or KindServer if err is not an *Error.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindServer
}

// IsAuthorization reports whether err is a 401/403 from the API.
func IsAuthorization(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindAuthorization
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindNotFound
}

// IsTransient reports whether err may succeed when retried: a transport
// failure or a 5xx.
func IsTransient(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Kind == KindNetwork || (apiErr.Kind == KindServer && apiErr.StatusCode >= 500)
}
