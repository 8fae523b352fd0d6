package cdek

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error categories. Every error returned by the client matches exactly one of
// ErrAuth, ErrValidation, ErrUnsupportedMethod or ErrRemoteAPI with errors.Is,
// unless it is a transport or context error.
var (
	ErrAuth              = errors.New("authentication failed")
	ErrValidation        = errors.New("validation failed")
	ErrUnsupportedMethod = errors.New("unsupported HTTP method")
	ErrRemoteAPI         = errors.New("remote API error")
)

// Status sentinels matched by RemoteAPIError.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// Common static errors that can be wrapped with context.
var (
	ErrConfigRequired       = errors.New("config is required")
	ErrCredentialsRequired  = errors.New("client ID and client secret are required")
	ErrUnknownEnvironment   = errors.New("unknown environment, expected test or production")
	ErrNoTokenManager       = errors.New("no token manager configured")
	ErrUnsupportedCacheType = errors.New("unsupported cache type")
)

// AuthError reports a failed client-credentials exchange, either rejected by
// the identity endpoint or not completed because it was unreachable.
type AuthError struct {
	Err error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Err == nil {
		return ErrAuth.Error()
	}

	return fmt.Sprintf("%s: %v", ErrAuth, e.Err)
}

// Unwrap returns the underlying grant failure.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// Is matches ErrAuth.
func (e *AuthError) Is(target error) bool {
	return target == ErrAuth
}

// ValidationError reports a call rejected before any network traffic.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrValidation, e.Message)
	}

	return fmt.Sprintf("%s: %s: %s", ErrValidation, e.Field, e.Message)
}

// Is matches ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// UnsupportedMethodError signals an HTTP verb the dispatcher does not route.
// Facade methods use fixed verbs, so seeing one is a programming error.
type UnsupportedMethodError struct {
	Method string
}

// Error implements the error interface.
func (e *UnsupportedMethodError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnsupportedMethod, e.Method)
}

// Is matches ErrUnsupportedMethod.
func (e *UnsupportedMethodError) Is(target error) bool {
	return target == ErrUnsupportedMethod
}

// RemoteAPIError represents a non-2xx response from the API.
type RemoteAPIError struct {
	StatusCode int
	Body       []byte
	Method     string
	Path       string
}

// Error implements the error interface.
func (e *RemoteAPIError) Error() string {
	if len(e.Body) == 0 {
		return fmt.Sprintf("%s: %s %s returned %d", ErrRemoteAPI, e.Method, e.Path, e.StatusCode)
	}

	return fmt.Sprintf("%s: %s %s returned %d: %s", ErrRemoteAPI, e.Method, e.Path, e.StatusCode, e.Body)
}

// Is matches ErrRemoteAPI and the status sentinels.
func (e *RemoteAPIError) Is(target error) bool {
	switch target {
	case ErrRemoteAPI:
		return true
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrConflict:
		return e.StatusCode == http.StatusConflict
	}

	return false
}

// APIError is a single error entry in a CDEK response body.
type APIError struct {
	Code    string `json:"code"    yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s (code: %s)", e.Message, e.Code)
}

// Errors extracts the error entries from the response body. CDEK reports them
// either at the top level or per request; both shapes are collected. A body
// that is not JSON yields no entries.
func (e *RemoteAPIError) Errors() []APIError {
	var envelope struct {
		Errors   []APIError `json:"errors"`
		Requests []struct {
			Errors []APIError `json:"errors"`
		} `json:"requests"`
	}

	err := json.Unmarshal(e.Body, &envelope)
	if err != nil {
		return nil
	}

	result := append([]APIError(nil), envelope.Errors...)
	for _, request := range envelope.Requests {
		result = append(result, request.Errors...)
	}

	return result
}

// IsNotFound checks if the error is a 404 from the API.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict checks if the error is a 409 from the API.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsUnauthorized checks if the error is a 401 from the API or a failed token exchange.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrAuth)
}

func newValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
