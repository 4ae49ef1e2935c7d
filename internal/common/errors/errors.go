package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"strings"
	"time"
)

type ErrorCode string

const (
	// Provider failure taxonomy. Every adapter maps its failures onto one of these.
	ErrCodeTimeout       ErrorCode = "TIMEOUT"
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeUpstreamError ErrorCode = "UPSTREAM_ERROR"
	ErrCodeUnconfigured  ErrorCode = "UNCONFIGURED"

	ErrCodeInvalidRequest  ErrorCode = "INVALID_REQUEST"
	ErrCodeLLMUnconfigured ErrorCode = "LLM_UNCONFIGURED"
)

var (
	ErrTimeout       = stderrors.New("TIMEOUT")
	ErrNotFound      = stderrors.New("NOT_FOUND")
	ErrUpstreamError = stderrors.New("UPSTREAM_ERROR")
	ErrUnconfigured  = stderrors.New("UNCONFIGURED")

	ErrLLMUnconfigured = stderrors.New("LLM_UNCONFIGURED")
)

type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Provider  string                 `json:"provider,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Unwrap lets errors.Is match a StandardError against the sentinel of its code.
func (e *StandardError) Unwrap() error {
	return sentinelFor(e.Code)
}

func sentinelFor(code ErrorCode) error {
	switch code {
	case ErrCodeTimeout:
		return ErrTimeout
	case ErrCodeNotFound:
		return ErrNotFound
	case ErrCodeUpstreamError:
		return ErrUpstreamError
	case ErrCodeUnconfigured:
		return ErrUnconfigured
	case ErrCodeLLMUnconfigured:
		return ErrLLMUnconfigured
	}
	return nil
}

func NewTimeoutError(provider string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTimeout,
		Message:   fmt.Sprintf("Provider '%s' timeout", provider),
		Details:   detailsOf(err),
		Provider:  provider,
		Timestamp: time.Now().UTC(),
	}
}

func NewNotFoundError(provider, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotFound,
		Message:   fmt.Sprintf("No usable result from '%s'", provider),
		Details:   details,
		Provider:  provider,
		Timestamp: time.Now().UTC(),
	}
}

func NewUpstreamError(provider string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeUpstreamError,
		Message:   fmt.Sprintf("Provider '%s' returned an invalid response", provider),
		Details:   detailsOf(err),
		Provider:  provider,
		Timestamp: time.Now().UTC(),
	}
}

func NewUnconfiguredError(provider, missing string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnconfigured,
		Message:   fmt.Sprintf("Provider '%s' is not configured", provider),
		Details:   fmt.Sprintf("missing: %s", missing),
		Provider:  provider,
		Timestamp: time.Now().UTC(),
	}
}

func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Invalid chat request",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

func NewLLMUnconfiguredError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeLLMUnconfigured,
		Message:   "No language model backend is configured",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

func detailsOf(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// Reason maps any error returned inside an adapter to one of the four provider
// failure codes. Unknown errors are UPSTREAM_ERROR.
func Reason(err error) ErrorCode {
	if err == nil {
		return ""
	}

	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		switch stdErr.Code {
		case ErrCodeTimeout, ErrCodeNotFound, ErrCodeUpstreamError, ErrCodeUnconfigured:
			return stdErr.Code
		case ErrCodeLLMUnconfigured:
			return ErrCodeUnconfigured
		}
	}

	switch {
	case stderrors.Is(err, ErrTimeout), IsTimeout(err):
		return ErrCodeTimeout
	case stderrors.Is(err, ErrNotFound):
		return ErrCodeNotFound
	case stderrors.Is(err, ErrUnconfigured), stderrors.Is(err, ErrLLMUnconfigured):
		return ErrCodeUnconfigured
	default:
		return ErrCodeUpstreamError
	}
}

// IsTimeout reports whether err came from a deadline: context expiry, a net
// timeout or the http.Client timeout message.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if stderrors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Client.Timeout") || strings.Contains(msg, "deadline exceeded")
}

func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeTimeout, ErrCodeNotFound, ErrCodeUpstreamError, ErrCodeUnconfigured:
		return "PROVIDER"
	case ErrCodeLLMUnconfigured:
		return "STARTUP"
	case ErrCodeInvalidRequest:
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
