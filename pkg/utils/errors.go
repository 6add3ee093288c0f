package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// CustomError represents an application error carrying the HTTP status it maps to
type CustomError struct {
	Code    int    `json:"code"`
	Kind    string `json:"error"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
	cause   error
}

func (e *CustomError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

// Unwrap exposes the underlying cause, if any
func (e *CustomError) Unwrap() error {
	return e.cause
}

// AsCustomError extracts a CustomError from an error chain
func AsCustomError(err error) (*CustomError, bool) {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

func NewBadRequestError(message string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadRequest,
		Kind:    "invalid_request",
		Message: message,
	}
}

func NewInternalServerError(message string) *CustomError {
	return &CustomError{
		Code:    http.StatusInternalServerError,
		Kind:    "internal_error",
		Message: message,
	}
}

func NewValidationError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadRequest,
		Kind:    "validation_failed",
		Message: "Validation failed",
		Detail:  detail,
	}
}

// NewScrapingError wraps a fetch failure (navigation timeout, DNS, browser launch)
func NewScrapingError(cause error) *CustomError {
	return &CustomError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    "scraping_failed",
		Message: "Scraping failed",
		Detail:  cause.Error(),
		cause:   cause,
	}
}

// NewLLMError wraps a language model call failure
func NewLLMError(cause error) *CustomError {
	return &CustomError{
		Code:    http.StatusBadGateway,
		Kind:    "llm_failed",
		Message: "LLM processing failed",
		Detail:  cause.Error(),
		cause:   cause,
	}
}

// NewNoDataError is returned when a session has no extraction result yet
func NewNoDataError() *CustomError {
	return &CustomError{
		Code:    http.StatusNotFound,
		Kind:    "no_data",
		Message: NoDataNotice,
	}
}

func NewNotFoundError(message string) *CustomError {
	return &CustomError{
		Code:    http.StatusNotFound,
		Kind:    "not_found",
		Message: message,
	}
}

// NewUnavailableError reports that the server cannot take more work right now
func NewUnavailableError(cause error) *CustomError {
	return &CustomError{
		Code:    http.StatusServiceUnavailable,
		Kind:    "unavailable",
		Message: "Service unavailable",
		Detail:  cause.Error(),
		cause:   cause,
	}
}

// NoDataNotice is shown wherever an empty result would otherwise be rendered
const NoDataNotice = "No data available. Please start scraping."
