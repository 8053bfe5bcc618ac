// Package apperr defines the error taxonomy shared by validation, fetching
// and the HTTP boundary. Every failure the API can report carries a machine
// code and the HTTP status it maps to.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeInvalidParams     = "InvalidParams"
	CodeInvalidKeyword    = "InvalidKeyword"
	CodeInvalidURLFormat  = "InvalidUrlFormat"
	CodeInvalidProtocol   = "InvalidProtocol"
	CodeLocalAddress      = "LocalAddressRejected"
	CodeInvalidHostname   = "InvalidHostname"
	CodeTldTypo           = "TldTypo"
	CodeTargetNotFound    = "TargetNotFound"
	CodeTargetTimeout     = "TargetTimeout"
	CodeTargetForbidden   = "TargetForbidden"
	CodeTargetRateLimited = "TargetRateLimited"
	CodeTargetClientError = "TargetClientError"
	CodeTargetServerError = "TargetServerError"
	CodeResponseTooLarge  = "ResponseTooLarge"
	CodeTooManyRedirects  = "TooManyRedirects"
	CodeUnexpectedFailure = "UnexpectedFailure"
)

// Error is a categorized failure with an HTTP status for the API layer.
type Error struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error with an explicit status.
func New(code, message string, status int) *Error {
	return &Error{Code: code, Message: message, Status: status}
}

// BadRequest creates a 400 validation error.
func BadRequest(code, message string) *Error {
	return &Error{Code: code, Message: message, Status: http.StatusBadRequest}
}

// Wrap attaches an underlying cause to a categorized error.
func Wrap(code, message string, status int, err error) *Error {
	return &Error{Code: code, Message: message, Status: status, Err: err}
}

// From extracts an *Error from err, or wraps it as an UnexpectedFailure.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(CodeUnexpectedFailure, "an unexpected error occurred", http.StatusInternalServerError, err)
}
