// Package apperr defines the machine-readable error taxonomy returned by the
// API. Clients branch on Code, never on message text.
package apperr

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

type Code string

const (
	CodeInvalidInput      Code = "INVALID_INPUT"
	CodeUnauthorized      Code = "UNAUTHORIZED"
	CodeForbidden         Code = "FORBIDDEN"
	CodeNotFound          Code = "NOT_FOUND"
	CodeCheckoutNotFound  Code = "CHECKOUT_NOT_FOUND"
	CodeAlreadyProcessed  Code = "ALREADY_PROCESSED"
	CodeAlreadyPaid       Code = "ALREADY_PAID"
	CodeInvalidTransition Code = "INVALID_TRANSITION"
	CodeInsufficientStock Code = "INSUFFICIENT_STOCK"
	CodeFlashSaleSoldOut  Code = "FLASH_SALE_SOLD_OUT"
	CodeReviewExists      Code = "REVIEW_EXISTS"
	CodeEmailTaken        Code = "EMAIL_TAKEN"
	CodeInternal          Code = "INTERNAL"
)

type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

func New(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// CodeOf extracts the taxonomy code from any error chain, defaulting to
// INTERNAL for unclassified errors.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// HTTPStatus maps a code to its response status.
func HTTPStatus(code Code) int {
	switch code {
	case CodeInvalidInput:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound, CodeCheckoutNotFound:
		return http.StatusNotFound
	case CodeAlreadyProcessed, CodeAlreadyPaid, CodeInvalidTransition,
		CodeInsufficientStock, CodeFlashSaleSoldOut, CodeReviewExists, CodeEmailTaken:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
