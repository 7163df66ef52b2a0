// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr is the error vocabulary of the shop API.

A service returns an [*AppError] (or an error wrapping one) and
respond.Error renders it as

	{"error": "Order not found", "code": "NOT_FOUND"}

with the status the constructor fixed. Domain sentinels such as
order.ErrInvalidStateTransition are AppErrors themselves; return them as-is
so callers can match them with [errors.Is].
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Codes sent in the "code" field.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeRateLimited  = "RATE_LIMITED"
	CodeInternal     = "INTERNAL_ERROR"
	CodeBadGateway   = "BAD_GATEWAY"
)

// AppError carries a client-safe message and the HTTP status to send it
// with. Cause stays server-side: it is logged, never serialized.
type AppError struct {
	Code       string       `json:"code"`
	Message    string       `json:"error"`
	HTTPStatus int          `json:"-"`
	Cause      error        `json:"-"`
	Details    []FieldError `json:"details,omitempty"`
}

// FieldError names one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func newError(status int, code, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Cause }

// Is matches two AppErrors by status and code, so a copy made by WithCause
// still matches the sentinel it was made from.
func (e *AppError) Is(target error) bool {
	other, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.HTTPStatus == other.HTTPStatus && e.Code == other.Code && e.Message == other.Message
}

// WithCause returns a copy of e that wraps cause; e itself is not modified.
func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

// # 4xx

// NotFound reads "<resource> not found".
func NotFound(resource string) *AppError {
	return newError(http.StatusNotFound, CodeNotFound, resource+" not found")
}

func Unauthorized(message string) *AppError {
	return newError(http.StatusUnauthorized, CodeUnauthorized, message)
}

func Forbidden(message string) *AppError {
	return newError(http.StatusForbidden, CodeForbidden, message)
}

// Conflict covers duplicates and lost optimistic updates.
func Conflict(message string) *AppError {
	return newError(http.StatusConflict, CodeConflict, message)
}

// BadRequest is a 400 with a domain code, e.g. INVALID_STATE_TRANSITION.
func BadRequest(code, message string) *AppError {
	return newError(http.StatusBadRequest, code, message)
}

// ValidationError lists the rejected fields in Details.
func ValidationError(message string, details ...FieldError) *AppError {
	e := newError(http.StatusBadRequest, CodeValidation, message)
	e.Details = details
	return e
}

func RateLimited(retryAfterSeconds int) *AppError {
	return newError(http.StatusTooManyRequests, CodeRateLimited,
		fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds))
}

// # 5xx

// Internal hides cause behind a generic message.
func Internal(cause error) *AppError {
	return newError(http.StatusInternalServerError, CodeInternal, "An unexpected error occurred").WithCause(cause)
}

// BadGateway is what the gateway answers when an upstream call fails.
func BadGateway(cause error) *AppError {
	return newError(http.StatusBadGateway, CodeBadGateway, "Upstream service unavailable").WithCause(cause)
}

// As returns the first AppError in err's chain, or nil.
func As(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}
