// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate checks request input in the shop services and reports
// every failing field at once as a VALIDATION_ERROR.
//
// Handlers decode, services validate: a Validator is built per call, the
// rules are chained, and Err ends the chain.
//
//	validator := &validate.Validator{}
//	validator.Required(FieldName, input.Name).
//		Positive(FieldPrice, input.Price)
//	if err := validator.Err(); err != nil {
//		return nil, err
//	}
package validate

import (
	"fmt"
	"net/mail"
	"net/url"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/taibuivan/ffshop/internal/platform/apperr"
)

// Messages shared by handlers that reject a single field.
const (
	MessageRequired        = "This field is required"
	MessagePositiveInteger = "Must be a positive integer"
)

// ErrInvalidJSON answers a body that does not decode.
var ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

// Validator accumulates field failures. It is not safe for concurrent use.
type Validator struct {
	failures []apperr.FieldError
}

func (v *Validator) fail(field, message string) *Validator {
	v.failures = append(v.failures, apperr.FieldError{Field: field, Message: message})
	return v
}

// Required rejects empty and whitespace-only strings.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) != "" {
		return v
	}
	return v.fail(field, MessageRequired)
}

// MinLen counts runes, not bytes.
func (v *Validator) MinLen(field, value string, least int) *Validator {
	if utf8.RuneCountInString(value) >= least {
		return v
	}
	return v.fail(field, fmt.Sprintf("Minimum %d characters", least))
}

// MaxLen counts runes, not bytes.
func (v *Validator) MaxLen(field, value string, most int) *Validator {
	if utf8.RuneCountInString(value) <= most {
		return v
	}
	return v.fail(field, fmt.Sprintf("Maximum %d characters", most))
}

// Email accepts a bare address only; display names ("Ann <ann@shop.test>") are rejected.
func (v *Validator) Email(field, value string) *Validator {
	address, err := mail.ParseAddress(value)
	if err == nil && address.Address == value {
		return v
	}
	return v.fail(field, "Must be a valid email address")
}

// URL accepts absolute http and https URLs, the form product image links take.
func (v *Validator) URL(field, value string) *Validator {
	parsed, err := url.ParseRequestURI(value)
	if err == nil && parsed.Host != "" && (parsed.Scheme == "http" || parsed.Scheme == "https") {
		return v
	}
	return v.fail(field, "Must be a valid http(s) URL")
}

// Positive checks money amounts.
func (v *Validator) Positive(field string, value decimal.Decimal) *Validator {
	if value.IsPositive() {
		return v
	}
	return v.fail(field, "Must be greater than zero")
}

// PositiveInt checks ids and quantities.
func (v *Validator) PositiveInt(field string, value int64) *Validator {
	if value > 0 {
		return v
	}
	return v.fail(field, MessagePositiveInteger)
}

// OneOf requires an exact, case-sensitive match.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	if slices.Contains(allowed, value) {
		return v
	}
	return v.fail(field, "Must be one of: "+strings.Join(allowed, ", "))
}

// Custom records message when failed is true.
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if !failed {
		return v
	}
	return v.fail(field, message)
}

func (v *Validator) HasErrors() bool {
	return len(v.failures) > 0
}

// Err returns nil, or one VALIDATION_ERROR listing every failure in order.
func (v *Validator) Err() error {
	if !v.HasErrors() {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.failures...)
}

// Invalid builds a VALIDATION_ERROR for a single field.
func Invalid(field, message string) *apperr.AppError {
	return apperr.ValidationError("Validation failed", apperr.FieldError{Field: field, Message: message})
}
