// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ffshop/internal/platform/apperr"
	"github.com/taibuivan/ffshop/internal/platform/validate"
)

/*
TestValidator_Rules runs each rule once on a passing and once on a failing value.
*/
func TestValidator_Rules(t *testing.T) {
	tests := []struct {
		name  string
		rule  func(v *validate.Validator) *validate.Validator
		valid bool
	}{
		{"required", func(v *validate.Validator) *validate.Validator { return v.Required("name", "Desk lamp") }, true},
		{"required_blank", func(v *validate.Validator) *validate.Validator { return v.Required("name", "  \t") }, false},
		{"min_len_runes", func(v *validate.Validator) *validate.Validator { return v.MinLen("username", "éàü", 3) }, true},
		{"min_len_short", func(v *validate.Validator) *validate.Validator { return v.MinLen("username", "ab", 3) }, false},
		{"max_len_runes", func(v *validate.Validator) *validate.Validator { return v.MaxLen("name", "ÉÉÉ", 3) }, true},
		{"max_len_long", func(v *validate.Validator) *validate.Validator { return v.MaxLen("name", "abcd", 3) }, false},
		{"email", func(v *validate.Validator) *validate.Validator { return v.Email("email", "buyer@shop.test") }, true},
		{"email_display_name", func(v *validate.Validator) *validate.Validator { return v.Email("email", "Ann <ann@shop.test>") }, false},
		{"email_no_domain", func(v *validate.Validator) *validate.Validator { return v.Email("email", "buyer@") }, false},
		{"url", func(v *validate.Validator) *validate.Validator { return v.URL("url", "https://cdn.shop.test/a.png") }, true},
		{"url_ftp", func(v *validate.Validator) *validate.Validator { return v.URL("url", "ftp://cdn.shop.test/a.png") }, false},
		{"url_relative", func(v *validate.Validator) *validate.Validator { return v.URL("url", "a.png") }, false},
		{"positive_cent", func(v *validate.Validator) *validate.Validator {
			return v.Positive("amount", decimal.RequireFromString("0.01"))
		}, true},
		{"positive_zero", func(v *validate.Validator) *validate.Validator { return v.Positive("amount", decimal.Zero) }, false},
		{"positive_int", func(v *validate.Validator) *validate.Validator { return v.PositiveInt("quantity", 1) }, true},
		{"positive_int_negative", func(v *validate.Validator) *validate.Validator { return v.PositiveInt("quantity", -2) }, false},
		{"one_of", func(v *validate.Validator) *validate.Validator {
			return v.OneOf("paymentMethod", "PAYPAL", "BANK_CARD", "PAYPAL")
		}, true},
		{"one_of_case", func(v *validate.Validator) *validate.Validator {
			return v.OneOf("paymentMethod", "paypal", "BANK_CARD", "PAYPAL")
		}, false},
		{"custom_passed", func(v *validate.Validator) *validate.Validator {
			return v.Custom("stock", false, "Must not be negative")
		}, true},
		{"custom_failed", func(v *validate.Validator) *validate.Validator {
			return v.Custom("stock", true, "Must not be negative")
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tt.rule(&validate.Validator{})
			assert.Equal(t, !tt.valid, v.HasErrors())
			if tt.valid {
				assert.NoError(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Accumulates reports every failing field, in rule order.
*/
func TestValidator_Accumulates(t *testing.T) {
	err := (&validate.Validator{}).
		Required("name", "").
		Positive("price", decimal.RequireFromString("-1")).
		PositiveInt("stock", 3).
		Email("email", "nope").
		Err()

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	assert.Equal(t, 400, ae.HTTPStatus)

	fields := make([]string, 0, len(ae.Details))
	for _, detail := range ae.Details {
		fields = append(fields, detail.Field)
	}
	assert.Equal(t, []string{"name", "price", "email"}, fields)
	assert.Equal(t, validate.MessageRequired, ae.Details[0].Message)
}

/*
TestInvalid wraps a single field failure.
*/
func TestInvalid(t *testing.T) {
	ae := validate.Invalid("orderStatus", validate.MessageRequired)

	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	require.Len(t, ae.Details, 1)
	assert.Equal(t, apperr.FieldError{Field: "orderStatus", Message: validate.MessageRequired}, ae.Details[0])
}
