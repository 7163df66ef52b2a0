// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ffshop/internal/platform/apperr"
	"github.com/taibuivan/ffshop/internal/platform/respond"
	"github.com/taibuivan/ffshop/pkg/pagination"
)

/*
TestSuccessEnvelopes wraps payloads in data, and pages in data plus meta.
*/
func TestSuccessEnvelopes(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.Created(recorder, map[string]int{"id": 9})

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, "application/json; charset=utf-8", recorder.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":{"id":9}}`, recorder.Body.String())

	recorder = httptest.NewRecorder()
	respond.Paginated(recorder, []string{"chair"}, pagination.NewMeta(1, 20, 1))

	var page struct {
		Data []string        `json:"data"`
		Meta pagination.Meta `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &page))
	assert.Equal(t, []string{"chair"}, page.Data)
	assert.Equal(t, 1, page.Meta.Total)

	recorder = httptest.NewRecorder()
	respond.NoContent(recorder)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Empty(t, recorder.Body.String())
}

/*
TestError renders AppErrors verbatim and hides everything else behind a 500.
*/
func TestError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{
			"validation",
			apperr.ValidationError("Validation failed", apperr.FieldError{Field: "quantity", Message: "Must be a positive integer"}),
			http.StatusBadRequest,
			`{"error":"Validation failed","code":"VALIDATION_ERROR","details":[{"field":"quantity","message":"Must be a positive integer"}]}`,
		},
		{
			"not_found",
			apperr.NotFound("Payment"),
			http.StatusNotFound,
			`{"error":"Payment not found","code":"NOT_FOUND"}`,
		},
		{
			"plain_error",
			errors.New("dial tcp 10.0.0.5:5432: connection refused"),
			http.StatusInternalServerError,
			`{"error":"An unexpected error occurred","code":"INTERNAL_ERROR"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			respond.Error(recorder, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			assert.Equal(t, tt.status, recorder.Code)
			assert.JSONEq(t, tt.body, recorder.Body.String())
		})
	}
}
