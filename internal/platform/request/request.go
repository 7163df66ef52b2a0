// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package requestutil reads JSON bodies and chi path parameters for the shop
// handlers, turning malformed input into VALIDATION_ERRORs.
package requestutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/ffshop/internal/platform/validate"
)

// MaxBodyBytes bounds every JSON body; product payloads with image lists are the largest.
const MaxBodyBytes = 1 << 20

// DecodeJSON decodes exactly one JSON value into target. An empty body,
// a syntax error, a body over MaxBodyBytes or trailing data all yield
// validate.ErrInvalidJSON.
func DecodeJSON(request *http.Request, target any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(nil, request.Body, MaxBodyBytes))

	if err := decoder.Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return validate.ErrInvalidJSON
	}
	return nil
}

// Param returns the raw chi path parameter.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// ID parses a path parameter such as {id} or {orderId} as a positive int64.
func ID(request *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(request, name), 10, 64)
	if err == nil && id > 0 {
		return id, nil
	}
	return 0, validate.Invalid(name, validate.MessagePositiveInteger)
}
