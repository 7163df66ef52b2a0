// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package product_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ffshop/internal/commerce/product"
)

func newRouter() http.Handler {
	service, _, g := newService()
	handler := product.NewHandler(service, g)

	router := chi.NewRouter()
	router.Route("/api/public/products", handler.RegisterPublicRoutes)
	router.Route("/api/products/admin", handler.RegisterAdminRoutes)
	return router
}

func send(router http.Handler, method, target, userID, role, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	if userID != "" {
		request.Header.Set("X-User-Id", userID)
		request.Header.Set("X-Roles", role)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

const chairJSON = `{
	"name": "Ergonomic Chair",
	"description": "A comfortable office chair.",
	"price": "249.90",
	"stock": 10,
	"images": [{"url": "https://cdn.shop.test/chair.jpg", "title": "Front", "main": true}]
}`

/*
TestHTTP_CatalogueAccess separates anonymous browsing from seller management.
*/
func TestHTTP_CatalogueAccess(t *testing.T) {
	router := newRouter()

	recorder := send(router, http.MethodPost, "/api/products/admin", "7", "USER", chairJSON)
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = send(router, http.MethodPost, "/api/products/admin", "", "", chairJSON)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = send(router, http.MethodPost, "/api/products/admin", "7", "ADMIN", chairJSON)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	recorder = send(router, http.MethodGet, "/api/public/products", "", "", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"total":1`)

	recorder = send(router, http.MethodGet, "/api/public/products/1/stock", "", "", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"stock":10`)

	recorder = send(router, http.MethodGet, "/api/products/admin/1", "8", "ADMIN", "")
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = send(router, http.MethodDelete, "/api/products/admin/1", "7", "ADMIN", "")
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = send(router, http.MethodGet, "/api/public/products/1", "", "", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = send(router, http.MethodGet, "/api/public/products/abc", "", "", "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
