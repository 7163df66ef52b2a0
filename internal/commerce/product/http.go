// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package product

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/ffshop/internal/platform/guard"
	requestutil "github.com/taibuivan/ffshop/internal/platform/request"
	"github.com/taibuivan/ffshop/internal/platform/respond"
	"github.com/taibuivan/ffshop/internal/platform/sec"
	"github.com/taibuivan/ffshop/pkg/pagination"
)

type Handler struct {
	service *Service
	guard   *guard.Guard
}

func NewHandler(service *Service, guard *guard.Guard) *Handler {
	return &Handler{service: service, guard: guard}
}

// RegisterPublicRoutes mounts the anonymous catalogue (/api/public/products).
func (handler *Handler) RegisterPublicRoutes(router chi.Router) {
	router.Get("/", handler.listProducts)
	router.Get("/{id}", handler.getProduct)
	router.Get("/{id}/stock", handler.getStock)
}

// RegisterAdminRoutes mounts the seller routes (/api/products/admin).
func (handler *Handler) RegisterAdminRoutes(router chi.Router) {
	router.Use(handler.guard.Require(sec.RoleAdmin))

	router.Get("/", handler.listMine)
	router.Post("/", handler.createProduct)
	router.Get("/{id}", handler.getMine)
	router.Put("/{id}", handler.updateProduct)
	router.Delete("/{id}", handler.deleteProduct)
}

// # Public

func (handler *Handler) listProducts(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	products, total, err := handler.service.List(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, products, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getProduct(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	p, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, p)
}

func (handler *Handler) getStock(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	stock, err := handler.service.Stock(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]any{"productId": id, "stock": stock})
}

// # Admin

func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	adminID, err := handler.guard.RequirePrincipalID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	products, err := handler.service.ListMine(request.Context(), adminID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, products)
}

func (handler *Handler) getMine(writer http.ResponseWriter, request *http.Request) {
	adminID, err := handler.guard.RequirePrincipalID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	p, err := handler.service.GetMine(request.Context(), adminID, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, p)
}

func (handler *Handler) createProduct(writer http.ResponseWriter, request *http.Request) {
	adminID, err := handler.guard.RequirePrincipalID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	p, err := handler.service.Create(request.Context(), adminID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, p)
}

func (handler *Handler) updateProduct(writer http.ResponseWriter, request *http.Request) {
	adminID, err := handler.guard.RequirePrincipalID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	p, err := handler.service.Update(request.Context(), adminID, id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, p)
}

func (handler *Handler) deleteProduct(writer http.ResponseWriter, request *http.Request) {
	adminID, err := handler.guard.RequirePrincipalID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), adminID, id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
