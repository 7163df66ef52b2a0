// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package order

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/ffshop/internal/platform/guard"
	requestutil "github.com/taibuivan/ffshop/internal/platform/request"
	"github.com/taibuivan/ffshop/internal/platform/respond"
	"github.com/taibuivan/ffshop/internal/platform/sec"
	"github.com/taibuivan/ffshop/internal/platform/validate"
)

type Handler struct {
	service *Service
	guard   *guard.Guard
}

func NewHandler(service *Service, guard *guard.Guard) *Handler {
	return &Handler{service: service, guard: guard}
}

// RegisterUserRoutes mounts the buyer routes (/api/order/users).
func (handler *Handler) RegisterUserRoutes(router chi.Router) {
	router.Use(handler.guard.Require(sec.RoleUser))

	router.Post("/", handler.createOrder)
	router.Get("/", handler.listMine)
	router.Get("/status", handler.listMineByStatus)
	router.Get("/{id}", handler.getMine)
	router.Put("/{id}/cancelled", handler.cancelOrder)
	router.Put("/{id}/returned", handler.returnOrder)
}

// RegisterAdminRoutes mounts the seller routes (/api/order/admin).
func (handler *Handler) RegisterAdminRoutes(router chi.Router) {
	router.Use(handler.guard.Require(sec.RoleAdmin))

	router.Get("/", handler.listForAdmin)
	router.Get("/count", handler.counts)
	router.Get("/count/status", handler.countByStatus)
	router.Get("/{id}", handler.getForAdmin)
	router.Put("/{id}/orderStatus", handler.updateStatus)
}

// # Buyer

func (handler *Handler) createOrder(writer http.ResponseWriter, request *http.Request) {
	userID, err := handler.guard.RequirePrincipalID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	o, err := handler.service.Create(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, o)
}

func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	userID, err := handler.guard.RequirePrincipalID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	orders, err := handler.service.ListMine(request.Context(), userID, nil)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, orders)
}

func (handler *Handler) listMineByStatus(writer http.ResponseWriter, request *http.Request) {
	userID, err := handler.guard.RequirePrincipalID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	status, err := statusQuery(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	orders, err := handler.service.ListMine(request.Context(), userID, &status)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, orders)
}

func (handler *Handler) getMine(writer http.ResponseWriter, request *http.Request) {
	handler.buyerAction(writer, request, handler.service.GetMine)
}

func (handler *Handler) cancelOrder(writer http.ResponseWriter, request *http.Request) {
	handler.buyerAction(writer, request, handler.service.Cancel)
}

func (handler *Handler) returnOrder(writer http.ResponseWriter, request *http.Request) {
	handler.buyerAction(writer, request, handler.service.Return)
}

// buyerAction runs one of the (userID, orderID) use cases and writes the order.
func (handler *Handler) buyerAction(
	writer http.ResponseWriter,
	request *http.Request,
	action func(ctx context.Context, userID, id int64) (*Order, error),
) {
	userID, err := handler.guard.RequirePrincipalID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	o, err := action(request.Context(), userID, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, o)
}

// # Seller

func (handler *Handler) listForAdmin(writer http.ResponseWriter, request *http.Request) {
	adminID, err := handler.guard.RequirePrincipalID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	orders, err := handler.service.ListForAdmin(request.Context(), adminID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, orders)
}

func (handler *Handler) counts(writer http.ResponseWriter, request *http.Request) {
	adminID, err := handler.guard.RequirePrincipalID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	counts, err := handler.service.Counts(request.Context(), adminID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, counts)
}

func (handler *Handler) countByStatus(writer http.ResponseWriter, request *http.Request) {
	adminID, err := handler.guard.RequirePrincipalID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	status, err := statusQuery(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	count, err := handler.service.CountByStatus(request.Context(), adminID, status)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]any{"orderStatus": status, "count": count})
}

func (handler *Handler) getForAdmin(writer http.ResponseWriter, request *http.Request) {
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

	o, err := handler.service.GetForAdmin(request.Context(), adminID, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, o)
}

type statusInput struct {
	OrderStatus string `json:"orderStatus"`
}

func (handler *Handler) updateStatus(writer http.ResponseWriter, request *http.Request) {
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

	var input statusInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if input.OrderStatus == "" {
		respond.Error(writer, request, validate.Invalid("orderStatus", validate.MessageRequired))
		return
	}

	status, err := ParseStatus(input.OrderStatus)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	o, err := handler.service.UpdateStatus(request.Context(), adminID, id, status)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, o)
}

// statusQuery reads the mandatory ?status= filter.
func statusQuery(request *http.Request) (Status, error) {
	raw := request.URL.Query().Get("status")
	if raw == "" {
		return "", validate.Invalid(FieldStatus, "Query parameter is required")
	}
	return ParseStatus(raw)
}
