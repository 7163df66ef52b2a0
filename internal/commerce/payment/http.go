// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package payment

import (
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

// RegisterUserRoutes mounts the buyer routes (/api/user/payments/order).
func (handler *Handler) RegisterUserRoutes(router chi.Router) {
	router.Use(handler.guard.Require(sec.RoleUser))

	router.Post("/", handler.createPayment)
	router.Get("/all", handler.listMine)
	router.Get("/order/{orderId}", handler.listMineForOrder)
	router.Get("/{id}", handler.getMine)
}

// RegisterAdminRoutes mounts the seller routes (/api/admin/payments/order).
func (handler *Handler) RegisterAdminRoutes(router chi.Router) {
	router.Use(handler.guard.Require(sec.RoleAdmin))

	router.Get("/all", handler.listForAdmin)
	router.Get("/user/{userId}", handler.listForUser)
	router.Get("/{id}", handler.getForAdmin)
	router.Put("/{id}/status", handler.updateStatus)
}

// # Buyer

func (handler *Handler) createPayment(writer http.ResponseWriter, request *http.Request) {
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

	p, err := handler.service.Create(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, p)
}

func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	userID, err := handler.guard.RequirePrincipalID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	payments, err := handler.service.ListMine(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, payments)
}

func (handler *Handler) listMineForOrder(writer http.ResponseWriter, request *http.Request) {
	userID, err := handler.guard.RequirePrincipalID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	orderID, err := requestutil.ID(request, "orderId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	payments, err := handler.service.ListMineForOrder(request.Context(), userID, orderID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, payments)
}

func (handler *Handler) getMine(writer http.ResponseWriter, request *http.Request) {
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

	p, err := handler.service.GetMine(request.Context(), userID, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, p)
}

// # Seller

func (handler *Handler) listForAdmin(writer http.ResponseWriter, request *http.Request) {
	adminID, err := handler.guard.RequirePrincipalID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	payments, err := handler.service.ListForAdmin(request.Context(), adminID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, payments)
}

func (handler *Handler) listForUser(writer http.ResponseWriter, request *http.Request) {
	adminID, err := handler.guard.RequirePrincipalID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	userID, err := requestutil.ID(request, "userId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	payments, err := handler.service.ListForUser(request.Context(), adminID, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, payments)
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

	p, err := handler.service.GetForAdmin(request.Context(), adminID, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, p)
}

type statusInput struct {
	PaymentStatus string `json:"paymentStatus"`
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

	if input.PaymentStatus == "" {
		respond.Error(writer, request, validate.Invalid(FieldStatus, validate.MessageRequired))
		return
	}

	status, err := ParseStatus(input.PaymentStatus)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	p, err := handler.service.UpdateStatus(request.Context(), adminID, id, status)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, p)
}
