// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/ffshop/internal/platform/guard"
	requestutil "github.com/taibuivan/ffshop/internal/platform/request"
	"github.com/taibuivan/ffshop/internal/platform/respond"
)

type Handler struct {
	service *Service
	guard   *guard.Guard
}

func NewHandler(service *Service, guard *guard.Guard) *Handler {
	return &Handler{service: service, guard: guard}
}

// RegisterRoutes mounts GET, POST and PUT on the profile root. All of them
// need an authenticated caller.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Use(handler.guard.Require())

	router.Get("/", handler.getProfile)
	router.Post("/", handler.createProfile)
	router.Put("/", handler.updateProfile)
}

func (handler *Handler) getProfile(writer http.ResponseWriter, request *http.Request) {
	accountID, err := handler.guard.RequirePrincipalID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	p, err := handler.service.Get(request.Context(), accountID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, p)
}

func (handler *Handler) createProfile(writer http.ResponseWriter, request *http.Request) {
	accountID, err := handler.guard.RequirePrincipalID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	p, err := handler.service.Create(request.Context(), accountID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, p)
}

func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	accountID, err := handler.guard.RequirePrincipalID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	p, err := handler.service.Update(request.Context(), accountID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, p)
}
