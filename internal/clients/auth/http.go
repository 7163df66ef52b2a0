// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/ffshop/internal/platform/guard"
	requestutil "github.com/taibuivan/ffshop/internal/platform/request"
	"github.com/taibuivan/ffshop/internal/platform/respond"
	"github.com/taibuivan/ffshop/internal/platform/sec"
	"github.com/taibuivan/ffshop/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the /api/clients/auth endpoints.
type Handler struct {
	authService *Service
	guard       *guard.Guard
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, guard *guard.Guard) *Handler {
	return &Handler{authService: service, guard: guard}
}

// RegisterRoutes mounts the account routes. Only /logout needs a caller.
//
// # Endpoints
//   - POST /register : Creates an account and returns a session.
//   - POST /login    : Authenticates and returns a session.
//   - POST /refresh  : Exchanges a refresh token for a new access token.
//   - POST /logout   : Revokes the caller's refresh token.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)

	router.Group(func(r chi.Router) {
		r.Use(handler.guard.Require())
		r.Post("/logout", handler.logout)
	})
}

// # Request Payloads

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

/*
Register handles the creation of a new account.

POST /api/clients/auth/register

Response:
  - 201: Session
  - 400: VALIDATION_ERROR
  - 403: FORBIDDEN when ADMIN signup is disabled
  - 409: CONFLICT when the email is taken
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		MaxLen(FieldEmail, input.Email, EmailMaxLength).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, PasswordMinLength).
		MaxLen(FieldPassword, input.Password, PasswordMaxLength)

	if input.Role != "" {
		validator.OneOf(FieldRole, input.Role, sec.RoleUser.String(), sec.RoleAdmin.String())
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Register(request.Context(), RegisterInput{
		Email:    input.Email,
		Password: input.Password,
		Role:     sec.Role(input.Role),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, session)
}

/*
Login authenticates an account.

POST /api/clients/auth/login

Response:
  - 200: Session
  - 401: UNAUTHORIZED for unknown email or wrong password
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email)
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session)
}

/*
Refresh issues a new access token.

POST /api/clients/auth/refresh?refreshToken=...

The token is read from the query string first and from a JSON body
{"refreshToken": "..."} otherwise.

Response:
  - 200: Session carrying the same refresh token
  - 401: UNAUTHORIZED for any invalid, superseded or revoked token
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	token := request.URL.Query().Get(FieldRefreshToken)

	if token == "" {
		var input refreshRequest
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, validate.Invalid(FieldRefreshToken, validate.MessageRequired))
			return
		}
		token = input.RefreshToken
	}

	if token == "" {
		respond.Error(writer, request, validate.Invalid(FieldRefreshToken, validate.MessageRequired))
		return
	}

	session, err := handler.authService.Refresh(request.Context(), token)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session)
}

/*
Logout revokes the caller's refresh token. Access tokens stay valid until
they expire.

POST /api/clients/auth/logout

Response:
  - 204: No Content
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	userID, err := handler.guard.RequirePrincipalID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.Logout(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
