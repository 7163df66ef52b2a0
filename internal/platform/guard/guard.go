// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package guard resolves who is calling a service and whether they own the
resource they are touching.

Every service handler uses the same [Guard]:

  - [Guard.Require] is route middleware: it resolves the caller, enforces a
    role and stores the identity on the request context.
  - [Guard.RequirePrincipalID] returns the caller's numeric id.
  - [Guard.AssertOwnsOrAdmin] compares an [Ownership] with that id.

The caller is taken from the context first, then from the headers the gateway
injected (when trusted), and finally from a raw bearer token.
*/
package guard

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strconv"

	"github.com/taibuivan/ffshop/internal/platform/apperr"
	"github.com/taibuivan/ffshop/internal/platform/constants"
	"github.com/taibuivan/ffshop/internal/platform/ctxutil"
	"github.com/taibuivan/ffshop/internal/platform/respond"
	"github.com/taibuivan/ffshop/internal/platform/sec"
)

// ErrForbidden is the cause of every ownership or role rejection.
var ErrForbidden = errors.New("guard: forbidden")

// IdentityExtractor resolves an access token. [sec.TokenService] satisfies it.
type IdentityExtractor interface {
	ExtractIdentity(token string) (*sec.Identity, error)
}

// Guard resolves callers and checks ownership.
type Guard struct {
	tokens       IdentityExtractor
	trustHeaders bool
	logger       *slog.Logger
}

// New builds a Guard. With trustHeaders set, X-User-Id / X-Username / X-Roles
// are taken as verified; only enable it behind the gateway.
func New(tokens IdentityExtractor, trustHeaders bool, logger *slog.Logger) *Guard {
	return &Guard{tokens: tokens, trustHeaders: trustHeaders, logger: logger}
}

// # Identity Resolution

// Resolve returns the caller of request or an Unauthorized [apperr.AppError].
func (guard *Guard) Resolve(request *http.Request) (*sec.Identity, error) {
	if identity := ctxutil.GetIdentity(request.Context()); identity != nil {
		return identity, nil
	}

	if guard.trustHeaders {
		if raw := request.Header.Get(constants.HeaderUserID); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || id <= 0 {
				return nil, apperr.Unauthorized("Invalid identity header")
			}
			return &sec.Identity{
				ID:      id,
				Subject: request.Header.Get(constants.HeaderUsername),
				Role:    sec.Role(request.Header.Get(constants.HeaderRoles)),
			}, nil
		}
	}

	token, err := sec.BearerToken(request.Header.Get(constants.HeaderAuthorization))
	if err != nil {
		return nil, apperr.Unauthorized("Authentication required").WithCause(err)
	}

	identity, err := guard.tokens.ExtractIdentity(token)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired token").WithCause(err)
	}

	return identity, nil
}

// RequirePrincipalID returns the caller's user id.
func (guard *Guard) RequirePrincipalID(request *http.Request) (int64, error) {
	identity, err := guard.Resolve(request)
	if err != nil {
		return 0, err
	}

	if identity.ID <= 0 {
		return 0, apperr.Unauthorized("Token does not name a user")
	}

	return identity.ID, nil
}

// Require resolves the caller and, when roles are given, demands one of them.
// The identity is stored on the context for [Guard.RequirePrincipalID] and
// handlers further down.
func (guard *Guard) Require(roles ...sec.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			identity, err := guard.Resolve(request)
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			if len(roles) > 0 && !slices.Contains(roles, identity.Role) {
				ctxutil.GetLogger(request.Context()).WarnContext(request.Context(), "role_rejected",
					slog.Int64("user_id", identity.ID),
					slog.String("role", string(identity.Role)),
				)
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions").WithCause(ErrForbidden))
				return
			}

			next.ServeHTTP(writer, request.WithContext(ctxutil.WithIdentity(request.Context(), identity)))
		})
	}
}

// # Ownership

// Scope tells which ownership field of a resource is being checked.
type Scope int

const (
	// ScopeUser checks the buyer side (userId).
	ScopeUser Scope = iota + 1
	// ScopeAdmin checks the seller side (adminId).
	ScopeAdmin
)

// Ownership is the owner of one resource from one side.
type Ownership struct {
	Resource string
	Scope    Scope
	OwnerID  int64
}

// Owned describes a resource owned by a user.
func Owned(resource string, userID int64) Ownership {
	return Ownership{Resource: resource, Scope: ScopeUser, OwnerID: userID}
}

// AdminOwned describes a resource owned by an admin.
func AdminOwned(resource string, adminID int64) Ownership {
	return Ownership{Resource: resource, Scope: ScopeAdmin, OwnerID: adminID}
}

// AssertOwnsOrAdmin fails with 403 unless principalID owns the resource on
// the given side. A resource without an owner belongs to nobody.
func (guard *Guard) AssertOwnsOrAdmin(ownership Ownership, principalID int64) error {
	if ownership.OwnerID != 0 && ownership.OwnerID == principalID {
		return nil
	}

	guard.logger.Info("ownership_rejected",
		slog.String("resource", ownership.Resource),
		slog.Int("scope", int(ownership.Scope)),
		slog.Int64("owner_id", ownership.OwnerID),
		slog.Int64("principal_id", principalID),
	)

	return apperr.Forbidden(fmt.Sprintf("%s does not belong to principal", ownership.Resource)).WithCause(ErrForbidden)
}
