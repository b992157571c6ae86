// Copyright (c) 2026 Textgate. All rights reserved.
// Author: minh.ngo.dev@gmail.com

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/minhngo/textgate/internal/platform/apperr"
	"github.com/minhngo/textgate/internal/platform/constants"
	"github.com/minhngo/textgate/internal/platform/ctxutil"
	"github.com/minhngo/textgate/internal/platform/respond"
	"github.com/minhngo/textgate/internal/platform/sec"
)

// IdentityResolver defines the interface needed to resolve bearer tokens
// into principals.
//
// # Why an interface?
//
// Defining IdentityResolver here decouples the middleware from the auth
// service implementation, allowing us to easily inject fakes during unit
// testing. Resolution covers BOTH the cryptographic check and the store
// lookup: a token whose subject no longer exists must not authenticate.
type IdentityResolver interface {
	ResolveBearer(ctx context.Context, token string) (*sec.Principal, error)
}

// Authenticate extracts the bearer token from the Authorization header and
// resolves it to a principal.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, request proceeds as anonymous.
//  3. If present, resolve the token via [IdentityResolver].
//  4. Inject the [*sec.Principal] into the request context for downstream use.
func Authenticate(resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get(constants.HeaderAuthorization)

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != constants.BearerScheme {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// ── 3. Bearer Resolution ──────────────────────────────────────────
			principal, err := resolver.ResolveBearer(request.Context(), parts[1])
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithPrincipal(request.Context(), principal)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		principal := ctxutil.GetPrincipal(request.Context())
		if principal == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
