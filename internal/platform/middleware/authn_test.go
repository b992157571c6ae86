// Copyright (c) 2026 Textgate. All rights reserved.
// Author: minh.ngo.dev@gmail.com

package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhngo/textgate/internal/platform/apperr"
	"github.com/minhngo/textgate/internal/platform/ctxutil"
	"github.com/minhngo/textgate/internal/platform/middleware"
	"github.com/minhngo/textgate/internal/platform/sec"
)

// fakeResolver accepts exactly one token string.
type fakeResolver struct {
	validToken string
	principal  *sec.Principal
}

func (resolver *fakeResolver) ResolveBearer(_ context.Context, token string) (*sec.Principal, error) {
	if token == resolver.validToken {
		return resolver.principal, nil
	}
	return nil, apperr.Unauthorized("Invalid or expired token")
}

func newAuthChain(resolver middleware.IdentityResolver, requireAuth bool) http.Handler {
	inner := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		principal := ctxutil.GetPrincipal(request.Context())
		if principal != nil {
			writer.Header().Set("X-Test-User", principal.Username)
		}
		writer.WriteHeader(http.StatusOK)
	})

	var handler http.Handler = inner
	if requireAuth {
		handler = middleware.RequireAuth(handler)
	}
	return middleware.Authenticate(resolver)(handler)
}

/*
TestAuthenticate verifies header parsing, anonymous passthrough, and
principal injection.
*/
func TestAuthenticate(t *testing.T) {
	resolver := &fakeResolver{
		validToken: "good-token",
		principal:  &sec.Principal{UserID: 7, Username: "minh"},
	}

	tests := []struct {
		name           string
		header         string
		expectedStatus int
		expectedUser   string
	}{
		{"no_header_is_anonymous", "", http.StatusOK, ""},
		{"valid_bearer", "Bearer good-token", http.StatusOK, "minh"},
		{"case_insensitive_scheme", "bearer good-token", http.StatusOK, "minh"},
		{"wrong_scheme", "Basic good-token", http.StatusUnauthorized, ""},
		{"missing_token", "Bearer", http.StatusUnauthorized, ""},
		{"too_many_parts", "Bearer a b", http.StatusUnauthorized, ""},
		{"unknown_token", "Bearer bad-token", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newAuthChain(resolver, false)

			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.expectedStatus, recorder.Code)
			assert.Equal(t, tt.expectedUser, recorder.Header().Get("X-Test-User"))
		})
	}
}

/*
TestRequireAuth verifies that protected routes reject anonymous requests
while Authenticate alone lets them pass.
*/
func TestRequireAuth(t *testing.T) {
	resolver := &fakeResolver{
		validToken: "good-token",
		principal:  &sec.Principal{UserID: 7, Username: "minh"},
	}

	// 1. Anonymous request against a protected chain
	protected := newAuthChain(resolver, true)
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	recorder := httptest.NewRecorder()
	protected.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "UNAUTHORIZED")

	// 2. Authenticated request passes
	request = httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Authorization", "Bearer good-token")
	recorder = httptest.NewRecorder()
	protected.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
}
