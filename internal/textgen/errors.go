// Copyright (c) 2026 Textgate. All rights reserved.
// Author: minh.ngo.dev@gmail.com

package textgen

import (
	"net/http"

	"github.com/minhngo/textgate/internal/platform/apperr"
)

// # Upstream Error Taxonomy
//
// Every upstream failure is folded into exactly one of the codes below.
// Client-facing messages are fixed strings; the provider's original error
// travels only in Cause, where it reaches the server log but never the
// response body.

const (
	CodeUpstreamAuthError    = "UPSTREAM_AUTH_ERROR"
	CodeUpstreamRateLimited  = "UPSTREAM_RATE_LIMITED"
	CodeUpstreamBadRequest   = "UPSTREAM_BAD_REQUEST"
	CodeUpstreamTimeout      = "UPSTREAM_TIMEOUT"
	CodeUpstreamUnreachable  = "UPSTREAM_UNREACHABLE"
	CodeUpstreamGenericError = "UPSTREAM_GENERIC_ERROR"
)

// upstreamAuthError reports that the provider rejected our credentials.
func upstreamAuthError(cause error) *apperr.AppError {
	return &apperr.AppError{
		Code:       CodeUpstreamAuthError,
		Message:    "Upstream provider rejected the configured credentials",
		HTTPStatus: http.StatusUnauthorized,
		Cause:      cause,
	}
}

// upstreamRateLimited reports that the provider throttled the request.
func upstreamRateLimited(cause error) *apperr.AppError {
	return &apperr.AppError{
		Code:       CodeUpstreamRateLimited,
		Message:    "Upstream provider rate limit exceeded",
		HTTPStatus: http.StatusTooManyRequests,
		Cause:      cause,
	}
}

// upstreamBadRequest reports that the provider deemed the request invalid.
func upstreamBadRequest(cause error) *apperr.AppError {
	return &apperr.AppError{
		Code:       CodeUpstreamBadRequest,
		Message:    "Upstream provider rejected the request",
		HTTPStatus: http.StatusBadRequest,
		Cause:      cause,
	}
}

// upstreamTimeout reports that the provider did not answer in time.
func upstreamTimeout(cause error) *apperr.AppError {
	return &apperr.AppError{
		Code:       CodeUpstreamTimeout,
		Message:    "Upstream provider timed out",
		HTTPStatus: http.StatusGatewayTimeout,
		Cause:      cause,
	}
}

// upstreamUnreachable reports a transport-level failure before any response.
func upstreamUnreachable(cause error) *apperr.AppError {
	return &apperr.AppError{
		Code:       CodeUpstreamUnreachable,
		Message:    "Upstream provider is unreachable",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// upstreamGenericError covers every provider failure the taxonomy does not
// name, including 5xx responses.
func upstreamGenericError(cause error) *apperr.AppError {
	return &apperr.AppError{
		Code:       CodeUpstreamGenericError,
		Message:    "Upstream provider returned an unexpected error",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}
