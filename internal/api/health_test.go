// Copyright (c) 2026 Textgate. All rights reserved.
// Author: minh.ngo.dev@gmail.com

package api_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhngo/textgate/internal/api"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

/*
TestHealth_Liveness verifies the liveness probe contract.
*/
func TestHealth_Liveness(t *testing.T) {
	liveness, _ := api.NewHealthHandlers(api.HealthDependencies{}, discardLogger())

	response := httptest.NewRecorder()
	liveness(response, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, response.Code)
	assert.JSONEq(t, `{"status": "ok"}`, response.Body.String())
}

/*
TestHealth_Readiness verifies that the readiness probe reports each
dependency check and degrades the status on failure.
*/
func TestHealth_Readiness(t *testing.T) {
	tests := []struct {
		name       string
		cacheErr   error
		wantCode   int
		wantStatus string
	}{
		{"all_healthy", nil, http.StatusOK, "ready"},
		{"cache_down", errors.New("dial tcp: connection refused"), http.StatusServiceUnavailable, "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, readiness := api.NewHealthHandlers(api.HealthDependencies{
				CheckDatabase: func() error { return nil },
				CheckCache:    func() error { return tt.cacheErr },
			}, discardLogger())

			response := httptest.NewRecorder()
			readiness(response, httptest.NewRequest(http.MethodGet, "/ready", nil))

			require.Equal(t, tt.wantCode, response.Code)

			var body struct {
				Status string `json:"status"`
				Checks []struct {
					Name string `json:"name"`
					IsOK bool   `json:"ok"`
				} `json:"checks"`
			}
			require.NoError(t, json.Unmarshal(response.Body.Bytes(), &body))
			assert.Equal(t, tt.wantStatus, body.Status)
			require.Len(t, body.Checks, 2)
			assert.True(t, body.Checks[0].IsOK)
			assert.Equal(t, tt.cacheErr == nil, body.Checks[1].IsOK)
		})
	}
}
