// Copyright (c) 2026 Textgate. All rights reserved.
// Author: minh.ngo.dev@gmail.com

package textgen_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhngo/textgate/internal/platform/apperr"
	"github.com/minhngo/textgate/internal/platform/ctxutil"
	"github.com/minhngo/textgate/internal/platform/sec"
	"github.com/minhngo/textgate/internal/textgen"
)

// fakeRecorder captures usage records handed off by the handler.
type fakeRecorder struct {
	records []textgen.UsageRecord
}

func (recorder *fakeRecorder) Record(_ context.Context, record textgen.UsageRecord) {
	recorder.records = append(recorder.records, record)
}

func newTextRouter(upstream *fakeUpstream, recorder *fakeRecorder) *chi.Mux {
	service := newTestTextService(upstream)
	handler := textgen.NewHandler(service, recorder)

	router := chi.NewRouter()
	router.Mount("/api/v1/text", handler.Routes())
	return router
}

// asUser injects a resolved principal, standing in for the auth middleware.
func asUser(request *http.Request, userID int64) *http.Request {
	principal := &sec.Principal{UserID: userID, Username: "minh", Email: "minh@textgate.dev"}
	return request.WithContext(ctxutil.WithPrincipal(request.Context(), principal))
}

/*
TestTextHandler_Complete verifies the bare response contract and the usage
hand-off for a successful completion.
*/
func TestTextHandler_Complete(t *testing.T) {
	upstream := &fakeUpstream{}
	recorder := &fakeRecorder{}
	router := newTextRouter(upstream, recorder)

	body, _ := json.Marshal(map[string]string{"text": "Say hello"})
	request := httptest.NewRequest(http.MethodPost, "/api/v1/text/complete", bytes.NewReader(body))
	request = asUser(request, 7)

	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	require.Equal(t, http.StatusOK, response.Code)
	assert.JSONEq(t, `{"response": "generated"}`, response.Body.String())

	require.Len(t, recorder.records, 1)
	record := recorder.records[0]
	assert.Equal(t, int64(7), record.UserID)
	assert.Equal(t, "/api/v1/text/complete", record.Endpoint)
	assert.Equal(t, http.StatusOK, record.StatusCode)
	assert.NotEmpty(t, record.RequestData)
	assert.NotEmpty(t, record.ResponseData)
}

/*
TestTextHandler_Complete_TextOnly verifies that a body carrying nothing but
the text field is a complete request: every tuning parameter is optional.
*/
func TestTextHandler_Complete_TextOnly(t *testing.T) {
	upstream := &fakeUpstream{}
	recorder := &fakeRecorder{}
	router := newTextRouter(upstream, recorder)

	request := httptest.NewRequest(http.MethodPost, "/api/v1/text/complete", bytes.NewReader([]byte(`{"text": "hi"}`)))
	request = asUser(request, 7)

	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	require.Equal(t, http.StatusOK, response.Code)
	assert.JSONEq(t, `{"response": "generated"}`, response.Body.String())

	require.Len(t, upstream.completions, 1)
	assert.Equal(t, "hi", upstream.completions[0].Prompt)
}

/*
TestTextHandler_Complete_Unauthenticated verifies that a missing principal
yields 401 before any upstream traffic.
*/
func TestTextHandler_Complete_Unauthenticated(t *testing.T) {
	upstream := &fakeUpstream{}
	recorder := &fakeRecorder{}
	router := newTextRouter(upstream, recorder)

	body, _ := json.Marshal(map[string]string{"text": "Say hello"})
	request := httptest.NewRequest(http.MethodPost, "/api/v1/text/complete", bytes.NewReader(body))

	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	assert.Equal(t, http.StatusUnauthorized, response.Code)
	assert.Empty(t, upstream.completions)
	assert.Empty(t, recorder.records)
}

/*
TestTextHandler_Complete_ValidationError verifies that validation failures
are still metered with their error status.
*/
func TestTextHandler_Complete_ValidationError(t *testing.T) {
	upstream := &fakeUpstream{}
	recorder := &fakeRecorder{}
	router := newTextRouter(upstream, recorder)

	body, _ := json.Marshal(map[string]any{"text": "hi", "temperature": 2.0})
	request := httptest.NewRequest(http.MethodPost, "/api/v1/text/complete", bytes.NewReader(body))
	request = asUser(request, 7)

	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	require.Equal(t, http.StatusBadRequest, response.Code)
	assert.Empty(t, upstream.completions)

	require.Len(t, recorder.records, 1)
	assert.Equal(t, http.StatusBadRequest, recorder.records[0].StatusCode)
	assert.Empty(t, recorder.records[0].ResponseData)
}

/*
TestTextHandler_Translate verifies the translation endpoint contract.
*/
func TestTextHandler_Translate(t *testing.T) {
	upstream := &fakeUpstream{}
	recorder := &fakeRecorder{}
	router := newTextRouter(upstream, recorder)

	body, _ := json.Marshal(map[string]string{
		"text":            "bonjour",
		"source_language": "French",
		"target_language": "English",
	})
	request := httptest.NewRequest(http.MethodPost, "/api/v1/text/translate", bytes.NewReader(body))
	request = asUser(request, 7)

	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	require.Equal(t, http.StatusOK, response.Code)
	assert.JSONEq(t, `{"response": "translated"}`, response.Body.String())

	require.Len(t, upstream.translations, 1)
	assert.Equal(t, "French", upstream.translations[0].SourceLanguage)
}

/*
TestTextHandler_Summarize verifies the summarization endpoint contract.
*/
func TestTextHandler_Summarize(t *testing.T) {
	upstream := &fakeUpstream{}
	recorder := &fakeRecorder{}
	router := newTextRouter(upstream, recorder)

	body, _ := json.Marshal(map[string]string{"text": "a long article", "model": "text-curie-001"})
	request := httptest.NewRequest(http.MethodPost, "/api/v1/text/summarize", bytes.NewReader(body))
	request = asUser(request, 7)

	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	require.Equal(t, http.StatusOK, response.Code)
	assert.JSONEq(t, `{"response": "generated"}`, response.Body.String())

	require.Len(t, upstream.completions, 1)
	assert.Equal(t, textgen.SummaryPrefix+"a long article", upstream.completions[0].Prompt)
	assert.Equal(t, "text-curie-001", upstream.completions[0].Model)
}

/*
TestTextHandler_GetModel verifies the model metadata endpoint.
*/
func TestTextHandler_GetModel(t *testing.T) {
	upstream := &fakeUpstream{}
	recorder := &fakeRecorder{}
	router := newTextRouter(upstream, recorder)

	request := httptest.NewRequest(http.MethodGet, "/api/v1/text/models/text-davinci-003", nil)
	request = asUser(request, 7)

	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	require.Equal(t, http.StatusOK, response.Code)

	var descriptor map[string]string
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &descriptor))
	assert.Equal(t, "text-davinci-003", descriptor["id"])
	assert.Equal(t, "model", descriptor["object"])

	require.Len(t, recorder.records, 1)
	assert.Equal(t, http.StatusOK, recorder.records[0].StatusCode)
}

/*
TestTextHandler_UpstreamFailureStatus verifies that upstream taxonomy errors
render with their mapped HTTP status and code.
*/
func TestTextHandler_UpstreamFailureStatus(t *testing.T) {
	upstream := &fakeUpstream{err: &apperr.AppError{
		Code:       textgen.CodeUpstreamRateLimited,
		Message:    "Upstream provider rate limit exceeded",
		HTTPStatus: http.StatusTooManyRequests,
	}}
	recorder := &fakeRecorder{}
	router := newTextRouter(upstream, recorder)

	body, _ := json.Marshal(map[string]string{"text": "hi"})
	request := httptest.NewRequest(http.MethodPost, "/api/v1/text/complete", bytes.NewReader(body))
	request = asUser(request, 7)

	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	require.Equal(t, http.StatusTooManyRequests, response.Code)

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &envelope))
	assert.Equal(t, textgen.CodeUpstreamRateLimited, envelope["code"])

	require.Len(t, recorder.records, 1)
	assert.Equal(t, http.StatusTooManyRequests, recorder.records[0].StatusCode)
}
