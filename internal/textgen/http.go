// Copyright (c) 2026 Textgate. All rights reserved.
// Author: minh.ngo.dev@gmail.com

package textgen

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/minhngo/textgate/internal/platform/apperr"
	requestutil "github.com/minhngo/textgate/internal/platform/request"
	"github.com/minhngo/textgate/internal/platform/respond"
)

// # HTTP Handler

// Handler exposes the text generation endpoints over HTTP.
//
// Every route requires an authenticated principal; the sub-router is mounted
// behind the authentication gate by the server.
type Handler struct {
	service  *Service
	recorder UsageRecorder
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, recorder UsageRecorder) *Handler {
	return &Handler{
		service:  service,
		recorder: recorder,
	}
}

// Routes assembles the text sub-router mounted at /api/v1/text.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/complete", handler.complete)
	router.Post("/translate", handler.translate)
	router.Post("/summarize", handler.summarize)
	router.Get("/models/{model_id}", handler.getModel)

	return router
}

// # Request Payloads

type completeRequest struct {
	Text        string   `json:"text"`
	Model       string   `json:"model"`
	Temperature *float64 `json:"temperature"`
	MaxTokens   *int     `json:"max_tokens"`
}

type translateRequest struct {
	Text           string `json:"text"`
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
}

type summarizeRequest struct {
	Text  string `json:"text"`
	Model string `json:"model"`
}

// # Endpoints

/*
complete handles POST /complete.

Description: Forwards a free-form completion to the upstream provider and
answers with the generated text. The call is metered per user.
*/
func (handler *Handler) complete(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload completeRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	started := time.Now()
	result, err := handler.service.Complete(request.Context(), CompletionInput{
		Prompt:      payload.Text,
		Model:       payload.Model,
		Temperature: payload.Temperature,
		MaxTokens:   payload.MaxTokens,
	})
	handler.record(request, principal.UserID, started, payload, result, err)

	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

/*
translate handles POST /translate.

Description: Translates text between the named languages via the upstream
provider. The call is metered per user.
*/
func (handler *Handler) translate(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload translateRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	started := time.Now()
	result, err := handler.service.Translate(request.Context(), TranslationInput{
		Text:           payload.Text,
		SourceLanguage: payload.SourceLanguage,
		TargetLanguage: payload.TargetLanguage,
	})
	handler.record(request, principal.UserID, started, payload, result, err)

	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

/*
summarize handles POST /summarize.

Description: Produces a single-call summary of the supplied text. The model
is optional; temperature and token budget are fixed server-side.
*/
func (handler *Handler) summarize(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload summarizeRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	started := time.Now()
	result, err := handler.service.Summarize(request.Context(), payload.Text, payload.Model)
	handler.record(request, principal.UserID, started, payload, result, err)

	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

/*
getModel handles GET /models/{model_id}.

Description: Returns the provider's metadata for one allow-listed model.
*/
func (handler *Handler) getModel(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	modelID := requestutil.Param(request, "model_id")

	started := time.Now()
	descriptor, err := handler.service.GetModel(request.Context(), modelID)
	handler.record(request, principal.UserID, started, nil, descriptor, err)

	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, descriptor)
}

// # Metering

// record hands the outcome of an operation to the usage recorder. Encoding
// failures here produce empty payload columns rather than a failed request.
func (handler *Handler) record(
	request *http.Request, userID int64, started time.Time, payload, result any, callErr error,
) {
	statusCode := http.StatusOK
	if callErr != nil {
		statusCode = apperr.StatusOf(callErr)
	}

	var requestData, responseData []byte
	if payload != nil {
		requestData, _ = json.Marshal(payload)
	}
	if result != nil && callErr == nil {
		responseData, _ = json.Marshal(result)
	}

	handler.recorder.Record(request.Context(), UsageRecord{
		UserID:       userID,
		Endpoint:     request.URL.Path,
		StatusCode:   statusCode,
		ElapsedMS:    time.Since(started).Milliseconds(),
		RequestData:  requestData,
		ResponseData: responseData,
	})
}
