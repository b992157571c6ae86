// Copyright (c) 2026 Textgate. All rights reserved.
// Author: minh.ngo.dev@gmail.com

package textgen

import (
	"context"

	"github.com/minhngo/textgate/internal/platform/validate"
)

// # Contracts

// UpstreamClient is the provider surface the service depends on.
type UpstreamClient interface {
	Complete(ctx context.Context, input CompletionInput) (string, error)
	Translate(ctx context.Context, input TranslationInput) (string, error)
	GetModel(ctx context.Context, modelID string) (*ModelDescriptor, error)
}

// UsageRecord is one accounting row for a completed generation request.
type UsageRecord struct {
	UserID       int64
	Endpoint     string
	StatusCode   int
	ElapsedMS    int64
	RequestData  []byte
	ResponseData []byte
}

// UsageRecorder receives a usage record after each operation. Recording is
// best effort and must never fail the caller's request.
type UsageRecorder interface {
	Record(ctx context.Context, record UsageRecord)
}

// # Service

// Service validates generation requests and dispatches them upstream.
//
// All parameter validation happens here, before any network call: a request
// the provider would reject for shape reasons never leaves the process.
type Service struct {
	upstream      UpstreamClient
	allowedModels []string
	defaultModel  string
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(upstream UpstreamClient, allowedModels []string, defaultModel string) *Service {
	return &Service{
		upstream:      upstream,
		allowedModels: allowedModels,
		defaultModel:  defaultModel,
	}
}

// # Operations

/*
Complete validates a completion request, applies defaults, and forwards it.

Description: Model must belong to the configured allow-list; temperature and
max_tokens are range-checked only when present and defaulted when omitted.

Parameters:
  - context: context.Context
  - input: CompletionInput as decoded from the client

Returns:
  - *Result: Generated text
  - error: apperr.ValidationError or an UPSTREAM_* error
*/
func (service *Service) Complete(context context.Context, input CompletionInput) (*Result, error) {
	validator := &validate.Validator{}
	validator.Required(FieldText, input.Prompt)

	if input.Model != "" {
		validator.OneOf(FieldModel, input.Model, service.allowedModels...)
	}
	if input.Temperature != nil {
		validator.FloatRange(FieldTemperature, *input.Temperature, MinTemperature, MaxTemperature)
	}
	if input.MaxTokens != nil {
		validator.Range(FieldMaxTokens, *input.MaxTokens, MinMaxTokens, MaxMaxTokens)
	}

	if validator.HasErrors() {
		return nil, validator.Err()
	}

	service.applyDefaults(&input)

	text, err := service.upstream.Complete(context, input)
	if err != nil {
		return nil, err
	}

	return &Result{Response: text}, nil
}

/*
Translate validates a translation request and forwards it.

Parameters:
  - context: context.Context
  - input: TranslationInput as decoded from the client

Returns:
  - *Result: Translated text
  - error: apperr.ValidationError or an UPSTREAM_* error
*/
func (service *Service) Translate(context context.Context, input TranslationInput) (*Result, error) {
	validator := &validate.Validator{}
	validator.
		Required(FieldText, input.Text).
		Required(FieldSourceLanguage, input.SourceLanguage).
		Required(FieldTargetLanguage, input.TargetLanguage)

	if validator.HasErrors() {
		return nil, validator.Err()
	}

	text, err := service.upstream.Translate(context, input)
	if err != nil {
		return nil, err
	}

	return &Result{Response: text}, nil
}

/*
Summarize wraps the text in a fixed summarization prompt and completes it.

Description: The model is optional and must belong to the allow-list when
given; the summary call always uses the stock temperature and token budget.
Caller-supplied tuning parameters are not part of the summarize contract.

Parameters:
  - context: context.Context
  - text: string
  - model: string, empty for the configured default

Returns:
  - *Result: Summary text
  - error: apperr.ValidationError or an UPSTREAM_* error
*/
func (service *Service) Summarize(context context.Context, text string, model string) (*Result, error) {
	validator := &validate.Validator{}
	validator.Required(FieldText, text)

	if model != "" {
		validator.OneOf(FieldModel, model, service.allowedModels...)
	}

	if validator.HasErrors() {
		return nil, validator.Err()
	}

	if model == "" {
		model = service.defaultModel
	}

	temperature := DefaultTemperature
	maxTokens := DefaultMaxTokens

	generated, err := service.upstream.Complete(context, CompletionInput{
		Prompt:      SummaryPrefix + text,
		Model:       model,
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		return nil, err
	}

	return &Result{Response: generated}, nil
}

/*
GetModel validates the model identifier against the allow-list and fetches
its metadata from the provider.

Parameters:
  - context: context.Context
  - modelID: string

Returns:
  - *ModelDescriptor: Provider metadata
  - error: apperr.ValidationError or an UPSTREAM_* error
*/
func (service *Service) GetModel(context context.Context, modelID string) (*ModelDescriptor, error) {
	validator := &validate.Validator{}
	validator.Required(FieldModelID, modelID)

	if modelID != "" {
		validator.OneOf(FieldModelID, modelID, service.allowedModels...)
	}

	if validator.HasErrors() {
		return nil, validator.Err()
	}

	return service.upstream.GetModel(context, modelID)
}

// # Defaults

// applyDefaults fills omitted tuning parameters in place.
func (service *Service) applyDefaults(input *CompletionInput) {
	if input.Model == "" {
		input.Model = service.defaultModel
	}
	if input.Temperature == nil {
		temperature := DefaultTemperature
		input.Temperature = &temperature
	}
	if input.MaxTokens == nil {
		maxTokens := DefaultMaxTokens
		input.MaxTokens = &maxTokens
	}
}
