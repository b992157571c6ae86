// Copyright (c) 2026 Textgate. All rights reserved.
// Author: minh.ngo.dev@gmail.com

/*
Package textgen forwards text generation operations to an upstream
OpenAI-style provider.

It offers four operations: free-form completion, translation between named
languages, single-call summarization, and model metadata retrieval. All
request validation happens locally before any upstream call; upstream
failures are folded into a closed taxonomy of application errors so the
provider's own error surface never leaks to clients.
*/
package textgen

// # Tunables

const (
	// DefaultTemperature is applied when the caller omits temperature.
	DefaultTemperature = 0.7

	// DefaultMaxTokens is applied when the caller omits max_tokens.
	DefaultMaxTokens = 256

	// MinTemperature and MaxTemperature bound the sampling temperature.
	MinTemperature = 0.0
	MaxTemperature = 1.0

	// MinMaxTokens and MaxMaxTokens bound the completion length.
	MinMaxTokens = 1
	MaxMaxTokens = 4096

	// TranslationModel is the fixed model used for translation calls.
	TranslationModel = "gpt-3.5-turbo"

	// SummaryPrefix is prepended to the text of every summarization call.
	SummaryPrefix = "Summarize the following text:\n\n"
)

// # Field Names

const (
	FieldText           = "text"
	FieldModel          = "model"
	FieldTemperature    = "temperature"
	FieldMaxTokens      = "max_tokens"
	FieldSourceLanguage = "source_language"
	FieldTargetLanguage = "target_language"
	FieldModelID        = "model_id"
)

// # Domain Types

// CompletionInput carries a validated completion or summarization request.
//
// Temperature and MaxTokens are pointers so an omitted field is
// distinguishable from an explicit zero.
type CompletionInput struct {
	Prompt      string
	Model       string
	Temperature *float64
	MaxTokens   *int
}

// TranslationInput carries a validated translation request.
type TranslationInput struct {
	Text           string
	SourceLanguage string
	TargetLanguage string
}

// Result is the uniform outcome of every generation operation.
type Result struct {
	Response string `json:"response"`
}

// ModelDescriptor is the metadata the upstream provider reports for a model.
type ModelDescriptor struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	OwnedBy string `json:"owned_by"`
}
