// Copyright (c) 2026 Textgate. All rights reserved.
// Author: minh.ngo.dev@gmail.com

package textgen

import (
	"bytes"
	stdctx "context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// # Upstream HTTP Client

// ClientConfig holds the settings for the upstream provider connection.
type ClientConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client is the HTTP client for the upstream OpenAI-style provider.
//
// One instance is shared across the process; the embedded http.Client pools
// connections and enforces the per-call timeout.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs an upstream [Client] from configuration.
func NewClient(config ClientConfig) *Client {
	return &Client{
		apiKey:  config.APIKey,
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// # Wire Payloads

type completionPayload struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

// The provider names the language pair from_language/to_language on the
// wire, unlike the public API.
type translationPayload struct {
	Model        string `json:"model"`
	Text         string `json:"text"`
	FromLanguage string `json:"from_language"`
	ToLanguage   string `json:"to_language"`
}

type choicesResponse struct {
	Choices []struct {
		Text string `json:"text"`
	} `json:"choices"`
}

type providerError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// # Operations

/*
Complete calls the provider's completion endpoint and returns the text of the
first choice.

Parameters:
  - context: context.Context
  - input: CompletionInput with all defaults already resolved

Returns:
  - string: Generated text
  - error: One of the UPSTREAM_* application errors
*/
func (client *Client) Complete(context stdctx.Context, input CompletionInput) (string, error) {
	payload := completionPayload{
		Model:       input.Model,
		Prompt:      input.Prompt,
		Temperature: *input.Temperature,
		MaxTokens:   *input.MaxTokens,
	}

	body, err := client.post(context, "/completions", payload)
	if err != nil {
		return "", err
	}

	return firstChoice(body)
}

/*
Translate calls the provider's translation endpoint with a fixed chat model
and returns the translated text.

Parameters:
  - context: context.Context
  - input: TranslationInput

Returns:
  - string: Translated text
  - error: One of the UPSTREAM_* application errors
*/
func (client *Client) Translate(context stdctx.Context, input TranslationInput) (string, error) {
	payload := translationPayload{
		Model:        TranslationModel,
		Text:         input.Text,
		FromLanguage: input.SourceLanguage,
		ToLanguage:   input.TargetLanguage,
	}

	body, err := client.post(context, "/translations", payload)
	if err != nil {
		return "", err
	}

	return firstChoice(body)
}

/*
GetModel retrieves the provider's metadata for a single model.

Parameters:
  - context: context.Context
  - modelID: string

Returns:
  - *ModelDescriptor: Decoded model metadata
  - error: One of the UPSTREAM_* application errors
*/
func (client *Client) GetModel(context stdctx.Context, modelID string) (*ModelDescriptor, error) {
	endpoint := client.baseURL + "/models/" + url.PathEscape(modelID)

	request, err := http.NewRequestWithContext(context, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, upstreamUnreachable(err)
	}
	request.Header.Set("Authorization", "Bearer "+client.apiKey)

	body, err := client.do(request)
	if err != nil {
		return nil, err
	}

	var descriptor ModelDescriptor
	if err := json.Unmarshal(body, &descriptor); err != nil {
		return nil, upstreamGenericError(fmt.Errorf("decode model response: %w", err))
	}

	return &descriptor, nil
}

// # Transport Plumbing

// post sends a JSON body to baseURL+path and returns the raw success body.
func (client *Client) post(context stdctx.Context, path string, payload any) ([]byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, upstreamGenericError(fmt.Errorf("encode request: %w", err))
	}

	request, err := http.NewRequestWithContext(
		context, http.MethodPost, client.baseURL+path, bytes.NewReader(encoded),
	)
	if err != nil {
		return nil, upstreamUnreachable(err)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Authorization", "Bearer "+client.apiKey)

	return client.do(request)
}

// do executes the request and folds every failure into the upstream taxonomy.
func (client *Client) do(request *http.Request) ([]byte, error) {
	response, err := client.httpClient.Do(request)
	if err != nil {
		// Deadline expiry (client timeout or caller context) is a timeout;
		// every other transport failure means we never reached the provider.
		if errors.Is(err, stdctx.DeadlineExceeded) || os.IsTimeout(err) {
			return nil, upstreamTimeout(err)
		}
		return nil, upstreamUnreachable(err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, upstreamUnreachable(err)
	}

	if response.StatusCode >= http.StatusOK && response.StatusCode < http.StatusMultipleChoices {
		return body, nil
	}

	cause := fmt.Errorf("upstream status %d: %s", response.StatusCode, providerMessage(body))

	switch response.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, upstreamAuthError(cause)
	case http.StatusTooManyRequests:
		return nil, upstreamRateLimited(cause)
	case http.StatusBadRequest, http.StatusNotFound, http.StatusUnprocessableEntity:
		return nil, upstreamBadRequest(cause)
	case http.StatusRequestTimeout:
		return nil, upstreamTimeout(cause)
	default:
		return nil, upstreamGenericError(cause)
	}
}

// firstChoice extracts the text of the first completion choice.
func firstChoice(body []byte) (string, error) {
	var decoded choicesResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", upstreamGenericError(fmt.Errorf("decode choices: %w", err))
	}
	if len(decoded.Choices) == 0 {
		return "", upstreamGenericError(errors.New("upstream returned no choices"))
	}
	return decoded.Choices[0].Text, nil
}

// providerMessage pulls the human message out of a provider error body, if any.
func providerMessage(body []byte) string {
	var decoded providerError
	if err := json.Unmarshal(body, &decoded); err == nil && decoded.Error.Message != "" {
		return decoded.Error.Message
	}
	return strings.TrimSpace(string(body))
}
