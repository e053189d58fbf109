// Package llm talks to hosted language models through a small provider
// abstraction with retry, event logging and JSON Schema validation.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
)

// Provider generates one structured completion per request.
type Provider interface {
	// Generate sends req and returns the model's output. When req.Schema
	// is set the output is JSON validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// Name returns the provider name, e.g. "anthropic".
	Name() string

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request is a single-turn prompt.
type Request struct {
	System string
	Prompt string

	// Schema, when set, asks the provider for JSON in this shape.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Schema is a named JSON Schema.
type Schema struct {
	// Name is kebab-case, e.g. "card-explanation".
	Name        string
	Description string
	Definition  map[string]any
}

// StopReason is why generation stopped, normalized across providers.
type StopReason string

const (
	StopEnd       StopReason = "end"
	StopMaxTokens StopReason = "max_tokens"
)

// Response holds the LLM's output.
type Response struct {
	Content json.RawMessage
	Usage   Usage
	Model   string
	Stop    StopReason
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Total returns input plus output tokens.
func (u Usage) Total() int { return u.InputTokens + u.OutputTokens }

// Decode unmarshals a response's content into T.
func Decode[T any](resp *Response) (T, error) {
	var v T
	if err := json.Unmarshal(resp.Content, &v); err != nil {
		return v, &InvalidResponseError{Content: resp.Content, Err: fmt.Errorf("decode: %w", err)}
	}
	return v, nil
}

// finish turns raw provider output into a Response, enforcing truncation
// and schema checks the same way for every provider.
func finish(req Request, content json.RawMessage, usage Usage, model string, stop StopReason) (*Response, error) {
	if stop == StopMaxTokens {
		return nil, &TruncatedError{Content: content}
	}
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}
	return &Response{Content: content, Usage: usage, Model: model, Stop: stop}, nil
}

// resolveModel maps a friendly model name to a provider model ID. Unknown
// names are used as-is.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
