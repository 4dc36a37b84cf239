// Package ai wraps a hosted chat-completion API behind two fixed-prompt
// operations: converting raw clinical notes into a SOAP summary and drafting
// a referrer letter from a SOAP summary. Neither operation touches storage;
// persisting results onto notes is the caller's concern.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultModel   = "gpt-4"
	requestTimeout = 30 * time.Second
)

// ErrNotConfigured is returned when no provider endpoint or API key is set.
var ErrNotConfigured = errors.New("text generation is not configured: set OPENAI_ENDPOINT and OPENAI_API_KEY")

// GenerationError wraps an upstream completion failure. The message surfaced
// to callers is generic and retryable; the provider error stays wrapped for
// logs.
type GenerationError struct {
	Op  string
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("failed to %s; please try again later", e.Op)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Generator produces clinically formatted text from caller-supplied input.
type Generator interface {
	Summarize(ctx context.Context, clinicalText string) (string, error)
	DraftLetter(ctx context.Context, soapSummary, referrerName, referrerAddress, patientName string) (string, error)
}

// chatCompleter is the narrow slice of the OpenAI client the package uses.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Client is a Generator backed by an Azure OpenAI style chat-completion
// deployment. One synchronous call per operation; no retries, no streaming.
type Client struct {
	client chatCompleter
	model  string
}

// NewClient builds a Client for the given deployment. It returns
// ErrNotConfigured when endpoint or API key is empty, so the decision whether
// the AI feature exists at all is made once, at startup.
func NewClient(endpoint, apiKey, model string) (*Client, error) {
	if strings.TrimSpace(endpoint) == "" || strings.TrimSpace(apiKey) == "" {
		return nil, ErrNotConfigured
	}
	if model == "" {
		model = defaultModel
	}

	cfg := openai.DefaultAzureConfig(apiKey, endpoint)
	// The deployment is named after the model, no mapping needed.
	cfg.AzureModelMapperFunc = func(m string) string { return m }

	return &Client{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}, nil
}

// Summarize converts raw clinical notes into a four-section SOAP summary.
// Callers are expected to reject short input before invoking this; the client
// only guards against empty text.
func (c *Client) Summarize(ctx context.Context, clinicalText string) (string, error) {
	if strings.TrimSpace(clinicalText) == "" {
		return "", errors.New("clinical text cannot be empty")
	}

	summary, err := c.complete(ctx, soapSystemPrompt, summarizeUserPrompt(clinicalText))
	if err != nil {
		return "", &GenerationError{Op: "summarize clinical notes", Err: err}
	}
	return summary, nil
}

// DraftLetter writes a referral letter from a SOAP summary. referrerAddress
// and patientName may be empty; a generic placeholder stands in for a missing
// patient name.
func (c *Client) DraftLetter(ctx context.Context, soapSummary, referrerName, referrerAddress, patientName string) (string, error) {
	if strings.TrimSpace(soapSummary) == "" {
		return "", errors.New("SOAP summary cannot be empty")
	}
	if strings.TrimSpace(referrerName) == "" {
		return "", errors.New("referrer name cannot be empty")
	}

	letter, err := c.complete(ctx, letterSystemPrompt, letterUserPrompt(soapSummary, referrerName, referrerAddress, patientName))
	if err != nil {
		return "", &GenerationError{Op: "generate referrer letter", Err: err}
	}
	return letter, nil
}

func (c *Client) complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
