// Package genai provides GenAI-enhanced operations using the OpenAI API.
package genai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// ErrNoChoicesReturned indicates the API responded without any completion choices.
var ErrNoChoicesReturned = errors.New("no choices returned")

// chatService defines the minimal interface for chat completions, allowing
// tests to substitute a mock for the OpenAI client.
type chatService interface {
	New(ctx context.Context, params openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// ClientInterface is the surface consumed by components that generate text.
type ClientInterface interface {
	GeneratePrompt(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Opts holds configuration for the GenAI client.
type Opts struct {
	APIKey string
	Model  openai.ChatModel
}

// Option configures the GenAI client.
type Option func(*Opts)

// WithAPIKey sets the OpenAI API key, overriding the environment.
func WithAPIKey(key string) Option {
	return func(o *Opts) { o.APIKey = key }
}

// WithModel sets the chat model used for completions.
func WithModel(model openai.ChatModel) Option {
	return func(o *Opts) { o.Model = model }
}

// Client wraps the OpenAI chat completion service.
type Client struct {
	chat  chatService
	model openai.ChatModel
}

// NewClient initializes a GenAI client from options, falling back to the
// OPENAI_API_KEY environment variable.
func NewClient(opts ...Option) (*Client, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.APIKey == "" {
		slog.Error("genai.NewClient: OpenAI API key not set")
		return nil, fmt.Errorf("OPENAI_API_KEY not set")
	}
	if cfg.Model == "" {
		cfg.Model = openai.ChatModelGPT4oMini
	}
	cli := openai.NewClient(option.WithAPIKey(cfg.APIKey))
	slog.Debug("genai.NewClient: client initialized", "model", cfg.Model)
	return &Client{chat: &cli.Chat.Completions, model: cfg.Model}, nil
}

// GeneratePrompt generates a response based on the provided system and user prompts.
func (c *Client) GeneratePrompt(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
	}
	resp, err := c.chat.New(ctx, params)
	if err != nil {
		slog.Error("genai.GeneratePrompt: completion failed", "error", err)
		return "", err
	}
	if len(resp.Choices) == 0 {
		slog.Error("genai.GeneratePrompt: completion returned no choices")
		return "", ErrNoChoicesReturned
	}
	return resp.Choices[0].Message.Content, nil
}
