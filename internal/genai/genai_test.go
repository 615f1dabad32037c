package genai

import (
	"context"
	"errors"
	"testing"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// mockChatService substitutes the OpenAI completion service in tests.
type mockChatService struct {
	completion *openai.ChatCompletion
	err        error
	gotParams  openai.ChatCompletionNewParams
}

func (m *mockChatService) New(ctx context.Context, params openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error) {
	m.gotParams = params
	if m.err != nil {
		return nil, m.err
	}
	return m.completion, nil
}

func TestGeneratePrompt(t *testing.T) {
	mock := &mockChatService{
		completion: &openai.ChatCompletion{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: "generated follow-up"}},
			},
		},
	}
	client := &Client{chat: mock, model: openai.ChatModelGPT4oMini}

	got, err := client.GeneratePrompt(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "generated follow-up" {
		t.Errorf("expected completion content, got %q", got)
	}
	if mock.gotParams.Model != openai.ChatModelGPT4oMini {
		t.Errorf("expected configured model, got %q", mock.gotParams.Model)
	}
	if len(mock.gotParams.Messages) != 2 {
		t.Errorf("expected system+user messages, got %d", len(mock.gotParams.Messages))
	}
}

func TestGeneratePromptAPIError(t *testing.T) {
	apiErr := errors.New("rate limited")
	client := &Client{chat: &mockChatService{err: apiErr}, model: openai.ChatModelGPT4oMini}

	_, err := client.GeneratePrompt(context.Background(), "system", "user")
	if !errors.Is(err, apiErr) {
		t.Errorf("expected API error to propagate, got %v", err)
	}
}

func TestGeneratePromptNoChoices(t *testing.T) {
	client := &Client{chat: &mockChatService{completion: &openai.ChatCompletion{}}, model: openai.ChatModelGPT4oMini}

	_, err := client.GeneratePrompt(context.Background(), "system", "user")
	if !errors.Is(err, ErrNoChoicesReturned) {
		t.Errorf("expected ErrNoChoicesReturned, got %v", err)
	}
}

func TestNewClientMissingAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	if _, err := NewClient(); err == nil {
		t.Error("expected error when no API key is configured")
	}
}

func TestNewClientDefaults(t *testing.T) {
	client, err := NewClient(WithAPIKey("test-key"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.model != openai.ChatModelGPT4oMini {
		t.Errorf("expected default model, got %q", client.model)
	}
}

func TestNewClientWithModel(t *testing.T) {
	client, err := NewClient(WithAPIKey("test-key"), WithModel(openai.ChatModelGPT4o))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.model != openai.ChatModelGPT4o {
		t.Errorf("expected configured model, got %q", client.model)
	}
}
