package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jtg86/azure-ai-demo/pkg/api"
	"github.com/jtg86/azure-ai-demo/pkg/provider"
)

// mockCompleter records requests and returns a fixed result or error.
type mockCompleter struct {
	result   *provider.Result
	err      error
	requests []*provider.Request
}

func (m *mockCompleter) Complete(_ context.Context, req *provider.Request) (*provider.Result, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

// mockSource hands out a completer and counts how often it was asked.
type mockSource struct {
	completer provider.Completer
	err       error
	calls     int
}

func (s *mockSource) Completer(context.Context) (provider.Completer, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.completer, nil
}

func newTestEngine(t *testing.T, src *mockSource) *Engine {
	t.Helper()
	eng, err := New(src, Config{Deployment: "gpt-35-turbo"}, nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return eng
}

func TestNewRequiresClientSource(t *testing.T) {
	if _, err := New(nil, Config{}, nil); err == nil {
		t.Fatal("expected error for nil client source")
	}
}

func TestNewDefaultsDeployment(t *testing.T) {
	eng, err := New(&mockSource{}, Config{}, nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if eng.Deployment() != "gpt-35-turbo" {
		t.Errorf("Deployment() = %q, want gpt-35-turbo", eng.Deployment())
	}
}

func TestChatMessageFraming(t *testing.T) {
	custom := "You answer in haiku."

	tests := []struct {
		name       string
		req        *api.ChatRequest
		wantSystem string
	}{
		{"default system prompt", &api.ChatRequest{Message: "hi"}, "You are a helpful assistant."},
		{"custom system prompt", &api.ChatRequest{Message: "hi", SystemPrompt: &custom}, custom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mc := &mockCompleter{result: &provider.Result{Content: "X"}}
			eng := newTestEngine(t, &mockSource{completer: mc})

			if _, err := eng.Chat(context.Background(), tt.req); err != nil {
				t.Fatalf("Chat() error: %v", err)
			}
			if len(mc.requests) != 1 {
				t.Fatalf("Complete called %d times, want 1", len(mc.requests))
			}

			got := mc.requests[0]
			if len(got.Messages) != 2 {
				t.Fatalf("messages length = %d, want 2", len(got.Messages))
			}
			if got.Messages[0].Role != provider.RoleSystem || got.Messages[0].Content != tt.wantSystem {
				t.Errorf("messages[0] = %+v, want system %q", got.Messages[0], tt.wantSystem)
			}
			if got.Messages[1].Role != provider.RoleUser || got.Messages[1].Content != "hi" {
				t.Errorf("messages[1] = %+v, want user \"hi\"", got.Messages[1])
			}
			if got.MaxTokens != 1000 {
				t.Errorf("MaxTokens = %d, want 1000", got.MaxTokens)
			}
			if got.Temperature != float32(0.7) {
				t.Errorf("Temperature = %v, want 0.7", got.Temperature)
			}
			if got.Model != "gpt-35-turbo" {
				t.Errorf("Model = %q, want gpt-35-turbo", got.Model)
			}
		})
	}
}

func TestChatResponseShape(t *testing.T) {
	mc := &mockCompleter{result: &provider.Result{
		Content: "X",
		Usage:   provider.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
	}}
	eng := newTestEngine(t, &mockSource{completer: mc})

	resp, err := eng.Chat(context.Background(), &api.ChatRequest{Message: "hi"})
	if err != nil {
		t.Fatalf("Chat() error: %v", err)
	}

	want := api.ChatResponse{
		Response: "X",
		Model:    "gpt-35-turbo",
		Usage:    api.ChatUsage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
	}
	if *resp != want {
		t.Errorf("Chat() = %+v, want %+v", *resp, want)
	}
}

func TestChatValidationSkipsClient(t *testing.T) {
	src := &mockSource{completer: &mockCompleter{}}
	eng := newTestEngine(t, src)

	_, err := eng.Chat(context.Background(), &api.ChatRequest{})
	if api.KindOf(err) != api.ErrorKindValidation {
		t.Fatalf("KindOf(err) = %q, want validation", api.KindOf(err))
	}
	if err.Error() != "Message is required" {
		t.Errorf("error = %q, want \"Message is required\"", err.Error())
	}
	if src.calls != 0 {
		t.Errorf("client source called %d times, want 0", src.calls)
	}
}

func TestChatClientSourceError(t *testing.T) {
	src := &mockSource{err: api.NewConfigurationError("AZURE_KEYVAULT_URL environment variable is not set")}
	eng := newTestEngine(t, src)

	_, err := eng.Chat(context.Background(), &api.ChatRequest{Message: "hi"})
	if api.KindOf(err) != api.ErrorKindConfiguration {
		t.Errorf("KindOf(err) = %q, want configuration", api.KindOf(err))
	}
}

func TestChatCompletionError(t *testing.T) {
	mc := &mockCompleter{err: errors.New("insufficient quota")}
	eng := newTestEngine(t, &mockSource{completer: mc})

	_, err := eng.Chat(context.Background(), &api.ChatRequest{Message: "hi"})
	if api.KindOf(err) != api.ErrorKindUpstream {
		t.Errorf("KindOf(err) = %q, want upstream", api.KindOf(err))
	}
	if err.Error() != "insufficient quota" {
		t.Errorf("error = %q, want the underlying message", err.Error())
	}
}

func TestSummarizeFraming(t *testing.T) {
	tests := []struct {
		name       string
		req        *api.SummarizeRequest
		wantSystem string
	}{
		{
			"default length",
			&api.SummarizeRequest{Text: "long text"},
			"Summarize the following text in approximately 100 words. Be concise and capture the key points.",
		},
		{
			"custom length",
			&api.SummarizeRequest{Text: "long text", MaxLength: 30},
			"Summarize the following text in approximately 30 words. Be concise and capture the key points.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mc := &mockCompleter{result: &provider.Result{Content: "short"}}
			eng := newTestEngine(t, &mockSource{completer: mc})

			if _, err := eng.Summarize(context.Background(), tt.req); err != nil {
				t.Fatalf("Summarize() error: %v", err)
			}

			got := mc.requests[0]
			if got.Messages[0].Role != provider.RoleSystem || got.Messages[0].Content != tt.wantSystem {
				t.Errorf("messages[0] = %+v, want system %q", got.Messages[0], tt.wantSystem)
			}
			if got.Messages[1].Role != provider.RoleUser || got.Messages[1].Content != "long text" {
				t.Errorf("messages[1] = %+v", got.Messages[1])
			}
			if got.MaxTokens != 500 {
				t.Errorf("MaxTokens = %d, want 500", got.MaxTokens)
			}
			if got.Temperature != float32(0.5) {
				t.Errorf("Temperature = %v, want 0.5", got.Temperature)
			}
		})
	}
}

func TestSummarizeLengths(t *testing.T) {
	text := strings.Repeat("a", 500)
	summary := strings.Repeat("b", 95)
	mc := &mockCompleter{result: &provider.Result{
		Content: summary,
		Usage:   provider.Usage{PromptTokens: 140, CompletionTokens: 30, TotalTokens: 170},
	}}
	eng := newTestEngine(t, &mockSource{completer: mc})

	resp, err := eng.Summarize(context.Background(), &api.SummarizeRequest{Text: text})
	if err != nil {
		t.Fatalf("Summarize() error: %v", err)
	}
	if resp.OriginalLength != 500 {
		t.Errorf("OriginalLength = %d, want 500", resp.OriginalLength)
	}
	if resp.SummaryLength != 95 {
		t.Errorf("SummaryLength = %d, want 95", resp.SummaryLength)
	}
	if resp.Usage.TotalTokens != 170 {
		t.Errorf("Usage.TotalTokens = %d, want 170", resp.Usage.TotalTokens)
	}
	if resp.Summary != summary {
		t.Error("Summary does not match completion content")
	}
}

func TestSummarizeCountsCodePoints(t *testing.T) {
	mc := &mockCompleter{result: &provider.Result{Content: "résumé"}}
	eng := newTestEngine(t, &mockSource{completer: mc})

	resp, err := eng.Summarize(context.Background(), &api.SummarizeRequest{Text: "日本語のテキスト"})
	if err != nil {
		t.Fatalf("Summarize() error: %v", err)
	}
	if resp.OriginalLength != 8 {
		t.Errorf("OriginalLength = %d, want 8", resp.OriginalLength)
	}
	if resp.SummaryLength != 6 {
		t.Errorf("SummaryLength = %d, want 6", resp.SummaryLength)
	}
}

func TestSummarizeValidationSkipsClient(t *testing.T) {
	src := &mockSource{completer: &mockCompleter{}}
	eng := newTestEngine(t, src)

	_, err := eng.Summarize(context.Background(), &api.SummarizeRequest{})
	if err == nil || err.Error() != "Text is required" {
		t.Fatalf("Summarize() error = %v, want \"Text is required\"", err)
	}
	if src.calls != 0 {
		t.Errorf("client source called %d times, want 0", src.calls)
	}
}
