package transport

import (
	"context"

	"github.com/jtg86/azure-ai-demo/pkg/api"
)

// Assistant handles the two completion-backed operations. Implementations
// validate the request themselves and report failures as *api.Error values.
type Assistant interface {
	Chat(ctx context.Context, req *api.ChatRequest) (*api.ChatResponse, error)
	Summarize(ctx context.Context, req *api.SummarizeRequest) (*api.SummarizeResponse, error)
}

// AssistantFuncs adapts a pair of ordinary functions to the Assistant
// interface. A nil function reports an internal error.
type AssistantFuncs struct {
	ChatFunc      func(ctx context.Context, req *api.ChatRequest) (*api.ChatResponse, error)
	SummarizeFunc func(ctx context.Context, req *api.SummarizeRequest) (*api.SummarizeResponse, error)
}

// Chat calls f.ChatFunc(ctx, req).
func (f AssistantFuncs) Chat(ctx context.Context, req *api.ChatRequest) (*api.ChatResponse, error) {
	if f.ChatFunc == nil {
		return nil, api.NewInternalError("chat is not available")
	}
	return f.ChatFunc(ctx, req)
}

// Summarize calls f.SummarizeFunc(ctx, req).
func (f AssistantFuncs) Summarize(ctx context.Context, req *api.SummarizeRequest) (*api.SummarizeResponse, error) {
	if f.SummarizeFunc == nil {
		return nil, api.NewInternalError("summarize is not available")
	}
	return f.SummarizeFunc(ctx, req)
}
