package engine

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/jtg86/azure-ai-demo/pkg/api"
	"github.com/jtg86/azure-ai-demo/pkg/debug"
	"github.com/jtg86/azure-ai-demo/pkg/provider"
)

// ClientSource yields the shared completion client, building it on first
// use. *azureopenai.Builder satisfies it.
type ClientSource interface {
	Completer(ctx context.Context) (provider.Completer, error)
}

// Engine runs chat and summarize operations against the shared client.
// It holds no per-request state and is safe for concurrent use.
type Engine struct {
	clients ClientSource
	cfg     Config
	logger  *slog.Logger
}

// New creates a new Engine. The client source must not be nil.
func New(clients ClientSource, cfg Config, logger *slog.Logger) (*Engine, error) {
	if clients == nil {
		return nil, fmt.Errorf("engine: client source must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{clients: clients, cfg: cfg.withDefaults(), logger: logger}, nil
}

// Deployment returns the deployment name used for completions.
func (e *Engine) Deployment() string {
	return e.cfg.Deployment
}

// Chat validates req, sends one completion, and returns the generated text
// with token usage. Validation failures are returned before the client is
// touched.
func (e *Engine) Chat(ctx context.Context, req *api.ChatRequest) (*api.ChatResponse, error) {
	if apiErr := req.Validate(); apiErr != nil {
		return nil, apiErr
	}

	res, err := e.complete(ctx, translateChatRequest(req, e.cfg.Deployment))
	if err != nil {
		return nil, err
	}

	e.logger.Info("chat completion successful", slog.Int("total_tokens", res.Usage.TotalTokens))

	return &api.ChatResponse{
		Response: res.Content,
		Model:    e.cfg.Deployment,
		Usage: api.ChatUsage{
			PromptTokens:     res.Usage.PromptTokens,
			CompletionTokens: res.Usage.CompletionTokens,
			TotalTokens:      res.Usage.TotalTokens,
		},
	}, nil
}

// Summarize validates req, asks for a summary of roughly the requested
// number of words, and reports input and output lengths in code points.
func (e *Engine) Summarize(ctx context.Context, req *api.SummarizeRequest) (*api.SummarizeResponse, error) {
	if apiErr := req.Validate(); apiErr != nil {
		return nil, apiErr
	}

	res, err := e.complete(ctx, translateSummarizeRequest(req, e.cfg.Deployment))
	if err != nil {
		return nil, err
	}

	originalLen := utf8.RuneCountInString(req.Text)
	summaryLen := utf8.RuneCountInString(res.Content)

	e.logger.Info("summarization successful",
		slog.Int("original_chars", originalLen),
		slog.Int("summary_chars", summaryLen),
	)

	return &api.SummarizeResponse{
		Summary:        res.Content,
		OriginalLength: originalLen,
		SummaryLength:  summaryLen,
		Usage:          api.SummaryUsage{TotalTokens: res.Usage.TotalTokens},
	}, nil
}

// complete obtains the shared client and performs one completion. Errors
// from either step keep their kind; unclassified errors become upstream.
func (e *Engine) complete(ctx context.Context, req *provider.Request) (*provider.Result, error) {
	client, err := e.clients.Completer(ctx)
	if err != nil {
		return nil, api.AsError(err)
	}

	if debug.Enabled("engine") {
		for _, m := range req.Messages {
			debug.Trace("engine", "completion message", slog.String("role", m.Role), slog.String("content", debug.Truncate(m.Content, 200)))
		}
	}

	res, err := client.Complete(ctx, req)
	if err != nil {
		return nil, api.AsError(err)
	}
	return res, nil
}
