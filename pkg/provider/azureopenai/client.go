package azureopenai

import (
	"context"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/jtg86/azure-ai-demo/pkg/api"
	"github.com/jtg86/azure-ai-demo/pkg/debug"
	"github.com/jtg86/azure-ai-demo/pkg/lazy"
	"github.com/jtg86/azure-ai-demo/pkg/observability"
	"github.com/jtg86/azure-ai-demo/pkg/provider"
)

// ProviderName labels metrics and logs emitted by this adapter.
const ProviderName = "azure-openai"

// SecretSource yields the API key. *keyvault.Fetcher satisfies it.
type SecretSource interface {
	Secret(ctx context.Context) (string, error)
}

// chatCompleter is the subset of *openai.Client used by Client.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Client sends chat completions to one Azure OpenAI deployment. It is
// immutable after construction and safe for concurrent use.
type Client struct {
	inner      chatCompleter
	deployment string
}

// Ensure Client implements provider.Completer at compile time.
var _ provider.Completer = (*Client)(nil)

// NewClient builds a Client from an API key. It does not contact the
// endpoint.
func NewClient(cfg Config, apiKey string) *Client {
	oc := openai.DefaultAzureConfig(apiKey, cfg.Endpoint)
	oc.APIVersion = APIVersion
	// Deployment names are sent verbatim; the default mapper strips dots.
	oc.AzureModelMapperFunc = func(model string) string { return model }
	if cfg.HTTPClient != nil {
		oc.HTTPClient = cfg.HTTPClient
	}
	return &Client{
		inner:      openai.NewClientWithConfig(oc),
		deployment: cfg.Deployment,
	}
}

// Deployment returns the deployment name requests are sent to.
func (c *Client) Deployment() string {
	return c.deployment
}

// Complete performs one chat completion. An empty model in req selects the
// configured deployment.
func (c *Client) Complete(ctx context.Context, req *provider.Request) (*provider.Result, error) {
	model := req.Model
	if model == "" {
		model = c.deployment
	}

	msgs := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	start := time.Now()
	resp, err := c.inner.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    msgs,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	observability.ProviderLatency.WithLabelValues(ProviderName, model).Observe(time.Since(start).Seconds())
	observability.ProviderRequestsTotal.WithLabelValues(ProviderName, model, statusClass(err)).Inc()
	if err != nil {
		debug.Log("provider", "completion failed", slog.String("model", model), slog.String("error", err.Error()))
		return nil, mapError(err)
	}

	if len(resp.Choices) == 0 {
		return nil, api.NewUpstreamErrorf("completion for deployment %q returned no choices", model)
	}

	observability.ProviderTokensTotal.WithLabelValues(ProviderName, model, "input").Add(float64(resp.Usage.PromptTokens))
	observability.ProviderTokensTotal.WithLabelValues(ProviderName, model, "output").Add(float64(resp.Usage.CompletionTokens))
	debug.Log("provider", "completion succeeded",
		slog.String("model", model),
		slog.Int("total_tokens", resp.Usage.TotalTokens),
	)

	return &provider.Result{
		Content: resp.Choices[0].Message.Content,
		Model:   resp.Model,
		Usage: provider.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

// Builder constructs the process-wide Client on first use and hands the
// same instance to every later caller.
type Builder struct {
	cfg     Config
	secrets SecretSource
	logger  *slog.Logger
	client  lazy.Value[*Client]
}

// NewBuilder creates a Builder. Nothing is fetched until Client is called.
func NewBuilder(cfg Config, secrets SecretSource, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{cfg: cfg, secrets: secrets, logger: logger}
}

// Client returns the shared Client, building it on the first successful
// call. Concurrent first callers block until construction finishes.
func (b *Builder) Client(ctx context.Context) (*Client, error) {
	return b.client.Get(ctx, b.build)
}

// Completer returns the shared Client as a provider.Completer.
func (b *Builder) Completer(ctx context.Context) (provider.Completer, error) {
	c, err := b.Client(ctx)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Built reports whether the Client has been constructed.
func (b *Builder) Built() bool {
	return b.client.Loaded()
}

func (b *Builder) build(ctx context.Context) (*Client, error) {
	key, err := b.secrets.Secret(ctx)
	if err != nil {
		return nil, err
	}
	if b.cfg.Endpoint == "" {
		return nil, ErrEndpointMissing
	}

	c := NewClient(b.cfg, key)
	observability.InitializationsTotal.WithLabelValues("client", "ok").Inc()
	b.logger.Info("azure openai client initialized",
		slog.String("deployment", b.cfg.Deployment),
		slog.String("api_version", APIVersion),
	)
	return c, nil
}
