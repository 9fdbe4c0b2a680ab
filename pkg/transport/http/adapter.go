package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jtg86/azure-ai-demo/pkg/api"
	"github.com/jtg86/azure-ai-demo/pkg/observability"
	"github.com/jtg86/azure-ai-demo/pkg/transport"
)

// Service identity reported by GET / and GET /health.
const (
	ServiceName      = "azure-ai-demo"
	APIName          = "Azure AI Demo API"
	APIVersion       = "1.0.0"
	DocumentationURL = "https://github.com/jtg86/azure-ai-terraform-demo"
)

// Adapter serves the assistant API over HTTP.
// It routes requests to the Assistant and serializes responses.
type Adapter struct {
	assistant transport.Assistant
	mux       *http.ServeMux
	config    Config
	logger    *slog.Logger
}

// Config holds configuration for the HTTP adapter.
type Config struct {
	MaxBodySize int64

	// OpenAIEndpointConfigured and KeyVaultConfigured are reported by
	// GET /health. They reflect configuration only; no remote call is made.
	OpenAIEndpointConfigured bool
	KeyVaultConfigured       bool

	// MetricsPath enables the Prometheus endpoint and request metrics when
	// non-empty.
	MetricsPath string

	Logger *slog.Logger
}

// DefaultConfig returns the default adapter configuration.
func DefaultConfig() Config {
	return Config{
		MaxBodySize: 1 << 20, // 1 MB
	}
}

// NewAdapter creates an HTTP adapter for the given Assistant.
func NewAdapter(assistant transport.Assistant, cfg Config) *Adapter {
	if cfg.MaxBodySize <= 0 {
		cfg.MaxBodySize = DefaultConfig().MaxBodySize
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	a := &Adapter{
		assistant: assistant,
		mux:       http.NewServeMux(),
		config:    cfg,
		logger:    logger,
	}

	a.mux.HandleFunc("GET /health", a.handleHealth)
	a.mux.HandleFunc("GET /{$}", a.handleInfo)
	a.mux.HandleFunc("POST /api/chat", a.handleChat)
	a.mux.HandleFunc("POST /api/summarize", a.handleSummarize)

	a.mux.Handle("/health", methodNotAllowed(http.MethodGet))
	a.mux.Handle("/api/chat", methodNotAllowed(http.MethodPost))
	a.mux.Handle("/api/summarize", methodNotAllowed(http.MethodPost))

	if cfg.MetricsPath != "" {
		a.mux.Handle("GET "+cfg.MetricsPath, observability.Handler())
	}

	a.mux.HandleFunc("/", handleNotFound)

	return a
}

// Handler returns the http.Handler for this adapter. Use this to integrate
// with an http.Server or test with httptest. The returned handler includes
// request ID propagation, request logging, panic recovery and, when metrics
// are enabled, request metrics.
func (a *Adapter) Handler() http.Handler {
	mws := []transport.Middleware{
		transport.RequestID(),
		transport.Logging(a.logger),
		transport.Recovery(a.logger),
	}
	if a.config.MetricsPath != "" {
		mws = append(mws, observability.MetricsMiddleware)
	}
	return transport.Chain(mws...)(a.mux)
}

// handleHealth handles GET /health.
func (a *Adapter) handleHealth(w http.ResponseWriter, r *http.Request) {
	transport.WriteJSON(w, http.StatusOK, api.HealthResponse{
		Status:             "healthy",
		Service:            ServiceName,
		OpenAIEndpoint:     a.config.OpenAIEndpointConfigured,
		KeyVaultConfigured: a.config.KeyVaultConfigured,
	})
}

// handleInfo handles GET /.
func (a *Adapter) handleInfo(w http.ResponseWriter, r *http.Request) {
	transport.WriteJSON(w, http.StatusOK, api.InfoResponse{
		Name:    APIName,
		Version: APIVersion,
		Endpoints: api.Endpoints{
			Health:    "/health",
			Chat:      "/api/chat (POST)",
			Summarize: "/api/summarize (POST)",
		},
		Documentation: DocumentationURL,
	})
}

// handleChat handles POST /api/chat.
func (a *Adapter) handleChat(w http.ResponseWriter, r *http.Request) {
	var req api.ChatRequest
	if !a.decode(w, r, &req, api.MessageRequired) {
		return
	}

	resp, err := a.assistant.Chat(r.Context(), &req)
	if err != nil {
		a.writeHandlerError(w, r, "chat", err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, resp)
}

// handleSummarize handles POST /api/summarize.
func (a *Adapter) handleSummarize(w http.ResponseWriter, r *http.Request) {
	var req api.SummarizeRequest
	if !a.decode(w, r, &req, api.TextRequired) {
		return
	}

	resp, err := a.assistant.Summarize(r.Context(), &req)
	if err != nil {
		a.writeHandlerError(w, r, "summarize", err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, resp)
}

// decode reads a JSON object from the body into v. A field holding a value
// of the wrong type is left at its zero value and decoding carries on, so
// the request's own validation decides whether the required field is
// usable. A body that is not JSON at all is reported with requiredMsg. It
// returns false when a response has already been written.
func (a *Adapter) decode(w http.ResponseWriter, r *http.Request, v any, requiredMsg string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, a.config.MaxBodySize)

	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return true
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		transport.WriteErrorResponse(w, "request body too large", http.StatusRequestEntityTooLarge)
		return false
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		a.logger.Debug("ignoring mistyped request field",
			slog.String("request_id", transport.RequestIDFromContext(r.Context())),
			slog.String("field", typeErr.Field),
			slog.String("type", typeErr.Value),
		)
		return true
	}

	a.logger.Debug("request body rejected",
		slog.String("request_id", transport.RequestIDFromContext(r.Context())),
		slog.String("error", err.Error()),
	)
	transport.WriteError(w, api.NewValidationError(requiredMsg))
	return false
}

// writeHandlerError logs a failed operation, counts it, and writes the
// error body.
func (a *Adapter) writeHandlerError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	kind := api.KindOf(err)
	observability.HandlerErrorsTotal.WithLabelValues(operation, string(kind)).Inc()

	if kind != api.ErrorKindValidation {
		a.logger.Error(operation+" failed",
			slog.String("request_id", transport.RequestIDFromContext(r.Context())),
			slog.String("kind", string(kind)),
			slog.String("error", err.Error()),
		)
	}
	transport.WriteError(w, err)
}

func handleNotFound(w http.ResponseWriter, _ *http.Request) {
	transport.WriteErrorResponse(w, "not found", http.StatusNotFound)
}

func methodNotAllowed(allow string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Allow", allow)
		transport.WriteErrorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
	})
}
