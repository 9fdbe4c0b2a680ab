package azureopenai

import (
	"errors"
	"strconv"

	openai "github.com/sashabaranov/go-openai"

	"github.com/jtg86/azure-ai-demo/pkg/api"
)

// ErrEndpointMissing is returned when no Azure OpenAI endpoint is configured.
var ErrEndpointMissing = api.NewConfigurationError("AZURE_OPENAI_ENDPOINT environment variable is not set")

// mapError wraps a go-openai failure as an upstream error. The client-facing
// message is the SDK's own description; no distinction is made between
// transient and permanent failures.
func mapError(err error) *api.Error {
	return api.NewUpstreamError(err)
}

// statusClass returns a coarse label for metrics: the HTTP status reported
// by the API, or "network" when the call never got a response.
func statusClass(err error) string {
	if err == nil {
		return "ok"
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		return strconv.Itoa(apiErr.HTTPStatusCode)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		return strconv.Itoa(reqErr.HTTPStatusCode)
	}
	return "network"
}
