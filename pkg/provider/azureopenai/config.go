package azureopenai

import "net/http"

// APIVersion is the Azure OpenAI REST API version sent with every call.
const APIVersion = "2024-02-01"

// Config holds the settings for building an Azure OpenAI client.
type Config struct {
	// Endpoint is the resource URL, e.g. https://myresource.openai.azure.com/.
	Endpoint string

	// Deployment is the model deployment name used for every request.
	Deployment string

	// HTTPClient overrides the HTTP client used by go-openai (optional).
	HTTPClient *http.Client
}
