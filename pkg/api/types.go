package api

import (
	"math"
	"strconv"
	"strings"
)

// DefaultSystemPrompt frames a chat exchange when the request carries none.
const DefaultSystemPrompt = "You are a helpful assistant."

// DefaultSummaryLength is the advisory summary length in words.
const DefaultSummaryLength = 100

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message      string  `json:"message"`
	SystemPrompt *string `json:"system_prompt,omitempty"`
}

// SystemPromptOrDefault returns the provided system prompt, or
// DefaultSystemPrompt when the field was absent.
func (r *ChatRequest) SystemPromptOrDefault() string {
	if r.SystemPrompt == nil {
		return DefaultSystemPrompt
	}
	return *r.SystemPrompt
}

// SummarizeRequest is the body of POST /api/summarize.
type SummarizeRequest struct {
	Text      string `json:"text"`
	MaxLength any    `json:"max_length,omitempty"`
}

// TargetLength returns the requested summary length in words. MaxLength is
// only a hint for the prompt, so any JSON value is accepted: numbers and
// numeric strings are read as whole words, and anything absent, not
// positive or unparseable falls back to DefaultSummaryLength.
func (r *SummarizeRequest) TargetLength() int {
	var n float64
	switch v := r.MaxLength.(type) {
	case int:
		n = float64(v)
	case float64:
		n = v
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return DefaultSummaryLength
		}
		n = f
	default:
		return DefaultSummaryLength
	}
	if math.IsNaN(n) || n < 1 || n > math.MaxInt32 {
		return DefaultSummaryLength
	}
	return int(n)
}

// ChatUsage reports token accounting for a chat completion.
type ChatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatResponse is the success body of POST /api/chat.
type ChatResponse struct {
	Response string    `json:"response"`
	Model    string    `json:"model"`
	Usage    ChatUsage `json:"usage"`
}

// SummaryUsage reports token accounting for a summarization.
type SummaryUsage struct {
	TotalTokens int `json:"total_tokens"`
}

// SummarizeResponse is the success body of POST /api/summarize. Lengths are
// counted in Unicode code points.
type SummarizeResponse struct {
	Summary        string       `json:"summary"`
	OriginalLength int          `json:"original_length"`
	SummaryLength  int          `json:"summary_length"`
	Usage          SummaryUsage `json:"usage"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status             string `json:"status"`
	Service            string `json:"service"`
	OpenAIEndpoint     bool   `json:"openai_endpoint"`
	KeyVaultConfigured bool   `json:"keyvault_configured"`
}

// Endpoints lists the routes advertised by GET /.
type Endpoints struct {
	Health    string `json:"health"`
	Chat      string `json:"chat"`
	Summarize string `json:"summarize"`
}

// InfoResponse is the body of GET /.
type InfoResponse struct {
	Name          string    `json:"name"`
	Version       string    `json:"version"`
	Endpoints     Endpoints `json:"endpoints"`
	Documentation string    `json:"documentation"`
}
