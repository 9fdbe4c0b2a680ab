package engine

import (
	"fmt"

	"github.com/jtg86/azure-ai-demo/pkg/api"
	"github.com/jtg86/azure-ai-demo/pkg/provider"
)

// summaryInstruction is the system message for summarization. The target
// length is advisory; nothing enforces it on the output.
const summaryInstruction = "Summarize the following text in approximately %d words. Be concise and capture the key points."

// chatMessages builds the two-message exchange for a chat request: one
// system message (given or defaulted) followed by one user message.
func chatMessages(req *api.ChatRequest) []provider.Message {
	return []provider.Message{
		{Role: provider.RoleSystem, Content: req.SystemPromptOrDefault()},
		{Role: provider.RoleUser, Content: req.Message},
	}
}

// summarizeMessages builds the two-message exchange for a summarize request.
func summarizeMessages(req *api.SummarizeRequest) []provider.Message {
	return []provider.Message{
		{Role: provider.RoleSystem, Content: fmt.Sprintf(summaryInstruction, req.TargetLength())},
		{Role: provider.RoleUser, Content: req.Text},
	}
}

// translateChatRequest converts a chat request into a provider request.
func translateChatRequest(req *api.ChatRequest, deployment string) *provider.Request {
	return &provider.Request{
		Model:       deployment,
		Messages:    chatMessages(req),
		MaxTokens:   ChatMaxTokens,
		Temperature: ChatTemperature,
	}
}

// translateSummarizeRequest converts a summarize request into a provider request.
func translateSummarizeRequest(req *api.SummarizeRequest, deployment string) *provider.Request {
	return &provider.Request{
		Model:       deployment,
		Messages:    summarizeMessages(req),
		MaxTokens:   SummarizeMaxTokens,
		Temperature: SummarizeTemperature,
	}
}
