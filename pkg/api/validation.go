package api

// Validation messages returned with HTTP 400.
const (
	MessageRequired = "Message is required"
	TextRequired    = "Text is required"
)

// Validate checks that a chat request carries a non-empty message.
func (r *ChatRequest) Validate() *Error {
	if r == nil || r.Message == "" {
		return NewValidationError(MessageRequired)
	}
	return nil
}

// Validate checks that a summarize request carries non-empty text.
func (r *SummarizeRequest) Validate() *Error {
	if r == nil || r.Text == "" {
		return NewValidationError(TextRequired)
	}
	return nil
}
