package models

// FormatHTML asks for reply_html alongside the plain reply.
const FormatHTML = "html"

// ChatRequest is the payload sent to the chat endpoint. Pointer fields
// distinguish an omitted value from an explicit zero.
type ChatRequest struct {
	Message     string   `json:"message"`
	Topic       string   `json:"topic,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	MaxTokens   *int     `json:"max_tokens,omitempty"`
	Format      string   `json:"format,omitempty"`
}

// ChatResponse is the reply from the AI chat.
type ChatResponse struct {
	Reply      string `json:"reply"`
	Topic      string `json:"topic"`
	TokensUsed int    `json:"tokens_used"`
	ReplyHTML  string `json:"reply_html,omitempty"`
}

// ReplyError is the body of every non-200 chat response. The chat UI only
// reads "reply", so errors use the same field.
type ReplyError struct {
	Reply string `json:"reply"`
}
