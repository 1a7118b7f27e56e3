package llm

import "context"

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Request struct {
	Model       string
	Messages    []Message
	MaxTokens   int
	Temperature float64
}

// Completion is the provider's answer. Text is empty when the provider
// returned no usable content; TotalTokens is 0 when usage was omitted.
type Completion struct {
	Text        string
	TotalTokens int
}

// Provider sends a conversation to a chat-completion API.
type Provider interface {
	Complete(ctx context.Context, req Request) (*Completion, error)
	Name() string
}
