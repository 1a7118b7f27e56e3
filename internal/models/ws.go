package models

// WSMessage is a frame sent to WebSocket chat clients.
type WSMessage struct {
	Type       string `json:"type"`
	Status     int    `json:"status,omitempty"`
	Reply      string `json:"reply"`
	Topic      string `json:"topic,omitempty"`
	TokensUsed int    `json:"tokens_used"`
	ReplyHTML  string `json:"reply_html,omitempty"`
}
