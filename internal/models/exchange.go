package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ExchangeStatusOK    = "ok"
	ExchangeStatusError = "error"
)

// Exchange records one provider call. Message and reply text are never stored.
type Exchange struct {
	ID          uuid.UUID `json:"id"`
	RequestID   string    `json:"request_id"`
	Provider    string    `json:"provider"`
	Topic       string    `json:"topic"`
	Model       string    `json:"model"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
	TokensUsed  int       `json:"tokens_used"`
	Status      string    `json:"status"`
	LatencyMS   int64     `json:"latency_ms"`
	CreatedAt   time.Time `json:"created_at"`
}
