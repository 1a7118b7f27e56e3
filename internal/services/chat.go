package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"studyai-backend/internal/llm"
	"studyai-backend/internal/logger"
	"studyai-backend/internal/models"
	"studyai-backend/internal/requestctx"
	"studyai-backend/internal/topics"
)

const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 1000

	MsgMissingMessage = "Please provide a message."
	MsgProviderFailed = "Sorry, something went wrong. Please try again."
	FallbackReply     = "Sorry, I didn't get that."
)

// ChatConfig is built once at startup and never mutated.
type ChatConfig struct {
	Catalog            *topics.Catalog
	Model              string
	DefaultTemperature float64
	DefaultMaxTokens   int
}

type RequestCounter interface {
	Incr(ctx context.Context) (int64, error)
}

type ExchangeSink interface {
	Submit(ex models.Exchange) error
}

// ChatService routes a chat message to the topic's system prompt and the
// completion provider.
type ChatService struct {
	cfg       ChatConfig
	provider  llm.Provider
	counter   RequestCounter
	exchanges ExchangeSink
	now       func() time.Time
}

// NewChatService wires the router. counter and exchanges may be nil.
func NewChatService(cfg ChatConfig, provider llm.Provider, counter RequestCounter, exchanges ExchangeSink) *ChatService {
	if cfg.Catalog == nil {
		cfg.Catalog = topics.Default()
	}
	if cfg.DefaultTemperature == 0 {
		cfg.DefaultTemperature = DefaultTemperature
	}
	if cfg.DefaultMaxTokens == 0 {
		cfg.DefaultMaxTokens = DefaultMaxTokens
	}
	return &ChatService{
		cfg:       cfg,
		provider:  provider,
		counter:   counter,
		exchanges: exchanges,
		now:       time.Now,
	}
}

// Handle validates the request, assembles the system and user turns, and
// returns the provider's reply. It returns *ValidationError or *ProviderError.
func (s *ChatService) Handle(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	s.countRequest(ctx)

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, &ValidationError{Message: MsgMissingMessage}
	}

	topic := s.cfg.Catalog.Resolve(req.Topic)

	temperature := s.cfg.DefaultTemperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}
	maxTokens := s.cfg.DefaultMaxTokens
	if req.MaxTokens != nil {
		maxTokens = *req.MaxTokens
	}

	start := s.now()
	completion, err := s.provider.Complete(ctx, llm.Request{
		Model: s.cfg.Model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: topic.SystemPrompt},
			{Role: llm.RoleUser, Content: message},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})

	ex := models.Exchange{
		ID:          uuid.New(),
		RequestID:   requestctx.ID(ctx),
		Provider:    s.provider.Name(),
		Topic:       topic.ID,
		Model:       s.cfg.Model,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Status:      models.ExchangeStatusOK,
		LatencyMS:   s.now().Sub(start).Milliseconds(),
		CreatedAt:   start.UTC(),
	}

	if err != nil {
		ex.Status = models.ExchangeStatusError
		s.record(ex)
		return nil, &ProviderError{Provider: s.provider.Name(), Err: err}
	}

	ex.TokensUsed = completion.TotalTokens
	s.record(ex)

	reply := completion.Text
	if strings.TrimSpace(reply) == "" {
		reply = FallbackReply
	}

	resp := &models.ChatResponse{
		Reply:      reply,
		Topic:      topic.ID,
		TokensUsed: completion.TotalTokens,
	}
	if strings.EqualFold(strings.TrimSpace(req.Format), models.FormatHTML) {
		resp.ReplyHTML = RenderMarkdown(reply)
	}
	return resp, nil
}

func (s *ChatService) countRequest(ctx context.Context) {
	if s.counter == nil {
		return
	}
	if _, err := s.counter.Incr(ctx); err != nil {
		slog.Warn("failed to count chat request", logger.Err(err))
	}
}

func (s *ChatService) record(ex models.Exchange) {
	if s.exchanges == nil {
		return
	}
	if err := s.exchanges.Submit(ex); err != nil {
		slog.Warn("dropping exchange record", "request_id", ex.RequestID, logger.Err(err))
	}
}
