package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/samber/lo"

	"studyai-backend/internal/logger"
	"studyai-backend/internal/models"
	"studyai-backend/internal/topics"
)

const (
	ServiceName    = "StudyAI Chatbot"
	ServiceVersion = "2.0.0"

	// ISO 8601 with millisecond precision, e.g. 2026-10-19T08:30:00.000Z.
	timestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

type requestTotaler interface {
	Total(ctx context.Context) (int64, error)
}

// MetaHandler serves the read-only endpoints derived from the topic catalog
// and configuration.
type MetaHandler struct {
	catalog   *topics.Catalog
	counter   requestTotaler
	model     string
	maxTokens int
	now       func() time.Time
}

func NewMetaHandler(catalog *topics.Catalog, counter requestTotaler, model string, maxTokens int) *MetaHandler {
	return &MetaHandler{
		catalog:   catalog,
		counter:   counter,
		model:     model,
		maxTokens: maxTokens,
		now:       time.Now,
	}
}

// Health handles GET /api/health.
func (h *MetaHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Timestamp: h.now().UTC().Format(timestampLayout),
		Service:   ServiceName,
		Version:   ServiceVersion,
	})
}

// Topics handles GET /api/topics.
func (h *MetaHandler) Topics(w http.ResponseWriter, r *http.Request) {
	infos := lo.Map(h.catalog.All(), func(t topics.Topic, _ int) models.TopicInfo {
		return models.TopicInfo{ID: t.ID, Name: t.Name, Description: t.Description}
	})
	writeJSON(w, http.StatusOK, models.TopicsResponse{Topics: infos})
}

// Stats handles GET /api/stats.
func (h *MetaHandler) Stats(w http.ResponseWriter, r *http.Request) {
	var total int64
	if h.counter != nil {
		n, err := h.counter.Total(r.Context())
		if err != nil {
			slog.Warn("failed to read request total", logger.Err(err))
		} else {
			total = n
		}
	}

	writeJSON(w, http.StatusOK, models.StatsResponse{
		TotalRequests: total,
		ActiveTopics:  h.catalog.IDs(),
		Model:         h.model,
		MaxTokens:     h.maxTokens,
	})
}
