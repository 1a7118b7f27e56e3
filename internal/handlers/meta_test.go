package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyai-backend/internal/models"
	"studyai-backend/internal/topics"
)

type stubTotaler struct {
	n   int64
	err error
}

func (s stubTotaler) Total(ctx context.Context) (int64, error) { return s.n, s.err }

func get(handler http.HandlerFunc, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestMetaHandler_Health(t *testing.T) {
	h := NewMetaHandler(topics.Default(), nil, "llama3.1-8b", 4096)
	h.now = func() time.Time { return time.Date(2026, 10, 19, 8, 30, 0, 0, time.FixedZone("X", 3600)) }

	rr := get(h.Health, "/api/health")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp models.HealthResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, models.HealthResponse{
		Status:    "healthy",
		Timestamp: "2026-10-19T07:30:00.000Z",
		Service:   "StudyAI Chatbot",
		Version:   "2.0.0",
	}, resp)
}

func TestMetaHandler_TopicsOneEntryPerCatalogKey(t *testing.T) {
	catalog := topics.Default()
	h := NewMetaHandler(catalog, nil, "llama3.1-8b", 4096)

	rr := get(h.Topics, "/api/topics")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp models.TopicsResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Len(t, resp.Topics, catalog.Len())

	for i, id := range catalog.IDs() {
		assert.Equal(t, id, resp.Topics[i].ID)
	}
	assert.Equal(t, models.TopicInfo{ID: "study-tips", Name: "Study tips", Description: "Study techniques"}, resp.Topics[5])
	assert.Equal(t, models.TopicInfo{ID: "general", Name: "General", Description: "General learning"}, resp.Topics[0])
}

func TestMetaHandler_Stats(t *testing.T) {
	h := NewMetaHandler(topics.Default(), stubTotaler{n: 17}, "llama3.1-8b", 4096)

	rr := get(h.Stats, "/api/stats")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp models.StatsResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, int64(17), resp.TotalRequests)
	assert.Equal(t, topics.Default().IDs(), resp.ActiveTopics)
	assert.Equal(t, "llama3.1-8b", resp.Model)
	assert.Equal(t, 4096, resp.MaxTokens)
}

func TestMetaHandler_StatsCounterFailure(t *testing.T) {
	h := NewMetaHandler(topics.Default(), stubTotaler{n: 9, err: errors.New("redis down")}, "m", 4096)

	rr := get(h.Stats, "/api/stats")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp models.StatsResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Zero(t, resp.TotalRequests)
}
