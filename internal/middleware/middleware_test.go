package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyai-backend/internal/logger"
	"studyai-backend/internal/models"
	"studyai-backend/internal/requestctx"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestRequestID_GeneratesAndEchoes(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestctx.ID(r.Context())
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rr.Header().Get(RequestIDHeader))
}

func TestRequestID_KeepsClientValue(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestctx.ID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(RequestIDHeader, "trace-123")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, "trace-123", seen)
	assert.Equal(t, "trace-123", rr.Header().Get(RequestIDHeader))
}

func TestRequestID_ReplacesOversizedValue(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestctx.ID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("x", 129))
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Len(t, seen, 36)
}

func TestCORS_Preflight(t *testing.T) {
	h := CORS("*")(okHandler)

	req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestCORS_SpecificOrigin(t *testing.T) {
	h := CORS("http://localhost:5173")(okHandler)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/topics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "http://localhost:5173", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Origin", rr.Header().Get("Vary"))
}

func TestRateLimiter_BlocksAfterBurst(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	defer rl.Stop()
	h := rl.Middleware(okHandler)

	send := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
		req.RemoteAddr = addr
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:5000").Code)
	assert.Equal(t, http.StatusOK, send("10.0.0.1:5001").Code)

	blocked := send("10.0.0.1:5002")
	require.Equal(t, http.StatusTooManyRequests, blocked.Code)
	var body models.ReplyError
	require.NoError(t, json.NewDecoder(blocked.Body).Decode(&body))
	assert.Equal(t, MsgRateLimited, body.Reply)

	assert.Equal(t, http.StatusOK, send("10.0.0.2:5000").Code, "other clients are unaffected")
}

func TestRateLimiter_EvictsIdleVisitors(t *testing.T) {
	rl := NewRateLimiter(60, 1)
	defer rl.Stop()

	rl.Allow("10.0.0.1")
	rl.evict(time.Now().Add(10 * time.Minute))

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.Empty(t, rl.visitors)
}

func TestLogger_PassesThrough(t *testing.T) {
	h := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusTeapot, rr.Code)
}

func TestLogger_UpgradeWithoutRecordedStatus(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(logger.NewHandler(&buf, logger.Options{NoColor: true})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	// A hijacked connection leaves nothing on the wrapped writer.
	h := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/api/chat/ws", nil)
	req.Header.Set("Connection", "keep-alive, Upgrade")
	req.Header.Set("Upgrade", "websocket")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), "status=101")
}

func TestResponseStatus(t *testing.T) {
	plain := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	upgrade := httptest.NewRequest(http.MethodGet, "/api/chat/ws", nil)
	upgrade.Header.Set("Connection", "Upgrade")
	upgrade.Header.Set("Upgrade", "websocket")

	assert.Equal(t, http.StatusOK, responseStatus(0, plain))
	assert.Equal(t, http.StatusSwitchingProtocols, responseStatus(0, upgrade))
	assert.Equal(t, http.StatusForbidden, responseStatus(http.StatusForbidden, upgrade))
	assert.Equal(t, http.StatusNotFound, responseStatus(http.StatusNotFound, plain))
}
