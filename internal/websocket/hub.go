package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"studyai-backend/internal/logger"
	"studyai-backend/internal/middleware"
	"studyai-backend/internal/models"
	"studyai-backend/internal/requestctx"
	"studyai-backend/internal/services"
)

const (
	maxFrameBytes = 64 << 10
	writeWait     = 10 * time.Second

	FrameReply = "reply"
	FrameError = "error"
)

type chatService interface {
	Handle(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error)
}

type frameLimiter interface {
	Allow(key string) bool
}

// Hub serves chat over WebSocket. Every text frame is a ChatRequest and gets
// exactly one reply or error frame back. Frames draw from the same per-IP
// limiter as POST /api/chat.
type Hub struct {
	mu          sync.Mutex
	connections map[*websocket.Conn]context.CancelFunc
	chat        chatService
	limiter     frameLimiter
	upgrader    websocket.Upgrader
}

// NewHub builds a hub. limiter may be nil to disable per-frame limiting.
func NewHub(chat chatService, allowedOrigin string, limiter *middleware.RateLimiter) *Hub {
	h := &Hub{
		connections: make(map[*websocket.Conn]context.CancelFunc),
		chat:        chat,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return allowedOrigin == "" || allowedOrigin == "*" || origin == "" || origin == allowedOrigin
			},
		},
	}
	if limiter != nil {
		h.limiter = limiter
	}
	return h
}

func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", logger.Err(err))
		return
	}

	// The request context ends when this handler returns, so the connection
	// gets its own.
	connID := requestctx.ID(r.Context())
	clientIP := middleware.ClientIP(r)
	ctx, cancel := context.WithCancel(context.Background())

	h.mu.Lock()
	h.connections[conn] = cancel
	h.mu.Unlock()

	go h.serve(ctx, conn, connID, clientIP)
}

func (h *Hub) serve(ctx context.Context, conn *websocket.Conn, connID, clientIP string) {
	defer h.remove(conn)

	conn.SetReadLimit(maxFrameBytes)
	for seq := 1; ; seq++ {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Debug("websocket read failed", "conn", connID, logger.Err(err))
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		var out models.WSMessage
		if h.limiter != nil && !h.limiter.Allow(clientIP) {
			out = models.WSMessage{Type: FrameError, Status: http.StatusTooManyRequests, Reply: middleware.MsgRateLimited}
		} else {
			out = h.reply(requestctx.WithID(ctx, fmt.Sprintf("%s-%d", connID, seq)), data)
		}

		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(out); err != nil {
			slog.Debug("websocket write failed", "conn", connID, logger.Err(err))
			return
		}
	}
}

func (h *Hub) reply(ctx context.Context, data []byte) models.WSMessage {
	var req models.ChatRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return models.WSMessage{Type: FrameError, Status: http.StatusBadRequest, Reply: services.MsgMissingMessage}
	}

	resp, err := h.chat.Handle(ctx, req)
	if err != nil {
		var vErr *services.ValidationError
		if errors.As(err, &vErr) {
			return models.WSMessage{Type: FrameError, Status: http.StatusBadRequest, Reply: vErr.Message}
		}
		slog.Error("websocket chat failed",
			"request_id", requestctx.ID(ctx),
			logger.Err(err),
		)
		return models.WSMessage{Type: FrameError, Status: http.StatusInternalServerError, Reply: services.MsgProviderFailed}
	}

	return models.WSMessage{
		Type:       FrameReply,
		Reply:      resp.Reply,
		Topic:      resp.Topic,
		TokensUsed: resp.TokensUsed,
		ReplyHTML:  resp.ReplyHTML,
	}
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	cancel, ok := h.connections[conn]
	delete(h.connections, conn)
	h.mu.Unlock()

	if ok {
		cancel()
	}
	conn.Close()
}

// Count returns the number of open connections.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.connections)
}

// Close sends a going-away frame to every client and closes the sockets.
func (h *Hub) Close() {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.connections))
	for conn, cancel := range h.connections {
		cancel()
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	for _, conn := range conns {
		conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		conn.Close()
	}
}
