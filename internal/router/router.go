package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"studyai-backend/internal/handlers"
	"studyai-backend/internal/middleware"
	"studyai-backend/internal/websocket"
)

func New(
	chatHandler *handlers.ChatHandler,
	metaHandler *handlers.MetaHandler,
	wsHub *websocket.Hub,
	chatLimiter *middleware.RateLimiter,
	corsOrigin string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(corsOrigin))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", metaHandler.Health)
		r.Get("/topics", metaHandler.Topics)
		r.Get("/stats", metaHandler.Stats)

		// ──── Chat (rate limited per IP) ────
		r.Group(func(r chi.Router) {
			if chatLimiter != nil {
				r.Use(chatLimiter.Middleware)
			}
			r.Post("/chat", chatHandler.Chat)
		})

		// The hub spends a token from the same limiter per frame.
		r.Get("/chat/ws", wsHub.HandleWebSocket)
	})

	return r
}
