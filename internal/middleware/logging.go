package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"studyai-backend/internal/requestctx"
)

// Logger writes one slog line per request once the handler returns.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		status := responseStatus(ww.Status(), r)
		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		slog.Log(r.Context(), level, "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Microsecond),
			"remote", r.RemoteAddr,
			"request_id", requestctx.ID(r.Context()),
		)
	})
}

// responseStatus fills in the status the wrapped writer never saw: a
// hijacked upgrade wrote 101 on the raw connection, anything else that
// wrote nothing got net/http's implicit 200.
func responseStatus(recorded int, r *http.Request) int {
	if recorded != 0 {
		return recorded
	}
	if isUpgrade(r) {
		return http.StatusSwitchingProtocols
	}
	return http.StatusOK
}

func isUpgrade(r *http.Request) bool {
	for _, v := range strings.Split(r.Header.Get("Connection"), ",") {
		if strings.EqualFold(strings.TrimSpace(v), "upgrade") {
			return r.Header.Get("Upgrade") != ""
		}
	}
	return false
}
