package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"studyai-backend/internal/requestctx"
)

const RequestIDHeader = "X-Request-ID"

// RequestID makes sure every request carries an X-Request-ID, generating one
// when the client did not send it, and echoes it on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
			r.Header.Set(RequestIDHeader, id)
		}
		w.Header().Set(RequestIDHeader, id)

		next.ServeHTTP(w, r.WithContext(requestctx.WithID(r.Context(), id)))
	})
}
