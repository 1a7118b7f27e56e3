package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"studyai-backend/internal/logger"
	"studyai-backend/internal/models"
	"studyai-backend/internal/requestctx"
	"studyai-backend/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// serviceErrorStatus maps a chat service error to its HTTP status and the
// message safe to show the user.
func serviceErrorStatus(err error) (int, string) {
	var vErr *services.ValidationError
	if errors.As(err, &vErr) {
		return http.StatusBadRequest, vErr.Message
	}
	return http.StatusInternalServerError, services.MsgProviderFailed
}

func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := serviceErrorStatus(err)
	if status >= http.StatusInternalServerError {
		slog.Error("chat request failed",
			"request_id", requestctx.ID(r.Context()),
			logger.Err(err),
		)
	}
	writeJSON(w, status, models.ReplyError{Reply: msg})
}
