package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"studyai-backend/internal/models"
	"studyai-backend/internal/services"
)

const maxChatBodyBytes = 64 << 10

type chatService interface {
	Handle(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error)
}

type ChatHandler struct {
	chat chatService
}

func NewChatHandler(chat chatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// Chat handles POST /api/chat.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxChatBodyBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ReplyError{Reply: services.MsgMissingMessage})
		return
	}

	resp, err := h.chat.Handle(r.Context(), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
