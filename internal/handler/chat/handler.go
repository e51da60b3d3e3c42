package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mnemolabs/mnemo/internal/model/chat"
	chatService "github.com/mnemolabs/mnemo/internal/service/chat"
	"github.com/mnemolabs/mnemo/pkg/utils"
)

// Handler binds the chat store to its REST surface.
type Handler struct {
	chatSvc *chatService.Service
}

// New creates a chat handler.
func New(chatSvc *chatService.Service) *Handler {
	return &Handler{chatSvc: chatSvc}
}

// RegisterRoutes registers the chat routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chats", h.handleCreateChat)
	r.Get("/chats", h.handleListChats)
	r.Get("/chats/{chatID}", h.handleGetChat)
	r.Put("/chats/{chatID}/messages", h.handleAppendMessages)
	r.Get("/chats/{chatID}/messages", h.handleGetMessages)
	r.Put("/chats/{chatID}/summary", h.handleSetSummary)
}

func (h *Handler) handleCreateChat(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string `json:"sessionId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if payload.SessionID == "" {
		utils.RespondError(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	record, err := h.chatSvc.CreateChat(r.Context(), payload.SessionID)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusCreated, record)
}

func (h *Handler) handleGetChat(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatID")

	record, err := h.chatSvc.GetChat(r.Context(), chatID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, record)
}

func (h *Handler) handleListChats(w http.ResponseWriter, r *http.Request) {
	records, err := h.chatSvc.ListChats(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, records)
}

func (h *Handler) handleAppendMessages(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatID")

	var payload struct {
		Messages []chat.Message `json:"messages"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.chatSvc.AppendMessages(r.Context(), chatID, payload.Messages); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleGetMessages(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatID")

	messages, err := h.chatSvc.GetMessages(r.Context(), chatID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, messages)
}

func (h *Handler) handleSetSummary(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatID")

	var payload struct {
		Summary string `json:"summary"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.chatSvc.SetSummary(r.Context(), chatID, payload.Summary); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func respondServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, chatService.ErrChatNotFound) {
		status = http.StatusNotFound
	}
	utils.RespondError(w, status, err.Error())
}
