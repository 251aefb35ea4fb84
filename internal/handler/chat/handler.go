package chat

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	chatmodel "github.com/manasmitra/backend/internal/model/chat"
	"github.com/manasmitra/backend/pkg/utils"
)

// Orchestrator runs the full chat pipeline for one inbound message.
type Orchestrator interface {
	ProcessMessage(ctx context.Context, sessionID, language, message string) chatmodel.Result
}

// Handler serves the chat and health endpoints.
type Handler struct {
	orchestrator      Orchestrator
	llamaReady        func() bool
	mentalHealthReady func() bool
}

// New creates the chat handler. The readiness probes are recorded booleans;
// calling them does not re-probe the remote endpoint.
func New(orchestrator Orchestrator, llamaReady, mentalHealthReady func() bool) *Handler {
	return &Handler{
		orchestrator:      orchestrator,
		llamaReady:        llamaReady,
		mentalHealthReady: mentalHealthReady,
	}
}

// RegisterRoutes mounts the chat endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
	r.Get("/health", h.handleHealth)
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Message   string `json:"message"`
		SessionID string `json:"sessionId"`
		Language  string `json:"language"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if payload.Message == "" {
		utils.RespondError(w, http.StatusBadRequest, "message is required")
		return
	}
	if payload.SessionID == "" {
		utils.RespondError(w, http.StatusBadRequest, "sessionId is required")
		return
	}
	if payload.Language == "" {
		payload.Language = "en"
	}

	result := h.orchestrator.ProcessMessage(r.Context(), payload.SessionID, payload.Language, payload.Message)
	utils.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"status": "healthy",
		"services": map[string]bool{
			"llamaReady":        h.llamaReady(),
			"mentalHealthReady": h.mentalHealthReady(),
		},
	})
}
