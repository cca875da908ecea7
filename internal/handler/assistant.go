package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/eventiq/eventiq/internal/assistant"
	"github.com/go-chi/chi/v5"
)

// AssistantHandler exposes the tool-calling surface the external chat
// collaborator invokes.
type AssistantHandler struct {
	registry *assistant.Registry
}

// NewAssistantHandler constructs an AssistantHandler.
func NewAssistantHandler(registry *assistant.Registry) *AssistantHandler {
	return &AssistantHandler{registry: registry}
}

type invokeRequest struct {
	SessionID string          `json:"session_id"`
	Args      json.RawMessage `json:"args"`
}

// InvokeTool handles POST /api/assistant/tools/{name}.
func (h *AssistantHandler) InvokeTool(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var req invokeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := h.registry.Invoke(r.Context(), req.SessionID, name, req.Args)
	if err != nil {
		if errors.Is(err, assistant.ErrUnknownTool) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"result": result})
}

// SessionHistory handles GET /api/assistant/sessions/{sessionID}.
func (h *AssistantHandler) SessionHistory(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.registry.History(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load session history")
		return
	}
	if msgs == nil {
		msgs = []assistant.Message{}
	}
	writeJSON(w, http.StatusOK, msgs)
}
