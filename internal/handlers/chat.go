package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/TEAM-BIRDIE/BeoTT/internal/agent"
)

// ChatRequest is one conversation turn. Context must be echoed verbatim from
// the previous response while a transfer is in flight.
type ChatRequest struct {
	Message  string          `json:"message"`
	Username string          `json:"username"`
	Context  json.RawMessage `json:"context,omitempty"`
}

type ChatResponse struct {
	ReplyText string                `json:"reply_text"`
	Transfer  *agent.TransferResult `json:"transfer,omitempty"`
}

// Chat handles POST /api/chat.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Message == "" {
		respondError(w, http.StatusBadRequest, "Message is required")
		return
	}
	if req.Username == "" {
		req.Username = defaultUsername
	}

	result := h.agent.Handle(agent.Input{
		Utterance: req.Message,
		Username:  req.Username,
		Context:   req.Context,
	})

	resp := ChatResponse{ReplyText: result.Answer, Transfer: result.Transfer}
	if result.Transfer != nil {
		resp.ReplyText = result.Transfer.Message
	}
	respondJSON(w, http.StatusOK, resp)
}
