package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/TEAM-BIRDIE/BeoTT/internal/agent"
	"github.com/TEAM-BIRDIE/BeoTT/internal/database"
)

const defaultUsername = "demo"

type Handler struct {
	repo  *database.Repository
	agent *agent.Orchestrator
}

func New(repo *database.Repository, orchestrator *agent.Orchestrator) *Handler {
	return &Handler{repo: repo, agent: orchestrator}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func (h *Handler) username(r *http.Request) string {
	if u := r.URL.Query().Get("username"); u != "" {
		return u
	}
	return defaultUsername
}
