package handlers

import (
	"net/http"
	"strconv"
)

// Accounts handles GET /api/accounts.
func (h *Handler) Accounts(w http.ResponseWriter, r *http.Request) {
	member, err := h.repo.GetMember(h.username(r))
	if err != nil {
		respondError(w, http.StatusNotFound, "Member not found")
		return
	}

	accounts, err := h.repo.ListAccounts(member.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load accounts")
		return
	}
	respondJSON(w, http.StatusOK, accounts)
}

// Ledger handles GET /api/ledger.
func (h *Handler) Ledger(w http.ResponseWriter, r *http.Request) {
	member, err := h.repo.GetMember(h.username(r))
	if err != nil {
		respondError(w, http.StatusNotFound, "Member not found")
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	entries, err := h.repo.RecentLedger(member.ID, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load ledger")
		return
	}
	respondJSON(w, http.StatusOK, entries)
}
