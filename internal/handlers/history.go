package handlers

import (
	"net/http"
	"strconv"
)

const defaultHistoryLimit = 100

func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit := defaultHistoryLimit
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}
	offset := 0
	if raw := query.Get("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respondError(w, http.StatusBadRequest, "invalid offset")
			return
		}
		offset = parsed
	}

	username := query.Get("username")
	historyType := query.Get("type")
	switch {
	case username != "":
		entries, err := h.history.GetByUsername(r.Context(), username, limit, offset)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "unable to load history")
			return
		}
		respondJSON(w, http.StatusOK, entries)
	case historyType != "":
		entries, err := h.history.GetByType(r.Context(), historyType, limit, offset)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "unable to load history")
			return
		}
		respondJSON(w, http.StatusOK, entries)
	default:
		entries, err := h.history.GetAll(r.Context(), limit, offset)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "unable to load history")
			return
		}
		respondJSON(w, http.StatusOK, entries)
	}
}
