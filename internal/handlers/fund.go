package handlers

import (
	"net/http"
	"strings"

	"roomfund/internal/auth"
	"roomfund/internal/fund"
	"roomfund/internal/models"
	"roomfund/internal/websocket"
)

type fundResponse struct {
	Stats        fund.Stats           `json:"stats"`
	Transactions []models.Transaction `json:"transactions"`
}

// Dashboard returns the fund summary over all transactions plus the rows
// matching the filter criteria. Stats are always computed over the full set.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	criteria := fund.Criteria{
		StartDate: query.Get("start"),
		EndDate:   query.Get("end"),
		PersonID:  query.Get("person"),
		Status:    query.Get("status"),
		Type:      query.Get("type"),
		Search:    query.Get("q"),
	}
	transactions, err := h.transactions.GetAll(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load transactions")
		return
	}
	respondJSON(w, http.StatusOK, fundResponse{
		Stats:        fund.Summarize(transactions),
		Transactions: fund.Filter(transactions, criteria),
	})
}

func (h *Handler) WSFund(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		authHeader := r.Header.Get("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimPrefix(authHeader, "Bearer ")
		}
	}
	if token == "" {
		respondError(w, http.StatusUnauthorized, "missing token")
		return
	}
	if _, err := auth.ParseToken(h.cfg.JWTSecret, token); err != nil {
		respondError(w, http.StatusUnauthorized, "invalid token")
		return
	}
	websocket.ServeWS(w, r, h.hub)
}
