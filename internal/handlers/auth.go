package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"roomfund/internal/auth"
	"roomfund/internal/middleware"
	"roomfund/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	account, err := h.accounts.GetByUsername(r.Context(), req.Username)
	if err != nil {
		if isNotFound(err) {
			respondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		respondError(w, http.StatusInternalServerError, "login failed")
		return
	}
	if !auth.CheckPassword(account.PasswordHash, req.Password) {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err := h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		content := fmt.Sprintf("%s logged in from %s", account.Username, r.RemoteAddr)
		return h.history.Add(r.Context(), tx, uuid.NewString(), account.Username, models.HistoryLogin, content)
	}); err != nil {
		respondError(w, http.StatusInternalServerError, "login failed")
		return
	}
	token, err := auth.GenerateToken(h.cfg.JWTSecret, auth.Identity{
		AccountID:  account.ID,
		Username:   account.Username,
		Role:       account.Role,
		CodePerson: account.CodePerson,
	}, h.cfg.TokenTTL)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"token":   token,
		"account": account,
	})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	account, err := h.accounts.GetByID(r.Context(), identity.AccountID)
	if err != nil {
		if isNotFound(err) {
			respondError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load account")
		return
	}
	respondJSON(w, http.StatusOK, account)
}
