package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"roomfund/internal/auth"
	"roomfund/internal/db"
	"roomfund/internal/middleware"
	"roomfund/internal/models"
	"roomfund/internal/store"
	"roomfund/internal/validator"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type accountRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	CodePerson string `json:"code_person"`
}

func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	var (
		accounts []models.Account
		err      error
	)
	if role := r.URL.Query().Get("role"); role != "" {
		accounts, err = h.accounts.GetByRole(r.Context(), role)
	} else {
		accounts, err = h.accounts.GetAll(r.Context())
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load accounts")
		return
	}
	respondJSON(w, http.StatusOK, accounts)
}

func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	account, err := h.accounts.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if isNotFound(err) {
			respondError(w, http.StatusNotFound, "account not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load account")
		return
	}
	respondJSON(w, http.StatusOK, account)
}

func (h *Handler) GetAccountByUsername(w http.ResponseWriter, r *http.Request) {
	account, err := h.accounts.GetByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		if isNotFound(err) {
			respondError(w, http.StatusNotFound, "account not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load account")
		return
	}
	respondJSON(w, http.StatusOK, account)
}

func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := validator.ValidateUsername(req.Username); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validator.ValidatePassword(req.Password); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validator.ValidateRole(req.Role); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	person, err := h.persons.GetByCode(r.Context(), req.CodePerson)
	if err != nil {
		if isNotFound(err) {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("person code %q does not exist", req.CodePerson))
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to create account")
		return
	}
	taken, err := h.accounts.UsernameTaken(r.Context(), req.Username, "")
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to create account")
		return
	}
	if taken {
		respondError(w, http.StatusConflict, fmt.Sprintf("username %q already exists", req.Username))
		return
	}
	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to secure password")
		return
	}
	identity, _ := middleware.IdentityFromContext(r.Context())
	accountID := uuid.NewString()
	err = h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		input := store.AccountInput{
			ID:           accountID,
			Username:     req.Username,
			PasswordHash: passwordHash,
			Role:         req.Role,
			CodePerson:   person.Code,
			PersonName:   person.Name,
		}
		if err := h.accounts.Create(r.Context(), tx, input); err != nil {
			return err
		}
		content := fmt.Sprintf("created account %s (role %s, person %s)", req.Username, req.Role, person.Name)
		return h.history.Add(r.Context(), tx, uuid.NewString(), identity.Username, models.HistoryCreate, content)
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			respondError(w, http.StatusConflict, fmt.Sprintf("username %q already exists", req.Username))
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to create account")
		return
	}
	account, err := h.accounts.GetByID(r.Context(), accountID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load account")
		return
	}
	respondJSON(w, http.StatusCreated, account)
}

func (h *Handler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	accountID := chi.URLParam(r, "id")
	existing, err := h.accounts.GetByID(r.Context(), accountID)
	if err != nil {
		if isNotFound(err) {
			respondError(w, http.StatusNotFound, "account not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load account")
		return
	}
	if err := validator.ValidateUsername(req.Username); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validator.ValidateRole(req.Role); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	person, err := h.persons.GetByCode(r.Context(), req.CodePerson)
	if err != nil {
		if isNotFound(err) {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("person code %q does not exist", req.CodePerson))
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to update account")
		return
	}
	taken, err := h.accounts.UsernameTaken(r.Context(), req.Username, accountID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update account")
		return
	}
	if taken {
		respondError(w, http.StatusConflict, fmt.Sprintf("username %q already exists", req.Username))
		return
	}
	identity, _ := middleware.IdentityFromContext(r.Context())
	err = h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		input := store.AccountInput{
			ID:           accountID,
			Username:     req.Username,
			PasswordHash: existing.PasswordHash,
			Role:         req.Role,
			CodePerson:   person.Code,
			PersonName:   person.Name,
		}
		if err := h.accounts.Update(r.Context(), tx, accountID, input); err != nil {
			return err
		}
		content := fmt.Sprintf("updated account %s (role %s, person %s)", req.Username, req.Role, person.Name)
		return h.history.Add(r.Context(), tx, uuid.NewString(), identity.Username, models.HistoryUpdate, content)
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update account")
		return
	}
	account, err := h.accounts.GetByID(r.Context(), accountID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load account")
		return
	}
	respondJSON(w, http.StatusOK, account)
}

type changePasswordRequest struct {
	Password string `json:"password"`
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := validator.ValidatePassword(req.Password); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	accountID := chi.URLParam(r, "id")
	existing, err := h.accounts.GetByID(r.Context(), accountID)
	if err != nil {
		if isNotFound(err) {
			respondError(w, http.StatusNotFound, "account not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load account")
		return
	}
	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to secure password")
		return
	}
	identity, _ := middleware.IdentityFromContext(r.Context())
	err = h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		if err := h.accounts.UpdatePassword(r.Context(), tx, accountID, passwordHash); err != nil {
			return err
		}
		content := fmt.Sprintf("changed password for account %s", existing.Username)
		return h.history.Add(r.Context(), tx, uuid.NewString(), identity.Username, models.HistoryUpdate, content)
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to change password")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

func (h *Handler) UpdateAccountRole(w http.ResponseWriter, r *http.Request) {
	var req updateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := validator.ValidateRole(req.Role); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	accountID := chi.URLParam(r, "id")
	existing, err := h.accounts.GetByID(r.Context(), accountID)
	if err != nil {
		if isNotFound(err) {
			respondError(w, http.StatusNotFound, "account not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load account")
		return
	}
	identity, _ := middleware.IdentityFromContext(r.Context())
	err = h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		if err := h.accounts.UpdateRole(r.Context(), tx, accountID, req.Role); err != nil {
			return err
		}
		content := fmt.Sprintf("changed role of account %s to %s", existing.Username, req.Role)
		return h.history.Add(r.Context(), tx, uuid.NewString(), identity.Username, models.HistoryUpdate, content)
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update role")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	existing, err := h.accounts.GetByID(r.Context(), accountID)
	if err != nil {
		if isNotFound(err) {
			respondError(w, http.StatusNotFound, "account not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load account")
		return
	}
	identity, _ := middleware.IdentityFromContext(r.Context())
	err = h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		if err := h.accounts.Delete(r.Context(), tx, accountID); err != nil {
			return err
		}
		content := fmt.Sprintf("deleted account %s", existing.Username)
		return h.history.Add(r.Context(), tx, uuid.NewString(), identity.Username, models.HistoryDelete, content)
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to delete account")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
