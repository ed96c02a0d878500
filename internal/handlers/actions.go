package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"roomfund/internal/middleware"
	"roomfund/internal/models"
	"roomfund/internal/validator"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type actionRequest struct {
	Name string `json:"name"`
}

func (h *Handler) ListActions(w http.ResponseWriter, r *http.Request) {
	actions, err := h.actions.GetAll(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load actions")
		return
	}
	respondJSON(w, http.StatusOK, actions)
}

func (h *Handler) GetAction(w http.ResponseWriter, r *http.Request) {
	action, err := h.actions.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if isNotFound(err) {
			respondError(w, http.StatusNotFound, "action not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load action")
		return
	}
	respondJSON(w, http.StatusOK, action)
}

func (h *Handler) CreateAction(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := validator.Require(req.Name); err != nil {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	taken, err := h.actions.NameTaken(r.Context(), req.Name, "")
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to create action")
		return
	}
	if taken {
		respondError(w, http.StatusConflict, fmt.Sprintf("action %q already exists", req.Name))
		return
	}
	identity, _ := middleware.IdentityFromContext(r.Context())
	actionID := uuid.NewString()
	err = h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		if err := h.actions.Create(r.Context(), tx, actionID, req.Name); err != nil {
			return err
		}
		content := fmt.Sprintf("created action %s", req.Name)
		return h.history.Add(r.Context(), tx, uuid.NewString(), identity.Username, models.HistoryCreate, content)
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to create action")
		return
	}
	respondJSON(w, http.StatusCreated, models.Action{ID: actionID, Name: req.Name})
}

func (h *Handler) UpdateAction(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := validator.Require(req.Name); err != nil {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	actionID := chi.URLParam(r, "id")
	if _, err := h.actions.GetByID(r.Context(), actionID); err != nil {
		if isNotFound(err) {
			respondError(w, http.StatusNotFound, "action not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load action")
		return
	}
	taken, err := h.actions.NameTaken(r.Context(), req.Name, actionID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update action")
		return
	}
	if taken {
		respondError(w, http.StatusConflict, fmt.Sprintf("action %q already exists", req.Name))
		return
	}
	identity, _ := middleware.IdentityFromContext(r.Context())
	err = h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		if err := h.actions.Update(r.Context(), tx, actionID, req.Name); err != nil {
			return err
		}
		content := fmt.Sprintf("updated action %s", req.Name)
		return h.history.Add(r.Context(), tx, uuid.NewString(), identity.Username, models.HistoryUpdate, content)
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update action")
		return
	}
	respondJSON(w, http.StatusOK, models.Action{ID: actionID, Name: req.Name})
}

func (h *Handler) DeleteAction(w http.ResponseWriter, r *http.Request) {
	actionID := chi.URLParam(r, "id")
	existing, err := h.actions.GetByID(r.Context(), actionID)
	if err != nil {
		if isNotFound(err) {
			respondError(w, http.StatusNotFound, "action not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load action")
		return
	}
	identity, _ := middleware.IdentityFromContext(r.Context())
	err = h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		if err := h.actions.Delete(r.Context(), tx, actionID); err != nil {
			return err
		}
		content := fmt.Sprintf("deleted action %s", existing.Name)
		return h.history.Add(r.Context(), tx, uuid.NewString(), identity.Username, models.HistoryDelete, content)
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to delete action")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sessions.GetAll(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load sessions")
		return
	}
	respondJSON(w, http.StatusOK, sessions)
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if isNotFound(err) {
			respondError(w, http.StatusNotFound, "session not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load session")
		return
	}
	respondJSON(w, http.StatusOK, session)
}
