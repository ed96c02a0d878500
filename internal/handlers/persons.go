package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"roomfund/internal/db"
	"roomfund/internal/middleware"
	"roomfund/internal/models"
	"roomfund/internal/validator"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type personRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

func (h *Handler) ListPersons(w http.ResponseWriter, r *http.Request) {
	persons, err := h.persons.GetAll(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load persons")
		return
	}
	respondJSON(w, http.StatusOK, persons)
}

func (h *Handler) GetPerson(w http.ResponseWriter, r *http.Request) {
	person, err := h.persons.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if isNotFound(err) {
			respondError(w, http.StatusNotFound, "person not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load person")
		return
	}
	respondJSON(w, http.StatusOK, person)
}

func (h *Handler) CreatePerson(w http.ResponseWriter, r *http.Request) {
	var req personRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := validator.Require(req.Name); err != nil {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if err := validator.ValidatePersonCode(req.Code); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := h.persons.GetByCode(r.Context(), req.Code); err == nil {
		respondError(w, http.StatusConflict, fmt.Sprintf("person code %q already exists", req.Code))
		return
	} else if !isNotFound(err) {
		respondError(w, http.StatusInternalServerError, "unable to create person")
		return
	}
	identity, _ := middleware.IdentityFromContext(r.Context())
	personID := uuid.NewString()
	err := h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		if err := h.persons.Create(r.Context(), tx, personID, req.Name, req.Code); err != nil {
			return err
		}
		content := fmt.Sprintf("created person %s (code %s)", req.Name, req.Code)
		return h.history.Add(r.Context(), tx, uuid.NewString(), identity.Username, models.HistoryCreate, content)
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			respondError(w, http.StatusConflict, fmt.Sprintf("person code %q already exists", req.Code))
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to create person")
		return
	}
	person, err := h.persons.GetByID(r.Context(), personID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load person")
		return
	}
	respondJSON(w, http.StatusCreated, person)
}

func (h *Handler) UpdatePerson(w http.ResponseWriter, r *http.Request) {
	var req personRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := validator.Require(req.Name); err != nil {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if err := validator.ValidatePersonCode(req.Code); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	personID := chi.URLParam(r, "id")
	existing, err := h.persons.GetByID(r.Context(), personID)
	if err != nil {
		if isNotFound(err) {
			respondError(w, http.StatusNotFound, "person not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load person")
		return
	}
	if other, err := h.persons.GetByCode(r.Context(), req.Code); err == nil && other.ID != personID {
		respondError(w, http.StatusConflict, fmt.Sprintf("person code %q already exists", req.Code))
		return
	} else if err != nil && !isNotFound(err) {
		respondError(w, http.StatusInternalServerError, "unable to update person")
		return
	}
	identity, _ := middleware.IdentityFromContext(r.Context())
	err = h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		if err := h.persons.Update(r.Context(), tx, personID, req.Name, req.Code); err != nil {
			return err
		}
		// Rename follows into accounts; transaction snapshots stay frozen.
		if req.Name != existing.Name {
			if err := h.accounts.SyncPersonName(r.Context(), tx, req.Code, req.Name); err != nil {
				return err
			}
		}
		content := fmt.Sprintf("updated person %s (code %s)", req.Name, req.Code)
		return h.history.Add(r.Context(), tx, uuid.NewString(), identity.Username, models.HistoryUpdate, content)
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update person")
		return
	}
	person, err := h.persons.GetByID(r.Context(), personID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load person")
		return
	}
	respondJSON(w, http.StatusOK, person)
}

func (h *Handler) DeletePerson(w http.ResponseWriter, r *http.Request) {
	personID := chi.URLParam(r, "id")
	existing, err := h.persons.GetByID(r.Context(), personID)
	if err != nil {
		if isNotFound(err) {
			respondError(w, http.StatusNotFound, "person not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load person")
		return
	}
	identity, _ := middleware.IdentityFromContext(r.Context())
	err = h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		if err := h.persons.Delete(r.Context(), tx, personID); err != nil {
			return err
		}
		content := fmt.Sprintf("deleted person %s (code %s)", existing.Name, existing.Code)
		return h.history.Add(r.Context(), tx, uuid.NewString(), identity.Username, models.HistoryDelete, content)
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to delete person")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// PersonDeletable reports whether any account still references the person's
// code. Deletion is never blocked; the client uses this to warn first.
func (h *Handler) PersonDeletable(w http.ResponseWriter, r *http.Request) {
	person, err := h.persons.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if isNotFound(err) {
			respondError(w, http.StatusNotFound, "person not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load person")
		return
	}
	_, err = h.accounts.GetByCodePerson(r.Context(), person.Code)
	if err != nil && !isNotFound(err) {
		respondError(w, http.StatusInternalServerError, "unable to check person references")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"deletable": isNotFound(err)})
}
