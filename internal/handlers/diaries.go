package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"roomfund/internal/middleware"
	"roomfund/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type diaryRequest struct {
	Date              string `json:"date"`
	MorningActionID   string `json:"morning_action_id"`
	AfternoonActionID string `json:"afternoon_action_id"`
}

func (h *Handler) ListDiaries(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	username := query.Get("username")
	startRaw, endRaw := query.Get("start"), query.Get("end")

	var (
		diaries []models.Diary
		err     error
	)
	switch {
	case startRaw != "" && endRaw != "":
		var start, end time.Time
		start, err = time.Parse("2006-01-02", startRaw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid start date")
			return
		}
		end, err = time.Parse("2006-01-02", endRaw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid end date")
			return
		}
		diaries, err = h.diaries.GetByDateRange(r.Context(), start, end, username)
	case username != "":
		diaries, err = h.diaries.GetByUsername(r.Context(), username)
	default:
		diaries, err = h.diaries.GetAll(r.Context())
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load diaries")
		return
	}
	respondJSON(w, http.StatusOK, diaries)
}

func (h *Handler) GetDiary(w http.ResponseWriter, r *http.Request) {
	diary, err := h.diaries.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if isNotFound(err) {
			respondError(w, http.StatusNotFound, "diary not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load diary")
		return
	}
	respondJSON(w, http.StatusOK, diary)
}

func (h *Handler) resolveDiaryActions(r *http.Request, req diaryRequest) (time.Time, string, int) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return time.Time{}, "invalid date", http.StatusBadRequest
	}
	for _, actionID := range []string{req.MorningActionID, req.AfternoonActionID} {
		if _, err := h.actions.GetByID(r.Context(), actionID); err != nil {
			if isNotFound(err) {
				return time.Time{}, "action not found", http.StatusBadRequest
			}
			return time.Time{}, "unable to load action", http.StatusInternalServerError
		}
	}
	return date, "", 0
}

func (h *Handler) CreateDiary(w http.ResponseWriter, r *http.Request) {
	var req diaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	date, msg, status := h.resolveDiaryActions(r, req)
	if msg != "" {
		respondError(w, status, msg)
		return
	}
	identity, _ := middleware.IdentityFromContext(r.Context())
	exists, err := h.diaries.Exists(r.Context(), date, identity.Username, "")
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to create diary")
		return
	}
	if exists {
		respondError(w, http.StatusConflict, fmt.Sprintf("diary for %s already exists", req.Date))
		return
	}
	diaryID := uuid.NewString()
	err = h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		number, err := h.sessions.NextNumber(r.Context(), tx)
		if err != nil {
			return err
		}
		morningID, afternoonID := uuid.NewString(), uuid.NewString()
		if err := h.sessions.Create(r.Context(), tx, morningID, number, req.MorningActionID); err != nil {
			return err
		}
		if err := h.sessions.Create(r.Context(), tx, afternoonID, number+1, req.AfternoonActionID); err != nil {
			return err
		}
		diary := models.Diary{
			ID:                 diaryID,
			Date:               date,
			MorningSessionID:   morningID,
			AfternoonSessionID: afternoonID,
			Username:           identity.Username,
		}
		if err := h.diaries.Create(r.Context(), tx, diary); err != nil {
			return err
		}
		content := fmt.Sprintf("created diary for %s", req.Date)
		return h.history.Add(r.Context(), tx, uuid.NewString(), identity.Username, models.HistoryCreate, content)
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to create diary")
		return
	}
	diary, err := h.diaries.GetByID(r.Context(), diaryID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load diary")
		return
	}
	respondJSON(w, http.StatusCreated, diary)
}

func (h *Handler) UpdateDiary(w http.ResponseWriter, r *http.Request) {
	var req diaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	diaryID := chi.URLParam(r, "id")
	existing, err := h.diaries.GetByID(r.Context(), diaryID)
	if err != nil {
		if isNotFound(err) {
			respondError(w, http.StatusNotFound, "diary not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load diary")
		return
	}
	date, msg, status := h.resolveDiaryActions(r, req)
	if msg != "" {
		respondError(w, status, msg)
		return
	}
	identity, _ := middleware.IdentityFromContext(r.Context())
	exists, err := h.diaries.Exists(r.Context(), date, existing.Username, diaryID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update diary")
		return
	}
	if exists {
		respondError(w, http.StatusConflict, fmt.Sprintf("diary for %s already exists", req.Date))
		return
	}
	morning, err := h.sessions.GetByID(r.Context(), existing.MorningSessionID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load sessions")
		return
	}
	afternoon, err := h.sessions.GetByID(r.Context(), existing.AfternoonSessionID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load sessions")
		return
	}
	err = h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		if err := h.sessions.Update(r.Context(), tx, morning.ID, morning.Number, req.MorningActionID); err != nil {
			return err
		}
		if err := h.sessions.Update(r.Context(), tx, afternoon.ID, afternoon.Number, req.AfternoonActionID); err != nil {
			return err
		}
		updated := existing
		updated.Date = date
		if err := h.diaries.Update(r.Context(), tx, updated); err != nil {
			return err
		}
		content := fmt.Sprintf("updated diary for %s", req.Date)
		return h.history.Add(r.Context(), tx, uuid.NewString(), identity.Username, models.HistoryUpdate, content)
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update diary")
		return
	}
	diary, err := h.diaries.GetByID(r.Context(), diaryID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load diary")
		return
	}
	respondJSON(w, http.StatusOK, diary)
}

func (h *Handler) DeleteDiary(w http.ResponseWriter, r *http.Request) {
	diaryID := chi.URLParam(r, "id")
	existing, err := h.diaries.GetByID(r.Context(), diaryID)
	if err != nil {
		if isNotFound(err) {
			respondError(w, http.StatusNotFound, "diary not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load diary")
		return
	}
	identity, _ := middleware.IdentityFromContext(r.Context())
	err = h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		if err := h.diaries.Delete(r.Context(), tx, diaryID); err != nil {
			return err
		}
		if err := h.sessions.Delete(r.Context(), tx, existing.MorningSessionID); err != nil {
			return err
		}
		if err := h.sessions.Delete(r.Context(), tx, existing.AfternoonSessionID); err != nil {
			return err
		}
		content := fmt.Sprintf("deleted diary for %s", existing.Date.Format("2006-01-02"))
		return h.history.Add(r.Context(), tx, uuid.NewString(), identity.Username, models.HistoryDelete, content)
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to delete diary")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
