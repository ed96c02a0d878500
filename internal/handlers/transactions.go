package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"roomfund/internal/fund"
	"roomfund/internal/middleware"
	"roomfund/internal/models"
	"roomfund/internal/money"
	"roomfund/internal/store"
	"roomfund/internal/validator"
	"roomfund/internal/websocket"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type transactionRequest struct {
	Date        string `json:"date"`
	Amount      string `json:"amount"`
	Type        string `json:"type"`
	Description string `json:"description"`
	PersonID    string `json:"person_id"`
	Status      string `json:"status"`
}

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	var (
		transactions []models.Transaction
		err          error
	)
	if personID := r.URL.Query().Get("person"); personID != "" {
		transactions, err = h.transactions.GetByPerson(r.Context(), personID)
	} else {
		transactions, err = h.transactions.GetAll(r.Context())
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load transactions")
		return
	}
	respondJSON(w, http.StatusOK, transactions)
}

func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	transaction, err := h.transactions.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if isNotFound(err) {
			respondError(w, http.StatusNotFound, "transaction not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load transaction")
		return
	}
	respondJSON(w, http.StatusOK, transaction)
}

func (h *Handler) buildTransactionInput(r *http.Request, id string, req transactionRequest) (store.TransactionInput, string, int) {
	if err := validator.ValidateDate(req.Date); err != nil {
		return store.TransactionInput{}, err.Error(), http.StatusBadRequest
	}
	if err := validator.ValidateTransactionType(req.Type); err != nil {
		return store.TransactionInput{}, err.Error(), http.StatusBadRequest
	}
	if err := validator.ValidateStatus(req.Status); err != nil {
		return store.TransactionInput{}, err.Error(), http.StatusBadRequest
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return store.TransactionInput{}, "invalid amount", http.StatusBadRequest
	}
	person, err := h.persons.GetByID(r.Context(), req.PersonID)
	if err != nil {
		if isNotFound(err) {
			return store.TransactionInput{}, "person not found", http.StatusBadRequest
		}
		return store.TransactionInput{}, "unable to load person", http.StatusInternalServerError
	}
	weekday, err := dayOfWeek(req.Date)
	if err != nil {
		return store.TransactionInput{}, "invalid date", http.StatusBadRequest
	}
	return store.TransactionInput{
		ID:          id,
		Date:        req.Date,
		DayOfWeek:   weekday,
		Amount:      amount,
		Type:        req.Type,
		Description: req.Description,
		PersonID:    person.ID,
		PersonName:  person.Name,
		Status:      req.Status,
	}, "", 0
}

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	input, msg, status := h.buildTransactionInput(r, uuid.NewString(), req)
	if msg != "" {
		respondError(w, status, msg)
		return
	}
	identity, _ := middleware.IdentityFromContext(r.Context())
	err := h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		if err := h.transactions.Create(r.Context(), tx, input); err != nil {
			return err
		}
		content := fmt.Sprintf("created %s of %s for %s on %s", input.Type, money.FormatVND(input.Amount), input.PersonName, input.Date)
		return h.history.Add(r.Context(), tx, uuid.NewString(), identity.Username, models.HistoryCreate, content)
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to create transaction")
		return
	}
	h.broadcastFund(r.Context())
	transaction, err := h.transactions.GetByID(r.Context(), input.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load transaction")
		return
	}
	respondJSON(w, http.StatusCreated, transaction)
}

func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	transactionID := chi.URLParam(r, "id")
	if _, err := h.transactions.GetByID(r.Context(), transactionID); err != nil {
		if isNotFound(err) {
			respondError(w, http.StatusNotFound, "transaction not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load transaction")
		return
	}
	input, msg, status := h.buildTransactionInput(r, transactionID, req)
	if msg != "" {
		respondError(w, status, msg)
		return
	}
	identity, _ := middleware.IdentityFromContext(r.Context())
	err := h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		if err := h.transactions.Update(r.Context(), tx, transactionID, input); err != nil {
			return err
		}
		content := fmt.Sprintf("updated %s of %s for %s on %s", input.Type, money.FormatVND(input.Amount), input.PersonName, input.Date)
		return h.history.Add(r.Context(), tx, uuid.NewString(), identity.Username, models.HistoryUpdate, content)
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update transaction")
		return
	}
	h.broadcastFund(r.Context())
	transaction, err := h.transactions.GetByID(r.Context(), transactionID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load transaction")
		return
	}
	respondJSON(w, http.StatusOK, transaction)
}

func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "id")
	existing, err := h.transactions.GetByID(r.Context(), transactionID)
	if err != nil {
		if isNotFound(err) {
			respondError(w, http.StatusNotFound, "transaction not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load transaction")
		return
	}
	identity, _ := middleware.IdentityFromContext(r.Context())
	err = h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		if err := h.transactions.Delete(r.Context(), tx, transactionID); err != nil {
			return err
		}
		content := fmt.Sprintf("deleted %s of %s for %s on %s", existing.Type, money.FormatVND(existing.Amount), existing.PersonName, existing.Date)
		return h.history.Add(r.Context(), tx, uuid.NewString(), identity.Username, models.HistoryDelete, content)
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to delete transaction")
		return
	}
	h.broadcastFund(r.Context())
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// broadcastFund pushes the recomputed fund summary to websocket clients.
// Best effort: a failed reload only skips the broadcast.
func (h *Handler) broadcastFund(ctx context.Context) {
	if h.hub == nil {
		return
	}
	transactions, err := h.transactions.GetAll(ctx)
	if err != nil {
		log.Printf("fund broadcast skipped: %v", err)
		return
	}
	h.hub.BroadcastFund(websocket.FundUpdate{Stats: fund.Summarize(transactions)})
}
