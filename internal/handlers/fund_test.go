package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"roomfund/internal/fund"
	"roomfund/internal/models"
)

func dashboardFixture() []models.Transaction {
	return []models.Transaction{
		{ID: "t-1", Date: "2024-01-10", Amount: 100000, Type: models.TypeIncome, PersonID: "p-1", PersonName: "An", Status: models.StatusCompleted},
		{ID: "t-2", Date: "2024-01-12", Amount: 30000, Type: models.TypeExpense, PersonID: "p-2", PersonName: "Binh", Status: models.StatusCompleted},
		{ID: "t-3", Date: "2024-01-15", Amount: 50000, Type: models.TypeIncome, PersonID: "p-1", PersonName: "An", Status: models.StatusPending},
	}
}

func TestDashboard(t *testing.T) {
	handler := newTestHandler(fakeTxRunner{}, stubPersonStore{}, stubTransactionStore{
		getAllFn: func(context.Context) ([]models.Transaction, error) {
			return dashboardFixture(), nil
		},
	}, stubAccountStore{}, stubActionStore{}, stubSessionStore{}, stubDiaryStore{}, stubHistoryStore{})

	req := httptest.NewRequest(http.MethodGet, "/fund?person=p-1&status=pending", nil)
	rr := httptest.NewRecorder()
	handler.Dashboard(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var payload struct {
		Stats        fund.Stats           `json:"stats"`
		Transactions []models.Transaction `json:"transactions"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	// Stats cover the full set regardless of the filter.
	if payload.Stats.CurrentFund != 70000 || payload.Stats.PendingFund != 50000 {
		t.Fatalf("unexpected stats: %+v", payload.Stats)
	}
	if len(payload.Transactions) != 1 || payload.Transactions[0].ID != "t-3" {
		t.Fatalf("unexpected filtered rows: %+v", payload.Transactions)
	}
}

func TestDashboardNoCriteria(t *testing.T) {
	handler := newTestHandler(fakeTxRunner{}, stubPersonStore{}, stubTransactionStore{
		getAllFn: func(context.Context) ([]models.Transaction, error) {
			return dashboardFixture(), nil
		},
	}, stubAccountStore{}, stubActionStore{}, stubSessionStore{}, stubDiaryStore{}, stubHistoryStore{})

	req := httptest.NewRequest(http.MethodGet, "/fund", nil)
	rr := httptest.NewRecorder()
	handler.Dashboard(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var payload struct {
		Transactions []models.Transaction `json:"transactions"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(payload.Transactions) != 3 {
		t.Fatalf("expected all rows, got %d", len(payload.Transactions))
	}
	if payload.Transactions[0].Date != "2024-01-15" {
		t.Fatalf("expected newest first, got %s", payload.Transactions[0].Date)
	}
}

func TestWSFundMissingToken(t *testing.T) {
	handler := newTestHandler(fakeTxRunner{}, stubPersonStore{}, stubTransactionStore{},
		stubAccountStore{}, stubActionStore{}, stubSessionStore{}, stubDiaryStore{}, stubHistoryStore{})

	req := httptest.NewRequest(http.MethodGet, "/ws/fund", nil)
	rr := httptest.NewRecorder()
	handler.WSFund(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestWSFundInvalidToken(t *testing.T) {
	handler := newTestHandler(fakeTxRunner{}, stubPersonStore{}, stubTransactionStore{},
		stubAccountStore{}, stubActionStore{}, stubSessionStore{}, stubDiaryStore{}, stubHistoryStore{})

	req := httptest.NewRequest(http.MethodGet, "/ws/fund?token=bad", nil)
	rr := httptest.NewRecorder()
	handler.WSFund(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}
