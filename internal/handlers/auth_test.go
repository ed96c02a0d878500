package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"roomfund/internal/auth"
	"roomfund/internal/models"
	"roomfund/internal/store"
)

func TestLoginSuccess(t *testing.T) {
	passwordHash, err := auth.HashPassword("pass1234")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	var logged []string
	handler := newTestHandler(fakeTxRunner{}, stubPersonStore{}, stubTransactionStore{}, stubAccountStore{
		getByUsernameFn: func(_ context.Context, username string) (models.Account, error) {
			return models.Account{ID: "acc-1", Username: username, PasswordHash: passwordHash, Role: models.RoleUser, CodePerson: "NV01"}, nil
		},
	}, stubActionStore{}, stubSessionStore{}, stubDiaryStore{}, stubHistoryStore{
		addFn: func(_ context.Context, _ store.Execer, _, username, historyType, _ string) error {
			logged = append(logged, username+":"+historyType)
			return nil
		},
	})

	body := []byte(`{"username":"alice","password":"pass1234"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	handler.Login(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var payload struct {
		Token   string         `json:"token"`
		Account models.Account `json:"account"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.Token == "" {
		t.Fatalf("expected token")
	}
	claims, err := auth.ParseToken("secret", payload.Token)
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}
	identity := claims.Identity()
	if identity.AccountID != "acc-1" || identity.Username != "alice" || identity.Role != models.RoleUser {
		t.Fatalf("unexpected identity: %+v", identity)
	}
	if len(logged) != 1 || logged[0] != "alice:"+models.HistoryLogin {
		t.Fatalf("unexpected history rows: %v", logged)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	passwordHash, err := auth.HashPassword("pass1234")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	historyRows := 0
	handler := newTestHandler(fakeTxRunner{}, stubPersonStore{}, stubTransactionStore{}, stubAccountStore{
		getByUsernameFn: func(_ context.Context, username string) (models.Account, error) {
			return models.Account{ID: "acc-1", Username: username, PasswordHash: passwordHash}, nil
		},
	}, stubActionStore{}, stubSessionStore{}, stubDiaryStore{}, stubHistoryStore{
		addFn: func(context.Context, store.Execer, string, string, string, string) error {
			historyRows++
			return nil
		},
	})

	body := []byte(`{"username":"alice","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	handler.Login(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	if bytes.Contains(rr.Body.Bytes(), []byte("token")) {
		t.Fatalf("expected no token in response: %s", rr.Body.String())
	}
	if historyRows != 0 {
		t.Fatalf("expected no history rows, got %d", historyRows)
	}
}

func TestLoginUnknownUsername(t *testing.T) {
	handler := newTestHandler(fakeTxRunner{}, stubPersonStore{}, stubTransactionStore{}, stubAccountStore{
		getByUsernameFn: func(context.Context, string) (models.Account, error) {
			return models.Account{}, sql.ErrNoRows
		},
	}, stubActionStore{}, stubSessionStore{}, stubDiaryStore{}, stubHistoryStore{})

	body := []byte(`{"username":"ghost","password":"pass1234"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	handler.Login(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestMe(t *testing.T) {
	handler := newTestHandler(fakeTxRunner{}, stubPersonStore{}, stubTransactionStore{}, stubAccountStore{
		getByIDFn: func(_ context.Context, id string) (models.Account, error) {
			return models.Account{ID: id, Username: "alice", Role: models.RoleAdmin}, nil
		},
	}, stubActionStore{}, stubSessionStore{}, stubDiaryStore{}, stubHistoryStore{})

	identity := auth.Identity{AccountID: "acc-1", Username: "alice", Role: models.RoleAdmin}
	rr := serveAuthed(t, http.HandlerFunc(handler.Me), http.MethodGet, "/auth/me", nil, identity)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var account models.Account
	if err := json.NewDecoder(rr.Body).Decode(&account); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if account.Username != "alice" {
		t.Fatalf("unexpected account: %+v", account)
	}
}

func TestMeWithoutToken(t *testing.T) {
	handler := newTestHandler(fakeTxRunner{}, stubPersonStore{}, stubTransactionStore{}, stubAccountStore{}, stubActionStore{}, stubSessionStore{}, stubDiaryStore{}, stubHistoryStore{})

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rr := httptest.NewRecorder()
	handler.Me(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}
