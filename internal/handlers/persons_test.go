package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"roomfund/internal/auth"
	"roomfund/internal/models"
	"roomfund/internal/store"
)

func TestCreatePerson(t *testing.T) {
	created := 0
	var historyContent string
	handler := newTestHandler(fakeTxRunner{}, stubPersonStore{
		getByCodeFn: func(context.Context, string) (models.Person, error) {
			return models.Person{}, sql.ErrNoRows
		},
		createFn: func(_ context.Context, _ store.Execer, _, name, code string) error {
			if name != "Binh" || code != "NV02" {
				t.Fatalf("unexpected create args: %s %s", name, code)
			}
			created++
			return nil
		},
		getByIDFn: func(_ context.Context, id string) (models.Person, error) {
			return models.Person{ID: id, Name: "Binh", Code: "NV02"}, nil
		},
	}, stubTransactionStore{}, stubAccountStore{}, stubActionStore{}, stubSessionStore{}, stubDiaryStore{}, stubHistoryStore{
		addFn: func(_ context.Context, _ store.Execer, _, username, historyType, content string) error {
			if username != "admin" || historyType != models.HistoryCreate {
				t.Fatalf("unexpected history row: %s %s", username, historyType)
			}
			historyContent = content
			return nil
		},
	})

	body := []byte(`{"name":"Binh","code":"NV02"}`)
	identity := auth.Identity{AccountID: "acc-1", Username: "admin", Role: models.RoleAdmin}
	rr := serveAuthed(t, http.HandlerFunc(handler.CreatePerson), http.MethodPost, "/persons", bytes.NewReader(body), identity)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	if created != 1 {
		t.Fatalf("expected 1 insert, got %d", created)
	}
	if !strings.Contains(historyContent, "Binh") || !strings.Contains(historyContent, "NV02") {
		t.Fatalf("history content missing details: %s", historyContent)
	}
}

func TestCreatePersonDuplicateCode(t *testing.T) {
	created := 0
	handler := newTestHandler(fakeTxRunner{}, stubPersonStore{
		getByCodeFn: func(_ context.Context, code string) (models.Person, error) {
			return models.Person{ID: "p-1", Name: "An", Code: code}, nil
		},
		createFn: func(context.Context, store.Execer, string, string, string) error {
			created++
			return nil
		},
	}, stubTransactionStore{}, stubAccountStore{}, stubActionStore{}, stubSessionStore{}, stubDiaryStore{}, stubHistoryStore{})

	body := []byte(`{"name":"Binh","code":"NV01"}`)
	req := httptest.NewRequest(http.MethodPost, "/persons", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	handler.CreatePerson(rr, req)
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "NV01") {
		t.Fatalf("expected error to name the code: %s", rr.Body.String())
	}
	if created != 0 {
		t.Fatalf("expected no insert, got %d", created)
	}
}

func TestUpdatePersonSyncsAccountName(t *testing.T) {
	synced := 0
	handler := newTestHandler(fakeTxRunner{}, stubPersonStore{
		getByIDFn: func(_ context.Context, id string) (models.Person, error) {
			return models.Person{ID: id, Name: "An", Code: "NV01"}, nil
		},
		getByCodeFn: func(context.Context, string) (models.Person, error) {
			return models.Person{}, sql.ErrNoRows
		},
	}, stubTransactionStore{}, stubAccountStore{
		syncPersonNameFn: func(_ context.Context, _ store.Execer, codePerson, name string) error {
			if codePerson != "NV01" || name != "An Nguyen" {
				t.Fatalf("unexpected sync args: %s %s", codePerson, name)
			}
			synced++
			return nil
		},
	}, stubActionStore{}, stubSessionStore{}, stubDiaryStore{}, stubHistoryStore{})

	body := []byte(`{"name":"An Nguyen","code":"NV01"}`)
	req := withURLParam(httptest.NewRequest(http.MethodPut, "/persons/p-1", bytes.NewReader(body)), "id", "p-1")
	rr := httptest.NewRecorder()
	handler.UpdatePerson(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if synced != 1 {
		t.Fatalf("expected 1 account sync, got %d", synced)
	}
}

func TestUpdatePersonUnchangedNameSkipsSync(t *testing.T) {
	handler := newTestHandler(fakeTxRunner{}, stubPersonStore{
		getByIDFn: func(_ context.Context, id string) (models.Person, error) {
			return models.Person{ID: id, Name: "An", Code: "NV01"}, nil
		},
		getByCodeFn: func(context.Context, string) (models.Person, error) {
			return models.Person{}, sql.ErrNoRows
		},
	}, stubTransactionStore{}, stubAccountStore{
		syncPersonNameFn: func(context.Context, store.Execer, string, string) error {
			t.Fatalf("sync should not run for an unchanged name")
			return nil
		},
	}, stubActionStore{}, stubSessionStore{}, stubDiaryStore{}, stubHistoryStore{})

	body := []byte(`{"name":"An","code":"NV01"}`)
	req := withURLParam(httptest.NewRequest(http.MethodPut, "/persons/p-1", bytes.NewReader(body)), "id", "p-1")
	rr := httptest.NewRecorder()
	handler.UpdatePerson(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestPersonDeletable(t *testing.T) {
	cases := []struct {
		name      string
		accountErr error
		deletable bool
	}{
		{"referenced", nil, false},
		{"unreferenced", sql.ErrNoRows, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := newTestHandler(fakeTxRunner{}, stubPersonStore{
				getByIDFn: func(_ context.Context, id string) (models.Person, error) {
					return models.Person{ID: id, Name: "An", Code: "NV01"}, nil
				},
			}, stubTransactionStore{}, stubAccountStore{
				getByCodeFn: func(_ context.Context, codePerson string) (models.Account, error) {
					if tc.accountErr != nil {
						return models.Account{}, tc.accountErr
					}
					return models.Account{ID: "acc-1", CodePerson: codePerson}, nil
				},
			}, stubActionStore{}, stubSessionStore{}, stubDiaryStore{}, stubHistoryStore{})

			req := withURLParam(httptest.NewRequest(http.MethodGet, "/persons/p-1/deletable", nil), "id", "p-1")
			rr := httptest.NewRecorder()
			handler.PersonDeletable(rr, req)
			if rr.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rr.Code)
			}
			var payload map[string]bool
			if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if payload["deletable"] != tc.deletable {
				t.Fatalf("expected deletable=%v, got %v", tc.deletable, payload["deletable"])
			}
		})
	}
}

func TestDeletePersonNotFound(t *testing.T) {
	handler := newTestHandler(fakeTxRunner{}, stubPersonStore{
		getByIDFn: func(context.Context, string) (models.Person, error) {
			return models.Person{}, sql.ErrNoRows
		},
	}, stubTransactionStore{}, stubAccountStore{}, stubActionStore{}, stubSessionStore{}, stubDiaryStore{}, stubHistoryStore{})

	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/persons/missing", nil), "id", "missing")
	rr := httptest.NewRecorder()
	handler.DeletePerson(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}
