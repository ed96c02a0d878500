package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"roomfund/internal/auth"
	"roomfund/internal/config"
	"roomfund/internal/middleware"
	"roomfund/internal/models"
	"roomfund/internal/store"
	"roomfund/internal/websocket"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
)

type fakeTxRunner struct {
	withTxFn func(ctx context.Context, fn func(*sqlx.Tx) error) error
}

func (f fakeTxRunner) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	if f.withTxFn != nil {
		return f.withTxFn(ctx, fn)
	}
	return fn(nil)
}

type stubPersonStore struct {
	createFn    func(ctx context.Context, tx store.Execer, id, name, code string) error
	getAllFn    func(ctx context.Context) ([]models.Person, error)
	getByIDFn   func(ctx context.Context, id string) (models.Person, error)
	getByCodeFn func(ctx context.Context, code string) (models.Person, error)
	updateFn    func(ctx context.Context, tx store.Execer, id, name, code string) error
	deleteFn    func(ctx context.Context, tx store.Execer, id string) error
}

func (s stubPersonStore) Create(ctx context.Context, tx store.Execer, id, name, code string) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, id, name, code)
}

func (s stubPersonStore) GetAll(ctx context.Context) ([]models.Person, error) {
	if s.getAllFn == nil {
		return nil, nil
	}
	return s.getAllFn(ctx)
}

func (s stubPersonStore) GetByID(ctx context.Context, id string) (models.Person, error) {
	if s.getByIDFn == nil {
		return models.Person{}, nil
	}
	return s.getByIDFn(ctx, id)
}

func (s stubPersonStore) GetByCode(ctx context.Context, code string) (models.Person, error) {
	if s.getByCodeFn == nil {
		return models.Person{}, nil
	}
	return s.getByCodeFn(ctx, code)
}

func (s stubPersonStore) Update(ctx context.Context, tx store.Execer, id, name, code string) error {
	if s.updateFn == nil {
		return nil
	}
	return s.updateFn(ctx, tx, id, name, code)
}

func (s stubPersonStore) Delete(ctx context.Context, tx store.Execer, id string) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, tx, id)
}

type stubTransactionStore struct {
	createFn      func(ctx context.Context, tx store.Execer, input store.TransactionInput) error
	getAllFn      func(ctx context.Context) ([]models.Transaction, error)
	getByPersonFn func(ctx context.Context, personID string) ([]models.Transaction, error)
	getByIDFn     func(ctx context.Context, id string) (models.Transaction, error)
	updateFn      func(ctx context.Context, tx store.Execer, id string, input store.TransactionInput) error
	deleteFn      func(ctx context.Context, tx store.Execer, id string) error
}

func (s stubTransactionStore) Create(ctx context.Context, tx store.Execer, input store.TransactionInput) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, input)
}

func (s stubTransactionStore) GetAll(ctx context.Context) ([]models.Transaction, error) {
	if s.getAllFn == nil {
		return nil, nil
	}
	return s.getAllFn(ctx)
}

func (s stubTransactionStore) GetByPerson(ctx context.Context, personID string) ([]models.Transaction, error) {
	if s.getByPersonFn == nil {
		return nil, nil
	}
	return s.getByPersonFn(ctx, personID)
}

func (s stubTransactionStore) GetByID(ctx context.Context, id string) (models.Transaction, error) {
	if s.getByIDFn == nil {
		return models.Transaction{}, nil
	}
	return s.getByIDFn(ctx, id)
}

func (s stubTransactionStore) Update(ctx context.Context, tx store.Execer, id string, input store.TransactionInput) error {
	if s.updateFn == nil {
		return nil
	}
	return s.updateFn(ctx, tx, id, input)
}

func (s stubTransactionStore) Delete(ctx context.Context, tx store.Execer, id string) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, tx, id)
}

type stubAccountStore struct {
	createFn         func(ctx context.Context, tx store.Execer, input store.AccountInput) error
	getAllFn         func(ctx context.Context) ([]models.Account, error)
	getByIDFn        func(ctx context.Context, id string) (models.Account, error)
	getByUsernameFn  func(ctx context.Context, username string) (models.Account, error)
	getByCodeFn      func(ctx context.Context, codePerson string) (models.Account, error)
	getByRoleFn      func(ctx context.Context, role string) ([]models.Account, error)
	usernameTakenFn  func(ctx context.Context, username, excludeID string) (bool, error)
	updateFn         func(ctx context.Context, tx store.Execer, id string, input store.AccountInput) error
	updatePasswordFn func(ctx context.Context, tx store.Execer, id, passwordHash string) error
	updateRoleFn     func(ctx context.Context, tx store.Execer, id, role string) error
	syncPersonNameFn func(ctx context.Context, tx store.Execer, codePerson, name string) error
	deleteFn         func(ctx context.Context, tx store.Execer, id string) error
}

func (s stubAccountStore) Create(ctx context.Context, tx store.Execer, input store.AccountInput) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, input)
}

func (s stubAccountStore) GetAll(ctx context.Context) ([]models.Account, error) {
	if s.getAllFn == nil {
		return nil, nil
	}
	return s.getAllFn(ctx)
}

func (s stubAccountStore) GetByID(ctx context.Context, id string) (models.Account, error) {
	if s.getByIDFn == nil {
		return models.Account{}, nil
	}
	return s.getByIDFn(ctx, id)
}

func (s stubAccountStore) GetByUsername(ctx context.Context, username string) (models.Account, error) {
	if s.getByUsernameFn == nil {
		return models.Account{}, nil
	}
	return s.getByUsernameFn(ctx, username)
}

func (s stubAccountStore) GetByCodePerson(ctx context.Context, codePerson string) (models.Account, error) {
	if s.getByCodeFn == nil {
		return models.Account{}, nil
	}
	return s.getByCodeFn(ctx, codePerson)
}

func (s stubAccountStore) GetByRole(ctx context.Context, role string) ([]models.Account, error) {
	if s.getByRoleFn == nil {
		return nil, nil
	}
	return s.getByRoleFn(ctx, role)
}

func (s stubAccountStore) UsernameTaken(ctx context.Context, username, excludeID string) (bool, error) {
	if s.usernameTakenFn == nil {
		return false, nil
	}
	return s.usernameTakenFn(ctx, username, excludeID)
}

func (s stubAccountStore) Update(ctx context.Context, tx store.Execer, id string, input store.AccountInput) error {
	if s.updateFn == nil {
		return nil
	}
	return s.updateFn(ctx, tx, id, input)
}

func (s stubAccountStore) UpdatePassword(ctx context.Context, tx store.Execer, id, passwordHash string) error {
	if s.updatePasswordFn == nil {
		return nil
	}
	return s.updatePasswordFn(ctx, tx, id, passwordHash)
}

func (s stubAccountStore) UpdateRole(ctx context.Context, tx store.Execer, id, role string) error {
	if s.updateRoleFn == nil {
		return nil
	}
	return s.updateRoleFn(ctx, tx, id, role)
}

func (s stubAccountStore) SyncPersonName(ctx context.Context, tx store.Execer, codePerson, name string) error {
	if s.syncPersonNameFn == nil {
		return nil
	}
	return s.syncPersonNameFn(ctx, tx, codePerson, name)
}

func (s stubAccountStore) Delete(ctx context.Context, tx store.Execer, id string) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, tx, id)
}

type stubActionStore struct {
	createFn    func(ctx context.Context, tx store.Execer, id, name string) error
	getAllFn    func(ctx context.Context) ([]models.Action, error)
	getByIDFn   func(ctx context.Context, id string) (models.Action, error)
	getByNameFn func(ctx context.Context, name string) (models.Action, error)
	nameTakenFn func(ctx context.Context, name, excludeID string) (bool, error)
	updateFn    func(ctx context.Context, tx store.Execer, id, name string) error
	deleteFn    func(ctx context.Context, tx store.Execer, id string) error
}

func (s stubActionStore) Create(ctx context.Context, tx store.Execer, id, name string) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, id, name)
}

func (s stubActionStore) GetAll(ctx context.Context) ([]models.Action, error) {
	if s.getAllFn == nil {
		return nil, nil
	}
	return s.getAllFn(ctx)
}

func (s stubActionStore) GetByID(ctx context.Context, id string) (models.Action, error) {
	if s.getByIDFn == nil {
		return models.Action{}, nil
	}
	return s.getByIDFn(ctx, id)
}

func (s stubActionStore) GetByName(ctx context.Context, name string) (models.Action, error) {
	if s.getByNameFn == nil {
		return models.Action{}, nil
	}
	return s.getByNameFn(ctx, name)
}

func (s stubActionStore) NameTaken(ctx context.Context, name, excludeID string) (bool, error) {
	if s.nameTakenFn == nil {
		return false, nil
	}
	return s.nameTakenFn(ctx, name, excludeID)
}

func (s stubActionStore) Update(ctx context.Context, tx store.Execer, id, name string) error {
	if s.updateFn == nil {
		return nil
	}
	return s.updateFn(ctx, tx, id, name)
}

func (s stubActionStore) Delete(ctx context.Context, tx store.Execer, id string) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, tx, id)
}

type stubSessionStore struct {
	createFn      func(ctx context.Context, tx store.Execer, id string, number int, actionID string) error
	getAllFn      func(ctx context.Context) ([]models.Session, error)
	getByIDFn     func(ctx context.Context, id string) (models.Session, error)
	numberTakenFn func(ctx context.Context, number int, excludeID string) (bool, error)
	nextNumberFn  func(ctx context.Context, q store.Getter) (int, error)
	updateFn      func(ctx context.Context, tx store.Execer, id string, number int, actionID string) error
	deleteFn      func(ctx context.Context, tx store.Execer, id string) error
}

func (s stubSessionStore) Create(ctx context.Context, tx store.Execer, id string, number int, actionID string) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, id, number, actionID)
}

func (s stubSessionStore) GetAll(ctx context.Context) ([]models.Session, error) {
	if s.getAllFn == nil {
		return nil, nil
	}
	return s.getAllFn(ctx)
}

func (s stubSessionStore) GetByID(ctx context.Context, id string) (models.Session, error) {
	if s.getByIDFn == nil {
		return models.Session{}, nil
	}
	return s.getByIDFn(ctx, id)
}

func (s stubSessionStore) NumberTaken(ctx context.Context, number int, excludeID string) (bool, error) {
	if s.numberTakenFn == nil {
		return false, nil
	}
	return s.numberTakenFn(ctx, number, excludeID)
}

func (s stubSessionStore) NextNumber(ctx context.Context, q store.Getter) (int, error) {
	if s.nextNumberFn == nil {
		return 1, nil
	}
	return s.nextNumberFn(ctx, q)
}

func (s stubSessionStore) Update(ctx context.Context, tx store.Execer, id string, number int, actionID string) error {
	if s.updateFn == nil {
		return nil
	}
	return s.updateFn(ctx, tx, id, number, actionID)
}

func (s stubSessionStore) Delete(ctx context.Context, tx store.Execer, id string) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, tx, id)
}

type stubDiaryStore struct {
	createFn         func(ctx context.Context, tx store.Execer, d models.Diary) error
	getAllFn         func(ctx context.Context) ([]models.Diary, error)
	getByIDFn        func(ctx context.Context, id string) (models.Diary, error)
	getByUsernameFn  func(ctx context.Context, username string) ([]models.Diary, error)
	getByDateRangeFn func(ctx context.Context, start, end time.Time, username string) ([]models.Diary, error)
	existsFn         func(ctx context.Context, date time.Time, username, excludeID string) (bool, error)
	updateFn         func(ctx context.Context, tx store.Execer, d models.Diary) error
	deleteFn         func(ctx context.Context, tx store.Execer, id string) error
}

func (s stubDiaryStore) Create(ctx context.Context, tx store.Execer, d models.Diary) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, d)
}

func (s stubDiaryStore) GetAll(ctx context.Context) ([]models.Diary, error) {
	if s.getAllFn == nil {
		return nil, nil
	}
	return s.getAllFn(ctx)
}

func (s stubDiaryStore) GetByID(ctx context.Context, id string) (models.Diary, error) {
	if s.getByIDFn == nil {
		return models.Diary{}, nil
	}
	return s.getByIDFn(ctx, id)
}

func (s stubDiaryStore) GetByUsername(ctx context.Context, username string) ([]models.Diary, error) {
	if s.getByUsernameFn == nil {
		return nil, nil
	}
	return s.getByUsernameFn(ctx, username)
}

func (s stubDiaryStore) GetByDateRange(ctx context.Context, start, end time.Time, username string) ([]models.Diary, error) {
	if s.getByDateRangeFn == nil {
		return nil, nil
	}
	return s.getByDateRangeFn(ctx, start, end, username)
}

func (s stubDiaryStore) Exists(ctx context.Context, date time.Time, username, excludeID string) (bool, error) {
	if s.existsFn == nil {
		return false, nil
	}
	return s.existsFn(ctx, date, username, excludeID)
}

func (s stubDiaryStore) Update(ctx context.Context, tx store.Execer, d models.Diary) error {
	if s.updateFn == nil {
		return nil
	}
	return s.updateFn(ctx, tx, d)
}

func (s stubDiaryStore) Delete(ctx context.Context, tx store.Execer, id string) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, tx, id)
}

type stubHistoryStore struct {
	addFn           func(ctx context.Context, tx store.Execer, id, username, historyType, content string) error
	getAllFn        func(ctx context.Context, limit, offset int) ([]models.History, error)
	getByUsernameFn func(ctx context.Context, username string, limit, offset int) ([]models.History, error)
	getByTypeFn     func(ctx context.Context, historyType string, limit, offset int) ([]models.History, error)
}

func (s stubHistoryStore) Add(ctx context.Context, tx store.Execer, id, username, historyType, content string) error {
	if s.addFn == nil {
		return nil
	}
	return s.addFn(ctx, tx, id, username, historyType, content)
}

func (s stubHistoryStore) GetAll(ctx context.Context, limit, offset int) ([]models.History, error) {
	if s.getAllFn == nil {
		return nil, nil
	}
	return s.getAllFn(ctx, limit, offset)
}

func (s stubHistoryStore) GetByUsername(ctx context.Context, username string, limit, offset int) ([]models.History, error) {
	if s.getByUsernameFn == nil {
		return nil, nil
	}
	return s.getByUsernameFn(ctx, username, limit, offset)
}

func (s stubHistoryStore) GetByType(ctx context.Context, historyType string, limit, offset int) ([]models.History, error) {
	if s.getByTypeFn == nil {
		return nil, nil
	}
	return s.getByTypeFn(ctx, historyType, limit, offset)
}

func newTestHandler(txRunner fakeTxRunner, persons PersonStore, transactions TransactionStore, accounts AccountStore, actions ActionStore, sessions SessionStore, diaries DiaryStore, history HistoryStore) *Handler {
	cfg := config.Config{
		AppEnv:         "test",
		Port:           "0",
		JWTSecret:      "secret",
		TokenTTL:       time.Minute,
		AllowedOrigins: "*",
		LoginRateLimit: 100,
	}
	return New(txRunner, cfg, persons, transactions, accounts, actions, sessions, diaries, history, websocket.NewHub())
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func serveAuthed(t *testing.T, handler http.Handler, method, target string, body io.Reader, identity auth.Identity) *httptest.ResponseRecorder {
	t.Helper()
	token, err := auth.GenerateToken("secret", identity, time.Minute)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Authorization", "Bearer "+token)
	middleware.Auth("secret")(handler).ServeHTTP(rr, req)
	return rr
}
