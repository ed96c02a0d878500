package handlers

import (
	"net/http"
	"time"

	"roomfund/internal/config"
	"roomfund/internal/db"
	"roomfund/internal/middleware"
	"roomfund/internal/websocket"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

type Handler struct {
	txRunner     db.TxRunner
	cfg          config.Config
	persons      PersonStore
	transactions TransactionStore
	accounts     AccountStore
	actions      ActionStore
	sessions     SessionStore
	diaries      DiaryStore
	history      HistoryStore
	hub          *websocket.Hub
}

func New(txRunner db.TxRunner, cfg config.Config, persons PersonStore, transactions TransactionStore, accounts AccountStore, actions ActionStore, sessions SessionStore, diaries DiaryStore, history HistoryStore, hub *websocket.Hub) *Handler {
	return &Handler{
		txRunner:     txRunner,
		cfg:          cfg,
		persons:      persons,
		transactions: transactions,
		accounts:     accounts,
		actions:      actions,
		sessions:     sessions,
		diaries:      diaries,
		history:      history,
		hub:          hub,
	}
}

func (h *Handler) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{h.cfg.AllowedOrigins},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Route("/auth", func(r chi.Router) {
		r.With(httprate.Limit(h.cfg.LoginRateLimit, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP))).Post("/login", h.Login)
		r.With(middleware.Auth(h.cfg.JWTSecret)).Get("/me", h.Me)
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.Auth(h.cfg.JWTSecret))

		r.Route("/persons", func(r chi.Router) {
			r.Get("/", h.ListPersons)
			r.Post("/", h.CreatePerson)
			r.Get("/{id}", h.GetPerson)
			r.Get("/{id}/deletable", h.PersonDeletable)
			r.Put("/{id}", h.UpdatePerson)
			r.Delete("/{id}", h.DeletePerson)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", h.ListTransactions)
			r.Post("/", h.CreateTransaction)
			r.Get("/{id}", h.GetTransaction)
			r.Put("/{id}", h.UpdateTransaction)
			r.Delete("/{id}", h.DeleteTransaction)
		})

		r.Route("/actions", func(r chi.Router) {
			r.Get("/", h.ListActions)
			r.Post("/", h.CreateAction)
			r.Get("/{id}", h.GetAction)
			r.Put("/{id}", h.UpdateAction)
			r.Delete("/{id}", h.DeleteAction)
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", h.ListSessions)
			r.Get("/{id}", h.GetSession)
		})

		r.Route("/diaries", func(r chi.Router) {
			r.Get("/", h.ListDiaries)
			r.Post("/", h.CreateDiary)
			r.Get("/{id}", h.GetDiary)
			r.Put("/{id}", h.UpdateDiary)
			r.Delete("/{id}", h.DeleteDiary)
		})

		r.Get("/fund", h.Dashboard)

		r.Route("/accounts", func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Get("/", h.ListAccounts)
			r.Post("/", h.CreateAccount)
			r.Get("/{id}", h.GetAccount)
			r.Get("/username/{username}", h.GetAccountByUsername)
			r.Put("/{id}", h.UpdateAccount)
			r.Put("/{id}/password", h.ChangePassword)
			r.Put("/{id}/role", h.UpdateAccountRole)
			r.Delete("/{id}", h.DeleteAccount)
		})

		r.With(middleware.RequireAdmin).Get("/history", h.ListHistory)
	})

	// Browser websocket clients cannot set headers, so WSFund checks the
	// token itself, accepting it from the query string as well.
	router.Get("/ws/fund", h.WSFund)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return router
}
