package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roomfund/internal/auth"
	"roomfund/internal/config"
	"roomfund/internal/db"
	"roomfund/internal/handlers"
	"roomfund/internal/models"
	"roomfund/internal/store"
	"roomfund/internal/websocket"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

func main() {
	cfg := config.Load()
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer database.Close()

	persons := store.NewPersonStore(database)
	transactions := store.NewTransactionStore(database)
	accounts := store.NewAccountStore(database)
	actions := store.NewActionStore(database)
	sessions := store.NewSessionStore(database)
	diaries := store.NewDiaryStore(database)
	history := store.NewHistoryStore(database)
	txRunner := db.NewTxRunner(database)
	hub := websocket.NewHub()

	if err := bootstrapAdmin(context.Background(), cfg, txRunner, accounts); err != nil {
		log.Fatalf("failed to bootstrap admin account: %v", err)
	}

	handler := handlers.New(txRunner, cfg, persons, transactions, accounts, actions, sessions, diaries, history, hub)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("roomfund API listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	<-shutdown

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}

// bootstrapAdmin creates the configured admin account on first start so the
// API is reachable before any accounts exist.
func bootstrapAdmin(ctx context.Context, cfg config.Config, txRunner db.TxRunner, accounts *store.AccountStore) error {
	_, err := accounts.GetByUsername(ctx, cfg.AdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	passwordHash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}
	return txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		input := store.AccountInput{
			ID:           uuid.NewString(),
			Username:     cfg.AdminUsername,
			PasswordHash: passwordHash,
			Role:         models.RoleAdmin,
		}
		return accounts.Create(ctx, tx, input)
	})
}
