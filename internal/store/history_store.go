package store

import (
	"context"

	"roomfund/internal/models"
)

// HistoryStore is append-only: rows are written as a side effect of other
// mutations (in the same transaction) and are never updated or deleted.
type HistoryStore struct {
	db DB
}

func NewHistoryStore(db DB) *HistoryStore {
	return &HistoryStore{db: db}
}

func (s *HistoryStore) Add(ctx context.Context, tx Execer, id, username, historyType, content string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO history (id, username, type, content)
		VALUES ($1, $2, $3, $4)
	`, id, username, historyType, content)
	return err
}

func (s *HistoryStore) GetAll(ctx context.Context, limit, offset int) ([]models.History, error) {
	var rows []models.History
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, username, type, content, updated_at
		FROM history
		ORDER BY updated_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *HistoryStore) GetByUsername(ctx context.Context, username string, limit, offset int) ([]models.History, error) {
	var rows []models.History
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, username, type, content, updated_at
		FROM history
		WHERE username = $1
		ORDER BY updated_at DESC
		LIMIT $2 OFFSET $3
	`, username, limit, offset)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *HistoryStore) GetByType(ctx context.Context, historyType string, limit, offset int) ([]models.History, error) {
	var rows []models.History
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, username, type, content, updated_at
		FROM history
		WHERE type = $1
		ORDER BY updated_at DESC
		LIMIT $2 OFFSET $3
	`, historyType, limit, offset)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
