package store

import (
	"context"

	"roomfund/internal/models"
)

type SessionStore struct {
	db DB
}

func NewSessionStore(db DB) *SessionStore {
	return &SessionStore{db: db}
}

func (s *SessionStore) Create(ctx context.Context, tx Execer, id string, number int, actionID string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO sessions (id, number, action_id)
		VALUES ($1, $2, $3)
	`, id, number, actionID)
	return err
}

func (s *SessionStore) GetAll(ctx context.Context) ([]models.Session, error) {
	var rows []models.Session
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, number, action_id
		FROM sessions
		ORDER BY number ASC
	`)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *SessionStore) GetByID(ctx context.Context, id string) (models.Session, error) {
	var row models.Session
	err := s.db.GetContext(ctx, &row, `
		SELECT id, number, action_id
		FROM sessions
		WHERE id = $1
	`, id)
	if err != nil {
		return models.Session{}, err
	}
	return row, nil
}

func (s *SessionStore) NumberTaken(ctx context.Context, number int, excludeID string) (bool, error) {
	var count int
	err := s.db.GetContext(ctx, &count, `
		SELECT COUNT(1)
		FROM sessions
		WHERE number = $1 AND id::text <> $2
	`, number, excludeID)
	return count > 0, err
}

// NextNumber allocates the next session slot number within a transaction.
func (s *SessionStore) NextNumber(ctx context.Context, q Getter) (int, error) {
	var next int
	err := q.GetContext(ctx, &next, `
		SELECT COALESCE(MAX(number), 0) + 1
		FROM sessions
	`)
	return next, err
}

func (s *SessionStore) Update(ctx context.Context, tx Execer, id string, number int, actionID string) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE sessions
		SET number = $1, action_id = $2
		WHERE id = $3
	`, number, actionID, id)
	return err
}

func (s *SessionStore) Delete(ctx context.Context, tx Execer, id string) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	return err
}
