package store

import (
	"context"

	"roomfund/internal/models"
)

type ActionStore struct {
	db DB
}

func NewActionStore(db DB) *ActionStore {
	return &ActionStore{db: db}
}

func (s *ActionStore) Create(ctx context.Context, tx Execer, id, name string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO actions (id, name)
		VALUES ($1, $2)
	`, id, name)
	return err
}

func (s *ActionStore) GetAll(ctx context.Context) ([]models.Action, error) {
	var rows []models.Action
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, name
		FROM actions
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *ActionStore) GetByID(ctx context.Context, id string) (models.Action, error) {
	var row models.Action
	err := s.db.GetContext(ctx, &row, `
		SELECT id, name
		FROM actions
		WHERE id = $1
	`, id)
	if err != nil {
		return models.Action{}, err
	}
	return row, nil
}

func (s *ActionStore) GetByName(ctx context.Context, name string) (models.Action, error) {
	var row models.Action
	err := s.db.GetContext(ctx, &row, `
		SELECT id, name
		FROM actions
		WHERE name = $1
	`, name)
	if err != nil {
		return models.Action{}, err
	}
	return row, nil
}

func (s *ActionStore) NameTaken(ctx context.Context, name, excludeID string) (bool, error) {
	var count int
	err := s.db.GetContext(ctx, &count, `
		SELECT COUNT(1)
		FROM actions
		WHERE name = $1 AND id::text <> $2
	`, name, excludeID)
	return count > 0, err
}

func (s *ActionStore) Update(ctx context.Context, tx Execer, id, name string) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE actions
		SET name = $1
		WHERE id = $2
	`, name, id)
	return err
}

func (s *ActionStore) Delete(ctx context.Context, tx Execer, id string) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM actions WHERE id = $1`, id)
	return err
}
