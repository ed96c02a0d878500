package store

import (
	"context"

	"roomfund/internal/models"
)

type PersonStore struct {
	db DB
}

func NewPersonStore(db DB) *PersonStore {
	return &PersonStore{db: db}
}

func (s *PersonStore) Create(ctx context.Context, tx Execer, id, name, code string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO persons (id, name, code)
		VALUES ($1, $2, $3)
	`, id, name, code)
	return err
}

func (s *PersonStore) GetAll(ctx context.Context) ([]models.Person, error) {
	var rows []models.Person
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, name, code, created_at
		FROM persons
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *PersonStore) GetByID(ctx context.Context, id string) (models.Person, error) {
	var row models.Person
	err := s.db.GetContext(ctx, &row, `
		SELECT id, name, code, created_at
		FROM persons
		WHERE id = $1
	`, id)
	if err != nil {
		return models.Person{}, err
	}
	return row, nil
}

func (s *PersonStore) GetByCode(ctx context.Context, code string) (models.Person, error) {
	var row models.Person
	err := s.db.GetContext(ctx, &row, `
		SELECT id, name, code, created_at
		FROM persons
		WHERE code = $1
	`, code)
	if err != nil {
		return models.Person{}, err
	}
	return row, nil
}

func (s *PersonStore) Update(ctx context.Context, tx Execer, id, name, code string) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE persons
		SET name = $1, code = $2
		WHERE id = $3
	`, name, code, id)
	return err
}

// Delete performs no cascade: transactions keep their person_id and
// person_name snapshot, accounts keep their code_person reference.
func (s *PersonStore) Delete(ctx context.Context, tx Execer, id string) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM persons WHERE id = $1`, id)
	return err
}
