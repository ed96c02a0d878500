package store

import (
	"context"

	"roomfund/internal/models"
)

type TransactionStore struct {
	db DB
}

func NewTransactionStore(db DB) *TransactionStore {
	return &TransactionStore{db: db}
}

type TransactionInput struct {
	ID          string
	Date        string
	DayOfWeek   string
	Amount      int64
	Type        string
	Description string
	PersonID    string
	PersonName  string
	Status      string
}

func (s *TransactionStore) Create(ctx context.Context, tx Execer, input TransactionInput) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO transactions (id, date, day_of_week, amount, type, description, person_id, person_name, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, input.ID, input.Date, input.DayOfWeek, input.Amount, input.Type,
		input.Description, input.PersonID, input.PersonName, input.Status)
	return err
}

func (s *TransactionStore) GetAll(ctx context.Context) ([]models.Transaction, error) {
	var rows []models.Transaction
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, date, day_of_week, amount, type, description, person_id, person_name, status, created_at
		FROM transactions
		ORDER BY date DESC, created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *TransactionStore) GetByPerson(ctx context.Context, personID string) ([]models.Transaction, error) {
	var rows []models.Transaction
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, date, day_of_week, amount, type, description, person_id, person_name, status, created_at
		FROM transactions
		WHERE person_id = $1
		ORDER BY date DESC, created_at DESC
	`, personID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *TransactionStore) GetByID(ctx context.Context, id string) (models.Transaction, error) {
	var row models.Transaction
	err := s.db.GetContext(ctx, &row, `
		SELECT id, date, day_of_week, amount, type, description, person_id, person_name, status, created_at
		FROM transactions
		WHERE id = $1
	`, id)
	if err != nil {
		return models.Transaction{}, err
	}
	return row, nil
}

func (s *TransactionStore) Update(ctx context.Context, tx Execer, id string, input TransactionInput) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE transactions
		SET date = $1, day_of_week = $2, amount = $3, type = $4, description = $5,
		    person_id = $6, person_name = $7, status = $8
		WHERE id = $9
	`, input.Date, input.DayOfWeek, input.Amount, input.Type, input.Description,
		input.PersonID, input.PersonName, input.Status, id)
	return err
}

func (s *TransactionStore) Delete(ctx context.Context, tx Execer, id string) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	return err
}
