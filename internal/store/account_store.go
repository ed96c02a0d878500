package store

import (
	"context"

	"roomfund/internal/models"
)

type AccountStore struct {
	db DB
}

func NewAccountStore(db DB) *AccountStore {
	return &AccountStore{db: db}
}

type AccountInput struct {
	ID           string
	Username     string
	PasswordHash string
	Role         string
	CodePerson   string
	PersonName   string
}

func (s *AccountStore) Create(ctx context.Context, tx Execer, input AccountInput) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO accounts (id, username, password_hash, role, code_person, person_name)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, input.ID, input.Username, input.PasswordHash, input.Role, input.CodePerson, input.PersonName)
	return err
}

func (s *AccountStore) GetAll(ctx context.Context) ([]models.Account, error) {
	var rows []models.Account
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, username, password_hash, role, code_person, person_name, created_at
		FROM accounts
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *AccountStore) GetByID(ctx context.Context, id string) (models.Account, error) {
	var row models.Account
	err := s.db.GetContext(ctx, &row, `
		SELECT id, username, password_hash, role, code_person, person_name, created_at
		FROM accounts
		WHERE id = $1
	`, id)
	if err != nil {
		return models.Account{}, err
	}
	return row, nil
}

func (s *AccountStore) GetByUsername(ctx context.Context, username string) (models.Account, error) {
	var row models.Account
	err := s.db.GetContext(ctx, &row, `
		SELECT id, username, password_hash, role, code_person, person_name, created_at
		FROM accounts
		WHERE username = $1
	`, username)
	if err != nil {
		return models.Account{}, err
	}
	return row, nil
}

func (s *AccountStore) GetByCodePerson(ctx context.Context, codePerson string) (models.Account, error) {
	var row models.Account
	err := s.db.GetContext(ctx, &row, `
		SELECT id, username, password_hash, role, code_person, person_name, created_at
		FROM accounts
		WHERE code_person = $1
	`, codePerson)
	if err != nil {
		return models.Account{}, err
	}
	return row, nil
}

func (s *AccountStore) GetByRole(ctx context.Context, role string) ([]models.Account, error) {
	var rows []models.Account
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, username, password_hash, role, code_person, person_name, created_at
		FROM accounts
		WHERE role = $1
		ORDER BY created_at DESC
	`, role)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// UsernameTaken checks uniqueness before an insert or update; excludeID
// skips the row being updated. The unique index on username is the backstop
// for concurrent creators that both pass this check.
func (s *AccountStore) UsernameTaken(ctx context.Context, username, excludeID string) (bool, error) {
	var count int
	err := s.db.GetContext(ctx, &count, `
		SELECT COUNT(1)
		FROM accounts
		WHERE username = $1 AND id::text <> $2
	`, username, excludeID)
	return count > 0, err
}

func (s *AccountStore) Update(ctx context.Context, tx Execer, id string, input AccountInput) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE accounts
		SET username = $1, role = $2, code_person = $3, person_name = $4
		WHERE id = $5
	`, input.Username, input.Role, input.CodePerson, input.PersonName, id)
	return err
}

func (s *AccountStore) UpdatePassword(ctx context.Context, tx Execer, id, passwordHash string) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE accounts
		SET password_hash = $1
		WHERE id = $2
	`, passwordHash, id)
	return err
}

func (s *AccountStore) UpdateRole(ctx context.Context, tx Execer, id, role string) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE accounts
		SET role = $1
		WHERE id = $2
	`, role, id)
	return err
}

// SyncPersonName refreshes the denormalized person name on every account
// referencing the code. Called when a person is renamed; transaction
// snapshots are deliberately left frozen.
func (s *AccountStore) SyncPersonName(ctx context.Context, tx Execer, codePerson, name string) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE accounts
		SET person_name = $1
		WHERE code_person = $2
	`, name, codePerson)
	return err
}

func (s *AccountStore) Delete(ctx context.Context, tx Execer, id string) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	return err
}
