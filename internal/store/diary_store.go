package store

import (
	"context"
	"time"

	"roomfund/internal/models"
)

type DiaryStore struct {
	db DB
}

func NewDiaryStore(db DB) *DiaryStore {
	return &DiaryStore{db: db}
}

func (s *DiaryStore) Create(ctx context.Context, tx Execer, d models.Diary) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO diaries (id, date, morning_session_id, afternoon_session_id, username)
		VALUES ($1, $2, $3, $4, $5)
	`, d.ID, d.Date, d.MorningSessionID, d.AfternoonSessionID, d.Username)
	return err
}

func (s *DiaryStore) GetAll(ctx context.Context) ([]models.Diary, error) {
	var rows []models.Diary
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, date, morning_session_id, afternoon_session_id, username
		FROM diaries
		ORDER BY date DESC
	`)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *DiaryStore) GetByID(ctx context.Context, id string) (models.Diary, error) {
	var row models.Diary
	err := s.db.GetContext(ctx, &row, `
		SELECT id, date, morning_session_id, afternoon_session_id, username
		FROM diaries
		WHERE id = $1
	`, id)
	if err != nil {
		return models.Diary{}, err
	}
	return row, nil
}

func (s *DiaryStore) GetByUsername(ctx context.Context, username string) ([]models.Diary, error) {
	var rows []models.Diary
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, date, morning_session_id, afternoon_session_id, username
		FROM diaries
		WHERE username = $1
		ORDER BY date DESC
	`, username)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetByDateRange returns diaries within [start, end]; an empty username
// matches every user.
func (s *DiaryStore) GetByDateRange(ctx context.Context, start, end time.Time, username string) ([]models.Diary, error) {
	var rows []models.Diary
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, date, morning_session_id, afternoon_session_id, username
		FROM diaries
		WHERE ($1 = '' OR username = $1) AND date >= $2 AND date <= $3
		ORDER BY date DESC
	`, username, start, end)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Exists checks the one-diary-per-day-per-user rule; excludeID skips the row
// being updated.
func (s *DiaryStore) Exists(ctx context.Context, date time.Time, username, excludeID string) (bool, error) {
	var count int
	err := s.db.GetContext(ctx, &count, `
		SELECT COUNT(1)
		FROM diaries
		WHERE date = $1 AND username = $2 AND id::text <> $3
	`, date, username, excludeID)
	return count > 0, err
}

func (s *DiaryStore) Update(ctx context.Context, tx Execer, d models.Diary) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE diaries
		SET date = $1, morning_session_id = $2, afternoon_session_id = $3, username = $4
		WHERE id = $5
	`, d.Date, d.MorningSessionID, d.AfternoonSessionID, d.Username, d.ID)
	return err
}

func (s *DiaryStore) Delete(ctx context.Context, tx Execer, id string) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM diaries WHERE id = $1`, id)
	return err
}
