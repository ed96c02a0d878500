package handlers

import (
	"context"
	"time"

	"roomfund/internal/models"
	"roomfund/internal/store"
)

type PersonStore interface {
	Create(ctx context.Context, tx store.Execer, id, name, code string) error
	GetAll(ctx context.Context) ([]models.Person, error)
	GetByID(ctx context.Context, id string) (models.Person, error)
	GetByCode(ctx context.Context, code string) (models.Person, error)
	Update(ctx context.Context, tx store.Execer, id, name, code string) error
	Delete(ctx context.Context, tx store.Execer, id string) error
}

type TransactionStore interface {
	Create(ctx context.Context, tx store.Execer, input store.TransactionInput) error
	GetAll(ctx context.Context) ([]models.Transaction, error)
	GetByPerson(ctx context.Context, personID string) ([]models.Transaction, error)
	GetByID(ctx context.Context, id string) (models.Transaction, error)
	Update(ctx context.Context, tx store.Execer, id string, input store.TransactionInput) error
	Delete(ctx context.Context, tx store.Execer, id string) error
}

type AccountStore interface {
	Create(ctx context.Context, tx store.Execer, input store.AccountInput) error
	GetAll(ctx context.Context) ([]models.Account, error)
	GetByID(ctx context.Context, id string) (models.Account, error)
	GetByUsername(ctx context.Context, username string) (models.Account, error)
	GetByCodePerson(ctx context.Context, codePerson string) (models.Account, error)
	GetByRole(ctx context.Context, role string) ([]models.Account, error)
	UsernameTaken(ctx context.Context, username, excludeID string) (bool, error)
	Update(ctx context.Context, tx store.Execer, id string, input store.AccountInput) error
	UpdatePassword(ctx context.Context, tx store.Execer, id, passwordHash string) error
	UpdateRole(ctx context.Context, tx store.Execer, id, role string) error
	SyncPersonName(ctx context.Context, tx store.Execer, codePerson, name string) error
	Delete(ctx context.Context, tx store.Execer, id string) error
}

type ActionStore interface {
	Create(ctx context.Context, tx store.Execer, id, name string) error
	GetAll(ctx context.Context) ([]models.Action, error)
	GetByID(ctx context.Context, id string) (models.Action, error)
	GetByName(ctx context.Context, name string) (models.Action, error)
	NameTaken(ctx context.Context, name, excludeID string) (bool, error)
	Update(ctx context.Context, tx store.Execer, id, name string) error
	Delete(ctx context.Context, tx store.Execer, id string) error
}

type SessionStore interface {
	Create(ctx context.Context, tx store.Execer, id string, number int, actionID string) error
	GetAll(ctx context.Context) ([]models.Session, error)
	GetByID(ctx context.Context, id string) (models.Session, error)
	NumberTaken(ctx context.Context, number int, excludeID string) (bool, error)
	NextNumber(ctx context.Context, q store.Getter) (int, error)
	Update(ctx context.Context, tx store.Execer, id string, number int, actionID string) error
	Delete(ctx context.Context, tx store.Execer, id string) error
}

type DiaryStore interface {
	Create(ctx context.Context, tx store.Execer, d models.Diary) error
	GetAll(ctx context.Context) ([]models.Diary, error)
	GetByID(ctx context.Context, id string) (models.Diary, error)
	GetByUsername(ctx context.Context, username string) ([]models.Diary, error)
	GetByDateRange(ctx context.Context, start, end time.Time, username string) ([]models.Diary, error)
	Exists(ctx context.Context, date time.Time, username, excludeID string) (bool, error)
	Update(ctx context.Context, tx store.Execer, d models.Diary) error
	Delete(ctx context.Context, tx store.Execer, id string) error
}

type HistoryStore interface {
	Add(ctx context.Context, tx store.Execer, id, username, historyType, content string) error
	GetAll(ctx context.Context, limit, offset int) ([]models.History, error)
	GetByUsername(ctx context.Context, username string, limit, offset int) ([]models.History, error)
	GetByType(ctx context.Context, historyType string, limit, offset int) ([]models.History, error)
}
