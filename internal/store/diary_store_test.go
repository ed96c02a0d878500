package store

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"roomfund/internal/models"
)

func TestDiaryStoreCreate(t *testing.T) {
	ctx := context.Background()
	execer := stubExecer{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "INSERT INTO diaries") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 5 || args[0] != "diary-1" || args[4] != "alice" {
				t.Fatalf("unexpected args: %#v", args)
			}
			return stubResult{rows: 1}, nil
		},
	}
	store := NewDiaryStore(stubDB{})
	err := store.Create(ctx, execer, models.Diary{
		ID:                 "diary-1",
		Date:               time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		MorningSessionID:   "sess-1",
		AfternoonSessionID: "sess-2",
		Username:           "alice",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDiaryStoreExists(t *testing.T) {
	ctx := context.Background()
	store := NewDiaryStore(stubDB{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "date = $1 AND username = $2 AND id::text <> $3") {
				t.Fatalf("unexpected query: %s", query)
			}
			*dest.(*int) = 1
			return nil
		},
	})
	exists, err := store.Exists(ctx, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), "alice", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Fatalf("expected diary to exist")
	}
}

func TestDiaryStoreGetByDateRange(t *testing.T) {
	ctx := context.Background()
	store := NewDiaryStore(stubDB{
		selectFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "date >= $2 AND date <= $3") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 3 || args[0] != "alice" {
				t.Fatalf("unexpected args: %#v", args)
			}
			*dest.(*[]models.Diary) = []models.Diary{{ID: "diary-1"}}
			return nil
		},
	})
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	rows, err := store.GetByDateRange(ctx, start, end, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("unexpected rows: %#v", rows)
	}
}
