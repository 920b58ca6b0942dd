package db

import (
	"context"
	"errors"
	"testing"

	"github.com/liftledger/liftledger-backend/pkg/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestConn(t *testing.T) *Client {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return FromConn(conn)
}

func TestNewRequiresDSN(t *testing.T) {
	if _, err := New(context.Background(), config.DBConfig{}, nil); err == nil {
		t.Fatalf("expected error for empty DSN")
	}
}

func TestWithTxCommits(t *testing.T) {
	client := openTestConn(t)
	if err := client.DB().Exec(`CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT)`).Error; err != nil {
		t.Fatalf("create table: %v", err)
	}

	err := client.WithTx(context.Background(), func(tx *gorm.DB) error {
		return tx.Exec(`INSERT INTO items (name) VALUES (?)`, "kept").Error
	})
	if err != nil {
		t.Fatalf("commit tx: %v", err)
	}

	var count int64
	if err := client.DB().Raw(`SELECT COUNT(*) FROM items`).Scan(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 row after commit, got %d", count)
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	client := openTestConn(t)
	if err := client.DB().Exec(`CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT)`).Error; err != nil {
		t.Fatalf("create table: %v", err)
	}

	boom := errors.New("boom")
	err := client.WithTx(context.Background(), func(tx *gorm.DB) error {
		if err := tx.Exec(`INSERT INTO items (name) VALUES (?)`, "dropped").Error; err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected error to surface, got %v", err)
	}

	var count int64
	if err := client.DB().Raw(`SELECT COUNT(*) FROM items`).Scan(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected rollback to discard rows, got %d", count)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	err := errors.New(`ERROR: duplicate key value violates unique constraint "idx_exercises_name"`)
	if !IsUniqueViolation(err, "") {
		t.Fatalf("expected generic duplicate detection")
	}
	if !IsUniqueViolation(err, "idx_exercises_name") {
		t.Fatalf("expected named constraint detection")
	}
	if IsUniqueViolation(err, "other_constraint") {
		t.Fatalf("did not expect mismatch to report violation")
	}
	if IsUniqueViolation(nil, "") {
		t.Fatalf("nil error is not a violation")
	}
}
