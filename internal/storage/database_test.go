package storage

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"msgtiers/internal/config"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	cfg := &config.Config{
		Databases: map[string]config.DatabaseConfig{
			"sqlite3": {DSN: ":memory:"},
		},
	}
	db, err := Open("sqlite3", cfg)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	if err := Migrate(db, "sqlite3"); err != nil {
		t.Fatalf("migrate db: %v", err)
	}
	return db
}

func TestOpenUnknownDriver(t *testing.T) {
	cfg := &config.Config{
		Databases: map[string]config.DatabaseConfig{
			"postgres": {DSN: "ignored"},
		},
	}
	if _, err := Open("postgres", cfg); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
	if _, err := Open("mysql", &config.Config{Databases: map[string]config.DatabaseConfig{}}); err == nil {
		t.Fatalf("expected error for missing database config")
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	if err := Migrate(db, "sqlite3"); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	if _, err := db.Exec(`INSERT INTO users (user_id, password) VALUES ('alice', 'pw')`); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	_, err := db.Exec(`INSERT INTO users (user_id, password) VALUES ('alice', 'other')`)
	if err == nil {
		t.Fatalf("expected constraint violation")
	}
	if !IsUniqueViolation(err) {
		t.Fatalf("expected unique violation classification for %v", err)
	}

	if IsUniqueViolation(errors.New("some other failure")) {
		t.Fatalf("arbitrary errors must not classify as unique violations")
	}
	if IsUniqueViolation(nil) {
		t.Fatalf("nil must not classify as a unique violation")
	}
}

func TestVersion(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	version, err := Version(context.Background(), db, "sqlite3")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if version == "" {
		t.Fatalf("expected non-empty version string")
	}
	if _, err := Version(context.Background(), db, "oracle"); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}
