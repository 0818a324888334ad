package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"
)

func TestPostgresRepositoryManager_VendsRepositories(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	defer db.Close()

	m := NewPostgresRepositoryManager()

	if m.Users(db) == nil {
		t.Fatalf("Users returned nil repository")
	}
	if m.Motorcycles(db) == nil {
		t.Fatalf("Motorcycles returned nil repository")
	}
}

func TestRunMigrations_PropagatesGooseError(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	defer db.Close()

	orig := gooseUpContext
	defer func() { gooseUpContext = orig }()

	wantErr := errors.New("migration failed")
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return wantErr
	}

	m := NewPostgresRepositoryManager()
	if err := m.RunMigrations(context.Background(), db); !errors.Is(err, wantErr) {
		t.Fatalf("expected %v, got %v", wantErr, err)
	}
}
