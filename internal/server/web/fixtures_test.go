package web

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"motoreg/internal/common"
	"motoreg/internal/dbx"
	"motoreg/internal/logging"
	"motoreg/internal/server/config"
	"motoreg/internal/server/models"
	motorepo "motoreg/internal/server/repositories/motorcycles"
	usersrepo "motoreg/internal/server/repositories/users"
	"motoreg/internal/server/services"
	"motoreg/internal/server/sessions"
)

const testSecret = "test-secret"

// --- in-memory fakes backing the handler tests ---

type fakeMotorcycleRepo struct {
	records map[int64]models.Motorcycle
	nextID  int64
}

func newFakeMotorcycleRepo() *fakeMotorcycleRepo {
	return &fakeMotorcycleRepo{records: map[int64]models.Motorcycle{}, nextID: 1}
}

func (f *fakeMotorcycleRepo) Insert(ctx context.Context, m *models.Motorcycle) (int64, error) {
	id := f.nextID
	f.nextID++
	stored := *m
	stored.ID = id
	f.records[id] = stored
	return id, nil
}

func matches(m models.Motorcycle, search string) bool {
	s := strings.ToLower(search)
	return strings.Contains(strings.ToLower(m.Make), s) ||
		strings.Contains(strings.ToLower(m.Model), s) ||
		strings.Contains(strings.ToLower(m.Color), s)
}

func (f *fakeMotorcycleRepo) SelectAll(ctx context.Context, search string) ([]models.Motorcycle, error) {
	var out []models.Motorcycle
	for id := int64(1); id < f.nextID; id++ {
		m, ok := f.records[id]
		if !ok {
			continue
		}
		if search == "" || matches(m, search) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMotorcycleRepo) SelectByID(ctx context.Context, id int64) (*models.Motorcycle, error) {
	if m, ok := f.records[id]; ok {
		return &m, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeMotorcycleRepo) UpdateByID(ctx context.Context, id int64, m *models.Motorcycle) (int64, error) {
	if _, ok := f.records[id]; !ok {
		return 0, nil
	}
	stored := *m
	stored.ID = id
	f.records[id] = stored
	return 1, nil
}

func (f *fakeMotorcycleRepo) DeleteByID(ctx context.Context, id int64) (int64, error) {
	if _, ok := f.records[id]; !ok {
		return 0, nil
	}
	delete(f.records, id)
	return 1, nil
}

type fakeUsersRepo struct {
	users map[string]*models.User
	next  int64
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{users: map[string]*models.User{}, next: 1}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if _, ok := f.users[u.Username]; ok {
		return nil, common.ErrConflict
	}
	stored := *u
	stored.ID = f.next
	f.next++
	f.users[u.Username] = &stored
	return &stored, nil
}

func (f *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if u, ok := f.users[username]; ok {
		return u, nil
	}
	return nil, common.ErrNotFound
}

type fakeRepoManager struct {
	motorcycles *fakeMotorcycleRepo
	users       *fakeUsersRepo
}

func (f *fakeRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }

func (f *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository { return f.users }

func (f *fakeRepoManager) Motorcycles(db dbx.DBTX) motorepo.Repository { return f.motorcycles }

// newTestServer wires a Server onto in-memory fakes and a MemoryStore.
func newTestServer(t *testing.T) (*Server, *fakeRepoManager, *sessions.MemoryStore) {
	t.Helper()

	rm := &fakeRepoManager{
		motorcycles: newFakeMotorcycleRepo(),
		users:       newFakeUsersRepo(),
	}
	cfg := &config.Config{
		SecretKey:                   testSecret,
		AccessTokenValidityDuration: time.Hour,
	}
	store := sessions.NewMemoryStore()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	srv := NewServer(":0", logger,
		services.NewUserService(nil, rm, cfg),
		services.NewMotorcycleService(nil, rm),
		store, testSecret)
	return srv, rm, store
}
