package services

import (
	"context"
	"database/sql"

	"motoreg/internal/common"
	"motoreg/internal/dbx"
	"motoreg/internal/server/models"
	motorepo "motoreg/internal/server/repositories/motorcycles"
	usersrepo "motoreg/internal/server/repositories/users"
)

// --- in-memory fakes shared by the service tests ---

type fakeMotorcycleRepo struct {
	records map[int64]models.Motorcycle
	nextID  int64

	insertErr error
	selectErr error

	insertCalls int
	updateCalls int
}

func newFakeMotorcycleRepo() *fakeMotorcycleRepo {
	return &fakeMotorcycleRepo{records: map[int64]models.Motorcycle{}, nextID: 1}
}

func (f *fakeMotorcycleRepo) Insert(ctx context.Context, m *models.Motorcycle) (int64, error) {
	f.insertCalls++
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	id := f.nextID
	f.nextID++
	stored := *m
	stored.ID = id
	f.records[id] = stored
	return id, nil
}

func (f *fakeMotorcycleRepo) SelectAll(ctx context.Context, search string) ([]models.Motorcycle, error) {
	if f.selectErr != nil {
		return nil, f.selectErr
	}
	var out []models.Motorcycle
	for id := int64(1); id < f.nextID; id++ {
		if m, ok := f.records[id]; ok {
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
	f.updateCalls++
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
	createOut *models.User
	createErr error

	getOut *models.User
	getErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	u.ID = 1
	return u, nil
}

func (f *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

type fakeRepoManager struct {
	motorcycles *fakeMotorcycleRepo
	users       *fakeUsersRepo
}

func (f *fakeRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }

func (f *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository { return f.users }

func (f *fakeRepoManager) Motorcycles(db dbx.DBTX) motorepo.Repository { return f.motorcycles }
