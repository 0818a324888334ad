// Package services contains server-side business logic. This file
// implements MotorcycleService: validation and CRUD + search over
// motorcycle records. All persistence goes through the repository
// gateway; all validation lives here.
package services

import (
	"context"
	"database/sql"
	"strconv"

	"motoreg/internal/common"
	"motoreg/internal/server/models"
	"motoreg/internal/server/repositories/repomanager"
)

// RequiredFields lists the write-payload keys every create/update must
// carry. Partial updates are not supported.
var RequiredFields = []string{"make", "model", "year", "engine_cc", "color"}

type MotorcycleService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewMotorcycleService constructs a MotorcycleService using repositories.
func NewMotorcycleService(db *sql.DB, m repomanager.RepositoryManager) *MotorcycleService {
	return &MotorcycleService{db: db, repomanager: m}
}

// parseFields validates and coerces a flat write payload into a record.
// Missing keys are collected first; only when all five are present are
// year and engine_cc coerced, so the two validation failures never mix.
func parseFields(fields map[string]string) (*models.Motorcycle, error) {
	var missing []string
	for _, k := range RequiredFields {
		if _, ok := fields[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return nil, &common.ValidationError{MissingFields: missing}
	}

	var nonInteger []string
	year, err := strconv.Atoi(fields["year"])
	if err != nil {
		nonInteger = append(nonInteger, "year")
	}
	engineCC, err := strconv.Atoi(fields["engine_cc"])
	if err != nil {
		nonInteger = append(nonInteger, "engine_cc")
	}
	if len(nonInteger) > 0 {
		return nil, &common.ValidationError{NonIntegerFields: nonInteger}
	}

	return &models.Motorcycle{
		Make:     fields["make"],
		Model:    fields["model"],
		Year:     year,
		EngineCC: engineCC,
		Color:    fields["color"],
	}, nil
}

// Create validates the payload and inserts a new record. The returned
// record carries the store-assigned id. Store failures pass through
// unclassified.
func (s *MotorcycleService) Create(ctx context.Context, fields map[string]string) (*models.Motorcycle, error) {
	m, err := parseFields(fields)
	if err != nil {
		return nil, err
	}

	repo := s.repomanager.Motorcycles(s.db)
	id, err := repo.Insert(ctx, m)
	if err != nil {
		return nil, err
	}
	m.ID = id
	return m, nil
}

// List returns all records, or, when search is non-empty, the records
// whose make, model or color contains the substring case-insensitively.
// Ordering is ascending id.
func (s *MotorcycleService) List(ctx context.Context, search string) ([]models.Motorcycle, error) {
	repo := s.repomanager.Motorcycles(s.db)
	return repo.SelectAll(ctx, search)
}

// Get returns the record with the given id or common.ErrNotFound.
func (s *MotorcycleService) Get(ctx context.Context, id int64) (*models.Motorcycle, error) {
	repo := s.repomanager.Motorcycles(s.db)
	return repo.SelectByID(ctx, id)
}

// Update validates the payload and replaces all mutable fields of the
// record. The mutation is a single conditional statement; zero affected
// rows reports common.ErrNotFound, which also covers a concurrent delete.
func (s *MotorcycleService) Update(ctx context.Context, id int64, fields map[string]string) (*models.Motorcycle, error) {
	m, err := parseFields(fields)
	if err != nil {
		return nil, err
	}

	repo := s.repomanager.Motorcycles(s.db)
	n, err := repo.UpdateByID(ctx, id, m)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, common.ErrNotFound
	}
	m.ID = id
	return m, nil
}

// Delete removes the record with the given id, reporting
// common.ErrNotFound when no row matched.
func (s *MotorcycleService) Delete(ctx context.Context, id int64) error {
	repo := s.repomanager.Motorcycles(s.db)
	n, err := repo.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
