// Package motorcycles provides the persistence gateway for motorcycle
// records. The gateway performs no business validation; that lives in the
// service layer.
package motorcycles

import (
	"context"

	"motoreg/internal/server/models"
)

type Repository interface {
	// Insert stores a new record and returns the store-assigned id.
	Insert(ctx context.Context, m *models.Motorcycle) (int64, error)

	// SelectAll returns records ordered by id ascending. A non-empty
	// search narrows the result to rows whose make, model or color
	// contains the substring, case-insensitively.
	SelectAll(ctx context.Context, search string) ([]models.Motorcycle, error)

	// SelectByID returns the record or common.ErrNotFound.
	SelectByID(ctx context.Context, id int64) (*models.Motorcycle, error)

	// UpdateByID replaces all mutable fields of the row with the given id
	// and returns the number of rows affected.
	UpdateByID(ctx context.Context, id int64, m *models.Motorcycle) (int64, error)

	// DeleteByID removes the row with the given id and returns the number
	// of rows affected.
	DeleteByID(ctx context.Context, id int64) (int64, error)
}
