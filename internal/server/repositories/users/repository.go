// Package users provides the persistence gateway for user credential
// records.
package users

import (
	"context"

	"motoreg/internal/server/models"
)

type Repository interface {
	// Create stores a new user. A username collision yields
	// common.ErrConflict.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByUsername returns the user or common.ErrNotFound.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}
