package repomanager

import (
	"context"
	"database/sql"

	"motoreg/internal/dbx"
	"motoreg/internal/server/repositories/motorcycles"
	"motoreg/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Motorcycles(db dbx.DBTX) motorcycles.Repository
}
