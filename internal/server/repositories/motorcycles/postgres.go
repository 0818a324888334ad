package motorcycles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"motoreg/internal/common"
	"motoreg/internal/dbx"
	"motoreg/internal/server/models"
)

// PostgresRepository implements record storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Insert(ctx context.Context, m *models.Motorcycle) (int64, error) {
	query :=
		`INSERT INTO motorcycles (make, model, year, engine_cc, color)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id
		 `

	var id int64
	err := r.db.QueryRowContext(ctx, query, m.Make, m.Model, m.Year, m.EngineCC, m.Color).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return id, nil
}

// SelectAll lists records ordered by ascending id so listings are
// deterministic.
func (r *PostgresRepository) SelectAll(ctx context.Context, search string) ([]models.Motorcycle, error) {
	query :=
		`SELECT id, make, model, year, engine_cc, color FROM motorcycles
		 ORDER BY id
		 `
	args := []any{}

	if search != "" {
		query =
			`SELECT id, make, model, year, engine_cc, color FROM motorcycles
			 WHERE make ILIKE $1 OR model ILIKE $1 OR color ILIKE $1
			 ORDER BY id
			 `
		args = append(args, "%"+escapeLike(search)+"%")
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Motorcycle
	for rows.Next() {
		var item models.Motorcycle
		if err := rows.Scan(&item.ID, &item.Make, &item.Model, &item.Year, &item.EngineCC, &item.Color); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) SelectByID(ctx context.Context, id int64) (*models.Motorcycle, error) {
	query :=
		`SELECT id, make, model, year, engine_cc, color FROM motorcycles
		 WHERE id = $1
		 `

	m := &models.Motorcycle{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&m.ID, &m.Make, &m.Model, &m.Year, &m.EngineCC, &m.Color)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return m, nil
}

// UpdateByID is a single conditional statement: absence of the row shows
// up as zero affected rows, so there is no separate existence check to
// race against concurrent deletes.
func (r *PostgresRepository) UpdateByID(ctx context.Context, id int64, m *models.Motorcycle) (int64, error) {
	query :=
		`UPDATE motorcycles
		 SET make = $1, model = $2, year = $3, engine_cc = $4, color = $5
		 WHERE id = $6
		 `

	res, err := r.db.ExecContext(ctx, query, m.Make, m.Model, m.Year, m.EngineCC, m.Color, id)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) DeleteByID(ctx context.Context, id int64) (int64, error) {
	query :=
		`DELETE FROM motorcycles
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}

// escapeLike neutralizes LIKE metacharacters so the search term is matched
// as a literal substring.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
