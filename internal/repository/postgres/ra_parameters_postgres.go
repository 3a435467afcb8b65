package postgres

import (
	"context"
	"database/sql"

	"rateanalysis/internal/model"
	"rateanalysis/internal/repository"
)

const raParametersColumns = `id, name, value, description, is_active`

var raParametersSortColumns = map[string]string{
	"id":          "id",
	"name":        "name",
	"value":       "value",
	"description": "description",
	"isActive":    "is_active",
}

// RaParametersPostgres is a PostgreSQL implementation of repository.Repository for
// model.RaParameters.
type RaParametersPostgres struct {
	db *sql.DB
}

// NewRaParametersPostgres creates a new RaParametersPostgres repository.
func NewRaParametersPostgres(db *sql.DB) *RaParametersPostgres {
	return &RaParametersPostgres{db: db}
}

var _ repository.Repository[model.RaParameters] = (*RaParametersPostgres)(nil)

func scanRaParameters(row rowScanner) (*model.RaParameters, error) {
	var out model.RaParameters
	if err := row.Scan(
		&out.ID,
		&out.Name,
		&out.Value,
		&out.Description,
		&out.IsActive,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create inserts a new row and returns the stored record with its generated id.
func (r *RaParametersPostgres) Create(ctx context.Context, rec *model.RaParameters) (*model.RaParameters, error) {
	const q = `
		INSERT INTO ra_parameters (name, value, description, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + raParametersColumns
	row := r.db.QueryRowContext(ctx, q,
		rec.Name,
		rec.Value,
		rec.Description,
		rec.IsActive,
	)
	return scanRaParameters(row)
}

// Update overwrites all columns of an existing row.
func (r *RaParametersPostgres) Update(ctx context.Context, id int64, rec *model.RaParameters) (*model.RaParameters, error) {
	const q = `
		UPDATE ra_parameters
		SET name = $2, value = $3, description = $4, is_active = $5
		WHERE id = $1
		RETURNING ` + raParametersColumns
	row := r.db.QueryRowContext(ctx, q,
		id,
		rec.Name,
		rec.Value,
		rec.Description,
		rec.IsActive,
	)
	return scanRaParameters(row)
}

// FindByID fetches a single row by id.
func (r *RaParametersPostgres) FindByID(ctx context.Context, id int64) (*model.RaParameters, error) {
	const q = `SELECT ` + raParametersColumns + ` FROM ra_parameters WHERE id = $1`
	return scanRaParameters(r.db.QueryRowContext(ctx, q, id))
}

// FindAll returns every row ordered by id.
func (r *RaParametersPostgres) FindAll(ctx context.Context) ([]model.RaParameters, error) {
	const q = `SELECT ` + raParametersColumns + ` FROM ra_parameters ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.RaParameters, 0)
	for rows.Next() {
		rec, err := scanRaParameters(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// List returns rows using LIMIT/OFFSET pagination and a total count.
func (r *RaParametersPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.RaParameters], error) {
	order, err := orderBy(pq.Sort, raParametersSortColumns)
	if err != nil {
		return nil, err
	}

	const qCount = `SELECT COUNT(*) FROM ra_parameters`
	var total int64
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	qList := `SELECT ` + raParametersColumns + ` FROM ra_parameters ` + order + ` LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit(), pq.Offset())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.RaParameters, 0)
	for rows.Next() {
		rec, err := scanRaParameters(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.RaParameters]{
		Items: items,
		Page:  pq.Page,
		Size:  pq.Size,
		Total: total,
	}, nil
}

// ExistsByID reports whether the row exists.
func (r *RaParametersPostgres) ExistsByID(ctx context.Context, id int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM ra_parameters WHERE id = $1)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Delete removes a row by id. A missing row is not an error.
func (r *RaParametersPostgres) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM ra_parameters WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
