package postgres

import (
	"context"
	"database/sql"

	"rateanalysis/internal/model"
	"rateanalysis/internal/repository"
)

const workEstimateLeadColumns = `id, work_estimate_id, title, notes, lead_amount, lead_status`

var workEstimateLeadSortColumns = map[string]string{
	"id":             "id",
	"workEstimateId": "work_estimate_id",
	"title":          "title",
	"notes":          "notes",
	"leadAmount":     "lead_amount",
	"leadStatus":     "lead_status",
}

// WorkEstimateLeadPostgres is a PostgreSQL implementation of repository.Repository for
// model.WorkEstimateLead.
type WorkEstimateLeadPostgres struct {
	db *sql.DB
}

// NewWorkEstimateLeadPostgres creates a new WorkEstimateLeadPostgres repository.
func NewWorkEstimateLeadPostgres(db *sql.DB) *WorkEstimateLeadPostgres {
	return &WorkEstimateLeadPostgres{db: db}
}

var _ repository.Repository[model.WorkEstimateLead] = (*WorkEstimateLeadPostgres)(nil)

func scanWorkEstimateLead(row rowScanner) (*model.WorkEstimateLead, error) {
	var out model.WorkEstimateLead
	if err := row.Scan(
		&out.ID,
		&out.WorkEstimateID,
		&out.Title,
		&out.Notes,
		&out.LeadAmount,
		&out.LeadStatus,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *WorkEstimateLeadPostgres) Create(ctx context.Context, rec *model.WorkEstimateLead) (*model.WorkEstimateLead, error) {
	const q = `
		INSERT INTO work_estimate_lead (work_estimate_id, title, notes, lead_amount, lead_status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + workEstimateLeadColumns
	row := r.db.QueryRowContext(ctx, q,
		rec.WorkEstimateID,
		rec.Title,
		rec.Notes,
		rec.LeadAmount,
		rec.LeadStatus,
	)
	return scanWorkEstimateLead(row)
}

func (r *WorkEstimateLeadPostgres) Update(ctx context.Context, id int64, rec *model.WorkEstimateLead) (*model.WorkEstimateLead, error) {
	const q = `
		UPDATE work_estimate_lead
		SET work_estimate_id = $2, title = $3, notes = $4, lead_amount = $5, lead_status = $6
		WHERE id = $1
		RETURNING ` + workEstimateLeadColumns
	row := r.db.QueryRowContext(ctx, q,
		id,
		rec.WorkEstimateID,
		rec.Title,
		rec.Notes,
		rec.LeadAmount,
		rec.LeadStatus,
	)
	return scanWorkEstimateLead(row)
}

func (r *WorkEstimateLeadPostgres) FindByID(ctx context.Context, id int64) (*model.WorkEstimateLead, error) {
	const q = `SELECT ` + workEstimateLeadColumns + ` FROM work_estimate_lead WHERE id = $1`
	return scanWorkEstimateLead(r.db.QueryRowContext(ctx, q, id))
}

func (r *WorkEstimateLeadPostgres) FindAll(ctx context.Context) ([]model.WorkEstimateLead, error) {
	const q = `SELECT ` + workEstimateLeadColumns + ` FROM work_estimate_lead ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.WorkEstimateLead, 0)
	for rows.Next() {
		rec, err := scanWorkEstimateLead(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *rec)
	}
	return items, rows.Err()
}

// List returns one page of leads ordered by the requested sort (id ascending by default).
func (r *WorkEstimateLeadPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.WorkEstimateLead], error) {
	order, err := orderBy(pq.Sort, workEstimateLeadSortColumns)
	if err != nil {
		return nil, err
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM work_estimate_lead`).Scan(&total); err != nil {
		return nil, err
	}

	qList := `SELECT ` + workEstimateLeadColumns + ` FROM work_estimate_lead ` + order + ` LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit(), pq.Offset())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.WorkEstimateLead, 0)
	for rows.Next() {
		rec, err := scanWorkEstimateLead(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.WorkEstimateLead]{
		Items: items,
		Page:  pq.Page,
		Size:  pq.Size,
		Total: total,
	}, nil
}

func (r *WorkEstimateLeadPostgres) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM work_estimate_lead WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *WorkEstimateLeadPostgres) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM work_estimate_lead WHERE id = $1`, id)
	return err
}
