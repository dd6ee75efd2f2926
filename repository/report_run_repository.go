package repository

import (
	"context"

	"reportdiff-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReportRunRepository handles database operations for comparison runs
type ReportRunRepository struct {
	db *pgxpool.Pool
}

// NewReportRunRepository creates a new report run repository
func NewReportRunRepository(db *pgxpool.Pool) *ReportRunRepository {
	return &ReportRunRepository{db: db}
}

// Create creates a new run record
func (r *ReportRunRepository) Create(ctx context.Context, run *models.ReportRun) error {
	query := `
		INSERT INTO report_runs (
			id, file_name, mode, options, summary, storage_path, digest
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING created_at`

	err := r.db.QueryRow(
		ctx, query,
		run.ID,
		run.FileName,
		run.Mode,
		run.Options,
		run.Summary,
		run.StoragePath,
		run.Digest,
	).Scan(&run.CreatedAt)

	return err
}

// GetByID retrieves a run by ID
func (r *ReportRunRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ReportRun, error) {
	run := &models.ReportRun{}
	query := `
		SELECT id, file_name, mode, options, summary, storage_path, digest, created_at
		FROM report_runs
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&run.ID,
		&run.FileName,
		&run.Mode,
		&run.Options,
		&run.Summary,
		&run.StoragePath,
		&run.Digest,
		&run.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return run, nil
}

// List retrieves recent runs, newest first
func (r *ReportRunRepository) List(ctx context.Context, limit, offset int) ([]*models.ReportRun, error) {
	query := `
		SELECT id, file_name, mode, options, summary, storage_path, digest, created_at
		FROM report_runs
		ORDER BY created_at DESC`

	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
		if offset > 0 {
			query += " OFFSET $2"
			args = append(args, offset)
		}
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*models.ReportRun
	for rows.Next() {
		run := &models.ReportRun{}
		err := rows.Scan(
			&run.ID,
			&run.FileName,
			&run.Mode,
			&run.Options,
			&run.Summary,
			&run.StoragePath,
			&run.Digest,
			&run.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// UpdateDigest stores a generated digest on the run
func (r *ReportRunRepository) UpdateDigest(ctx context.Context, id uuid.UUID, digest string) error {
	query := `UPDATE report_runs SET digest = $2 WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id, digest)
	return err
}

// Delete deletes a run record
func (r *ReportRunRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM report_runs WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
