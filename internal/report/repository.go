package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/vasiliy-maslov/ecommerce-backoffice/internal/db"
)

var ErrNotFound = errors.New("report not found")

type Repository interface {
	Create(ctx context.Context, r *Report) error
	List(ctx context.Context) ([]Report, error)
	Delete(ctx context.Context, id uuid.UUID) error
	WithTx(tx db.Tx) Repository
}

type repository struct {
	db db.Querier
}

func NewRepository(q db.Querier) Repository {
	return &repository{db: q}
}

func (r *repository) WithTx(tx db.Tx) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, rpt *Report) error {
	query := `
		INSERT INTO reports (id, report_type, generated_at, generated_by, details)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query, rpt.ID, rpt.ReportType, rpt.GeneratedAt, rpt.GeneratedBy, rpt.Details)
	if err != nil {
		return fmt.Errorf("repository: failed to insert report: %w", err)
	}

	return nil
}

func (r *repository) List(ctx context.Context) ([]Report, error) {
	query := `
		SELECT id, report_type, generated_at, generated_by, details
		FROM reports
		ORDER BY generated_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query reports: %w", err)
	}
	defer rows.Close()

	reports := make([]Report, 0)
	for rows.Next() {
		var rpt Report
		err := rows.Scan(&rpt.ID, &rpt.ReportType, &rpt.GeneratedAt, &rpt.GeneratedBy, &rpt.Details)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan report: %w", err)
		}
		reports = append(reports, rpt)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating reports: %w", err)
	}

	return reports, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository: failed to delete report %s: %w", id, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
