package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/dwellcheck/dwellcheck-backend/internal/models"
)

type reportRepo struct {
	db TxDB
}

// NewReportRepository needs a TxDB because the cascade delete runs
// inside one transaction.
func NewReportRepository(db TxDB) ReportRepository {
	return &reportRepo{db: db}
}

func (r *reportRepo) Create(ctx context.Context, rep *models.Report) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO reports (
            id, owner_id, property_id, title, status,
            paid, paid_at, pdf_url, finalized_at,
            created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5, FALSE, NULL, '', NULL, NOW(), NOW())
    `, rep.ID, rep.OwnerID, rep.PropertyID, rep.Title, rep.Status)
	return err
}

func (r *reportRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	row := r.db.QueryRow(ctx, baseSelectReport()+" WHERE id=$1", id)
	return scanReport(row)
}

func (r *reportRepo) ListByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*models.Report, error) {
	rows, err := r.db.Query(ctx, baseSelectReport()+" WHERE owner_id=$1 ORDER BY created_at DESC", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Report
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

func (r *reportRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ReportStatus, finalizedAt *time.Time) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE reports SET status=$1, finalized_at=COALESCE($2, finalized_at), updated_at=NOW()
        WHERE id=$3
    `, status, finalizedAt, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *reportRepo) SetPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE reports SET paid=TRUE, paid_at=$1, updated_at=NOW() WHERE id=$2
    `, paidAt, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *reportRepo) SetPDFURL(ctx context.Context, id uuid.UUID, url string) error {
	_, err := r.db.Exec(ctx, `UPDATE reports SET pdf_url=$1, updated_at=NOW() WHERE id=$2`, url, id)
	return err
}

// DeleteWithChildren deletes items, then rooms, then the report row,
// all inside one transaction so a failure cannot strand orphans.
func (r *reportRepo) DeleteWithChildren(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
        DELETE FROM inspection_items
        WHERE room_id IN (SELECT id FROM rooms WHERE report_id=$1)
    `, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM rooms WHERE report_id=$1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM reports WHERE id=$1`, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func baseSelectReport() string {
	return `
        SELECT
            id, owner_id, property_id, title, status,
            paid, paid_at, pdf_url, finalized_at,
            created_at, updated_at
        FROM reports
    `
}

func scanReport(row pgx.Row) (*models.Report, error) {
	var rep models.Report
	err := row.Scan(
		&rep.ID,
		&rep.OwnerID,
		&rep.PropertyID,
		&rep.Title,
		&rep.Status,
		&rep.Paid,
		&rep.PaidAt,
		&rep.PDFURL,
		&rep.FinalizedAt,
		&rep.CreatedAt,
		&rep.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &rep, nil
}
