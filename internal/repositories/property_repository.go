package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/dwellcheck/dwellcheck-backend/internal/models"
)

/* ------------------------------------------------------------------
   Postgres implementation
------------------------------------------------------------------ */

type propertyRepo struct {
	db DB
}

func NewPropertyRepository(db DB) PropertyRepository {
	return &propertyRepo{db: db}
}

func (r *propertyRepo) Create(ctx context.Context, p *models.Property) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO properties (
            id, owner_id, property_name, property_type,
            unit_number, complex_name, estate_name,
            street_number, street_name, suburb, city, province, postal_code,
            gps_latitude, gps_longitude, gps_accuracy_m, gps_captured_at,
            active, created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17, TRUE, NOW(), NOW())
    `,
		p.ID,
		p.OwnerID,
		p.PropertyName,
		p.PropertyType,
		p.UnitNumber,
		p.ComplexName,
		p.EstateName,
		p.StreetNumber,
		p.StreetName,
		p.Suburb,
		p.City,
		p.Province,
		p.PostalCode,
		p.GPS.Latitude,
		p.GPS.Longitude,
		p.GPS.AccuracyM,
		p.GPS.CapturedAt,
	)
	return err
}

func (r *propertyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	row := r.db.QueryRow(ctx, baseSelectProperty()+" WHERE id=$1", id)
	return scanProperty(row)
}

func (r *propertyRepo) ListByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*models.Property, error) {
	rows, err := r.db.Query(ctx, baseSelectProperty()+" WHERE owner_id=$1 AND active ORDER BY created_at", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *propertyRepo) Update(ctx context.Context, p *models.Property) error {
	_, err := r.db.Exec(ctx, `
        UPDATE properties SET
            property_name=$1, property_type=$2,
            unit_number=$3, complex_name=$4, estate_name=$5,
            street_number=$6, street_name=$7, suburb=$8, city=$9,
            province=$10, postal_code=$11, updated_at=NOW()
        WHERE id=$12
    `,
		p.PropertyName, p.PropertyType,
		p.UnitNumber, p.ComplexName, p.EstateName,
		p.StreetNumber, p.StreetName, p.Suburb, p.City,
		p.Province, p.PostalCode, p.ID,
	)
	return err
}

func (r *propertyRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `UPDATE properties SET active=FALSE, updated_at=NOW() WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func baseSelectProperty() string {
	return `
        SELECT
            id, owner_id, property_name, property_type,
            unit_number, complex_name, estate_name,
            street_number, street_name, suburb, city, province, postal_code,
            gps_latitude, gps_longitude, gps_accuracy_m, gps_captured_at,
            active, created_at, updated_at
        FROM properties
    `
}

func scanProperty(row pgx.Row) (*models.Property, error) {
	var p models.Property
	err := row.Scan(
		&p.ID,
		&p.OwnerID,
		&p.PropertyName,
		&p.PropertyType,
		&p.UnitNumber,
		&p.ComplexName,
		&p.EstateName,
		&p.StreetNumber,
		&p.StreetName,
		&p.Suburb,
		&p.City,
		&p.Province,
		&p.PostalCode,
		&p.GPS.Latitude,
		&p.GPS.Longitude,
		&p.GPS.AccuracyM,
		&p.GPS.CapturedAt,
		&p.Active,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
