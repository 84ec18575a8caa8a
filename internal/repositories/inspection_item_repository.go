package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/dwellcheck/dwellcheck-backend/internal/models"
)

type inspectionItemRepo struct {
	db DB
}

func NewInspectionItemRepository(db DB) InspectionItemRepository {
	return &inspectionItemRepo{db: db}
}

func (r *inspectionItemRepo) Upsert(ctx context.Context, it *models.InspectionItem) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO inspection_items (
            id, room_id, category_id, condition, notes, photo_urls,
            created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6, NOW(), NOW())
        ON CONFLICT (room_id, category_id) DO UPDATE SET
            condition=EXCLUDED.condition,
            notes=EXCLUDED.notes,
            photo_urls=EXCLUDED.photo_urls,
            updated_at=NOW()
    `, it.ID, it.RoomID, it.CategoryID, it.Condition, it.Notes, it.PhotoURLs)
	return err
}

func (r *inspectionItemRepo) GetByRoomAndCategory(ctx context.Context, roomID uuid.UUID, categoryID string) (*models.InspectionItem, error) {
	row := r.db.QueryRow(ctx, baseSelectItem()+" WHERE room_id=$1 AND category_id=$2", roomID, categoryID)
	return scanItem(row)
}

func (r *inspectionItemRepo) ListByRoomID(ctx context.Context, roomID uuid.UUID) ([]*models.InspectionItem, error) {
	rows, err := r.db.Query(ctx, baseSelectItem()+" WHERE room_id=$1 ORDER BY created_at", roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.InspectionItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func baseSelectItem() string {
	return `
        SELECT
            id, room_id, category_id, condition, notes, photo_urls,
            created_at, updated_at
        FROM inspection_items
    `
}

func scanItem(row pgx.Row) (*models.InspectionItem, error) {
	var it models.InspectionItem
	err := row.Scan(
		&it.ID,
		&it.RoomID,
		&it.CategoryID,
		&it.Condition,
		&it.Notes,
		&it.PhotoURLs,
		&it.CreatedAt,
		&it.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &it, nil
}
