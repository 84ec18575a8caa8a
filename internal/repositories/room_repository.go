package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/dwellcheck/dwellcheck-backend/internal/models"
)

type roomRepo struct {
	db DB
}

func NewRoomRepository(db DB) RoomRepository {
	return &roomRepo{db: db}
}

func (r *roomRepo) Create(ctx context.Context, rm *models.Room) error {
	// Position is assigned from the current room count so creation
	// order survives into rendering order.
	_, err := r.db.Exec(ctx, `
        INSERT INTO rooms (
            id, report_id, name, room_type, position,
            video_url, video_duration_s, video_size_bytes,
            created_at, updated_at
        ) VALUES (
            $1,$2,$3,$4,
            (SELECT COUNT(*) FROM rooms WHERE report_id=$2),
            NULL, NULL, NULL, NOW(), NOW()
        )
    `, rm.ID, rm.ReportID, rm.Name, rm.RoomType)
	return err
}

func (r *roomRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	row := r.db.QueryRow(ctx, baseSelectRoom()+" WHERE id=$1", id)
	return scanRoom(row)
}

func (r *roomRepo) ListByReportID(ctx context.Context, reportID uuid.UUID) ([]*models.Room, error) {
	rows, err := r.db.Query(ctx, baseSelectRoom()+" WHERE report_id=$1 ORDER BY position", reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Room
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}

func (r *roomRepo) CountByReportID(ctx context.Context, reportID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM rooms WHERE report_id=$1`, reportID).Scan(&n)
	return n, err
}

func (r *roomRepo) SetVideo(ctx context.Context, id uuid.UUID, v *models.WalkthroughVideo) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE rooms SET video_url=$1, video_duration_s=$2, video_size_bytes=$3, updated_at=NOW()
        WHERE id=$4
    `, v.URL, v.DurationSeconds, v.SizeBytes, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func baseSelectRoom() string {
	return `
        SELECT
            id, report_id, name, room_type, position,
            video_url, video_duration_s, video_size_bytes,
            created_at, updated_at
        FROM rooms
    `
}

func scanRoom(row pgx.Row) (*models.Room, error) {
	var (
		rm       models.Room
		videoURL *string
		videoDur *int
		videoSz  *int64
	)
	err := row.Scan(
		&rm.ID,
		&rm.ReportID,
		&rm.Name,
		&rm.RoomType,
		&rm.Position,
		&videoURL,
		&videoDur,
		&videoSz,
		&rm.CreatedAt,
		&rm.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if videoURL != nil {
		rm.Video = &models.WalkthroughVideo{
			URL:             *videoURL,
			DurationSeconds: *videoDur,
			SizeBytes:       *videoSz,
		}
	}
	return &rm, nil
}
