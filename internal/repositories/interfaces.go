package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dwellcheck/dwellcheck-backend/internal/models"
)

/* ------------------------------------------------------------------
   Public interfaces

   GetByID methods return (nil, nil) when the row is absent; callers
   translate that into their own not-found error.
------------------------------------------------------------------ */

type PropertyRepository interface {
	Create(ctx context.Context, p *models.Property) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error)
	ListByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*models.Property, error)

	Update(ctx context.Context, p *models.Property) error

	// Deactivate flips the active flag; properties are never hard-deleted.
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type ReportRepository interface {
	Create(ctx context.Context, r *models.Report) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Report, error)
	ListByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*models.Report, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ReportStatus, finalizedAt *time.Time) error
	SetPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) error
	SetPDFURL(ctx context.Context, id uuid.UUID, url string) error

	// DeleteWithChildren removes the report, its rooms and their items
	// atomically: items first, then rooms, then the report row.
	DeleteWithChildren(ctx context.Context, id uuid.UUID) error
}

type RoomRepository interface {
	Create(ctx context.Context, r *models.Room) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error)
	ListByReportID(ctx context.Context, reportID uuid.UUID) ([]*models.Room, error)
	CountByReportID(ctx context.Context, reportID uuid.UUID) (int, error)

	SetVideo(ctx context.Context, id uuid.UUID, v *models.WalkthroughVideo) error
}

type InspectionItemRepository interface {
	// Upsert creates the item or replaces the existing one for the
	// same (room, category) pair.
	Upsert(ctx context.Context, it *models.InspectionItem) error

	GetByRoomAndCategory(ctx context.Context, roomID uuid.UUID, categoryID string) (*models.InspectionItem, error)
	ListByRoomID(ctx context.Context, roomID uuid.UUID) ([]*models.InspectionItem, error)
}
