package dtos

import (
	"github.com/google/uuid"

	"github.com/dwellcheck/dwellcheck-backend/internal/models"
)

type CreateReportRequest struct {
	PropertyID uuid.UUID `json:"property_id" validate:"required"`
	Title      string    `json:"title" validate:"required"`
}

type AddRoomRequest struct {
	Name     string `json:"name" validate:"required"`
	RoomType string `json:"room_type" validate:"required"`
}

type RecordItemRequest struct {
	Condition string   `json:"condition" validate:"required"`
	Notes     string   `json:"notes"`
	PhotoURLs []string `json:"photo_urls"`
}

// BatchItemEntry is one checklist rating inside an end-of-room save.
type BatchItemEntry struct {
	CategoryID string   `json:"category_id" validate:"required"`
	Condition  string   `json:"condition" validate:"required"`
	Notes      string   `json:"notes"`
	PhotoURLs  []string `json:"photo_urls"`
}

type SaveRoomItemsRequest struct {
	Items []BatchItemEntry `json:"items" validate:"required,min=1,dive"`
}

type AttachVideoRequest struct {
	URL             string `json:"url" validate:"required,url"`
	DurationSeconds int    `json:"duration_seconds" validate:"required,min=1"`
	SizeBytes       int64  `json:"size_bytes" validate:"required,min=1"`
}

type UpdateReportStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// PublicReportResponse is the unauthenticated QR-code target payload.
// The condition legend is produced from the same colour table the PDF
// uses, so the two presentations cannot diverge.
type PublicReportResponse struct {
	Report     *models.Report   `json:"report"`
	Property   *models.Property `json:"property"`
	Conditions []ConditionEntry `json:"conditions"`
}

type ConditionEntry struct {
	Condition string `json:"condition"`
	Colour    string `json:"colour"`
}
