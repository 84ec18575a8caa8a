package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/dwellcheck/dwellcheck-backend/internal/catalog"
)

// InspectionItem is one rated checklist line inside a room. The pair
// (RoomID, CategoryID) is unique; recording the same category again
// replaces the existing item.
type InspectionItem struct {
	ID         uuid.UUID         `json:"id"`
	RoomID     uuid.UUID         `json:"room_id"`
	CategoryID string            `json:"category_id"`
	Condition  catalog.Condition `json:"condition"`
	Notes      string            `json:"notes,omitempty"`

	// Photo URLs in attachment order; the binaries live in object
	// storage, the report only references them.
	PhotoURLs []string `json:"photo_urls,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
