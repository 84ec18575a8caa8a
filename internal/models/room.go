package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/dwellcheck/dwellcheck-backend/internal/catalog"
)

// Walkthrough video limits enforced when a video is attached to a room.
const (
	MaxWalkthroughSeconds = 60
	MaxWalkthroughBytes   = 50 * 1024 * 1024
)

// WalkthroughVideo is an optional short clip attached to a room.
type WalkthroughVideo struct {
	URL             string `json:"url"`
	DurationSeconds int    `json:"duration_seconds"`
	SizeBytes       int64  `json:"size_bytes"`
}

type Room struct {
	ID       uuid.UUID        `json:"id"`
	ReportID uuid.UUID        `json:"report_id"`
	Name     string           `json:"name"`
	RoomType catalog.RoomType `json:"room_type"`

	// Position preserves creation order; rooms are rendered in this
	// order while the items inside each follow the catalog order.
	Position int `json:"position"`

	Video *WalkthroughVideo `json:"video,omitempty"`

	Items []*InspectionItem `json:"items,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
