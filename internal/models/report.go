package models

import (
	"time"

	"github.com/google/uuid"
)

// ReportStatus is the edit-lifecycle state of a report. Payment is a
// separate axis (Paid/PaidAt) and never appears here.
type ReportStatus string

const (
	// ReportStatusDraft indicates the inspection is still in progress;
	// rooms and items may be added freely.
	ReportStatusDraft ReportStatus = "draft"

	// ReportStatusCompleted indicates the user finished inspecting all
	// rooms and explicitly confirmed. Content may still be corrected.
	ReportStatusCompleted ReportStatus = "completed"

	// ReportStatusFinalized is terminal. Every mutation of the report,
	// its rooms or items fails with a report-locked error from then on.
	ReportStatusFinalized ReportStatus = "finalized"
)

func (s ReportStatus) String() string { return string(s) }

func (s ReportStatus) IsValid() bool {
	switch s {
	case ReportStatusDraft, ReportStatusCompleted, ReportStatusFinalized:
		return true
	}
	return false
}

// CanTransitionTo checks the forward-only state machine:
// draft -> completed -> finalized. Nothing moves backwards and
// finalized is terminal.
func (s ReportStatus) CanTransitionTo(target ReportStatus) bool {
	switch s {
	case ReportStatusDraft:
		return target == ReportStatusCompleted
	case ReportStatusCompleted:
		return target == ReportStatusFinalized
	}
	return false
}

type Report struct {
	ID         uuid.UUID    `json:"id"`
	OwnerID    uuid.UUID    `json:"owner_id"`
	PropertyID uuid.UUID    `json:"property_id"`
	Title      string       `json:"title"`
	Status     ReportStatus `json:"status"`

	// Payment axis, independent of Status.
	Paid   bool       `json:"paid"`
	PaidAt *time.Time `json:"paid_at,omitempty"`

	PDFURL      string     `json:"pdf_url,omitempty"`
	FinalizedAt *time.Time `json:"finalized_at,omitempty"`

	// Rooms in creation order; populated on hydrated reads.
	Rooms []*Room `json:"rooms,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsLocked reports whether the report refuses all further mutation.
func (r *Report) IsLocked() bool {
	return r.Status == ReportStatusFinalized
}
