package services

import (
	"fmt"
	"strings"

	"github.com/dwellcheck/dwellcheck-backend/internal/models"
)

// ValidationResult is the outcome of checking one inspection item.
type ValidationResult struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// ValidateItem applies the one business rule on items: any condition
// other than Good or Not-Applicable requires a non-empty comment after
// trimming whitespace. Pure function, shared by the upsert path and
// the completeness check.
func ValidateItem(it *models.InspectionItem) ValidationResult {
	if !it.Condition.IsValid() {
		return ValidationResult{Reason: fmt.Sprintf("unknown condition %q", it.Condition)}
	}
	if it.Condition.RequiresNotes() && strings.TrimSpace(it.Notes) == "" {
		return ValidationResult{
			Reason: fmt.Sprintf("condition %q requires a comment", it.Condition),
		}
	}
	return ValidationResult{Valid: true}
}

// ReportIssue is one outstanding problem blocking report completion.
type ReportIssue struct {
	RoomID     string `json:"room_id"`
	RoomName   string `json:"room_name"`
	CategoryID string `json:"category_id,omitempty"`
	Reason     string `json:"reason"`
}

// ReportIssues runs the completeness check over a hydrated report:
// every room needs at least one item, and every item must pass
// ValidateItem. An empty result means the report may be completed.
func ReportIssues(rep *models.Report) []ReportIssue {
	var issues []ReportIssue
	for _, rm := range rep.Rooms {
		if len(rm.Items) == 0 {
			issues = append(issues, ReportIssue{
				RoomID:   rm.ID.String(),
				RoomName: rm.Name,
				Reason:   "room has no inspection items",
			})
			continue
		}
		for _, it := range rm.Items {
			if res := ValidateItem(it); !res.Valid {
				issues = append(issues, ReportIssue{
					RoomID:     rm.ID.String(),
					RoomName:   rm.Name,
					CategoryID: it.CategoryID,
					Reason:     res.Reason,
				})
			}
		}
	}
	return issues
}
