package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dwellcheck/dwellcheck-backend/internal/catalog"
	"github.com/dwellcheck/dwellcheck-backend/internal/models"
)

func item(cond catalog.Condition, notes string) *models.InspectionItem {
	return &models.InspectionItem{
		ID:         uuid.New(),
		RoomID:     uuid.New(),
		CategoryID: "walls",
		Condition:  cond,
		Notes:      notes,
	}
}

func TestValidateItemCommentRule(t *testing.T) {
	// Good and Not-Applicable stand alone.
	require.True(t, ValidateItem(item(catalog.ConditionGood, "")).Valid)
	require.True(t, ValidateItem(item(catalog.ConditionNotApplicable, "")).Valid)

	// Everything else needs an explanation.
	for _, cond := range []catalog.Condition{
		catalog.ConditionFair, catalog.ConditionPoor, catalog.ConditionUrgentRepair,
	} {
		res := ValidateItem(item(cond, ""))
		require.False(t, res.Valid, "condition %s with no notes", cond)
		require.Contains(t, res.Reason, "requires a comment")

		require.True(t, ValidateItem(item(cond, "Leaking tap")).Valid)
	}
}

func TestValidateItemWhitespaceNotesDoNotCount(t *testing.T) {
	res := ValidateItem(item(catalog.ConditionPoor, "   \t\n "))
	require.False(t, res.Valid)
}

func TestValidateItemUnknownCondition(t *testing.T) {
	res := ValidateItem(item(catalog.Condition("terrible"), "notes"))
	require.False(t, res.Valid)
	require.Contains(t, res.Reason, "unknown condition")
}

func TestReportIssuesFlagsEmptyRooms(t *testing.T) {
	rep := &models.Report{
		ID: uuid.New(),
		Rooms: []*models.Room{
			{ID: uuid.New(), Name: "Main Kitchen", RoomType: catalog.RoomKitchen},
		},
	}

	issues := ReportIssues(rep)
	require.Len(t, issues, 1)
	require.Equal(t, "Main Kitchen", issues[0].RoomName)
	require.Contains(t, issues[0].Reason, "no inspection items")
}

func TestReportIssuesFlagsInvalidItems(t *testing.T) {
	rm := &models.Room{ID: uuid.New(), Name: "Bathroom", RoomType: catalog.RoomBathroom}
	rm.Items = []*models.InspectionItem{
		{ID: uuid.New(), RoomID: rm.ID, CategoryID: "toilet", Condition: catalog.ConditionGood},
		{ID: uuid.New(), RoomID: rm.ID, CategoryID: "tiling", Condition: catalog.ConditionPoor, Notes: " "},
	}
	rep := &models.Report{ID: uuid.New(), Rooms: []*models.Room{rm}}

	issues := ReportIssues(rep)
	require.Len(t, issues, 1)
	require.Equal(t, "tiling", issues[0].CategoryID)
}

func TestReportIssuesEmptyWhenComplete(t *testing.T) {
	rm := &models.Room{ID: uuid.New(), Name: "Lounge", RoomType: catalog.RoomStandard}
	rm.Items = []*models.InspectionItem{
		{ID: uuid.New(), RoomID: rm.ID, CategoryID: "walls", Condition: catalog.ConditionGood},
		{ID: uuid.New(), RoomID: rm.ID, CategoryID: "flooring", Condition: catalog.ConditionFair, Notes: "Worn carpet"},
	}
	rep := &models.Report{ID: uuid.New(), Rooms: []*models.Room{rm}}

	require.Empty(t, ReportIssues(rep))
}
