package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dwellcheck/dwellcheck-backend/internal/catalog"
	"github.com/dwellcheck/dwellcheck-backend/internal/models"
	"github.com/dwellcheck/dwellcheck-backend/internal/repositories"
	"github.com/dwellcheck/dwellcheck-backend/internal/utils"
)

type reportFixture struct {
	store   *repositories.MemoryStore
	svc     *ReportService
	ownerID uuid.UUID
	propID  uuid.UUID
}

func newReportFixture(t *testing.T) *reportFixture {
	t.Helper()

	store := repositories.NewMemoryStore()
	svc := NewReportService(store.Properties(), store.Reports(), store.Rooms(), store.Items())

	ownerID := uuid.New()
	prop := &models.Property{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		PropertyName: "Demo House",
		PropertyType: models.PropertyHouse,
		StreetNumber: "12",
		StreetName:   "Acacia Road",
		Suburb:       "Parkhurst",
		City:         "Johannesburg",
		Province:     "Gauteng",
		PostalCode:   "2193",
		GPS: models.GPSFix{
			Latitude:   -26.1448,
			Longitude:  28.0436,
			AccuracyM:  utils.Ptr(8.0),
			CapturedAt: time.Now().UTC(),
		},
		Active: true,
	}
	require.NoError(t, store.Properties().Create(context.Background(), prop))

	return &reportFixture{store: store, svc: svc, ownerID: ownerID, propID: prop.ID}
}

func requireAppErrCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *utils.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	require.Equal(t, code, appErr.Code)
}

func TestReportLifecycleEndToEnd(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()

	rep, err := f.svc.CreateReport(ctx, f.ownerID, f.propID, "Demo - 2024-01-01")
	require.NoError(t, err)
	require.Equal(t, models.ReportStatusDraft, rep.Status)
	require.False(t, rep.Paid)

	rm, err := f.svc.AddRoom(ctx, f.ownerID, rep.ID, "Main Kitchen", catalog.RoomKitchen)
	require.NoError(t, err)
	require.Equal(t, 0, rm.Position)

	_, err = f.svc.RecordInspectionItem(ctx, f.ownerID, rm.ID, ItemInput{
		CategoryID: "sink",
		Condition:  catalog.ConditionPoor,
		Notes:      "Leaking tap",
	})
	require.NoError(t, err)

	rep, err = f.svc.UpdateReportStatus(ctx, f.ownerID, rep.ID, models.ReportStatusCompleted)
	require.NoError(t, err)
	require.Equal(t, models.ReportStatusCompleted, rep.Status)

	rep, err = f.svc.UpdateReportStatus(ctx, f.ownerID, rep.ID, models.ReportStatusFinalized)
	require.NoError(t, err)
	require.Equal(t, models.ReportStatusFinalized, rep.Status)
	require.NotNil(t, rep.FinalizedAt)

	// Finalized reports refuse further item mutations.
	_, err = f.svc.RecordInspectionItem(ctx, f.ownerID, rm.ID, ItemInput{
		CategoryID: "stove",
		Condition:  catalog.ConditionGood,
	})
	requireAppErrCode(t, err, utils.ErrCodeReportLocked)
}

func TestCreateReportRequiresOwnedActiveProperty(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()

	// Unknown property.
	_, err := f.svc.CreateReport(ctx, f.ownerID, uuid.New(), "Nope")
	requireAppErrCode(t, err, utils.ErrCodeNotFound)

	// Someone else's property reads as not-found, not forbidden.
	_, err = f.svc.CreateReport(ctx, uuid.New(), f.propID, "Nope")
	requireAppErrCode(t, err, utils.ErrCodeNotFound)

	// Blank title.
	_, err = f.svc.CreateReport(ctx, f.ownerID, f.propID, "   ")
	requireAppErrCode(t, err, utils.ErrCodeValidation)
}

func TestStatusTransitionsAreForwardOnly(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()

	rep, err := f.svc.CreateReport(ctx, f.ownerID, f.propID, "Transitions")
	require.NoError(t, err)

	// Draft cannot jump straight to finalized.
	_, err = f.svc.UpdateReportStatus(ctx, f.ownerID, rep.ID, models.ReportStatusFinalized)
	requireAppErrCode(t, err, utils.ErrCodeInvalidTransition)

	rm, err := f.svc.AddRoom(ctx, f.ownerID, rep.ID, "Lounge", catalog.RoomStandard)
	require.NoError(t, err)
	_, err = f.svc.RecordInspectionItem(ctx, f.ownerID, rm.ID, ItemInput{
		CategoryID: "walls", Condition: catalog.ConditionGood,
	})
	require.NoError(t, err)

	_, err = f.svc.UpdateReportStatus(ctx, f.ownerID, rep.ID, models.ReportStatusCompleted)
	require.NoError(t, err)

	// No going back to draft.
	_, err = f.svc.UpdateReportStatus(ctx, f.ownerID, rep.ID, models.ReportStatusDraft)
	requireAppErrCode(t, err, utils.ErrCodeInvalidTransition)

	_, err = f.svc.UpdateReportStatus(ctx, f.ownerID, rep.ID, models.ReportStatusFinalized)
	require.NoError(t, err)

	// Finalized is terminal.
	_, err = f.svc.UpdateReportStatus(ctx, f.ownerID, rep.ID, models.ReportStatusCompleted)
	requireAppErrCode(t, err, utils.ErrCodeInvalidTransition)
}

func TestCompletionBlockedByEmptyRoom(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()

	rep, err := f.svc.CreateReport(ctx, f.ownerID, f.propID, "Incomplete")
	require.NoError(t, err)
	_, err = f.svc.AddRoom(ctx, f.ownerID, rep.ID, "Empty Room", catalog.RoomStandard)
	require.NoError(t, err)

	_, err = f.svc.UpdateReportStatus(ctx, f.ownerID, rep.ID, models.ReportStatusCompleted)
	requireAppErrCode(t, err, utils.ErrCodeValidation)
}

func TestCompletionRequiresARoom(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()

	rep, err := f.svc.CreateReport(ctx, f.ownerID, f.propID, "Roomless")
	require.NoError(t, err)

	_, err = f.svc.UpdateReportStatus(ctx, f.ownerID, rep.ID, models.ReportStatusCompleted)
	requireAppErrCode(t, err, utils.ErrCodeValidation)
}

func TestRecordItemEnforcesCatalogAndCommentRule(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()

	rep, err := f.svc.CreateReport(ctx, f.ownerID, f.propID, "Rules")
	require.NoError(t, err)
	rm, err := f.svc.AddRoom(ctx, f.ownerID, rep.ID, "Bathroom", catalog.RoomBathroom)
	require.NoError(t, err)

	// "stove" is a kitchen category, not a bathroom one.
	_, err = f.svc.RecordInspectionItem(ctx, f.ownerID, rm.ID, ItemInput{
		CategoryID: "stove", Condition: catalog.ConditionGood,
	})
	requireAppErrCode(t, err, utils.ErrCodeValidation)

	// Poor without a comment is rejected; whitespace does not count.
	_, err = f.svc.RecordInspectionItem(ctx, f.ownerID, rm.ID, ItemInput{
		CategoryID: "toilet", Condition: catalog.ConditionPoor, Notes: "   ",
	})
	requireAppErrCode(t, err, utils.ErrCodeValidation)

	it, err := f.svc.RecordInspectionItem(ctx, f.ownerID, rm.ID, ItemInput{
		CategoryID: "toilet", Condition: catalog.ConditionPoor, Notes: "  Cracked cistern  ",
	})
	require.NoError(t, err)
	require.Equal(t, "Cracked cistern", it.Notes)
}

func TestRecordItemUpsertsPerCategory(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()

	rep, err := f.svc.CreateReport(ctx, f.ownerID, f.propID, "Upserts")
	require.NoError(t, err)
	rm, err := f.svc.AddRoom(ctx, f.ownerID, rep.ID, "Kitchen", catalog.RoomKitchen)
	require.NoError(t, err)

	_, err = f.svc.RecordInspectionItem(ctx, f.ownerID, rm.ID, ItemInput{
		CategoryID: "sink", Condition: catalog.ConditionPoor, Notes: "Leaking tap",
	})
	require.NoError(t, err)

	_, err = f.svc.RecordInspectionItem(ctx, f.ownerID, rm.ID, ItemInput{
		CategoryID: "sink", Condition: catalog.ConditionGood,
	})
	require.NoError(t, err)

	items, err := f.store.Items().ListByRoomID(ctx, rm.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, catalog.ConditionGood, items[0].Condition)
}

func TestRecordItemKeepsRowIdentityAcrossRerecords(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()

	rep, err := f.svc.CreateReport(ctx, f.ownerID, f.propID, "Identity")
	require.NoError(t, err)
	rm, err := f.svc.AddRoom(ctx, f.ownerID, rep.ID, "Kitchen", catalog.RoomKitchen)
	require.NoError(t, err)

	first, err := f.svc.RecordInspectionItem(ctx, f.ownerID, rm.ID, ItemInput{
		CategoryID: "sink", Condition: catalog.ConditionPoor, Notes: "Leaking tap",
	})
	require.NoError(t, err)

	second, err := f.svc.RecordInspectionItem(ctx, f.ownerID, rm.ID, ItemInput{
		CategoryID: "sink", Condition: catalog.ConditionGood,
	})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
}

func TestSaveRoomItemsReportsPerItemOutcomes(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()

	rep, err := f.svc.CreateReport(ctx, f.ownerID, f.propID, "Batch")
	require.NoError(t, err)
	rm, err := f.svc.AddRoom(ctx, f.ownerID, rep.ID, "Kitchen", catalog.RoomKitchen)
	require.NoError(t, err)

	// "sink" is missing its comment and "toilet" is not a kitchen
	// category; the other two should land.
	res, err := f.svc.SaveRoomItems(ctx, f.ownerID, rm.ID, []ItemInput{
		{CategoryID: "walls", Condition: catalog.ConditionGood},
		{CategoryID: "sink", Condition: catalog.ConditionPoor},
		{CategoryID: "toilet", Condition: catalog.ConditionGood},
		{CategoryID: "stove", Condition: catalog.ConditionFair, Notes: "One plate dead"},
	})
	require.NoError(t, err)
	require.Equal(t, 2, res.Saved)
	require.Equal(t, 2, res.Failed)
	require.Contains(t, res.Errors, "sink")
	require.Contains(t, res.Errors, "toilet")

	items, err := f.store.Items().ListByRoomID(ctx, rm.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
}

func TestAttachRoomVideoCaps(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()

	rep, err := f.svc.CreateReport(ctx, f.ownerID, f.propID, "Video")
	require.NoError(t, err)
	rm, err := f.svc.AddRoom(ctx, f.ownerID, rep.ID, "Lounge", catalog.RoomStandard)
	require.NoError(t, err)

	tooLong := models.WalkthroughVideo{URL: "https://cdn.example.com/v.mp4", DurationSeconds: 61, SizeBytes: 1024}
	err = f.svc.AttachRoomVideo(ctx, f.ownerID, rm.ID, tooLong)
	requireAppErrCode(t, err, utils.ErrCodeValidation)

	tooBig := models.WalkthroughVideo{URL: "https://cdn.example.com/v.mp4", DurationSeconds: 30, SizeBytes: models.MaxWalkthroughBytes + 1}
	err = f.svc.AttachRoomVideo(ctx, f.ownerID, rm.ID, tooBig)
	requireAppErrCode(t, err, utils.ErrCodeValidation)

	ok := models.WalkthroughVideo{URL: "https://cdn.example.com/v.mp4", DurationSeconds: 58, SizeBytes: 48 * 1024 * 1024}
	require.NoError(t, f.svc.AttachRoomVideo(ctx, f.ownerID, rm.ID, ok))

	got, err := f.store.Rooms().GetByID(ctx, rm.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Video)
	require.Equal(t, 58, got.Video.DurationSeconds)
}

func TestPaidAxisIsIndependentOfStatus(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()

	rep, err := f.svc.CreateReport(ctx, f.ownerID, f.propID, "Payment")
	require.NoError(t, err)
	rm, err := f.svc.AddRoom(ctx, f.ownerID, rep.ID, "Lounge", catalog.RoomStandard)
	require.NoError(t, err)
	_, err = f.svc.RecordInspectionItem(ctx, f.ownerID, rm.ID, ItemInput{
		CategoryID: "walls", Condition: catalog.ConditionGood,
	})
	require.NoError(t, err)

	_, err = f.svc.UpdateReportStatus(ctx, f.ownerID, rep.ID, models.ReportStatusCompleted)
	require.NoError(t, err)
	_, err = f.svc.UpdateReportStatus(ctx, f.ownerID, rep.ID, models.ReportStatusFinalized)
	require.NoError(t, err)

	// The content lock does not block payment.
	paid, err := f.svc.MarkReportPaid(ctx, f.ownerID, rep.ID)
	require.NoError(t, err)
	require.True(t, paid.Paid)
	require.NotNil(t, paid.PaidAt)
	require.Equal(t, models.ReportStatusFinalized, paid.Status)
}

func TestDeleteReportCascades(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()

	rep, err := f.svc.CreateReport(ctx, f.ownerID, f.propID, "Doomed")
	require.NoError(t, err)
	rm, err := f.svc.AddRoom(ctx, f.ownerID, rep.ID, "Kitchen", catalog.RoomKitchen)
	require.NoError(t, err)
	_, err = f.svc.RecordInspectionItem(ctx, f.ownerID, rm.ID, ItemInput{
		CategoryID: "sink", Condition: catalog.ConditionGood,
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteReport(ctx, f.ownerID, rep.ID))

	gone, err := f.store.Reports().GetByID(ctx, rep.ID)
	require.NoError(t, err)
	require.Nil(t, gone)

	room, err := f.store.Rooms().GetByID(ctx, rm.ID)
	require.NoError(t, err)
	require.Nil(t, room)

	items, err := f.store.Items().ListByRoomID(ctx, rm.ID)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestDeleteFinalizedReportRefused(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()

	rep, err := f.svc.CreateReport(ctx, f.ownerID, f.propID, "Locked")
	require.NoError(t, err)
	rm, err := f.svc.AddRoom(ctx, f.ownerID, rep.ID, "Lounge", catalog.RoomStandard)
	require.NoError(t, err)
	_, err = f.svc.RecordInspectionItem(ctx, f.ownerID, rm.ID, ItemInput{
		CategoryID: "walls", Condition: catalog.ConditionGood,
	})
	require.NoError(t, err)
	_, err = f.svc.UpdateReportStatus(ctx, f.ownerID, rep.ID, models.ReportStatusCompleted)
	require.NoError(t, err)
	_, err = f.svc.UpdateReportStatus(ctx, f.ownerID, rep.ID, models.ReportStatusFinalized)
	require.NoError(t, err)

	err = f.svc.DeleteReport(ctx, f.ownerID, rep.ID)
	requireAppErrCode(t, err, utils.ErrCodeReportLocked)
}

func TestReportOwnershipIsolation(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()

	rep, err := f.svc.CreateReport(ctx, f.ownerID, f.propID, "Private")
	require.NoError(t, err)

	stranger := uuid.New()
	_, err = f.svc.GetReport(ctx, stranger, rep.ID)
	requireAppErrCode(t, err, utils.ErrCodeForbidden)

	err = f.svc.DeleteReport(ctx, stranger, rep.ID)
	requireAppErrCode(t, err, utils.ErrCodeForbidden)
}

func TestHydratedItemsFollowCatalogOrder(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()

	rep, err := f.svc.CreateReport(ctx, f.ownerID, f.propID, "Ordering")
	require.NoError(t, err)
	rm, err := f.svc.AddRoom(ctx, f.ownerID, rep.ID, "Kitchen", catalog.RoomKitchen)
	require.NoError(t, err)

	// Record out of catalog order.
	for _, id := range []string{"stove", "walls", "sink", "ceiling"} {
		_, err = f.svc.RecordInspectionItem(ctx, f.ownerID, rm.ID, ItemInput{
			CategoryID: id, Condition: catalog.ConditionGood,
		})
		require.NoError(t, err)
	}

	got, err := f.svc.GetReport(ctx, f.ownerID, rep.ID)
	require.NoError(t, err)
	require.Len(t, got.Rooms, 1)

	var ids []string
	for _, it := range got.Rooms[0].Items {
		ids = append(ids, it.CategoryID)
	}
	require.Equal(t, []string{"walls", "ceiling", "sink", "stove"}, ids)
}

func TestGetPublicReportNeedsNoOwner(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()

	rep, err := f.svc.CreateReport(ctx, f.ownerID, f.propID, "Public")
	require.NoError(t, err)

	gotRep, gotProp, err := f.svc.GetPublicReport(ctx, rep.ID)
	require.NoError(t, err)
	require.Equal(t, rep.ID, gotRep.ID)
	require.Equal(t, f.propID, gotProp.ID)

	_, _, err = f.svc.GetPublicReport(ctx, uuid.New())
	requireAppErrCode(t, err, utils.ErrCodeNotFound)
}

func TestTransientErrorsCarrySentinel(t *testing.T) {
	err := transientErr("storage offline", errors.New("dial tcp: connection refused"))
	require.ErrorIs(t, err, utils.ErrTransientIO)
	requireAppErrCode(t, err, utils.ErrCodeTransientIO)

	require.ErrorIs(t, transientErr("gone", nil), utils.ErrTransientIO)
}
