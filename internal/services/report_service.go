package services

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dwellcheck/dwellcheck-backend/internal/catalog"
	"github.com/dwellcheck/dwellcheck-backend/internal/models"
	"github.com/dwellcheck/dwellcheck-backend/internal/repositories"
	"github.com/dwellcheck/dwellcheck-backend/internal/utils"
)

// ReportService owns report/room/item creation, the status state
// machine and the cascade delete. Every business invariant the client
// also checks (comment rule, finalized lock) is re-enforced here, in
// front of the repositories.
type ReportService struct {
	propRepo   repositories.PropertyRepository
	reportRepo repositories.ReportRepository
	roomRepo   repositories.RoomRepository
	itemRepo   repositories.InspectionItemRepository
}

func NewReportService(
	propRepo repositories.PropertyRepository,
	reportRepo repositories.ReportRepository,
	roomRepo repositories.RoomRepository,
	itemRepo repositories.InspectionItemRepository,
) *ReportService {
	return &ReportService{
		propRepo:   propRepo,
		reportRepo: reportRepo,
		roomRepo:   roomRepo,
		itemRepo:   itemRepo,
	}
}

/* ------------------------------------------------------------------
   Creation
------------------------------------------------------------------ */

func (s *ReportService) CreateReport(ctx context.Context, ownerID, propertyID uuid.UUID, title string) (*models.Report, error) {
	prop, err := s.propRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, transientErr("Could not load the property", err)
	}
	if prop == nil || !prop.Active || prop.OwnerID != ownerID {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound,
			"Property not found", utils.ErrNotFound)
	}
	if strings.TrimSpace(title) == "" {
		return nil, utils.NewAppError(http.StatusBadRequest, utils.ErrCodeValidation,
			"Report title is required", utils.ErrValidation)
	}

	rep := &models.Report{
		ID:         uuid.New(),
		OwnerID:    ownerID,
		PropertyID: propertyID,
		Title:      strings.TrimSpace(title),
		Status:     models.ReportStatusDraft,
	}
	if err := s.reportRepo.Create(ctx, rep); err != nil {
		utils.Logger.WithError(err).Error("create report")
		return nil, transientErr("Could not create the report", err)
	}
	return rep, nil
}

// AddRoom appends a room with an empty item list. Rooms are added
// incrementally over the life of an inspection session, not all at
// once.
func (s *ReportService) AddRoom(ctx context.Context, ownerID, reportID uuid.UUID, name string, roomType catalog.RoomType) (*models.Room, error) {
	rep, err := s.ownedMutableReport(ctx, ownerID, reportID)
	if err != nil {
		return nil, err
	}
	if !roomType.IsValid() {
		return nil, utils.NewAppError(http.StatusBadRequest, utils.ErrCodeValidation,
			"Unknown room type", utils.ErrValidation)
	}
	if strings.TrimSpace(name) == "" {
		return nil, utils.NewAppError(http.StatusBadRequest, utils.ErrCodeValidation,
			"Room name is required", utils.ErrValidation)
	}

	rm := &models.Room{
		ID:       uuid.New(),
		ReportID: rep.ID,
		Name:     strings.TrimSpace(name),
		RoomType: roomType,
	}
	if err := s.roomRepo.Create(ctx, rm); err != nil {
		utils.Logger.WithError(err).Error("add room")
		return nil, transientErr("Could not add the room", err)
	}
	return rm, nil
}

/* ------------------------------------------------------------------
   Items
------------------------------------------------------------------ */

// ItemInput is one rating to record against a room.
type ItemInput struct {
	CategoryID string
	Condition  catalog.Condition
	Notes      string
	PhotoURLs  []string
}

// RecordInspectionItem upserts the item for (room, category). The
// comment rule is enforced here, not just in the client.
func (s *ReportService) RecordInspectionItem(ctx context.Context, ownerID, roomID uuid.UUID, in ItemInput) (*models.InspectionItem, error) {
	rm, _, err := s.ownedMutableRoom(ctx, ownerID, roomID)
	if err != nil {
		return nil, err
	}

	if _, ok := catalog.CategoryByID(rm.RoomType, in.CategoryID); !ok {
		return nil, utils.NewAppError(http.StatusBadRequest, utils.ErrCodeValidation,
			"Category does not belong to this room type", utils.ErrUnknownCategory)
	}

	// Re-recording a category keeps the existing row's id, so the
	// returned item matches what the upsert actually touched.
	existing, err := s.itemRepo.GetByRoomAndCategory(ctx, roomID, in.CategoryID)
	if err != nil {
		return nil, transientErr("Could not load the existing item", err)
	}

	it := &models.InspectionItem{
		ID:         uuid.New(),
		RoomID:     roomID,
		CategoryID: in.CategoryID,
		Condition:  in.Condition,
		Notes:      strings.TrimSpace(in.Notes),
		PhotoURLs:  in.PhotoURLs,
	}
	if existing != nil {
		it.ID = existing.ID
	}
	if res := ValidateItem(it); !res.Valid {
		return nil, utils.NewAppError(http.StatusBadRequest, utils.ErrCodeValidation,
			res.Reason, utils.ErrValidation)
	}

	if err := s.itemRepo.Upsert(ctx, it); err != nil {
		utils.Logger.WithError(err).Error("record inspection item")
		return nil, transientErr("Could not save the inspection item", err)
	}
	return it, nil
}

// BatchSaveResult reports per-item outcomes of an end-of-room save.
type BatchSaveResult struct {
	Saved  int               `json:"saved"`
	Failed int               `json:"failed"`
	Errors map[string]string `json:"errors,omitempty"` // categoryID -> reason
}

// SaveRoomItems saves each item independently and reports counts
// instead of abandoning the whole room on the first failure.
func (s *ReportService) SaveRoomItems(ctx context.Context, ownerID, roomID uuid.UUID, items []ItemInput) (*BatchSaveResult, error) {
	if _, _, err := s.ownedMutableRoom(ctx, ownerID, roomID); err != nil {
		return nil, err
	}

	res := &BatchSaveResult{Errors: map[string]string{}}
	for _, in := range items {
		if _, err := s.RecordInspectionItem(ctx, ownerID, roomID, in); err != nil {
			res.Failed++
			res.Errors[in.CategoryID] = err.Error()
			continue
		}
		res.Saved++
	}
	if len(res.Errors) == 0 {
		res.Errors = nil
	}
	return res, nil
}

// AttachRoomVideo validates the walkthrough caps before storing the
// reference.
func (s *ReportService) AttachRoomVideo(ctx context.Context, ownerID, roomID uuid.UUID, v models.WalkthroughVideo) error {
	if _, _, err := s.ownedMutableRoom(ctx, ownerID, roomID); err != nil {
		return err
	}
	if v.URL == "" {
		return utils.NewAppError(http.StatusBadRequest, utils.ErrCodeValidation,
			"Video URL is required", utils.ErrValidation)
	}
	if v.DurationSeconds <= 0 || v.DurationSeconds > models.MaxWalkthroughSeconds {
		return utils.NewAppError(http.StatusBadRequest, utils.ErrCodeValidation,
			"Walkthrough videos are capped at 60 seconds", utils.ErrValidation)
	}
	if v.SizeBytes <= 0 || v.SizeBytes > models.MaxWalkthroughBytes {
		return utils.NewAppError(http.StatusBadRequest, utils.ErrCodeValidation,
			"Walkthrough videos are capped at 50MB", utils.ErrValidation)
	}
	if err := s.roomRepo.SetVideo(ctx, roomID, &v); err != nil {
		utils.Logger.WithError(err).Errorf("attach video to room %s", roomID)
		return transientErr("Could not save the walkthrough video", err)
	}
	return nil
}

/* ------------------------------------------------------------------
   Status machine
------------------------------------------------------------------ */

// UpdateReportStatus moves the report forward through
// draft -> completed -> finalized. Completion additionally requires
// the completeness check to pass; finalizing stamps the timestamp.
func (s *ReportService) UpdateReportStatus(ctx context.Context, ownerID, reportID uuid.UUID, target models.ReportStatus) (*models.Report, error) {
	rep, err := s.ownedReport(ctx, ownerID, reportID)
	if err != nil {
		return nil, err
	}
	if !target.IsValid() {
		return nil, utils.NewAppError(http.StatusBadRequest, utils.ErrCodeValidation,
			"Unknown report status", utils.ErrValidation)
	}
	if !rep.Status.CanTransitionTo(target) {
		return nil, utils.NewAppError(http.StatusConflict, utils.ErrCodeInvalidTransition,
			"Report status can only move draft → completed → finalized", utils.ErrInvalidTransition)
	}

	if target == models.ReportStatusCompleted {
		roomCount, err := s.roomRepo.CountByReportID(ctx, reportID)
		if err != nil {
			return nil, transientErr("Could not count the report's rooms", err)
		}
		if roomCount == 0 {
			return nil, utils.NewAppError(http.StatusBadRequest, utils.ErrCodeValidation,
				"Report needs at least one room before it can be completed", utils.ErrValidation)
		}
		hydrated, err := s.hydrate(ctx, rep)
		if err != nil {
			return nil, err
		}
		if issues := ReportIssues(hydrated); len(issues) > 0 {
			return nil, &utils.AppError{
				StatusCode: http.StatusBadRequest,
				Code:       utils.ErrCodeValidation,
				Message:    "Report has outstanding issues and cannot be completed",
				Err:        utils.ErrValidation,
			}
		}
	}

	var finalizedAt *time.Time
	if target == models.ReportStatusFinalized {
		now := time.Now().UTC()
		finalizedAt = &now
	}

	if err := s.reportRepo.UpdateStatus(ctx, reportID, target, finalizedAt); err != nil {
		utils.Logger.WithError(err).Errorf("update report %s status to %s", reportID, target)
		return nil, transientErr("Could not update the report status", err)
	}
	rep.Status = target
	rep.FinalizedAt = finalizedAt
	return rep, nil
}

// MarkReportPaid flips the payment axis. Independent of the edit
// lifecycle: a finalized report can still be marked paid.
func (s *ReportService) MarkReportPaid(ctx context.Context, ownerID, reportID uuid.UUID) (*models.Report, error) {
	rep, err := s.ownedReport(ctx, ownerID, reportID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	if err := s.reportRepo.SetPaid(ctx, reportID, now); err != nil {
		return nil, transientErr("Could not mark the report paid", err)
	}
	rep.Paid = true
	rep.PaidAt = &now
	return rep, nil
}

/* ------------------------------------------------------------------
   Deletion
------------------------------------------------------------------ */

// DeleteReport cascades items → rooms → report. Finalized reports are
// immutable and cannot be deleted.
func (s *ReportService) DeleteReport(ctx context.Context, ownerID, reportID uuid.UUID) error {
	rep, err := s.ownedReport(ctx, ownerID, reportID)
	if err != nil {
		return err
	}
	if rep.IsLocked() {
		return lockedErr()
	}
	if err := s.reportRepo.DeleteWithChildren(ctx, reportID); err != nil {
		utils.Logger.WithError(err).Errorf("delete report %s", reportID)
		return transientErr("Could not delete the report", err)
	}
	return nil
}

// RecordPDF stores the URL of the latest rendered document on the
// report. Allowed on finalized reports: rendering does not mutate
// content.
func (s *ReportService) RecordPDF(ctx context.Context, ownerID, reportID uuid.UUID, url string) error {
	if _, err := s.ownedReport(ctx, ownerID, reportID); err != nil {
		return err
	}
	if err := s.reportRepo.SetPDFURL(ctx, reportID, url); err != nil {
		utils.Logger.WithError(err).Errorf("record pdf url for report %s", reportID)
		return transientErr("Could not record the PDF location", err)
	}
	return nil
}

/* ------------------------------------------------------------------
   Reads
------------------------------------------------------------------ */

func (s *ReportService) GetReport(ctx context.Context, ownerID, reportID uuid.UUID) (*models.Report, error) {
	rep, err := s.ownedReport(ctx, ownerID, reportID)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, rep)
}

func (s *ReportService) ListReports(ctx context.Context, ownerID uuid.UUID) ([]*models.Report, error) {
	reps, err := s.reportRepo.ListByOwnerID(ctx, ownerID)
	if err != nil {
		utils.Logger.WithError(err).Error("list reports")
		return nil, transientErr("Could not load reports", err)
	}
	return reps, nil
}

// GetPublicReport is the unauthenticated QR-code target: it serves the
// hydrated report and its property scoped by report id only.
func (s *ReportService) GetPublicReport(ctx context.Context, reportID uuid.UUID) (*models.Report, *models.Property, error) {
	rep, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, nil, transientErr("Could not load the report", err)
	}
	if rep == nil {
		return nil, nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound,
			"Report not found", utils.ErrNotFound)
	}
	hydrated, err := s.hydrate(ctx, rep)
	if err != nil {
		return nil, nil, err
	}
	prop, err := s.propRepo.GetByID(ctx, rep.PropertyID)
	if err != nil || prop == nil {
		return nil, nil, transientErr("Could not load the report's property", err)
	}
	return hydrated, prop, nil
}

/* ------------------------------------------------------------------
   Helpers
------------------------------------------------------------------ */

// hydrate loads rooms and items under a report. Items come back in
// the fixed catalog order for their room's type, so downstream
// renderers are deterministic regardless of entry sequence.
func (s *ReportService) hydrate(ctx context.Context, rep *models.Report) (*models.Report, error) {
	rooms, err := s.roomRepo.ListByReportID(ctx, rep.ID)
	if err != nil {
		return nil, transientErr("Could not load the report's rooms", err)
	}
	for _, rm := range rooms {
		items, err := s.itemRepo.ListByRoomID(ctx, rm.ID)
		if err != nil {
			return nil, transientErr("Could not load a room's items", err)
		}
		sort.SliceStable(items, func(i, j int) bool {
			return catalog.CategoryPosition(rm.RoomType, items[i].CategoryID) <
				catalog.CategoryPosition(rm.RoomType, items[j].CategoryID)
		})
		rm.Items = items
	}
	rep.Rooms = rooms
	return rep, nil
}

func (s *ReportService) ownedReport(ctx context.Context, ownerID, reportID uuid.UUID) (*models.Report, error) {
	rep, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, transientErr("Could not load the report", err)
	}
	if rep == nil {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound,
			"Report not found", utils.ErrNotFound)
	}
	if rep.OwnerID != ownerID {
		return nil, utils.NewAppError(http.StatusForbidden, utils.ErrCodeForbidden,
			"Report belongs to another user", utils.ErrForbidden)
	}
	return rep, nil
}

func (s *ReportService) ownedMutableReport(ctx context.Context, ownerID, reportID uuid.UUID) (*models.Report, error) {
	rep, err := s.ownedReport(ctx, ownerID, reportID)
	if err != nil {
		return nil, err
	}
	if rep.IsLocked() {
		return nil, lockedErr()
	}
	return rep, nil
}

func (s *ReportService) ownedMutableRoom(ctx context.Context, ownerID, roomID uuid.UUID) (*models.Room, *models.Report, error) {
	rm, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return nil, nil, transientErr("Could not load the room", err)
	}
	if rm == nil {
		return nil, nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound,
			"Room not found", utils.ErrNotFound)
	}
	rep, err := s.ownedMutableReport(ctx, ownerID, rm.ReportID)
	if err != nil {
		return nil, nil, err
	}
	return rm, rep, nil
}

func lockedErr() *utils.AppError {
	return utils.NewAppError(http.StatusForbidden, utils.ErrCodeReportLocked,
		"Report is finalized and can no longer be changed", utils.ErrReportLocked)
}

func transientErr(msg string, err error) *utils.AppError {
	if err == nil {
		err = utils.ErrTransientIO
	} else {
		err = fmt.Errorf("%w: %w", utils.ErrTransientIO, err)
	}
	return utils.NewAppError(http.StatusServiceUnavailable, utils.ErrCodeTransientIO, msg, err)
}
