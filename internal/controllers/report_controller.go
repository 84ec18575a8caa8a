package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/dwellcheck/dwellcheck-backend/internal/catalog"
	"github.com/dwellcheck/dwellcheck-backend/internal/dtos"
	"github.com/dwellcheck/dwellcheck-backend/internal/models"
	"github.com/dwellcheck/dwellcheck-backend/internal/services"
	"github.com/dwellcheck/dwellcheck-backend/internal/utils"
)

type ReportController struct {
	reportService *services.ReportService
	validate      *validator.Validate
}

func NewReportController(rs *services.ReportService) *ReportController {
	return &ReportController{
		reportService: rs,
		validate:      validator.New(),
	}
}

// ----------------------------------------------------------------
// POST /api/v1/reports
// ----------------------------------------------------------------
func (c *ReportController) CreateReportHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req dtos.CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	rep, err := c.reportService.CreateReport(r.Context(), ownerID, req.PropertyID, req.Title)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, rep)
}

// ----------------------------------------------------------------
// GET /api/v1/reports
// ----------------------------------------------------------------
func (c *ReportController) ListReportsHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(w, r)
	if !ok {
		return
	}

	reps, err := c.reportService.ListReports(r.Context(), ownerID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, reps)
}

// ----------------------------------------------------------------
// GET /api/v1/reports/{id}
// ----------------------------------------------------------------
func (c *ReportController) GetReportHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(w, r)
	if !ok {
		return
	}
	reportID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	rep, err := c.reportService.GetReport(r.Context(), ownerID, reportID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, rep)
}

// ----------------------------------------------------------------
// DELETE /api/v1/reports/{id}
// ----------------------------------------------------------------
func (c *ReportController) DeleteReportHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(w, r)
	if !ok {
		return
	}
	reportID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := c.reportService.DeleteReport(r.Context(), ownerID, reportID); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ----------------------------------------------------------------
// POST /api/v1/reports/{id}/rooms
// ----------------------------------------------------------------
func (c *ReportController) AddRoomHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(w, r)
	if !ok {
		return
	}
	reportID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dtos.AddRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	roomType, err := catalog.ParseRoomType(req.RoomType)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, err.Error(), nil, err)
		return
	}

	rm, svcErr := c.reportService.AddRoom(r.Context(), ownerID, reportID, req.Name, roomType)
	if svcErr != nil {
		utils.HandleAppError(w, svcErr)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, rm)
}

// ----------------------------------------------------------------
// PUT /api/v1/rooms/{id}/items/{categoryId}
// ----------------------------------------------------------------
func (c *ReportController) RecordItemHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(w, r)
	if !ok {
		return
	}
	roomID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	categoryID := mux.Vars(r)["categoryId"]

	var req dtos.RecordItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	cond, err := catalog.ParseCondition(req.Condition)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, err.Error(), nil, err)
		return
	}

	it, svcErr := c.reportService.RecordInspectionItem(r.Context(), ownerID, roomID, services.ItemInput{
		CategoryID: categoryID,
		Condition:  cond,
		Notes:      req.Notes,
		PhotoURLs:  req.PhotoURLs,
	})
	if svcErr != nil {
		utils.HandleAppError(w, svcErr)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, it)
}

// ----------------------------------------------------------------
// POST /api/v1/rooms/{id}/items
// ----------------------------------------------------------------
func (c *ReportController) SaveRoomItemsHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(w, r)
	if !ok {
		return
	}
	roomID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dtos.SaveRoomItemsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	inputs := make([]services.ItemInput, 0, len(req.Items))
	for _, e := range req.Items {
		// Condition strings are checked per-item by the service so one
		// bad rating does not reject the rest of the room.
		inputs = append(inputs, services.ItemInput{
			CategoryID: e.CategoryID,
			Condition:  catalog.Condition(e.Condition),
			Notes:      e.Notes,
			PhotoURLs:  e.PhotoURLs,
		})
	}

	res, err := c.reportService.SaveRoomItems(r.Context(), ownerID, roomID, inputs)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, res)
}

// ----------------------------------------------------------------
// POST /api/v1/rooms/{id}/video
// ----------------------------------------------------------------
func (c *ReportController) AttachVideoHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(w, r)
	if !ok {
		return
	}
	roomID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dtos.AttachVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	video := models.WalkthroughVideo{
		URL:             req.URL,
		DurationSeconds: req.DurationSeconds,
		SizeBytes:       req.SizeBytes,
	}
	if err := c.reportService.AttachRoomVideo(r.Context(), ownerID, roomID, video); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, video)
}

// ----------------------------------------------------------------
// PUT /api/v1/reports/{id}/status
// ----------------------------------------------------------------
func (c *ReportController) UpdateStatusHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(w, r)
	if !ok {
		return
	}
	reportID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dtos.UpdateReportStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	rep, err := c.reportService.UpdateReportStatus(r.Context(), ownerID, reportID, models.ReportStatus(req.Status))
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, rep)
}

// ----------------------------------------------------------------
// POST /api/v1/reports/{id}/paid
// ----------------------------------------------------------------
func (c *ReportController) MarkPaidHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(w, r)
	if !ok {
		return
	}
	reportID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	rep, err := c.reportService.MarkReportPaid(r.Context(), ownerID, reportID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, rep)
}
