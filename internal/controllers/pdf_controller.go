package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dwellcheck/dwellcheck-backend/internal/dtos"
	"github.com/dwellcheck/dwellcheck-backend/internal/middleware"
	"github.com/dwellcheck/dwellcheck-backend/internal/services"
	"github.com/dwellcheck/dwellcheck-backend/internal/storage"
	"github.com/dwellcheck/dwellcheck-backend/internal/utils"
)

// PDFController renders reports to PDF. Its error responses use the
// simpler {"error": "..."} shape the document clients expect, not the
// standard coded envelope.
type PDFController struct {
	pdfService    *services.PDFService
	reportService *services.ReportService
	store         storage.ObjectStorage
	validate      *validator.Validate
}

func NewPDFController(ps *services.PDFService, rs *services.ReportService, store storage.ObjectStorage) *PDFController {
	return &PDFController{
		pdfService:    ps,
		reportService: rs,
		store:         store,
		validate:      validator.New(),
	}
}

func respondPDFError(w http.ResponseWriter, status int, msg string, err error) {
	if err != nil {
		utils.Logger.WithError(err).Error(msg)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(dtos.PDFErrorResponse{Error: msg})
}

// GeneratePDFHandler => POST /generate-pdf
func (c *PDFController) GeneratePDFHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.GeneratePDFRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondPDFError(w, http.StatusBadRequest, "Invalid JSON payload", err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		respondPDFError(w, http.StatusBadRequest, "Both report and property are required", err)
		return
	}

	pdfBytes, err := c.pdfService.Render(r.Context(), req.Report, req.Property, req.CreatorRole, req.CreatorName)
	if err != nil {
		respondPDFError(w, http.StatusInternalServerError, "Failed to generate PDF", err)
		return
	}

	// Authenticated owners get the document archived and its URL
	// recorded on the report. Best effort: an archive failure never
	// fails the download itself.
	c.archivePDF(r, req.Report.ID, pdfBytes)

	filename := fmt.Sprintf("report-%s.pdf", req.Report.ID)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(pdfBytes)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdfBytes)
}

func (c *PDFController) archivePDF(r *http.Request, reportID uuid.UUID, pdfBytes []byte) {
	ctxUserID := r.Context().Value(middleware.ContextKeyUserID)
	if ctxUserID == nil || reportID == uuid.Nil {
		return
	}
	userID, err := uuid.Parse(ctxUserID.(string))
	if err != nil {
		return
	}

	path := storage.ObjectPath(userID, reportID, reportID, "pdf")
	url, err := c.store.Put(r.Context(), pdfBytes, path)
	if err != nil {
		utils.Logger.WithError(err).Warnf("archive pdf for report %s", reportID)
		return
	}
	if err := c.reportService.RecordPDF(r.Context(), userID, reportID, url); err != nil {
		utils.Logger.WithError(err).Warnf("record pdf url for report %s", reportID)
	}
}
