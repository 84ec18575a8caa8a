package controllers

import (
	"net/http"

	"github.com/dwellcheck/dwellcheck-backend/internal/catalog"
	"github.com/dwellcheck/dwellcheck-backend/internal/dtos"
	"github.com/dwellcheck/dwellcheck-backend/internal/services"
	"github.com/dwellcheck/dwellcheck-backend/internal/utils"
)

// PublicReportController serves the QR-code landing data without
// authentication. Possession of the report id is the access token.
type PublicReportController struct {
	reportService *services.ReportService
}

func NewPublicReportController(rs *services.ReportService) *PublicReportController {
	return &PublicReportController{reportService: rs}
}

// GetPublicReportHandler => GET /public/reports/{id}
func (c *PublicReportController) GetPublicReportHandler(w http.ResponseWriter, r *http.Request) {
	reportID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	rep, prop, err := c.reportService.GetPublicReport(r.Context(), reportID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	legend := make([]dtos.ConditionEntry, 0, len(catalog.AllConditions()))
	for _, cond := range catalog.AllConditions() {
		legend = append(legend, dtos.ConditionEntry{
			Condition: string(cond),
			Colour:    catalog.ColourFor(cond).Hex(),
		})
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.PublicReportResponse{
		Report:     rep,
		Property:   prop,
		Conditions: legend,
	})
}
