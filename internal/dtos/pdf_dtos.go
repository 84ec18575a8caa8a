package dtos

import "github.com/dwellcheck/dwellcheck-backend/internal/models"

// GeneratePDFRequest is the render boundary contract: a fully hydrated
// report and property in the body, creator attribution for the footer.
type GeneratePDFRequest struct {
	Report      *models.Report   `json:"report" validate:"required"`
	Property    *models.Property `json:"property" validate:"required"`
	CreatorRole string           `json:"creator_role"`
	CreatorName string           `json:"creator_name"`
}

// PDFErrorResponse is the non-200 shape of the render boundary.
type PDFErrorResponse struct {
	Error string `json:"error"`
}
