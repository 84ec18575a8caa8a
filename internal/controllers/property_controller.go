package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/dwellcheck/dwellcheck-backend/internal/dtos"
	"github.com/dwellcheck/dwellcheck-backend/internal/models"
	"github.com/dwellcheck/dwellcheck-backend/internal/services"
	"github.com/dwellcheck/dwellcheck-backend/internal/utils"
)

type PropertyController struct {
	propertyService *services.PropertyService
	validate        *validator.Validate
}

func NewPropertyController(ps *services.PropertyService) *PropertyController {
	return &PropertyController{
		propertyService: ps,
		validate:        validator.New(),
	}
}

// ----------------------------------------------------------------
// POST /api/v1/properties
// ----------------------------------------------------------------
func (c *PropertyController) CreatePropertyHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req dtos.CreatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	propType, err := models.ParsePropertyType(req.PropertyType)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, err.Error(), nil, err)
		return
	}

	gps := &models.GPSFix{
		Latitude:  req.GPS.Latitude,
		Longitude: req.GPS.Longitude,
		AccuracyM: req.GPS.AccuracyM,
	}
	if req.GPS.CapturedAt != nil {
		gps.CapturedAt = *req.GPS.CapturedAt
	} else {
		gps.CapturedAt = time.Now().UTC()
	}

	prop, svcErr := c.propertyService.CreateProperty(r.Context(), ownerID, services.NewPropertyInput{
		Name:         req.Name,
		PropertyType: propType,
		UnitNumber:   req.UnitNumber,
		ComplexName:  req.ComplexName,
		EstateName:   req.EstateName,
		StreetNumber: req.StreetNumber,
		StreetName:   req.StreetName,
		Suburb:       req.Suburb,
		City:         req.City,
		Province:     req.Province,
		PostalCode:   req.PostalCode,
		GPS:          gps,
	})
	if svcErr != nil {
		utils.HandleAppError(w, svcErr)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, prop)
}

// ----------------------------------------------------------------
// GET /api/v1/properties
// ----------------------------------------------------------------
func (c *PropertyController) ListPropertiesHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(w, r)
	if !ok {
		return
	}

	props, err := c.propertyService.ListProperties(r.Context(), ownerID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, props)
}

// ----------------------------------------------------------------
// GET /api/v1/properties/{id}
// ----------------------------------------------------------------
func (c *PropertyController) GetPropertyHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(w, r)
	if !ok {
		return
	}
	propID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	prop, err := c.propertyService.GetProperty(r.Context(), ownerID, propID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, prop)
}

// ----------------------------------------------------------------
// DELETE /api/v1/properties/{id}
// ----------------------------------------------------------------
func (c *PropertyController) DeletePropertyHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(w, r)
	if !ok {
		return
	}
	propID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := c.propertyService.DeactivateProperty(r.Context(), ownerID, propID); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
