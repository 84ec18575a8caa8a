package services

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dwellcheck/dwellcheck-backend/internal/models"
	"github.com/dwellcheck/dwellcheck-backend/internal/repositories"
	"github.com/dwellcheck/dwellcheck-backend/internal/utils"
)

var postalCodeRe = regexp.MustCompile(`^\d{4}$`)

type PropertyService struct {
	propRepo repositories.PropertyRepository
}

func NewPropertyService(propRepo repositories.PropertyRepository) *PropertyService {
	return &PropertyService{propRepo: propRepo}
}

// NewPropertyInput carries everything the capture-then-submit flow
// collected. The GPS fix is mandatory: a property is never stored in a
// "location pending" state.
type NewPropertyInput struct {
	Name         string
	PropertyType models.PropertyType
	UnitNumber   string
	ComplexName  string
	EstateName   string
	StreetNumber string
	StreetName   string
	Suburb       string
	City         string
	Province     string
	PostalCode   string
	GPS          *models.GPSFix
}

func (s *PropertyService) CreateProperty(ctx context.Context, ownerID uuid.UUID, in NewPropertyInput) (*models.Property, error) {
	if in.GPS == nil {
		return nil, utils.NewAppError(http.StatusBadRequest, utils.ErrCodeValidation,
			"A GPS fix is required before a property can be created", utils.ErrMissingGPSFix)
	}
	if !in.PropertyType.IsValid() {
		return nil, utils.NewAppError(http.StatusBadRequest, utils.ErrCodeValidation,
			"Unknown property type", utils.ErrValidation)
	}
	if !postalCodeRe.MatchString(in.PostalCode) {
		return nil, utils.NewAppError(http.StatusBadRequest, utils.ErrCodeValidation,
			"Postal code must be 4 digits", utils.ErrValidation)
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, utils.NewAppError(http.StatusBadRequest, utils.ErrCodeValidation,
			"Property name is required", utils.ErrValidation)
	}

	gps := *in.GPS
	if gps.CapturedAt.IsZero() {
		gps.CapturedAt = time.Now().UTC()
	}

	p := &models.Property{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		PropertyName: strings.TrimSpace(in.Name),
		PropertyType: in.PropertyType,
		UnitNumber:   strings.TrimSpace(in.UnitNumber),
		ComplexName:  strings.TrimSpace(in.ComplexName),
		EstateName:   strings.TrimSpace(in.EstateName),
		StreetNumber: strings.TrimSpace(in.StreetNumber),
		StreetName:   strings.TrimSpace(in.StreetName),
		Suburb:       strings.TrimSpace(in.Suburb),
		City:         strings.TrimSpace(in.City),
		Province:     strings.TrimSpace(in.Province),
		PostalCode:   in.PostalCode,
		GPS:          gps,
		Active:       true,
	}

	if err := s.propRepo.Create(ctx, p); err != nil {
		utils.Logger.WithError(err).Error("create property")
		return nil, utils.NewAppError(http.StatusServiceUnavailable, utils.ErrCodeTransientIO,
			"Could not save the property, please try again", err)
	}
	return p, nil
}

// GetProperty returns an active property owned by the caller.
func (s *PropertyService) GetProperty(ctx context.Context, ownerID, id uuid.UUID) (*models.Property, error) {
	p, err := s.propRepo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.NewAppError(http.StatusServiceUnavailable, utils.ErrCodeTransientIO,
			"Could not load the property", err)
	}
	if p == nil || !p.Active || p.OwnerID != ownerID {
		// Foreign ownership is reported as not-found so property ids
		// cannot be probed.
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound,
			"Property not found", utils.ErrNotFound)
	}
	return p, nil
}

func (s *PropertyService) ListProperties(ctx context.Context, ownerID uuid.UUID) ([]*models.Property, error) {
	props, err := s.propRepo.ListByOwnerID(ctx, ownerID)
	if err != nil {
		utils.Logger.WithError(err).Error("list properties")
		return nil, utils.NewAppError(http.StatusServiceUnavailable, utils.ErrCodeTransientIO,
			"Could not load properties", err)
	}
	return props, nil
}

// DeactivateProperty soft-deletes; the row stays for existing reports.
func (s *PropertyService) DeactivateProperty(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := s.GetProperty(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.propRepo.Deactivate(ctx, id); err != nil {
		utils.Logger.WithError(err).Errorf("deactivate property %s", id)
		return utils.NewAppError(http.StatusServiceUnavailable, utils.ErrCodeTransientIO,
			"Could not delete the property", err)
	}
	return nil
}
