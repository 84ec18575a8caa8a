package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dwellcheck/dwellcheck-backend/internal/models"
	"github.com/dwellcheck/dwellcheck-backend/internal/repositories"
	"github.com/dwellcheck/dwellcheck-backend/internal/utils"
)

func validPropertyInput() NewPropertyInput {
	return NewPropertyInput{
		Name:         "Willow Cottage",
		PropertyType: models.PropertyCottage,
		StreetNumber: "7A",
		StreetName:   "Baker Street",
		Suburb:       "Claremont",
		City:         "Cape Town",
		Province:     "Western Cape",
		PostalCode:   "7708",
		GPS: &models.GPSFix{
			Latitude:   -33.9833,
			Longitude:  18.4667,
			AccuracyM:  utils.Ptr(12.5),
			CapturedAt: time.Now().UTC(),
		},
	}
}

func TestCreatePropertyRequiresGPSFix(t *testing.T) {
	store := repositories.NewMemoryStore()
	svc := NewPropertyService(store.Properties())

	in := validPropertyInput()
	in.GPS = nil

	_, err := svc.CreateProperty(context.Background(), uuid.New(), in)
	requireAppErrCode(t, err, utils.ErrCodeValidation)
}

func TestCreatePropertyValidatesPostalCode(t *testing.T) {
	store := repositories.NewMemoryStore()
	svc := NewPropertyService(store.Properties())

	for _, bad := range []string{"", "123", "12345", "77o8"} {
		in := validPropertyInput()
		in.PostalCode = bad
		_, err := svc.CreateProperty(context.Background(), uuid.New(), in)
		requireAppErrCode(t, err, utils.ErrCodeValidation)
	}
}

func TestCreatePropertyRejectsUnknownType(t *testing.T) {
	store := repositories.NewMemoryStore()
	svc := NewPropertyService(store.Properties())

	in := validPropertyInput()
	in.PropertyType = models.PropertyType("castle")
	_, err := svc.CreateProperty(context.Background(), uuid.New(), in)
	requireAppErrCode(t, err, utils.ErrCodeValidation)
}

func TestPropertyLifecycle(t *testing.T) {
	store := repositories.NewMemoryStore()
	svc := NewPropertyService(store.Properties())
	ctx := context.Background()
	ownerID := uuid.New()

	prop, err := svc.CreateProperty(ctx, ownerID, validPropertyInput())
	require.NoError(t, err)
	require.True(t, prop.Active)
	require.Equal(t, "Willow Cottage", prop.PropertyName)

	got, err := svc.GetProperty(ctx, ownerID, prop.ID)
	require.NoError(t, err)
	require.Equal(t, prop.ID, got.ID)

	list, err := svc.ListProperties(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, svc.DeactivateProperty(ctx, ownerID, prop.ID))

	// Deactivated properties disappear from reads.
	_, err = svc.GetProperty(ctx, ownerID, prop.ID)
	requireAppErrCode(t, err, utils.ErrCodeNotFound)

	list, err = svc.ListProperties(ctx, ownerID)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestForeignPropertyReadsAsNotFound(t *testing.T) {
	store := repositories.NewMemoryStore()
	svc := NewPropertyService(store.Properties())
	ctx := context.Background()

	prop, err := svc.CreateProperty(ctx, uuid.New(), validPropertyInput())
	require.NoError(t, err)

	// Existence is not disclosed to other users.
	_, err = svc.GetProperty(ctx, uuid.New(), prop.ID)
	requireAppErrCode(t, err, utils.ErrCodeNotFound)

	err = svc.DeactivateProperty(ctx, uuid.New(), prop.ID)
	requireAppErrCode(t, err, utils.ErrCodeNotFound)
}

func TestAddressLineIncludesUnitAndComplex(t *testing.T) {
	p := &models.Property{
		UnitNumber:   "12",
		ComplexName:  "Willow Gardens",
		StreetNumber: "7A",
		StreetName:   "Baker Street",
		Suburb:       "Claremont",
		City:         "Cape Town",
		Province:     "Western Cape",
		PostalCode:   "7708",
	}
	require.Equal(t,
		"Unit 12 Willow Gardens, 7A Baker Street, Claremont, Cape Town, Western Cape, 7708",
		p.AddressLine())
}
