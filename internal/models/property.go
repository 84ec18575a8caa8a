package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PropertyType classifies the dwelling being reported on.
type PropertyType string

const (
	PropertyHouse      PropertyType = "house"
	PropertyTownhouse  PropertyType = "townhouse"
	PropertyFlat       PropertyType = "flat"
	PropertyCluster    PropertyType = "cluster"
	PropertyCottage    PropertyType = "cottage"
	PropertyGrannyFlat PropertyType = "granny_flat"
	PropertyOther      PropertyType = "other"
)

func (t PropertyType) String() string { return string(t) }

func (t PropertyType) IsValid() bool {
	switch t {
	case PropertyHouse, PropertyTownhouse, PropertyFlat, PropertyCluster,
		PropertyCottage, PropertyGrannyFlat, PropertyOther:
		return true
	}
	return false
}

func ParsePropertyType(s string) (PropertyType, error) {
	t := PropertyType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid property type: %q", s)
	}
	return t, nil
}

// GPSFix is the device location captured when the property was
// registered. A property cannot be created without one.
type GPSFix struct {
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	AccuracyM  *float64  `json:"accuracy_m,omitempty"`
	CapturedAt time.Time `json:"captured_at"`
}

type Property struct {
	ID           uuid.UUID    `json:"id"`
	OwnerID      uuid.UUID    `json:"owner_id"`
	PropertyName string       `json:"property_name"`
	PropertyType PropertyType `json:"property_type"`

	// Optional labels for sectional-title and estate addresses.
	UnitNumber  string `json:"unit_number,omitempty"`
	ComplexName string `json:"complex_name,omitempty"`
	EstateName  string `json:"estate_name,omitempty"`

	StreetNumber string `json:"street_number"`
	StreetName   string `json:"street_name"`
	Suburb       string `json:"suburb"`
	City         string `json:"city"`
	Province     string `json:"province"`
	PostalCode   string `json:"postal_code"`

	GPS GPSFix `json:"gps"`

	// Soft-delete flag; properties are never hard-deleted.
	Active bool `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AddressLine renders the postal address on one line for report
// headers and PDF output.
func (p *Property) AddressLine() string {
	line := fmt.Sprintf("%s %s, %s, %s, %s, %s",
		p.StreetNumber, p.StreetName, p.Suburb, p.City, p.Province, p.PostalCode)
	if p.UnitNumber != "" && p.ComplexName != "" {
		line = fmt.Sprintf("Unit %s %s, %s", p.UnitNumber, p.ComplexName, line)
	}
	return line
}
