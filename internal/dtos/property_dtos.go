package dtos

import "time"

// GPSFixDTO mirrors the device geolocation result. Pointers keep
// "required" meaningful for zero-valued coordinates.
type GPSFixDTO struct {
	Latitude   float64    `json:"latitude" validate:"min=-90,max=90"`
	Longitude  float64    `json:"longitude" validate:"min=-180,max=180"`
	AccuracyM  *float64   `json:"accuracy_m,omitempty"`
	CapturedAt *time.Time `json:"captured_at,omitempty"`
}

type CreatePropertyRequest struct {
	Name         string     `json:"name" validate:"required"`
	PropertyType string     `json:"property_type" validate:"required"`
	UnitNumber   string     `json:"unit_number"`
	ComplexName  string     `json:"complex_name"`
	EstateName   string     `json:"estate_name"`
	StreetNumber string     `json:"street_number" validate:"required"`
	StreetName   string     `json:"street_name" validate:"required"`
	Suburb       string     `json:"suburb" validate:"required"`
	City         string     `json:"city" validate:"required"`
	Province     string     `json:"province" validate:"required"`
	PostalCode   string     `json:"postal_code" validate:"required,len=4,numeric"`
	GPS          *GPSFixDTO `json:"gps" validate:"required"`
}
