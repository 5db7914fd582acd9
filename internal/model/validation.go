package model

import (
	"math"
	"strings"
)

const msgRequired = "is required"

// FieldError names one offending field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when a write would violate the data model
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records a field failure, ignoring duplicates for the same field
func (e *ValidationError) Add(field, message string) {
	if e.HasField(field) {
		return
	}
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// HasField reports whether field failed validation
func (e *ValidationError) HasField(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Merge appends the failures of other
func (e *ValidationError) Merge(other *ValidationError) {
	if other == nil {
		return
	}
	for _, f := range other.Fields {
		e.Add(f.Field, f.Message)
	}
}

// OrNil returns nil when nothing failed
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Validate checks every invariant of a complete property document
func (p *Property) Validate() error {
	verr := &ValidationError{}

	requireText(verr, "title", p.Title)
	requireText(verr, "description", p.Description)

	if !p.Type.Valid() {
		verr.Add("type", "must be one of "+joinTypes())
	}
	if !finite(p.Price) || p.Price < 0 {
		verr.Add("price", "must be a non-negative number")
	}

	requireText(verr, "location.address", p.Location.Address)
	requireText(verr, "location.city", p.Location.City)
	requireText(verr, "location.state", p.Location.State)
	requireText(verr, "location.zipCode", p.Location.ZipCode)

	if !finite(p.Features.Area) || p.Features.Area <= 0 {
		verr.Add("features.area", "must be a positive number")
	}
	if p.Features.Bedrooms < 0 {
		verr.Add("features.bedrooms", "must not be negative")
	}
	if p.Features.Bathrooms < 0 {
		verr.Add("features.bathrooms", "must not be negative")
	}

	if !p.Status.Valid() {
		verr.Add("status", "must be one of "+joinStatuses())
	}
	if p.CreatedBy == "" {
		verr.Add("createdBy", msgRequired)
	}
	if !p.CreatedAt.IsZero() && p.UpdatedAt.Before(p.CreatedAt) {
		verr.Add("updatedAt", "must not be before createdAt")
	}

	return verr.OrNil()
}

func requireText(verr *ValidationError, field, value string) {
	if strings.TrimSpace(value) == "" {
		verr.Add(field, msgRequired)
	}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func joinTypes() string {
	names := make([]string, len(PropertyTypes))
	for i, t := range PropertyTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

func joinStatuses() string {
	names := make([]string, len(PropertyStatuses))
	for i, s := range PropertyStatuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
