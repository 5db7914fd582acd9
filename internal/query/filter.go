// Package query turns listing search parameters into a store-independent
// predicate.
package query

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/Nikhil4123/Brocker/internal/model"
)

// Recognised query parameter names
const (
	ParamType     = "type"
	ParamMinPrice = "minPrice"
	ParamMaxPrice = "maxPrice"
	ParamCity     = "city"
	ParamStatus   = "status"
)

// Filter is the predicate for a listing search. A nil or empty field imposes
// no constraint.
type Filter struct {
	Type     *model.PropertyType
	Status   *model.PropertyStatus
	City     string
	MinPrice *float64
	MaxPrice *float64
}

// FromValues builds a Filter from URL query parameters. Prices that do not
// parse as finite numbers are dropped rather than rejected.
func FromValues(values url.Values) Filter {
	var f Filter

	if v := values.Get(ParamType); v != "" {
		t := model.PropertyType(v)
		f.Type = &t
	}
	if v := values.Get(ParamStatus); v != "" {
		s := model.PropertyStatus(v)
		f.Status = &s
	}
	f.City = values.Get(ParamCity)
	f.MinPrice = parsePrice(values.Get(ParamMinPrice))
	f.MaxPrice = parsePrice(values.Get(ParamMaxPrice))

	return f
}

// ByType is the filter behind the per-type listing route
func ByType(t string) Filter {
	pt := model.PropertyType(t)
	return Filter{Type: &pt}
}

func parsePrice(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// IsEmpty reports whether the filter matches everything
func (f Filter) IsEmpty() bool {
	return f.Type == nil && f.Status == nil && f.City == "" && f.MinPrice == nil && f.MaxPrice == nil
}

// Matches evaluates the filter against a property in process
func (f Filter) Matches(p model.Property) bool {
	if f.Type != nil && p.Type != *f.Type {
		return false
	}
	if f.Status != nil && p.Status != *f.Status {
		return false
	}
	if f.City != "" && !strings.Contains(strings.ToLower(p.Location.City), strings.ToLower(f.City)) {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	return true
}
