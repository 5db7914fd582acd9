package model

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PropertyType is the kind of listing
type PropertyType string

const (
	TypeLand        PropertyType = "land"
	TypeResidential PropertyType = "residential"
	TypeCommercial  PropertyType = "commercial"
)

// PropertyTypes lists every accepted type in display order
var PropertyTypes = []PropertyType{TypeLand, TypeResidential, TypeCommercial}

// Valid reports whether t is one of the enumerated types
func (t PropertyType) Valid() bool {
	for _, v := range PropertyTypes {
		if t == v {
			return true
		}
	}
	return false
}

// PropertyStatus is the sale state of a listing
type PropertyStatus string

const (
	StatusAvailable PropertyStatus = "available"
	StatusSold      PropertyStatus = "sold"
	StatusPending   PropertyStatus = "pending"
)

// PropertyStatuses lists every accepted status in display order
var PropertyStatuses = []PropertyStatus{StatusAvailable, StatusSold, StatusPending}

// Valid reports whether s is one of the enumerated statuses
func (s PropertyStatus) Valid() bool {
	for _, v := range PropertyStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Location is the postal address of a listing
type Location struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

// Features describes the physical property. Area is in square feet.
type Features struct {
	Area      float64  `json:"area"`
	Bedrooms  int      `json:"bedrooms"`
	Bathrooms int      `json:"bathrooms"`
	Parking   bool     `json:"parking"`
	Garden    bool     `json:"garden"`
	Amenities []string `json:"amenities,omitempty"`
}

// ContactInfo is an optional point of contact for a listing
type ContactInfo struct {
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// Property is a listing. CreatedBy holds the owner's user id.
type Property struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Type        PropertyType   `json:"type"`
	Price       float64        `json:"price"`
	Location    Location       `json:"location"`
	Features    Features       `json:"features"`
	Images      []string       `json:"images"`
	Status      PropertyStatus `json:"status"`
	ContactInfo *ContactInfo   `json:"contactInfo,omitempty"`
	CreatedBy   string         `json:"createdBy"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// NewID returns a fresh document identifier
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// IsValidID reports whether id is a well-formed document identifier
func IsValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}

// Clone returns a deep copy so callers never share slices with a store
func (p Property) Clone() Property {
	out := p
	out.Images = append([]string{}, p.Images...)
	if p.Features.Amenities != nil {
		out.Features.Amenities = append([]string{}, p.Features.Amenities...)
	}
	if p.ContactInfo != nil {
		ci := *p.ContactInfo
		out.ContactInfo = &ci
	}
	return out
}

func (p *Property) normalize() {
	p.Title = strings.TrimSpace(p.Title)
	if p.Images == nil {
		p.Images = []string{}
	}
}
