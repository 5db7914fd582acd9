package model

// LocationInput carries the location fields present in a request
type LocationInput struct {
	Address *string `json:"address"`
	City    *string `json:"city"`
	State   *string `json:"state"`
	ZipCode *string `json:"zipCode"`
}

// FeaturesInput carries the feature fields present in a request
type FeaturesInput struct {
	Area      *float64  `json:"area"`
	Bedrooms  *int      `json:"bedrooms"`
	Bathrooms *int      `json:"bathrooms"`
	Parking   *bool     `json:"parking"`
	Garden    *bool     `json:"garden"`
	Amenities *[]string `json:"amenities"`
}

// ContactInfoInput carries the contact fields present in a request
type ContactInfoInput struct {
	Phone *string `json:"phone"`
	Email *string `json:"email"`
}

// PropertyInput is the writable part of a property. A nil field is absent
// and leaves the stored value untouched. id, createdBy and createdAt are not
// writable.
type PropertyInput struct {
	Title       *string           `json:"title"`
	Description *string           `json:"description"`
	Type        *PropertyType     `json:"type"`
	Price       *float64          `json:"price"`
	Location    *LocationInput    `json:"location"`
	Features    *FeaturesInput    `json:"features"`
	Images      *[]string         `json:"images"`
	Status      *PropertyStatus   `json:"status"`
	ContactInfo *ContactInfoInput `json:"contactInfo"`
}

// MissingRequired lists required fields absent from a create payload
func (in *PropertyInput) MissingRequired() *ValidationError {
	verr := &ValidationError{}

	if in.Title == nil {
		verr.Add("title", msgRequired)
	}
	if in.Description == nil {
		verr.Add("description", msgRequired)
	}
	if in.Type == nil {
		verr.Add("type", msgRequired)
	}
	if in.Price == nil {
		verr.Add("price", msgRequired)
	}

	loc := in.Location
	if loc == nil {
		loc = &LocationInput{}
	}
	if loc.Address == nil {
		verr.Add("location.address", msgRequired)
	}
	if loc.City == nil {
		verr.Add("location.city", msgRequired)
	}
	if loc.State == nil {
		verr.Add("location.state", msgRequired)
	}
	if loc.ZipCode == nil {
		verr.Add("location.zipCode", msgRequired)
	}

	if in.Features == nil || in.Features.Area == nil {
		verr.Add("features.area", msgRequired)
	}

	return verr
}

// ApplyTo copies every present field onto p
func (in *PropertyInput) ApplyTo(p *Property) {
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Type != nil {
		p.Type = *in.Type
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if loc := in.Location; loc != nil {
		if loc.Address != nil {
			p.Location.Address = *loc.Address
		}
		if loc.City != nil {
			p.Location.City = *loc.City
		}
		if loc.State != nil {
			p.Location.State = *loc.State
		}
		if loc.ZipCode != nil {
			p.Location.ZipCode = *loc.ZipCode
		}
	}
	if f := in.Features; f != nil {
		if f.Area != nil {
			p.Features.Area = *f.Area
		}
		if f.Bedrooms != nil {
			p.Features.Bedrooms = *f.Bedrooms
		}
		if f.Bathrooms != nil {
			p.Features.Bathrooms = *f.Bathrooms
		}
		if f.Parking != nil {
			p.Features.Parking = *f.Parking
		}
		if f.Garden != nil {
			p.Features.Garden = *f.Garden
		}
		if f.Amenities != nil {
			p.Features.Amenities = append([]string{}, *f.Amenities...)
		}
	}
	if in.Images != nil {
		p.Images = append([]string{}, *in.Images...)
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	if ci := in.ContactInfo; ci != nil {
		if p.ContactInfo == nil {
			p.ContactInfo = &ContactInfo{}
		}
		if ci.Phone != nil {
			p.ContactInfo.Phone = *ci.Phone
		}
		if ci.Email != nil {
			p.ContactInfo.Email = *ci.Email
		}
	}
	p.normalize()
}

// NewProperty builds a property from a create payload with defaults applied.
// The result still needs an id, owner, timestamps and Validate.
func NewProperty(in *PropertyInput) Property {
	p := Property{
		Status: StatusAvailable,
		Images: []string{},
	}
	in.ApplyTo(&p)
	return p
}
