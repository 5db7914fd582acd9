package model

import "time"

// Role is a user's access level
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is a listing owner. Password holds a bcrypt hash and is never serialized.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      Role      `json:"role"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Owner is the public projection of a User embedded in listing responses
type Owner struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// ProjectOwner exposes only the fields the API contract allows.
// Phone is included for single-listing responses.
func ProjectOwner(u User, includePhone bool) Owner {
	o := Owner{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
	if includePhone {
		o.Phone = u.Phone
	}
	return o
}

// PropertyView is a listing enriched with its owner
type PropertyView struct {
	Property
	CreatedBy Owner `json:"createdBy"`
}

// NewPropertyView pairs a property with its owner. A missing owner leaves only the id.
func NewPropertyView(p Property, owner *User, includePhone bool) PropertyView {
	view := PropertyView{Property: p, CreatedBy: Owner{ID: p.CreatedBy}}
	if owner != nil {
		view.CreatedBy = ProjectOwner(*owner, includePhone)
	}
	return view
}
