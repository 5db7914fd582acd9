// Package seed loads a store with the sample accounts and listings used for
// local development.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/Nikhil4123/Brocker/internal/model"
	"github.com/Nikhil4123/Brocker/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// Sample account credentials
const (
	AdminEmail    = "admin@brocker.com"
	AdminPassword = "admin123"
	UserEmail     = "user@brocker.com"
	UserPassword  = "user123"
)

// Options tunes a seed run. Zero values pick sensible defaults.
type Options struct {
	// Now is the createdAt of the first listing; later listings follow one second apart
	Now          time.Time
	PasswordCost int
}

// Result is what Run inserted
type Result struct {
	Admin      model.User
	User       model.User
	Properties []model.Property
}

// Run clears the store and inserts the sample data
func Run(ctx context.Context, store repository.Store, opts Options) (*Result, error) {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.PasswordCost == 0 {
		opts.PasswordCost = bcrypt.DefaultCost
	}
	now := opts.Now.UTC().Truncate(time.Millisecond)

	if err := store.Truncate(ctx); err != nil {
		return nil, fmt.Errorf("clear store: %w", err)
	}

	admin, err := newUser("Admin User", AdminEmail, AdminPassword, model.RoleAdmin,
		"+1234567890", "123 Admin Street, City, State 12345", now, opts.PasswordCost)
	if err != nil {
		return nil, err
	}
	user, err := newUser("John Doe", UserEmail, UserPassword, model.RoleUser,
		"+1987654321", "456 User Avenue, City, State 12345", now, opts.PasswordCost)
	if err != nil {
		return nil, err
	}
	for _, u := range []model.User{admin, user} {
		if err := store.InsertUser(ctx, u); err != nil {
			return nil, fmt.Errorf("insert user %s: %w", u.Email, err)
		}
	}

	props := sampleProperties(admin.ID, now)
	for _, p := range props {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("sample %q: %w", p.Title, err)
		}
		if err := store.InsertProperty(ctx, p); err != nil {
			return nil, fmt.Errorf("insert property %q: %w", p.Title, err)
		}
	}

	return &Result{Admin: admin, User: user, Properties: props}, nil
}

// CheckPassword reports whether password matches the user's stored hash
func CheckPassword(u model.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}

func newUser(name, email, password string, role model.Role, phone, address string, now time.Time, cost int) (model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password for %s: %w", email, err)
	}
	return model.User{
		ID:        model.NewID(),
		Name:      name,
		Email:     email,
		Password:  string(hash),
		Role:      role,
		Phone:     phone,
		Address:   address,
		CreatedAt: now,
	}, nil
}

func sampleProperties(ownerID string, now time.Time) []model.Property {
	contact := model.ContactInfo{Phone: "+1234567890", Email: AdminEmail}

	props := []model.Property{
		{
			Title:       "Beautiful Residential Villa",
			Description: "A stunning 4-bedroom villa with modern amenities, located in a prime residential area. Features include a swimming pool, garden, and parking space.",
			Type:        model.TypeResidential,
			Price:       750000,
			Location:    model.Location{Address: "789 Luxury Lane", City: "Beverly Hills", State: "CA", ZipCode: "90210"},
			Features:    model.Features{Area: 3500, Bedrooms: 4, Bathrooms: 3, Parking: true, Garden: true},
			Images: []string{
				"https://images.unsplash.com/photo-1564013799919-ab600027ffc6?w=800",
				"https://images.unsplash.com/photo-1570129477492-45c003edd2be?w=800",
			},
		},
		{
			Title:       "Commercial Office Space",
			Description: "Prime commercial office space in downtown area. Perfect for businesses looking to establish a professional presence.",
			Type:        model.TypeCommercial,
			Price:       1200000,
			Location:    model.Location{Address: "321 Business Blvd", City: "Los Angeles", State: "CA", ZipCode: "90001"},
			Features:    model.Features{Area: 5000, Bedrooms: 0, Bathrooms: 2, Parking: true},
			Images: []string{
				"https://images.unsplash.com/photo-1497366216548-37526070297c?w=800",
				"https://images.unsplash.com/photo-1497366811353-6870744d04b2?w=800",
			},
		},
		{
			Title:       "Large Land Plot for Development",
			Description: "Spacious land plot perfect for residential or commercial development. Located in a growing area with great potential.",
			Type:        model.TypeLand,
			Price:       450000,
			Location:    model.Location{Address: "555 Development Drive", City: "San Diego", State: "CA", ZipCode: "92101"},
			Features:    model.Features{Area: 10000},
			Images: []string{
				"https://images.unsplash.com/photo-1500382017468-9049fed747ef?w=800",
				"https://images.unsplash.com/photo-1441974231531-c6227db76b6e?w=800",
			},
		},
		{
			Title:       "Cozy Family Home",
			Description: "Perfect family home with 3 bedrooms, modern kitchen, and beautiful backyard. Located in a quiet neighborhood.",
			Type:        model.TypeResidential,
			Price:       550000,
			Location:    model.Location{Address: "123 Family Street", City: "Irvine", State: "CA", ZipCode: "92602"},
			Features:    model.Features{Area: 2200, Bedrooms: 3, Bathrooms: 2, Parking: true, Garden: true},
			Images: []string{
				"https://images.unsplash.com/photo-1568605114967-8130f3a36994?w=800",
				"https://images.unsplash.com/photo-1582268611958-ebfd161ef9cf?w=800",
			},
		},
		{
			Title:       "Retail Space in Shopping Center",
			Description: "High-traffic retail space in popular shopping center. Ideal for restaurants, retail stores, or service businesses.",
			Type:        model.TypeCommercial,
			Price:       850000,
			Location:    model.Location{Address: "777 Shopping Center Way", City: "Anaheim", State: "CA", ZipCode: "92801"},
			Features:    model.Features{Area: 3000, Bedrooms: 0, Bathrooms: 1, Parking: true},
			Images: []string{
				"https://images.unsplash.com/photo-1441986300917-64674bd600d8?w=800",
				"https://images.unsplash.com/photo-1558618666-fcd25c85cd64?w=800",
			},
		},
	}

	for i := range props {
		created := now.Add(time.Duration(i) * time.Second)
		ci := contact
		props[i].ID = model.NewID()
		props[i].Status = model.StatusAvailable
		props[i].ContactInfo = &ci
		props[i].CreatedBy = ownerID
		props[i].CreatedAt = created
		props[i].UpdatedAt = created
	}
	return props
}
