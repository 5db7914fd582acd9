package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Nikhil4123/Brocker/internal/model"
	"github.com/Nikhil4123/Brocker/internal/query"
	"github.com/Nikhil4123/Brocker/pkg/database"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type propertyRecord struct {
	ID           string                      `gorm:"type:varchar(24);primaryKey"`
	Title        string                      `gorm:"not null"`
	Description  string                      `gorm:"not null"`
	Type         string                      `gorm:"type:varchar(16);not null;index"`
	Price        float64                     `gorm:"not null;index"`
	Address      string                      `gorm:"not null"`
	City         string                      `gorm:"not null"`
	State        string                      `gorm:"not null"`
	ZipCode      string                      `gorm:"not null"`
	Area         float64                     `gorm:"not null"`
	Bedrooms     int                         `gorm:"not null;default:0"`
	Bathrooms    int                         `gorm:"not null;default:0"`
	Parking      bool                        `gorm:"not null;default:false"`
	Garden       bool                        `gorm:"not null;default:false"`
	Amenities    datatypes.JSONSlice[string] `gorm:"type:jsonb;not null"`
	Images       datatypes.JSONSlice[string] `gorm:"type:jsonb;not null"`
	Status       string                      `gorm:"type:varchar(16);not null;index"`
	ContactPhone *string
	ContactEmail *string
	CreatedBy    string    `gorm:"type:varchar(24);not null;index"`
	CreatedAt    time.Time `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (propertyRecord) TableName() string { return "properties" }

type userRecord struct {
	ID        string `gorm:"type:varchar(24);primaryKey"`
	Name      string `gorm:"not null"`
	Email     string `gorm:"not null;uniqueIndex"`
	Password  string `gorm:"not null"`
	Role      string `gorm:"type:varchar(16);not null;default:user"`
	Phone     string
	Address   string
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"`
}

func (userRecord) TableName() string { return "users" }

// PostgresStore persists listings in PostgreSQL through GORM
type PostgresStore struct {
	db *gorm.DB
}

// NewPostgresStore wraps an open connection
func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates or updates the tables
func (s *PostgresStore) Migrate() error {
	return database.MigrateModels(s.db, &userRecord{}, &propertyRecord{})
}

func (s *PostgresStore) ListProperties(ctx context.Context, f query.Filter) ([]model.Property, error) {
	tx := s.db.WithContext(ctx).Model(&propertyRecord{})
	if where, args := sqlWhere(f); where != "" {
		tx = tx.Where(where, args...)
	}

	// ids are ObjectID hex, which sorts by creation time, so id ASC keeps insertion order
	var records []propertyRecord
	if err := tx.Order("created_at DESC").Order("id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("find properties: %w", err)
	}

	out := make([]model.Property, 0, len(records))
	for _, r := range records {
		out = append(out, r.toModel())
	}
	return out, nil
}

func (s *PostgresStore) GetProperty(ctx context.Context, id string) (model.Property, error) {
	if !model.IsValidID(id) {
		return model.Property{}, ErrNotFound
	}

	var rec propertyRecord
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Property{}, ErrNotFound
	}
	if err != nil {
		return model.Property{}, fmt.Errorf("find property %s: %w", id, err)
	}
	return rec.toModel(), nil
}

func (s *PostgresStore) InsertProperty(ctx context.Context, p model.Property) error {
	rec := newPropertyRecord(p)
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("insert property: %w", err)
	}
	return nil
}

func (s *PostgresStore) ReplaceProperty(ctx context.Context, p model.Property) error {
	if !model.IsValidID(p.ID) {
		return ErrNotFound
	}

	rec := newPropertyRecord(p)
	res := s.db.WithContext(ctx).
		Model(&propertyRecord{ID: rec.ID}).
		Select("*").
		Omit("id", "created_at", "created_by").
		Updates(&rec)
	if res.Error != nil {
		return fmt.Errorf("replace property %s: %w", p.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteProperty(ctx context.Context, id string) error {
	if !model.IsValidID(id) {
		return ErrNotFound
	}

	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&propertyRecord{})
	if res.Error != nil {
		return fmt.Errorf("delete property %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) GetUser(ctx context.Context, id string) (model.User, error) {
	if !model.IsValidID(id) {
		return model.User{}, ErrNotFound
	}

	var rec userRecord
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user %s: %w", id, err)
	}
	return rec.toModel(), nil
}

func (s *PostgresStore) FindUsers(ctx context.Context, ids []string) (map[string]model.User, error) {
	out := make(map[string]model.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var records []userRecord
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	for _, r := range records {
		out[r.ID] = r.toModel()
	}
	return out, nil
}

func (s *PostgresStore) InsertUser(ctx context.Context, u model.User) error {
	rec := userRecord{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.Password,
		Role:      string(u.Role),
		Phone:     u.Phone,
		Address:   u.Address,
		CreatedAt: u.CreatedAt,
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *PostgresStore) Truncate(ctx context.Context) error {
	tx := s.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true})
	if err := tx.Delete(&propertyRecord{}).Error; err != nil {
		return fmt.Errorf("clear properties: %w", err)
	}
	if err := tx.Delete(&userRecord{}).Error; err != nil {
		return fmt.Errorf("clear users: %w", err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *PostgresStore) Close(context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// sqlWhere translates a Filter into a WHERE clause with positional args.
// An empty clause means no constraint.
func sqlWhere(f query.Filter) (string, []interface{}) {
	var (
		clauses []string
		args    []interface{}
	)

	if f.Type != nil {
		clauses = append(clauses, "type = ?")
		args = append(args, string(*f.Type))
	}
	if f.Status != nil {
		clauses = append(clauses, "status = ?")
		args = append(args, string(*f.Status))
	}
	if f.City != "" {
		clauses = append(clauses, "city ILIKE ?")
		args = append(args, "%"+likeEscaper.Replace(f.City)+"%")
	}
	if f.MinPrice != nil {
		clauses = append(clauses, "price >= ?")
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		clauses = append(clauses, "price <= ?")
		args = append(args, *f.MaxPrice)
	}

	return strings.Join(clauses, " AND "), args
}

func newPropertyRecord(p model.Property) propertyRecord {
	rec := propertyRecord{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Type:        string(p.Type),
		Price:       p.Price,
		Address:     p.Location.Address,
		City:        p.Location.City,
		State:       p.Location.State,
		ZipCode:     p.Location.ZipCode,
		Area:        p.Features.Area,
		Bedrooms:    p.Features.Bedrooms,
		Bathrooms:   p.Features.Bathrooms,
		Parking:     p.Features.Parking,
		Garden:      p.Features.Garden,
		Amenities:   datatypes.JSONSlice[string](nonNil(p.Features.Amenities)),
		Images:      datatypes.JSONSlice[string](nonNil(p.Images)),
		Status:      string(p.Status),
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.ContactInfo != nil {
		phone, email := p.ContactInfo.Phone, p.ContactInfo.Email
		rec.ContactPhone = &phone
		rec.ContactEmail = &email
	}
	return rec
}

func (r propertyRecord) toModel() model.Property {
	p := model.Property{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Type:        model.PropertyType(r.Type),
		Price:       r.Price,
		Location: model.Location{
			Address: r.Address,
			City:    r.City,
			State:   r.State,
			ZipCode: r.ZipCode,
		},
		Features: model.Features{
			Area:      r.Area,
			Bedrooms:  r.Bedrooms,
			Bathrooms: r.Bathrooms,
			Parking:   r.Parking,
			Garden:    r.Garden,
		},
		Images:    nonNil([]string(r.Images)),
		Status:    model.PropertyStatus(r.Status),
		CreatedBy: r.CreatedBy,
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
	if len(r.Amenities) > 0 {
		p.Features.Amenities = []string(r.Amenities)
	}
	if r.ContactPhone != nil || r.ContactEmail != nil {
		p.ContactInfo = &model.ContactInfo{}
		if r.ContactPhone != nil {
			p.ContactInfo.Phone = *r.ContactPhone
		}
		if r.ContactEmail != nil {
			p.ContactInfo.Email = *r.ContactEmail
		}
	}
	return p
}

func (r userRecord) toModel() model.User {
	return model.User{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Password:  r.Password,
		Role:      model.Role(r.Role),
		Phone:     r.Phone,
		Address:   r.Address,
		CreatedAt: r.CreatedAt.UTC(),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
