package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/Nikhil4123/Brocker/internal/model"
	"github.com/Nikhil4123/Brocker/internal/query"
	"github.com/Nikhil4123/Brocker/pkg/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type locationDocument struct {
	Address string `bson:"address"`
	City    string `bson:"city"`
	State   string `bson:"state"`
	ZipCode string `bson:"zipCode"`
}

type featuresDocument struct {
	Area      float64  `bson:"area"`
	Bedrooms  int      `bson:"bedrooms"`
	Bathrooms int      `bson:"bathrooms"`
	Parking   bool     `bson:"parking"`
	Garden    bool     `bson:"garden"`
	Amenities []string `bson:"amenities,omitempty"`
}

type contactDocument struct {
	Phone string `bson:"phone,omitempty"`
	Email string `bson:"email,omitempty"`
}

// propertyDocument mirrors the layout of the properties collection
type propertyDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Type        string             `bson:"type"`
	Price       float64            `bson:"price"`
	Location    locationDocument   `bson:"location"`
	Features    featuresDocument   `bson:"features"`
	Images      []string           `bson:"images"`
	Status      string             `bson:"status"`
	ContactInfo *contactDocument   `bson:"contactInfo,omitempty"`
	CreatedBy   primitive.ObjectID `bson:"createdBy"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

type userDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	Role      string             `bson:"role"`
	Phone     string             `bson:"phone,omitempty"`
	Address   string             `bson:"address,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
}

// MongoStore persists listings in MongoDB
type MongoStore struct {
	client     *mongo.Client
	properties *mongo.Collection
	users      *mongo.Collection
}

// NewMongoStore wraps a connected client
func NewMongoStore(client *mongo.Client, cfg *config.MongoConfig) *MongoStore {
	db := client.Database(cfg.Database)
	return &MongoStore{
		client:     client,
		properties: db.Collection(cfg.PropertiesCollection),
		users:      db.Collection(cfg.UsersCollection),
	}
}

// EnsureIndexes creates the indexes the listing queries rely on
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.properties.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "type", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "price", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create property indexes: %w", err)
	}

	_, err = s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}
	return nil
}

func (s *MongoStore) ListProperties(ctx context.Context, f query.Filter) ([]model.Property, error) {
	opts := options.Find().SetSort(listSort)

	cursor, err := s.properties.Find(ctx, mongoFilter(f), opts)
	if err != nil {
		return nil, fmt.Errorf("find properties: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []propertyDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode properties: %w", err)
	}

	out := make([]model.Property, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out, nil
}

func (s *MongoStore) GetProperty(ctx context.Context, id string) (model.Property, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.Property{}, ErrNotFound
	}

	var doc propertyDocument
	err = s.properties.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Property{}, ErrNotFound
	}
	if err != nil {
		return model.Property{}, fmt.Errorf("find property %s: %w", id, err)
	}
	return doc.toModel(), nil
}

func (s *MongoStore) InsertProperty(ctx context.Context, p model.Property) error {
	doc, err := newPropertyDocument(p)
	if err != nil {
		return err
	}
	if _, err := s.properties.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert property: %w", err)
	}
	return nil
}

func (s *MongoStore) ReplaceProperty(ctx context.Context, p model.Property) error {
	doc, err := newPropertyDocument(p)
	if err != nil {
		return err
	}

	res, err := s.properties.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		return fmt.Errorf("replace property %s: %w", p.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) DeleteProperty(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := s.properties.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete property %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) GetUser(ctx context.Context, id string) (model.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.User{}, ErrNotFound
	}

	var doc userDocument
	err = s.users.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user %s: %w", id, err)
	}
	return doc.toModel(), nil
}

func (s *MongoStore) FindUsers(ctx context.Context, ids []string) (map[string]model.User, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	out := make(map[string]model.User, len(oids))
	if len(oids) == 0 {
		return out, nil
	}

	cursor, err := s.users.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var doc userDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		u := doc.toModel()
		out[u.ID] = u
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return out, nil
}

func (s *MongoStore) InsertUser(ctx context.Context, u model.User) error {
	oid, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", u.ID, err)
	}
	doc := userDocument{
		ID:        oid,
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.Password,
		Role:      string(u.Role),
		Phone:     u.Phone,
		Address:   u.Address,
		CreatedAt: u.CreatedAt,
	}
	if _, err := s.users.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *MongoStore) Truncate(ctx context.Context) error {
	if _, err := s.properties.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("clear properties: %w", err)
	}
	if _, err := s.users.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("clear users: %w", err)
	}
	return nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// listSort is newest first; _id grows with insertion so it keeps ties in insertion order
var listSort = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}}

// mongoFilter translates a Filter into a find predicate
func mongoFilter(f query.Filter) bson.M {
	filter := bson.M{}

	if f.Type != nil {
		filter["type"] = string(*f.Type)
	}
	if f.Status != nil {
		filter["status"] = string(*f.Status)
	}
	if f.City != "" {
		filter["location.city"] = bson.M{"$regex": regexp.QuoteMeta(f.City), "$options": "i"}
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.M{}
		if f.MinPrice != nil {
			price["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			price["$lte"] = *f.MaxPrice
		}
		filter["price"] = price
	}

	return filter
}

func newPropertyDocument(p model.Property) (propertyDocument, error) {
	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return propertyDocument{}, fmt.Errorf("invalid property id %q: %w", p.ID, err)
	}
	owner, err := primitive.ObjectIDFromHex(p.CreatedBy)
	if err != nil {
		return propertyDocument{}, fmt.Errorf("invalid owner id %q: %w", p.CreatedBy, err)
	}

	doc := propertyDocument{
		ID:          oid,
		Title:       p.Title,
		Description: p.Description,
		Type:        string(p.Type),
		Price:       p.Price,
		Location:    locationDocument(p.Location),
		Features: featuresDocument{
			Area:      p.Features.Area,
			Bedrooms:  p.Features.Bedrooms,
			Bathrooms: p.Features.Bathrooms,
			Parking:   p.Features.Parking,
			Garden:    p.Features.Garden,
			Amenities: p.Features.Amenities,
		},
		Images:    p.Images,
		Status:    string(p.Status),
		CreatedBy: owner,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if doc.Images == nil {
		doc.Images = []string{}
	}
	if p.ContactInfo != nil {
		doc.ContactInfo = &contactDocument{Phone: p.ContactInfo.Phone, Email: p.ContactInfo.Email}
	}
	return doc, nil
}

func (d propertyDocument) toModel() model.Property {
	p := model.Property{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Type:        model.PropertyType(d.Type),
		Price:       d.Price,
		Location:    model.Location(d.Location),
		Features: model.Features{
			Area:      d.Features.Area,
			Bedrooms:  d.Features.Bedrooms,
			Bathrooms: d.Features.Bathrooms,
			Parking:   d.Features.Parking,
			Garden:    d.Features.Garden,
			Amenities: d.Features.Amenities,
		},
		Images:    d.Images,
		Status:    model.PropertyStatus(d.Status),
		CreatedBy: d.CreatedBy.Hex(),
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if d.ContactInfo != nil {
		p.ContactInfo = &model.ContactInfo{Phone: d.ContactInfo.Phone, Email: d.ContactInfo.Email}
	}
	return p
}

func (d userDocument) toModel() model.User {
	return model.User{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Password:  d.Password,
		Role:      model.Role(d.Role),
		Phone:     d.Phone,
		Address:   d.Address,
		CreatedAt: d.CreatedAt.UTC(),
	}
}
