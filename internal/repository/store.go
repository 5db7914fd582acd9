package repository

import (
	"context"
	"errors"

	"github.com/Nikhil4123/Brocker/internal/model"
	"github.com/Nikhil4123/Brocker/internal/query"
)

// ErrNotFound is returned when an id does not resolve to a stored document
var ErrNotFound = errors.New("document not found")

// Store is the persistence contract behind the listing service.
// Implementations return copies; callers may mutate what they get back.
type Store interface {
	// ListProperties returns matches ordered by createdAt descending,
	// ties in insertion order
	ListProperties(ctx context.Context, f query.Filter) ([]model.Property, error)
	GetProperty(ctx context.Context, id string) (model.Property, error)
	InsertProperty(ctx context.Context, p model.Property) error
	// ReplaceProperty overwrites the whole document; last write wins
	ReplaceProperty(ctx context.Context, p model.Property) error
	DeleteProperty(ctx context.Context, id string) error

	GetUser(ctx context.Context, id string) (model.User, error)
	// FindUsers returns the users that exist among ids, keyed by id
	FindUsers(ctx context.Context, ids []string) (map[string]model.User, error)
	InsertUser(ctx context.Context, u model.User) error

	// Truncate removes every property and user
	Truncate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
