// Package service holds the listing operations that sit between the HTTP
// handlers and a Store.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Nikhil4123/Brocker/internal/model"
	"github.com/Nikhil4123/Brocker/internal/query"
	"github.com/Nikhil4123/Brocker/internal/repository"
	"github.com/Nikhil4123/Brocker/prometheus"
)

// ErrNotFound is returned when a property id does not resolve
var ErrNotFound = errors.New("property not found")

// StorageError wraps an unexpected failure of the backing store
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// PropertyService implements listing search and CRUD over a Store
type PropertyService struct {
	store   repository.Store
	metrics *prometheus.Metrics
	now     func() time.Time
}

// NewPropertyService creates the service. metrics may be nil.
func NewPropertyService(store repository.Store, metrics *prometheus.Metrics) *PropertyService {
	return &PropertyService{
		store:   store,
		metrics: metrics,
		now:     time.Now,
	}
}

// WithClock replaces the time source, for tests
func (s *PropertyService) WithClock(now func() time.Time) *PropertyService {
	s.now = now
	return s
}

// List returns the properties matching f, newest first, with their owners
func (s *PropertyService) List(ctx context.Context, f query.Filter) ([]model.PropertyView, error) {
	start := time.Now()
	props, err := s.store.ListProperties(ctx, f)
	s.metrics.TrackDBOperation("list")(start)
	if err != nil {
		return nil, &StorageError{Op: "list", Err: err}
	}

	owners, err := s.owners(ctx, props)
	if err != nil {
		return nil, err
	}

	views := make([]model.PropertyView, 0, len(props))
	for _, p := range props {
		views = append(views, model.NewPropertyView(p, lookup(owners, p.CreatedBy), false))
	}
	s.metrics.RecordPropertyOperation("list")
	return views, nil
}

// ListByType is List restricted to a single property type
func (s *PropertyService) ListByType(ctx context.Context, propertyType string) ([]model.PropertyView, error) {
	return s.List(ctx, query.ByType(propertyType))
}

// Get returns one property with its owner's contact details
func (s *PropertyService) Get(ctx context.Context, id string) (model.PropertyView, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return model.PropertyView{}, err
	}

	view, err := s.view(ctx, p, true)
	if err != nil {
		return model.PropertyView{}, err
	}
	s.metrics.RecordPropertyOperation("get")
	return view, nil
}

// Create validates in and stores a new property owned by ownerID.
// Nothing is written when validation fails.
func (s *PropertyService) Create(ctx context.Context, in *model.PropertyInput, ownerID string) (model.PropertyView, error) {
	if in == nil {
		in = &model.PropertyInput{}
	}

	if verr := in.MissingRequired(); verr.OrNil() != nil {
		s.recordValidation(verr)
		return model.PropertyView{}, verr
	}

	now := s.now().UTC().Truncate(time.Millisecond)
	p := model.NewProperty(in)
	p.ID = model.NewID()
	p.CreatedBy = ownerID
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := p.Validate(); err != nil {
		s.recordValidation(err)
		return model.PropertyView{}, err
	}

	owner, err := s.store.GetUser(ctx, ownerID)
	if errors.Is(err, repository.ErrNotFound) {
		verr := &model.ValidationError{}
		verr.Add("createdBy", "must reference an existing user")
		s.recordValidation(verr)
		return model.PropertyView{}, verr
	}
	if err != nil {
		return model.PropertyView{}, &StorageError{Op: "get owner", Err: err}
	}

	start := time.Now()
	err = s.store.InsertProperty(ctx, p)
	s.metrics.TrackDBOperation("create")(start)
	if err != nil {
		return model.PropertyView{}, &StorageError{Op: "create", Err: err}
	}

	s.metrics.RecordPropertyOperation("create")
	return model.NewPropertyView(p, &owner, false), nil
}

// Update applies the fields present in patch to an existing property
func (s *PropertyService) Update(ctx context.Context, id string, patch *model.PropertyInput) (model.PropertyView, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return model.PropertyView{}, err
	}

	if patch != nil {
		patch.ApplyTo(&p)
	}

	now := s.now().UTC().Truncate(time.Millisecond)
	if now.Before(p.CreatedAt) {
		now = p.CreatedAt
	}
	p.UpdatedAt = now

	if err := p.Validate(); err != nil {
		s.recordValidation(err)
		return model.PropertyView{}, err
	}

	start := time.Now()
	err = s.store.ReplaceProperty(ctx, p)
	s.metrics.TrackDBOperation("update")(start)
	if errors.Is(err, repository.ErrNotFound) {
		return model.PropertyView{}, ErrNotFound
	}
	if err != nil {
		return model.PropertyView{}, &StorageError{Op: "update", Err: err}
	}

	view, err := s.view(ctx, p, false)
	if err != nil {
		return model.PropertyView{}, err
	}
	s.metrics.RecordPropertyOperation("update")
	return view, nil
}

// Delete permanently removes a property
func (s *PropertyService) Delete(ctx context.Context, id string) error {
	if !model.IsValidID(id) {
		return ErrNotFound
	}

	start := time.Now()
	err := s.store.DeleteProperty(ctx, id)
	s.metrics.TrackDBOperation("delete")(start)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return &StorageError{Op: "delete", Err: err}
	}

	s.metrics.RecordPropertyOperation("delete")
	return nil
}

// Ping reports whether the backing store is reachable
func (s *PropertyService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *PropertyService) load(ctx context.Context, id string) (model.Property, error) {
	if !model.IsValidID(id) {
		return model.Property{}, ErrNotFound
	}

	start := time.Now()
	p, err := s.store.GetProperty(ctx, id)
	s.metrics.TrackDBOperation("get")(start)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Property{}, ErrNotFound
	}
	if err != nil {
		return model.Property{}, &StorageError{Op: "get", Err: err}
	}
	return p, nil
}

func (s *PropertyService) view(ctx context.Context, p model.Property, includePhone bool) (model.PropertyView, error) {
	owner, err := s.store.GetUser(ctx, p.CreatedBy)
	if errors.Is(err, repository.ErrNotFound) {
		return model.NewPropertyView(p, nil, includePhone), nil
	}
	if err != nil {
		return model.PropertyView{}, &StorageError{Op: "get owner", Err: err}
	}
	return model.NewPropertyView(p, &owner, includePhone), nil
}

func (s *PropertyService) owners(ctx context.Context, props []model.Property) (map[string]model.User, error) {
	seen := make(map[string]bool, len(props))
	ids := make([]string, 0, len(props))
	for _, p := range props {
		if !seen[p.CreatedBy] {
			seen[p.CreatedBy] = true
			ids = append(ids, p.CreatedBy)
		}
	}

	users, err := s.store.FindUsers(ctx, ids)
	if err != nil {
		return nil, &StorageError{Op: "find owners", Err: err}
	}
	return users, nil
}

func (s *PropertyService) recordValidation(err error) {
	var verr *model.ValidationError
	if !errors.As(err, &verr) {
		return
	}
	for _, f := range verr.Fields {
		s.metrics.RecordValidationFailure(f.Field)
	}
}

func lookup(users map[string]model.User, id string) *model.User {
	if u, ok := users[id]; ok {
		return &u
	}
	return nil
}
