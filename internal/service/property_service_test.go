package service

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/Nikhil4123/Brocker/internal/model"
	"github.com/Nikhil4123/Brocker/internal/query"
	"github.com/Nikhil4123/Brocker/internal/repository"
	"github.com/Nikhil4123/Brocker/internal/seed"
	"github.com/Nikhil4123/Brocker/prometheus"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"golang.org/x/crypto/bcrypt"
)

var seededAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newSeededService(t *testing.T) (*PropertyService, *repository.MemoryStore, *seed.Result) {
	t.Helper()
	store := repository.NewMemoryStore()
	res, err := seed.Run(context.Background(), store, seed.Options{Now: seededAt, PasswordCost: bcrypt.MinCost})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	svc := NewPropertyService(store, nil).WithClock(func() time.Time { return seededAt.Add(time.Hour) })
	return svc, store, res
}

func validInput() *model.PropertyInput {
	return &model.PropertyInput{
		Title:       ptr("  Lake House  "),
		Description: ptr("Quiet place by the water"),
		Type:        ptr(model.TypeResidential),
		Price:       ptr(320000.0),
		Location: &model.LocationInput{
			Address: ptr("1 Shore Rd"),
			City:    ptr("Tahoe City"),
			State:   ptr("CA"),
			ZipCode: ptr("96145"),
		},
		Features: &model.FeaturesInput{Area: ptr(1800.0), Bedrooms: ptr(2)},
	}
}

func TestListBySeededTypeAndPrice(t *testing.T) {
	svc, _, _ := newSeededService(t)

	views, err := svc.List(context.Background(), query.FromValues(url.Values{
		"type":     {"residential"},
		"minPrice": {"500000"},
	}))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 results, got %d", len(views))
	}
	// Cozy Family Home was inserted after the villa
	if views[0].Price != 550000 || views[1].Price != 750000 {
		t.Fatalf("expected prices [550000 750000], got [%v %v]", views[0].Price, views[1].Price)
	}
}

func TestListByCityIsCaseInsensitive(t *testing.T) {
	svc, _, res := newSeededService(t)

	views, err := svc.List(context.Background(), query.FromValues(url.Values{"city": {"beverly"}}))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 1 || views[0].Location.City != "Beverly Hills" {
		t.Fatalf("expected only the Beverly Hills villa, got %d results", len(views))
	}

	owner := views[0].CreatedBy
	if owner.ID != res.Admin.ID || owner.Name != "Admin User" || owner.Email != seed.AdminEmail {
		t.Fatalf("expected admin owner, got %+v", owner)
	}
	if owner.Phone != "" {
		t.Fatalf("expected list projection without phone, got %q", owner.Phone)
	}
}

func TestListIgnoresMalformedPrice(t *testing.T) {
	svc, _, _ := newSeededService(t)

	views, err := svc.List(context.Background(), query.FromValues(url.Values{"maxPrice": {"cheap"}}))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 5 {
		t.Fatalf("expected all 5 listings, got %d", len(views))
	}
}

func TestListByType(t *testing.T) {
	svc, _, _ := newSeededService(t)

	views, err := svc.ListByType(context.Background(), "commercial")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 commercial listings, got %d", len(views))
	}
	for _, v := range views {
		if v.Type != model.TypeCommercial {
			t.Fatalf("expected commercial, got %s", v.Type)
		}
	}

	views, err = svc.ListByType(context.Background(), "castle")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("expected no results for unknown type, got %d", len(views))
	}
}

func TestCreateAndGet(t *testing.T) {
	svc, _, res := newSeededService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput(), res.Admin.ID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Title != "Lake House" {
		t.Fatalf("expected trimmed title, got %q", created.Title)
	}
	if created.Status != model.StatusAvailable {
		t.Fatalf("expected default status available, got %s", created.Status)
	}
	if created.Images == nil || len(created.Images) != 0 {
		t.Fatalf("expected empty images, got %v", created.Images)
	}
	if !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Fatalf("expected equal timestamps on create, got %v %v", created.CreatedAt, created.UpdatedAt)
	}
	if created.CreatedBy.ID != res.Admin.ID || created.CreatedBy.Name != "Admin User" {
		t.Fatalf("expected owner enrichment, got %+v", created.CreatedBy)
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Price != 320000 || got.Location.City != "Tahoe City" || got.Features.Bedrooms != 2 {
		t.Fatalf("unexpected property %+v", got.Property)
	}
	if got.CreatedBy.Phone != "+1234567890" {
		t.Fatalf("expected owner phone on single fetch, got %q", got.CreatedBy.Phone)
	}

	views, _ := svc.List(ctx, query.Filter{})
	if len(views) != 6 || views[0].ID != created.ID {
		t.Fatalf("expected new listing first among 6, got %d", len(views))
	}
}

func TestCreateMissingPriceLeavesStoreUnchanged(t *testing.T) {
	svc, store, res := newSeededService(t)
	ctx := context.Background()

	in := validInput()
	in.Price = nil

	_, err := svc.Create(ctx, in, res.Admin.ID)
	var verr *model.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !verr.HasField("price") {
		t.Fatalf("expected price to be reported, got %+v", verr.Fields)
	}

	props, _ := store.ListProperties(ctx, query.Filter{})
	if len(props) != 5 {
		t.Fatalf("expected store unchanged with 5 listings, got %d", len(props))
	}
}

func TestCreateZeroPriceIsAllowed(t *testing.T) {
	svc, _, res := newSeededService(t)

	in := validInput()
	in.Price = ptr(0.0)
	if _, err := svc.Create(context.Background(), in, res.Admin.ID); err != nil {
		t.Fatalf("expected zero price to be accepted, got %v", err)
	}
}

func TestCreateRejectsInvalidDocument(t *testing.T) {
	svc, _, res := newSeededService(t)

	tests := []struct {
		name  string
		edit  func(in *model.PropertyInput)
		field string
	}{
		{"bad type", func(in *model.PropertyInput) { in.Type = ptr(model.PropertyType("castle")) }, "type"},
		{"negative price", func(in *model.PropertyInput) { in.Price = ptr(-1.0) }, "price"},
		{"zero area", func(in *model.PropertyInput) { in.Features.Area = ptr(0.0) }, "features.area"},
		{"blank title", func(in *model.PropertyInput) { in.Title = ptr("   ") }, "title"},
		{"bad status", func(in *model.PropertyInput) { in.Status = ptr(model.PropertyStatus("gone")) }, "status"},
		{"missing city", func(in *model.PropertyInput) { in.Location.City = nil }, "location.city"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.edit(in)
			_, err := svc.Create(context.Background(), in, res.Admin.ID)
			var verr *model.ValidationError
			if !errors.As(err, &verr) || !verr.HasField(tt.field) {
				t.Fatalf("expected validation failure on %s, got %v", tt.field, err)
			}
		})
	}
}

func TestCreateUnknownOwner(t *testing.T) {
	svc, _, _ := newSeededService(t)

	_, err := svc.Create(context.Background(), validInput(), model.NewID())
	var verr *model.ValidationError
	if !errors.As(err, &verr) || !verr.HasField("createdBy") {
		t.Fatalf("expected createdBy validation failure, got %v", err)
	}
}

func TestUpdatePriceOnly(t *testing.T) {
	svc, store, res := newSeededService(t)
	ctx := context.Background()
	before := res.Properties[0]

	updated, err := svc.Update(ctx, before.ID, &model.PropertyInput{Price: ptr(700000.0)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Price != 700000 {
		t.Fatalf("expected price 700000, got %v", updated.Price)
	}

	after, _ := store.GetProperty(ctx, before.ID)
	if !after.UpdatedAt.After(before.UpdatedAt) {
		t.Fatalf("expected updatedAt to advance, got %v", after.UpdatedAt)
	}
	after.Price = before.Price
	after.UpdatedAt = before.UpdatedAt
	if after.Title != before.Title || after.Location != before.Location || after.Features.Area != before.Features.Area ||
		after.Status != before.Status || after.CreatedBy != before.CreatedBy || !after.CreatedAt.Equal(before.CreatedAt) {
		t.Fatalf("expected only price and updatedAt to change, got %+v", after)
	}
}

func TestUpdateNestedFieldsMerge(t *testing.T) {
	svc, _, res := newSeededService(t)

	updated, err := svc.Update(context.Background(), res.Properties[0].ID, &model.PropertyInput{
		Location: &model.LocationInput{City: ptr("Malibu")},
		Features: &model.FeaturesInput{Garden: ptr(false)},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Location.City != "Malibu" || updated.Location.Address != "789 Luxury Lane" {
		t.Fatalf("expected city replaced and address kept, got %+v", updated.Location)
	}
	if updated.Features.Garden || updated.Features.Bedrooms != 4 {
		t.Fatalf("expected garden off and bedrooms kept, got %+v", updated.Features)
	}
}

func TestUpdateInvalidLeavesStoreUnchanged(t *testing.T) {
	svc, store, res := newSeededService(t)
	ctx := context.Background()
	id := res.Properties[0].ID

	_, err := svc.Update(ctx, id, &model.PropertyInput{Price: ptr(-5.0)})
	var verr *model.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	p, _ := store.GetProperty(ctx, id)
	if p.Price != 750000 {
		t.Fatalf("expected price untouched, got %v", p.Price)
	}
}

func TestUpdateMissing(t *testing.T) {
	svc, _, _ := newSeededService(t)

	for _, id := range []string{model.NewID(), "nope"} {
		if _, err := svc.Update(context.Background(), id, &model.PropertyInput{}); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound for %q, got %v", id, err)
		}
	}
}

func TestDeleteThenGet(t *testing.T) {
	svc, _, res := newSeededService(t)
	ctx := context.Background()
	id := res.Properties[2].ID

	if err := svc.Delete(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := svc.Delete(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestGetMalformedID(t *testing.T) {
	svc, _, _ := newSeededService(t)

	if _, err := svc.Get(context.Background(), "not-a-valid-id"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetDanglingOwner(t *testing.T) {
	store := repository.NewMemoryStore()
	owner := model.NewID()
	p := model.Property{
		ID: model.NewID(), Title: "Orphan", Type: model.TypeLand, Status: model.StatusAvailable,
		CreatedBy: owner, CreatedAt: seededAt, UpdatedAt: seededAt,
	}
	if err := store.InsertProperty(context.Background(), p); err != nil {
		t.Fatalf("insert: %v", err)
	}

	view, err := NewPropertyService(store, nil).Get(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if view.CreatedBy.ID != owner || view.CreatedBy.Name != "" {
		t.Fatalf("expected bare owner reference, got %+v", view.CreatedBy)
	}
}

func TestStorageErrorsAreWrapped(t *testing.T) {
	boom := errors.New("connection refused")
	store := repository.NewMemoryStore().WithError(boom)
	svc := NewPropertyService(store, nil)
	ctx := context.Background()

	_, err := svc.List(ctx, query.Filter{})
	var serr *StorageError
	if !errors.As(err, &serr) || !errors.Is(err, boom) {
		t.Fatalf("expected StorageError wrapping cause, got %v", err)
	}

	if _, err := svc.Get(ctx, model.NewID()); !errors.As(err, &serr) {
		t.Fatalf("expected StorageError from get, got %v", err)
	}
	if err := svc.Delete(ctx, model.NewID()); !errors.As(err, &serr) {
		t.Fatalf("expected StorageError from delete, got %v", err)
	}
}

func TestMetricsAreRecorded(t *testing.T) {
	store := repository.NewMemoryStore()
	res, err := seed.Run(context.Background(), store, seed.Options{Now: seededAt, PasswordCost: bcrypt.MinCost})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	m := prometheus.NewMetrics("test", prom.NewRegistry())
	svc := NewPropertyService(store, m)

	if _, err := svc.List(context.Background(), query.Filter{}); err != nil {
		t.Fatalf("list: %v", err)
	}
	in := validInput()
	in.Price = nil
	_, _ = svc.Create(context.Background(), in, res.Admin.ID)

	if got := testutil.ToFloat64(m.PropertyOperationsCounter.WithLabelValues("list")); got != 1 {
		t.Fatalf("expected 1 list operation, got %v", got)
	}
	if got := testutil.ToFloat64(m.ValidationFailuresCounter.WithLabelValues("price")); got != 1 {
		t.Fatalf("expected 1 price validation failure, got %v", got)
	}
}

func ptr[T any](v T) *T { return &v }
