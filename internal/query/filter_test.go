package query

import (
	"net/url"
	"testing"

	"github.com/Nikhil4123/Brocker/internal/model"
)

func TestFromValues(t *testing.T) {
	f := FromValues(url.Values{
		"type":     {"residential"},
		"status":   {"available"},
		"city":     {"beverly"},
		"minPrice": {"500000"},
		"maxPrice": {"800000.5"},
		"ignored":  {"x"},
	})

	if f.Type == nil || *f.Type != model.TypeResidential {
		t.Fatalf("expected residential type, got %v", f.Type)
	}
	if f.Status == nil || *f.Status != model.StatusAvailable {
		t.Fatalf("expected available status, got %v", f.Status)
	}
	if f.City != "beverly" {
		t.Fatalf("expected city beverly, got %q", f.City)
	}
	if f.MinPrice == nil || *f.MinPrice != 500000 {
		t.Fatalf("expected minPrice 500000, got %v", f.MinPrice)
	}
	if f.MaxPrice == nil || *f.MaxPrice != 800000.5 {
		t.Fatalf("expected maxPrice 800000.5, got %v", f.MaxPrice)
	}
}

// Malformed numbers are dropped, not rejected.
func TestFromValuesDropsMalformedPrices(t *testing.T) {
	for _, raw := range []string{"abc", "12k", "NaN", "Inf", "-Inf", "  "} {
		f := FromValues(url.Values{"minPrice": {raw}, "maxPrice": {raw}})
		if f.MinPrice != nil || f.MaxPrice != nil {
			t.Errorf("expected %q to be ignored, got min=%v max=%v", raw, f.MinPrice, f.MaxPrice)
		}
		if !f.IsEmpty() {
			t.Errorf("expected empty filter for %q", raw)
		}
	}
}

func TestFromValuesEmptyIsWildcard(t *testing.T) {
	f := FromValues(url.Values{"type": {""}, "city": {""}})
	if !f.IsEmpty() {
		t.Fatalf("expected empty values to be absent, got %+v", f)
	}
	if !f.Matches(model.Property{Type: model.TypeLand}) {
		t.Fatal("expected empty filter to match everything")
	}
}

func TestMatches(t *testing.T) {
	p := model.Property{
		Type:     model.TypeResidential,
		Status:   model.StatusAvailable,
		Price:    750000,
		Location: model.Location{City: "Beverly Hills"},
	}

	tests := []struct {
		name   string
		values url.Values
		want   bool
	}{
		{"type match", url.Values{"type": {"residential"}}, true},
		{"type mismatch", url.Values{"type": {"land"}}, false},
		{"type case sensitive", url.Values{"type": {"Residential"}}, false},
		{"status mismatch", url.Values{"status": {"sold"}}, false},
		{"city partial lowercase", url.Values{"city": {"beverly"}}, true},
		{"city middle", url.Values{"city": {"LY HI"}}, true},
		{"city mismatch", url.Values{"city": {"irvine"}}, false},
		{"city regex chars literal", url.Values{"city": {"bev.*"}}, false},
		{"min inclusive", url.Values{"minPrice": {"750000"}}, true},
		{"min above", url.Values{"minPrice": {"750001"}}, false},
		{"max inclusive", url.Values{"maxPrice": {"750000"}}, true},
		{"max below", url.Values{"maxPrice": {"749999"}}, false},
		{"range", url.Values{"minPrice": {"500000"}, "maxPrice": {"800000"}}, true},
		{"malformed max ignored", url.Values{"maxPrice": {"cheap"}}, true},
		{"all", url.Values{"type": {"residential"}, "status": {"available"}, "city": {"hills"}, "minPrice": {"1"}, "maxPrice": {"1e7"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromValues(tt.values).Matches(p); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestByType(t *testing.T) {
	f := ByType("commercial")
	if f.Type == nil || *f.Type != model.TypeCommercial {
		t.Fatalf("expected commercial, got %v", f.Type)
	}
	if f.Status != nil || f.City != "" || f.MinPrice != nil || f.MaxPrice != nil {
		t.Fatalf("expected only type set, got %+v", f)
	}
}
