package domain

import (
	"errors"
	"math"
	"testing"
)

func TestParseRadius(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		wantErr bool
	}{
		{"", 0.5, false},
		{"0.5", 0.5, false},
		{" 3 ", 3, false},
		{"1.26", 1.3, false},
		{"0", 0, false},
		{"abc", 0, true},
		{"-1", 0, true},
		{"NaN", 0, true},
		{"Inf", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseRadius(tt.raw)
		if tt.wantErr {
			if !errors.Is(err, ErrRadiusInvalid) {
				t.Errorf("ParseRadius(%q) error = %v, want ErrRadiusInvalid", tt.raw, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRadius(%q) unexpected error %v", tt.raw, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseRadius(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestSelectListingShape(t *testing.T) {
	tests := []struct {
		authenticated, hasOrigin bool
		want                     ListingShape
		contact, distance        bool
	}{
		{false, false, ShapePublic, false, false},
		{true, false, ShapeMember, true, false},
		{false, true, ShapePublicSearch, false, true},
		{true, true, ShapeMemberSearch, true, true},
	}

	for _, tt := range tests {
		shape := SelectListingShape(tt.authenticated, tt.hasOrigin)
		if shape != tt.want {
			t.Errorf("SelectListingShape(%v, %v) = %v, want %v", tt.authenticated, tt.hasOrigin, shape, tt.want)
		}
		if shape.IncludesContact() != tt.contact {
			t.Errorf("shape %v IncludesContact = %v", shape, shape.IncludesContact())
		}
		if shape.IncludesDistance() != tt.distance {
			t.Errorf("shape %v IncludesDistance = %v", shape, shape.IncludesDistance())
		}
	}
}

func TestParseListingOrdering(t *testing.T) {
	if o, err := ParseListingOrdering("", false); err != nil || o != DefaultListingOrdering {
		t.Errorf("empty ordering = %q, %v", o, err)
	}
	if _, err := ParseListingOrdering("distance", false); KindOf(err) != KindValidation {
		t.Errorf("distance without origin should be a validation error, got %v", err)
	}
	if o, err := ParseListingOrdering("-distance", true); err != nil || o != OrderDistanceDesc {
		t.Errorf("-distance with origin = %q, %v", o, err)
	}
	if _, err := ParseListingOrdering("price; DROP TABLE listings", true); err == nil {
		t.Error("unknown ordering must be rejected")
	}
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		page, perPage         int
		wantPage, wantPerPage int
		wantOffset            int
	}{
		{0, 0, 1, DefaultPageSize, 0},
		{3, 20, 3, 20, 40},
		{1, 1000, 1, MaxPageSize, 0},
		{-2, -5, 1, DefaultPageSize, 0},
		{1844674407370955161, 10, MaxPage, 10, (MaxPage - 1) * 10},
		{math.MaxInt, MaxPageSize, MaxPage, MaxPageSize, (MaxPage - 1) * MaxPageSize},
	}
	for _, tt := range tests {
		p := NewPagination(tt.page, tt.perPage)
		if p.Page != tt.wantPage || p.PerPage != tt.wantPerPage || p.Offset() != tt.wantOffset {
			t.Errorf("NewPagination(%d, %d) = %+v offset %d", tt.page, tt.perPage, p, p.Offset())
		}
		if p.Offset() < 0 {
			t.Errorf("NewPagination(%d, %d) has negative offset %d", tt.page, tt.perPage, p.Offset())
		}
	}
}
