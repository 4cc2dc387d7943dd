package usecase

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/ianmeigh/property-direct-backend/internal/core/domain"
	"github.com/ianmeigh/property-direct-backend/internal/core/port/usecases_port"

	"github.com/google/uuid"
)

var w1a = domain.Point{Latitude: 51.518561, Longitude: -0.143799}

func locatedListing(p domain.Point) *domain.Listing {
	l := &domain.Listing{ID: uuid.New(), OwnerID: uuid.New()}
	l.Locate(p)
	return l
}

func TestSearchListings_W1AScenario(t *testing.T) {
	atOrigin := locatedListing(w1a)
	fiftyMilesNorth := locatedListing(domain.Point{
		Latitude:  w1a.Latitude + 50/domain.EarthRadiusMiles*180/math.Pi,
		Longitude: w1a.Longitude,
	})
	repo := newMemListingRepo(atOrigin, fiftyMilesNorth)
	geocoder := &stubGeocoder{point: w1a}
	uc := NewSearchListingsUseCase(repo, geocoder)

	result, err := uc.Execute(context.Background(), domain.Anonymous(), usecases_port.SearchListingsRequest{
		Postcode:   "W1A 1AA",
		Radius:     "0.5",
		Pagination: domain.NewPagination(1, 10),
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if len(result.Page.Items) != 1 || result.Page.Items[0].ID != atOrigin.ID {
		t.Fatalf("expected only the listing at the origin, got %d items", len(result.Page.Items))
	}
	if d := result.Page.Items[0].Distance; d == nil || *d != 0 {
		t.Errorf("distance = %v, want 0", d)
	}
	if result.Shape != domain.ShapePublicSearch {
		t.Errorf("shape = %v, want ShapePublicSearch", result.Shape)
	}
	if result.Origin == nil || result.Origin.Radius != 0.5 {
		t.Errorf("origin = %+v", result.Origin)
	}
	if repo.lastQuery.Box == nil || !repo.lastQuery.Box.Contains(w1a) {
		t.Errorf("query box %+v must contain the origin", repo.lastQuery.Box)
	}
}

func TestSearchListings_DistanceIsNotRounded(t *testing.T) {
	nearby := locatedListing(domain.Point{Latitude: w1a.Latitude + 0.001234, Longitude: w1a.Longitude + 0.002345})
	uc := NewSearchListingsUseCase(newMemListingRepo(nearby), &stubGeocoder{point: w1a})

	result, err := uc.Execute(context.Background(), domain.Anonymous(), usecases_port.SearchListingsRequest{
		Postcode:   "W1A 1AA",
		Pagination: domain.NewPagination(1, 10),
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(result.Page.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(result.Page.Items))
	}

	want, _ := domain.Distance(&w1a, nearby.Location)
	got := result.Page.Items[0].Distance
	if got == nil || *got != want {
		t.Errorf("distance = %v, want %v", got, want)
	}
	if want == math.Round(want*100)/100 {
		t.Fatalf("fixture distance %v is already round", want)
	}
}

func TestSearchListings_NoPostcode(t *testing.T) {
	repo := newMemListingRepo(locatedListing(w1a), &domain.Listing{ID: uuid.New()})
	geocoder := &stubGeocoder{point: w1a}
	uc := NewSearchListingsUseCase(repo, geocoder)

	result, err := uc.Execute(context.Background(), buyer(), usecases_port.SearchListingsRequest{
		Pagination: domain.NewPagination(1, 10),
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if geocoder.calls != 0 {
		t.Errorf("geocoder called %d times without a postcode", geocoder.calls)
	}
	if repo.lastQuery.Box != nil || repo.lastQuery.Origin != nil {
		t.Error("no box or origin without a postcode")
	}
	for _, item := range result.Page.Items {
		if item.Distance != nil {
			t.Errorf("distance set on %s without a postcode", item.ID)
		}
	}
	if result.Shape != domain.ShapeMember {
		t.Errorf("shape = %v, want ShapeMember", result.Shape)
	}
}

func TestSearchListings_InvalidRadiusSkipsGeocoding(t *testing.T) {
	geocoder := &stubGeocoder{point: w1a}
	uc := NewSearchListingsUseCase(newMemListingRepo(), geocoder)

	_, err := uc.Execute(context.Background(), domain.Anonymous(), usecases_port.SearchListingsRequest{
		Postcode: "W1A 1AA",
		Radius:   "abc",
	})
	if !errors.Is(err, domain.ErrRadiusInvalid) {
		t.Fatalf("error = %v, want ErrRadiusInvalid", err)
	}
	if geocoder.calls != 0 {
		t.Error("the postcode must not be geocoded when the radius is invalid")
	}
}

func TestSearchListings_GeocoderErrorsPropagate(t *testing.T) {
	for _, want := range []error{domain.ErrPostcodeInvalid, domain.ErrServiceUnavailable} {
		uc := NewSearchListingsUseCase(newMemListingRepo(), &stubGeocoder{err: want})
		_, err := uc.Execute(context.Background(), domain.Anonymous(), usecases_port.SearchListingsRequest{Postcode: "ZZ1 1ZZ"})
		if !errors.Is(err, want) {
			t.Errorf("error = %v, want %v", err, want)
		}
	}
}

func TestSearchListings_DistanceOrderingNeedsPostcode(t *testing.T) {
	uc := NewSearchListingsUseCase(newMemListingRepo(), &stubGeocoder{point: w1a})

	_, err := uc.Execute(context.Background(), domain.Anonymous(), usecases_port.SearchListingsRequest{Ordering: "distance"})
	if domain.KindOf(err) != domain.KindValidation {
		t.Errorf("error = %v, want a validation error", err)
	}
}
