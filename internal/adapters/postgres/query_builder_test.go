package postgres_adapter

import (
	"strings"
	"testing"

	"github.com/ianmeigh/property-direct-backend/internal/core/domain"

	"github.com/google/uuid"
)

func TestApplyListingFilters_Placeholders(t *testing.T) {
	priceMin, bedsMax := 100000, 3
	garden := true
	box := domain.NewBoundingBox(domain.Point{Latitude: 51.518561, Longitude: -0.143799}, 0.5)

	qb := applyListingFilters(domain.ListingQuery{
		Filters: domain.ListingFilters{
			PriceMin:     &priceMin,
			BedroomsMax:  &bedsMax,
			HasGarden:    &garden,
			PropertyType: "detached",
			Search:       "portland",
		},
		Box: &box,
	})
	where, n := qb.whereClause()

	if n != 9 || len(qb.args) != 9 {
		t.Fatalf("arg count = %d (%d args), want 9", n, len(qb.args))
	}
	for _, want := range []string{
		"l.price >= $1",
		"l.num_bedrooms <= $2",
		"l.has_garden = $3",
		"l.property_type = $4",
		"l.street_name ILIKE $5",
		"l.latitude BETWEEN $6 AND $7 AND l.longitude BETWEEN $8 AND $9",
	} {
		if !strings.Contains(where, want) {
			t.Errorf("where clause missing %q:\n%s", want, where)
		}
	}
	if qb.args[4] != "%portland%" {
		t.Errorf("search pattern = %v", qb.args[4])
	}
	if qb.args[5] != box.LatMin || qb.args[8] != box.LonMax {
		t.Errorf("box args = %v", qb.args[5:])
	}
}

func TestApplyListingFilters_Empty(t *testing.T) {
	where, n := applyListingFilters(domain.ListingQuery{}).whereClause()
	if where != "" || n != 0 {
		t.Errorf("empty query gave %q with %d args", where, n)
	}
}

func TestApplyListingFilters_PrivateEdgesBindViewer(t *testing.T) {
	profileID, viewerID := uuid.New(), uuid.New()
	qb := applyListingFilters(domain.ListingQuery{
		Filters:  domain.ListingFilters{FeedForProfile: &profileID, BookmarkedByProfile: &profileID},
		ViewerID: viewerID,
	})

	viewerArgs := 0
	for _, arg := range qb.args {
		if arg == viewerID {
			viewerArgs++
		}
	}
	if viewerArgs != 2 {
		t.Errorf("viewer id bound %d times, want once per private filter", viewerArgs)
	}
}

func TestListingOrderClause(t *testing.T) {
	origin := &domain.Point{Latitude: 51.5, Longitude: -0.1}

	qb := newQueryBuilder()
	clause := listingOrderClause(qb, domain.OrderDistanceAsc, origin)
	if !strings.Contains(clause, "ASIN") || !strings.Contains(clause, "$1") || len(qb.args) != 2 {
		t.Errorf("distance ordering = %q with %d args", clause, len(qb.args))
	}

	qb = newQueryBuilder()
	if clause := listingOrderClause(qb, domain.OrderDistanceDesc, nil); clause != "ORDER BY l.created_at DESC, l.id" || len(qb.args) != 0 {
		t.Errorf("distance ordering without origin = %q", clause)
	}

	if clause := listingOrderClause(newQueryBuilder(), domain.OrderBookmarkedAtDesc, nil); !strings.HasPrefix(clause, "ORDER BY last_bookmarked_at DESC") {
		t.Errorf("bookmark ordering = %q", clause)
	}
}

func TestApplyListingFilters_SearchEscapesWildcards(t *testing.T) {
	qb := applyListingFilters(domain.ListingQuery{
		Filters: domain.ListingFilters{Search: `50%_off\`},
	})
	if len(qb.args) != 1 {
		t.Fatalf("args = %v, want one search pattern", qb.args)
	}
	if want := `%50\%\_off\\%`; qb.args[0] != want {
		t.Errorf("pattern = %q, want %q", qb.args[0], want)
	}
}
