package postgres_adapter

import (
	"fmt"
	"strings"

	"github.com/ianmeigh/property-direct-backend/internal/core/domain"
)

// likeEscaper makes LIKE metacharacters in user input match literally
// under Postgres' default backslash escape.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

type queryBuilder struct {
	conditions []string
	args       []interface{}
	argId      int
}

func newQueryBuilder() *queryBuilder {
	return &queryBuilder{
		argId: 1,
		args:  make([]interface{}, 0),
	}
}

// addArg registers a positional argument and returns its placeholder.
func (qb *queryBuilder) addArg(arg interface{}) string {
	placeholder := fmt.Sprintf("$%d", qb.argId)
	qb.args = append(qb.args, arg)
	qb.argId++
	return placeholder
}

func (qb *queryBuilder) addCondition(condition string, fieldName string, arg interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf(condition, fieldName, qb.argId))
	qb.args = append(qb.args, arg)
	qb.argId++
}

func (qb *queryBuilder) AddIntFilter(fieldName string, min *int, max *int) {
	if min != nil {
		qb.addCondition("%s >= $%d", fieldName, *min)
	}
	if max != nil {
		qb.addCondition("%s <= $%d", fieldName, *max)
	}
}

func (qb *queryBuilder) AddBoolFilter(fieldName string, value *bool) {
	if value != nil {
		qb.addCondition("%s = $%d", fieldName, *value)
	}
}

// AddBoxFilter keeps rows whose coordinates fall inside the box, edges included.
// Rows without coordinates never match.
func (qb *queryBuilder) AddBoxFilter(box *domain.BoundingBox) {
	if box == nil {
		return
	}
	latMin, latMax := qb.addArg(box.LatMin), qb.addArg(box.LatMax)
	lonMin, lonMax := qb.addArg(box.LonMin), qb.addArg(box.LonMax)
	qb.conditions = append(qb.conditions, fmt.Sprintf(
		"l.latitude BETWEEN %s AND %s AND l.longitude BETWEEN %s AND %s",
		latMin, latMax, lonMin, lonMax,
	))
}

// whereClause returns the WHERE clause and the number of arguments it uses.
func (qb *queryBuilder) whereClause() (string, int) {
	if len(qb.conditions) == 0 {
		return "", len(qb.args)
	}
	return "WHERE " + strings.Join(qb.conditions, " AND "), len(qb.args)
}

// applyListingFilters turns a search query into WHERE conditions on alias l.
func applyListingFilters(query domain.ListingQuery) *queryBuilder {
	qb := newQueryBuilder()
	f := query.Filters

	qb.AddIntFilter("l.price", f.PriceMin, f.PriceMax)
	qb.AddIntFilter("l.num_bedrooms", f.BedroomsMin, f.BedroomsMax)
	qb.AddIntFilter("l.num_bathrooms", f.BathroomsMin, f.BathroomsMax)
	qb.AddBoolFilter("l.has_garden", f.HasGarden)
	qb.AddBoolFilter("l.has_parking", f.HasParking)
	qb.AddBoolFilter("l.is_sold_stc", f.IsSoldSTC)

	if f.PropertyType != "" {
		qb.addCondition("%s = $%d", "l.property_type", f.PropertyType)
	}

	if f.Search != "" {
		pattern := qb.addArg("%" + likeEscaper.Replace(f.Search) + "%")
		qb.conditions = append(qb.conditions, fmt.Sprintf(
			"(l.property_name ILIKE %[1]s OR l.street_name ILIKE %[1]s OR l.locality ILIKE %[1]s OR l.city ILIKE %[1]s OR l.postcode ILIKE %[1]s)",
			pattern,
		))
	}

	if f.ListedByProfile != nil {
		qb.addCondition("l.owner_id = (SELECT p.owner_id FROM profiles p WHERE %s = $%d)", "p.id", *f.ListedByProfile)
	}

	// Feed and bookmark filters expose private edges, so they only match when
	// the named profile belongs to the viewer.
	if f.FeedForProfile != nil {
		profileID, viewerID := qb.addArg(*f.FeedForProfile), qb.addArg(query.ViewerID)
		qb.conditions = append(qb.conditions, fmt.Sprintf(
			"l.owner_id IN (SELECT f.followed_id FROM follows f JOIN profiles p ON p.owner_id = f.owner_id WHERE p.id = %s AND f.owner_id = %s)",
			profileID, viewerID,
		))
	}
	if f.BookmarkedByProfile != nil {
		profileID, viewerID := qb.addArg(*f.BookmarkedByProfile), qb.addArg(query.ViewerID)
		qb.conditions = append(qb.conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM bookmarks b JOIN profiles p ON p.owner_id = b.owner_id WHERE b.listing_id = l.id AND p.id = %s AND b.owner_id = %s)",
			profileID, viewerID,
		))
	}

	qb.AddBoxFilter(query.Box)
	return qb
}

// haversineSQL is the SQL twin of domain.Distance, in miles.
func haversineSQL(latPlaceholder, lonPlaceholder string) string {
	return fmt.Sprintf(
		"(2 * %[3]v * ASIN(SQRT(POWER(SIN(RADIANS(l.latitude - %[1]s::double precision) / 2), 2) + "+
			"COS(RADIANS(%[1]s::double precision)) * COS(RADIANS(l.latitude)) * "+
			"POWER(SIN(RADIANS(l.longitude - %[2]s::double precision) / 2), 2))))",
		latPlaceholder, lonPlaceholder, domain.EarthRadiusMiles,
	)
}

// listingOrderClause appends any arguments it needs to qb.
func listingOrderClause(qb *queryBuilder, ordering domain.ListingOrdering, origin *domain.Point) string {
	const tieBreak = ", l.created_at DESC, l.id"
	switch ordering {
	case domain.OrderCreatedAsc:
		return "ORDER BY l.created_at ASC, l.id"
	case domain.OrderBookmarksCountAsc:
		return "ORDER BY bookmarks_count ASC" + tieBreak
	case domain.OrderBookmarksCountDesc:
		return "ORDER BY bookmarks_count DESC" + tieBreak
	case domain.OrderBookmarkedAtAsc:
		return "ORDER BY last_bookmarked_at ASC NULLS LAST" + tieBreak
	case domain.OrderBookmarkedAtDesc:
		return "ORDER BY last_bookmarked_at DESC NULLS LAST" + tieBreak
	case domain.OrderDistanceAsc, domain.OrderDistanceDesc:
		if origin == nil {
			break
		}
		direction := "ASC"
		if ordering == domain.OrderDistanceDesc {
			direction = "DESC"
		}
		expr := haversineSQL(qb.addArg(origin.Latitude), qb.addArg(origin.Longitude))
		return "ORDER BY " + expr + " " + direction + " NULLS LAST" + tieBreak
	}
	return "ORDER BY l.created_at DESC, l.id"
}

func profileOrderClause(ordering domain.ProfileOrdering) string {
	const tieBreak = ", p.created_at DESC, p.id"
	switch ordering {
	case domain.OrderPropertyCountAsc:
		return "ORDER BY property_count ASC" + tieBreak
	case domain.OrderPropertyCountDesc:
		return "ORDER BY property_count DESC" + tieBreak
	case domain.OrderFollowersCountAsc:
		return "ORDER BY followers_count ASC" + tieBreak
	case domain.OrderFollowersCountDesc:
		return "ORDER BY followers_count DESC" + tieBreak
	case domain.OrderFollowingCountAsc:
		return "ORDER BY following_count ASC" + tieBreak
	case domain.OrderFollowingCountDesc:
		return "ORDER BY following_count DESC" + tieBreak
	}
	return "ORDER BY p.created_at DESC, p.id"
}
