package domain

import (
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// DefaultRadius applies when a search names a postcode but no radius.
const DefaultRadius = "0.5"

// ParseRadius reads a radius in miles rounded to one decimal place.
func ParseRadius(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = DefaultRadius
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, ErrRadiusInvalid
	}
	return math.Round(v*10) / 10, nil
}

// SearchOrigin is the geocoded centre of one search request.
type SearchOrigin struct {
	Postcode string
	Point    Point
	Radius   float64
}

func (o *SearchOrigin) Box() BoundingBox {
	return NewBoundingBox(o.Point, o.Radius)
}

// ListingShape selects which optional groups of fields a listing response carries.
type ListingShape int

const (
	ShapePublic ListingShape = iota
	ShapeMember
	ShapePublicSearch
	ShapeMemberSearch
)

// SelectListingShape picks the response shape for a requester and search.
func SelectListingShape(authenticated, hasOrigin bool) ListingShape {
	switch {
	case authenticated && hasOrigin:
		return ShapeMemberSearch
	case hasOrigin:
		return ShapePublicSearch
	case authenticated:
		return ShapeMember
	default:
		return ShapePublic
	}
}

func (s ListingShape) IncludesContact() bool {
	return s == ShapeMember || s == ShapeMemberSearch
}

func (s ListingShape) IncludesDistance() bool {
	return s == ShapePublicSearch || s == ShapeMemberSearch
}

// ListingOrdering is a whitelisted sort key; a leading '-' means descending.
type ListingOrdering string

const (
	OrderCreatedAsc         ListingOrdering = "created_at"
	OrderCreatedDesc        ListingOrdering = "-created_at"
	OrderBookmarksCountAsc  ListingOrdering = "bookmarks_count"
	OrderBookmarksCountDesc ListingOrdering = "-bookmarks_count"
	OrderBookmarkedAtAsc    ListingOrdering = "bookmarks__created_at"
	OrderBookmarkedAtDesc   ListingOrdering = "-bookmarks__created_at"
	OrderDistanceAsc        ListingOrdering = "distance"
	OrderDistanceDesc       ListingOrdering = "-distance"
)

const DefaultListingOrdering = OrderCreatedDesc

// ParseListingOrdering accepts distance orderings only when a search origin exists.
func ParseListingOrdering(raw string, hasOrigin bool) (ListingOrdering, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultListingOrdering, nil
	}
	o := ListingOrdering(raw)
	switch o {
	case OrderCreatedAsc, OrderCreatedDesc,
		OrderBookmarksCountAsc, OrderBookmarksCountDesc,
		OrderBookmarkedAtAsc, OrderBookmarkedAtDesc:
		return o, nil
	case OrderDistanceAsc, OrderDistanceDesc:
		if hasOrigin {
			return o, nil
		}
		return "", NewFieldError("ordering", "Ordering by distance requires a postcode.")
	}
	return "", NewFieldError("ordering", "\""+raw+"\" is not a valid ordering.")
}

// ListingFilters are the optional narrowing parameters of a listing search.
type ListingFilters struct {
	PriceMin     *int
	PriceMax     *int
	BedroomsMin  *int
	BedroomsMax  *int
	BathroomsMin *int
	BathroomsMax *int
	HasGarden    *bool
	HasParking   *bool
	IsSoldSTC    *bool
	PropertyType string
	Search       string

	ListedByProfile     *uuid.UUID
	FeedForProfile      *uuid.UUID
	BookmarkedByProfile *uuid.UUID
}

// ListingQuery is everything the store needs to run one search page.
// ViewerID scopes the private filters and bookmark_id; uuid.Nil for anonymous.
type ListingQuery struct {
	Filters  ListingFilters
	Box      *BoundingBox
	Origin   *Point
	Ordering ListingOrdering
	ViewerID uuid.UUID
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	MaxPage         = math.MaxInt32 / MaxPageSize
)

type Pagination struct {
	Page    int
	PerPage int
}

// NewPagination clamps page to 1..MaxPage and perPage to 1..MaxPageSize,
// which keeps Offset non-negative and within int32.
func NewPagination(page, perPage int) Pagination {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if perPage <= 0 {
		perPage = DefaultPageSize
	}
	if perPage > MaxPageSize {
		perPage = MaxPageSize
	}
	return Pagination{Page: page, PerPage: perPage}
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Page is one page of a paginated result.
type Page[T any] struct {
	Items        []T
	TotalCount   int64
	CurrentPage  int
	ItemsPerPage int
}

func EmptyPage[T any](p Pagination) *Page[T] {
	return &Page[T]{Items: []T{}, CurrentPage: p.Page, ItemsPerPage: p.PerPage}
}
