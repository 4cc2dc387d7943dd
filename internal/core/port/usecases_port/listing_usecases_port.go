package usecases_port

import (
	"context"

	"github.com/ianmeigh/property-direct-backend/internal/core/domain"

	"github.com/google/uuid"
)

type SearchListingsRequest struct {
	Postcode   string
	Radius     string
	Ordering   string
	Filters    domain.ListingFilters
	Pagination domain.Pagination
}

// SearchListingsResult carries the page plus the shape it must be rendered in.
// Origin is nil when the search had no postcode.
type SearchListingsResult struct {
	Page   *domain.Page[domain.ListingView]
	Origin *domain.SearchOrigin
	Shape  domain.ListingShape
}

type SearchListingsUseCasePort interface {
	Execute(ctx context.Context, requester domain.Requester, req SearchListingsRequest) (*SearchListingsResult, error)
}

type GetListingUseCasePort interface {
	Execute(ctx context.Context, requester domain.Requester, id uuid.UUID) (*domain.ListingView, error)
}

type CreateListingUseCasePort interface {
	Execute(ctx context.Context, requester domain.Requester, input domain.ListingInput) (*domain.ListingView, error)
}

type UpdateListingUseCasePort interface {
	Execute(ctx context.Context, requester domain.Requester, id uuid.UUID, input domain.ListingInput) (*domain.ListingView, error)
}

type DeleteListingUseCasePort interface {
	Execute(ctx context.Context, requester domain.Requester, id uuid.UUID) error
}
