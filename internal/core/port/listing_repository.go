package port

import (
	"context"

	"github.com/ianmeigh/property-direct-backend/internal/core/domain"

	"github.com/google/uuid"
)

// ListingRepositoryPort persists listings and runs the search query.
// Find methods return (nil, nil) when nothing matches.
type ListingRepositoryPort interface {
	Create(ctx context.Context, listing *domain.Listing) error
	Update(ctx context.Context, listing *domain.Listing) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error)
	FindViewByID(ctx context.Context, id, viewerID uuid.UUID) (*domain.ListingView, error)
	Search(ctx context.Context, query domain.ListingQuery, page domain.Pagination) (*domain.Page[domain.ListingView], error)
}
