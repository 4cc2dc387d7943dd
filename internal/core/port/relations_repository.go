package port

import (
	"context"

	"github.com/ianmeigh/property-direct-backend/internal/core/domain"

	"github.com/google/uuid"
)

// Create methods return domain.ErrDuplicateEdge when the pair already exists.

type BookmarkRepositoryPort interface {
	Create(ctx context.Context, bookmark *domain.Bookmark) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.BookmarkView, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, page domain.Pagination) (*domain.Page[domain.BookmarkView], error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type FollowRepositoryPort interface {
	Create(ctx context.Context, follow *domain.Follow) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.FollowView, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, page domain.Pagination) (*domain.Page[domain.FollowView], error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type NoteRepositoryPort interface {
	Create(ctx context.Context, note *domain.Note) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.NoteView, error)
	// ListByOwner optionally narrows to one listing.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, listingID *uuid.UUID, page domain.Pagination) (*domain.Page[domain.NoteView], error)
	Update(ctx context.Context, note *domain.Note) error
	Delete(ctx context.Context, id uuid.UUID) error
}
