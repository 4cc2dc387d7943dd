package port

import (
	"context"

	"github.com/ianmeigh/property-direct-backend/internal/core/domain"

	"github.com/google/uuid"
)

// AccountRepositoryPort owns the account/profile lifecycle: both are created
// together and deleting one deletes the other.
type AccountRepositoryPort interface {
	// CreateWithProfile returns domain.ErrUsernameTaken on a duplicate username.
	CreateWithProfile(ctx context.Context, account *domain.Account, profile *domain.Profile) error
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	// DeleteAccount removes the profile and the account in one transaction.
	DeleteAccount(ctx context.Context, accountID uuid.UUID) error
}

type ProfileRepositoryPort interface {
	FindViewByID(ctx context.Context, id, viewerID uuid.UUID) (*domain.ProfileView, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*domain.Profile, error)
	ListSellers(ctx context.Context, ordering domain.ProfileOrdering, viewerID uuid.UUID, page domain.Pagination) (*domain.Page[domain.ProfileView], error)
	Update(ctx context.Context, profile *domain.Profile) error
}
