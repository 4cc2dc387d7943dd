package usecases_port

import (
	"context"

	"github.com/ianmeigh/property-direct-backend/internal/core/domain"

	"github.com/google/uuid"
)

type ListProfilesUseCasePort interface {
	Execute(ctx context.Context, requester domain.Requester, ordering string, page domain.Pagination) (*domain.Page[domain.ProfileView], error)
}

type GetProfileUseCasePort interface {
	Execute(ctx context.Context, requester domain.Requester, id uuid.UUID) (*domain.ProfileView, error)
}

type UpdateProfileUseCasePort interface {
	Execute(ctx context.Context, requester domain.Requester, id uuid.UUID, input domain.ProfileInput) (*domain.ProfileView, error)
}

type DeleteProfileUseCasePort interface {
	Execute(ctx context.Context, requester domain.Requester, id uuid.UUID) error
}
