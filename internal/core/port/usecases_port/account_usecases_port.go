package usecases_port

import (
	"context"

	"github.com/ianmeigh/property-direct-backend/internal/core/domain"

	"github.com/google/uuid"
)

type RegisterAccountRequest struct {
	Username        string
	Password        string
	PasswordConfirm string
	IsSeller        bool
}

type RegisterAccountUseCasePort interface {
	Execute(ctx context.Context, req RegisterAccountRequest) (*domain.Account, string, error)
}

type LoginAccountUseCasePort interface {
	Execute(ctx context.Context, username, password string) (*domain.Account, string, error)
}

type ValidateTokenUseCasePort interface {
	Execute(ctx context.Context, token string) (*domain.Claims, error)
}

// CurrentAccount is the signed-in account with its profile id.
type CurrentAccount struct {
	Account   *domain.Account
	ProfileID uuid.UUID
}

type GetCurrentAccountUseCasePort interface {
	Execute(ctx context.Context, requester domain.Requester) (*CurrentAccount, error)
}
