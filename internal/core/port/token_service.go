package port

import (
	"context"
	"time"

	"github.com/ianmeigh/property-direct-backend/internal/core/domain"
)

type TokenServicePort interface {
	GenerateToken(ctx context.Context, account *domain.Account, ttl time.Duration) (string, error)
	// ValidateToken returns domain.ErrTokenInvalid for any bad or expired token.
	ValidateToken(ctx context.Context, token string) (*domain.Claims, error)
}
