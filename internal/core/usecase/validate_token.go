package usecase

import (
	"context"

	"github.com/ianmeigh/property-direct-backend/internal/contextkeys"
	"github.com/ianmeigh/property-direct-backend/internal/core/domain"
	"github.com/ianmeigh/property-direct-backend/internal/core/port"
)

type ValidateTokenUseCase struct {
	tokenSvc port.TokenServicePort
}

func NewValidateTokenUseCase(tokenSvc port.TokenServicePort) *ValidateTokenUseCase {
	return &ValidateTokenUseCase{tokenSvc: tokenSvc}
}

func (uc *ValidateTokenUseCase) Execute(ctx context.Context, token string) (*domain.Claims, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "ValidateToken"})

	claims, err := uc.tokenSvc.ValidateToken(ctx, token)
	if err != nil {
		ucLogger.Warn("Token validation failed", port.Fields{"error": err.Error()})
		return nil, domain.ErrTokenInvalid
	}

	ucLogger.Debug("Token is valid", port.Fields{"account_id": claims.AccountID.String()})
	return claims, nil
}
