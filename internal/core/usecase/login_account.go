package usecase

import (
	"context"
	"time"

	"github.com/ianmeigh/property-direct-backend/internal/contextkeys"
	"github.com/ianmeigh/property-direct-backend/internal/core/domain"
	"github.com/ianmeigh/property-direct-backend/internal/core/port"
)

type LoginAccountUseCase struct {
	accounts       port.AccountRepositoryPort
	tokenSvc       port.TokenServicePort
	accessTokenTTL time.Duration
}

func NewLoginAccountUseCase(accounts port.AccountRepositoryPort, tokenSvc port.TokenServicePort, accessTokenTTL time.Duration) *LoginAccountUseCase {
	return &LoginAccountUseCase{
		accounts:       accounts,
		tokenSvc:       tokenSvc,
		accessTokenTTL: accessTokenTTL,
	}
}

// Execute reports unknown usernames and wrong passwords the same way.
func (uc *LoginAccountUseCase) Execute(ctx context.Context, username, password string) (*domain.Account, string, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "LoginAccount",
		"username": username,
	})
	ucLogger.Info("Use case started: attempting to login", nil)

	account, err := uc.accounts.FindByUsername(ctx, username)
	if err != nil {
		ucLogger.Error("Repository failed to find account by username", err, nil)
		return nil, "", err
	}
	if account == nil {
		ucLogger.Warn("Login failed: account not found", nil)
		return nil, "", domain.ErrInvalidCredentials
	}

	ucLogger = ucLogger.WithFields(port.Fields{"account_id": account.ID.String()})
	if !account.CheckPassword(password) {
		ucLogger.Warn("Login failed: invalid credentials", nil)
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := uc.tokenSvc.GenerateToken(ctx, account, uc.accessTokenTTL)
	if err != nil {
		ucLogger.Error("Failed to generate token after successful login", err, nil)
		return nil, "", err
	}

	ucLogger.Info("Use case finished: logged in successfully", nil)
	return account, token, nil
}
