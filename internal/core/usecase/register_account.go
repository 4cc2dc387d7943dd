package usecase

import (
	"context"
	"time"

	"github.com/ianmeigh/property-direct-backend/internal/contextkeys"
	"github.com/ianmeigh/property-direct-backend/internal/core/domain"
	"github.com/ianmeigh/property-direct-backend/internal/core/port"
	"github.com/ianmeigh/property-direct-backend/internal/core/port/usecases_port"
)

// RegisterAccountUseCase creates an account together with its empty profile
// and signs the caller in.
type RegisterAccountUseCase struct {
	accounts       port.AccountRepositoryPort
	tokenSvc       port.TokenServicePort
	accessTokenTTL time.Duration
}

func NewRegisterAccountUseCase(accounts port.AccountRepositoryPort, tokenSvc port.TokenServicePort, accessTokenTTL time.Duration) *RegisterAccountUseCase {
	return &RegisterAccountUseCase{
		accounts:       accounts,
		tokenSvc:       tokenSvc,
		accessTokenTTL: accessTokenTTL,
	}
}

func (uc *RegisterAccountUseCase) Execute(ctx context.Context, req usecases_port.RegisterAccountRequest) (*domain.Account, string, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":  "RegisterAccount",
		"username":  req.Username,
		"is_seller": req.IsSeller,
	})
	ucLogger.Info("Use case started: attempting to register account", nil)

	account, err := domain.NewAccount(req.Username, req.Password, req.PasswordConfirm, req.IsSeller)
	if err != nil {
		ucLogger.Warn("Registration data rejected", port.Fields{"error": err.Error()})
		return nil, "", err
	}

	existing, err := uc.accounts.FindByUsername(ctx, account.Username)
	if err != nil {
		ucLogger.Error("Repository failed while checking for existing username", err, nil)
		return nil, "", err
	}
	if existing != nil {
		ucLogger.Warn("Registration failed: username already in use", nil)
		return nil, "", domain.ErrUsernameTaken
	}

	ucLogger = ucLogger.WithFields(port.Fields{"account_id": account.ID.String()})
	if err := uc.accounts.CreateWithProfile(ctx, account, domain.NewProfile(account)); err != nil {
		ucLogger.Error("Repository failed to create account", err, nil)
		return nil, "", err
	}

	token, err := uc.tokenSvc.GenerateToken(ctx, account, uc.accessTokenTTL)
	if err != nil {
		ucLogger.Error("Failed to generate token after successful registration", err, nil)
		return nil, "", err
	}

	ucLogger.Info("Use case finished: account registered successfully", nil)
	return account, token, nil
}
