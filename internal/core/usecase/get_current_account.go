package usecase

import (
	"context"

	"github.com/ianmeigh/property-direct-backend/internal/contextkeys"
	"github.com/ianmeigh/property-direct-backend/internal/core/domain"
	"github.com/ianmeigh/property-direct-backend/internal/core/port"
	"github.com/ianmeigh/property-direct-backend/internal/core/port/usecases_port"
)

type GetCurrentAccountUseCase struct {
	accounts port.AccountRepositoryPort
	profiles port.ProfileRepositoryPort
}

func NewGetCurrentAccountUseCase(accounts port.AccountRepositoryPort, profiles port.ProfileRepositoryPort) *GetCurrentAccountUseCase {
	return &GetCurrentAccountUseCase{accounts: accounts, profiles: profiles}
}

func (uc *GetCurrentAccountUseCase) Execute(ctx context.Context, requester domain.Requester) (*usecases_port.CurrentAccount, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "GetCurrentAccount",
		"account_id": requester.AccountID.String(),
	})

	if !requester.Authenticated() {
		return nil, domain.ErrTokenInvalid
	}

	account, err := uc.accounts.FindByID(ctx, requester.AccountID)
	if err != nil {
		ucLogger.Error("Repository failed to find account", err, nil)
		return nil, err
	}
	if account == nil {
		// token outlived its account
		ucLogger.Warn("Account from token no longer exists", nil)
		return nil, domain.ErrTokenInvalid
	}

	profile, err := uc.profiles.FindByOwner(ctx, account.ID)
	if err != nil {
		ucLogger.Error("Repository failed to find profile", err, nil)
		return nil, err
	}

	current := &usecases_port.CurrentAccount{Account: account}
	if profile != nil {
		current.ProfileID = profile.ID
	}
	return current, nil
}
