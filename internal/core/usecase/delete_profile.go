package usecase

import (
	"context"

	"github.com/ianmeigh/property-direct-backend/internal/contextkeys"
	"github.com/ianmeigh/property-direct-backend/internal/core/domain"
	"github.com/ianmeigh/property-direct-backend/internal/core/port"

	"github.com/google/uuid"
)

// DeleteProfileUseCase deletes a profile and, with it, the owning account.
type DeleteProfileUseCase struct {
	accounts port.AccountRepositoryPort
	profiles port.ProfileRepositoryPort
}

func NewDeleteProfileUseCase(accounts port.AccountRepositoryPort, profiles port.ProfileRepositoryPort) *DeleteProfileUseCase {
	return &DeleteProfileUseCase{accounts: accounts, profiles: profiles}
}

func (uc *DeleteProfileUseCase) Execute(ctx context.Context, requester domain.Requester, id uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "DeleteProfile", "profile_id": id.String()})
	ucLogger.Info("Use case started", nil)

	view, err := findVisibleProfile(ctx, uc.profiles, requester, id)
	if err != nil {
		return err
	}
	if err := domain.CanModify(requester, view.OwnerID); err != nil {
		ucLogger.Warn("Requester may not delete profile", port.Fields{"requester_id": requester.AccountID.String()})
		return err
	}

	if err := uc.accounts.DeleteAccount(ctx, view.OwnerID); err != nil {
		ucLogger.Error("Repository failed to delete account", err, nil)
		return err
	}

	ucLogger.Info("Use case finished successfully: profile and account deleted", port.Fields{"account_id": view.OwnerID.String()})
	return nil
}
