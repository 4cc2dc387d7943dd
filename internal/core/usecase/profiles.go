package usecase

import (
	"context"

	"github.com/ianmeigh/property-direct-backend/internal/contextkeys"
	"github.com/ianmeigh/property-direct-backend/internal/core/domain"
	"github.com/ianmeigh/property-direct-backend/internal/core/port"

	"github.com/google/uuid"
)

// ListProfilesUseCase lists seller profiles only.
type ListProfilesUseCase struct {
	profiles port.ProfileRepositoryPort
}

func NewListProfilesUseCase(profiles port.ProfileRepositoryPort) *ListProfilesUseCase {
	return &ListProfilesUseCase{profiles: profiles}
}

func (uc *ListProfilesUseCase) Execute(ctx context.Context, requester domain.Requester, ordering string, page domain.Pagination) (*domain.Page[domain.ProfileView], error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "ListProfiles", "ordering": ordering})
	ucLogger.Info("Use case started", nil)

	order, err := domain.ParseProfileOrdering(ordering)
	if err != nil {
		return nil, err
	}

	result, err := uc.profiles.ListSellers(ctx, order, requester.AccountID, page)
	if err != nil {
		ucLogger.Error("Repository failed to list profiles", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"total_found": result.TotalCount})
	return result, nil
}

type GetProfileUseCase struct {
	profiles port.ProfileRepositoryPort
}

func NewGetProfileUseCase(profiles port.ProfileRepositoryPort) *GetProfileUseCase {
	return &GetProfileUseCase{profiles: profiles}
}

func (uc *GetProfileUseCase) Execute(ctx context.Context, requester domain.Requester, id uuid.UUID) (*domain.ProfileView, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "GetProfile", "profile_id": id.String()})

	view, err := findVisibleProfile(ctx, uc.profiles, requester, id)
	if err != nil {
		ucLogger.Warn("Profile not returned", port.Fields{"error": err.Error()})
		return nil, err
	}
	return view, nil
}

type UpdateProfileUseCase struct {
	profiles port.ProfileRepositoryPort
}

func NewUpdateProfileUseCase(profiles port.ProfileRepositoryPort) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{profiles: profiles}
}

func (uc *UpdateProfileUseCase) Execute(ctx context.Context, requester domain.Requester, id uuid.UUID, input domain.ProfileInput) (*domain.ProfileView, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "UpdateProfile", "profile_id": id.String()})
	ucLogger.Info("Use case started", nil)

	view, err := findVisibleProfile(ctx, uc.profiles, requester, id)
	if err != nil {
		return nil, err
	}
	if err := domain.CanModify(requester, view.OwnerID); err != nil {
		ucLogger.Warn("Requester may not modify profile", port.Fields{"requester_id": requester.AccountID.String()})
		return nil, err
	}

	profile := view.Profile
	if err := profile.Apply(input); err != nil {
		return nil, err
	}
	if err := uc.profiles.Update(ctx, &profile); err != nil {
		ucLogger.Error("Repository failed to update profile", err, nil)
		return nil, err
	}

	updated, err := uc.profiles.FindViewByID(ctx, id, requester.AccountID)
	if err != nil {
		ucLogger.Error("Failed to reload updated profile", err, nil)
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrNotFound
	}

	ucLogger.Info("Use case finished successfully", nil)
	return updated, nil
}

// findVisibleProfile hides non-seller profiles from everyone but their owner.
func findVisibleProfile(ctx context.Context, profiles port.ProfileRepositoryPort, requester domain.Requester, id uuid.UUID) (*domain.ProfileView, error) {
	view, err := profiles.FindViewByID(ctx, id, requester.AccountID)
	if err != nil {
		return nil, err
	}
	if view == nil || !domain.CanReadProfile(requester, view) {
		return nil, domain.ErrNotFound
	}
	return view, nil
}
