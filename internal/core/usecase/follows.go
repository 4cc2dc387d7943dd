package usecase

import (
	"context"

	"github.com/ianmeigh/property-direct-backend/internal/contextkeys"
	"github.com/ianmeigh/property-direct-backend/internal/core/domain"
	"github.com/ianmeigh/property-direct-backend/internal/core/port"

	"github.com/google/uuid"
)

type ListFollowsUseCase struct {
	follows port.FollowRepositoryPort
}

func NewListFollowsUseCase(follows port.FollowRepositoryPort) *ListFollowsUseCase {
	return &ListFollowsUseCase{follows: follows}
}

func (uc *ListFollowsUseCase) Execute(ctx context.Context, requester domain.Requester, page domain.Pagination) (*domain.Page[domain.FollowView], error) {
	if err := domain.CanCreateEdge(requester); err != nil {
		return nil, err
	}
	result, err := uc.follows.ListByOwner(ctx, requester.AccountID, page)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Repository failed to list follows", err, port.Fields{"use_case": "ListFollows"})
		return nil, err
	}
	return result, nil
}

// CreateFollowUseCase follows a seller. Self follows, non-seller targets and
// repeated follows are rejected.
type CreateFollowUseCase struct {
	follows  port.FollowRepositoryPort
	accounts port.AccountRepositoryPort
	profiles port.ProfileRepositoryPort
}

func NewCreateFollowUseCase(follows port.FollowRepositoryPort, accounts port.AccountRepositoryPort, profiles port.ProfileRepositoryPort) *CreateFollowUseCase {
	return &CreateFollowUseCase{follows: follows, accounts: accounts, profiles: profiles}
}

func (uc *CreateFollowUseCase) Execute(ctx context.Context, requester domain.Requester, followedID uuid.UUID) (*domain.FollowView, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "CreateFollow",
		"owner_id":    requester.AccountID.String(),
		"followed_id": followedID.String(),
	})
	ucLogger.Info("Use case started", nil)

	if err := domain.CanCreateEdge(requester); err != nil {
		return nil, err
	}
	if followedID == requester.AccountID {
		ucLogger.Warn("Rejected self follow", nil)
		return nil, domain.ErrCannotFollowSelf
	}

	target, err := uc.accounts.FindByID(ctx, followedID)
	if err != nil {
		ucLogger.Error("Repository failed to find followed account", err, nil)
		return nil, err
	}
	if target == nil {
		return nil, domain.NewFieldError("followed", "Invalid pk \""+followedID.String()+"\" - object does not exist.")
	}
	if err := domain.CheckFollow(requester, target); err != nil {
		ucLogger.Warn("Follow rejected by policy", port.Fields{"error": err.Error()})
		return nil, err
	}

	follow := domain.NewFollow(requester.AccountID, followedID)
	if err := uc.follows.Create(ctx, follow); err != nil {
		ucLogger.Warn("Repository refused follow", port.Fields{"error": err.Error()})
		return nil, err
	}

	view := &domain.FollowView{Follow: *follow, OwnerUsername: requester.Username, FollowedName: target.Username}
	if profile, err := uc.profiles.FindByOwner(ctx, target.ID); err == nil && profile != nil && profile.Name != "" {
		view.FollowedName = profile.Name
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"follow_id": follow.ID.String()})
	return view, nil
}

type GetFollowUseCase struct {
	follows port.FollowRepositoryPort
}

func NewGetFollowUseCase(follows port.FollowRepositoryPort) *GetFollowUseCase {
	return &GetFollowUseCase{follows: follows}
}

func (uc *GetFollowUseCase) Execute(ctx context.Context, requester domain.Requester, id uuid.UUID) (*domain.FollowView, error) {
	return findOwnFollow(ctx, uc.follows, requester, id)
}

type DeleteFollowUseCase struct {
	follows port.FollowRepositoryPort
}

func NewDeleteFollowUseCase(follows port.FollowRepositoryPort) *DeleteFollowUseCase {
	return &DeleteFollowUseCase{follows: follows}
}

func (uc *DeleteFollowUseCase) Execute(ctx context.Context, requester domain.Requester, id uuid.UUID) error {
	if _, err := findOwnFollow(ctx, uc.follows, requester, id); err != nil {
		return err
	}
	if err := uc.follows.Delete(ctx, id); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Repository failed to delete follow", err, port.Fields{"use_case": "DeleteFollow"})
		return err
	}
	return nil
}

func findOwnFollow(ctx context.Context, follows port.FollowRepositoryPort, requester domain.Requester, id uuid.UUID) (*domain.FollowView, error) {
	view, err := follows.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if view == nil || !domain.CanReadEdge(requester, view.OwnerID) {
		return nil, domain.ErrNotFound
	}
	return view, nil
}
