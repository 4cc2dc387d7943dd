package usecase

import (
	"context"

	"github.com/ianmeigh/property-direct-backend/internal/contextkeys"
	"github.com/ianmeigh/property-direct-backend/internal/core/domain"
	"github.com/ianmeigh/property-direct-backend/internal/core/port"

	"github.com/google/uuid"
)

// DeleteListingUseCase removes a listing; its bookmarks and notes go with it.
type DeleteListingUseCase struct {
	repo   port.ListingRepositoryPort
	events port.ListingEventsPort
}

func NewDeleteListingUseCase(repo port.ListingRepositoryPort, events port.ListingEventsPort) *DeleteListingUseCase {
	return &DeleteListingUseCase{repo: repo, events: events}
}

func (uc *DeleteListingUseCase) Execute(ctx context.Context, requester domain.Requester, id uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "DeleteListing",
		"listing_id": id.String(),
	})
	ucLogger.Info("Use case started", nil)

	listing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return err
	}
	if listing == nil {
		return domain.ErrNotFound
	}
	if err := domain.CanModify(requester, listing.OwnerID); err != nil {
		ucLogger.Warn("Requester may not delete listing", port.Fields{"requester_id": requester.AccountID.String()})
		return err
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		ucLogger.Error("Repository failed to delete listing", err, nil)
		return err
	}

	publishListingEvent(ctx, uc.events, ucLogger, domain.NewListingEvent(domain.ListingDeleted, listing))
	ucLogger.Info("Use case finished successfully", nil)
	return nil
}
