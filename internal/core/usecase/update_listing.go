package usecase

import (
	"context"

	"github.com/ianmeigh/property-direct-backend/internal/contextkeys"
	"github.com/ianmeigh/property-direct-backend/internal/core/domain"
	"github.com/ianmeigh/property-direct-backend/internal/core/port"

	"github.com/google/uuid"
)

// UpdateListingUseCase applies a full or partial update by the owner.
// The listing is re-geocoded only when its postcode changes.
type UpdateListingUseCase struct {
	repo     port.ListingRepositoryPort
	geocoder port.GeocoderPort
	events   port.ListingEventsPort
}

func NewUpdateListingUseCase(repo port.ListingRepositoryPort, geocoder port.GeocoderPort, events port.ListingEventsPort) *UpdateListingUseCase {
	return &UpdateListingUseCase{repo: repo, geocoder: geocoder, events: events}
}

func (uc *UpdateListingUseCase) Execute(ctx context.Context, requester domain.Requester, id uuid.UUID, input domain.ListingInput) (*domain.ListingView, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "UpdateListing",
		"listing_id": id.String(),
	})
	ucLogger.Info("Use case started", nil)

	listing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return nil, err
	}
	if listing == nil {
		return nil, domain.ErrNotFound
	}
	if err := domain.CanModify(requester, listing.OwnerID); err != nil {
		ucLogger.Warn("Requester may not modify listing", port.Fields{"requester_id": requester.AccountID.String()})
		return nil, err
	}

	postcodeChanged, err := listing.Apply(input)
	if err != nil {
		ucLogger.Warn("Listing input rejected", port.Fields{"error": err.Error()})
		return nil, err
	}
	if postcodeChanged {
		ucLogger.Info("Postcode changed, geocoding again", port.Fields{"postcode": listing.Postcode})
		point, err := uc.geocoder.Resolve(ctx, *input.Postcode)
		if err != nil {
			ucLogger.Warn("Postcode could not be resolved", port.Fields{"error": err.Error()})
			return nil, err
		}
		listing.Locate(point)
	}

	if err := uc.repo.Update(ctx, listing); err != nil {
		ucLogger.Error("Repository failed to update listing", err, nil)
		return nil, err
	}

	publishListingEvent(ctx, uc.events, ucLogger, domain.NewListingEvent(domain.ListingUpdated, listing))

	view, err := uc.repo.FindViewByID(ctx, listing.ID, requester.AccountID)
	if err != nil {
		ucLogger.Error("Failed to reload updated listing", err, nil)
		return nil, err
	}
	if view == nil {
		return nil, domain.ErrNotFound
	}

	ucLogger.Info("Use case finished successfully", nil)
	return view, nil
}
