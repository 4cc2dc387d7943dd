package usecase

import (
	"context"
	"fmt"

	"github.com/ianmeigh/property-direct-backend/internal/contextkeys"
	"github.com/ianmeigh/property-direct-backend/internal/core/domain"
	"github.com/ianmeigh/property-direct-backend/internal/core/port"
)

// CreateListingUseCase lets a seller list a property. The postcode is
// geocoded before anything is stored.
type CreateListingUseCase struct {
	repo     port.ListingRepositoryPort
	geocoder port.GeocoderPort
	events   port.ListingEventsPort
}

// NewCreateListingUseCase accepts a nil events publisher.
func NewCreateListingUseCase(repo port.ListingRepositoryPort, geocoder port.GeocoderPort, events port.ListingEventsPort) *CreateListingUseCase {
	return &CreateListingUseCase{repo: repo, geocoder: geocoder, events: events}
}

func (uc *CreateListingUseCase) Execute(ctx context.Context, requester domain.Requester, input domain.ListingInput) (*domain.ListingView, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "CreateListing",
		"owner_id": requester.AccountID.String(),
	})
	ucLogger.Info("Use case started", nil)

	if err := domain.CanCreateListing(requester); err != nil {
		ucLogger.Warn("Requester may not create listings", port.Fields{"error": err.Error()})
		return nil, err
	}

	listing, err := domain.NewListing(requester.AccountID, input)
	if err != nil {
		ucLogger.Warn("Listing input rejected", port.Fields{"error": err.Error()})
		return nil, err
	}

	// sent as typed by the user, stored normalized
	point, err := uc.geocoder.Resolve(ctx, *input.Postcode)
	if err != nil {
		ucLogger.Warn("Postcode could not be resolved", port.Fields{"error": err.Error()})
		return nil, err
	}
	listing.Locate(point)

	ucLogger = ucLogger.WithFields(port.Fields{"listing_id": listing.ID.String()})
	if err := uc.repo.Create(ctx, listing); err != nil {
		ucLogger.Error("Repository failed to create listing", err, nil)
		return nil, err
	}

	publishListingEvent(ctx, uc.events, ucLogger, domain.NewListingEvent(domain.ListingCreated, listing))

	view, err := uc.repo.FindViewByID(ctx, listing.ID, requester.AccountID)
	if err != nil {
		ucLogger.Error("Failed to reload created listing", err, nil)
		return nil, err
	}
	if view == nil {
		return nil, fmt.Errorf("listing %s vanished after create", listing.ID)
	}

	ucLogger.Info("Use case finished successfully", nil)
	return view, nil
}

// publishListingEvent is best effort: a broker failure never fails the write.
func publishListingEvent(ctx context.Context, events port.ListingEventsPort, logger port.LoggerPort, event domain.ListingEvent) {
	if events == nil {
		return
	}
	if err := events.Publish(ctx, event); err != nil {
		logger.Error("Failed to publish listing event", err, port.Fields{"event_type": string(event.Type)})
	}
}
