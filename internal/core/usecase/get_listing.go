package usecase

import (
	"context"

	"github.com/ianmeigh/property-direct-backend/internal/contextkeys"
	"github.com/ianmeigh/property-direct-backend/internal/core/domain"
	"github.com/ianmeigh/property-direct-backend/internal/core/port"

	"github.com/google/uuid"
)

type GetListingUseCase struct {
	repo port.ListingRepositoryPort
}

func NewGetListingUseCase(repo port.ListingRepositoryPort) *GetListingUseCase {
	return &GetListingUseCase{repo: repo}
}

// Execute returns a listing to anyone; absent listings are domain.ErrNotFound.
func (uc *GetListingUseCase) Execute(ctx context.Context, requester domain.Requester, id uuid.UUID) (*domain.ListingView, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "GetListing",
		"listing_id": id.String(),
	})
	ucLogger.Info("Use case started", nil)

	view, err := uc.repo.FindViewByID(ctx, id, requester.AccountID)
	if err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return nil, err
	}
	if view == nil {
		ucLogger.Warn("Listing not found", nil)
		return nil, domain.ErrNotFound
	}

	ucLogger.Info("Use case finished successfully", nil)
	return view, nil
}
