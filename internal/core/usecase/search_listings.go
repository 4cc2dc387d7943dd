package usecase

import (
	"context"
	"strings"

	"github.com/ianmeigh/property-direct-backend/internal/contextkeys"
	"github.com/ianmeigh/property-direct-backend/internal/core/domain"
	"github.com/ianmeigh/property-direct-backend/internal/core/port"
	"github.com/ianmeigh/property-direct-backend/internal/core/port/usecases_port"
)

// SearchListingsUseCase resolves a listing search: radius parsing, postcode
// geocoding, bounding-box narrowing, distance annotation and shape selection.
type SearchListingsUseCase struct {
	repo     port.ListingRepositoryPort
	geocoder port.GeocoderPort
}

func NewSearchListingsUseCase(repo port.ListingRepositoryPort, geocoder port.GeocoderPort) *SearchListingsUseCase {
	return &SearchListingsUseCase{repo: repo, geocoder: geocoder}
}

func (uc *SearchListingsUseCase) Execute(ctx context.Context, requester domain.Requester, req usecases_port.SearchListingsRequest) (*usecases_port.SearchListingsResult, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "SearchListings",
		"postcode": req.Postcode,
		"radius":   req.Radius,
	})
	ucLogger.Info("Use case started", nil)

	radius, err := domain.ParseRadius(req.Radius)
	if err != nil {
		ucLogger.Warn("Rejected radius", port.Fields{"error": err.Error()})
		return nil, err
	}

	var origin *domain.SearchOrigin
	if postcode := strings.TrimSpace(req.Postcode); postcode != "" {
		point, err := uc.geocoder.Resolve(ctx, postcode)
		if err != nil {
			ucLogger.Warn("Postcode could not be resolved", port.Fields{"error": err.Error()})
			return nil, err
		}
		origin = &domain.SearchOrigin{Postcode: postcode, Point: point, Radius: radius}
	}

	ordering, err := domain.ParseListingOrdering(req.Ordering, origin != nil)
	if err != nil {
		ucLogger.Warn("Rejected ordering", port.Fields{"ordering": req.Ordering})
		return nil, err
	}

	query := domain.ListingQuery{
		Filters:  req.Filters,
		Ordering: ordering,
		ViewerID: requester.AccountID,
	}
	if origin != nil {
		box := origin.Box()
		query.Box = &box
		query.Origin = &origin.Point
		ucLogger.Debug("Applying bounding box", port.Fields{
			"lat_min": box.LatMin, "lat_max": box.LatMax,
			"lon_min": box.LonMin, "lon_max": box.LonMax,
		})
	}

	page, err := uc.repo.Search(ctx, query, req.Pagination)
	if err != nil {
		ucLogger.Error("Repository failed to search listings", err, nil)
		return nil, err
	}

	if origin != nil {
		for i := range page.Items {
			if d, ok := domain.Distance(&origin.Point, page.Items[i].Location); ok {
				page.Items[i].Distance = &d
			}
		}
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"total_found":   page.TotalCount,
		"items_on_page": len(page.Items),
	})
	return &usecases_port.SearchListingsResult{
		Page:   page,
		Origin: origin,
		Shape:  domain.SelectListingShape(requester.Authenticated(), origin != nil),
	}, nil
}
