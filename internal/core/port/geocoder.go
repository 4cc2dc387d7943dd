package port

import (
	"context"

	"github.com/ianmeigh/property-direct-backend/internal/core/domain"
)

// GeocoderPort resolves a UK postcode to coordinates.
// Failures are domain.ErrPostcodeInvalid or domain.ErrServiceUnavailable.
type GeocoderPort interface {
	Resolve(ctx context.Context, postcode string) (domain.Point, error)
}
