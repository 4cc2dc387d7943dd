package port

import (
	"context"

	"github.com/ianmeigh/property-direct-backend/internal/core/domain"
)

// ListingEventsPort publishes listing lifecycle events.
type ListingEventsPort interface {
	Publish(ctx context.Context, event domain.ListingEvent) error
}
