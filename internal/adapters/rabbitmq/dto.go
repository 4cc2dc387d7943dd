package rabbitmq

import (
	"time"

	"github.com/google/uuid"
)

// listingEventDTO is the wire form of domain.ListingEvent.
type listingEventDTO struct {
	Type       string    `json:"type"`
	ListingID  uuid.UUID `json:"listing_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	Postcode   string    `json:"postcode"`
	Geohash    string    `json:"geohash,omitempty"`
	Price      int       `json:"price"`
	OccurredAt time.Time `json:"occurred_at"`
}
