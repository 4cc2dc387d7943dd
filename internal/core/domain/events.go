package domain

import (
	"time"

	"github.com/google/uuid"
)

type ListingEventType string

const (
	ListingCreated ListingEventType = "created"
	ListingUpdated ListingEventType = "updated"
	ListingDeleted ListingEventType = "deleted"
)

// ListingEvent describes a change to a listing for downstream consumers.
type ListingEvent struct {
	Type       ListingEventType
	ListingID  uuid.UUID
	OwnerID    uuid.UUID
	Postcode   string
	Geohash    string
	Price      int
	OccurredAt time.Time
}

func NewListingEvent(t ListingEventType, l *Listing) ListingEvent {
	return ListingEvent{
		Type:       t,
		ListingID:  l.ID,
		OwnerID:    l.OwnerID,
		Postcode:   l.Postcode,
		Geohash:    l.Geohash,
		Price:      l.Price,
		OccurredAt: time.Now().UTC(),
	}
}

// DictionaryItem is one selectable value with its label.
type DictionaryItem struct {
	SystemName  string
	DisplayName string
}
