package constants

const (
	ListingEventsExchange     = "property_direct.listings"
	ListingEventsExchangeType = "topic"
)

// Routing keys are "listing.<event type>".
const (
	RoutingKeyListingCreated = "listing.created"
	RoutingKeyListingUpdated = "listing.updated"
	RoutingKeyListingDeleted = "listing.deleted"
)

const HeaderTraceID = "x-trace-id"
