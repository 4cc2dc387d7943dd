package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ianmeigh/property-direct-backend/internal/constants"
	"github.com/ianmeigh/property-direct-backend/internal/contextkeys"
	"github.com/ianmeigh/property-direct-backend/internal/core/domain"
	"github.com/ianmeigh/property-direct-backend/internal/core/port"

	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

// publisher is the part of rabbitmq_producer.Publisher the adapter uses.
type publisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

// ListingEventsAdapter implements port.ListingEventsPort.
type ListingEventsAdapter struct {
	producer publisher
}

func NewListingEventsAdapter(producer publisher) (*ListingEventsAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	return &ListingEventsAdapter{producer: producer}, nil
}

func routingKeyFor(t domain.ListingEventType) (string, error) {
	switch t {
	case domain.ListingCreated:
		return constants.RoutingKeyListingCreated, nil
	case domain.ListingUpdated:
		return constants.RoutingKeyListingUpdated, nil
	case domain.ListingDeleted:
		return constants.RoutingKeyListingDeleted, nil
	}
	return "", fmt.Errorf("rabbitmq adapter: unknown listing event type %q", t)
}

// buildListingMessage encodes event as a persistent JSON message.
func buildListingMessage(ctx context.Context, event domain.ListingEvent) (string, amqp.Publishing, error) {
	routingKey, err := routingKeyFor(event.Type)
	if err != nil {
		return "", amqp.Publishing{}, err
	}

	body, err := json.Marshal(listingEventDTO{
		Type:       string(event.Type),
		ListingID:  event.ListingID,
		OwnerID:    event.OwnerID,
		Postcode:   event.Postcode,
		Geohash:    event.Geohash,
		Price:      event.Price,
		OccurredAt: event.OccurredAt,
	})
	if err != nil {
		return "", amqp.Publishing{}, fmt.Errorf("rabbitmq adapter: failed to marshal listing event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
		Type:         string(event.Type),
		MessageId:    event.ListingID.String() + ":" + string(event.Type) + ":" + event.OccurredAt.Format(time.RFC3339Nano),
		Headers:      make(amqp.Table),
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		msg.Headers[constants.HeaderTraceID] = traceID
	}
	return routingKey, msg, nil
}

func (a *ListingEventsAdapter) Publish(ctx context.Context, event domain.ListingEvent) error {
	logger := contextkeys.LoggerFromContext(ctx)
	adapterLogger := logger.WithFields(port.Fields{
		"component":  "ListingEventsAdapter",
		"event_type": string(event.Type),
		"listing_id": event.ListingID.String(),
	})

	routingKey, msg, err := buildListingMessage(ctx, event)
	if err != nil {
		adapterLogger.Error("Failed to build listing event", err, nil)
		return err
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := a.producer.Publish(publishCtx, routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish listing event", err, port.Fields{"routing_key": routingKey})
		return fmt.Errorf("rabbitmq adapter: failed to publish listing event: %w", err)
	}

	adapterLogger.Debug("Listing event published.", port.Fields{"routing_key": routingKey})
	return nil
}
