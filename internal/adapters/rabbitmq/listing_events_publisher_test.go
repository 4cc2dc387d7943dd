package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/ianmeigh/property-direct-backend/internal/constants"
	"github.com/ianmeigh/property-direct-backend/internal/contextkeys"
	"github.com/ianmeigh/property-direct-backend/internal/contracts"
	"github.com/ianmeigh/property-direct-backend/internal/core/domain"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

type fakePublisher struct {
	routingKey string
	msg        amqp.Publishing
	hasTimeout bool
	err        error
}

func (f *fakePublisher) Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	_, f.hasTimeout = ctx.Deadline()
	f.routingKey = routingKey
	f.msg = msg
	return f.err
}

func testEvent(t domain.ListingEventType) domain.ListingEvent {
	l := &domain.Listing{ID: uuid.New(), OwnerID: uuid.New(), Postcode: "w1a 1aa", Price: 100000}
	l.Locate(domain.Point{Latitude: 51.518561, Longitude: -0.143799})
	return domain.NewListingEvent(t, l)
}

func TestBuildListingMessageMatchesContract(t *testing.T) {
	event := testEvent(domain.ListingCreated)
	ctx := contextkeys.ContextWithTraceID(context.Background(), "trace-42")

	routingKey, msg, err := buildListingMessage(ctx, event)
	if err != nil {
		t.Fatal(err)
	}
	if routingKey != constants.RoutingKeyListingCreated {
		t.Errorf("routing key = %q", routingKey)
	}
	if msg.DeliveryMode != amqp.Persistent || msg.ContentType != "application/json" {
		t.Errorf("unexpected message properties: %+v", msg)
	}
	if msg.Headers[constants.HeaderTraceID] != "trace-42" {
		t.Errorf("trace header missing: %v", msg.Headers)
	}
	if err := contracts.Validate(contracts.ListingEvent, msg.Body); err != nil {
		t.Fatalf("message body violates listing-event contract: %v", err)
	}

	var dto listingEventDTO
	if err := json.Unmarshal(msg.Body, &dto); err != nil {
		t.Fatal(err)
	}
	if dto.ListingID != event.ListingID || dto.Geohash == "" {
		t.Errorf("unexpected body: %+v", dto)
	}
}

func TestBuildListingMessageRejectsUnknownType(t *testing.T) {
	if _, _, err := buildListingMessage(context.Background(), testEvent("archived")); err == nil {
		t.Fatal("expected error for unknown event type")
	}
}

func TestListingEventsAdapterPublish(t *testing.T) {
	producer := &fakePublisher{}
	adapter, err := NewListingEventsAdapter(producer)
	if err != nil {
		t.Fatal(err)
	}

	if err := adapter.Publish(context.Background(), testEvent(domain.ListingDeleted)); err != nil {
		t.Fatal(err)
	}
	if producer.routingKey != constants.RoutingKeyListingDeleted {
		t.Errorf("routing key = %q", producer.routingKey)
	}
	if !producer.hasTimeout {
		t.Error("publish context should carry a deadline")
	}

	producer.err = errors.New("channel closed")
	if err := adapter.Publish(context.Background(), testEvent(domain.ListingUpdated)); err == nil {
		t.Fatal("expected publish error to propagate")
	}
}

func TestNewListingEventsAdapterRequiresProducer(t *testing.T) {
	if _, err := NewListingEventsAdapter(nil); err == nil {
		t.Fatal("expected error for nil producer")
	}
}
