package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBusPublishSubscribe(t *testing.T) {
	bus := NewEventBus()

	var received []*Event
	bus.Subscribe(EventBookingCreated, func(ev *Event) error {
		received = append(received, ev)
		return nil
	})

	bus.Publish(&Event{Type: EventBookingCreated, Payload: []byte(`{}`)})
	bus.Publish(&Event{Type: EventBookingRejected, Payload: []byte(`{}`)})

	require.Len(t, received, 1)
	assert.Equal(t, EventBookingCreated, received[0].Type)
	assert.False(t, received[0].CreatedAt.IsZero())
}

func TestEventBusPublishJSON(t *testing.T) {
	bus := NewEventBus()

	var payload BookingEventPayload
	bus.Subscribe(EventBookingApproved, func(ev *Event) error {
		return json.Unmarshal(ev.Payload, &payload)
	})

	err := bus.PublishJSON(EventBookingApproved, BookingEventPayload{
		BookingID: 42,
		ItemName:  "Drill",
		Status:    "APPROVED",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), payload.BookingID)
	assert.Equal(t, "Drill", payload.ItemName)
}

func TestEventBusNilSafe(t *testing.T) {
	var bus *EventBus
	assert.NoError(t, bus.PublishJSON(EventCommentAdded, map[string]int{"id": 1}))
}

func TestEventBusMultipleSubscribers(t *testing.T) {
	bus := NewEventBus()

	count := 0
	for i := 0; i < 3; i++ {
		bus.Subscribe(EventCommentAdded, func(ev *Event) error {
			count++
			return nil
		})
	}

	require.NoError(t, bus.PublishJSON(EventCommentAdded, struct{}{}))
	assert.Equal(t, 3, count)
}
