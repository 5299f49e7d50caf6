package kafka

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	payload := map[string]any{"user_id": "u-1", "product_id": "p-9"}

	event, err := NewEvent("storefront.wishlist.updated", "u-1", "wishlist", "storefront", payload)
	require.NoError(t, err)

	_, err = uuid.Parse(event.EventID)
	assert.NoError(t, err)
	assert.Equal(t, "storefront.wishlist.updated", event.EventType)
	assert.Equal(t, "u-1", event.AggregateID)
	assert.Equal(t, "wishlist", event.AggregateType)
	assert.Equal(t, 1, event.Version)
	assert.Equal(t, "storefront", event.Source)
	assert.False(t, event.Timestamp.IsZero())
	assert.NotNil(t, event.Metadata)
}

func TestNewEvent_UnmarshalableData(t *testing.T) {
	_, err := NewEvent("storefront.checkout.completed", "s-1", "checkout", "storefront", make(chan int))
	assert.Error(t, err)
}

func TestEvent_MarshalRoundTrip(t *testing.T) {
	type completed struct {
		SessionID string `json:"session_id"`
		OrderID   string `json:"order_id"`
	}

	event, err := NewEvent("storefront.checkout.completed", "s-1", "checkout", "storefront",
		completed{SessionID: "s-1", OrderID: "o-42"})
	require.NoError(t, err)

	raw, err := event.Marshal()
	require.NoError(t, err)

	var decoded Event
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, event.EventID, decoded.EventID)

	var data completed
	require.NoError(t, decoded.UnmarshalData(&data))
	assert.Equal(t, "o-42", data.OrderID)
}

func TestEvent_WithCorrelationID(t *testing.T) {
	event, err := NewEvent("storefront.notification.emitted", "n-1", "notification", "storefront", nil)
	require.NoError(t, err)

	same := event.WithCorrelationID("corr-123")
	assert.Same(t, event, same)
	assert.Equal(t, "corr-123", event.CorrelationID)
}
