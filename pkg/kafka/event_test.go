package kafka

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ratingPayload struct {
	ProductID string  `json:"productId"`
	Rating    float64 `json:"rating"`
}

func TestNewEvent(t *testing.T) {
	payload := ratingPayload{ProductID: "p-1", Rating: 4.5}

	event, err := NewEvent("catalog.product.rating_updated", "p-1", "product", "catalog-service", payload)
	require.NoError(t, err)

	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, "catalog.product.rating_updated", event.EventType)
	assert.Equal(t, "p-1", event.AggregateID)
	assert.Equal(t, "product", event.AggregateType)
	assert.Equal(t, 1, event.Version)
	assert.False(t, event.Timestamp.IsZero())
}

func TestNewEvent_UnmarshalableData(t *testing.T) {
	_, err := NewEvent("x", "a", "b", "c", make(chan int))
	assert.Error(t, err)
}

func TestEvent_MarshalRoundTrip(t *testing.T) {
	event, err := NewEvent("catalog.review.created", "r-1", "review", "catalog-service",
		ratingPayload{ProductID: "p-1", Rating: 5})
	require.NoError(t, err)
	event.WithCorrelationID("corr-9")

	raw, err := event.Marshal()
	require.NoError(t, err)

	var decoded Event
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, event.EventID, decoded.EventID)
	assert.Equal(t, "corr-9", decoded.CorrelationID)

	var payload ratingPayload
	require.NoError(t, decoded.UnmarshalData(&payload))
	assert.Equal(t, "p-1", payload.ProductID)
	assert.Equal(t, 5.0, payload.Rating)
}
