package event

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestNewCustomerCreatedEvent(t *testing.T) {
	before := time.Now().UTC()
	evt := NewCustomerCreatedEvent(CustomerEventPayload{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@x.com",
	})

	_, err := uuid.Parse(evt.EventID)
	assert.NoError(t, err, "event id should be a uuid")
	assert.False(t, evt.Timestamp.Before(before))
	assert.Equal(t, "ada@x.com", evt.Payload.Email)

	other := NewCustomerCreatedEvent(evt.Payload)
	assert.NotEqual(t, evt.EventID, other.EventID)
}

func TestCustomerCreatedEventJSON(t *testing.T) {
	evt := CustomerCreatedEvent{
		EventID:   "b6f1f3a2-8d2c-4a61-9c55-0d1f3b9e2c11",
		Timestamp: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Payload:   CustomerEventPayload{FirstName: "Ada", LastName: "Lovelace", Email: "ada@x.com"},
	}

	body, err := json.Marshal(evt)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"eventId": "b6f1f3a2-8d2c-4a61-9c55-0d1f3b9e2c11",
		"timestamp": "2024-05-01T12:00:00Z",
		"payload": {"firstName": "Ada", "lastName": "Lovelace", "email": "ada@x.com"}
	}`, string(body))
}

func TestNoopPublisher(t *testing.T) {
	pub := NewNoopPublisher(logger)
	err := pub.PublishCustomerCreated(context.Background(), NewCustomerCreatedEvent(CustomerEventPayload{}))
	assert.NoError(t, err)
}

func TestNewRabbitMQEventPublisherValidation(t *testing.T) {
	t.Run("nil connection", func(t *testing.T) {
		pub, err := NewRabbitMQEventPublisher(nil, "customer-directory", logger)
		assert.Nil(t, pub)
		assert.EqualError(t, err, "RabbitMQ connection cannot be nil")
	})

	t.Run("empty url", func(t *testing.T) {
		conn, err := NewRabbitMQConnection("", logger)
		assert.Nil(t, conn)
		assert.EqualError(t, err, "RabbitMQ URL cannot be empty")
	})
}
