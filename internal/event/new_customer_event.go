package event

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type CustomerEventPayload struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	BusinessName string `json:"businessName,omitempty"`
}

type CustomerCreatedEvent struct {
	EventID   string               `json:"eventId"`
	Timestamp time.Time            `json:"timestamp"`
	Payload   CustomerEventPayload `json:"payload"`
}

func NewCustomerCreatedEvent(payload CustomerEventPayload) CustomerCreatedEvent {
	return CustomerCreatedEvent{
		EventID:   uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

func (p *RabbitMQEventPublisher) PublishCustomerCreated(ctx context.Context, event CustomerCreatedEvent) error {
	return p.publish(ctx, routingKeyCustomerCreated, event.EventID, event)
}

var _ EventPublisher = (*RabbitMQEventPublisher)(nil)
