package service

import (
	"context"

	"homeserve/internal/domain/entity"
)

// BookingEvent is the envelope published for booking lifecycle changes.
type BookingEvent struct {
	RequestID string                       `json:"requestId,omitempty"` // For distributed tracing
	Type      string                       `json:"type"`
	Payload   *entity.BookingStatusChanged `json:"payload"`
}

// EventTypeBookingStatusChanged is the type of every status change event.
const EventTypeBookingStatusChanged = "booking.status_changed"

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishBookingEvent publishes a booking lifecycle event.
	PublishBookingEvent(ctx context.Context, event *BookingEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
