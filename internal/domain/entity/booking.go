package entity

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus is a state of the booking lifecycle.
type BookingStatus string

const (
	BookingStatusUpcoming  BookingStatus = "upcoming"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// AllBookingStatuses lists every valid status.
var AllBookingStatuses = []BookingStatus{BookingStatusUpcoming, BookingStatusCompleted, BookingStatusCancelled}

func (s BookingStatus) String() string {
	return string(s)
}

// IsValid checks if the status is one of the known lifecycle states.
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusUpcoming, BookingStatusCompleted, BookingStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transitions are modelled from s.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

// ParseBookingStatus converts a raw string into a BookingStatus, rejecting unknown values.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	status := BookingStatus(s)

	return status, status.IsValid()
}

// Booking is a customer's appointment for a service.
// The owning partner is the provider of the referenced service.
type Booking struct {
	ID                  uuid.UUID
	UserID              uuid.UUID // The customer.
	ServiceID           uuid.UUID
	Date                string // YYYY-MM-DD
	Time                string // HH:MM
	Address             string
	SpecialInstructions string
	Price               float64
	Status              BookingStatus
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// BookingStatusChanged is published after every successful status change.
type BookingStatusChanged struct {
	BookingID  uuid.UUID     `json:"bookingId"`
	CustomerID uuid.UUID     `json:"customerId"`
	PartnerID  uuid.UUID     `json:"partnerId"`
	From       BookingStatus `json:"from"`
	To         BookingStatus `json:"to"`
	Verified   bool          `json:"verified"` // true when completed through the customer OTP
	OccurredAt time.Time     `json:"occurredAt"`
}
