package entity

import (
	"time"

	"github.com/google/uuid"
)

// ReviewTarget is the direction of a review.
type ReviewTarget string

const (
	// ReviewTargetProvider is a customer reviewing the partner.
	ReviewTargetProvider ReviewTarget = "provider"
	// ReviewTargetCustomer is a partner reviewing the customer.
	ReviewTargetCustomer ReviewTarget = "customer"
)

func (t ReviewTarget) String() string {
	return string(t)
}

// IsValid checks if the target is a known direction.
func (t ReviewTarget) IsValid() bool {
	return t == ReviewTargetProvider || t == ReviewTargetCustomer
}

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a rating left on a completed booking. Unique per (BookingID, Target).
type Review struct {
	ID         uuid.UUID
	BookingID  uuid.UUID
	ReviewerID uuid.UUID
	RevieweeID uuid.UUID
	Target     ReviewTarget
	Rating     int
	Comment    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ProviderRating aggregates the provider-directed reviews of one partner.
type ProviderRating struct {
	ProviderID    uuid.UUID `json:"providerId"`
	AverageRating float64   `json:"averageRating"`
	RatingsCount  int64     `json:"ratingsCount"`
}
