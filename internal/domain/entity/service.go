package entity

import (
	"time"

	"github.com/google/uuid"
)

// ServiceCategory groups service types, e.g. "Cleaning".
type ServiceCategory struct {
	ID          uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ServiceType is a kind of work inside a category, e.g. "Deep cleaning".
type ServiceType struct {
	ID          uuid.UUID
	CategoryID  uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Occupation is a trade a partner can register under.
type Occupation struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Service is a bookable offering. ProviderID is nil for admin-seeded catalog items.
type Service struct {
	ID              uuid.UUID
	Name            string
	Description     string
	Price           float64
	ServiceTypeID   *uuid.UUID
	CategoryID      *uuid.UUID
	DurationMinutes int
	Availability    bool
	TimeSlots       []string
	ProviderID      *uuid.UUID
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsOwnedBy reports whether the given partner owns the service.
func (s *Service) IsOwnedBy(partnerID uuid.UUID) bool {
	return s.ProviderID != nil && *s.ProviderID == partnerID
}

// ServiceFilter narrows service listings. Nil fields are ignored.
type ServiceFilter struct {
	CategoryID    *uuid.UUID
	ServiceTypeID *uuid.UUID
	ProviderID    *uuid.UUID
	Available     *bool
}
