package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProviderProfile holds partner onboarding data. One per user.
type ProviderProfile struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	OccupationID    *uuid.UUID
	Bio             string
	ExperienceYears int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
