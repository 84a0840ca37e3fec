package entity

import (
	"time"

	"github.com/google/uuid"
)

// Address is a saved customer location. Each user has at most one default.
type Address struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Label       string // e.g. "Home", "Office".
	FullAddress string
	IsDefault   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
