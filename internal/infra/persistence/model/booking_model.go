package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingModel mirrors the 'bookings' table.
type BookingModel struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID              uuid.UUID `gorm:"type:uuid;index;not null"`
	ServiceID           uuid.UUID `gorm:"type:uuid;index;not null"`
	Date                string    `gorm:"type:varchar(10);not null"`
	Time                string    `gorm:"type:varchar(5);not null"`
	Address             string    `gorm:"type:text;not null"`
	SpecialInstructions string    `gorm:"type:text"`
	Price               float64   `gorm:"not null"`
	Status              string    `gorm:"type:varchar(16);not null;default:upcoming;index"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (BookingModel) TableName() string {
	return "bookings"
}

func (m *BookingModel) BeforeCreate(_ *gorm.DB) error {
	return assignID(&m.ID)
}

// ReviewModel mirrors the 'reviews' table. (booking_id, target) is unique.
type ReviewModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	BookingID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_booking_target"`
	Target     string    `gorm:"type:varchar(16);not null;uniqueIndex:idx_reviews_booking_target"`
	ReviewerID uuid.UUID `gorm:"type:uuid;not null;index"`
	RevieweeID uuid.UUID `gorm:"type:uuid;not null;index"`
	Rating     int       `gorm:"not null"`
	Comment    string    `gorm:"type:text"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (ReviewModel) TableName() string {
	return "reviews"
}

func (m *ReviewModel) BeforeCreate(_ *gorm.DB) error {
	return assignID(&m.ID)
}
