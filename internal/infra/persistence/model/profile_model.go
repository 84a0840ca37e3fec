package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProviderProfileModel mirrors the 'provider_profiles' table, one row per partner.
type ProviderProfileModel struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null"`
	OccupationID    *uuid.UUID `gorm:"type:uuid;index"`
	Bio             string     `gorm:"type:text"`
	ExperienceYears int        `gorm:"not null;default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (ProviderProfileModel) TableName() string {
	return "provider_profiles"
}

func (m *ProviderProfileModel) BeforeCreate(_ *gorm.DB) error {
	return assignID(&m.ID)
}

// AddressModel mirrors the 'addresses' table.
type AddressModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Label       string    `gorm:"type:varchar(50)"`
	FullAddress string    `gorm:"type:text;not null"`
	IsDefault   bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (AddressModel) TableName() string {
	return "addresses"
}

func (m *AddressModel) BeforeCreate(_ *gorm.DB) error {
	return assignID(&m.ID)
}
