package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ServiceCategoryModel mirrors the 'service_categories' table.
type ServiceCategoryModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ServiceCategoryModel) TableName() string {
	return "service_categories"
}

func (m *ServiceCategoryModel) BeforeCreate(_ *gorm.DB) error {
	return assignID(&m.ID)
}

// ServiceTypeModel mirrors the 'service_types' table.
type ServiceTypeModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CategoryID  uuid.UUID `gorm:"type:uuid;index;not null"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ServiceTypeModel) TableName() string {
	return "service_types"
}

func (m *ServiceTypeModel) BeforeCreate(_ *gorm.DB) error {
	return assignID(&m.ID)
}

// OccupationModel mirrors the 'occupations' table.
type OccupationModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (OccupationModel) TableName() string {
	return "occupations"
}

func (m *OccupationModel) BeforeCreate(_ *gorm.DB) error {
	return assignID(&m.ID)
}

// ServiceModel mirrors the 'services' table. ProviderID is null for catalog services.
type ServiceModel struct {
	ID              uuid.UUID                   `gorm:"type:uuid;primaryKey"`
	Name            string                      `gorm:"type:varchar(150);not null"`
	Description     string                      `gorm:"type:text"`
	Price           float64                     `gorm:"not null"`
	ServiceTypeID   *uuid.UUID                  `gorm:"type:uuid;index"`
	CategoryID      *uuid.UUID                  `gorm:"type:uuid;index"`
	DurationMinutes int                         `gorm:"not null"`
	Availability    bool                        `gorm:"not null"`
	TimeSlots       datatypes.JSONSlice[string] `gorm:"type:json"`
	ProviderID      *uuid.UUID                  `gorm:"type:uuid;index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (ServiceModel) TableName() string {
	return "services"
}

func (m *ServiceModel) BeforeCreate(_ *gorm.DB) error {
	return assignID(&m.ID)
}
