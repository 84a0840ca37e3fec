package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel mirrors the 'users' table.
type UserModel struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ExternalUID     string     `gorm:"column:external_uid;type:varchar(128);uniqueIndex;not null"`
	Email           string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash    *string    `gorm:"type:varchar(255)"`
	FullName        string     `gorm:"type:varchar(100);not null"`
	Role            string     `gorm:"type:varchar(16);not null;default:user;index"`
	IsEmailVerified bool       `gorm:"not null;default:false"`
	LastLogin       *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

func (m *UserModel) BeforeCreate(_ *gorm.DB) error {
	return assignID(&m.ID)
}

// RefreshTokenModel mirrors the 'refresh_tokens' table.
type RefreshTokenModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	TokenHash string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}

func (m *RefreshTokenModel) BeforeCreate(_ *gorm.DB) error {
	return assignID(&m.ID)
}

// EmailVerificationTokenModel mirrors the 'email_verification_tokens' table.
// The unique user_id index enforces a single live token per user.
type EmailVerificationTokenModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Email     string    `gorm:"type:varchar(255);index;not null"`
	OTPHash   string    `gorm:"column:otp_hash;type:varchar(255);not null"`
	ExpiresAt time.Time `gorm:"not null"`
	Attempts  int       `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (EmailVerificationTokenModel) TableName() string {
	return "email_verification_tokens"
}

func (m *EmailVerificationTokenModel) BeforeCreate(_ *gorm.DB) error {
	return assignID(&m.ID)
}
