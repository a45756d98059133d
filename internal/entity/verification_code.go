package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VerificationCode is the single live OTP of an email address.
type VerificationCode struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Code  string    `gorm:"type:varchar(6);not null"`

	StartTime      time.Time `gorm:"not null"`
	ExpirationTime time.Time `gorm:"not null"`

	CreatedAt time.Time
}

func (v *VerificationCode) BeforeCreate(tx *gorm.DB) error {
	v.ID = ensureID(v.ID)
	return nil
}

// ExpiredAt reports whether the code is no longer usable at now.
// The expiration instant itself already counts as expired.
func (v *VerificationCode) ExpiredAt(now time.Time) bool {
	return !now.Before(v.ExpirationTime)
}
