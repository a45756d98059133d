package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubscriptionStatus string

const (
	SubscriptionActive  SubscriptionStatus = "active"
	SubscriptionExpired SubscriptionStatus = "expired"
)

// SubscriptionPlan is seeded reference data. Prices are kept in cents.
type SubscriptionPlan struct {
	ID           uint   `gorm:"primaryKey"`
	PlanName     string `gorm:"type:varchar(100);uniqueIndex;not null"`
	PriceCents   int64  `gorm:"not null"`
	DurationDays int    `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Subscription struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	// One active row per user; expired rows are kept as history.
	UserID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_subscriptions_active_user,where:status = 'active'"`
	User   User      `gorm:"constraint:OnDelete:CASCADE"`

	SubscriptionPlanID uint             `gorm:"not null;index"`
	SubscriptionPlan   SubscriptionPlan `gorm:"constraint:OnDelete:RESTRICT"`

	StartTime time.Time          `gorm:"not null"`
	EndTime   time.Time          `gorm:"not null"`
	Status    SubscriptionStatus `gorm:"type:varchar(16);not null;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	s.ID = ensureID(s.ID)
	return nil
}

// ExpiredAt reports whether the paid period has run out at now.
func (s *Subscription) ExpiredAt(now time.Time) bool {
	return !now.Before(s.EndTime)
}
