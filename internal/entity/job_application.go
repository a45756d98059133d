package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JobApplication struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`
	User   User      `gorm:"constraint:OnDelete:CASCADE"`

	PositionTitle string `gorm:"type:varchar(255);not null"`
	CompanyName   string `gorm:"type:varchar(255);not null"`

	EmploymentTypeID       uint `gorm:"not null;index"`
	EmploymentType         EmploymentType
	WorkArrangementID      uint `gorm:"not null;index"`
	WorkArrangement        WorkArrangement
	JobApplicationStatusID uint `gorm:"not null;index"`
	JobApplicationStatus   JobApplicationStatus

	JobPostingLink *string   `gorm:"type:varchar(255)"`
	DateApplied    time.Time `gorm:"type:date;not null"`
	CompanyLogoURL *string   `gorm:"type:varchar(255)"`
	JobLocation    string    `gorm:"type:varchar(255);not null"`

	Reminders []Reminder `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (j *JobApplication) BeforeCreate(tx *gorm.DB) error {
	j.ID = ensureID(j.ID)
	return nil
}

type Reminder struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	JobApplicationID uuid.UUID `gorm:"type:uuid;not null;index"`

	Title          string    `gorm:"type:varchar(255);not null"`
	Description    string    `gorm:"type:text;not null"`
	ReminderDate   time.Time `gorm:"not null"`
	IsReminderUsed bool      `gorm:"default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r *Reminder) BeforeCreate(tx *gorm.DB) error {
	r.ID = ensureID(r.ID)
	return nil
}
