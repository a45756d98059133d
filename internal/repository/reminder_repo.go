package repository

import (
	"context"
	"errors"

	"github.com/wdotgonzales/trackjob-backend/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReminderRepository interface {
	Create(ctx context.Context, reminder *entity.Reminder) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Reminder, error)
	ListByJobApplication(ctx context.Context, jobApplicationID uuid.UUID) ([]entity.Reminder, error)
	Update(ctx context.Context, reminder *entity.Reminder) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type reminderRepository struct {
	db *gorm.DB
}

func NewReminderRepository(db *gorm.DB) ReminderRepository {
	return &reminderRepository{db: db}
}

func (r *reminderRepository) Create(ctx context.Context, reminder *entity.Reminder) error {
	return GetDB(ctx, r.db).Create(reminder).Error
}

func (r *reminderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reminder, error) {
	var reminder entity.Reminder
	err := GetDB(ctx, r.db).
		Where("id = ?", id).
		First(&reminder).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &reminder, err
}

func (r *reminderRepository) ListByJobApplication(ctx context.Context, jobApplicationID uuid.UUID) ([]entity.Reminder, error) {
	var reminders []entity.Reminder
	err := GetDB(ctx, r.db).
		Where("job_application_id = ?", jobApplicationID).
		Order("reminder_date ASC").
		Find(&reminders).Error
	if err != nil {
		return nil, err
	}
	return reminders, nil
}

func (r *reminderRepository) Update(ctx context.Context, reminder *entity.Reminder) error {
	return GetDB(ctx, r.db).Save(reminder).Error
}

func (r *reminderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).
		Where("id = ?", id).
		Delete(&entity.Reminder{}).
		Error
}
