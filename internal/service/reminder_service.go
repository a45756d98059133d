package service

import (
	"context"
	"strings"
	"time"

	"github.com/wdotgonzales/trackjob-backend/internal/entity"
	"github.com/wdotgonzales/trackjob-backend/internal/repository"

	"github.com/google/uuid"
)

type ReminderInput struct {
	Title          string
	Description    string
	ReminderDate   time.Time
	IsReminderUsed bool
}

// ReminderService manages reminders under a single job application. Every method takes
// the parent id, and a reminder that belongs to another application is reported as absent.
type ReminderService struct {
	reminders repository.ReminderRepository
}

func NewReminderService(reminders repository.ReminderRepository) *ReminderService {
	return &ReminderService{reminders: reminders}
}

func (s *ReminderService) List(ctx context.Context, jobApplicationID uuid.UUID) ([]entity.Reminder, error) {
	return s.reminders.ListByJobApplication(ctx, jobApplicationID)
}

func (s *ReminderService) Get(ctx context.Context, jobApplicationID, id uuid.UUID) (*entity.Reminder, error) {
	reminder, err := s.reminders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reminder == nil || reminder.JobApplicationID != jobApplicationID {
		return nil, ErrReminderNotFound
	}
	return reminder, nil
}

// Find looks a reminder up regardless of its parent; a missing reminder is nil.
func (s *ReminderService) Find(ctx context.Context, id uuid.UUID) (*entity.Reminder, error) {
	return s.reminders.FindByID(ctx, id)
}

func (s *ReminderService) Create(
	ctx context.Context,
	jobApplicationID uuid.UUID,
	input ReminderInput,
) (*entity.Reminder, error) {
	if err := checkReminderInput(input); err != nil {
		return nil, err
	}
	reminder := &entity.Reminder{JobApplicationID: jobApplicationID}
	applyReminderInput(reminder, input)
	if err := s.reminders.Create(ctx, reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}

func (s *ReminderService) Update(
	ctx context.Context,
	jobApplicationID, id uuid.UUID,
	input ReminderInput,
) (*entity.Reminder, error) {
	if err := checkReminderInput(input); err != nil {
		return nil, err
	}
	reminder, err := s.Get(ctx, jobApplicationID, id)
	if err != nil {
		return nil, err
	}
	applyReminderInput(reminder, input)
	if err := s.reminders.Update(ctx, reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}

func (s *ReminderService) Delete(ctx context.Context, jobApplicationID, id uuid.UUID) error {
	if _, err := s.Get(ctx, jobApplicationID, id); err != nil {
		return err
	}
	return s.reminders.Delete(ctx, id)
}

func checkReminderInput(input ReminderInput) error {
	if strings.TrimSpace(input.Title) == "" || input.ReminderDate.IsZero() {
		return ErrInvalidInput
	}
	return nil
}

func applyReminderInput(reminder *entity.Reminder, input ReminderInput) {
	reminder.Title = strings.TrimSpace(input.Title)
	reminder.Description = strings.TrimSpace(input.Description)
	reminder.ReminderDate = input.ReminderDate
	reminder.IsReminderUsed = input.IsReminderUsed
}
