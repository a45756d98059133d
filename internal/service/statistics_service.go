package service

import (
	"context"

	"github.com/wdotgonzales/trackjob-backend/internal/entity"
	"github.com/wdotgonzales/trackjob-backend/internal/repository"

	"github.com/google/uuid"
)

const TotalCountKey = "total_count"

type Statistics struct {
	User                      *entity.User
	SubscriptionLifeSpanDays  int
	ApplicationStatuses       []entity.JobApplicationStatus
	JobApplicationStatusCount map[string]int64
}

type StatisticsService struct {
	users         repository.UserRepository
	applications  repository.JobApplicationRepository
	lookups       repository.LookupRepository
	subscriptions *SubscriptionService
}

func NewStatisticsService(
	users repository.UserRepository,
	applications repository.JobApplicationRepository,
	lookups repository.LookupRepository,
	subscriptions *SubscriptionService,
) *StatisticsService {
	return &StatisticsService{
		users:         users,
		applications:  applications,
		lookups:       lookups,
		subscriptions: subscriptions,
	}
}

// ForUser builds the dashboard summary. Every seeded status appears in the count map,
// with zero when the user has no application in it.
func (s *StatisticsService) ForUser(ctx context.Context, userID uuid.UUID) (*Statistics, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	remaining, err := s.subscriptions.RemainingDays(ctx, userID)
	if err != nil {
		return nil, err
	}

	statuses, err := s.lookups.JobApplicationStatuses(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.applications.CountByStatus(ctx, userID)
	if err != nil {
		return nil, err
	}
	total, err := s.applications.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(statuses)+1)
	for _, status := range statuses {
		counts[status.Title] = byStatus[status.ID]
	}
	counts[TotalCountKey] = total

	return &Statistics{
		User:                      user,
		SubscriptionLifeSpanDays:  remaining,
		ApplicationStatuses:       statuses,
		JobApplicationStatusCount: counts,
	}, nil
}
