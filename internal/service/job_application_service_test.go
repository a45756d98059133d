package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/wdotgonzales/trackjob-backend/internal/repository"
	"github.com/wdotgonzales/trackjob-backend/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func applicationInput(title string, statusID uint) JobApplicationInput {
	return JobApplicationInput{
		PositionTitle:          title,
		CompanyName:            "Acme",
		EmploymentTypeID:       1,
		WorkArrangementID:      2,
		JobApplicationStatusID: statusID,
		DateApplied:            time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC),
		JobLocation:            "Makati",
	}
}

func TestJobApplicationService_CRUDAndPaging(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewJobApplicationService(repository.NewJobApplicationRepository(db), repository.NewLookupRepository(db))
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "jane@example.com")

	var last uuid.UUID
	for i := 0; i < 6; i++ {
		created, err := svc.Create(ctx, user.ID, applicationInput(fmt.Sprintf("Engineer %d", i), 1))
		require.NoError(t, err)
		assert.Equal(t, "Applied", created.JobApplicationStatus.Title)
		last = created.ID
	}

	first, err := svc.List(ctx, user.ID, repository.JobApplicationFilter{}, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Page)
	assert.Len(t, first.Items, JobApplicationsPerPage)
	assert.Equal(t, 2, first.LastPage())

	second, err := svc.List(ctx, user.ID, repository.JobApplicationFilter{}, 2)
	require.NoError(t, err)
	assert.Len(t, second.Items, 1)

	updated, err := svc.Update(ctx, last, applicationInput("Staff Engineer", 5))
	require.NoError(t, err)
	assert.Equal(t, "Staff Engineer", updated.PositionTitle)
	assert.Equal(t, "Offer Received", updated.JobApplicationStatus.Title)

	require.NoError(t, svc.Delete(ctx, last))
	_, err = svc.Get(ctx, last)
	assert.ErrorIs(t, err, ErrJobApplicationNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, last), ErrJobApplicationNotFound)
}

func TestJobApplicationService_RejectsUnknownLookups(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewJobApplicationService(repository.NewJobApplicationRepository(db), repository.NewLookupRepository(db))
	user := testutil.CreateUser(t, db, "jane@example.com")

	_, err := svc.Create(context.Background(), user.ID, applicationInput("Engineer", 99))
	assert.ErrorIs(t, err, ErrInvalidInput)

	lookups, err := svc.Lookups(context.Background())
	require.NoError(t, err)
	assert.Len(t, lookups.EmploymentTypes, 6)
	assert.Len(t, lookups.WorkArrangements, 3)
	assert.Len(t, lookups.JobApplicationStatuses, 8)
}

func TestReminderService_ScopedToApplication(t *testing.T) {
	db := testutil.NewDB(t)
	applications := NewJobApplicationService(repository.NewJobApplicationRepository(db), repository.NewLookupRepository(db))
	reminders := NewReminderService(repository.NewReminderRepository(db))
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "jane@example.com")

	first, err := applications.Create(ctx, user.ID, applicationInput("Backend Engineer", 1))
	require.NoError(t, err)
	second, err := applications.Create(ctx, user.ID, applicationInput("Frontend Engineer", 1))
	require.NoError(t, err)

	reminder, err := reminders.Create(ctx, first.ID, ReminderInput{
		Title:        "Follow up",
		Description:  "Ping the recruiter",
		ReminderDate: time.Date(2025, 5, 9, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	_, err = reminders.Get(ctx, second.ID, reminder.ID)
	assert.ErrorIs(t, err, ErrReminderNotFound)

	updated, err := reminders.Update(ctx, first.ID, reminder.ID, ReminderInput{
		Title:          "Follow up again",
		Description:    "Second ping",
		ReminderDate:   time.Date(2025, 5, 16, 10, 0, 0, 0, time.UTC),
		IsReminderUsed: true,
	})
	require.NoError(t, err)
	assert.True(t, updated.IsReminderUsed)

	listed, err := reminders.List(ctx, first.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Follow up again", listed[0].Title)

	assert.ErrorIs(t, reminders.Delete(ctx, second.ID, reminder.ID), ErrReminderNotFound)
	require.NoError(t, reminders.Delete(ctx, first.ID, reminder.ID))
}

func TestStatisticsService_CountsEveryStatus(t *testing.T) {
	db := testutil.NewDB(t)
	applicationRepo := repository.NewJobApplicationRepository(db)
	lookupRepo := repository.NewLookupRepository(db)
	userRepo := repository.NewUserRepository(db)
	location := testutil.Manila(t)
	clock := testutil.NewClock(time.Now().In(location))
	subscriptions := NewSubscriptionService(
		repository.NewSubscriptionRepository(db),
		repository.NewSubscriptionPlanRepository(db),
		userRepo,
		repository.NewUnitOfWork(db),
		clock,
		SubscriptionConfig{Location: location},
		nil,
	)
	applications := NewJobApplicationService(applicationRepo, lookupRepo)
	stats := NewStatisticsService(userRepo, applicationRepo, lookupRepo, subscriptions)
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "jane@example.com")

	_, err := subscriptions.Purchase(ctx, user.ID, testutil.Plan(t, db, 30).ID)
	require.NoError(t, err)
	for _, status := range []uint{1, 1, 2} {
		_, err := applications.Create(ctx, user.ID, applicationInput("Engineer", status))
		require.NoError(t, err)
	}

	result, err := stats.ForUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, result.User.ID)
	assert.Equal(t, 30, result.SubscriptionLifeSpanDays)
	assert.Len(t, result.ApplicationStatuses, 8)
	assert.Equal(t, int64(2), result.JobApplicationStatusCount["Applied"])
	assert.Equal(t, int64(1), result.JobApplicationStatusCount["Rejected"])
	assert.Equal(t, int64(0), result.JobApplicationStatusCount["Ghosted"])
	assert.Equal(t, int64(3), result.JobApplicationStatusCount[TotalCountKey])
}
