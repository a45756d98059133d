package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/wdotgonzales/trackjob-backend/internal/entity"
	"github.com/wdotgonzales/trackjob-backend/internal/repository"
	"github.com/wdotgonzales/trackjob-backend/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionRepository_ActiveAndHistory(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewSubscriptionRepository(db)
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "a@example.com")
	month := testutil.Plan(t, db, 30)
	start := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	old := &entity.Subscription{
		UserID:             user.ID,
		SubscriptionPlanID: month.ID,
		StartTime:          start,
		EndTime:            start.AddDate(0, 0, 30),
		Status:             entity.SubscriptionActive,
	}
	require.NoError(t, repo.Create(ctx, old))
	require.NoError(t, repo.MarkExpired(ctx, old.ID))

	current := &entity.Subscription{
		UserID:             user.ID,
		SubscriptionPlanID: month.ID,
		StartTime:          start.AddDate(0, 2, 0),
		EndTime:            start.AddDate(0, 3, 0),
		Status:             entity.SubscriptionActive,
		CreatedAt:          time.Now().Add(time.Minute),
	}
	require.NoError(t, repo.Create(ctx, current))

	active, err := repo.FindActiveByUser(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, current.ID, active.ID)

	history, err := repo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, current.ID, history[0].ID, "newest first")
	assert.Equal(t, entity.SubscriptionExpired, history[1].Status)
	assert.Equal(t, "1 Month Subscription", history[1].SubscriptionPlan.PlanName)

	stranger := testutil.CreateUser(t, db, "b@example.com")
	none, err := repo.FindActiveByUser(ctx, stranger.ID)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestSubscriptionPlanRepository_ListOrdersByDuration(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewSubscriptionPlanRepository(db)
	ctx := context.Background()

	plans, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 3)
	assert.Equal(t, []int{30, 120, 300}, []int{plans[0].DurationDays, plans[1].DurationDays, plans[2].DurationDays})

	missing, err := repo.FindByID(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSubscriptionRepository_OneActivePerUser(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewSubscriptionRepository(db)
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "a@example.com")
	month := testutil.Plan(t, db, 30)
	start := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	active := func(userID uuid.UUID) *entity.Subscription {
		return &entity.Subscription{
			UserID:             userID,
			SubscriptionPlanID: month.ID,
			StartTime:          start,
			EndTime:            start.AddDate(0, 0, 30),
			Status:             entity.SubscriptionActive,
		}
	}

	first := active(user.ID)
	require.NoError(t, repo.Create(ctx, first))
	assert.ErrorIs(t, repo.Create(ctx, active(user.ID)), repository.ErrConflict)

	other := testutil.CreateUser(t, db, "b@example.com")
	require.NoError(t, repo.Create(ctx, active(other.ID)), "other users are independent")

	require.NoError(t, repo.MarkExpired(ctx, first.ID))
	require.NoError(t, repo.Create(ctx, active(user.ID)), "expired rows do not count")
}
