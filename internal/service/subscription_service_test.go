package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/wdotgonzales/trackjob-backend/internal/entity"
	"github.com/wdotgonzales/trackjob-backend/internal/repository"
	"github.com/wdotgonzales/trackjob-backend/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type subscriptionFixture struct {
	db      *gorm.DB
	service *SubscriptionService
	clock   *testutil.Clock
	user    *entity.User
}

func newSubscriptionFixture(t *testing.T) *subscriptionFixture {
	t.Helper()
	db := testutil.NewDB(t)
	location := testutil.Manila(t)
	clock := testutil.NewClock(time.Date(2025, 1, 10, 9, 30, 0, 0, location))
	svc := NewSubscriptionService(
		repository.NewSubscriptionRepository(db),
		repository.NewSubscriptionPlanRepository(db),
		repository.NewUserRepository(db),
		repository.NewUnitOfWork(db),
		clock,
		SubscriptionConfig{Location: location},
		nil,
	)
	return &subscriptionFixture{
		db:      db,
		service: svc,
		clock:   clock,
		user:    testutil.CreateUser(t, db, "buyer@example.com"),
	}
}

func (f *subscriptionFixture) count(t *testing.T, status entity.SubscriptionStatus) int64 {
	t.Helper()
	var total int64
	require.NoError(t, f.db.Model(&entity.Subscription{}).
		Where("user_id = ? AND status = ?", f.user.ID, status).
		Count(&total).Error)
	return total
}

func TestSubscriptionService_FreshPurchase(t *testing.T) {
	f := newSubscriptionFixture(t)
	ctx := context.Background()
	plan := testutil.Plan(t, f.db, 30)
	start := f.clock.Now()

	result, err := f.service.Purchase(ctx, f.user.ID, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, PurchaseCreated, result.Outcome)
	assert.True(t, result.Subscription.StartTime.Equal(start))
	assert.True(t, result.Subscription.EndTime.Equal(start.AddDate(0, 0, 30)))
	assert.Equal(t, int64(1), f.count(t, entity.SubscriptionActive))

	active, err := f.service.RequireActive(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, "1 Month Subscription", active.SubscriptionPlan.PlanName)
}

func TestSubscriptionService_RepurchaseBeforeExpiryExtendsStoredEnd(t *testing.T) {
	f := newSubscriptionFixture(t)
	ctx := context.Background()
	start := f.clock.Now()

	first, err := f.service.Purchase(ctx, f.user.ID, testutil.Plan(t, f.db, 30).ID)
	require.NoError(t, err)

	f.clock.Set(start.AddDate(0, 0, 10))
	fourMonths := testutil.Plan(t, f.db, 120)
	second, err := f.service.Purchase(ctx, f.user.ID, fourMonths.ID)
	require.NoError(t, err)

	assert.Equal(t, PurchaseExtended, second.Outcome)
	assert.Equal(t, first.Subscription.ID, second.Subscription.ID)
	assert.True(t, second.Subscription.EndTime.Equal(start.AddDate(0, 0, 150)), "T+30d extended by 120d is T+150d")
	assert.Equal(t, fourMonths.ID, second.Subscription.SubscriptionPlanID)
	assert.Equal(t, int64(1), f.count(t, entity.SubscriptionActive))

	days, err := f.service.RemainingDays(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, 140, days)
}

func TestSubscriptionService_RepurchaseAfterExpiryStartsNewPeriod(t *testing.T) {
	f := newSubscriptionFixture(t)
	ctx := context.Background()
	start := f.clock.Now()
	month := testutil.Plan(t, f.db, 30)

	first, err := f.service.Purchase(ctx, f.user.ID, month.ID)
	require.NoError(t, err)

	f.clock.Set(first.Subscription.EndTime)
	_, err = f.service.RequireActive(ctx, f.user.ID)
	assert.ErrorIs(t, err, ErrSubscriptionExpired, "the end instant is already expired")

	renewedAt := start.AddDate(0, 0, 45)
	f.clock.Set(renewedAt)
	second, err := f.service.Purchase(ctx, f.user.ID, month.ID)
	require.NoError(t, err)

	assert.Equal(t, PurchaseRenewed, second.Outcome)
	assert.NotEqual(t, first.Subscription.ID, second.Subscription.ID)
	assert.True(t, second.Subscription.StartTime.Equal(renewedAt))
	assert.True(t, second.Subscription.EndTime.Equal(renewedAt.AddDate(0, 0, 30)))
	assert.Equal(t, int64(1), f.count(t, entity.SubscriptionActive))
	assert.Equal(t, int64(1), f.count(t, entity.SubscriptionExpired))

	history, err := f.service.History(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestSubscriptionService_UnknownPlanAndNoSubscription(t *testing.T) {
	f := newSubscriptionFixture(t)
	ctx := context.Background()

	_, err := f.service.Purchase(ctx, f.user.ID, 9999)
	assert.ErrorIs(t, err, ErrPlanNotFound)

	_, err = f.service.RequireActive(ctx, f.user.ID)
	assert.ErrorIs(t, err, ErrNoActiveSubscription)

	days, err := f.service.RemainingDays(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Zero(t, days)
}

func TestAddDaysUsesCivilDays(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2025-03-09 is a 23 hour day in New York.
	start := time.Date(2025, 3, 8, 12, 0, 0, 0, newYork)
	end := addDays(start, 2, newYork)
	assert.True(t, time.Date(2025, 3, 10, 12, 0, 0, 0, newYork).Equal(end))
	assert.Equal(t, 47*time.Hour, end.Sub(start))
}

func TestSubscriptionService_ConcurrentPurchasesKeepOneActive(t *testing.T) {
	f := newSubscriptionFixture(t)
	ctx := context.Background()
	month := testutil.Plan(t, f.db, 30)

	const buyers = 4
	var wg sync.WaitGroup
	outcomes := make(chan PurchaseOutcome, buyers)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := f.service.Purchase(ctx, f.user.ID, month.ID)
			if assert.NoError(t, err) {
				outcomes <- result.Outcome
			}
		}()
	}
	wg.Wait()
	close(outcomes)

	counts := map[PurchaseOutcome]int{}
	for outcome := range outcomes {
		counts[outcome]++
	}
	assert.Equal(t, 1, counts[PurchaseCreated])
	assert.Equal(t, buyers-1, counts[PurchaseExtended])
	assert.Equal(t, int64(1), f.count(t, entity.SubscriptionActive))

	active, err := f.service.RequireActive(ctx, f.user.ID)
	require.NoError(t, err)
	assert.True(t, active.EndTime.Equal(f.clock.Now().AddDate(0, 0, 30*buyers)))
}

func TestSubscriptionService_PurchaseForUnknownUser(t *testing.T) {
	f := newSubscriptionFixture(t)

	_, err := f.service.Purchase(context.Background(), uuid.New(), testutil.Plan(t, f.db, 30).ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
