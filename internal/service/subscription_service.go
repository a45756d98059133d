package service

import (
	"context"
	"time"

	"github.com/wdotgonzales/trackjob-backend/internal/entity"
	"github.com/wdotgonzales/trackjob-backend/internal/metrics"
	"github.com/wdotgonzales/trackjob-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type PurchaseOutcome string

const (
	PurchaseCreated  PurchaseOutcome = "created"
	PurchaseExtended PurchaseOutcome = "extended"
	PurchaseRenewed  PurchaseOutcome = "renewed"
)

type PurchaseResult struct {
	Subscription *entity.Subscription
	Outcome      PurchaseOutcome
}

// SubscriptionService keeps at most one active subscription per user.
// All date math happens in the configured civil zone.
type SubscriptionService struct {
	subscriptions repository.SubscriptionRepository
	plans         repository.SubscriptionPlanRepository
	users         repository.UserRepository
	uow           repository.UnitOfWork
	clock         Clock
	config        SubscriptionConfig
	logger        logrus.FieldLogger
}

func NewSubscriptionService(
	subscriptions repository.SubscriptionRepository,
	plans repository.SubscriptionPlanRepository,
	users repository.UserRepository,
	uow repository.UnitOfWork,
	clock Clock,
	config SubscriptionConfig,
	logger logrus.FieldLogger,
) *SubscriptionService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &SubscriptionService{
		subscriptions: subscriptions,
		plans:         plans,
		users:         users,
		uow:           uow,
		clock:         clock,
		config:        config,
		logger:        logger,
	}
}

// CurrentActive returns the active row with its plan attached, or nil.
func (s *SubscriptionService) CurrentActive(ctx context.Context, userID uuid.UUID) (*entity.Subscription, error) {
	subscription, err := s.subscriptions.FindActiveByUser(ctx, userID)
	if err != nil || subscription == nil {
		return nil, err
	}
	plan, err := s.plans.FindByID(ctx, subscription.SubscriptionPlanID)
	if err != nil {
		return nil, err
	}
	if plan != nil {
		subscription.SubscriptionPlan = *plan
	}
	return subscription, nil
}

func (s *SubscriptionService) IsExpired(subscription *entity.Subscription) bool {
	return subscription.ExpiredAt(s.now())
}

// RequireActive returns the active, unexpired subscription of the user.
func (s *SubscriptionService) RequireActive(ctx context.Context, userID uuid.UUID) (*entity.Subscription, error) {
	subscription, err := s.CurrentActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	if subscription == nil {
		return nil, ErrNoActiveSubscription
	}
	if s.IsExpired(subscription) {
		return nil, ErrSubscriptionExpired
	}
	return subscription, nil
}

// Purchase applies a plan to the user:
//   - no active subscription: a new period starts now
//   - active and running: the stored end date moves out by the plan duration
//   - active but run out: the old row is marked expired and a new period starts now
//
// The user row is locked first so concurrent purchases for one user run one
// after the other, even when there is no active row to lock yet.
func (s *SubscriptionService) Purchase(ctx context.Context, userID uuid.UUID, planID uint) (*PurchaseResult, error) {
	var result *PurchaseResult
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		plan, err := s.plans.FindByID(ctx, planID)
		if err != nil {
			return err
		}
		if plan == nil {
			return ErrPlanNotFound
		}

		user, err := s.users.FindByID(repository.WithLock(ctx), userID)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}

		current, err := s.subscriptions.FindActiveByUser(repository.WithLock(ctx), userID)
		if err != nil {
			return err
		}

		now := s.now()
		switch {
		case current == nil:
			subscription, err := s.startPeriod(ctx, userID, plan, now)
			if err != nil {
				return err
			}
			result = &PurchaseResult{Subscription: subscription, Outcome: PurchaseCreated}

		case !current.ExpiredAt(now):
			current.EndTime = addDays(current.EndTime, plan.DurationDays, s.config.Location)
			current.SubscriptionPlanID = plan.ID
			if err := s.subscriptions.Update(ctx, current); err != nil {
				return err
			}
			current.SubscriptionPlan = *plan
			result = &PurchaseResult{Subscription: current, Outcome: PurchaseExtended}

		default:
			if err := s.subscriptions.MarkExpired(ctx, current.ID); err != nil {
				return err
			}
			subscription, err := s.startPeriod(ctx, userID, plan, now)
			if err != nil {
				return err
			}
			result = &PurchaseResult{Subscription: subscription, Outcome: PurchaseRenewed}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.SubscriptionPurchases.WithLabelValues(string(result.Outcome)).Inc()
	s.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"plan_id": planID,
		"outcome": result.Outcome,
	}).Info("subscription purchased")
	return result, nil
}

// RemainingDays is the number of whole days left on the active subscription.
func (s *SubscriptionService) RemainingDays(ctx context.Context, userID uuid.UUID) (int, error) {
	subscription, err := s.CurrentActive(ctx, userID)
	if err != nil {
		return 0, err
	}
	if subscription == nil {
		return 0, nil
	}
	now := s.now()
	if subscription.ExpiredAt(now) {
		return 0, nil
	}
	return int(subscription.EndTime.Sub(now) / (24 * time.Hour)), nil
}

func (s *SubscriptionService) ListPlans(ctx context.Context) ([]entity.SubscriptionPlan, error) {
	return s.plans.List(ctx)
}

func (s *SubscriptionService) History(ctx context.Context, userID uuid.UUID) ([]entity.Subscription, error) {
	return s.subscriptions.ListByUser(ctx, userID)
}

func (s *SubscriptionService) startPeriod(
	ctx context.Context,
	userID uuid.UUID,
	plan *entity.SubscriptionPlan,
	now time.Time,
) (*entity.Subscription, error) {
	subscription := &entity.Subscription{
		UserID:             userID,
		SubscriptionPlanID: plan.ID,
		StartTime:          now,
		EndTime:            addDays(now, plan.DurationDays, s.config.Location),
		Status:             entity.SubscriptionActive,
	}
	if err := s.subscriptions.Create(ctx, subscription); err != nil {
		return nil, err
	}
	subscription.SubscriptionPlan = *plan
	return subscription, nil
}

func (s *SubscriptionService) now() time.Time {
	return nowIn(s.clock, s.config.Location)
}

// addDays adds civil days in location, so a day is a calendar day rather than 24h.
func addDays(t time.Time, days int, location *time.Location) time.Time {
	if location != nil {
		t = t.In(location)
	}
	return t.AddDate(0, 0, days)
}
