package repository

import (
	"context"
	"errors"

	"github.com/wdotgonzales/trackjob-backend/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriptionRepository interface {
	FindActiveByUser(ctx context.Context, userID uuid.UUID) (*entity.Subscription, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Subscription, error)
	Create(ctx context.Context, subscription *entity.Subscription) error
	Update(ctx context.Context, subscription *entity.Subscription) error
	MarkExpired(ctx context.Context, id uuid.UUID) error
}

type SubscriptionPlanRepository interface {
	FindByID(ctx context.Context, id uint) (*entity.SubscriptionPlan, error)
	List(ctx context.Context) ([]entity.SubscriptionPlan, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) FindActiveByUser(ctx context.Context, userID uuid.UUID) (*entity.Subscription, error) {
	var subscription entity.Subscription
	err := GetDB(ctx, r.db).
		Where("user_id = ? AND status = ?", userID, entity.SubscriptionActive).
		First(&subscription).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &subscription, err
}

func (r *subscriptionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Subscription, error) {
	var subscriptions []entity.Subscription
	err := GetDB(ctx, r.db).
		Preload("SubscriptionPlan").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&subscriptions).Error
	if err != nil {
		return nil, err
	}
	return subscriptions, nil
}

func (r *subscriptionRepository) Create(ctx context.Context, subscription *entity.Subscription) error {
	err := GetDB(ctx, r.db).Omit(clause.Associations).Create(subscription).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrConflict
	}
	return err
}

func (r *subscriptionRepository) Update(ctx context.Context, subscription *entity.Subscription) error {
	return GetDB(ctx, r.db).Omit(clause.Associations).Save(subscription).Error
}

func (r *subscriptionRepository) MarkExpired(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).
		Model(&entity.Subscription{}).
		Where("id = ?", id).
		Update("status", entity.SubscriptionExpired).
		Error
}

type subscriptionPlanRepository struct {
	db *gorm.DB
}

func NewSubscriptionPlanRepository(db *gorm.DB) SubscriptionPlanRepository {
	return &subscriptionPlanRepository{db: db}
}

func (r *subscriptionPlanRepository) FindByID(ctx context.Context, id uint) (*entity.SubscriptionPlan, error) {
	var plan entity.SubscriptionPlan
	err := GetDB(ctx, r.db).
		Where("id = ?", id).
		First(&plan).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &plan, err
}

func (r *subscriptionPlanRepository) List(ctx context.Context) ([]entity.SubscriptionPlan, error) {
	var plans []entity.SubscriptionPlan
	if err := GetDB(ctx, r.db).Order("duration_days ASC").Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}
