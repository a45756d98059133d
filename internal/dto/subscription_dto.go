package dto

import (
	"fmt"
	"time"

	"github.com/wdotgonzales/trackjob-backend/internal/entity"
	"github.com/wdotgonzales/trackjob-backend/internal/service"
)

type PurchaseSubscriptionRequest struct {
	SubscriptionPlanID uint `json:"subscription_plan_id" validate:"required,gt=0"`
}

type SubscriptionPlanResponse struct {
	ID           uint   `json:"id"`
	PlanName     string `json:"plan_name"`
	Price        string `json:"price"`
	DurationDays int    `json:"duration_days"`
}

type SubscriptionResponse struct {
	ID               string                   `json:"id"`
	UserID           string                   `json:"user_id"`
	SubscriptionPlan SubscriptionPlanResponse `json:"subscription_plan"`
	StartTime        time.Time                `json:"start_time"`
	EndTime          time.Time                `json:"end_time"`
	Status           string                   `json:"status"`
	CreatedAt        time.Time                `json:"created_at"`
	UpdatedAt        time.Time                `json:"updated_at"`
}

type PurchaseResponse struct {
	Outcome      string               `json:"outcome"`
	Subscription SubscriptionResponse `json:"subscription"`
}

// FormatPrice renders cents as a fixed two-decimal amount, e.g. 12000 -> "120.00".
func FormatPrice(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

func SubscriptionPlanResponseFromEntity(plan *entity.SubscriptionPlan) SubscriptionPlanResponse {
	return SubscriptionPlanResponse{
		ID:           plan.ID,
		PlanName:     plan.PlanName,
		Price:        FormatPrice(plan.PriceCents),
		DurationDays: plan.DurationDays,
	}
}

func SubscriptionPlanResponsesFromEntities(plans []entity.SubscriptionPlan) []SubscriptionPlanResponse {
	responses := make([]SubscriptionPlanResponse, 0, len(plans))
	for i := range plans {
		responses = append(responses, SubscriptionPlanResponseFromEntity(&plans[i]))
	}
	return responses
}

func SubscriptionResponseFromEntity(subscription *entity.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:               subscription.ID.String(),
		UserID:           subscription.UserID.String(),
		SubscriptionPlan: SubscriptionPlanResponseFromEntity(&subscription.SubscriptionPlan),
		StartTime:        subscription.StartTime,
		EndTime:          subscription.EndTime,
		Status:           string(subscription.Status),
		CreatedAt:        subscription.CreatedAt,
		UpdatedAt:        subscription.UpdatedAt,
	}
}

func SubscriptionResponsesFromEntities(subscriptions []entity.Subscription) []SubscriptionResponse {
	responses := make([]SubscriptionResponse, 0, len(subscriptions))
	for i := range subscriptions {
		responses = append(responses, SubscriptionResponseFromEntity(&subscriptions[i]))
	}
	return responses
}

func PurchaseResponseFromResult(result *service.PurchaseResult) PurchaseResponse {
	return PurchaseResponse{
		Outcome:      string(result.Outcome),
		Subscription: SubscriptionResponseFromEntity(result.Subscription),
	}
}
