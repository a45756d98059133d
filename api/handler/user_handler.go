package handler

import (
	"errors"
	"net/http"

	"github.com/wdotgonzales/trackjob-backend/api/middleware"
	"github.com/wdotgonzales/trackjob-backend/internal/dto"
	"github.com/wdotgonzales/trackjob-backend/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	Auth          *service.AuthService
	Subscriptions *service.SubscriptionService
	Stats         *service.StatisticsService
	Validate      *validator.Validate
}

func (h *UserHandler) Me(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthenticated"))
	}
	user, err := h.Auth.GetCurrentUser(c.Request().Context(), userID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return writeMessage(c, http.StatusOK, "user retrieved successfully", dto.UserResponseFromEntity(user))
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthenticated"))
	}
	var req dto.UpdateProfileRequest
	if ok, err := bind(c, h.Validate, &req); !ok {
		return err
	}
	user, err := h.Auth.UpdateProfile(c.Request().Context(), userID, service.UpdateProfileInput{
		Name:       req.Name,
		ProfileURL: req.ProfileURL,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return writeMessage(c, http.StatusOK, "profile updated successfully", dto.UserResponseFromEntity(user))
}

func (h *UserHandler) Statistics(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthenticated"))
	}
	stats, err := h.Stats.ForUser(c.Request().Context(), userID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return writeMessage(c, http.StatusOK, "statistics retrieved successfully", dto.StatisticsResponseFromService(stats))
}

func (h *UserHandler) PurchaseSubscription(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthenticated"))
	}
	var req dto.PurchaseSubscriptionRequest
	if ok, err := bind(c, h.Validate, &req); !ok {
		return err
	}
	result, err := h.Subscriptions.Purchase(c.Request().Context(), userID, req.SubscriptionPlanID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return writeMessage(c, http.StatusCreated, "subscription purchased successfully", dto.PurchaseResponseFromResult(result))
}

// Subscription runs behind RequireActiveSubscription, which already loaded the row.
func (h *UserHandler) Subscription(c echo.Context) error {
	subscription, ok := middleware.SubscriptionFromContext(c)
	if !ok {
		return writeServiceError(c, service.ErrNoActiveSubscription)
	}
	return writeMessage(c, http.StatusOK, "subscription retrieved successfully", dto.SubscriptionResponseFromEntity(subscription))
}

func (h *UserHandler) SubscriptionHistory(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthenticated"))
	}
	history, err := h.Subscriptions.History(c.Request().Context(), userID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return writeMessage(c, http.StatusOK, "subscriptions retrieved successfully", dto.SubscriptionResponsesFromEntities(history))
}

func (h *UserHandler) SubscriptionPlans(c echo.Context) error {
	plans, err := h.Subscriptions.ListPlans(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return writeMessage(c, http.StatusOK, "subscription plans retrieved successfully", dto.SubscriptionPlanResponsesFromEntities(plans))
}
