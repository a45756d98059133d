package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/wdotgonzales/trackjob-backend/internal/entity"
	"github.com/wdotgonzales/trackjob-backend/internal/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type SubscriptionChecker interface {
	RequireActive(ctx context.Context, userID uuid.UUID) (*entity.Subscription, error)
}

// RequireActiveSubscription lets the request through only for users whose current
// subscription has not run out. Must run after RequireAuth.
func RequireActiveSubscription(checker SubscriptionChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := UserIDFromContext(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
			}
			subscription, err := checker.RequireActive(c.Request().Context(), userID)
			switch {
			case errors.Is(err, service.ErrNoActiveSubscription), errors.Is(err, service.ErrSubscriptionExpired):
				return echo.NewHTTPError(http.StatusForbidden, err.Error())
			case err != nil:
				return err
			}
			c.Set(contextSubscriptionKey, subscription)
			return next(c)
		}
	}
}

func SubscriptionFromContext(c echo.Context) (*entity.Subscription, bool) {
	return ResourceFromContext[entity.Subscription](c, contextSubscriptionKey)
}
