package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	contextUserIDKey       = "auth_user_id"
	contextSessionKey      = "auth_session_id"
	contextSubscriptionKey = "active_subscription"
)

func SetAuthContext(c echo.Context, userID uuid.UUID, sessionID uuid.UUID) {
	c.Set(contextUserIDKey, userID)
	c.Set(contextSessionKey, sessionID)
}

func UserIDFromContext(c echo.Context) (uuid.UUID, bool) {
	value := c.Get(contextUserIDKey)
	userID, ok := value.(uuid.UUID)
	return userID, ok
}

func SessionIDFromContext(c echo.Context) (uuid.UUID, bool) {
	value := c.Get(contextSessionKey)
	sessionID, ok := value.(uuid.UUID)
	return sessionID, ok
}

// ResourceFromContext returns a value stored by an ownership guard under key.
func ResourceFromContext[T any](c echo.Context, key string) (*T, bool) {
	value, ok := c.Get(key).(*T)
	return value, ok && value != nil
}
