package middleware

import (
	"net/http"
	"strings"

	"github.com/wdotgonzales/trackjob-backend/internal/repository"
	"github.com/wdotgonzales/trackjob-backend/internal/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// AuthMiddleware accepts a bearer token only while the session it names is unrevoked
// and unexpired, so logout takes effect before the token itself runs out.
type AuthMiddleware struct {
	JWT      *utils.JWTManager
	Sessions repository.SessionRepository
	Logger   logrus.FieldLogger
}

func (m AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return m.authenticate(next, true)
}

// RequireToken checks only the token signature and claims. The logout route uses it
// so a token whose session is already revoked can still log out again.
func (m AuthMiddleware) RequireToken(next echo.HandlerFunc) echo.HandlerFunc {
	return m.authenticate(next, false)
}

func (m AuthMiddleware) authenticate(next echo.HandlerFunc, requireSession bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		if m.JWT == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
		}
		token := extractBearerToken(c.Request())
		if token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
		}
		claims, err := m.JWT.ParseAccessToken(token)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
		}
		userID, err := uuid.Parse(claims.UserID())
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
		}
		sessionID, err := uuid.Parse(claims.SessionID)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
		}
		if requireSession && m.Sessions != nil {
			session, err := m.Sessions.FindActive(c.Request().Context(), sessionID)
			if err != nil {
				if m.Logger != nil {
					m.Logger.WithError(err).Error("load session")
				}
				return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
			}
			if session == nil || session.UserID != userID {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
			}
		}
		SetAuthContext(c, userID, sessionID)
		return next(c)
	}
}

func extractBearerToken(r *http.Request) string {
	authorization := r.Header.Get("Authorization")
	if authorization == "" {
		return ""
	}
	parts := strings.SplitN(authorization, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
