package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Ownership guards a route on a path id. The resource is loaded by Load (nil when
// absent), and OwnerOf must match Expected or the request is refused.
type Ownership[T any] struct {
	Param     string
	Key       string
	Load      func(ctx context.Context, id uuid.UUID) (*T, error)
	OwnerOf   func(resource *T) uuid.UUID
	Expected  func(c echo.Context) (uuid.UUID, bool)
	NotFound  string
	Forbidden string
}

func (o Ownership[T]) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := uuid.Parse(c.Param(o.Param))
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, o.NotFound)
		}
		resource, err := o.Load(c.Request().Context(), id)
		if err != nil {
			return err
		}
		if resource == nil {
			return echo.NewHTTPError(http.StatusNotFound, o.NotFound)
		}
		expected, ok := o.Expected(c)
		if !ok || o.OwnerOf(resource) != expected {
			return echo.NewHTTPError(http.StatusForbidden, o.Forbidden)
		}
		c.Set(o.Key, resource)
		return next(c)
	}
}

// AuthenticatedUser is the Expected func for resources owned directly by a user.
func AuthenticatedUser(c echo.Context) (uuid.UUID, bool) {
	return UserIDFromContext(c)
}

// ParentResource is the Expected func for resources nested under one already
// loaded by an outer guard.
func ParentResource[P any](key string, idOf func(parent *P) uuid.UUID) func(c echo.Context) (uuid.UUID, bool) {
	return func(c echo.Context) (uuid.UUID, bool) {
		parent, ok := ResourceFromContext[P](c, key)
		if !ok {
			return uuid.Nil, false
		}
		return idOf(parent), true
	}
}
