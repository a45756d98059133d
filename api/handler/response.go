package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/wdotgonzales/trackjob-backend/internal/dto"
	"github.com/wdotgonzales/trackjob-backend/internal/repository"
	"github.com/wdotgonzales/trackjob-backend/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// NewValidator reports field errors under their json names.
func NewValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}

func decodeJSON(c echo.Context, target any) error {
	decoder := json.NewDecoder(c.Request().Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

// bind decodes and validates a request body, writing the error response itself.
// ok is false when the handler should return the returned error as is.
func bind(c echo.Context, validate *validator.Validate, target any) (bool, error) {
	if err := decodeJSON(c, target); err != nil {
		return false, writeError(c, http.StatusBadRequest, errors.New("malformed request body"))
	}
	if validate == nil {
		return true, nil
	}
	if err := validate.Struct(target); err != nil {
		return false, writeValidationError(c, err)
	}
	return true, nil
}

func writeMessage(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, dto.Envelope{Message: message, Data: data})
}

func writeError(c echo.Context, status int, err error) error {
	return c.JSON(status, dto.ErrorResponse{Message: err.Error()})
}

func writeValidationError(c echo.Context, err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return writeError(c, http.StatusUnprocessableEntity, err)
	}
	fields := make(map[string]string, len(validationErrors))
	for _, fieldErr := range validationErrors {
		fields[fieldErr.Field()] = fieldErr.Tag()
	}
	return c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
		Message: "the given data was invalid",
		Errors:  fields,
	})
}

func writeServiceError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrOTPNotFound),
		errors.Is(err, service.ErrPlanNotFound),
		errors.Is(err, service.ErrJobApplicationNotFound),
		errors.Is(err, service.ErrReminderNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrOTPExpired):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrEmailAlreadyRegistered):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, repository.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidToken):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrNoActiveSubscription),
		errors.Is(err, service.ErrSubscriptionExpired):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrEmailDispatch):
		return writeError(c, http.StatusBadGateway, service.ErrEmailDispatch)
	}
	if status == http.StatusInternalServerError {
		logrus.WithError(err).WithField("uri", c.Request().RequestURI).Error("unhandled service error")
		return writeError(c, status, errors.New("internal server error"))
	}
	return writeError(c, status, err)
}

func stringPtr(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}
