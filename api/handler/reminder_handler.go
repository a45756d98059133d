package handler

import (
	"net/http"
	"time"

	"github.com/wdotgonzales/trackjob-backend/api/middleware"
	"github.com/wdotgonzales/trackjob-backend/internal/dto"
	"github.com/wdotgonzales/trackjob-backend/internal/entity"
	"github.com/wdotgonzales/trackjob-backend/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

const ReminderKey = "reminder"

// ReminderHandler runs behind the job application guard and, for :reminder routes,
// the reminder guard as well.
type ReminderHandler struct {
	Service  *service.ReminderService
	Validate *validator.Validate
	Location *time.Location
}

func (h *ReminderHandler) List(c echo.Context) error {
	application, ok := middleware.ResourceFromContext[entity.JobApplication](c, JobApplicationKey)
	if !ok {
		return writeServiceError(c, service.ErrJobApplicationNotFound)
	}
	reminders, err := h.Service.List(c.Request().Context(), application.ID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return writeMessage(c, http.StatusOK, "reminders retrieved successfully", dto.ReminderResponsesFromEntities(reminders, h.Location))
}

func (h *ReminderHandler) Create(c echo.Context) error {
	application, ok := middleware.ResourceFromContext[entity.JobApplication](c, JobApplicationKey)
	if !ok {
		return writeServiceError(c, service.ErrJobApplicationNotFound)
	}
	var req dto.ReminderRequest
	if ok, err := bind(c, h.Validate, &req); !ok {
		return err
	}
	reminder, err := h.Service.Create(c.Request().Context(), application.ID, req.Input(h.Location))
	if err != nil {
		return writeServiceError(c, err)
	}
	return writeMessage(c, http.StatusCreated, "reminder created successfully", dto.ReminderResponseFromEntity(reminder, h.Location))
}

func (h *ReminderHandler) Show(c echo.Context) error {
	reminder, ok := middleware.ResourceFromContext[entity.Reminder](c, ReminderKey)
	if !ok {
		return writeServiceError(c, service.ErrReminderNotFound)
	}
	return writeMessage(c, http.StatusOK, "reminder retrieved successfully", dto.ReminderResponseFromEntity(reminder, h.Location))
}

func (h *ReminderHandler) Update(c echo.Context) error {
	reminder, ok := middleware.ResourceFromContext[entity.Reminder](c, ReminderKey)
	if !ok {
		return writeServiceError(c, service.ErrReminderNotFound)
	}
	var req dto.ReminderRequest
	if ok, err := bind(c, h.Validate, &req); !ok {
		return err
	}
	updated, err := h.Service.Update(c.Request().Context(), reminder.JobApplicationID, reminder.ID, req.Input(h.Location))
	if err != nil {
		return writeServiceError(c, err)
	}
	return writeMessage(c, http.StatusOK, "reminder updated successfully", dto.ReminderResponseFromEntity(updated, h.Location))
}

func (h *ReminderHandler) Delete(c echo.Context) error {
	reminder, ok := middleware.ResourceFromContext[entity.Reminder](c, ReminderKey)
	if !ok {
		return writeServiceError(c, service.ErrReminderNotFound)
	}
	if err := h.Service.Delete(c.Request().Context(), reminder.JobApplicationID, reminder.ID); err != nil {
		return writeServiceError(c, err)
	}
	return writeMessage(c, http.StatusOK, "reminder deleted successfully", nil)
}
