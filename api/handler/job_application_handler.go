package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/wdotgonzales/trackjob-backend/api/middleware"
	"github.com/wdotgonzales/trackjob-backend/internal/dto"
	"github.com/wdotgonzales/trackjob-backend/internal/entity"
	"github.com/wdotgonzales/trackjob-backend/internal/repository"
	"github.com/wdotgonzales/trackjob-backend/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

const JobApplicationKey = "job_application"

// JobApplicationHandler expects routes with a :job_application param to run behind
// an ownership guard that stores the application under JobApplicationKey.
type JobApplicationHandler struct {
	Service  *service.JobApplicationService
	Validate *validator.Validate
	Location *time.Location
}

func (h *JobApplicationHandler) List(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthenticated"))
	}
	filter, err := parseJobApplicationFilter(c)
	if err != nil {
		return writeError(c, http.StatusUnprocessableEntity, err)
	}
	page, _ := strconv.Atoi(c.QueryParam("page"))
	result, err := h.Service.List(c.Request().Context(), userID, filter, page)
	if err != nil {
		return writeServiceError(c, err)
	}
	return writeMessage(c, http.StatusOK, "job applications retrieved successfully", dto.JobApplicationPageResponseFromService(result, h.Location))
}

func (h *JobApplicationHandler) Create(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthenticated"))
	}
	var req dto.JobApplicationRequest
	if ok, err := bind(c, h.Validate, &req); !ok {
		return err
	}
	application, err := h.Service.Create(c.Request().Context(), userID, req.Input())
	if err != nil {
		return writeServiceError(c, err)
	}
	return writeMessage(c, http.StatusCreated, "job application created successfully", dto.JobApplicationResponseFromEntity(application, h.Location))
}

func (h *JobApplicationHandler) Show(c echo.Context) error {
	application, ok := middleware.ResourceFromContext[entity.JobApplication](c, JobApplicationKey)
	if !ok {
		return writeServiceError(c, service.ErrJobApplicationNotFound)
	}
	return writeMessage(c, http.StatusOK, "job application retrieved successfully", dto.JobApplicationResponseFromEntity(application, h.Location))
}

func (h *JobApplicationHandler) Update(c echo.Context) error {
	application, ok := middleware.ResourceFromContext[entity.JobApplication](c, JobApplicationKey)
	if !ok {
		return writeServiceError(c, service.ErrJobApplicationNotFound)
	}
	var req dto.JobApplicationRequest
	if ok, err := bind(c, h.Validate, &req); !ok {
		return err
	}
	updated, err := h.Service.Update(c.Request().Context(), application.ID, req.Input())
	if err != nil {
		return writeServiceError(c, err)
	}
	return writeMessage(c, http.StatusOK, "job application updated successfully", dto.JobApplicationResponseFromEntity(updated, h.Location))
}

func (h *JobApplicationHandler) Delete(c echo.Context) error {
	application, ok := middleware.ResourceFromContext[entity.JobApplication](c, JobApplicationKey)
	if !ok {
		return writeServiceError(c, service.ErrJobApplicationNotFound)
	}
	if err := h.Service.Delete(c.Request().Context(), application.ID); err != nil {
		return writeServiceError(c, err)
	}
	return writeMessage(c, http.StatusOK, "job application deleted successfully", nil)
}

func (h *JobApplicationHandler) Lookups(c echo.Context) error {
	lookups, err := h.Service.Lookups(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return writeMessage(c, http.StatusOK, "lookups retrieved successfully", dto.LookupsResponseFromService(lookups))
}

func parseJobApplicationFilter(c echo.Context) (repository.JobApplicationFilter, error) {
	var filter repository.JobApplicationFilter
	params := []struct {
		name   string
		target **uint
	}{
		{"job_application_status", &filter.StatusID},
		{"employment_type", &filter.EmploymentTypeID},
		{"work_arrangement", &filter.WorkArrangementID},
	}
	for _, param := range params {
		raw := c.QueryParam(param.name)
		if raw == "" {
			continue
		}
		value, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return filter, errors.New(param.name + " must be a positive integer")
		}
		id := uint(value)
		*param.target = &id
	}
	return filter, nil
}
