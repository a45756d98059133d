package dto

import (
	"time"

	"github.com/wdotgonzales/trackjob-backend/internal/entity"
	"github.com/wdotgonzales/trackjob-backend/internal/service"
)

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)

type JobApplicationRequest struct {
	PositionTitle          string  `json:"position_title" validate:"required,max=255"`
	CompanyName            string  `json:"company_name" validate:"required,max=255"`
	EmploymentTypeID       uint    `json:"employment_type_id" validate:"required,gt=0"`
	WorkArrangementID      uint    `json:"work_arrangement_id" validate:"required,gt=0"`
	JobApplicationStatusID uint    `json:"job_application_status_id" validate:"required,gt=0"`
	JobPostingLink         *string `json:"job_posting_link" validate:"omitempty,max=255"`
	DateApplied            string  `json:"date_applied" validate:"required,datetime=2006-01-02"`
	CompanyLogoURL         *string `json:"company_logo_url" validate:"omitempty,max=255"`
	JobLocation            string  `json:"job_location" validate:"required,max=255"`
}

// Input assumes the request already passed validation.
func (r JobApplicationRequest) Input() service.JobApplicationInput {
	dateApplied, _ := time.Parse(DateLayout, r.DateApplied)
	return service.JobApplicationInput{
		PositionTitle:          r.PositionTitle,
		CompanyName:            r.CompanyName,
		EmploymentTypeID:       r.EmploymentTypeID,
		WorkArrangementID:      r.WorkArrangementID,
		JobApplicationStatusID: r.JobApplicationStatusID,
		JobPostingLink:         r.JobPostingLink,
		DateApplied:            dateApplied,
		CompanyLogoURL:         r.CompanyLogoURL,
		JobLocation:            r.JobLocation,
	}
}

type ReminderRequest struct {
	Title          string `json:"title" validate:"required,max=255"`
	Description    string `json:"description" validate:"required"`
	ReminderDate   string `json:"reminder_date" validate:"required,datetime=2006-01-02 15:04:05"`
	IsReminderUsed bool   `json:"is_reminder_used"`
}

// Input reads reminder_date as wall-clock time in location.
func (r ReminderRequest) Input(location *time.Location) service.ReminderInput {
	if location == nil {
		location = time.UTC
	}
	reminderDate, _ := time.ParseInLocation(DateTimeLayout, r.ReminderDate, location)
	return service.ReminderInput{
		Title:          r.Title,
		Description:    r.Description,
		ReminderDate:   reminderDate,
		IsReminderUsed: r.IsReminderUsed,
	}
}

type LookupResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type LookupsResponse struct {
	EmploymentTypes        []LookupResponse `json:"employment_types"`
	WorkArrangements       []LookupResponse `json:"work_arrangements"`
	JobApplicationStatuses []LookupResponse `json:"job_application_statuses"`
}

type ReminderResponse struct {
	ID               string    `json:"id"`
	JobApplicationID string    `json:"job_application_id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	ReminderDate     string    `json:"reminder_date"`
	IsReminderUsed   bool      `json:"is_reminder_used"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type JobApplicationResponse struct {
	ID                   string             `json:"id"`
	UserID               string             `json:"user_id"`
	PositionTitle        string             `json:"position_title"`
	CompanyName          string             `json:"company_name"`
	JobPostingLink       *string            `json:"job_posting_link"`
	DateApplied          string             `json:"date_applied"`
	CompanyLogoURL       *string            `json:"company_logo_url"`
	JobLocation          string             `json:"job_location"`
	JobApplicationStatus LookupResponse     `json:"job_application_status"`
	EmploymentType       LookupResponse     `json:"employment_type"`
	WorkArrangement      LookupResponse     `json:"work_arrangement"`
	Reminders            []ReminderResponse `json:"reminders"`
	CreatedAt            time.Time          `json:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at"`
}

type JobApplicationPageResponse struct {
	Items       []JobApplicationResponse `json:"items"`
	CurrentPage int                      `json:"current_page"`
	PerPage     int                      `json:"per_page"`
	Total       int64                    `json:"total"`
	LastPage    int                      `json:"last_page"`
}

type StatisticsResponse struct {
	User                      UserResponse     `json:"user"`
	SubscriptionLifeSpanDays  int              `json:"subscriptionLifeSpanDays"`
	ApplicationStatuses       []LookupResponse `json:"applicationStatuses"`
	JobApplicationStatusCount map[string]int64 `json:"jobApplicationStatusCount"`
}

func LookupsResponseFromService(lookups *service.Lookups) LookupsResponse {
	response := LookupsResponse{
		EmploymentTypes:        make([]LookupResponse, 0, len(lookups.EmploymentTypes)),
		WorkArrangements:       make([]LookupResponse, 0, len(lookups.WorkArrangements)),
		JobApplicationStatuses: statusResponses(lookups.JobApplicationStatuses),
	}
	for _, item := range lookups.EmploymentTypes {
		response.EmploymentTypes = append(response.EmploymentTypes, LookupResponse{ID: item.ID, Title: item.Title, Description: item.Description})
	}
	for _, item := range lookups.WorkArrangements {
		response.WorkArrangements = append(response.WorkArrangements, LookupResponse{ID: item.ID, Title: item.Title, Description: item.Description})
	}
	return response
}

func ReminderResponseFromEntity(reminder *entity.Reminder, location *time.Location) ReminderResponse {
	reminderDate := reminder.ReminderDate
	if location != nil {
		reminderDate = reminderDate.In(location)
	}
	return ReminderResponse{
		ID:               reminder.ID.String(),
		JobApplicationID: reminder.JobApplicationID.String(),
		Title:            reminder.Title,
		Description:      reminder.Description,
		ReminderDate:     reminderDate.Format(DateTimeLayout),
		IsReminderUsed:   reminder.IsReminderUsed,
		CreatedAt:        reminder.CreatedAt,
		UpdatedAt:        reminder.UpdatedAt,
	}
}

func ReminderResponsesFromEntities(reminders []entity.Reminder, location *time.Location) []ReminderResponse {
	responses := make([]ReminderResponse, 0, len(reminders))
	for i := range reminders {
		responses = append(responses, ReminderResponseFromEntity(&reminders[i], location))
	}
	return responses
}

func JobApplicationResponseFromEntity(application *entity.JobApplication, location *time.Location) JobApplicationResponse {
	return JobApplicationResponse{
		ID:             application.ID.String(),
		UserID:         application.UserID.String(),
		PositionTitle:  application.PositionTitle,
		CompanyName:    application.CompanyName,
		JobPostingLink: application.JobPostingLink,
		DateApplied:    application.DateApplied.Format(DateLayout),
		CompanyLogoURL: application.CompanyLogoURL,
		JobLocation:    application.JobLocation,
		JobApplicationStatus: LookupResponse{
			ID:          application.JobApplicationStatus.ID,
			Title:       application.JobApplicationStatus.Title,
			Description: application.JobApplicationStatus.Description,
		},
		EmploymentType: LookupResponse{
			ID:          application.EmploymentType.ID,
			Title:       application.EmploymentType.Title,
			Description: application.EmploymentType.Description,
		},
		WorkArrangement: LookupResponse{
			ID:          application.WorkArrangement.ID,
			Title:       application.WorkArrangement.Title,
			Description: application.WorkArrangement.Description,
		},
		Reminders: ReminderResponsesFromEntities(application.Reminders, location),
		CreatedAt: application.CreatedAt,
		UpdatedAt: application.UpdatedAt,
	}
}

func JobApplicationPageResponseFromService(page *service.JobApplicationPage, location *time.Location) JobApplicationPageResponse {
	items := make([]JobApplicationResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, JobApplicationResponseFromEntity(&page.Items[i], location))
	}
	return JobApplicationPageResponse{
		Items:       items,
		CurrentPage: page.Page,
		PerPage:     page.PerPage,
		Total:       page.Total,
		LastPage:    page.LastPage(),
	}
}

func StatisticsResponseFromService(stats *service.Statistics) StatisticsResponse {
	return StatisticsResponse{
		User:                      UserResponseFromEntity(stats.User),
		SubscriptionLifeSpanDays:  stats.SubscriptionLifeSpanDays,
		ApplicationStatuses:       statusResponses(stats.ApplicationStatuses),
		JobApplicationStatusCount: stats.JobApplicationStatusCount,
	}
}

func statusResponses(statuses []entity.JobApplicationStatus) []LookupResponse {
	responses := make([]LookupResponse, 0, len(statuses))
	for _, status := range statuses {
		responses = append(responses, LookupResponse{ID: status.ID, Title: status.Title, Description: status.Description})
	}
	return responses
}
