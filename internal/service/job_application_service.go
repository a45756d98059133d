package service

import (
	"context"
	"strings"
	"time"

	"github.com/wdotgonzales/trackjob-backend/internal/entity"
	"github.com/wdotgonzales/trackjob-backend/internal/repository"

	"github.com/google/uuid"
)

const JobApplicationsPerPage = 5

type JobApplicationInput struct {
	PositionTitle          string
	CompanyName            string
	EmploymentTypeID       uint
	WorkArrangementID      uint
	JobApplicationStatusID uint
	JobPostingLink         *string
	DateApplied            time.Time
	CompanyLogoURL         *string
	JobLocation            string
}

type JobApplicationPage struct {
	Items   []entity.JobApplication
	Page    int
	PerPage int
	Total   int64
}

func (p JobApplicationPage) LastPage() int {
	if p.Total == 0 {
		return 1
	}
	return int((p.Total + int64(p.PerPage) - 1) / int64(p.PerPage))
}

type Lookups struct {
	EmploymentTypes        []entity.EmploymentType
	WorkArrangements       []entity.WorkArrangement
	JobApplicationStatuses []entity.JobApplicationStatus
}

type JobApplicationService struct {
	applications repository.JobApplicationRepository
	lookups      repository.LookupRepository
}

func NewJobApplicationService(
	applications repository.JobApplicationRepository,
	lookups repository.LookupRepository,
) *JobApplicationService {
	return &JobApplicationService{
		applications: applications,
		lookups:      lookups,
	}
}

// List returns one page of the user's applications, newest first. Pages start at 1.
func (s *JobApplicationService) List(
	ctx context.Context,
	userID uuid.UUID,
	filter repository.JobApplicationFilter,
	page int,
) (*JobApplicationPage, error) {
	if page < 1 {
		page = 1
	}
	items, total, err := s.applications.ListByUser(
		ctx,
		userID,
		filter,
		JobApplicationsPerPage,
		(page-1)*JobApplicationsPerPage,
	)
	if err != nil {
		return nil, err
	}
	return &JobApplicationPage{
		Items:   items,
		Page:    page,
		PerPage: JobApplicationsPerPage,
		Total:   total,
	}, nil
}

func (s *JobApplicationService) Get(ctx context.Context, id uuid.UUID) (*entity.JobApplication, error) {
	application, err := s.applications.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if application == nil {
		return nil, ErrJobApplicationNotFound
	}
	return application, nil
}

// Find is Get without the not-found error; a missing application is nil.
func (s *JobApplicationService) Find(ctx context.Context, id uuid.UUID) (*entity.JobApplication, error) {
	return s.applications.FindByID(ctx, id)
}

func (s *JobApplicationService) Create(
	ctx context.Context,
	userID uuid.UUID,
	input JobApplicationInput,
) (*entity.JobApplication, error) {
	if err := s.checkInput(ctx, input); err != nil {
		return nil, err
	}
	application := &entity.JobApplication{UserID: userID}
	applyJobApplicationInput(application, input)
	if err := s.applications.Create(ctx, application); err != nil {
		return nil, err
	}
	return s.Get(ctx, application.ID)
}

func (s *JobApplicationService) Update(
	ctx context.Context,
	id uuid.UUID,
	input JobApplicationInput,
) (*entity.JobApplication, error) {
	if err := s.checkInput(ctx, input); err != nil {
		return nil, err
	}
	application, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	applyJobApplicationInput(application, input)
	if err := s.applications.Update(ctx, application); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes the application together with its reminders.
func (s *JobApplicationService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.applications.Delete(ctx, id)
}

func (s *JobApplicationService) Lookups(ctx context.Context) (*Lookups, error) {
	employmentTypes, err := s.lookups.EmploymentTypes(ctx)
	if err != nil {
		return nil, err
	}
	workArrangements, err := s.lookups.WorkArrangements(ctx)
	if err != nil {
		return nil, err
	}
	statuses, err := s.lookups.JobApplicationStatuses(ctx)
	if err != nil {
		return nil, err
	}
	return &Lookups{
		EmploymentTypes:        employmentTypes,
		WorkArrangements:       workArrangements,
		JobApplicationStatuses: statuses,
	}, nil
}

func (s *JobApplicationService) checkInput(ctx context.Context, input JobApplicationInput) error {
	if strings.TrimSpace(input.PositionTitle) == "" ||
		strings.TrimSpace(input.CompanyName) == "" ||
		strings.TrimSpace(input.JobLocation) == "" ||
		input.DateApplied.IsZero() {
		return ErrInvalidInput
	}
	ok, err := s.lookups.ReferencesExist(ctx, input.EmploymentTypeID, input.WorkArrangementID, input.JobApplicationStatusID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidInput
	}
	return nil
}

func applyJobApplicationInput(application *entity.JobApplication, input JobApplicationInput) {
	application.PositionTitle = strings.TrimSpace(input.PositionTitle)
	application.CompanyName = strings.TrimSpace(input.CompanyName)
	application.EmploymentTypeID = input.EmploymentTypeID
	application.WorkArrangementID = input.WorkArrangementID
	application.JobApplicationStatusID = input.JobApplicationStatusID
	application.JobPostingLink = input.JobPostingLink
	application.DateApplied = input.DateApplied
	application.CompanyLogoURL = input.CompanyLogoURL
	application.JobLocation = strings.TrimSpace(input.JobLocation)
}
