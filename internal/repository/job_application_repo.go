package repository

import (
	"context"
	"errors"

	"github.com/wdotgonzales/trackjob-backend/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type JobApplicationFilter struct {
	StatusID          *uint
	EmploymentTypeID  *uint
	WorkArrangementID *uint
}

type JobApplicationRepository interface {
	Create(ctx context.Context, application *entity.JobApplication) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.JobApplication, error)
	ListByUser(ctx context.Context, userID uuid.UUID, filter JobApplicationFilter, limit, offset int) ([]entity.JobApplication, int64, error)
	Update(ctx context.Context, application *entity.JobApplication) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context, userID uuid.UUID) (map[uint]int64, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type jobApplicationRepository struct {
	db *gorm.DB
}

func NewJobApplicationRepository(db *gorm.DB) JobApplicationRepository {
	return &jobApplicationRepository{db: db}
}

func (r *jobApplicationRepository) Create(ctx context.Context, application *entity.JobApplication) error {
	return GetDB(ctx, r.db).Omit(clause.Associations).Create(application).Error
}

func (r *jobApplicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.JobApplication, error) {
	var application entity.JobApplication
	err := r.withDetails(GetDB(ctx, r.db)).
		Where("id = ?", id).
		First(&application).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &application, err
}

func (r *jobApplicationRepository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	filter JobApplicationFilter,
	limit, offset int,
) ([]entity.JobApplication, int64, error) {
	query := GetDB(ctx, r.db).
		Model(&entity.JobApplication{}).
		Where("user_id = ?", userID)
	if filter.StatusID != nil {
		query = query.Where("job_application_status_id = ?", *filter.StatusID)
	}
	if filter.EmploymentTypeID != nil {
		query = query.Where("employment_type_id = ?", *filter.EmploymentTypeID)
	}
	if filter.WorkArrangementID != nil {
		query = query.Where("work_arrangement_id = ?", *filter.WorkArrangementID)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := r.withDetails(query.Session(&gorm.Session{})).Order("created_at DESC")
	if limit > 0 {
		page = page.Limit(limit)
	}
	if offset > 0 {
		page = page.Offset(offset)
	}
	var applications []entity.JobApplication
	if err := page.Find(&applications).Error; err != nil {
		return nil, 0, err
	}
	return applications, total, nil
}

func (r *jobApplicationRepository) Update(ctx context.Context, application *entity.JobApplication) error {
	return GetDB(ctx, r.db).Omit(clause.Associations).Save(application).Error
}

func (r *jobApplicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	if err := db.Where("job_application_id = ?", id).Delete(&entity.Reminder{}).Error; err != nil {
		return err
	}
	return db.Where("id = ?", id).Delete(&entity.JobApplication{}).Error
}

func (r *jobApplicationRepository) CountByStatus(ctx context.Context, userID uuid.UUID) (map[uint]int64, error) {
	var rows []struct {
		JobApplicationStatusID uint
		Total                  int64
	}
	err := GetDB(ctx, r.db).
		Model(&entity.JobApplication{}).
		Select("job_application_status_id, COUNT(*) AS total").
		Where("user_id = ?", userID).
		Group("job_application_status_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.JobApplicationStatusID] = row.Total
	}
	return counts, nil
}

func (r *jobApplicationRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var total int64
	err := GetDB(ctx, r.db).
		Model(&entity.JobApplication{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	return total, err
}

func (r *jobApplicationRepository) withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("EmploymentType").
		Preload("WorkArrangement").
		Preload("JobApplicationStatus").
		Preload("Reminders")
}
