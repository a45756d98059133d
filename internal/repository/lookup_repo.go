package repository

import (
	"context"

	"github.com/wdotgonzales/trackjob-backend/internal/entity"

	"gorm.io/gorm"
)

type LookupRepository interface {
	EmploymentTypes(ctx context.Context) ([]entity.EmploymentType, error)
	WorkArrangements(ctx context.Context) ([]entity.WorkArrangement, error)
	JobApplicationStatuses(ctx context.Context) ([]entity.JobApplicationStatus, error)
	// ReferencesExist reports whether all three lookup ids point at seeded rows.
	ReferencesExist(ctx context.Context, employmentTypeID, workArrangementID, statusID uint) (bool, error)
}

type lookupRepository struct {
	db *gorm.DB
}

func NewLookupRepository(db *gorm.DB) LookupRepository {
	return &lookupRepository{db: db}
}

func (r *lookupRepository) EmploymentTypes(ctx context.Context) ([]entity.EmploymentType, error) {
	var items []entity.EmploymentType
	err := GetDB(ctx, r.db).Order("id ASC").Find(&items).Error
	return items, err
}

func (r *lookupRepository) WorkArrangements(ctx context.Context) ([]entity.WorkArrangement, error) {
	var items []entity.WorkArrangement
	err := GetDB(ctx, r.db).Order("id ASC").Find(&items).Error
	return items, err
}

func (r *lookupRepository) JobApplicationStatuses(ctx context.Context) ([]entity.JobApplicationStatus, error) {
	var items []entity.JobApplicationStatus
	err := GetDB(ctx, r.db).Order("id ASC").Find(&items).Error
	return items, err
}

func (r *lookupRepository) ReferencesExist(
	ctx context.Context,
	employmentTypeID, workArrangementID, statusID uint,
) (bool, error) {
	db := GetDB(ctx, r.db)
	checks := []struct {
		model any
		id    uint
	}{
		{&entity.EmploymentType{}, employmentTypeID},
		{&entity.WorkArrangement{}, workArrangementID},
		{&entity.JobApplicationStatus{}, statusID},
	}
	for _, check := range checks {
		var count int64
		if err := db.Model(check.model).Where("id = ?", check.id).Count(&count).Error; err != nil {
			return false, err
		}
		if count == 0 {
			return false, nil
		}
	}
	return true, nil
}
