package repository

import (
	"context"
	"errors"

	"github.com/wdotgonzales/trackjob-backend/internal/entity"

	"gorm.io/gorm"
)

type VerificationCodeRepository interface {
	FindByEmail(ctx context.Context, email string) (*entity.VerificationCode, error)
	FindByEmailAndCode(ctx context.Context, email string, code string) (*entity.VerificationCode, error)
	Create(ctx context.Context, code *entity.VerificationCode) error
	Delete(ctx context.Context, code *entity.VerificationCode) error
	DeleteByEmail(ctx context.Context, email string) error
}

type verificationCodeRepository struct {
	db *gorm.DB
}

func NewVerificationCodeRepository(db *gorm.DB) VerificationCodeRepository {
	return &verificationCodeRepository{db: db}
}

func (r *verificationCodeRepository) FindByEmail(ctx context.Context, email string) (*entity.VerificationCode, error) {
	var code entity.VerificationCode
	err := GetDB(ctx, r.db).
		Where("email = ?", email).
		First(&code).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &code, err
}

func (r *verificationCodeRepository) FindByEmailAndCode(ctx context.Context, email string, code string) (*entity.VerificationCode, error) {
	var record entity.VerificationCode
	err := GetDB(ctx, r.db).
		Where("email = ? AND code = ?", email, code).
		First(&record).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &record, err
}

func (r *verificationCodeRepository) Create(ctx context.Context, code *entity.VerificationCode) error {
	existing, err := r.FindByEmail(ctx, code.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrConflict
	}
	err = GetDB(ctx, r.db).Create(code).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrConflict
	}
	return err
}

func (r *verificationCodeRepository) Delete(ctx context.Context, code *entity.VerificationCode) error {
	if code == nil {
		return nil
	}
	return GetDB(ctx, r.db).
		Where("id = ?", code.ID).
		Delete(&entity.VerificationCode{}).
		Error
}

func (r *verificationCodeRepository) DeleteByEmail(ctx context.Context, email string) error {
	return GetDB(ctx, r.db).
		Where("email = ?", email).
		Delete(&entity.VerificationCode{}).
		Error
}
