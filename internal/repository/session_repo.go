package repository

import (
	"context"
	"errors"
	"time"

	"github.com/wdotgonzales/trackjob-backend/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	FindActive(ctx context.Context, sessionID uuid.UUID) (*entity.Session, error)
	Revoke(ctx context.Context, sessionID uuid.UUID) error
	RevokeAllByUser(ctx context.Context, userID uuid.UUID) error
	CleanupExpired(ctx context.Context) error
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, s *entity.Session) error {
	return GetDB(ctx, r.db).Create(s).Error
}

// Times are compared in UTC; sqlite stores them as text.
func (r *sessionRepository) FindActive(ctx context.Context, sessionID uuid.UUID) (*entity.Session, error) {
	var session entity.Session
	err := GetDB(ctx, r.db).
		Where("id = ? AND revoked_at IS NULL AND expires_at > ?", sessionID, time.Now().UTC()).
		First(&session).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &session, err
}

// Revoke is idempotent: an already revoked session keeps its first revocation time.
func (r *sessionRepository) Revoke(ctx context.Context, sessionID uuid.UUID) error {
	now := time.Now().UTC()
	return GetDB(ctx, r.db).
		Model(&entity.Session{}).
		Where("id = ? AND revoked_at IS NULL", sessionID).
		Update("revoked_at", &now).
		Error
}

func (r *sessionRepository) RevokeAllByUser(ctx context.Context, userID uuid.UUID) error {
	now := time.Now().UTC()
	return GetDB(ctx, r.db).
		Model(&entity.Session{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", &now).
		Error
}

func (r *sessionRepository) CleanupExpired(ctx context.Context) error {
	return GetDB(ctx, r.db).
		Where("expires_at < ?", time.Now().UTC()).
		Delete(&entity.Session{}).
		Error
}
