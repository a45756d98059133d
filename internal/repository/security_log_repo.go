package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/wdotgonzales/trackjob-backend/internal/entity"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditEntry is one account event: logins, logouts, password resets
// and session revocations.
type AuditEntry struct {
	UserID    *uuid.UUID
	IPAddress *string
	Action    entity.SecurityAction
	Metadata  map[string]any
}

type SecurityLogRepository interface {
	Record(ctx context.Context, entry AuditEntry) error
	CountByAction(ctx context.Context, action entity.SecurityAction) (int64, error)
}

type securityLogRepository struct {
	db *gorm.DB
}

func NewSecurityLogRepository(db *gorm.DB) SecurityLogRepository {
	return &securityLogRepository{db: db}
}

func (r *securityLogRepository) Record(ctx context.Context, entry AuditEntry) error {
	record := &entity.SecurityLog{
		UserID:    entry.UserID,
		IPAddress: entry.IPAddress,
		Action:    entry.Action,
	}
	if len(entry.Metadata) > 0 {
		payload, err := json.Marshal(entry.Metadata)
		if err != nil {
			return fmt.Errorf("encode %s metadata: %w", entry.Action, err)
		}
		record.Metadata = datatypes.JSON(payload)
	}
	return GetDB(ctx, r.db).Create(record).Error
}

func (r *securityLogRepository) CountByAction(ctx context.Context, action entity.SecurityAction) (int64, error) {
	var total int64
	err := GetDB(ctx, r.db).
		Model(&entity.SecurityLog{}).
		Where("action = ?", action).
		Count(&total).Error
	return total, err
}
