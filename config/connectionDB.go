package config

import (
	"github.com/wdotgonzales/trackjob-backend/internal/entity"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func ConnectionDb(cfg *Config) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseURL,
		PreferSimpleProtocol: true, // Disable prepared statements completely
	}), &gorm.Config{
		PrepareStmt:    false,
		TranslateError: true,
	})
}

// Migrate creates or alters every table the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Session{},
		&entity.SecurityLog{},
		&entity.VerificationCode{},
		&entity.SubscriptionPlan{},
		&entity.Subscription{},
		&entity.EmploymentType{},
		&entity.WorkArrangement{},
		&entity.JobApplicationStatus{},
		&entity.JobApplication{},
		&entity.Reminder{},
	)
}
