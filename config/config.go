package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	MailDriverResend = "resend"
	MailDriverSMTP   = "smtp"
	MailDriverLog    = "log"
)

type Config struct {
	HTTPAddr    string
	DatabaseURL string
	AutoMigrate bool

	JWTSecret      []byte
	JWTIssuer      string
	AccessTokenTTL time.Duration

	// Location is the civil clock used for OTP and subscription date math.
	Location *time.Location
	OTPTTL   time.Duration

	Mail MailConfig
}

type MailConfig struct {
	Driver       string
	From         string
	ResendAPIKey string
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
}

// Load reads the environment, after merging a local .env file when one exists.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("error load env %s", err)
	}

	location, err := time.LoadLocation(getEnv("APP_TIMEZONE", "Asia/Manila"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		AutoMigrate:    getEnvBool("DB_AUTO_MIGRATE", true),
		JWTSecret:      []byte(os.Getenv("JWT_SECRET")),
		JWTIssuer:      getEnv("JWT_ISSUER", "trackjob"),
		AccessTokenTTL: getEnvDuration("ACCESS_TOKEN_TTL", 7*24*time.Hour),
		Location:       location,
		OTPTTL:         getEnvDuration("OTP_TTL", 5*time.Minute),
		Mail: MailConfig{
			Driver:       getEnv("MAIL_DRIVER", MailDriverLog),
			From:         os.Getenv("MAIL_FROM"),
			ResendAPIKey: os.Getenv("RESEND_API_KEY"),
			SMTPHost:     os.Getenv("SMTP_HOST"),
			SMTPPort:     getEnvInt("SMTP_PORT", 587),
			SMTPUsername: os.Getenv("SMTP_USERNAME"),
			SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		},
	}
	if len(cfg.JWTSecret) == 0 {
		return nil, errors.New("JWT_SECRET is required")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return value
}

func getEnvBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return value
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
