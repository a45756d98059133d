package service

import (
	"context"
	"time"

	"github.com/wdotgonzales/trackjob-backend/internal/entity"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthConfig struct {
	AccessTokenTTL time.Duration
}

type OTPConfig struct {
	TTL time.Duration
	// Location is the civil zone start and expiration times are recorded in.
	Location *time.Location
}

type SubscriptionConfig struct {
	Location *time.Location
}

// OTPMessage is everything an email template needs to deliver a code.
type OTPMessage struct {
	Subject string
	Title   string
	Message string
	Code    string
}

type EmailSender interface {
	SendOTP(ctx context.Context, email string, message OTPMessage) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash string, password string) bool
}

type AccessTokenIssuer interface {
	IssueAccessToken(user entity.User, sessionID uuid.UUID) (string, time.Duration, error)
}

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

type BcryptPasswordHasher struct {
	Cost int
}

func (h BcryptPasswordHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (h BcryptPasswordHasher) Verify(hash string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func nowIn(clock Clock, location *time.Location) time.Time {
	now := time.Now()
	if clock != nil {
		now = clock.Now()
	}
	if location != nil {
		now = now.In(location)
	}
	return now
}
