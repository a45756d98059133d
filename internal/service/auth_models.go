package service

import "time"

type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	ProfileURL string
}

type LoginInput struct {
	Email      string
	Password   string
	DeviceName string
	IPAddress  *string
	UserAgent  *string
}

type LoginResult struct {
	Token     string
	ExpiresIn int64
}

type UpdateProfileInput struct {
	Name       string
	ProfileURL string
}

type OTPPurpose string

const (
	PurposeRegistration  OTPPurpose = "registration"
	PurposePasswordReset OTPPurpose = "password_reset"
)

type OTPIssued struct {
	Email     string
	Code      string
	ExpiresAt time.Time
}

// OTPState is the per-email position in the one-time code lifecycle.
type OTPState string

const (
	OTPStateNone    OTPState = "no_code"
	OTPStateActive  OTPState = "active"
	OTPStateExpired OTPState = "expired"
)
