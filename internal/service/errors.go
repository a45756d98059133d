package service

import "errors"

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrEmailAlreadyRegistered = errors.New("email already belongs to an account")
	ErrInvalidCredentials     = errors.New("the provided credentials are incorrect")
	ErrInvalidToken           = errors.New("invalid or expired token")
	ErrUserNotFound           = errors.New("email does not belong to any account")
	ErrOTPNotFound            = errors.New("invalid otp or email")
	ErrOTPExpired             = errors.New("otp has expired")
	ErrEmailDispatch          = errors.New("failed to send email")
	ErrPlanNotFound           = errors.New("subscription plan not found")
	ErrNoActiveSubscription   = errors.New("user has no existing valid subscription")
	ErrSubscriptionExpired    = errors.New("user's subscription has already expired")
	ErrJobApplicationNotFound = errors.New("job application does not exist")
	ErrReminderNotFound       = errors.New("reminder does not exist")
	ErrForbidden              = errors.New("forbidden")
)
