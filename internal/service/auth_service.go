package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/wdotgonzales/trackjob-backend/internal/entity"
	"github.com/wdotgonzales/trackjob-backend/internal/repository"
	"github.com/wdotgonzales/trackjob-backend/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const dummyPasswordHash = "$2a$10$CwTycUXWue0Thq9StjUM0uJ8yQbWc1x9uxw2sQ2sXUNx5x9xJ9F2S"

// AuthService owns accounts and sessions. Registration and password change expect the
// caller to have redeemed an OTP for the email first; the routes enforce that order.
type AuthService struct {
	users        repository.UserRepository
	sessions     repository.SessionRepository
	securityLogs repository.SecurityLogRepository

	otp          *OTPService
	passwordHash PasswordHasher
	accessTokens AccessTokenIssuer
	clock        Clock
	config       AuthConfig
	logger       logrus.FieldLogger
}

func NewAuthService(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	securityLogs repository.SecurityLogRepository,
	otp *OTPService,
	passwordHash PasswordHasher,
	accessTokens AccessTokenIssuer,
	clock Clock,
	config AuthConfig,
	logger logrus.FieldLogger,
) *AuthService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &AuthService{
		users:        users,
		sessions:     sessions,
		securityLogs: securityLogs,
		otp:          otp,
		passwordHash: passwordHash,
		accessTokens: accessTokens,
		clock:        clock,
		config:       config,
		logger:       logger,
	}
}

// RequestRegistrationOTP mails a code to an email that has no account yet.
func (s *AuthService) RequestRegistrationOTP(ctx context.Context, email string) (*OTPIssued, error) {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return nil, ErrInvalidInput
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return nil, ErrEmailAlreadyRegistered
	}
	issued, err := s.otp.Issue(ctx, email, PurposeRegistration)
	if err != nil {
		return nil, err
	}
	s.logSecurity(ctx, nil, nil, entity.OTPIssued, map[string]any{"email": email, "purpose": PurposeRegistration})
	return issued, nil
}

// RequestPasswordResetOTP mails a code to the owner of an existing account.
func (s *AuthService) RequestPasswordResetOTP(ctx context.Context, email string) (*OTPIssued, error) {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return nil, ErrInvalidInput
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	issued, err := s.otp.Issue(ctx, email, PurposePasswordReset)
	if err != nil {
		return nil, err
	}
	s.logSecurity(ctx, &user.ID, nil, entity.OTPIssued, map[string]any{"purpose": PurposePasswordReset})
	return issued, nil
}

func (s *AuthService) ValidateOTP(ctx context.Context, email string, code string) error {
	return s.otp.Validate(ctx, email, code)
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*entity.User, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Email) == "" || input.Password == "" {
		return nil, ErrInvalidInput
	}

	email := utils.NormalizeEmail(input.Email)
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyRegistered
	}

	hash, err := s.passwordHash.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hash,
		ProfileURL:   strings.TrimSpace(input.ProfileURL),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailAlreadyRegistered
		}
		return nil, err
	}
	return user, nil
}

// Login never tells an unknown email apart from a wrong password.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if strings.TrimSpace(input.Email) == "" || input.Password == "" {
		return nil, ErrInvalidInput
	}

	email := utils.NormalizeEmail(input.Email)
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = s.passwordHash.Verify(dummyPasswordHash, input.Password)
		s.logSecurity(ctx, nil, input.IPAddress, entity.LoginFailed, map[string]any{"email": email})
		return nil, ErrInvalidCredentials
	}
	if !s.passwordHash.Verify(user.PasswordHash, input.Password) {
		s.logSecurity(ctx, &user.ID, input.IPAddress, entity.LoginFailed, map[string]any{"email": email})
		return nil, ErrInvalidCredentials
	}

	session := &entity.Session{
		UserID:     user.ID,
		DeviceName: input.DeviceName,
		IPAddress:  input.IPAddress,
		UserAgent:  input.UserAgent,
		ExpiresAt:  s.now().Add(s.accessTokenTTL()).UTC(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	token, expiresIn, err := s.accessTokens.IssueAccessToken(*user, session.ID)
	if err != nil {
		return nil, err
	}

	s.logSecurity(ctx, &user.ID, input.IPAddress, entity.LoginSuccess, map[string]any{"session_id": session.ID})
	return &LoginResult{
		Token:     token,
		ExpiresIn: int64(expiresIn.Seconds()),
	}, nil
}

// Logout revokes the session behind the bearer token. Repeated calls are harmless.
func (s *AuthService) Logout(ctx context.Context, sessionID uuid.UUID, userID *uuid.UUID, ipAddress *string) error {
	if err := s.sessions.Revoke(ctx, sessionID); err != nil {
		return err
	}
	s.logSecurity(ctx, userID, ipAddress, entity.Logout, nil)
	return nil
}

// ChangePassword overwrites the password of the account and signs it out everywhere.
func (s *AuthService) ChangePassword(ctx context.Context, email string, newPassword string) (*entity.User, error) {
	if strings.TrimSpace(email) == "" || newPassword == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.users.FindByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	hash, err := s.passwordHash.Hash(newPassword)
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return nil, err
	}
	user.PasswordHash = hash

	if err := s.sessions.RevokeAllByUser(ctx, user.ID); err != nil {
		s.logger.WithError(err).WithField("user_id", user.ID).Warn("revoke sessions after password change")
	} else {
		s.logSecurity(ctx, &user.ID, nil, entity.SessionRevoked, map[string]any{"scope": "all"})
	}
	s.logSecurity(ctx, &user.ID, nil, entity.Reset, map[string]any{"source": "forgot_your_password"})
	return user, nil
}

func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*entity.User, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidInput
	}
	user, err := s.GetCurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Name = strings.TrimSpace(input.Name)
	user.ProfileURL = strings.TrimSpace(input.ProfileURL)
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// logSecurity records an audit row. Failures are logged and never fail the request.
func (s *AuthService) logSecurity(
	ctx context.Context,
	userID *uuid.UUID,
	ipAddress *string,
	action entity.SecurityAction,
	metadata map[string]any,
) {
	if s.securityLogs == nil {
		return
	}
	entry := repository.AuditEntry{
		UserID:    userID,
		IPAddress: ipAddress,
		Action:    action,
		Metadata:  metadata,
	}
	if err := s.securityLogs.Record(ctx, entry); err != nil {
		s.logger.WithError(err).WithField("action", action).Warn("write security log")
	}
}

func (s *AuthService) now() time.Time {
	return nowIn(s.clock, nil)
}

func (s *AuthService) accessTokenTTL() time.Duration {
	if s.config.AccessTokenTTL > 0 {
		return s.config.AccessTokenTTL
	}
	return 7 * 24 * time.Hour
}
