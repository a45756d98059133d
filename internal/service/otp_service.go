package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wdotgonzales/trackjob-backend/internal/entity"
	"github.com/wdotgonzales/trackjob-backend/internal/metrics"
	"github.com/wdotgonzales/trackjob-backend/internal/repository"
	"github.com/wdotgonzales/trackjob-backend/internal/utils"

	"github.com/sirupsen/logrus"
)

const defaultOTPTTL = 5 * time.Minute

// OTPService issues and redeems the one-time codes that prove control of an email.
// Each email has at most one stored code; expired codes are not swept and are only
// observed by the next Issue (which replaces them) or Validate (which reports them).
type OTPService struct {
	codes  repository.VerificationCodeRepository
	uow    repository.UnitOfWork
	sender EmailSender
	clock  Clock
	config OTPConfig
	logger logrus.FieldLogger

	generate func() (string, error)
}

func NewOTPService(
	codes repository.VerificationCodeRepository,
	uow repository.UnitOfWork,
	sender EmailSender,
	clock Clock,
	config OTPConfig,
	logger logrus.FieldLogger,
) *OTPService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &OTPService{
		codes:    codes,
		uow:      uow,
		sender:   sender,
		clock:    clock,
		config:   config,
		logger:   logger,
		generate: utils.GenerateOTP,
	}
}

// Issue replaces any code stored for email with a fresh one and mails it.
// A failed delivery is reported as ErrEmailDispatch; the new code stays stored.
func (s *OTPService) Issue(ctx context.Context, email string, purpose OTPPurpose) (*OTPIssued, error) {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return nil, ErrInvalidInput
	}

	code, err := s.generate()
	if err != nil {
		return nil, err
	}

	start := s.now()
	record := &entity.VerificationCode{
		Email:          email,
		Code:           code,
		StartTime:      start,
		ExpirationTime: start.Add(s.ttl()),
	}
	err = s.uow.Do(ctx, func(ctx context.Context) error {
		if err := s.codes.DeleteByEmail(ctx, email); err != nil {
			return err
		}
		return s.codes.Create(ctx, record)
	})
	if err != nil {
		return nil, err
	}
	metrics.OTPIssued.WithLabelValues(string(purpose)).Inc()

	if err := s.dispatch(ctx, email, otpMessageFor(purpose, code, s.ttl())); err != nil {
		metrics.EmailDispatchFailures.Inc()
		s.logger.WithError(err).WithField("email", email).Error("otp email dispatch failed")
		return nil, fmt.Errorf("%w: %v", ErrEmailDispatch, err)
	}

	return &OTPIssued{
		Email:     email,
		Code:      code,
		ExpiresAt: record.ExpirationTime,
	}, nil
}

// Validate redeems code for email. A wrong code and a missing code both yield
// ErrOTPNotFound. An expired code yields ErrOTPExpired and is left in place.
func (s *OTPService) Validate(ctx context.Context, email string, code string) error {
	email = utils.NormalizeEmail(email)
	code = strings.TrimSpace(code)
	if email == "" || code == "" {
		return ErrInvalidInput
	}

	err := s.uow.Do(ctx, func(ctx context.Context) error {
		if !utils.IsOTP(code) {
			return ErrOTPNotFound
		}
		record, err := s.codes.FindByEmailAndCode(ctx, email, code)
		if err != nil {
			return err
		}
		if record == nil {
			return ErrOTPNotFound
		}
		if record.ExpiredAt(s.now()) {
			return ErrOTPExpired
		}
		return s.codes.Delete(ctx, record)
	})

	switch {
	case err == nil:
		metrics.OTPValidations.WithLabelValues("ok").Inc()
	case errors.Is(err, ErrOTPNotFound):
		metrics.OTPValidations.WithLabelValues("not_found").Inc()
	case errors.Is(err, ErrOTPExpired):
		metrics.OTPValidations.WithLabelValues("expired").Inc()
	}
	return err
}

// State reports where email currently sits in the code lifecycle.
func (s *OTPService) State(ctx context.Context, email string) (OTPState, error) {
	record, err := s.codes.FindByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		return "", err
	}
	if record == nil {
		return OTPStateNone, nil
	}
	if record.ExpiredAt(s.now()) {
		return OTPStateExpired, nil
	}
	return OTPStateActive, nil
}

func (s *OTPService) dispatch(ctx context.Context, email string, message OTPMessage) error {
	if s.sender == nil {
		return errors.New("email sender not configured")
	}
	return s.sender.SendOTP(ctx, email, message)
}

func (s *OTPService) now() time.Time {
	return nowIn(s.clock, s.config.Location)
}

func (s *OTPService) ttl() time.Duration {
	if s.config.TTL > 0 {
		return s.config.TTL
	}
	return defaultOTPTTL
}
