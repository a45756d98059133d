package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wdotgonzales/trackjob-backend/internal/repository"
	"github.com/wdotgonzales/trackjob-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type otpFixture struct {
	service *OTPService
	codes   repository.VerificationCodeRepository
	sender  *mockEmailSender
	clock   *testutil.Clock
}

func newOTPFixture(t *testing.T, codes ...string) *otpFixture {
	t.Helper()
	db := testutil.NewDB(t)
	location := testutil.Manila(t)
	clock := testutil.NewClock(time.Date(2025, 6, 1, 8, 0, 0, 0, location))
	sender := &mockEmailSender{}
	codeRepo := repository.NewVerificationCodeRepository(db)

	svc := NewOTPService(
		codeRepo,
		repository.NewUnitOfWork(db),
		sender,
		clock,
		OTPConfig{TTL: 5 * time.Minute, Location: location},
		nil,
	)
	if len(codes) > 0 {
		svc.generate = sequence(codes...)
	}
	return &otpFixture{service: svc, codes: codeRepo, sender: sender, clock: clock}
}

func TestOTPService_IssueStoresAndMailsCode(t *testing.T) {
	f := newOTPFixture(t, "482913")
	ctx := context.Background()
	f.sender.On("SendOTP", mock.Anything, "jane@example.com", mock.MatchedBy(func(m OTPMessage) bool {
		return m.Code == "482913" && m.Subject != ""
	})).Return(nil).Once()

	issued, err := f.service.Issue(ctx, "  Jane@Example.com ", PurposeRegistration)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", issued.Email)
	assert.Equal(t, "482913", issued.Code)
	assert.True(t, issued.ExpiresAt.Equal(f.clock.Now().Add(5*time.Minute)))

	stored, err := f.codes.FindByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "482913", stored.Code)
	assert.WithinDuration(t, f.clock.Now(), stored.StartTime, time.Second)

	state, err := f.service.State(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, OTPStateActive, state)
	f.sender.AssertExpectations(t)
}

func TestOTPService_SecondIssueInvalidatesFirst(t *testing.T) {
	f := newOTPFixture(t, "111111", "222222")
	ctx := context.Background()
	f.sender.On("SendOTP", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := f.service.Issue(ctx, "jane@example.com", PurposeRegistration)
	require.NoError(t, err)
	_, err = f.service.Issue(ctx, "jane@example.com", PurposeRegistration)
	require.NoError(t, err)

	assert.ErrorIs(t, f.service.Validate(ctx, "jane@example.com", "111111"), ErrOTPNotFound)
	assert.NoError(t, f.service.Validate(ctx, "jane@example.com", "222222"))
}

func TestOTPService_CodeValidatesExactlyOnce(t *testing.T) {
	f := newOTPFixture(t, "305117")
	ctx := context.Background()
	f.sender.On("SendOTP", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := f.service.Issue(ctx, "jane@example.com", PurposePasswordReset)
	require.NoError(t, err)

	require.NoError(t, f.service.Validate(ctx, "jane@example.com", "305117"))
	assert.ErrorIs(t, f.service.Validate(ctx, "jane@example.com", "305117"), ErrOTPNotFound)

	state, err := f.service.State(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, OTPStateNone, state)
}

func TestOTPService_ExpiryBoundary(t *testing.T) {
	f := newOTPFixture(t, "777777")
	ctx := context.Background()
	f.sender.On("SendOTP", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	issued, err := f.service.Issue(ctx, "jane@example.com", PurposeRegistration)
	require.NoError(t, err)

	f.clock.Set(issued.ExpiresAt)
	assert.ErrorIs(t, f.service.Validate(ctx, "jane@example.com", "777777"), ErrOTPExpired)

	state, err := f.service.State(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, OTPStateExpired, state, "expired code stays stored")

	f.clock.Set(issued.ExpiresAt.Add(-time.Nanosecond))
	assert.NoError(t, f.service.Validate(ctx, "jane@example.com", "777777"))
}

func TestOTPService_RejectsWrongOrMalformedCodes(t *testing.T) {
	f := newOTPFixture(t, "123456")
	ctx := context.Background()
	f.sender.On("SendOTP", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := f.service.Issue(ctx, "jane@example.com", PurposeRegistration)
	require.NoError(t, err)

	for _, code := range []string{"654321", "12345", "abcdef", "1234567"} {
		assert.ErrorIs(t, f.service.Validate(ctx, "jane@example.com", code), ErrOTPNotFound, code)
	}
	assert.ErrorIs(t, f.service.Validate(ctx, "other@example.com", "123456"), ErrOTPNotFound)
	assert.NoError(t, f.service.Validate(ctx, "jane@example.com", "123456"), "failed attempts do not consume the code")
}

func TestOTPService_DispatchFailureKeepsCode(t *testing.T) {
	f := newOTPFixture(t, "900001")
	ctx := context.Background()
	f.sender.On("SendOTP", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	issued, err := f.service.Issue(ctx, "jane@example.com", PurposeRegistration)
	assert.ErrorIs(t, err, ErrEmailDispatch)
	assert.Nil(t, issued)

	state, err := f.service.State(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, OTPStateActive, state)
}
