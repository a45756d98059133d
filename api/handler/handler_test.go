package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/wdotgonzales/trackjob-backend/internal/dto"
	"github.com/wdotgonzales/trackjob-backend/internal/repository"
	"github.com/wdotgonzales/trackjob-backend/internal/service"
	"github.com/wdotgonzales/trackjob-backend/internal/testutil"
	"github.com/wdotgonzales/trackjob-backend/internal/utils"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type capturingSender struct {
	mu    sync.Mutex
	codes map[string]string
}

func (s *capturingSender) SendOTP(ctx context.Context, email string, message service.OTPMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[email] = message.Code
	return nil
}

func (s *capturingSender) code(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.codes[email]
}

type handlerFixture struct {
	echo   *echo.Echo
	sender *capturingSender
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	db := testutil.NewDB(t)
	sender := &capturingSender{codes: map[string]string{}}
	clock := service.RealClock{}
	otp := service.NewOTPService(
		repository.NewVerificationCodeRepository(db),
		repository.NewUnitOfWork(db),
		sender,
		clock,
		service.OTPConfig{TTL: 5 * time.Minute},
		nil,
	)
	auth := service.NewAuthService(
		repository.NewUserRepository(db),
		repository.NewSessionRepository(db),
		repository.NewSecurityLogRepository(db),
		otp,
		service.BcryptPasswordHasher{Cost: bcrypt.MinCost},
		service.SessionTokenIssuer{Manager: &utils.JWTManager{Secret: []byte("secret")}},
		clock,
		service.AuthConfig{},
		nil,
	)
	subscriptions := service.NewSubscriptionService(
		repository.NewSubscriptionRepository(db),
		repository.NewSubscriptionPlanRepository(db),
		repository.NewUserRepository(db),
		repository.NewUnitOfWork(db),
		clock,
		service.SubscriptionConfig{},
		nil,
	)

	validate := NewValidator()
	authHandler := NewAuthHandler(auth, validate)
	userHandler := &UserHandler{Auth: auth, Subscriptions: subscriptions, Validate: validate}

	e := echo.New()
	e.POST("/auth/login", authHandler.Login)
	e.POST("/register/otp-process", authHandler.RegisterOTP)
	e.POST("/register/validate-otp", authHandler.RegisterValidateOTP)
	e.POST("/register", authHandler.Register)
	e.GET("/subscription-plans", userHandler.SubscriptionPlans)
	return &handlerFixture{echo: e, sender: sender}
}

func (f *handlerFixture) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRegistrationOverHTTP(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(http.MethodPost, "/register/otp-process", `{"email":"jane@example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	code := f.sender.code("jane@example.com")
	require.Len(t, code, 6)

	rec = f.do(http.MethodPost, "/register/validate-otp", `{"email":"jane@example.com","otp":"`+code+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = f.do(http.MethodPost, "/register/validate-otp", `{"email":"jane@example.com","otp":"`+code+`"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code, "codes are single use")

	rec = f.do(http.MethodPost, "/register", `{"name":"Jane","email":"jane@example.com","password":"password123"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = f.do(http.MethodPost, "/register/otp-process", `{"email":"jane@example.com"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, service.ErrEmailAlreadyRegistered.Error(), decodeError(t, rec).Message)

	rec = f.do(http.MethodPost, "/auth/login", `{"email":"jane@example.com","password":"password123"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var login dto.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	assert.NotEmpty(t, login.Token)

	rec = f.do(http.MethodPost, "/auth/login", `{"email":"jane@example.com","password":"wrong-password"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestValidateOTPRequiresStringCode(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(http.MethodPost, "/register/validate-otp", `{"email":"jane@example.com","otp":123456}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(http.MethodPost, "/register/validate-otp", `{"email":"jane@example.com","otp":"12345"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, map[string]string{"otp": "len"}, decodeError(t, rec).Errors)

	rec = f.do(http.MethodPost, "/register/validate-otp", `{"otp":"123456"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "required", decodeError(t, rec).Errors["email"])

	rec = f.do(http.MethodPost, "/register/validate-otp", `{"email":"jane@example.com","otp":"123456"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code, "no code was issued")
}

func TestSubscriptionPlansFormatPrices(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(http.MethodGet, "/subscription-plans", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []dto.SubscriptionPlanResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 3)
	assert.Equal(t, "120.00", body.Data[0].Price)
	assert.Equal(t, 30, body.Data[0].DurationDays)
}
