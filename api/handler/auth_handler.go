package handler

import (
	"errors"
	"net/http"

	"github.com/wdotgonzales/trackjob-backend/api/middleware"
	"github.com/wdotgonzales/trackjob-backend/internal/dto"
	"github.com/wdotgonzales/trackjob-backend/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// AuthHandler serves login, logout and the two OTP-gated account flows:
// registration and forgot-your-password.
type AuthHandler struct {
	Service  *service.AuthService
	Validate *validator.Validate
}

func NewAuthHandler(svc *service.AuthService, validate *validator.Validate) *AuthHandler {
	return &AuthHandler{
		Service:  svc,
		Validate: validate,
	}
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if ok, err := bind(c, h.Validate, &req); !ok {
		return err
	}
	deviceName := req.DeviceName
	if deviceName == "" {
		deviceName = "api"
	}
	input := service.LoginInput{
		Email:      req.Email,
		Password:   req.Password,
		DeviceName: deviceName,
		IPAddress:  stringPtr(c.RealIP()),
		UserAgent:  stringPtr(c.Request().UserAgent()),
	}
	result, err := h.Service.Login(c.Request().Context(), input)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     result.Token,
		ExpiresIn: result.ExpiresIn,
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthenticated"))
	}
	sessionID, ok := middleware.SessionIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthenticated"))
	}
	if err := h.Service.Logout(c.Request().Context(), sessionID, &userID, stringPtr(c.RealIP())); err != nil {
		return writeServiceError(c, err)
	}
	return writeMessage(c, http.StatusOK, "logged out successfully", nil)
}

func (h *AuthHandler) RegisterOTP(c echo.Context) error {
	var req dto.EmailRequest
	if ok, err := bind(c, h.Validate, &req); !ok {
		return err
	}
	issued, err := h.Service.RequestRegistrationOTP(c.Request().Context(), req.Email)
	if err != nil {
		return writeServiceError(c, err)
	}
	return writeMessage(c, http.StatusOK, "otp sent to email", dto.OTPSentResponse{
		Email:     issued.Email,
		ExpiresAt: issued.ExpiresAt,
	})
}

func (h *AuthHandler) RegisterValidateOTP(c echo.Context) error {
	return h.validateOTP(c)
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if ok, err := bind(c, h.Validate, &req); !ok {
		return err
	}
	input := service.RegisterInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		ProfileURL: req.ProfileURL,
	}
	user, err := h.Service.Register(c.Request().Context(), input)
	if err != nil {
		return writeServiceError(c, err)
	}
	return writeMessage(c, http.StatusCreated, "user registered successfully", dto.UserResponseFromEntity(user))
}

func (h *AuthHandler) ForgotPasswordOTP(c echo.Context) error {
	var req dto.EmailRequest
	if ok, err := bind(c, h.Validate, &req); !ok {
		return err
	}
	issued, err := h.Service.RequestPasswordResetOTP(c.Request().Context(), req.Email)
	if err != nil {
		return writeServiceError(c, err)
	}
	return writeMessage(c, http.StatusOK, "otp sent to email", dto.OTPSentResponse{
		Email:     issued.Email,
		ExpiresAt: issued.ExpiresAt,
	})
}

func (h *AuthHandler) ForgotPasswordValidateOTP(c echo.Context) error {
	return h.validateOTP(c)
}

func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req dto.ChangePasswordRequest
	if ok, err := bind(c, h.Validate, &req); !ok {
		return err
	}
	user, err := h.Service.ChangePassword(c.Request().Context(), req.Email, req.NewPassword)
	if err != nil {
		return writeServiceError(c, err)
	}
	return writeMessage(c, http.StatusCreated, "password changed successfully", dto.UserResponseFromEntity(user))
}

func (h *AuthHandler) validateOTP(c echo.Context) error {
	var req dto.ValidateOTPRequest
	if ok, err := bind(c, h.Validate, &req); !ok {
		return err
	}
	if err := h.Service.ValidateOTP(c.Request().Context(), req.Email, req.OTP); err != nil {
		return writeServiceError(c, err)
	}
	return writeMessage(c, http.StatusOK, "otp validated successfully", nil)
}
