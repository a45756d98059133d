package routes

import (
	"net/http"
	"time"

	"github.com/wdotgonzales/trackjob-backend/api/handler"
	"github.com/wdotgonzales/trackjob-backend/api/middleware"
	"github.com/wdotgonzales/trackjob-backend/internal/entity"
	"github.com/wdotgonzales/trackjob-backend/internal/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

type Router struct {
	Echo            *echo.Echo
	Auth            *handler.AuthHandler
	User            *handler.UserHandler
	JobApplications *handler.JobApplicationHandler
	Reminders       *handler.ReminderHandler
	AuthMiddleware  middleware.AuthMiddleware
	Subscriptions   middleware.SubscriptionChecker
	OTPRate         *middleware.RateLimiter
	LoginRate       *middleware.RateLimiter
}

func NewRouter(
	e *echo.Echo,
	auth *handler.AuthHandler,
	user *handler.UserHandler,
	jobApplications *handler.JobApplicationHandler,
	reminders *handler.ReminderHandler,
	authMiddleware middleware.AuthMiddleware,
	subscriptions middleware.SubscriptionChecker,
) *Router {
	return &Router{
		Echo:            e,
		Auth:            auth,
		User:            user,
		JobApplications: jobApplications,
		Reminders:       reminders,
		AuthMiddleware:  authMiddleware,
		Subscriptions:   subscriptions,
		OTPRate:         middleware.NewRateLimiter("otp", rate.Limit(1), 5, 10*time.Minute),
		LoginRate:       middleware.NewRateLimiter("login", rate.Limit(2), 4, 10*time.Minute),
	}
}

func (r *Router) RegisterRoutes() {
	e := r.Echo
	requireAuth := r.AuthMiddleware.RequireAuth
	requireSubscription := middleware.RequireActiveSubscription(r.Subscriptions)

	e.GET("/up", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.POST("/auth/login", r.Auth.Login, r.LoginRate.Middleware())
	e.POST("/auth/logout", r.Auth.Logout, r.AuthMiddleware.RequireToken)

	e.POST("/register/otp-process", r.Auth.RegisterOTP, r.OTPRate.Middleware())
	e.POST("/register/validate-otp", r.Auth.RegisterValidateOTP, r.OTPRate.Middleware())
	e.POST("/register", r.Auth.Register)

	e.POST("/forgot-your-password", r.Auth.ForgotPasswordOTP, r.OTPRate.Middleware())
	e.POST("/forgot-your-password/validate-otp", r.Auth.ForgotPasswordValidateOTP, r.OTPRate.Middleware())
	e.POST("/forgot-your-password/change-password", r.Auth.ChangePassword)

	e.GET("/subscription-plans", r.User.SubscriptionPlans)
	e.GET("/lookups", r.JobApplications.Lookups)

	user := e.Group("/user", requireAuth)
	user.GET("", r.User.Me)
	user.PUT("", r.User.UpdateProfile)
	user.POST("/purchase-subscription", r.User.PurchaseSubscription)
	user.GET("/subscription", r.User.Subscription, requireSubscription)
	user.GET("/subscriptions", r.User.SubscriptionHistory)
	user.GET("/statistics", r.User.Statistics, requireSubscription)

	applications := e.Group("/job-applications", requireAuth, requireSubscription)
	applications.GET("", r.JobApplications.List)
	applications.POST("", r.JobApplications.Create)

	owned := applications.Group("/:job_application", r.jobApplicationGuard().Middleware)
	owned.GET("", r.JobApplications.Show)
	owned.PUT("", r.JobApplications.Update)
	owned.DELETE("", r.JobApplications.Delete)

	owned.GET("/reminders", r.Reminders.List)
	owned.POST("/reminders", r.Reminders.Create)

	reminder := owned.Group("/reminders/:reminder", r.reminderGuard().Middleware)
	reminder.GET("", r.Reminders.Show)
	reminder.PUT("", r.Reminders.Update)
	reminder.DELETE("", r.Reminders.Delete)
}

func (r *Router) jobApplicationGuard() middleware.Ownership[entity.JobApplication] {
	return middleware.Ownership[entity.JobApplication]{
		Param:     "job_application",
		Key:       handler.JobApplicationKey,
		Load:      r.JobApplications.Service.Find,
		OwnerOf:   func(application *entity.JobApplication) uuid.UUID { return application.UserID },
		Expected:  middleware.AuthenticatedUser,
		NotFound:  service.ErrJobApplicationNotFound.Error(),
		Forbidden: "unauthorized access to this job application",
	}
}

func (r *Router) reminderGuard() middleware.Ownership[entity.Reminder] {
	return middleware.Ownership[entity.Reminder]{
		Param:   "reminder",
		Key:     handler.ReminderKey,
		Load:    r.Reminders.Service.Find,
		OwnerOf: func(reminder *entity.Reminder) uuid.UUID { return reminder.JobApplicationID },
		Expected: middleware.ParentResource(handler.JobApplicationKey, func(application *entity.JobApplication) uuid.UUID {
			return application.ID
		}),
		NotFound:  service.ErrReminderNotFound.Error(),
		Forbidden: "unauthorized access to this reminder with this job application",
	}
}
