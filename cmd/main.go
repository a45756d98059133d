package main

import (
	"context"
	"net/http"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/wdotgonzales/trackjob-backend/api/handler"
	apiMiddleware "github.com/wdotgonzales/trackjob-backend/api/middleware"
	"github.com/wdotgonzales/trackjob-backend/api/routes"
	"github.com/wdotgonzales/trackjob-backend/config"
	"github.com/wdotgonzales/trackjob-backend/internal/repository"
	"github.com/wdotgonzales/trackjob-backend/internal/service"
	"github.com/wdotgonzales/trackjob-backend/internal/utils"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.StandardLogger()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("load config")
	}

	db, err := config.ConnectionDb(cfg)
	if err != nil {
		logger.WithError(err).Fatal("connect database")
	}
	if cfg.AutoMigrate {
		if err := config.Migrate(db); err != nil {
			logger.WithError(err).Fatal("migrate database")
		}
		if err := config.Seed(db); err != nil {
			logger.WithError(err).Fatal("seed database")
		}
	}

	validate := handler.NewValidator()

	accessManager := utils.JWTManager{
		Secret:         cfg.JWTSecret,
		Issuer:         cfg.JWTIssuer,
		AccessTokenTTL: cfg.AccessTokenTTL,
	}
	accessIssuer := service.SessionTokenIssuer{Manager: &accessManager}

	uow := repository.NewUnitOfWork(db)
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	securityRepo := repository.NewSecurityLogRepository(db)
	codeRepo := repository.NewVerificationCodeRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	planRepo := repository.NewSubscriptionPlanRepository(db)
	applicationRepo := repository.NewJobApplicationRepository(db)
	reminderRepo := repository.NewReminderRepository(db)
	lookupRepo := repository.NewLookupRepository(db)

	if err := sessionRepo.CleanupExpired(context.Background()); err != nil {
		logger.WithError(err).Warn("cleanup expired sessions")
	}

	clock := service.RealClock{}
	otpService := service.NewOTPService(
		codeRepo,
		uow,
		newEmailSender(cfg.Mail, logger),
		clock,
		service.OTPConfig{TTL: cfg.OTPTTL, Location: cfg.Location},
		logger,
	)
	authService := service.NewAuthService(
		userRepo,
		sessionRepo,
		securityRepo,
		otpService,
		service.BcryptPasswordHasher{},
		accessIssuer,
		clock,
		service.AuthConfig{AccessTokenTTL: cfg.AccessTokenTTL},
		logger,
	)
	subscriptionService := service.NewSubscriptionService(
		subscriptionRepo,
		planRepo,
		userRepo,
		uow,
		clock,
		service.SubscriptionConfig{Location: cfg.Location},
		logger,
	)
	applicationService := service.NewJobApplicationService(applicationRepo, lookupRepo)
	reminderService := service.NewReminderService(reminderRepo)
	statisticsService := service.NewStatisticsService(userRepo, applicationRepo, lookupRepo, subscriptionService)

	authHandler := handler.NewAuthHandler(authService, validate)
	userHandler := &handler.UserHandler{
		Auth:          authService,
		Subscriptions: subscriptionService,
		Stats:         statisticsService,
		Validate:      validate,
	}
	applicationHandler := &handler.JobApplicationHandler{
		Service:  applicationService,
		Validate: validate,
		Location: cfg.Location,
	}
	reminderHandler := &handler.ReminderHandler{
		Service:  reminderService,
		Validate: validate,
		Location: cfg.Location,
	}

	app := echo.New()
	app.HideBanner = true
	app.HidePort = true
	app.Use(echoMiddleware.Recover())
	app.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogStatus:   true,
		LogMethod:   true,
		LogURI:      true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			entry := logger.WithFields(logrus.Fields{
				"status": v.Status,
				"method": v.Method,
				"uri":    v.URI,
				"ip":     v.RemoteIP,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	}))

	authMiddleware := apiMiddleware.AuthMiddleware{
		JWT:      &accessManager,
		Sessions: sessionRepo,
		Logger:   logger,
	}
	router := routes.NewRouter(
		app,
		authHandler,
		userHandler,
		applicationHandler,
		reminderHandler,
		authMiddleware,
		subscriptionService,
	)
	router.RegisterRoutes()

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.WithField("addr", cfg.HTTPAddr).Info("server started")
	if err := app.StartServer(server); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}

func newEmailSender(cfg config.MailConfig, logger logrus.FieldLogger) service.EmailSender {
	switch cfg.Driver {
	case config.MailDriverResend:
		return service.NewResendEmailSender(cfg.ResendAPIKey, cfg.From)
	case config.MailDriverSMTP:
		return service.NewSMTPEmailSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.From)
	default:
		logger.WithField("driver", cfg.Driver).Warn("otp emails are logged, not delivered")
		return service.LogEmailSender{Logger: logger}
	}
}
