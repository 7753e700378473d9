package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"alumniportal/internal/api"
	"alumniportal/internal/config"
	"alumniportal/internal/database"
	"alumniportal/internal/otp"
	"alumniportal/internal/repository"
	"alumniportal/internal/service"
	"alumniportal/internal/storage"
	"alumniportal/pkg/db"
	"alumniportal/pkg/logger"
	"alumniportal/pkg/mq"
	"alumniportal/pkg/outbox"
	redisclient "alumniportal/pkg/redis"
)

func main() {
	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	// Init DB
	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	if err := database.Migrate(context.Background(), dbConn, log); err != nil {
		log.Fatal("Schema migration failed", zap.Error(err))
	}

	// Init Redis
	rdb := redisclient.NewRedisClient(cfg.Redis)
	defer rdb.Close()

	// Init RabbitMQ Publisher
	publisher, err := mq.NewPublisher(cfg.MQ.URL)
	if err != nil {
		log.Fatal("failed to init publisher", zap.Error(err))
	}
	defer publisher.Close()

	// Outbox dispatcher drains business events written in-transaction
	outboxRepo := outbox.NewRepository(dbConn)
	dispatcher := outbox.NewDispatcher(outboxRepo, publisher, log).
		WithInterval(1 * time.Second)
	dispatcherCtx, cancelDispatcher := context.WithCancel(context.Background())
	defer cancelDispatcher()
	go dispatcher.Start(dispatcherCtx)

	// Init Repositories
	employerRepo := repository.NewEmployerRepository(dbConn)
	applicationRepo := repository.NewApplicationRepository(dbConn, outboxRepo)
	careerRepo := repository.NewCareerRepository(dbConn)
	notificationRepo := repository.NewNotificationRepository(dbConn)
	userRepo := repository.NewUserRepository(dbConn)

	stager := storage.NewLocalStager(cfg.Storage.Root, cfg.Storage.DefaultLogo)

	// OTP backend
	var otpStore otp.Store
	var otpLimiter otp.Limiter
	if cfg.OTP.Backend == "memory" {
		otpStore = otp.NewMemoryStore()
		otpLimiter = otp.NewMemoryLimiter()
	} else {
		otpStore = otp.NewRedisStore(rdb)
		otpLimiter = otp.NewRedisLimiter(rdb)
	}

	// Init Services
	notificationService := service.NewNotificationService(notificationRepo, publisher, employerRepo, log)
	employerService := service.NewEmployerService(employerRepo, stager, notificationService, log)
	approvalService := service.NewApprovalService(employerRepo, stager, notificationService, log)
	applicationService := service.NewApplicationService(applicationRepo, careerRepo, log)
	authService := service.NewAuthService(userRepo, employerRepo, cfg.JWT.Secret, cfg.Admin.UserName, cfg.Admin.PasswordHash, log)
	otpService := service.NewOTPService(
		otpStore, otpLimiter, userRepo, employerRepo, publisher,
		time.Duration(cfg.OTP.ExpireMinutes)*time.Minute,
		time.Duration(cfg.OTP.WindowMinutes)*time.Minute,
		cfg.OTP.MaxRequests,
		log,
	)

	// Init Handlers
	authHandler := api.NewAuthHandler(authService, employerService, otpService)
	employerHandler := api.NewEmployerHandler(employerService, applicationService, stager)
	adminHandler := api.NewAdminHandler(approvalService, notificationService)
	applicationHandler := api.NewApplicationHandler(applicationService, stager)
	notificationHandler := api.NewNotificationHandler(notificationService)

	// Router
	router := api.NewRouter(authHandler, employerHandler, adminHandler, applicationHandler, notificationHandler, cfg.JWT.Secret)

	if err := router.Run(cfg.Server.Port); err != nil {
		log.Fatal("server start failed", zap.Error(err))
	}
}
