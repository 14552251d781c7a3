package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"advisorly/config"
	"advisorly/cron"
	"advisorly/database"
	expertRepoPkg "advisorly/database/repository/expert"
	requestRepoPkg "advisorly/database/repository/request"
	sessionRepoPkg "advisorly/database/repository/session"
	userRepoPkg "advisorly/database/repository/user"
	"advisorly/handlers"
	"advisorly/middleware"
	"advisorly/routes"
	"advisorly/services/matching"
	"advisorly/services/monitoring"
	"advisorly/services/notification"
	"advisorly/services/payment"
	"advisorly/services/provisioning"
	sessionSvc "advisorly/services/session"
	"advisorly/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	expertRepo := expertRepoPkg.NewMongoExpertRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()
	requestRepo := requestRepoPkg.NewMongoRequestRepo()
	sessionRepo := sessionRepoPkg.NewMongoSessionRepo()

	// delivery queue client for reminders, email and SMS.
	queueClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer queueClient.Close()

	monitor := monitoring.NewPrometheusMonitor("advisorly", logger)

	notifier, err := notification.NewDefaultNotificationGateway(userRepo, expertRepo, queueClient)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification gateway: %v", err)
	}

	paymentGateway := payment.NewStripeGateway(utils.GetCacheClient(), logger)
	rooms := provisioning.NewRoomProvisioner(utils.GetRoomsCacheClient(), logger)

	matchingService := &matching.DefaultMatchingService{
		ExpertRepo:  expertRepo,
		UserRepo:    userRepo,
		RequestRepo: requestRepo,
		CacheClient: utils.GetCacheClient(),
		Notifier:    notifier,
		Monitor:     monitor,
		Logger:      logger,
	}

	sessionService := &sessionSvc.DefaultSessionService{
		Sessions:  sessionRepo,
		Experts:   expertRepo,
		Requests:  requestRepo,
		Users:     userRepo,
		Payments:  paymentGateway,
		Notifier:  notifier,
		Video:     rooms,
		Phone:     rooms,
		Chat:      rooms,
		Rooms:     rooms,
		Reminders: queueClient,
		Monitor:   monitor,
		Logger:    logger,
	}

	// Background worker that drains the reminder, email and SMS queues.
	cron.InitDeliveryWorker(notifier, notification.NewWebhookDeliverer())

	// Wire the handler layer.
	handlers.MatchingService = matchingService
	handlers.SessionService = sessionService
	handlers.SessionRepo = sessionRepo
	handlers.ExpertRepo = expertRepo

	routes.RegisterRoutes(router, monitoring.Handler())

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
