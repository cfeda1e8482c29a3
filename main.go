package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blinno/config"
	"blinno/cron"
	"blinno/database"
	sellerRepo "blinno/database/repository/seller"
	"blinno/handlers"
	"blinno/middleware"
	"blinno/routes"
	"blinno/services/onboarding"
	"blinno/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	if err := config.AppConfig.Validate(); err != nil {
		logger.Sugar().Fatalf("main: invalid configuration: %v", err)
	}

	database.InitDB()
	db := database.DB()
	if err := sellerRepo.EnsureIndexes(db); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure indexes: %v", err)
	}
	lockClient := utils.GetLockClient()
	queueRedis := utils.GetQueueClient()

	rootCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	utils.StartHealthMonitor(rootCtx, 30*time.Second, []*redis.Client{lockClient, queueRedis}, database.MongoClient)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create the Gin router.
	router := gin.New()
	if err := router.SetTrustedProxies(config.AppConfig.TrustedProxies); err != nil {
		logger.Sugar().Fatalf("main: invalid TRUSTED_PROXIES: %v", err)
	}
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	// repositories.
	profiles := sellerRepo.NewMongoProfileRepo(db)
	subscriptions := sellerRepo.NewMongoSubscriptionRepo(db)
	roles := sellerRepo.NewMongoRoleRepo(db)
	resets := sellerRepo.NewMongoResetRepo(db)

	// services.
	onboardingService, err := onboarding.NewDefaultOnboardingService(
		profiles,
		subscriptions,
		roles,
		resets,
		onboarding.NewRedisLocker(lockClient, config.AppConfig.OnboardingLockTTL),
		config.AppConfig.OnboardingVersion,
		logger.Named("onboarding"),
	)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	if config.AppConfig.StripeKey != "" {
		onboardingService.Payouts = onboarding.NewStripePayoutVerifier(config.AppConfig.StripeKey)
	} else {
		logger.Warn("STRIPE_KEY not set, Stripe payout accounts will not be verified")
	}

	// background version checks.
	queueClient := asynq.NewClient(utils.QueueRedisOpt())
	defer queueClient.Close()
	sweeper := cron.NewVersionSweeper(onboardingService, queueClient, logger.Named("sweep"))
	worker := cron.InitVersionWorker(onboardingService, sweeper)
	scheduler := cron.InitVersionSweepScheduler(config.AppConfig.VersionSweepCron)

	// Assemble the handler bundle.
	handlerBundle := handlers.NewHandlerBundle(
		handlers.NewOnboardingHandler(onboardingService),
		handlers.NewAdminHandler(onboardingService, sweeper),
		config.AppConfig.AdminToken,
	)
	if config.AppConfig.AdminToken == "" {
		logger.Warn("ADMIN_TOKEN not set, admin endpoints are disabled")
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Info("Starting server",
		zap.String("addr", srv.Addr),
		zap.Int("onboardingVersion", onboardingService.RequiredVersion()),
	)
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
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if scheduler != nil {
		scheduler.Shutdown()
	}
	worker.Shutdown()
	if err := database.Disconnect(ctx); err != nil {
		logger.Sugar().Warnf("main: failed to disconnect from MongoDB: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
	_ = logger.Sync()
}
