package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"asdcare/config"
	"asdcare/cron"
	"asdcare/database"
	appointmentRepo "asdcare/database/repository/appointment"
	childRepo "asdcare/database/repository/child"
	slotRepo "asdcare/database/repository/slot"
	userRepoPkg "asdcare/database/repository/user"
	"asdcare/handlers"
	"asdcare/routes"
	"asdcare/services/analytics"
	"asdcare/services/booking"
	"asdcare/services/notification"
	"asdcare/services/payment"
	"asdcare/services/prediction"
	"asdcare/services/scheduling"
	"asdcare/services/tasks"
	"asdcare/services/user"
	"asdcare/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	cfg := config.AppConfig
	if err := cfg.Validate(); err != nil {
		logger.Fatal("main: invalid configuration", zap.Error(err))
	}
	utils.SetJWTSecret(cfg.JWTSecret)
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	if err := database.InitDB(rootCtx, &cfg, logger); err != nil {
		logger.Fatal("main: database unavailable", zap.Error(err))
	}
	db := database.DB()
	utils.InitRedis()

	if err := database.MigrateLegacyStatuses(rootCtx, db, logger); err != nil {
		logger.Fatal("main: legacy status migration failed", zap.Error(err))
	}

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo(db)
	children := childRepo.NewMongoChildRepo(db)
	slots := slotRepo.NewMongoSlotRepo(db)
	appointments := appointmentRepo.NewMongoAppointmentRepo(db)

	for name, ensure := range map[string]func(context.Context) error{
		"users":        userRepo.EnsureIndexes,
		"children":     children.EnsureIndexes,
		"slots":        slots.EnsureIndexes,
		"appointments": appointments.EnsureIndexes,
	} {
		if err := ensure(rootCtx); err != nil {
			logger.Fatal("main: index creation failed", zap.String("collection", name), zap.Error(err))
		}
	}

	utils.StartHealthMonitor(rootCtx, []*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()}, database.MongoClient)

	gateway, err := payment.NewGateway(cfg)
	if err != nil {
		logger.Fatal("main: payment gateway", zap.Error(err))
	}

	// services.
	notifier := notification.NewLogNotifier(logger)
	userService := user.NewUserService(userRepo, children, utils.GetAuthCacheClient(), notifier, cfg.JWTTTL, logger)
	slotService := scheduling.NewSlotService(
		slots,
		scheduling.NewRedisAvailabilityCache(utils.GetCacheClient(), utils.AvailabilityCacheTTL),
		logger,
	)

	queue := asynq.NewClient(cron.RedisOpt())
	defer queue.Close()

	appointmentService := booking.NewAppointmentService(booking.Deps{
		Appointments: appointments,
		Children:     children,
		Users:        userRepo,
		Therapists:   userService,
		Slots:        slotService,
		Gateway:      gateway,
		Payment: booking.PaymentSettings{
			Currency:   cfg.PaymentCurrency,
			DefaultFee: cfg.DefaultAppointmentFee,
		},
		Locker:    booking.NewRedisIntervalLocker(utils.GetCacheClient(), utils.BookingLockTTL),
		Reminders: tasks.NewReminderScheduler(queue, cfg.ReminderLead, logger),
		Logger:    logger,
	})

	worker := cron.InitReminderWorker(&tasks.ReminderHandler{
		Appointments: appointments,
		Notifier:     notifier,
		Logger:       logger,
	}, logger)

	predictor := prediction.NewHTTPPredictor(cfg.PredictionURL, cfg.PredictionTimeout, logger)
	analyticsService := analytics.NewService(children, userRepo, appointments, logger)

	// Create the Gin router.
	router := gin.New()
	handlerBundle := handlers.NewHandlerBundle(userService, appointmentService, slotService, predictor, analyticsService, logger)
	routes.RegisterRoutes(router, handlerBundle, routes.Options{
		AllowOrigins:      cfg.FrontendURL,
		MaxRequestsPerMin: cfg.MaxRequestsPerMin,
		Revocations:       userService,
	})

	// Start the HTTP server.
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("main: starting server", zap.String("addr", srv.Addr), zap.String("gateway", gateway.Name()))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	worker.Shutdown()
	if err := database.Disconnect(ctx); err != nil {
		logger.Warn("main: mongo disconnect", zap.Error(err))
	}

	logger.Info("main: server stopped gracefully")
}
