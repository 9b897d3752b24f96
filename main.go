package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"partnerhub/config"
	"partnerhub/cron"
	"partnerhub/database"
	directoryRepo "partnerhub/database/repository/directory"
	eventRepo "partnerhub/database/repository/event"
	"partnerhub/database/repository/memory"
	partnerRepo "partnerhub/database/repository/partner"
	serviceRepo "partnerhub/database/repository/service"
	"partnerhub/handlers"
	"partnerhub/middleware"
	"partnerhub/models"
	"partnerhub/routes"
	"partnerhub/services/commercial"
	"partnerhub/services/events"
	"partnerhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type stores struct {
	partners  partnerRepo.PartnerRepository
	services  serviceRepo.ServiceRepository
	events    eventRepo.EventRepository
	directory directoryRepo.DirectoryRepository
}

func openStores(cfg config.Config, logger *zap.Logger) (stores, *mongo.Client) {
	if cfg.StoreDriver == "memory" {
		logger.Warn("main: using in-memory storage; data is lost on restart")
		directory := memory.NewDirectoryStore()
		if !config.IsProduction() {
			directory.Add(models.DirectoryEntry{PartnerID: "COM-000001", FirstName: "Demo", LastName: "Partner", Email: "demo@partnerhub.local"})
		}
		return stores{
			partners:  memory.NewPartnerStore(),
			services:  memory.NewServiceStore(),
			events:    memory.NewEventStore(),
			directory: directory,
		}, nil
	}

	if err := database.InitDB(); err != nil {
		logger.Fatal("main: failed to connect to MongoDB", zap.Error(err))
	}
	db := database.DB()
	return stores{
		partners:  partnerRepo.NewMongoPartnerRepo(db, logger),
		services:  serviceRepo.NewMongoServiceRepo(db, logger),
		events:    eventRepo.NewMongoEventRepo(db, logger),
		directory: directoryRepo.NewMongoDirectoryRepo(db),
	}, database.MongoClient
}

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := handlers.RegisterValidators(); err != nil {
		logger.Fatal("main: failed to register request validators", zap.Error(err))
	}

	st, mongoClient := openStores(cfg, logger)

	var cache commercial.StatsCache
	var redisClient *redis.Client
	if cfg.CacheEnabled {
		if err := utils.InitCache(); err != nil {
			logger.Warn("main: statistics cache disabled", zap.Error(err))
		} else {
			redisClient = utils.GetCacheClient()
			cache = commercial.NewRedisStatsCache(redisClient, cfg.StatsCacheTTL, logger)
		}
	}

	engine, err := commercial.NewDefaultProgressionEngine(st.partners, st.services, st.directory, cache, logger)
	if err != nil {
		logger.Fatal("main: failed to build progression engine", zap.Error(err))
	}
	eventService := events.NewDefaultEventService(st.events, logger)

	tokens := utils.NewTokenIssuer(cfg.JWTSecret, cfg.PartnerTokenTTL)
	handlerBundle := handlers.NewHandlerBundle(
		handlers.NewCommercialHandler(engine, tokens),
		handlers.NewAdminHandler(engine),
		handlers.NewEventHandler(eventService),
		cfg.AdminToken,
	)
	handlerBundle.Health = utils.GetHealthStatus

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	utils.StartHealthMonitor(ctx, redisClient, mongoClient)

	var scheduler *asynq.Scheduler
	var worker *asynq.Server
	if cfg.SchedulerEnabled {
		worker = cron.InitMonthlyGiftWorker(cfg, engine, logger)
		scheduler, err = cron.InitMonthlyGiftScheduler(cfg, logger)
		if err != nil {
			logger.Fatal("main: failed to start monthly gift scheduler", zap.Error(err))
		}
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))
	routes.RegisterRoutes(router, handlerBundle)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("main: starting server", zap.String("addr", srv.Addr), zap.String("store", cfg.StoreDriver))
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	if scheduler != nil {
		scheduler.Shutdown()
	}
	if worker != nil {
		worker.Shutdown()
	}
	stop()
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if err := database.Close(shutdownCtx); err != nil {
		logger.Error("main: failed to close MongoDB", zap.Error(err))
	}

	logger.Info("main: server stopped gracefully")
}
