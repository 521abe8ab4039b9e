// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"log"

	"fleetrent-service/internal/client/calendar"
	"fleetrent-service/internal/config"
	"fleetrent-service/internal/db"
	availabilityHandler "fleetrent-service/internal/handlers/availability"
	rentalHandler "fleetrent-service/internal/handlers/rental"
	unavailabilityHandler "fleetrent-service/internal/handlers/unavailability"
	vehicleHandler "fleetrent-service/internal/handlers/vehicle"
	"fleetrent-service/internal/middleware"
	"fleetrent-service/internal/repository/postgres"
	availabilityUsecase "fleetrent-service/internal/service/availability"
	rentalUsecase "fleetrent-service/internal/service/rental"
	unavailabilityUsecase "fleetrent-service/internal/service/unavailability"
	vehicleUsecase "fleetrent-service/internal/service/vehicle"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.New()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	ctx := context.Background()

	// ----- Logger -----
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	s.logger = logger

	// ----- PostgreSQL -----
	pool, err := db.ConnectDB(ctx, s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	log.Println("[POSTGRES] connected")

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       s.cfg.RedisDB,
		PoolSize: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Println("[REDIS] connected")

	// ----- Repositories -----
	vehicleRepo := postgres.NewVehicleRepository(pool)
	rentalRepo := postgres.NewRentalRepository(pool)
	windowRepo := postgres.NewUnavailabilityRepository(pool)

	// ----- Availability engine -----
	snapshots := availabilityUsecase.NewRepoSnapshotSource(vehicleRepo, rentalRepo, windowRepo)
	builder := availabilityUsecase.NewBuilder(logger)

	var remote availabilityUsecase.RemoteCalendar
	if s.cfg.CalendarAPIURL != "" {
		remote = calendar.New(s.cfg.CalendarAPIURL, s.cfg.CalendarTimeout)
	}

	gridCache := availabilityUsecase.NewGridCache(
		redisClient,
		remote,
		builder,
		logger,
		s.cfg.GridTTL,
		s.cfg.GridLocalTTL,
	)

	manager := availabilityUsecase.NewManager(gridCache, snapshots, logger)

	// ----- Services (Usecases) -----
	availabilityService := availabilityUsecase.NewService(snapshots, gridCache, logger)
	vehicleService := vehicleUsecase.NewVehicleService(vehicleRepo, logger)
	rentalService := rentalUsecase.NewRentalService(rentalRepo, gridCache, logger)
	unavailabilityService := unavailabilityUsecase.NewUnavailabilityService(windowRepo, gridCache, logger)

	// ----- Handlers -----
	availabilityHandlerInst := availabilityHandler.NewAvailabilityHandler(availabilityService, manager)
	vehicleHandlerInst := vehicleHandler.NewVehicleHandler(vehicleService)
	rentalHandlerInst := rentalHandler.NewRentalHandler(rentalService)
	unavailabilityHandlerInst := unavailabilityHandler.NewUnavailabilityHandler(unavailabilityService)

	// ----- Middlewares -----
	rateLimiter := middleware.NewRateLimiter(s.cfg.RateLimitPerSec, s.cfg.RateLimitBurst)

	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.RequestIDMiddleware(),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(),
		middleware.RateLimitMiddleware(rateLimiter),
	)

	// ----- Router -----
	handlers := &Handlers{
		AvailabilityHandler:   availabilityHandlerInst,
		VehicleHandler:        vehicleHandlerInst,
		RentalHandler:         rentalHandlerInst,
		UnavailabilityHandler: unavailabilityHandlerInst,
		AuthMiddleware:        middleware.AuthMiddleware(s.cfg.JWTSecret),
	}
	SetupRouter(s.engine, handlers)

	// ----- Start HTTP -----
	log.Printf("server running on %s", s.cfg.HTTPAddr)
	return s.engine.Run(s.cfg.HTTPAddr)
}
