package main

// @title Venue Compass API
// @version 1.0.0
// @description Сервис поиска заведений вокруг пользователя и оценки курса компаса по датчикам устройства.
// @description
// @description Основные возможности:
// @description - Поиск баров, ресторанов, винных погребов и других заведений по данным OpenStreetMap
// @description - Поиск в радиусе вокруг точки или в границах выбранного города
// @description - Подсказки городов по частичному названию
// @description - Сессии компаса: сглаженный курс из кватернионов, магнитометра или событий ориентации
// @description - Статистика выполненных поисков

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/venue-compass/docs/swagger"
	"github.com/venue-compass/internal/config"
	httpDelivery "github.com/venue-compass/internal/delivery/http"
	"github.com/venue-compass/internal/delivery/http/handler"
	"github.com/venue-compass/internal/infrastructure/nominatim"
	"github.com/venue-compass/internal/infrastructure/overpass"
	"github.com/venue-compass/internal/pkg/logger"
	"github.com/venue-compass/internal/pkg/ratelimit"
	"github.com/venue-compass/internal/repository/cache"
	"github.com/venue-compass/internal/repository/postgres"
	redisrepo "github.com/venue-compass/internal/repository/redis"
	"github.com/venue-compass/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Venue Compass API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize Repositories
	cacheRepo := cache.NewCacheRepository(redisClient, log)
	streamRepo := redisrepo.NewStreamRepository(redisClient.Client(), log)
	searchLogRepo := postgres.NewSearchLogRepository(db)

	limiter := ratelimit.New(
		cfg.Overpass.MinInterval,
		cfg.Overpass.WindowLength,
		cfg.Overpass.MaxPerWindow,
		log,
	)
	overpassRepo := overpass.NewOverpassClient(&cfg.Overpass, limiter, log)
	geocodeRepo := nominatim.NewNominatimClient(&cfg.Nominatim, log)

	log.Info("Repositories initialized")

	// 7. Initialize Use Cases
	cityUC := usecase.NewCityUseCase(geocodeRepo, log)
	venueUC := usecase.NewVenueUseCase(
		overpassRepo,
		cacheRepo,
		streamRepo,
		cityUC,
		log,
		cfg.Cache.VenueCacheTTL,
	)
	headingUC := usecase.NewHeadingUseCase(log)
	statsUC := usecase.NewStatsUseCase(searchLogRepo, cacheRepo, log, cfg.Cache.StatsCacheTTL)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP Handlers
	venueHandler := handler.NewVenueHandler(venueUC, log)
	cityHandler := handler.NewCityHandler(cityUC, log)
	headingHandler := handler.NewHeadingHandler(headingUC, log)
	statsHandler := handler.NewStatsHandler(statsUC, log)

	// 9. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		venueHandler,
		cityHandler,
		headingHandler,
		statsHandler,
	)

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
