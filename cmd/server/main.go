package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/attendr/attendance-api/internal/api"
	"github.com/attendr/attendance-api/internal/api/handler"
	"github.com/attendr/attendance-api/internal/core/service"
	"github.com/attendr/attendance-api/internal/infrastructure/db/mongo"
	"github.com/attendr/attendance-api/internal/infrastructure/db/redis"
	"github.com/attendr/attendance-api/internal/infrastructure/token"
	"github.com/attendr/attendance-api/internal/pkg/config"
	"github.com/attendr/attendance-api/pkg/logger"
)

//	@title						Attendance API
//	@version					1.0
//	@description				Multi-tenant employee attendance tracking.
//	@BasePath					/api
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "attendance-api",
	})

	ctx := context.Background()

	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}

	users := mongo.NewUserRepository(db)
	orgs := mongo.NewOrganizationRepository(db)
	attendance := mongo.NewAttendanceRepository(db)
	if err := mongo.EnsureIndexes(ctx, users, orgs, attendance); err != nil {
		log.Fatal().Err(err).Msg("failed to create MongoDB indexes")
	}

	checks := map[string]handler.Check{
		"mongodb": func(ctx context.Context) error { return mongoClient.Ping(ctx, readpref.Primary()) },
		"redis":   nil,
	}

	// Redis only backs the login throttle; without it logins are not throttled.
	var limiter service.LoginLimiter
	var redisClient *goredis.Client
	redisCfg := redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB}
	if redisCfg.Enabled() {
		redisClient, err = redis.Connect(ctx, redisCfg)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, login throttling disabled")
		} else {
			limiter = redis.NewLoginThrottle(redisClient, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginLockoutWindow)
			checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
		}
	}

	e := api.NewRouter(api.Dependencies{
		Logger:         log,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Tokens:         token.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Users:          users,
		Orgs:           orgs,
		Attendance:     attendance,
		Limiter:        limiter,
		HealthChecks:   checks,
	})

	e.Server.ReadTimeout = 15 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.IdleTimeout = 60 * time.Second

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongo disconnect error")
	}
}
