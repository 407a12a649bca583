package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"resume-builder/internal/config"
	"resume-builder/internal/db"
	apihttp "resume-builder/internal/http"
	"resume-builder/internal/repository"
	"resume-builder/internal/service"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Migrate(ctx, cfg); err != nil {
		logger.Fatal("db migrate", zap.Error(err))
	}

	userRepo := repository.NewPgUserRepository(pool)
	resumeRepo := repository.NewPgResumeRepository(pool)

	var limiter service.LoginRateLimiter
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			limiter = service.NewRedisLoginRateLimiter(redisClient, 15*time.Minute, 10)
		}
		cancel()
	}
	if limiter == nil {
		limiter = service.NewLoginRateLimiter(15*time.Minute, 10)
	}

	jwtSvc := service.NewJWTService(cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour)
	authSvc := service.NewAuthService(logger, userRepo, limiter)

	authHandler := apihttp.NewAuthHandler(logger, authSvc, jwtSvc)
	userHandler := apihttp.NewUserHandler(logger, userRepo)
	resumeHandler := apihttp.NewResumeHandler(logger, resumeRepo)
	adminHandler := apihttp.NewAdminHandler(logger, userRepo, resumeRepo)
	router := apihttp.NewRouter(logger, authHandler, userHandler, resumeHandler, adminHandler, jwtSvc, userRepo, cfg.ClientURL)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
