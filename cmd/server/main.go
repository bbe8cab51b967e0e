package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	_ "dailydiet/docs" // swagger docs

	"dailydiet/internal/auth"
	"dailydiet/internal/cache"
	"dailydiet/internal/config"
	"dailydiet/internal/db"
	"dailydiet/internal/handler"
	"dailydiet/internal/logger"
	"dailydiet/internal/repository"
	"dailydiet/internal/router"
	"dailydiet/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title Daily Diet API
// @version 1.0
// @description Session-authenticated meal tracking with an on-diet streak summary.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name sessionId
// @description Session cookie issued by POST /auth/sign-in.
func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	gormDB, err := db.NewMySQL(cfg.MySQLDSN, db.Options{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	}, log)
	if err != nil {
		log.WithError(err).Fatal("database init")
	}

	if err := db.Migrate(gormDB, cfg.ResetDB, log); err != nil {
		log.WithError(err).Fatal("auto-migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	if cacheClient.Enabled() {
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := cacheClient.Ping(pingCtx); err != nil {
			log.WithError(err).WithField("addr", cfg.RedisAddr).Warn("redis unreachable, sessions resolve from the database")
		}
		cancel()
	} else {
		log.Info("REDIS_ADDR not set, session cache disabled")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	mealRepo := repository.NewMealRepository(gormDB)

	// Initialize services
	sessionStore := auth.NewSessionStore(cacheClient, cfg.SessionTTL)
	authService := service.NewAuthService(userRepo, sessionStore, log)
	mealService := service.NewMealService(mealRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, auth.CookieOptions{
		TTL:    cfg.SessionTTL,
		Secure: cfg.CookieSecure,
	})
	mealHandler := handler.NewMealHandler(mealService)

	e := echo.New()
	router.Register(e, log, authService, authHandler, mealHandler)

	log.Infof("Swagger documentation available at: %s", swaggerURL(cfg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := ":" + cfg.ServerPort
		log.WithField("addr", addr).Info("server listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server start")
		}
	}()

	<-ctx.Done()
	log.Info("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server shutdown")
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("server stopped")
}

func swaggerURL(cfg *config.Config) string {
	host := cfg.SwaggerHost
	if host == "" {
		host = "localhost:" + cfg.ServerPort
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return strings.TrimSuffix(host, "/") + "/swagger/index.html"
}
