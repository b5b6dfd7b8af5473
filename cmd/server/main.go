package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/staff-timeclock/internal/bootstrap"
	"github.com/iliyamo/staff-timeclock/internal/config"
	"github.com/iliyamo/staff-timeclock/internal/database"
	"github.com/iliyamo/staff-timeclock/internal/handler"
	"github.com/iliyamo/staff-timeclock/internal/logger"
	appmw "github.com/iliyamo/staff-timeclock/internal/middleware"
	"github.com/iliyamo/staff-timeclock/internal/queue"
	"github.com/iliyamo/staff-timeclock/internal/repository"
	"github.com/iliyamo/staff-timeclock/internal/router"
	"github.com/iliyamo/staff-timeclock/internal/timeclock"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		zlog.Fatalw("mysql connect failed", "err", err)
	}
	if err := database.Migrate(db, cfg.MigrationsDir); err != nil {
		zlog.Fatalw("migrations failed", "err", err)
	}
	users := repository.NewUserRepo(db)
	toks := repository.NewTokenRepo(db)

	// Seed the first admin: self-registration only yields STAFF, so a
	// fresh database needs one admin before the admin surface is usable.
	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		created, err := bootstrap.EnsureAdmin(ctx, users, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName, cfg.BcryptCost)
		cancel()
		if err != nil {
			zlog.Fatalw("admin bootstrap failed", "err", err)
		}
		if created {
			zlog.Infow("bootstrap admin created", "email", cfg.AdminEmail)
		}
	}

	clockSvc := timeclock.NewService(repository.NewEntryRepo(db))

	// Redis backs the response cache and the rate limiter; both degrade
	// to pass-through middleware when the client is nil or disabled.
	rdb := config.NewRedisClient()
	rlCfg := config.LoadRateLimitConfig()
	cacheCfg := config.LoadCacheConfig()

	e := echo.New()
	e.HideBanner = true
	e.Use(appmw.RequestLog(zlog))
	e.Use(appmw.NewTokenBucket(rlCfg, rdb))

	authH := handler.NewAuthHandler(cfg, users, toks)
	clockH := handler.NewClockHandler(cfg, clockSvc, users, zlog, cacheCfg, rdb)
	reportH := handler.NewReportHandler(clockSvc)
	adminH := handler.NewAdminHandler(cfg, users, clockSvc)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterStaff(e, clockH, reportH, cfg.JWTSecret, cacheCfg, rdb)
	router.RegisterAdmin(e, adminH, cfg.JWTSecret)

	// The audit consumer tails clock.events and appends to logs/clock.log.
	// It runs only when a broker is configured.
	if cfg.RabbitURL != "" {
		go func() {
			if err := queue.StartClockConsumer(cfg.RabbitURL); err != nil {
				zlog.Errorw("clock consumer stopped", "err", err)
			}
		}()
	}

	addr := ":" + cfg.Port
	zlog.Infow("listening", "addr", addr, "env", cfg.Env)
	if err := e.Start(addr); err != nil {
		zlog.Fatalw("server stopped", "err", err)
	}
}
