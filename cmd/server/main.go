package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"habit-tracker/internal/config"
	apphttp "habit-tracker/internal/http"
	"habit-tracker/internal/repository/sqlite"
	"habit-tracker/internal/service"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		logger.Fatalf("resolve timezone: %v", err)
	}

	sessions, err := apphttp.NewSessions(apphttp.SessionConfig{
		Secret:       cfg.Auth.JWTSecret,
		TTL:          cfg.TokenTTL(),
		CookieName:   cfg.Auth.CookieName,
		SecureCookie: cfg.Auth.SecureCookie,
	})
	if err != nil {
		logger.Fatalf("setup sessions: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	userRepo := sqlite.NewUserRepository(db)
	habitRepo := sqlite.NewHabitRepository(db)
	logRepo := sqlite.NewHabitLogRepository(db)

	if err := sqlite.InitAll(ctx, userRepo, habitRepo, logRepo); err != nil {
		logger.Fatalf("init schema: %v", err)
	}

	userService := service.NewUserService(userRepo)
	habitService := service.NewHabitService(habitRepo, logRepo, service.WithLocation(loc))

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(userService, habitService, sessions, logger)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s (days in %s)", cfg.Server.Addr, loc)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}
