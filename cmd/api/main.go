package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KNehe/swimmy/internal/api"
	"github.com/KNehe/swimmy/internal/auth"
	"github.com/KNehe/swimmy/internal/config"
	"github.com/KNehe/swimmy/internal/db"
	"github.com/KNehe/swimmy/internal/logger"
	"github.com/KNehe/swimmy/internal/mailer"
	"github.com/KNehe/swimmy/internal/metrics"
	"github.com/KNehe/swimmy/internal/repository/postgres"
	"github.com/KNehe/swimmy/internal/services"
	"github.com/KNehe/swimmy/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if os.Getenv("APP_MIGRATE") == "true" {
		if err := db.RunMigrations(ctx, dbPool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	metrics.Init()

	repos := postgres.NewRepositories(dbPool)
	wp := worker.NewPool(4)
	defer wp.Stop()

	tm := auth.NewTokenManager(cfg.AccessSecret, cfg.RefreshSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL)
	resets := auth.NewResetTokenGenerator(cfg.AccessSecret, cfg.ResetTTL)
	mail := mailer.NewDispatcher(mailer.NewSMTP(cfg.SMTPAddr, cfg.FromEmail), wp)

	svc := api.Services{
		Users:    services.NewUserService(repos.Users, tm, resets, mail, cfg.FrontendURL),
		Pools:    services.NewPoolService(repos.Pools),
		Bookings: services.NewBookingService(repos.Bookings, repos.Pools, repos.Users),
		Ratings:  services.NewRatingService(repos.Ratings, repos.Pools, repos.Users),
		Uploads:  services.NewUploadService(repos.Uploads, cfg.UploadDir),
	}

	r := api.NewRouter(cfg, tm, svc)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
