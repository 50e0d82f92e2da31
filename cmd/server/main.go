package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hongminglow/driveops-be/internal/auth"
	"github.com/hongminglow/driveops-be/internal/config"
	"github.com/hongminglow/driveops-be/internal/logger"
	"github.com/hongminglow/driveops-be/internal/middleware"
	"github.com/hongminglow/driveops-be/internal/server"
	"github.com/hongminglow/driveops-be/internal/service"
	"github.com/hongminglow/driveops-be/internal/storage"
	"github.com/hongminglow/driveops-be/internal/storage/memory"
	"github.com/hongminglow/driveops-be/internal/storage/postgres"
	"github.com/hongminglow/driveops-be/internal/uploads"
)

func main() {
	envLoaded := godotenv.Load() == nil

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.ServiceName, cfg.LoggerLevel)
	defer func() { _ = log.Sync() }()
	if !envLoaded {
		log.Info("no .env file found; relying on existing environment")
	}

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", logger.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config, log logger.ILogger) error {
	ctx := context.Background()

	store, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.Close()

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	svc := service.New(store, tokens, log)

	if cfg.BootstrapAdmin() {
		if _, err := svc.Auth().EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			return fmt.Errorf("bootstrap admin: %w", err)
		}
	}

	blobs, err := uploads.NewLocalStore(cfg.UploadDir, cfg.MaxUploadSize)
	if err != nil {
		return err
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateBurst, log)
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go sweepLimiter(sweepCtx, limiter)

	srv := server.New(cfg, server.Deps{
		Services: svc,
		Tokens:   tokens,
		DB:       store,
		Uploads:  blobs,
		Limiter:  limiter,
		Logger:   log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info("DriveOps backend listening", logger.String("addr", cfg.HTTPAddress()), logger.String("storage", cfg.StorageDriver))
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case sig := <-sigCh:
		log.Info("shutting down", logger.String("signal", sig.String()))
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Warning("graceful shutdown error", logger.Error(err))
	}
	return nil
}

func sweepLimiter(ctx context.Context, limiter *middleware.RateLimiter) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			limiter.Sweep()
		}
	}
}

func openStore(ctx context.Context, cfg config.Config, log logger.ILogger) (storage.Store, error) {
	if cfg.StorageDriver == config.DriverMemory {
		log.Warning("using in-memory storage; data is lost on restart")
		return memory.New(), nil
	}
	store, err := postgres.NewStore(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	return store, nil
}
