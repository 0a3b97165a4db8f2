// Command indosup serves the IndoSup marketing site API.
//
// Storage is chosen by STORAGE_DRIVER: "memory" (default) keeps everything in
// process, "postgres", "mysql" and "sqlite3" use the relational store and
// apply the embedded migrations on start when AUTO_MIGRATE is true.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/HasanApplore/IndoSup-sub000/api"
	"github.com/HasanApplore/IndoSup-sub000/auth"
	"github.com/HasanApplore/IndoSup-sub000/config"
	"github.com/HasanApplore/IndoSup-sub000/db"
	"github.com/HasanApplore/IndoSup-sub000/migrations"
	"github.com/HasanApplore/IndoSup-sub000/models"
	"github.com/HasanApplore/IndoSup-sub000/notify"
	"github.com/HasanApplore/IndoSup-sub000/repo"
	"github.com/HasanApplore/IndoSup-sub000/storage"
	"github.com/HasanApplore/IndoSup-sub000/storage/memory"
	"github.com/HasanApplore/IndoSup-sub000/uploads"
)

func main() {
	if err := run(); err != nil {
		slog.Error("indosup: fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	adminHash, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		return err
	}
	admin := models.CreateAdminUserParams{
		Email:    cfg.Admin.Email,
		Password: adminHash,
		Name:     cfg.Admin.Name,
		Role:     models.AdminRole,
	}

	store, closeStore, err := openStorage(ctx, cfg, logger, admin)
	if err != nil {
		return err
	}
	defer closeStore()

	files, err := uploads.NewStore(cfg.UploadDir, cfg.MaxUploadBytes)
	if err != nil {
		return err
	}

	var notifier notify.Publisher = notify.Nop{}
	if cfg.RabbitMQURL != "" {
		mq, err := notify.NewRabbitMQ(cfg.RabbitMQURL, cfg.RabbitMQQueue)
		if err != nil {
			return err
		}
		notifier = mq
		logger.Info("notify: publishing to rabbitmq", "queue", cfg.RabbitMQQueue)
	}
	defer notifier.Close()

	var tokens *auth.Issuer
	if cfg.Admin.JWTSecret != "" {
		tokens = auth.NewIssuer(cfg.Admin.JWTSecret, cfg.Admin.TokenTTL)
	} else {
		logger.Warn("ADMIN_JWT_SECRET is not set; admin routes are unauthenticated")
	}

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: api.NewRouter(api.Deps{
			Store:    store,
			Uploads:  files,
			Notifier: notifier,
			Tokens:   tokens,
			Logger:   logger,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http: listening", "addr", srv.Addr, "storage", cfg.Storage)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("http: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStorage builds the configured store and makes sure the default admin
// exists. The returned func releases it.
func openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger, admin models.CreateAdminUserParams) (storage.Storage, func(), error) {
	if !cfg.Relational() {
		store := memory.New()
		if _, err := storage.Seed(ctx, store, admin); err != nil {
			return nil, nil, err
		}
		logger.Info("storage: in-memory store ready", "admin", admin.Email)
		return store, func() {}, nil
	}

	opts := cfg.DriverOptions()
	var database *db.DB
	err := db.WithRetry(ctx, db.RetryConfig{MaxAttempts: 5, Delay: 2 * time.Second}, func() error {
		var err error
		database, err = db.OpenWithDriver(cfg.Storage, opts, db.Config{
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
			DefaultTimeout:  cfg.Database.QueryTimeout,
			Hooks: []db.Hook{db.NewLogHook(db.LogHookConfig{
				Logger:             logger,
				SlowQueryThreshold: cfg.Database.SlowQuery,
			})},
		})
		return err
	})
	if err != nil {
		return nil, nil, fmt.Errorf("storage: connect %s: %w", cfg.Storage, err)
	}

	if cfg.Database.AutoMigrate {
		dsn, err := db.BuildDSN(cfg.Storage, opts)
		if err == nil {
			err = migrations.Up(cfg.Storage, dsn, logger)
		}
		if err != nil {
			_ = database.Close()
			return nil, nil, err
		}
	}

	created, err := repo.Seed(ctx, database, admin)
	if err != nil {
		_ = database.Close()
		return nil, nil, err
	}
	logger.Info("storage: relational store ready",
		"driver", cfg.Storage, "database", cfg.Database.Name, "admin_created", created)
	return repo.NewStorage(database), func() { _ = database.Close() }, nil
}
