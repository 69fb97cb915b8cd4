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

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/prithidevghosh/speerNote/config"
	"github.com/prithidevghosh/speerNote/handler"
	"github.com/prithidevghosh/speerNote/repository"
	"github.com/prithidevghosh/speerNote/services"
	"github.com/prithidevghosh/speerNote/usecase"
	"github.com/prithidevghosh/speerNote/utils"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "speernote: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadEnvFile(".env"); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := utils.NewLogger(utils.LoggerOptions{
		Level:      cfg.LogLevel,
		Production: cfg.IsProduction(),
		FilePath:   cfg.LogFile,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	client, err := utils.NewMongoClient(ctx, cfg.Database.MongoOptions())
	if err != nil {
		logger.Error("failed to connect to MongoDB", zap.Error(err))
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			logger.Warn("failed to disconnect from MongoDB", zap.Error(err))
		}
	}()
	logger.Info("connected to MongoDB", zap.String("database", cfg.Database.DatabaseName))

	db := client.Database(cfg.Database.DatabaseName)
	indexCtx, cancel := context.WithTimeout(ctx, cfg.Database.ConnectTimeout)
	err = repository.SetupIndexes(indexCtx, db)
	cancel()
	if err != nil {
		logger.Error("failed to create indexes", zap.Error(err))
		return err
	}

	userRepo := repository.GetUserRepo(db)
	notesRepo := repository.GetNotesRepo(db)

	healthChecks := []handler.HealthCheck{
		{
			Name: "mongodb",
			Check: func(ctx context.Context) error {
				return client.Ping(ctx, readpref.Primary())
			},
		},
	}

	var revoked usecase.RevocationStore
	if cfg.RedisURL != "" {
		blacklist, err := services.NewTokenBlacklist(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error("failed to connect to Redis", zap.Error(err))
			return err
		}
		defer blacklist.Close()

		revoked = blacklist
		healthChecks = append(healthChecks, handler.HealthCheck{Name: "redis", Check: blacklist.Ping})
		logger.Info("token revocation enabled")
	} else {
		logger.Info("REDIS_URL not set, logout disabled")
	}

	authService := usecase.NewAuthService(
		userRepo,
		services.NewPasswordHasher(services.DefaultArgon2Params),
		services.NewTokenIssuer(cfg.TokenSecret, cfg.TokenExpiration),
		revoked,
	)
	notesService := usecase.NewNotesService(notesRepo, userRepo)

	router := handler.NewRouter(handler.RouterConfig{
		AuthService:  authService,
		NotesService: notesService,
		Logger:       logger,
		HealthChecks: healthChecks,
		CORSOrigins:  cfg.CORSOrigins,
		MaxBodyBytes: cfg.MaxBodyBytes,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Error("server failed", zap.Error(err))
			return err
		}
		return nil
	case sig := <-signalChan:
		logger.Info("caught signal, shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
		return err
	}

	logger.Info("server shutdown complete")
	return nil
}
