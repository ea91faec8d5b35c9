package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spacebook/backend/internal/client"
	"github.com/spacebook/backend/internal/config"
	"github.com/spacebook/backend/internal/db"
	"github.com/spacebook/backend/internal/handler"
	"github.com/spacebook/backend/internal/logging"
	"github.com/spacebook/backend/internal/ratelimit"
	"github.com/spacebook/backend/internal/service"
)

// @title           Spacebook API
// @version         1.0
// @description     Coworking space booking backend with local and Google sign-in.
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	if err := run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.New(cfg.Server.IsDevelopment())
	slog.SetDefault(logger)
	if !cfg.Server.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	logger.Info("starting application", "env", cfg.Server.Env, "port", cfg.Server.Port)

	ctx := context.Background()

	pg, err := db.NewPostgres(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pg.Close()

	if err := pg.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	authSvc, err := newAuthService(ctx, cfg, logger, pg)
	if err != nil {
		return err
	}

	limiter, closeLimiter, err := newLimiter(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeLimiter()

	router := handler.NewRouter(handler.RouterDeps{
		Auth:           authSvc,
		Resources:      handler.NewResources(pg),
		Limiter:        limiter,
		Logger:         logger,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
		close(serverErrors)
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err, ok := <-serverErrors:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case sig := <-shutdown:
		logger.Info("shutting down", "signal", sig.String())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}
	return nil
}

func newAuthService(ctx context.Context, cfg config.Config, logger *slog.Logger, pg *db.Postgres) (*service.AuthService, error) {
	var extra []string
	if cfg.Auth.DictionaryPath != "" {
		words, err := service.LoadWordFile(cfg.Auth.DictionaryPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load dictionary: %w", err)
		}
		extra = words
	}
	dict := service.EnglishDictionary(extra)
	logger.Info("dictionary loaded", "words", dict.Len())

	tokens, err := service.NewTokenService(cfg.Auth.JWTSecret)
	if err != nil {
		return nil, err
	}

	deps := service.AuthDeps{
		Accounts:              db.NewAccountRepository(pg.DB),
		Hasher:                service.NewHasher(cfg.Auth.BcryptCost),
		Policy:                service.NewPasswordPolicy(dict),
		Generator:             service.NewPasswordGenerator(dict),
		Tokens:                tokens,
		MaxGenerationAttempts: cfg.Auth.PasswordMaxAttempts,
	}

	if cfg.Google.ClientID != "" {
		google, err := client.NewGoogleClient(ctx, cfg.Google)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize google client: %w", err)
		}
		deps.Verifier = google
		if google.CanExchange() {
			deps.Exchanger = google
		}
		logger.Info("google sign-in enabled", "code_exchange", google.CanExchange())
	} else {
		logger.Warn("GOOGLE_CLIENT_ID not set; google sign-in disabled")
	}

	return service.NewAuthService(deps)
}

func newLimiter(ctx context.Context, cfg config.Config, logger *slog.Logger) (ratelimit.Limiter, func(), error) {
	if cfg.Redis.Addr == "" {
		logger.Warn("REDIS_ADDR not set; auth rate limiting disabled")
		return ratelimit.Noop{}, func() {}, nil
	}

	rdb, err := ratelimit.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize redis: %w", err)
	}
	closeFn := func() {
		if err := rdb.Close(); err != nil {
			logger.Error("failed to close redis", "error", err)
		}
	}
	return ratelimit.NewRedisLimiter(rdb, cfg.RateLimit.Limit, cfg.RateLimit.Window), closeFn, nil
}
