package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"

	"github.com/hercules-fit/hercules-api/config"
	"github.com/hercules-fit/hercules-api/internal/api"
	"github.com/hercules-fit/hercules-api/internal/api/handler"
	"github.com/hercules-fit/hercules-api/internal/repository"
	"github.com/hercules-fit/hercules-api/internal/service"
	"github.com/hercules-fit/hercules-api/internal/storage"
	"github.com/hercules-fit/hercules-api/internal/tracing"
	"github.com/hercules-fit/hercules-api/pkg/database"
	"github.com/hercules-fit/hercules-api/pkg/logger"
)

// @title Hercules API
// @version 1.0
// @description Social fitness backend: accounts, friends, posts with GPS tracks, messaging and nutrition tracking.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(cfg.Log); err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			logger.Error("sentry init failed", zap.Error(err))
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	ctx := context.Background()
	shutdownTracing, err := tracing.Setup(ctx, cfg.Tracing)
	if err != nil {
		logger.Error("tracing setup failed", zap.Error(err))
		os.Exit(1)
	}
	defer shutdownTracing(ctx)

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Error("database init failed", zap.Error(err))
		os.Exit(1)
	}

	media, err := storage.NewMediaStore(cfg.Media.UploadDir)
	if err != nil {
		logger.Error("media store init failed", zap.Error(err))
		os.Exit(1)
	}

	loc, err := time.LoadLocation(cfg.Nutrition.Timezone)
	if err != nil {
		logger.Error("invalid nutrition timezone", zap.String("timezone", cfg.Nutrition.Timezone), zap.Error(err))
		os.Exit(1)
	}

	users := repository.NewUserRepository(db)
	friends := repository.NewFriendshipRepository(db)
	posts := repository.NewPostRepository(db)
	messages := repository.NewMessageRepository(db)
	meals := repository.NewMealRepository(db)

	tokens := service.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	authSvc := service.NewAuthService(db, users, tokens, cfg.Auth.BcryptCost)
	userSvc := service.NewUserService(users, friends, posts)
	socialSvc := service.NewSocialService(friends, users)
	contentSvc := service.NewContentService(db, posts, friends, users, media)
	messagingSvc := service.NewMessagingService(messages, users)
	nutritionSvc := service.NewNutritionService(meals, users, loc)

	handler.RegisterValidators()
	h := handler.New(authSvc, userSvc, socialSvc, contentSvc, messagingSvc, nutritionSvc, media)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: api.NewRouter(cfg, h, tokens),
	}

	go func() {
		logger.Info("server listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", zap.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
}
