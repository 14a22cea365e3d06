package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/NoahOriano/see-your-future/internal/cache"
	"github.com/NoahOriano/see-your-future/internal/config"
	"github.com/NoahOriano/see-your-future/internal/genai"
	"github.com/NoahOriano/see-your-future/internal/repository"
	"github.com/NoahOriano/see-your-future/internal/service"
	"github.com/NoahOriano/see-your-future/internal/transport/rest"
	"github.com/NoahOriano/see-your-future/internal/transport/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	var logger *zap.Logger
	if cfg.Server.Mode == "release" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx := context.Background()

	aiConfig := config.DefaultAIConfig()
	logger.Info("text provider",
		zap.String("questionsModel", aiConfig.Models.Questions),
		zap.String("futureModel", aiConfig.Models.Future),
		zap.String("imagePromptModel", aiConfig.Models.ImagePrompt),
		zap.String("visionModel", aiConfig.Models.Vision),
		zap.Bool("enabled", aiConfig.IsEnabled()))

	imageConfig := config.DefaultImageConfig()
	ttsConfig := config.DefaultTTSConfig()
	logger.Info("media providers",
		zap.String("imageProvider", string(imageConfig.Provider)),
		zap.Bool("ttsEnabled", ttsConfig.IsEnabled()))

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		logger.Fatal("failed to ping MongoDB", zap.Error(err))
	}
	logger.Info("connected to MongoDB", zap.String("database", cfg.Mongo.Database))

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		logger.Fatal("failed to ping Redis", zap.Error(err))
	}
	logger.Info("connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// WebSocket hub
	wsHub := ws.NewHub(logger)

	// Repositories and caches
	sessionRepo := repository.NewSessionRepository(mongoClient, cfg.Mongo.Database)
	bankRepo := repository.NewBankRepository(mongoClient, cfg.Mongo.Database)
	sessionCache := cache.NewSessionCache(rdb)

	// Services
	aiClient := genai.NewClient(aiConfig)
	authSvc := service.NewAuthService(cfg.JWT.Secret)
	selector := service.NewSelectorService()
	generator := service.NewGeneratorService(aiClient, aiConfig.Models.Questions, cfg.Engine.FallbackQuestionCount, logger)
	futureSvc := service.NewFutureService(aiClient, aiConfig.Models.Future, logger)
	imageSvc := service.NewImageService(aiClient, aiConfig.Models, imageConfig, logger)
	ttsSvc := service.NewTTSService(ttsConfig, logger)

	sessionSvc := service.NewSessionService(
		sessionRepo, bankRepo, sessionCache,
		selector, generator, futureSvc, imageSvc, ttsSvc,
		cfg.Engine, logger,
	)
	sessionSvc.SetBroadcaster(wsHub)

	// Router
	router := rest.NewRouter(&rest.Container{
		AuthService:    authSvc,
		SessionService: sessionSvc,
		WSHub:          wsHub,
		Logger:         logger,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen and serve", zap.Error(err))
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}
