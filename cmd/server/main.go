package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gongobongo-backend-go/internal/ai"
	"gongobongo-backend-go/internal/api"
	"gongobongo-backend-go/internal/config"
	"gongobongo-backend-go/internal/core"
	"gongobongo-backend-go/internal/db"
	"gongobongo-backend-go/internal/middleware"
	"gongobongo-backend-go/pkg/cache"
	"gongobongo-backend-go/pkg/mailer"
	"gongobongo-backend-go/pkg/messagequeue"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	var logger *zap.Logger
	if cfg.GinMode == "release" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := db.InitFirebase(ctx, cfg); err != nil {
		logger.Fatal("Failed to initialize Firebase", zap.Error(err))
	}
	fsClient := db.GetFirestoreClient()
	defer fsClient.Close()

	generator, err := ai.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		logger.Fatal("Failed to initialize Gemini client", zap.Error(err))
	}

	// Repositories.
	userRepo := db.NewFirestoreUserRepository(fsClient)
	chatRepo := db.NewFirestoreChatRepository(fsClient)
	msgRepo := db.NewFirestoreMessageRepository(fsClient)
	settingsRepo := db.NewFirestoreSettingsRepository(fsClient)
	presenceRepo := db.NewRTDBPresenceRepository(db.GetRTDBClient())

	// Optional profile cache.
	var profileCache cache.Cache
	if cfg.RedisAddr != "" {
		profileCache, err = cache.NewRedisCache(cache.NewRedisCacheConfig{
			Address:  cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			logger.Warn("Redis unavailable, profile caching disabled", zap.Error(err))
			profileCache = nil
		}
	}

	// Optional notification fan-out: publisher on the send path, consumer
	// worker emailing offline recipients.
	var queue messagequeue.MessageQueue
	if cfg.AMQPURL != "" {
		queue, err = messagequeue.NewRabbitMQService(messagequeue.NewRabbitMQServiceConfig{URL: cfg.AMQPURL})
		if err != nil {
			logger.Warn("RabbitMQ unavailable, notification events disabled", zap.Error(err))
			queue = nil
		} else {
			defer queue.Close()
		}
	}

	// Services.
	userService := core.NewUserService(userRepo, presenceRepo, core.NewFirebaseAuthAccounts(db.GetFirebaseAuthClient()), logger)
	chatService := core.NewChatService(chatRepo, userRepo)
	messageService := core.NewMessageService(core.NewMessageServiceConfig{
		ChatRepo:  chatRepo,
		MsgRepo:   msgRepo,
		UserRepo:  userRepo,
		Profiles:  profileCache,
		Generator: generator,
		Publisher: queue,
		QueueName: cfg.NotificationsQueue,
		Logger:    logger,
	})
	assistService := core.NewAssistService(generator, logger)
	settingsService := core.NewSettingsService(settingsRepo)
	presenceService := core.NewPresenceService(presenceRepo, userRepo, cfg.PresenceOfflineAfter, logger)

	if queue != nil && cfg.SMTPUser != "" {
		m, err := mailer.NewMailer(mailer.NewMailerConfig{
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			Sender:   cfg.SMTPSender,
		})
		if err != nil {
			logger.Warn("Mailer misconfigured, email notifications disabled", zap.Error(err))
		} else {
			notifier := core.NewNotifier(userRepo, settingsRepo, presenceRepo, m, logger)
			go func() {
				if err := queue.Consume(cfg.NotificationsQueue, notifier.HandleEvent); err != nil {
					logger.Error("Notification consumer stopped", zap.Error(err))
				}
			}()
		}
	}

	// Background sweeper marking silent users offline.
	go runPresenceSweeper(ctx, presenceService, cfg.PresenceHeartbeatInterval, logger)

	gin.SetMode(ginMode(cfg.GinMode))
	router := gin.New()
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.CORSMiddleware(cfg.ClientURL))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiV1 := router.Group("/api/v1")
	apiV1.Use(middleware.AuthMiddleware(db.GetFirebaseAuthClient()))
	api.RegisterRoutes(apiV1, api.Handlers{
		Users:    api.NewUserHandler(userService),
		Chats:    api.NewChatHandler(chatService, messageService),
		Assist:   api.NewAssistHandler(assistService),
		Settings: api.NewSettingsHandler(settingsService),
		Presence: api.NewPresenceHandler(presenceService),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Server starting", zap.String("port", cfg.Port), zap.String("mode", gin.Mode()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to run server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Forced shutdown", zap.Error(err))
	}
	logger.Info("Server stopped")
}

func ginMode(mode string) string {
	switch mode {
	case "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}

// runPresenceSweeper periodically marks offline every user whose heartbeat
// went silent. Runs until the process context is cancelled.
func runPresenceSweeper(ctx context.Context, presence core.PresenceService, interval time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := presence.SweepStale(ctx); err != nil {
				logger.Warn("Presence sweep failed", zap.Error(err))
			}
		}
	}
}
