package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"social-service/internal/cache"
	"social-service/internal/config"
	"social-service/internal/db"
	"social-service/internal/handlers"
	"social-service/internal/metrics"
	"social-service/internal/middleware"
	"social-service/internal/observability"
	"social-service/internal/rabbitmq"
	"social-service/internal/repositories"
	"social-service/internal/services"
	"social-service/internal/telemetry"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Connect(cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	var friendCache cache.Cache
	if cfg.Redis.Addr == "" {
		logger.Warn("REDIS_ADDR not set; using in-process friend list cache")
		friendCache = cache.NewMemoryCache()
	} else {
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisCache.Close()
		friendCache = redisCache
	}

	publisher := rabbitmq.NewNoopPublisher()
	if cfg.AMQP.URL == "" {
		logger.Warn("AMQP_URL not set; event publishing disabled")
	} else {
		pub, err := rabbitmq.NewPublisher(cfg.AMQP.URL, cfg.AMQP.EventExchange)
		if err != nil {
			logger.Warn("failed to initialize RabbitMQ publisher", zap.Error(err))
		} else {
			publisher = pub
		}
	}
	defer publisher.Close()

	auditPublisher := rabbitmq.NewNoopPublisher()
	if cfg.AMQP.URL != "" {
		pub, err := rabbitmq.NewPublisher(cfg.AMQP.URL, cfg.AMQP.LogsExchange)
		if err != nil {
			logger.Warn("failed to initialize RabbitMQ audit publisher", zap.Error(err))
		} else {
			auditPublisher = pub
		}
	}
	defer auditPublisher.Close()

	friendRepo := repositories.NewFriendRepository(database, cfg.Friends.Cooldown())
	blockRepo := repositories.NewBlockRepository(database)
	userRepo := repositories.NewUserRepository(database)

	friendService := services.NewFriendService(friendRepo, userRepo, friendCache, cfg.Friends.CacheTTL(), publisher, logger)
	blockService := services.NewBlockService(blockRepo, userRepo, logger)
	userService := services.NewUserService(userRepo)

	auditEmitter := telemetry.NewAuditEmitter(auditPublisher, cfg.ServiceName, cfg.Environment, logger)
	friendHandler := handlers.NewFriendHandler(friendService, auditEmitter)
	blockHandler := handlers.NewBlockHandler(blockService, auditEmitter)
	userHandler := handlers.NewUserHandler(userService)

	observability.InitMetrics(prometheus.DefaultRegisterer)
	metrics.RegisterFriendMetrics()

	r := gin.New()
	r.Use(middleware.Logger(logger), gin.Recovery(), middleware.Metrics())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/users/:id", userHandler.GetUserByID)

	auth := r.Group("", middleware.JWTAuth(cfg.JWT.Secret))
	auth.GET("/users/search", userHandler.Search)
	auth.POST("/friends/request", friendHandler.SendRequest)
	auth.GET("/friends/requests/incoming", friendHandler.ListIncoming)
	auth.POST("/friends/requests/:id/accept", friendHandler.AcceptRequest)
	auth.POST("/friends/requests/:id/reject", friendHandler.RejectRequest)
	auth.GET("/friends", friendHandler.ListFriends)
	auth.POST("/blocks", blockHandler.Block)
	auth.DELETE("/blocks/:id", blockHandler.Unblock)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}
}
