package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shenikar/crowd_alert_system/internal/config"
	"github.com/shenikar/crowd_alert_system/internal/crowd"
	v1 "github.com/shenikar/crowd_alert_system/internal/handler/http/v1"
	"github.com/shenikar/crowd_alert_system/internal/notifier"
	"github.com/shenikar/crowd_alert_system/internal/repository"
	"github.com/shenikar/crowd_alert_system/internal/service"
	"github.com/shenikar/crowd_alert_system/pkg/logger"
	natsclient "github.com/shenikar/crowd_alert_system/pkg/nats"
	"github.com/shenikar/crowd_alert_system/pkg/postgres"
	redisclient "github.com/shenikar/crowd_alert_system/pkg/redis"
	"github.com/shenikar/crowd_alert_system/pkg/sqlite"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/crowd_alert_system/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Crowd Alert System API
// @version 1.0
// @description Crowd density monitoring and proximity alerts for event participants.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

// openStore открывает хранилище, выбранное STORE_DRIVER
func openStore(ctx context.Context, cfg *config.Config, log *logrus.Logger) (service.Store, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreDriverSQLite:
		db, err := sqlite.NewSQLiteDB(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open SQLite: %w", err)
		}
		log.WithField("path", cfg.SQLitePath).Info("Successfully opened SQLite store")
		return repository.NewSQLiteStore(db), func() { _ = db.Close() }, nil
	default:
		if err := runMigrations(cfg, log); err != nil {
			return nil, nil, err
		}
		dbpool, err := postgres.NewPostgresDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		log.Info("Successfully connected to PostgreSQL")
		return repository.NewPostgresStore(dbpool), dbpool.Close, nil
	}
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer closeStore()

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, redisclient.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
		PoolSize: cfg.RedisPoolSize,
	})
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	// Транспорт SMS и воркер доставки
	smsWorker := notifier.NewSMSWorker(log, cfg)
	var alertNotifier crowd.Notifier
	switch cfg.NotifierDriver {
	case config.NotifierDriverNATS:
		natsConn, err := natsclient.NewNatsConn(cfg.NatsURL, "crowd-alert-system")
		if err != nil {
			log.Fatalf("Failed to connect to NATS: %v", err)
		}
		defer natsConn.Close()
		log.Info("Successfully connected to NATS")

		if _, err := smsWorker.Subscribe(ctx, natsConn, cfg.NatsSubject); err != nil {
			log.Fatalf("Failed to start sms worker: %v", err)
		}
		alertNotifier = notifier.NewNATSSMSPublisher(natsConn, cfg.NatsSubject)
	default:
		smsWorker.Start(ctx, redisClient)
		alertNotifier = notifier.NewRedisSMSPublisher(redisClient)
	}

	// Подавление повторных оповещений включается ALERT_COOLDOWN
	var suppressor crowd.AlertSuppressor
	if cfg.AlertCooldown > 0 {
		suppressor = notifier.NewRedisCooldown(redisClient, cfg.AlertCooldown)
	}

	participantCache := repository.NewParticipantCache(redisClient, cfg.ParticipantCacheTTL)

	// Инициализация сервисов
	crowdService := service.NewCrowdService(store, participantCache, alertNotifier, suppressor, log, cfg)

	// Инициализация хэндлеров
	handler := v1.NewHandler(crowdService, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	router.Use(v1.PrometheusMiddleware())
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}
	// останавливаем воркер после того, как новые запросы перестали поступать
	cancel()

	log.Info("Server gracefully stopped")
}
