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
	goredis "github.com/redis/go-redis/v9"

	"github.com/shenikar/fyren/internal/auth"
	"github.com/shenikar/fyren/internal/config"
	v1 "github.com/shenikar/fyren/internal/handler/http/v1"
	"github.com/shenikar/fyren/internal/lockout"
	"github.com/shenikar/fyren/internal/repository"
	"github.com/shenikar/fyren/internal/service"
	"github.com/shenikar/fyren/internal/storage"
	"github.com/shenikar/fyren/internal/syncqueue"
	"github.com/shenikar/fyren/pkg/logger"
	"github.com/shenikar/fyren/pkg/postgres"
	redisclient "github.com/shenikar/fyren/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/fyren/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Fyren Incident API
// @version 1.0
// @description Incident registry with local storage, delayed sync and role based access.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
		migrationURL = strings.Replace(migrationURL, "postgresql://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://"+cfg.MigrationsDir,
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

// syncBackend - планировщик задач синхронизации и функция его остановки
type syncBackend struct {
	scheduler service.SyncScheduler
	stop      func()
}

func newSyncBackend(ctx context.Context, cfg *config.Config, log *logrus.Logger, redisClient *goredis.Client, dispatcher *syncqueue.Dispatcher) syncBackend {
	if cfg.SyncMode == config.SyncModeRedis {
		worker := syncqueue.NewSyncWorker(redisClient, dispatcher, log, cfg.SyncPollInterval)
		worker.Start(ctx)
		return syncBackend{
			scheduler: syncqueue.NewRedisSyncPublisher(redisClient),
			stop:      func() { <-worker.Done() },
		}
	}

	timers := syncqueue.NewTimerScheduler(dispatcher, log)
	return syncBackend{scheduler: timers, stop: timers.Stop}
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Инициализация Redis клиента, если он нужен хранилищу или очереди синхронизации
	var redisClient *goredis.Client
	if cfg.UsesRedis() {
		redisClient, err = redisclient.NewRedisClient(ctx, redisclient.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		log.Info("Successfully connected to Redis")
	}

	// Выбор хранилища
	var store storage.Store
	switch cfg.StorageDriver {
	case config.StorageDriverPostgres:
		if err := runMigrations(cfg, log); err != nil {
			log.Fatalf("Failed to run database migrations: %v", err)
		}
		dbpool, err := postgres.NewPostgresDB(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		}
		defer dbpool.Close()
		log.Info("Successfully connected to PostgreSQL")
		store = storage.NewPostgresStore(dbpool)
	case config.StorageDriverRedis:
		store = storage.NewRedisStore(redisClient)
	default:
		log.Warn("Using in-memory storage, data will be lost on restart")
		store = storage.NewMemoryStore()
	}

	// Инициализация репозиториев
	incidentRepo := repository.NewIncidentRepository(store, log)
	commentRepo := repository.NewCommentRepository(store, log)
	userRepo := repository.NewUserRepository(store, log)
	sessionRepo := repository.NewSessionRepository(store, log)
	revokedRepo := repository.NewRevokedTokenRepository(store, log)
	preferencesRepo := repository.NewPreferencesRepository(store, log)

	// Синхронизация: отложенные задачи и отправка на удаленную точку
	syncService := service.NewSyncService(incidentRepo, log)
	dispatcher := syncqueue.NewDispatcher(syncService, log, cfg)
	backend := newSyncBackend(ctx, cfg, log, redisClient, dispatcher)

	// Аутентификация
	password, err := auth.NewSharedPassword(cfg.AuthPassword)
	if err != nil {
		log.Fatalf("Failed to hash shared password: %v", err)
	}
	var roles service.RoleResolver = service.EmailHeuristicResolver{}
	if cfg.AuthRoleResolver == config.RoleResolverDirectory {
		roles = service.NewDirectoryResolver(userRepo)
	}
	limiter := lockout.NewTracker(cfg.LockoutMaxAttempts, cfg.LockoutDuration)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)

	// Инициализация сервисов
	services := v1.Services{
		Incidents:   service.NewIncidentService(incidentRepo, commentRepo, backend.scheduler, log, cfg),
		Comments:    service.NewCommentService(commentRepo, log),
		Users:       service.NewUserService(userRepo, log),
		Auth:        service.NewAuthService(sessionRepo, revokedRepo, roles, password, limiter, service.LockoutScope(cfg.LockoutScope), log),
		Preferences: service.NewPreferencesService(preferencesRepo, log),
		Dashboard:   service.NewDashboardService(incidentRepo, userRepo, log),
	}

	// Инициализация хэндлеров
	handler := v1.NewHandler(services, tokens, log)

	// Настройка Gin роутера
	router := gin.Default()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.WithFields(logrus.Fields{
		"port":    cfg.HTTPPort,
		"storage": cfg.StorageDriver,
		"sync":    cfg.SyncMode,
	}).Info("HTTP server started")

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

	// Синхронизация останавливается после HTTP-сервера
	cancel()
	backend.stop()

	log.Info("Server gracefully stopped")
}
