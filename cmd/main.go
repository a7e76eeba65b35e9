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

	"github.com/shenikar/resqalert/internal/auth"
	"github.com/shenikar/resqalert/internal/config"
	"github.com/shenikar/resqalert/internal/geocode"
	v1 "github.com/shenikar/resqalert/internal/handler/http/v1"
	"github.com/shenikar/resqalert/internal/notify"
	"github.com/shenikar/resqalert/internal/repository"
	"github.com/shenikar/resqalert/internal/scheduler"
	"github.com/shenikar/resqalert/internal/service"
	"github.com/shenikar/resqalert/pkg/logger"
	"github.com/shenikar/resqalert/pkg/postgres"
	redisclient "github.com/shenikar/resqalert/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/resqalert/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title ResqAlert Admin Console API
// @version 1.0
// @description Incident report console for responding agencies (PNP, BFP, MDRRMO) and the super admin.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
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

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
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

	// Запуск миграций
	if err := runMigrations(cfg, log); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Подключение к PostgreSQL
	dbpool, err := postgres.NewPostgresDB(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	// Инициализация репозиториев
	reportRepo := repository.NewReportRepository(dbpool, redisClient)
	requestRepo := repository.NewRequestRepository(dbpool)
	feedbackRepo := repository.NewFeedbackRepository(dbpool, redisClient)
	adminRepo := repository.NewAdminRepository(dbpool)
	tokenStore := repository.NewTokenStore(redisClient)

	// Геокодирование: кэш в Redis включается только при положительном TTL
	var localityCache geocode.Cache
	if cfg.LocalityCacheTTL > 0 {
		localityCache = repository.NewLocalityCache(redisClient, cfg.LocalityCacheTTL)
	}
	resolver := geocode.NewResolver(
		geocode.NewNominatimClient(cfg.GeocoderURL, cfg.GeocoderUserAgent, cfg.GeocodeTimeout),
		localityCache,
		cfg.GeocodeDelay,
		cfg.GeocodeTimeout,
		log,
	)

	// Права доступа
	rbac, err := auth.NewRBAC()
	if err != nil {
		log.Fatalf("Failed to initialize RBAC: %v", err)
	}

	// Инициализация сервисов
	authService := service.NewAuthService(adminRepo, auth.NewJWTIssuer(cfg.JWTSecret, cfg.TokenTTL), tokenStore, log)
	reportService := service.NewReportService(reportRepo, resolver, log, cfg.GeocodeConcurrency)
	requestService := service.NewRequestService(requestRepo, reportRepo, log)
	feedbackService := service.NewFeedbackService(feedbackRepo, log)
	dashboardService := service.NewDashboardService(reportRepo, log)

	if err := authService.EnsureBootstrapAdmin(ctx, cfg.BootstrapAdminUsername, cfg.BootstrapAdminPassword); err != nil {
		log.Fatalf("Failed to create bootstrap admin: %v", err)
	}

	// SMS-уведомления о новых сообщениях: cron ставит их в очередь, воркер отправляет
	var jobs *scheduler.Scheduler
	if cfg.SMSGatewayURL != "" {
		notifyWorker := notify.NewWorker(redisClient, log, cfg.SMSGatewayURL, cfg.SMSGatewaySecret, cfg.SMSGatewayTimeout)
		notifyWorker.Start(ctx)

		watcher := notify.NewWatcher(reportRepo, notify.NewRedisPublisher(redisClient), log, cfg.NewReportScanSize)
		jobs = scheduler.NewScheduler(watcher, cfg.NewReportScanSpec, 30*time.Second, log)
		if err := jobs.Start(); err != nil {
			log.Fatalf("Failed to start scheduler: %v", err)
		}
	} else {
		log.Warn("SMS_GATEWAY_URL is not set, new report notifications are disabled")
	}

	// Инициализация хэндлеров
	handler := v1.NewHandler(v1.Services{
		Auth:      authService,
		Reports:   reportService,
		Requests:  requestService,
		Feedback:  feedbackService,
		Dashboard: dashboardService,
	}, rbac, log, cfg)

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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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

	if jobs != nil {
		jobs.Stop(shutdownCtx)
	}
	// Останавливаем воркер до закрытия Redis
	cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}
