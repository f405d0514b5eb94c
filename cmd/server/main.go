package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/heybosswtf/heyboss-backend/internal/config"
	"github.com/heybosswtf/heyboss-backend/internal/db"
	httpHandlers "github.com/heybosswtf/heyboss-backend/internal/http/handlers"
	httpRouter "github.com/heybosswtf/heyboss-backend/internal/http/router"
	"github.com/heybosswtf/heyboss-backend/internal/logger"
	"github.com/heybosswtf/heyboss-backend/internal/repository"
	"github.com/heybosswtf/heyboss-backend/internal/service"
	"github.com/heybosswtf/heyboss-backend/internal/storage"
	"github.com/heybosswtf/heyboss-backend/internal/telegram"
	"github.com/heybosswtf/heyboss-backend/internal/turnstile"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	if cfg.Env == "development" {
		logger.Init("debug")
		logger.SetTextFormatter()
	} else {
		logger.Init("info")
	}

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: ошибка миграций: %v", err)
	}

	// Внешние клиенты.
	fileStorage, err := storage.NewR2Storage(ctx, cfg.R2AccountID, cfg.R2AccessKeyID, cfg.R2SecretAccessKey, cfg.R2Bucket, cfg.R2PublicHost)
	if err != nil {
		log.Fatalf("main: не удалось подготовить хранилище артефактов: %v", err)
	}

	notifier := telegram.NewClient(cfg.TelegramBotToken, cfg.TelegramChatID, cfg.TelegramTopicID)
	verifier := turnstile.NewClient(cfg.TurnstileSecretKey)

	// Репозиторий и сервисы.
	reportRepo := repository.NewReportRepository(dbConn)

	reportService := service.NewReportService(reportRepo, fileStorage, notifier, verifier, cfg.TurnstileRequired)
	directoryService := service.NewDirectoryService(reportRepo)
	detailService := service.NewDetailService(reportRepo, fileStorage)

	// HTTP хэндлеры.
	reportHandler := httpHandlers.NewReportHandler(reportService, cfg.MaxUploadSizeMB)
	directoryHandler := httpHandlers.NewDirectoryHandler(directoryService)
	bossHandler := httpHandlers.NewBossHandler(detailService)
	healthHandler := httpHandlers.NewHealthHandler(dbConn)

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, reportHandler, directoryHandler, bossHandler, healthHandler)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	log.Printf("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}
