package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"

	"github.com/qaztech-league/esports-league/config"
	"github.com/qaztech-league/esports-league/db"
	"github.com/qaztech-league/esports-league/handlers"
	"github.com/qaztech-league/esports-league/live"
	"github.com/qaztech-league/esports-league/repositories"
	api "github.com/qaztech-league/esports-league/routes"
	"github.com/qaztech-league/esports-league/services"
	"github.com/qaztech-league/esports-league/standings"
	"github.com/qaztech-league/esports-league/storage"
)

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	// Хранилище логотипов опционально: без R2 сайт работает, но
	// загрузка логотипов отвечает 503.
	var uploader storage.FileUploader
	if cfg.R2Configured() {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Warn("R2 storage not configured, logo uploads disabled")
	}

	// Инициализация WebSocket Hub
	wsHub := live.NewHub()
	go wsHub.Run()
	logger.Info("WebSocket Hub started")

	// Инициализация репозиториев
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	groupRepo := repositories.NewPostgresGroupConfigurationRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchResultRepository(dbConn)
	groupStandingRepo := repositories.NewPostgresGroupStandingRepository(dbConn)
	overallRepo := repositories.NewPostgresOverallStandingRepository(dbConn)
	swissRepo := repositories.NewPostgresSwissStandingRepository(dbConn)
	bracketRepo := repositories.NewPostgresBracketMatchRepository(dbConn)
	logger.Info("Repositories initialized")

	// Правила этапов: групповая стадия CS2 без ничьих, пороги
	// квалификации 3-0/0-3, сетка плей-офф на восемь команд.
	pointRules := standings.DefaultCS2Rules()
	cutlines := standings.DefaultCutlines()
	swissRules := standings.DefaultSwissRules()
	topology := standings.DefaultPlayoffTopology()

	// Инициализация сервисов
	authService := services.NewAuthService(cfg.AdminPasswordHash)
	teamService := services.NewTeamService(teamRepo, uploader)
	groupService := services.NewGroupService(groupRepo, teamRepo)
	standingsService := services.NewStandingsService(
		dbConn,
		matchRepo,
		groupRepo,
		groupStandingRepo,
		overallRepo,
		wsHub,
		pointRules,
		cutlines,
		logger,
	)
	matchService := services.NewMatchService(matchRepo, groupRepo, standingsService, pointRules)
	swissService := services.NewSwissService(swissRepo, wsHub, swissRules)
	bracketService := services.NewBracketService(dbConn, bracketRepo, wsHub, topology)
	logger.Info("Services initialized")

	// Планировщик периодического пересчёта всех таблиц. Пересчёт
	// идемпотентен, поэтому пересечение с ручным синком безопасно.
	go func() {
		ticker := time.NewTicker(cfg.SyncInterval)
		defer ticker.Stop()
		logger.Info("standings sync scheduler started", slog.Duration("interval", cfg.SyncInterval))

		if _, err := standingsService.SyncAll(context.Background()); err != nil {
			logger.Error("scheduler: initial sync failed", slog.Any("error", err))
		}

		for range ticker.C {
			if _, err := standingsService.SyncAll(context.Background()); err != nil {
				logger.Error("scheduler: periodic sync failed", slog.Any("error", err))
			}
		}
	}()

	// Инициализация обработчиков HTTP
	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	teamHandler := handlers.NewTeamHandler(teamService)
	groupHandler := handlers.NewGroupHandler(groupService)
	standingsHandler := handlers.NewStandingsHandler(standingsService)
	matchHandler := handlers.NewMatchHandler(matchService)
	swissHandler := handlers.NewSwissHandler(swissService)
	bracketHandler := handlers.NewBracketHandler(bracketService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub)
	logger.Info("HTTP handlers initialized")

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.JWTSecretKey,
		authHandler,
		teamHandler,
		groupHandler,
		standingsHandler,
		matchHandler,
		swissHandler,
		bracketHandler,
		webSocketHandler,
	)
	logger.Info("Routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		} else {
			logger.Info("server stopped gracefully")
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		} else {
			logger.Info("server shutdown complete")
		}
	}
	logger.Info("application exited")
}
