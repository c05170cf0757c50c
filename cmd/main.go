package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-HomeworkNotifier/internal/api/handlers/health"
	"github.com/m04kA/SMC-HomeworkNotifier/internal/api/handlers/state"
	"github.com/m04kA/SMC-HomeworkNotifier/internal/config"
	"github.com/m04kA/SMC-HomeworkNotifier/internal/integrations/practicum"
	"github.com/m04kA/SMC-HomeworkNotifier/internal/service/telegram"
	"github.com/m04kA/SMC-HomeworkNotifier/internal/worker"
	"github.com/m04kA/SMC-HomeworkNotifier/pkg/logger"
	"github.com/m04kA/SMC-HomeworkNotifier/pkg/metrics"
)

func main() {
	// Подгружаем .env (аналог переменных окружения для локального запуска)
	if err := config.LoadEnvFile(".env"); err != nil {
		fmt.Printf("Failed to load .env: %v\n", err)
		os.Exit(1)
	}

	// Загружаем конфигурацию; отсутствие секретов фатально и проверяется до любых сетевых вызовов
	configPath := "config.toml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		configPath = v
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting homework status notifier...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Инициализируем Telegram Bot API с явным таймаутом на запросы
	bot, err := tgbotapi.NewBotAPIWithClient(
		cfg.Telegram.BotToken,
		tgbotapi.APIEndpoint,
		&http.Client{Timeout: time.Duration(cfg.Telegram.Timeout) * time.Second},
	)
	if err != nil {
		log.Fatal("Failed to initialize Telegram Bot API: %v", err)
	}
	log.Info("Telegram Bot API initialized (@%s)", bot.Self.UserName)

	telegramSvc := telegram.NewService(bot)
	notifier := worker.NewNotifier(telegramSvc, cfg.Telegram.Chat, metricsCollector, log)

	// Инициализируем клиент API статусов домашних работ
	practicumClient := practicum.NewClient(
		cfg.Practicum.Endpoint,
		cfg.Practicum.Token,
		time.Duration(cfg.Practicum.Timeout)*time.Second,
	)
	log.Info("Homework API client initialized (endpoint=%s, timeout=%ds)", practicumClient.Endpoint(), cfg.Practicum.Timeout)

	retryPeriod := time.Duration(cfg.Poller.RetryPeriod) * time.Second
	poller := worker.NewPoller(practicumClient, notifier, metricsCollector, log, worker.Options{
		RetryPeriod: retryPeriod,
		Mode:        worker.NotifyMode(cfg.Poller.NotifyMode),
		StartCursor: time.Now().Add(-time.Duration(cfg.Poller.InitialLookback) * time.Second).Unix(),
	})

	// Контекст отменяется по SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Служебный HTTP сервер (health, state, metrics)
	var srv *http.Server
	if cfg.Server.Enabled {
		// Цикл считается зависшим, если не завершился за два периода плюс сетевые таймауты
		maxDelay := 2*retryPeriod + time.Duration(cfg.Practicum.Timeout+cfg.Telegram.Timeout)*time.Second

		r := mux.NewRouter()
		r.HandleFunc("/health", health.NewHandler(poller, maxDelay).Handle).Methods(http.MethodGet)
		r.HandleFunc("/api/v1/state", state.NewHandler(poller).Handle).Methods(http.MethodGet)
		if cfg.Metrics.Enabled {
			r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
			log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
		}

		addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
		srv = &http.Server{
			Addr:         addr,
			Handler:      r,
			ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
			WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
			IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		}

		go func() {
			log.Info("Starting server on %s", addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("Server failed: %v", err)
			}
		}()
	}

	// Цикл опроса работает в главной горутине до сигнала завершения
	poller.Run(ctx)

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
		)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Server forced to shutdown: %v", err)
		}
	}

	log.Info("Homework status notifier stopped")
}
