package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/subosito/gotenv"

	"github.com/m04kA/SMC-HomeworkNotifier/internal/domain"
)

// Имена обязательных переменных окружения
const (
	EnvPracticumToken = "PRACTICUM_TOKEN"
	EnvTelegramToken  = "TELEGRAM_TOKEN"
	EnvTelegramChatID = "TELEGRAM_CHAT_ID"
)

// Режимы отправки вердиктов
const (
	NotifyModeAll    = "all"    // Все работы из ответа
	NotifyModeLatest = "latest" // Только первая (самая свежая) работа
)

// DefaultEndpoint адрес API статусов домашних работ
const DefaultEndpoint = "https://practicum.yandex.ru/api/user_api/homework_statuses/"

// Config представляет полную конфигурацию приложения
type Config struct {
	Logs      LogsConfig      `toml:"logs"`
	Server    ServerConfig    `toml:"server"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Telegram  TelegramConfig  `toml:"telegram"`
	Practicum PracticumConfig `toml:"practicum"`
	Poller    PollerConfig    `toml:"poller"`
}

// LogsConfig содержит настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // Пусто - только stdout
}

// ServerConfig содержит настройки служебного HTTP сервера (health, state, metrics)
type ServerConfig struct {
	Enabled         bool `toml:"enabled"`
	HTTPPort        int  `toml:"http_port"`
	ReadTimeout     int  `toml:"read_timeout"`
	WriteTimeout    int  `toml:"write_timeout"`
	IdleTimeout     int  `toml:"idle_timeout"`
	ShutdownTimeout int  `toml:"shutdown_timeout"`
}

// MetricsConfig содержит настройки метрик Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// TelegramConfig содержит настройки Telegram Bot
type TelegramConfig struct {
	BotToken  string `toml:"bot_token"`
	RawChatID string `toml:"chat_id"`
	Timeout   int    `toml:"timeout"` // в секундах

	// Chat заполняется при валидации из RawChatID
	Chat domain.ChatTarget `toml:"-"`
}

// PracticumConfig содержит настройки API статусов домашних работ
type PracticumConfig struct {
	Token    string `toml:"token"`
	Endpoint string `toml:"endpoint"`
	Timeout  int    `toml:"timeout"` // в секундах
}

// PollerConfig содержит настройки цикла опроса
type PollerConfig struct {
	RetryPeriod     int    `toml:"retry_period"`     // пауза между циклами (в секундах)
	NotifyMode      string `toml:"notify_mode"`      // all | latest
	InitialLookback int    `toml:"initial_lookback"` // сдвиг курсора назад при старте (в секундах)
}

// Load загружает конфигурацию из TOML файла с поддержкой переменных окружения
// Отсутствие файла не является ошибкой: все параметры можно передать через окружение
func Load(path string) (*Config, error) {
	var cfg Config

	// Читаем TOML файл
	if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to decode TOML config: %w", err)
	}

	// Переопределяем значения из переменных окружения (если они установлены)
	overrideFromEnv(&cfg)

	// Валидация конфигурации
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadEnvFile подгружает переменные из .env файла, не перезаписывая уже установленные
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err := gotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}

	return nil
}

// overrideFromEnv переопределяет значения из переменных окружения
func overrideFromEnv(cfg *Config) {
	// Секреты
	if v := os.Getenv(EnvPracticumToken); v != "" {
		cfg.Practicum.Token = v
	}
	if v := os.Getenv(EnvTelegramToken); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv(EnvTelegramChatID); v != "" {
		cfg.Telegram.RawChatID = v
	}

	// Practicum
	if v := os.Getenv("PRACTICUM_ENDPOINT"); v != "" {
		cfg.Practicum.Endpoint = v
	}

	// Poller
	if v := os.Getenv("RETRY_PERIOD"); v != "" {
		if period, err := strconv.Atoi(v); err == nil {
			cfg.Poller.RetryPeriod = period
		}
	}
	if v := os.Getenv("NOTIFY_MODE"); v != "" {
		cfg.Poller.NotifyMode = v
	}

	// Server
	if v := os.Getenv("HTTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.HTTPPort = port
		}
	}

	// Logs
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logs.Level = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.Logs.File = v
	}

	// Metrics
	if v := os.Getenv("METRICS_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = enabled
		}
	}
}

// CheckTokens проверяет наличие всех обязательных секретов
// Возвращает ошибку со списком всех отсутствующих переменных
func CheckTokens(cfg *Config) error {
	required := []struct {
		name  string
		value string
	}{
		{EnvPracticumToken, cfg.Practicum.Token},
		{EnvTelegramToken, cfg.Telegram.BotToken},
		{EnvTelegramChatID, cfg.Telegram.RawChatID},
	}

	var missing []string
	for _, token := range required {
		if strings.TrimSpace(token.value) == "" {
			missing = append(missing, token.name)
		}
	}

	if len(missing) > 0 {
		return &domain.MissingTokenError{Names: missing}
	}

	return nil
}

// ParseChatTarget разбирает TELEGRAM_CHAT_ID: числовой chat_id или @username канала
func ParseChatTarget(raw string) (domain.ChatTarget, error) {
	value := strings.TrimSpace(raw)

	if chatID, err := strconv.ParseInt(value, 10, 64); err == nil {
		if chatID == 0 {
			return domain.ChatTarget{}, fmt.Errorf("%s must not be zero", EnvTelegramChatID)
		}
		return domain.ChatTarget{ID: chatID}, nil
	}

	if len(value) > 1 && strings.HasPrefix(value, "@") && !strings.ContainsAny(value[1:], " @\t") {
		return domain.ChatTarget{ChannelUsername: value}, nil
	}

	return domain.ChatTarget{}, fmt.Errorf("%s must be an integer chat id or @channelusername, got %q", EnvTelegramChatID, value)
}

// validate проверяет корректность конфигурации
func validate(cfg *Config) error {
	// Secrets validation
	if err := CheckTokens(cfg); err != nil {
		return err
	}

	chat, err := ParseChatTarget(cfg.Telegram.RawChatID)
	if err != nil {
		return err
	}
	cfg.Telegram.Chat = chat

	// Practicum defaults
	if cfg.Practicum.Endpoint == "" {
		cfg.Practicum.Endpoint = DefaultEndpoint
	}
	if cfg.Practicum.Timeout == 0 {
		cfg.Practicum.Timeout = 30
	}
	if cfg.Telegram.Timeout == 0 {
		cfg.Telegram.Timeout = 30
	}

	// Poller validation and defaults
	if cfg.Poller.RetryPeriod == 0 {
		cfg.Poller.RetryPeriod = 600 // 10 minutes
	}
	if cfg.Poller.RetryPeriod < 0 {
		return fmt.Errorf("poller retry period must be positive")
	}
	if cfg.Poller.InitialLookback < 0 {
		return fmt.Errorf("poller initial lookback must not be negative")
	}
	switch cfg.Poller.NotifyMode {
	case "":
		cfg.Poller.NotifyMode = NotifyModeAll
	case NotifyModeAll, NotifyModeLatest:
	default:
		return fmt.Errorf("unknown notify mode %q (expected %q or %q)", cfg.Poller.NotifyMode, NotifyModeAll, NotifyModeLatest)
	}

	// Logs defaults
	if cfg.Logs.Level == "" {
		cfg.Logs.Level = "debug"
	}

	// Server validation and defaults
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.HTTPPort < 0 || cfg.Server.HTTPPort > 65535 {
		return fmt.Errorf("HTTP port must be between 1 and 65535")
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}

	// Metrics defaults
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "homeworknotifier"
	}

	return nil
}
