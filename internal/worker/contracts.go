package worker

import (
	"context"
	"time"

	"github.com/m04kA/SMC-HomeworkNotifier/internal/domain"
)

// HomeworkClient интерфейс клиента API статусов домашних работ
type HomeworkClient interface {
	// GetHomeworkStatuses возвращает декодированный JSON-ответ API начиная с fromDate
	GetHomeworkStatuses(ctx context.Context, fromDate int64) (interface{}, error)
}

// TelegramService интерфейс для отправки сообщений через Telegram Bot API
type TelegramService interface {
	// SendMessage отправляет сообщение через Telegram
	SendMessage(msg *domain.TelegramMessage) error
}

// MessageNotifier интерфейс отправки уведомлений в чат
// Никогда не возвращает ошибку: неудача логируется и сообщается через false
type MessageNotifier interface {
	Notify(text, notificationType string) bool
}

// Metrics интерфейс сбора метрик
type Metrics interface {
	ObserveCycle(duration time.Duration, errorKind string)
	ObserveNotification(notificationType string, sent bool)
	AddHomeworks(count int)
	SetCursor(cursor int64)
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
