package worker

import (
	"github.com/m04kA/SMC-HomeworkNotifier/internal/domain"
)

// Notifier отправляет сообщения в единственный настроенный чат
type Notifier struct {
	telegramService TelegramService
	chat            domain.ChatTarget
	metrics         Metrics
	logger          Logger
}

// NewNotifier создает новый экземпляр отправителя
func NewNotifier(telegramService TelegramService, chat domain.ChatTarget, metrics Metrics, logger Logger) *Notifier {
	return &Notifier{
		telegramService: telegramService,
		chat:            chat,
		metrics:         metrics,
		logger:          logger,
	}
}

// Notify делает одну попытку отправить сообщение
// Ошибка отправки логируется и не выходит за пределы метода
func (n *Notifier) Notify(text, notificationType string) bool {
	msg := domain.NewPlainTelegramMessage(n.chat, text)

	if err := n.telegramService.SendMessage(msg); err != nil {
		notifyErr := &domain.NotificationError{Chat: n.chat, Err: err}
		n.logger.Error("Message %q was not sent: %v", text, notifyErr)
		n.metrics.ObserveNotification(notificationType, false)
		return false
	}

	n.logger.Debug("Message %q sent to chat %s", text, n.chat)
	n.metrics.ObserveNotification(notificationType, true)
	return true
}
