package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/m04kA/SMC-HomeworkNotifier/internal/domain"
)

// maxMessageLength лимит Telegram на длину текста сообщения (в UTF-16 code units)
const maxMessageLength = 4096

// ellipsis добавляется к обрезанному тексту, занимает одну UTF-16 единицу
const ellipsis = "…"

// Service сервис для отправки сообщений через Telegram Bot API
type Service struct {
	bot BotAPI
}

// NewService создает новый экземпляр Telegram сервиса
func NewService(bot BotAPI) *Service {
	return &Service{
		bot: bot,
	}
}

// SendMessage отправляет текстовое сообщение через Telegram Bot API
// Адресат - числовой chat_id или @username канала
func (s *Service) SendMessage(msg *domain.TelegramMessage) error {
	if msg.Target().IsEmpty() {
		return ErrInvalidChatID
	}

	if msg.MessageText == "" {
		return ErrEmptyMessage
	}

	text := truncate(msg.MessageText, maxMessageLength)

	var tgMsg tgbotapi.MessageConfig
	if msg.ChannelUsername != "" {
		tgMsg = tgbotapi.NewMessageToChannel(msg.ChannelUsername, text)
	} else {
		tgMsg = tgbotapi.NewMessage(msg.ChatID, text)
	}
	tgMsg.ParseMode = msg.ParseMode

	_, err := s.bot.Send(tgMsg)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendMessage, err)
	}

	return nil
}

// truncate обрезает текст до limit UTF-16 единиц (так длину считает Telegram)
// Сообщения о сбоях могут содержать тело ответа API произвольной длины
func truncate(text string, limit int) string {
	if utf16Len(text) <= limit {
		return text
	}

	budget := limit - utf16Len(ellipsis)
	used := 0
	for i, r := range text {
		width := utf16Width(r)
		if used+width > budget {
			return text[:i] + ellipsis
		}
		used += width
	}

	return text
}

func utf16Len(text string) int {
	n := 0
	for _, r := range text {
		n += utf16Width(r)
	}
	return n
}

// utf16Width количество UTF-16 единиц для руны: символы вне BMP (эмодзи) занимают суррогатную пару
func utf16Width(r rune) int {
	if r > 0xFFFF {
		return 2
	}
	return 1
}
