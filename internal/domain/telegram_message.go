package domain

import "strconv"

// ParseMode константы для режимов парсинга текста в Telegram
const (
	ParseModeHTML  = "HTML" // HTML форматирование
	ParseModePlain = ""     // Без форматирования
)

// ChatTarget адресат сообщений: числовой chat_id или @username публичного канала
type ChatTarget struct {
	ID              int64
	ChannelUsername string // С ведущим "@"
}

// IsEmpty проверяет, задан ли адресат
func (t ChatTarget) IsEmpty() bool {
	return t.ID == 0 && t.ChannelUsername == ""
}

func (t ChatTarget) String() string {
	if t.ChannelUsername != "" {
		return t.ChannelUsername
	}
	return strconv.FormatInt(t.ID, 10)
}

// TelegramMessage представляет сообщение для отправки через Telegram Bot API
type TelegramMessage struct {
	ChatID          int64  // ID чата получателя
	ChannelUsername string // @username канала, используется вместо ChatID
	MessageText     string // Текст сообщения
	ParseMode       string // Режим парсинга
}

// NewPlainTelegramMessage создает сообщение без форматирования
// Вердикты и ошибки содержат произвольный текст (названия работ, тела ответов),
// поэтому разметка не используется
func NewPlainTelegramMessage(target ChatTarget, text string) *TelegramMessage {
	return &TelegramMessage{
		ChatID:          target.ID,
		ChannelUsername: target.ChannelUsername,
		MessageText:     text,
		ParseMode:       ParseModePlain,
	}
}

// Target возвращает адресата сообщения
func (m *TelegramMessage) Target() ChatTarget {
	return ChatTarget{ID: m.ChatID, ChannelUsername: m.ChannelUsername}
}

// WithParseMode устанавливает режим парсинга и возвращает сообщение (builder pattern)
func (m *TelegramMessage) WithParseMode(mode string) *TelegramMessage {
	m.ParseMode = mode
	return m
}
