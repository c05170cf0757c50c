package telegram

import "errors"

var (
	// ErrSendMessage возвращается при ошибке отправки сообщения
	ErrSendMessage = errors.New("service.telegram: failed to send message")

	// ErrInvalidChatID возвращается при некорректном chat_id
	ErrInvalidChatID = errors.New("service.telegram: invalid chat_id")

	// ErrEmptyMessage возвращается при пустом тексте сообщения
	ErrEmptyMessage = errors.New("service.telegram: message text is empty")
)
