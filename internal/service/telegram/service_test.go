package telegram

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf16"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HomeworkNotifier/internal/domain"
)

type fakeBot struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if b.err != nil {
		return tgbotapi.Message{}, b.err
	}
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		b.sent = append(b.sent, msg)
	}
	return tgbotapi.Message{MessageID: len(b.sent)}, nil
}

func TestService_SendMessage(t *testing.T) {
	bot := &fakeBot{}
	svc := NewService(bot)

	err := svc.SendMessage(domain.NewPlainTelegramMessage(domain.ChatTarget{ID: 42}, "hello"))
	require.NoError(t, err)

	require.Len(t, bot.sent, 1)
	assert.Equal(t, int64(42), bot.sent[0].ChatID)
	assert.Equal(t, "hello", bot.sent[0].Text)
	assert.Equal(t, domain.ParseModePlain, bot.sent[0].ParseMode)
}

func TestService_SendMessage_Validation(t *testing.T) {
	bot := &fakeBot{}
	svc := NewService(bot)

	assert.ErrorIs(t, svc.SendMessage(domain.NewPlainTelegramMessage(domain.ChatTarget{}, "hello")), ErrInvalidChatID)
	assert.ErrorIs(t, svc.SendMessage(domain.NewPlainTelegramMessage(domain.ChatTarget{ID: 42}, "")), ErrEmptyMessage)
	assert.Empty(t, bot.sent)
}

func TestService_SendMessage_BotError(t *testing.T) {
	svc := NewService(&fakeBot{err: errors.New("Forbidden: bot was blocked by the user")})

	err := svc.SendMessage(domain.NewPlainTelegramMessage(domain.ChatTarget{ID: 42}, "hello"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSendMessage)
	assert.Contains(t, err.Error(), "blocked")
}

func TestService_SendMessage_Truncates(t *testing.T) {
	bot := &fakeBot{}
	svc := NewService(bot)

	long := strings.Repeat("я", maxMessageLength+100)
	require.NoError(t, svc.SendMessage(domain.NewPlainTelegramMessage(domain.ChatTarget{ID: 42}, long)))

	require.Len(t, bot.sent, 1)
	assert.Equal(t, maxMessageLength, utf8.RuneCountInString(bot.sent[0].Text))
	assert.True(t, strings.HasSuffix(bot.sent[0].Text, ellipsis))
}

func TestService_SendMessage_TruncatesInUTF16Units(t *testing.T) {
	bot := &fakeBot{}
	svc := NewService(bot)

	// Каждый эмодзи занимает две UTF-16 единицы: 3000 рун укладываются в лимит по рунам, но не по UTF-16
	long := strings.Repeat("😀", 3000)
	require.NoError(t, svc.SendMessage(domain.NewPlainTelegramMessage(domain.ChatTarget{ID: 42}, long)))

	require.Len(t, bot.sent, 1)
	text := bot.sent[0].Text
	assert.True(t, utf8.ValidString(text))
	assert.LessOrEqual(t, len(utf16.Encode([]rune(text))), maxMessageLength)
	assert.True(t, strings.HasSuffix(text, ellipsis))
}

func TestTruncate_ShortTextUnchanged(t *testing.T) {
	assert.Equal(t, "привет 😀", truncate("привет 😀", 10))
	assert.Equal(t, "ab…", truncate("abcdef", 3))
	assert.Equal(t, "a…", truncate("a😀b", 3))
}

func TestService_SendMessage_ChannelUsername(t *testing.T) {
	bot := &fakeBot{}
	svc := NewService(bot)

	target := domain.ChatTarget{ChannelUsername: "@my_channel"}
	require.NoError(t, svc.SendMessage(domain.NewPlainTelegramMessage(target, "hello")))

	require.Len(t, bot.sent, 1)
	assert.Equal(t, "@my_channel", bot.sent[0].ChannelUsername)
	assert.Equal(t, int64(0), bot.sent[0].ChatID)
	assert.Equal(t, "hello", bot.sent[0].Text)
}
