package worker

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HomeworkNotifier/internal/domain"
	"github.com/m04kA/SMC-HomeworkNotifier/pkg/metrics"
)

func TestNotifier_Notify(t *testing.T) {
	tg := &fakeTelegram{}
	log := &recordingLogger{}
	n := NewNotifier(tg, domain.ChatTarget{ID: 777}, nopMetrics{}, log)

	assert.True(t, n.Notify("hello", metrics.NotificationVerdict))

	require.Len(t, tg.messages, 1)
	assert.Equal(t, int64(777), tg.messages[0].ChatID)
	assert.Equal(t, "hello", tg.messages[0].MessageText)
	assert.Equal(t, domain.ParseModePlain, tg.messages[0].ParseMode)
	assert.Empty(t, log.errors())
}

func TestNotifier_Notify_SwallowsErrors(t *testing.T) {
	tg := &fakeTelegram{err: errors.New("network is unreachable")}
	log := &recordingLogger{}
	n := NewNotifier(tg, domain.ChatTarget{ID: 777}, nopMetrics{}, log)

	assert.NotPanics(t, func() {
		assert.False(t, n.Notify("hello", metrics.NotificationVerdict))
	})

	errs := log.errors()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "network is unreachable")
	assert.Contains(t, errs[0], "777")
}

func TestNotifier_Notify_CountsMetrics(t *testing.T) {
	m := metrics.New("notifier_test")
	n := NewNotifier(&fakeTelegram{}, domain.ChatTarget{ID: 1}, m, &recordingLogger{})
	assert.True(t, n.Notify("a", metrics.NotificationVerdict))

	failing := NewNotifier(&fakeTelegram{err: errors.New("boom")}, domain.ChatTarget{ID: 1}, m, &recordingLogger{})
	assert.False(t, failing.Notify("b", metrics.NotificationMalfunction))

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	found := false
	for _, family := range families {
		if family.GetName() == "notifier_test_notifications_total" {
			found = true
			assert.Len(t, family.GetMetric(), 2)
		}
	}
	assert.True(t, found)
}

func TestNotifier_Notify_ChannelUsername(t *testing.T) {
	tg := &fakeTelegram{}
	n := NewNotifier(tg, domain.ChatTarget{ChannelUsername: "@my_channel"}, nopMetrics{}, &recordingLogger{})

	assert.True(t, n.Notify("hello", metrics.NotificationVerdict))

	require.Len(t, tg.messages, 1)
	assert.Equal(t, "@my_channel", tg.messages[0].ChannelUsername)
	assert.Equal(t, int64(0), tg.messages[0].ChatID)
}
