package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-HomeworkNotifier/internal/domain"
)

type fakeResponse struct {
	payload interface{}
	err     error
}

type fakeClient struct {
	mu        sync.Mutex
	responses []fakeResponse
	fromDates []int64
	onCall    func(call int)
}

func (c *fakeClient) GetHomeworkStatuses(_ context.Context, fromDate int64) (interface{}, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.fromDates = append(c.fromDates, fromDate)
	call := len(c.fromDates)
	if c.onCall != nil {
		c.onCall(call)
	}

	// Последний ответ повторяется для всех следующих вызовов
	idx := call - 1
	if idx >= len(c.responses) {
		idx = len(c.responses) - 1
	}
	resp := c.responses[idx]
	return resp.payload, resp.err
}

func (c *fakeClient) calls() []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]int64(nil), c.fromDates...)
}

type sentMessage struct {
	text             string
	notificationType string
}

type fakeNotifier struct {
	sent []sentMessage
	// fail решает, провалится ли отправка очередного сообщения
	fail func(text string) bool
}

func (n *fakeNotifier) Notify(text, notificationType string) bool {
	if n.fail != nil && n.fail(text) {
		return false
	}
	n.sent = append(n.sent, sentMessage{text: text, notificationType: notificationType})
	return true
}

func (n *fakeNotifier) texts() []string {
	texts := make([]string, 0, len(n.sent))
	for _, m := range n.sent {
		texts = append(texts, m.text)
	}
	return texts
}

type fakeTelegram struct {
	messages []*domain.TelegramMessage
	err      error
}

func (t *fakeTelegram) SendMessage(msg *domain.TelegramMessage) error {
	if t.err != nil {
		return t.err
	}
	t.messages = append(t.messages, msg)
	return nil
}

type nopMetrics struct{}

func (nopMetrics) ObserveCycle(time.Duration, string) {}
func (nopMetrics) ObserveNotification(string, bool) {}
func (nopMetrics) AddHomeworks(int) {}
func (nopMetrics) SetCursor(int64) {}

type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) add(level, format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, level+": "+fmt.Sprintf(format, v...))
}

func (l *recordingLogger) Debug(format string, v ...interface{}) { l.add("DEBUG", format, v...) }
func (l *recordingLogger) Info(format string, v ...interface{}) { l.add("INFO", format, v...) }
func (l *recordingLogger) Warn(format string, v ...interface{}) { l.add("WARN", format, v...) }
func (l *recordingLogger) Error(format string, v ...interface{}) { l.add("ERROR", format, v...) }

func (l *recordingLogger) errors() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []string
	for _, line := range l.lines {
		if len(line) > 6 && line[:6] == "ERROR:" {
			out = append(out, line)
		}
	}
	return out
}

func hw(name, status string) map[string]interface{} {
	return map[string]interface{}{"homework_name": name, "status": status}
}

func ok(currentDate int64, homeworks ...interface{}) fakeResponse {
	if homeworks == nil {
		homeworks = []interface{}{}
	}
	return fakeResponse{payload: map[string]interface{}{
		"homeworks":    homeworks,
		"current_date": json.Number(fmt.Sprint(currentDate)),
	}}
}
