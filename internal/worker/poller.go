package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HomeworkNotifier/internal/domain"
	"github.com/m04kA/SMC-HomeworkNotifier/internal/service/homework"
	"github.com/m04kA/SMC-HomeworkNotifier/pkg/metrics"
	"github.com/m04kA/SMC-HomeworkNotifier/pkg/ptr"
)

// NotifyMode какие работы из ответа API превращаются в уведомления
type NotifyMode string

const (
	NotifyAll    NotifyMode = "all"    // Все работы, от старых к новым
	NotifyLatest NotifyMode = "latest" // Только первая (самая свежая) работа
)

// Options параметры цикла опроса
type Options struct {
	RetryPeriod time.Duration // Пауза между циклами
	Mode        NotifyMode
	StartCursor int64 // Начальное значение from_date, 0 - текущее время
}

// CycleResult итог одного цикла опроса
type CycleResult struct {
	SpanID string // ID цикла для корреляции логов
	Cursor int64  // Значение курсора после цикла
	Sent   int    // Количество отправленных вердиктов
	Err    error  // Ошибка цикла (nil - успешный цикл)
}

// OK проверяет, завершился ли цикл без ошибок
func (r CycleResult) OK() bool {
	return r.Err == nil
}

// Poller опрашивает API статусов и отправляет вердикты в чат
// Цикл строго последовательный: fetch -> validate -> notify -> cursor -> sleep
type Poller struct {
	client      HomeworkClient
	notifier    MessageNotifier
	metrics     Metrics
	logger      Logger
	retryPeriod time.Duration
	mode        NotifyMode
	newSpanID   func() string

	// Изменяется только горутиной цикла, читается служебным API под mu
	mu             sync.RWMutex
	cursor         int64
	lastMessage    string
	lastByHomework map[string]string
	cycles         int64
	lastCycleAt    time.Time
	lastSuccessAt  time.Time
	lastErr        error
}

// NewPoller создает новый цикл опроса
func NewPoller(client HomeworkClient, notifier MessageNotifier, metrics Metrics, logger Logger, opts Options) *Poller {
	cursor := opts.StartCursor
	if cursor == 0 {
		cursor = time.Now().Unix()
	}

	mode := opts.Mode
	if mode == "" {
		mode = NotifyAll
	}

	return &Poller{
		client:         client,
		notifier:       notifier,
		metrics:        metrics,
		logger:         logger,
		retryPeriod:    opts.RetryPeriod,
		mode:           mode,
		newSpanID:      uuid.NewString,
		cursor:         cursor,
		lastByHomework: make(map[string]string),
	}
}

// Run запускает бесконечный цикл опроса
// Блокирующий метод, завершается только при отмене контекста
func (p *Poller) Run(ctx context.Context) {
	p.logger.Info("Starting homework poller (retry period: %s, mode: %s, cursor: %d)", p.retryPeriod, p.mode, p.Cursor())
	p.metrics.SetCursor(p.Cursor())

	timer := time.NewTimer(p.retryPeriod)
	defer timer.Stop()

	for {
		if ctx.Err() != nil {
			p.logger.Info("Stopping homework poller")
			return
		}

		p.RunCycle(ctx)

		// Пауза между циклами выдерживается всегда, и после успеха, и после ошибки
		timer.Reset(p.retryPeriod)
		select {
		case <-ctx.Done():
			p.logger.Info("Stopping homework poller")
			return
		case <-timer.C:
		}
	}
}

// RunCycle выполняет один цикл опроса
// Любая ошибка цикла перехватывается здесь, логируется и, если возможно, отправляется в чат
func (p *Poller) RunCycle(ctx context.Context) (result CycleResult) {
	started := time.Now()
	result.SpanID = p.newSpanID()

	defer func() {
		// Паника внутри цикла не должна останавливать процесс
		if r := recover(); r != nil {
			result.Err = fmt.Errorf("panic in poll cycle: %v", r)
			p.reportFailure(result.SpanID, result.Err)
		}

		result.Cursor = p.Cursor()
		p.finishCycle(started, result.Err)
	}()

	sent, err := p.poll(ctx, result.SpanID)
	result.Sent = sent
	if err != nil {
		result.Err = err
		p.reportFailure(result.SpanID, err)
	}

	return result
}

// poll запрашивает статусы, отправляет новые вердикты и сдвигает курсор
func (p *Poller) poll(ctx context.Context, spanID string) (int, error) {
	fromDate := p.cursor
	p.logger.Debug("[%s] Requesting homework statuses from_date=%d", spanID, fromDate)

	payload, err := p.client.GetHomeworkStatuses(ctx, fromDate)
	if err != nil {
		return 0, err
	}

	batch, err := homework.CheckResponse(payload)
	if err != nil {
		return 0, err
	}
	p.metrics.AddHomeworks(len(batch.Homeworks))

	if batch.IsEmpty() {
		p.logger.Debug("[%s] No reviewed homeworks since %d, nothing to report", spanID, fromDate)
		p.advanceCursor(spanID, batch.CurrentDate)
		return 0, nil
	}

	sent := 0
	sendFailed := false
	for _, record := range p.selectRecords(batch.Homeworks) {
		hw, err := homework.ParseHomework(record)
		if err != nil {
			return sent, err
		}

		message := homework.FormatStatus(hw)
		if p.lastByHomework[hw.Name] == message {
			p.logger.Debug("[%s] Status of %q has not changed, skipping", spanID, hw.Name)
			continue
		}

		if !p.notifier.Notify(message, metrics.NotificationVerdict) {
			sendFailed = true
			continue
		}

		p.rememberVerdict(hw.Name, message)
		sent++
	}

	// Неотправленный вердикт будет получен повторно в том же окне
	if sendFailed {
		p.logger.Warn("[%s] Some verdicts were not delivered, cursor kept at %d", spanID, fromDate)
		return sent, nil
	}

	p.advanceCursor(spanID, batch.CurrentDate)
	return sent, nil
}

// selectRecords выбирает записи для уведомления согласно режиму
// API возвращает работы от новых к старым, в режиме all отправляем в хронологическом порядке
func (p *Poller) selectRecords(records []interface{}) []interface{} {
	if p.mode == NotifyLatest {
		return records[:1]
	}

	ordered := make([]interface{}, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		ordered = append(ordered, records[i])
	}
	return ordered
}

// reportFailure логирует ошибку цикла и сообщает о ней в чат, если такое сообщение еще не отправлялось
func (p *Poller) reportFailure(spanID string, err error) {
	message := homework.FormatMalfunction(err)
	p.logger.Error("[%s] %s (kind: %s)", spanID, message, domain.KindOf(err))

	if message == p.lastMessage {
		p.logger.Debug("[%s] Failure already reported to chat, skipping", spanID)
		return
	}

	// Неудачная отправка уже залогирована в Notifier, дальше не эскалируем
	if p.notifier.Notify(message, metrics.NotificationMalfunction) {
		p.mu.Lock()
		p.lastMessage = message
		p.mu.Unlock()
	}
}

func (p *Poller) rememberVerdict(name, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.lastByHomework[name] = message
	p.lastMessage = message
}

func (p *Poller) advanceCursor(spanID string, currentDate int64) {
	p.mu.Lock()
	p.cursor = currentDate
	p.mu.Unlock()

	p.metrics.SetCursor(currentDate)
	p.logger.Debug("[%s] Cursor advanced to %d", spanID, currentDate)
}

func (p *Poller) finishCycle(started time.Time, err error) {
	kind := ""
	if err != nil {
		kind = string(domain.KindOf(err))
	}
	p.metrics.ObserveCycle(time.Since(started), kind)

	p.mu.Lock()
	defer p.mu.Unlock()

	p.cycles++
	p.lastCycleAt = started
	p.lastErr = err
	if err == nil {
		p.lastSuccessAt = started
	}
}

// Cursor возвращает текущее значение курсора
func (p *Poller) Cursor() int64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cursor
}

// Snapshot возвращает снимок состояния для служебного API
func (p *Poller) Snapshot() domain.PollerState {
	p.mu.RLock()
	defer p.mu.RUnlock()

	state := domain.PollerState{
		Cursor:            p.cursor,
		NotifyMode:        string(p.mode),
		Cycles:            p.cycles,
		LastMessage:       p.lastMessage,
		NotifiedHomeworks: len(p.lastByHomework),
	}
	state.LastCycleAt = ptr.NonZero(p.lastCycleAt)
	state.LastSuccessAt = ptr.NonZero(p.lastSuccessAt)
	if p.lastErr != nil {
		state.LastError = p.lastErr.Error()
		state.LastErrorKind = domain.KindOf(p.lastErr)
	}

	return state
}
