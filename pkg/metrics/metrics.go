package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Результаты цикла и отправки
const (
	ResultOK     = "ok"
	ResultError  = "error"
	ResultSent   = "sent"
	ResultFailed = "failed"
)

// Типы уведомлений
const (
	NotificationVerdict     = "verdict"
	NotificationMalfunction = "malfunction"
)

// Metrics коллектор метрик Prometheus
// Все методы безопасны для nil-получателя: метрики могут быть выключены в конфиге
type Metrics struct {
	registry *prometheus.Registry

	cycles        *prometheus.CounterVec
	cycleErrors   *prometheus.CounterVec
	cycleDuration prometheus.Histogram
	notifications *prometheus.CounterVec
	homeworks     prometheus.Counter
	cursor        prometheus.Gauge
}

// New создает коллектор с собственным реестром
func New(serviceName string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "poll_cycles_total",
			Help:      "Number of poll cycles by result.",
		}, []string{"result"}),
		cycleErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "poll_cycle_errors_total",
			Help:      "Number of failed poll cycles by error kind.",
		}, []string{"kind"}),
		cycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: serviceName,
			Name:      "poll_cycle_duration_seconds",
			Help:      "Duration of a poll cycle.",
			Buckets:   prometheus.DefBuckets,
		}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "notifications_total",
			Help:      "Number of chat notifications by type and result.",
		}, []string{"type", "result"}),
		homeworks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "homework_records_received_total",
			Help:      "Number of homework records received from the API.",
		}),
		cursor: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Name:      "poll_cursor_timestamp_seconds",
			Help:      "Current from_date cursor of the poll loop.",
		}),
	}

	registry.MustRegister(m.cycles, m.cycleErrors, m.cycleDuration, m.notifications, m.homeworks, m.cursor)

	return m
}

// Handler возвращает HTTP обработчик для эндпоинта метрик
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry возвращает реестр метрик
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveCycle учитывает завершенный цикл опроса
// errorKind пустой для успешного цикла
func (m *Metrics) ObserveCycle(duration time.Duration, errorKind string) {
	if m == nil {
		return
	}

	m.cycleDuration.Observe(duration.Seconds())
	if errorKind == "" {
		m.cycles.WithLabelValues(ResultOK).Inc()
		return
	}

	m.cycles.WithLabelValues(ResultError).Inc()
	m.cycleErrors.WithLabelValues(errorKind).Inc()
}

// ObserveNotification учитывает попытку отправки сообщения
func (m *Metrics) ObserveNotification(notificationType string, sent bool) {
	if m == nil {
		return
	}

	result := ResultSent
	if !sent {
		result = ResultFailed
	}
	m.notifications.WithLabelValues(notificationType, result).Inc()
}

// AddHomeworks учитывает количество полученных записей
func (m *Metrics) AddHomeworks(count int) {
	if m == nil {
		return
	}
	m.homeworks.Add(float64(count))
}

// SetCursor выставляет текущее значение курсора
func (m *Metrics) SetCursor(cursor int64) {
	if m == nil {
		return
	}
	m.cursor.Set(float64(cursor))
}
