package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind тип ошибки из закрытого набора
type ErrorKind string

const (
	KindUnknown      ErrorKind = "unknown"
	KindConfig       ErrorKind = "config"       // Отсутствуют обязательные секреты (фатально)
	KindTransport    ErrorKind = "transport"    // Сетевая ошибка при обращении к API
	KindAPIStatus    ErrorKind = "api_status"   // API ответил не 200
	KindSchema       ErrorKind = "schema"       // Некорректная структура ответа
	KindDomain       ErrorKind = "domain"       // Некорректная запись о домашней работе
	KindNotification ErrorKind = "notification" // Не удалось доставить сообщение в чат
)

// KindError ошибка, знающая свой тип
type KindError interface {
	error
	Kind() ErrorKind
}

// KindOf возвращает тип ошибки или KindUnknown
func KindOf(err error) ErrorKind {
	var kindErr KindError
	if errors.As(err, &kindErr) {
		return kindErr.Kind()
	}
	return KindUnknown
}

// MissingTokenError отсутствуют обязательные переменные окружения
type MissingTokenError struct {
	Names []string
}

func (e *MissingTokenError) Error() string {
	return fmt.Sprintf("missing required environment variables: %s", strings.Join(e.Names, ", "))
}

func (e *MissingTokenError) Kind() ErrorKind { return KindConfig }

// TransportError ошибка сети при запросе к API
type TransportError struct {
	Endpoint string
	FromDate int64
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s with from_date=%d failed: %v", e.Endpoint, e.FromDate, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Kind() ErrorKind { return KindTransport }

// APIStatusError API вернул код ответа, отличный от 200
type APIStatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIStatusError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d", e.StatusCode)
	}
	if e.Body == "" {
		return fmt.Sprintf("unexpected API status %s", status)
	}
	return fmt.Sprintf("unexpected API status %s: %s", status, e.Body)
}

func (e *APIStatusError) Kind() ErrorKind { return KindAPIStatus }

// SchemaReason причина ошибки структуры ответа
type SchemaReason string

const (
	SchemaReasonNotJSON    SchemaReason = "not_json"
	SchemaReasonWrongType  SchemaReason = "wrong_type"
	SchemaReasonMissingKey SchemaReason = "missing_key"
)

// SchemaError ответ API не соответствует ожидаемой структуре
type SchemaError struct {
	Reason   SchemaReason
	Field    string   // Поле с неверным типом
	Expected string   // Ожидаемый тип
	Actual   string   // Фактический тип
	Missing  []string // Отсутствующие ключи
	Err      error
}

func (e *SchemaError) Error() string {
	switch e.Reason {
	case SchemaReasonMissingKey:
		return fmt.Sprintf("API response is missing required keys: %s", strings.Join(e.Missing, ", "))
	case SchemaReasonWrongType:
		return fmt.Sprintf("%q must be %s, got %s", e.Field, e.Expected, e.Actual)
	case SchemaReasonNotJSON:
		return fmt.Sprintf("API response is not valid JSON: %v", e.Err)
	default:
		return "invalid API response"
	}
}

func (e *SchemaError) Unwrap() error { return e.Err }

func (e *SchemaError) Kind() ErrorKind { return KindSchema }

// DomainReason причина ошибки записи о домашней работе
type DomainReason string

const (
	DomainReasonMissingField  DomainReason = "missing_field"
	DomainReasonUnknownStatus DomainReason = "unknown_status"
)

var (
	// ErrMissingField в записи нет обязательного поля
	ErrMissingField = errors.New("domain: homework field is missing")

	// ErrUnknownStatus статус не входит в список известных
	ErrUnknownStatus = errors.New("domain: unknown homework status")
)

// DomainError некорректная запись о домашней работе
type DomainError struct {
	Reason DomainReason
	Field  string
	Value  string
}

func (e *DomainError) Error() string {
	switch e.Reason {
	case DomainReasonUnknownStatus:
		return fmt.Sprintf("unknown homework status %q", e.Value)
	default:
		return fmt.Sprintf("homework field %q is missing", e.Field)
	}
}

// Is позволяет сравнивать через errors.Is с sentinel-ошибками
func (e *DomainError) Is(target error) bool {
	switch target {
	case ErrMissingField:
		return e.Reason == DomainReasonMissingField
	case ErrUnknownStatus:
		return e.Reason == DomainReasonUnknownStatus
	}
	return false
}

func (e *DomainError) Kind() ErrorKind { return KindDomain }

// NotificationError не удалось отправить сообщение в чат
type NotificationError struct {
	Chat ChatTarget
	Err  error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("failed to notify chat %s: %v", e.Chat, e.Err)
}

func (e *NotificationError) Unwrap() error { return e.Err }

func (e *NotificationError) Kind() ErrorKind { return KindNotification }
