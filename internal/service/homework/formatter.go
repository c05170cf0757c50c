package homework

import (
	"fmt"

	"github.com/m04kA/SMC-HomeworkNotifier/internal/domain"
	"github.com/m04kA/SMC-HomeworkNotifier/internal/service/homework/templates"
)

// ParseHomework проверяет запись о работе и приводит ее к доменной модели
func ParseHomework(record interface{}) (*domain.Homework, error) {
	fields, ok := record.(map[string]interface{})
	if !ok {
		return nil, wrongType("homework", "an object", record)
	}

	rawName, exists := fields[domain.KeyHomeworkName]
	if !exists {
		return nil, &domain.DomainError{Reason: domain.DomainReasonMissingField, Field: domain.KeyHomeworkName}
	}
	rawStatus, exists := fields[domain.KeyStatus]
	if !exists {
		return nil, &domain.DomainError{Reason: domain.DomainReasonMissingField, Field: domain.KeyStatus}
	}

	name, ok := rawName.(string)
	if !ok {
		return nil, wrongType(domain.KeyHomeworkName, "a string", rawName)
	}

	status, ok := rawStatus.(string)
	if !ok || !domain.HomeworkStatus(status).IsKnown() {
		return nil, &domain.DomainError{
			Reason: domain.DomainReasonUnknownStatus,
			Field:  domain.KeyStatus,
			Value:  fmt.Sprint(rawStatus),
		}
	}

	return &domain.Homework{
		Name:   name,
		Status: domain.HomeworkStatus(status),
	}, nil
}

// ParseStatus формирует сообщение о новом статусе работы
func ParseStatus(record interface{}) (string, error) {
	hw, err := ParseHomework(record)
	if err != nil {
		return "", err
	}

	return FormatStatus(hw), nil
}

// FormatStatus возвращает текст уведомления для уже провалидированной работы
func FormatStatus(hw *domain.Homework) string {
	return fmt.Sprintf(templates.StatusChangedFormat, hw.Name, templates.Verdicts[hw.Status])
}

// FormatMalfunction возвращает текст уведомления о сбое
func FormatMalfunction(err error) string {
	return fmt.Sprintf(templates.MalfunctionFormat, err)
}
