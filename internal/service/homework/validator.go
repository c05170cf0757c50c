package homework

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/m04kA/SMC-HomeworkNotifier/internal/domain"
)

// CheckResponse проверяет структуру ответа API
// Возвращает список записей (возможно пустой) и значение current_date
func CheckResponse(response interface{}) (*domain.StatusesBatch, error) {
	body, ok := response.(map[string]interface{})
	if !ok {
		return nil, wrongType("response", "an object", response)
	}

	// Оба ключа обязательны
	var missing []string
	for _, key := range []string{domain.KeyHomeworks, domain.KeyCurrentDate} {
		if _, exists := body[key]; !exists {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, &domain.SchemaError{Reason: domain.SchemaReasonMissingKey, Missing: missing}
	}

	homeworks, ok := body[domain.KeyHomeworks].([]interface{})
	if !ok {
		return nil, wrongType(domain.KeyHomeworks, "an array", body[domain.KeyHomeworks])
	}

	currentDate, ok := toInt64(body[domain.KeyCurrentDate])
	if !ok {
		return nil, wrongType(domain.KeyCurrentDate, "an integer", body[domain.KeyCurrentDate])
	}

	return &domain.StatusesBatch{
		Homeworks:   homeworks,
		CurrentDate: currentDate,
	}, nil
}

// toInt64 приводит числовое JSON-значение к int64
// Поддерживает json.Number (decoder.UseNumber) и float64 (обычный json.Unmarshal)
func toInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case float64:
		if v != math.Trunc(v) || v >= math.MaxInt64 || v < math.MinInt64 {
			return 0, false
		}
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	default:
		return 0, false
	}
}

func wrongType(field, expected string, actual interface{}) *domain.SchemaError {
	return &domain.SchemaError{
		Reason:   domain.SchemaReasonWrongType,
		Field:    field,
		Expected: expected,
		Actual:   jsonTypeName(actual),
	}
}

// jsonTypeName возвращает имя JSON-типа значения для сообщений об ошибках
func jsonTypeName(value interface{}) string {
	switch value.(type) {
	case nil:
		return "null"
	case map[string]interface{}:
		return "an object"
	case []interface{}:
		return "an array"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case json.Number, float64, int, int64:
		return "a number"
	default:
		return fmt.Sprintf("%T", value)
	}
}
