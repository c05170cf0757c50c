package domain

// HomeworkStatus статус проверки домашней работы
type HomeworkStatus string

const (
	HomeworkStatusApproved  HomeworkStatus = "approved"  // Принята
	HomeworkStatusReviewing HomeworkStatus = "reviewing" // На проверке
	HomeworkStatusRejected  HomeworkStatus = "rejected"  // Есть замечания
)

// Ключи JSON-ответа API
const (
	KeyHomeworks    = "homeworks"
	KeyCurrentDate  = "current_date"
	KeyHomeworkName = "homework_name"
	KeyStatus       = "status"
)

// IsKnown проверяет, входит ли статус в список известных
func (s HomeworkStatus) IsKnown() bool {
	switch s {
	case HomeworkStatusApproved, HomeworkStatusReviewing, HomeworkStatusRejected:
		return true
	}
	return false
}

// Homework запись о домашней работе после разбора
type Homework struct {
	Name   string
	Status HomeworkStatus
}

// StatusesBatch провалидированный ответ API
type StatusesBatch struct {
	Homeworks   []interface{} // Сырые записи, проверяются форматтером
	CurrentDate int64
}

// IsEmpty проверяет, есть ли в ответе записи
func (b *StatusesBatch) IsEmpty() bool {
	return len(b.Homeworks) == 0
}
