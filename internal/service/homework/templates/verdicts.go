package templates

import "github.com/m04kA/SMC-HomeworkNotifier/internal/domain"

const (
	// StatusChangedFormat шаблон сообщения об изменении статуса работы
	StatusChangedFormat = `Changed review status of "%s". %s`

	// MalfunctionFormat шаблон сообщения о сбое цикла опроса
	MalfunctionFormat = "Program malfunction: %v"
)

// Verdicts вердикты для каждого известного статуса
var Verdicts = map[domain.HomeworkStatus]string{
	domain.HomeworkStatusApproved:  "The work has been reviewed: the reviewer liked everything. Hooray!",
	domain.HomeworkStatusReviewing: "The work has been taken for review by the reviewer.",
	domain.HomeworkStatusRejected:  "The work has been reviewed: the reviewer has comments.",
}
