package state

import "github.com/m04kA/SMC-HomeworkNotifier/internal/domain"

// Poller интерфейс источника состояния цикла опроса
type Poller interface {
	Snapshot() domain.PollerState
}
