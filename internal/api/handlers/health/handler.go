package health

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-HomeworkNotifier/internal/api/handlers"
	"github.com/m04kA/SMC-HomeworkNotifier/internal/domain"
)

const (
	statusHealthy  = "healthy"
	statusStarting = "starting"
	statusStale    = "stale"
)

// Poller интерфейс источника состояния цикла опроса
type Poller interface {
	Snapshot() domain.PollerState
}

type Handler struct {
	poller   Poller
	maxDelay time.Duration // Максимальная пауза с последнего цикла
	now      func() time.Time
}

func NewHandler(poller Poller, maxDelay time.Duration) *Handler {
	return &Handler{
		poller:   poller,
		maxDelay: maxDelay,
		now:      time.Now,
	}
}

// Handle отвечает 503, если цикл опроса давно не выполнялся (завис на сетевом вызове)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	state := h.poller.Snapshot()

	if state.LastCycleAt == nil {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": statusStarting})
		return
	}

	if h.now().Sub(*state.LastCycleAt) > h.maxDelay {
		handlers.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":        statusStale,
			"last_cycle_at": state.LastCycleAt.Format(time.RFC3339),
		})
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": statusHealthy})
}
