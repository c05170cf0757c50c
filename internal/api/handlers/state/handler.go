package state

import (
	"net/http"

	"github.com/m04kA/SMC-HomeworkNotifier/internal/api/handlers"
)

type Handler struct {
	poller Poller
}

func NewHandler(poller Poller) *Handler {
	return &Handler{
		poller: poller,
	}
}

// Handle возвращает текущее состояние цикла опроса: курсор, последнее сообщение, последнюю ошибку
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.poller.Snapshot())
}
