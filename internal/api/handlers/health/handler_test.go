package health

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-HomeworkNotifier/internal/domain"
)

type fakePoller struct {
	lastCycleAt *time.Time
}

func (p fakePoller) Snapshot() domain.PollerState {
	return domain.PollerState{LastCycleAt: p.lastCycleAt}
}

func TestHandler_Handle(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	recent := now.Add(-5 * time.Minute)
	old := now.Add(-time.Hour)

	tests := []struct {
		name       string
		lastCycle  *time.Time
		wantStatus int
		wantBody   string
	}{
		{"no cycles yet", nil, http.StatusOK, `{"status":"starting"}`},
		{"recent cycle", &recent, http.StatusOK, `{"status":"healthy"}`},
		{"stale cycle", &old, http.StatusServiceUnavailable, `{"status":"stale","last_cycle_at":"2026-10-19T11:00:00Z"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(fakePoller{lastCycleAt: tt.lastCycle}, 20*time.Minute)
			h.now = func() time.Time { return now }

			rec := httptest.NewRecorder()
			h.Handle(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
