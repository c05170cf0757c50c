package domain

import "time"

// PollerState снимок состояния цикла опроса для служебного API
type PollerState struct {
	Cursor            int64      `json:"cursor"`
	NotifyMode        string     `json:"notify_mode"`
	Cycles            int64      `json:"cycles"`
	LastCycleAt       *time.Time `json:"last_cycle_at,omitempty"`
	LastSuccessAt     *time.Time `json:"last_success_at,omitempty"`
	LastError         string     `json:"last_error,omitempty"`
	LastErrorKind     ErrorKind  `json:"last_error_kind,omitempty"`
	LastMessage       string     `json:"last_message,omitempty"`
	NotifiedHomeworks int        `json:"notified_homeworks"`
}
