package storage

import "mock-interview-coach/internal/interview"

// Result представляет экспорт завершенного интервью.
// Это артефакт по запросу пользователя: живое состояние сессии
// на диск не пишется.
type Result struct {
	SessionID string           `json:"session_id"`
	Timestamp string           `json:"timestamp"`
	Config    interview.Config `json:"config"`
	Profile   string           `json:"profile"`
	Turns     []interview.Turn `json:"turns"`
	Report    string           `json:"report,omitempty"`
}
