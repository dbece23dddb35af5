package interviewer

import (
	"mock-interview-coach/internal/interview"

	"github.com/google/uuid"
)

// Stage представляет стадию сессии
type Stage string

const (
	StageAwaitingKey  Stage = "awaiting_key"
	StageLanding      Stage = "landing"
	StageSetup        Stage = "setup"
	StageProfileReady Stage = "profile_ready"
	StageInterviewing Stage = "interviewing"
)

// Session хранит состояние одной пользовательской сессии.
// Один экземпляр на сессию; создается при старте, мутируется только
// переходами стадий и отбрасывается при teardown — на диск не пишется.
type Session struct {
	ID      string
	Stage   Stage
	Config  interview.Config
	Profile string
	Turns   []interview.Turn
	Report  string

	client Completer
}

// newSession создает сессию в начальной стадии.
// Если клиент задан (ключ взят из окружения), сессия сразу на Landing,
// иначе — AwaitingKey до ввода ключа пользователем.
func newSession(client Completer) *Session {
	s := &Session{
		ID:    uuid.New().String(),
		Stage: StageAwaitingKey,
	}
	if client != nil {
		s.client = client
		s.Stage = StageLanding
	}
	return s
}
