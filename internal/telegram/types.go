package telegram

import (
	"time"

	"mock-interview-coach/internal/interview"
	"mock-interview-coach/internal/interviewer"
)

// Bot представляет Telegram бота
type Bot struct {
	token      string
	baseURL    string
	httpClient httpDoer
}

// Update представляет обновление от Telegram
type Update struct {
	UpdateID int      `json:"update_id"`
	Message  *Message `json:"message,omitempty"`
}

// Message представляет сообщение в Telegram
type Message struct {
	MessageID int    `json:"message_id"`
	From      *User  `json:"from,omitempty"`
	Chat      *Chat  `json:"chat"`
	Text      string `json:"text,omitempty"`
}

// User представляет пользователя Telegram
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
}

// Chat представляет чат в Telegram
type Chat struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// SendMessageRequest представляет запрос на отправку сообщения
type SendMessageRequest struct {
	ChatID    int64  `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

// GetUpdatesResponse представляет ответ от getUpdates
type GetUpdatesResponse struct {
	OK     bool     `json:"ok"`
	Result []Update `json:"result"`
}

// SendMessageResponse представляет ответ от sendMessage
type SendMessageResponse struct {
	OK     bool     `json:"ok"`
	Result *Message `json:"result,omitempty"`
}

// SetupStep — текущий шаг пошаговой анкеты вакансии
type SetupStep int

const (
	SetupNone SetupStep = iota
	SetupCompanyName
	SetupJobTitle
	SetupCompanyDesc
	SetupJobDesc
	SetupRound
	SetupTechStack
	SetupCriteria
	SetupRetry
)

// UserSession привязывает доменную сессию интервью к пользователю Telegram
// вместе с презентационным состоянием (шаг анкеты, показ оценок)
type UserSession struct {
	UserID       int64
	Session      *interviewer.Session
	SetupStep    SetupStep
	Draft        interview.Config
	ShowEval     bool
	LastActivity time.Time
}
