package api

import (
	"fmt"
	"net/http"
)

// StatusError представляет ошибку Groq API с HTTP-статусом.
// Классификация по статусу определяет, имеет ли смысл повтор.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Groq API: статус %d: %s", e.StatusCode, e.Message)
}

// Transient сообщает, относится ли ошибка к временным:
// rate limit и недоступность/сбой сервера. Такие ошибки повторяются
// с backoff, все остальные — нет.
func (e *StatusError) Transient() bool {
	switch e.StatusCode {
	case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusServiceUnavailable:
		return true
	}
	return false
}

// CredentialError означает провал валидации ключа при первом обращении.
// Отдельный тип, потому что чаще всего это неверный ключ, а не проблемы
// сервиса: handler по нему возвращает пользователя к вводу ключа.
type CredentialError struct {
	Err error
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("ошибка проверки API ключа: %v", e.Err)
}

func (e *CredentialError) Unwrap() error {
	return e.Err
}
