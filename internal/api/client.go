package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const groqURL = "https://api.groq.com/openai/v1/chat/completions"

// Повторов не больше трёх попыток суммарно, пауза 2^attempt секунд
const maxAttempts = 3

// Client — клиент Groq chat completions.
// Ключ валидируется лениво: один ping-запрос перед первым реальным вызовом.
type Client struct {
	apiKey    string
	model     string
	maxTokens int

	baseURL    string
	httpClient *http.Client
	sleep      func(time.Duration)
	validated  bool
}

// NewClient создает клиент Groq для указанного ключа и модели
func NewClient(apiKey, model string, maxTokens int) *Client {
	return &Client{
		apiKey:    apiKey,
		model:     model,
		maxTokens: maxTokens,
		baseURL:   groqURL,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		sleep: time.Sleep,
	}
}

// Validate проверяет ключ минимальным запросом (max_tokens=1).
// Выполняется не более одного раза за жизнь клиента; Complete вызывает
// её сам перед первым реальным запросом.
func (c *Client) Validate(ctx context.Context) error {
	if c.validated {
		return nil
	}

	ping := chatRequest{
		Model:     c.model,
		Messages:  []Message{{Role: "user", Content: "ping"}},
		MaxTokens: 1,
	}
	if _, err := c.send(ctx, ping); err != nil {
		return &CredentialError{Err: err}
	}

	c.validated = true
	return nil
}

// Complete отправляет диалог модели и возвращает сгенерированный текст.
// Временные ошибки (429, 500, 503) повторяются до трёх попыток с паузами
// 1s и 2s; любая другая ошибка прерывает вызов сразу. После исчерпания
// попыток возвращается последняя временная ошибка.
func (c *Client) Complete(ctx context.Context, messages []Message, temperature float64) (string, error) {
	if err := c.Validate(ctx); err != nil {
		return "", err
	}

	req := chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   c.maxTokens,
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		text, err := c.send(ctx, req)
		if err == nil {
			return text, nil
		}

		var statusErr *StatusError
		if !errors.As(err, &statusErr) || !statusErr.Transient() {
			return "", err
		}

		lastErr = err
		if attempt < maxAttempts-1 {
			c.sleep(time.Duration(1<<attempt) * time.Second)
		}
	}

	return "", lastErr
}

// send выполняет один HTTP-запрос без повторов
func (c *Client) send(ctx context.Context, reqBody chatRequest) (string, error) {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("ошибка сериализации запроса: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("ошибка создания запроса: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{
			StatusCode: resp.StatusCode,
			Message:    apiErrorMessage(body),
		}
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("ошибка парсинга ответа: %w", err)
	}

	if parsed.Error != nil {
		return "", fmt.Errorf("Groq API ошибка: %s", parsed.Error.Message)
	}

	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("пустой ответ от Groq")
	}

	return parsed.Choices[0].Message.Content, nil
}

// apiErrorMessage достает текст ошибки из тела ответа, если он там есть
func apiErrorMessage(body []byte) string {
	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error != nil {
		return parsed.Error.Message
	}
	return string(body)
}
