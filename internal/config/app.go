package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const defaultModel = "meta-llama/llama-4-maverick-17b-128e-instruct"

type AppConfig struct {
	Groq     GroqConfig
	Telegram TelegramConfig
	Session  SessionConfig
}

type GroqConfig struct {
	APIKey    string
	Model     string
	MaxTokens int
}

type TelegramConfig struct {
	Token string
}

// SessionConfig — лимиты жизни сессий и частоты сообщений
type SessionConfig struct {
	TTL             time.Duration
	CleanupInterval time.Duration
	RateLimit       int
	RateWindow      time.Duration
}

// LoadAppConfig собирает конфигурацию приложения из переменных окружения
func LoadAppConfig() *AppConfig {
	return &AppConfig{
		Groq: GroqConfig{
			APIKey:    getEnv("GROQ_API_KEY", ""),
			Model:     getEnv("GROQ_MODEL", defaultModel),
			MaxTokens: getEnvAsInt("GROQ_MAX_TOKENS", 4000),
		},
		Telegram: TelegramConfig{
			Token: getEnv("TELEGRAM_BOT_TOKEN", ""),
		},
		Session: SessionConfig{
			TTL:             getEnvAsDuration("SESSION_TTL", 24*time.Hour),
			CleanupInterval: getEnvAsDuration("SESSION_CLEANUP_INTERVAL", time.Hour),
			RateLimit:       getEnvAsInt("RATE_LIMIT", 10),
			RateWindow:      getEnvAsDuration("RATE_WINDOW", time.Minute),
		},
	}
}

// Validate проверяет обязательные поля конфигурации.
// Ключ Groq не обязателен: без него бот запрашивает ключ у пользователя.
func (c *AppConfig) Validate() error {
	if c.Telegram.Token == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN не задан")
	}
	if c.Groq.MaxTokens <= 0 {
		return fmt.Errorf("GROQ_MAX_TOKENS должно быть положительным")
	}
	return nil
}

// helper функции для чтения переменных окружения

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
