package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"mock-interview-coach/internal/api"
	"mock-interview-coach/internal/config"
	"mock-interview-coach/internal/interviewer"
	"mock-interview-coach/internal/metrics"
	"mock-interview-coach/internal/telegram"
)

func main() {
	fmt.Println("🚀 Запуск AI Mock Interview Coach...")

	// Загружаем переменные окружения
	if err := godotenv.Load(); err != nil {
		log.Println("Файл .env не найден, используем переменные окружения")
	}

	cfg := config.LoadAppConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Ошибка конфигурации: %v", err)
	}

	// Загружаем каталог шаблонов вакансий
	catalog, err := config.LoadCatalog("config/templates.yaml")
	if err != nil {
		log.Fatalf("Ошибка загрузки каталога шаблонов: %v", err)
	}

	// Инициализируем сервисы
	fmt.Println("🔧 Инициализация сервисов...")

	m := metrics.NewMetrics()

	newClient := func(apiKey string) interviewer.Completer {
		return api.NewClient(apiKey, cfg.Groq.Model, cfg.Groq.MaxTokens)
	}
	service := interviewer.New(cfg.Groq.APIKey, newClient, m)
	fmt.Println("✅ Интервьюер инициализирован")

	if cfg.Groq.APIKey == "" {
		fmt.Println("⚠️ GROQ_API_KEY не задан — бот запросит ключ у каждого пользователя")
	}

	bot := telegram.New(cfg.Telegram.Token)
	handler := telegram.NewHandler(bot, cfg, catalog, service, m)
	fmt.Println("✅ Telegram бот инициализирован")

	// Выводим информацию о конфигурации
	fmt.Println("\n📋 Конфигурация:")
	fmt.Printf("• Модель: %s\n", cfg.Groq.Model)
	fmt.Printf("• Шаблонов вакансий: %d\n", len(catalog.Templates))

	fmt.Println("\n🤖 Telegram бот запущен!")
	fmt.Println("⏳ Ожидание сообщений...")
	fmt.Println("📱 Найдите бота в Telegram и отправьте /start")

	if err := bot.StartPolling(handler.HandleUpdate); err != nil {
		log.Fatalf("Ошибка запуска бота: %v", err)
	}
}
