package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"mock-interview-coach/internal/api"
	"mock-interview-coach/internal/config"
	"mock-interview-coach/internal/interview"
	"mock-interview-coach/internal/interviewer"
	"mock-interview-coach/internal/metrics"
	"mock-interview-coach/internal/storage"
)

// Sender абстрагирует отправку сообщений для подмены в тестах
type Sender interface {
	SendMessage(chatID int64, text string) error
	SendFormattedMessage(chatID int64, format string, args ...interface{}) error
}

type RateLimiter struct {
	requests map[int64][]time.Time
	mutex    sync.Mutex
	limit    int
	window   time.Duration
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		requests: make(map[int64][]time.Time),
		limit:    limit,
		window:   window,
	}
}

func (rl *RateLimiter) IsAllowed(userID int64) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := time.Now()

	if requests, exists := rl.requests[userID]; exists {
		var valid []time.Time
		for _, t := range requests {
			if now.Sub(t) < rl.window {
				valid = append(valid, t)
			}
		}
		rl.requests[userID] = valid
	}

	if len(rl.requests[userID]) >= rl.limit {
		return false
	}

	rl.requests[userID] = append(rl.requests[userID], now)
	return true
}

// Handler превращает события Telegram в переходы машины состояний сессии.
// Рендеринг — только проекция состояния после перехода, сам по себе
// он никаких вызовов модели не запускает.
type Handler struct {
	bot           Sender
	cfg           *config.AppConfig
	catalog       *config.Catalog
	service       *interviewer.Service
	metrics       *metrics.Metrics
	sessions      map[int64]*UserSession
	sessionsMutex sync.RWMutex
	rateLimiter   *RateLimiter
}

func NewHandler(bot Sender, cfg *config.AppConfig, catalog *config.Catalog, service *interviewer.Service, m *metrics.Metrics) *Handler {
	h := &Handler{
		bot:         bot,
		cfg:         cfg,
		catalog:     catalog,
		service:     service,
		metrics:     m,
		sessions:    make(map[int64]*UserSession),
		rateLimiter: NewRateLimiter(cfg.Session.RateLimit, cfg.Session.RateWindow),
	}
	h.startSessionCleanup()
	return h
}

func (h *Handler) startSessionCleanup() {
	ticker := time.NewTicker(h.cfg.Session.CleanupInterval)
	go func() {
		for range ticker.C {
			h.cleanupInactiveSessions()
		}
	}()
}

func (h *Handler) cleanupInactiveSessions() {
	h.sessionsMutex.Lock()
	defer h.sessionsMutex.Unlock()

	cutoff := time.Now().Add(-h.cfg.Session.TTL)
	for uid, sess := range h.sessions {
		if sess.LastActivity.Before(cutoff) {
			delete(h.sessions, uid)
		}
	}
}

// HandleUpdate обрабатывает одно обновление от Telegram
func (h *Handler) HandleUpdate(update Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	text := strings.TrimSpace(update.Message.Text)

	if !h.rateLimiter.IsAllowed(userID) {
		h.bot.SendMessage(chatID, "⏳ Слишком много сообщений. Пожалуйста, подождите минуту.")
		return
	}

	us := h.getOrCreateSession(userID)
	us.LastActivity = time.Now()

	if strings.HasPrefix(text, "/") {
		h.handleCommand(chatID, text, us)
		return
	}
	h.handleUserInput(chatID, text, us)
}

func (h *Handler) handleCommand(chatID int64, command string, us *UserSession) {
	switch command {
	case "/start":
		h.handleStart(chatID, us)
	case "/help":
		h.handleHelp(chatID)
	case "/status":
		h.handleStatus(chatID, us)
	case "/restart":
		h.handleRestart(chatID, us)
	case "/setup", "/edit":
		h.handleSetup(chatID, us)
	case "/begin":
		h.handleBegin(chatID, us)
	case "/report":
		h.handleReport(chatID, us)
	case "/export":
		h.handleExport(chatID, us)
	case "/toggle_eval":
		us.ShowEval = !us.ShowEval
		if us.ShowEval {
			h.bot.SendMessage(chatID, "👁 Оценки ответов включены.")
		} else {
			h.bot.SendMessage(chatID, "🙈 Оценки ответов скрыты.")
		}
	case "/stats":
		h.handleStats(chatID)
	default:
		h.bot.SendMessage(chatID, "Неизвестная команда. Используйте /help для получения списка команд.")
	}
}

// handleUserInput маршрутизирует свободный текст по текущей стадии сессии
func (h *Handler) handleUserInput(chatID int64, text string, us *UserSession) {
	switch us.Session.Stage {
	case interviewer.StageAwaitingKey:
		h.handleKeyInput(chatID, text, us)
	case interviewer.StageLanding:
		h.handleLandingInput(chatID, text, us)
	case interviewer.StageSetup:
		h.handleSetupInput(chatID, text, us)
	case interviewer.StageProfileReady:
		h.bot.SendMessage(chatID, "Профиль готов. Используйте /begin для старта интервью или /edit для правки анкеты.")
	case interviewer.StageInterviewing:
		h.handleAnswer(chatID, text, us)
	}
}

func (h *Handler) handleStart(chatID int64, us *UserSession) {
	welcome := `💼 *AI Mock Interview Coach*

Тренируйте собеседования под конкретную вакансию: бот сгенерирует
профиль интервьюера, проведет диалог и соберет итоговый отчет.`
	h.bot.SendMessage(chatID, welcome)
	h.showStage(chatID, us)
}

func (h *Handler) handleHelp(chatID int64) {
	helpText := `🤖 *Команды:*
/start - Приветствие и текущая стадия
/setup - Заполнить анкету вакансии
/edit - Поправить анкету (профиль будет пересоздан)
/begin - Начать интервью по готовому профилю
/report - Итоговый отчет (после %d и более ходов)
/export - Сохранить транскрипт интервью в JSON
/toggle_eval - Показ/скрытие оценок ответов
/status - Прогресс текущей сессии
/restart - Сбросить сессию
/stats - Статистика бота

*Как это работает:*
1. Выберите готовый шаблон вакансии или заполните анкету
2. Бот сгенерирует профиль интервьюера
3. /begin — интервьюер поздоровается и задаст первый вопрос
4. Отвечайте свободным текстом, к каждому ответу придет оценка
5. /report — структурированный разбор интервью`
	h.bot.SendFormattedMessage(chatID, helpText, interviewer.MinTurnsForReport)
}

func (h *Handler) handleStatus(chatID int64, us *UserSession) {
	s := us.Session
	status := fmt.Sprintf("📊 *Сессия* `%s`\n⏰ Стадия: %s", s.ID, stageDescription(s.Stage))
	if s.Config.JobTitle != "" {
		status += fmt.Sprintf("\n💼 Вакансия: %s — %s (%s)", s.Config.CompanyName, s.Config.JobTitle, s.Config.Round)
	}
	if s.Stage == interviewer.StageInterviewing {
		status += fmt.Sprintf("\n💬 Ходов в транскрипте: %d", len(s.Turns))
		if s.Report != "" {
			status += "\n📄 Отчет сгенерирован"
		}
	}
	h.bot.SendMessage(chatID, status)
}

func (h *Handler) handleRestart(chatID int64, us *UserSession) {
	h.service.Reset(us.Session)
	us.SetupStep = SetupNone
	us.Draft = interview.Config{}
	h.bot.SendMessage(chatID, "🔄 Сессия сброшена.")
	h.showStage(chatID, us)
}

func (h *Handler) handleKeyInput(chatID int64, text string, us *UserSession) {
	h.bot.SendMessage(chatID, "🔑 Проверяю ключ...")
	if err := h.service.SubmitKey(context.Background(), us.Session, text); err != nil {
		h.bot.SendFormattedMessage(chatID, "❌ Ключ не принят: %v\n\nОтправьте действующий ключ Groq одним сообщением.", err)
		return
	}
	h.bot.SendMessage(chatID, "✅ Ключ принят!")
	h.showLanding(chatID)
}

func (h *Handler) handleLandingInput(chatID int64, text string, us *UserSession) {
	n, err := strconv.Atoi(text)
	if err != nil {
		h.bot.SendMessage(chatID, "Отправьте номер шаблона из списка или /setup для своей вакансии.")
		return
	}
	tpl, ok := h.catalog.GetByIndex(n)
	if !ok {
		h.bot.SendFormattedMessage(chatID, "Нет шаблона с номером %d. Отправьте номер из списка или /setup.", n)
		return
	}

	h.bot.SendFormattedMessage(chatID, "⏳ Готовлю профиль интервьюера для «%s»...", tpl.Name)
	if err := h.service.ChooseTemplate(context.Background(), us.Session, tpl.Config()); err != nil {
		h.replyError(chatID, us, err)
		return
	}
	h.showProfile(chatID, us)
}

func (h *Handler) handleSetup(chatID int64, us *UserSession) {
	if err := h.service.BeginSetup(us.Session); err != nil {
		h.replyError(chatID, us, err)
		return
	}
	// анкета предзаполняется текущей конфигурацией при правке
	us.Draft = us.Session.Config
	us.SetupStep = SetupCompanyName
	h.bot.SendMessage(chatID, "📝 *Анкета вакансии*\n\nНазвание компании?"+draftHint(us.Draft.CompanyName))
}

// handleSetupInput ведет пользователя по шагам анкеты.
// Точка или пустой ввод оставляют предзаполненное значение.
func (h *Handler) handleSetupInput(chatID int64, text string, us *UserSession) {
	keep := text == "."

	switch us.SetupStep {
	case SetupCompanyName:
		if !keep {
			us.Draft.CompanyName = text
		}
		us.SetupStep = SetupJobTitle
		h.bot.SendMessage(chatID, "Название должности?"+draftHint(us.Draft.JobTitle))
	case SetupJobTitle:
		if !keep {
			us.Draft.JobTitle = text
		}
		us.SetupStep = SetupCompanyDesc
		h.bot.SendMessage(chatID, "Кратко о компании?"+draftHint(us.Draft.CompanyDesc))
	case SetupCompanyDesc:
		if !keep {
			us.Draft.CompanyDesc = text
		}
		us.SetupStep = SetupJobDesc
		h.bot.SendMessage(chatID, "Описание вакансии?"+draftHint(us.Draft.JobDesc))
	case SetupJobDesc:
		if !keep {
			us.Draft.JobDesc = text
		}
		us.SetupStep = SetupRound
		h.bot.SendMessage(chatID, roundPrompt())
	case SetupRound:
		round, err := parseRoundChoice(text)
		if err != nil {
			h.bot.SendMessage(chatID, "Отправьте номер раунда от 1 до 4.")
			return
		}
		us.Draft.Round = round
		if round == interview.RoundTechnical {
			us.SetupStep = SetupTechStack
			h.bot.SendMessage(chatID, "Технологический стек (через запятую)?"+draftHint(us.Draft.TechStack))
		} else {
			us.Draft.TechStack = ""
			us.SetupStep = SetupCriteria
			h.bot.SendMessage(chatID, "Критерии оценки кандидата?"+draftHint(us.Draft.Criteria))
		}
	case SetupTechStack:
		if !keep {
			us.Draft.TechStack = text
		}
		us.SetupStep = SetupCriteria
		h.bot.SendMessage(chatID, "Критерии оценки кандидата?"+draftHint(us.Draft.Criteria))
	case SetupCriteria:
		if !keep {
			us.Draft.Criteria = text
		}
		h.submitSetup(chatID, us)
	case SetupRetry:
		h.submitSetup(chatID, us)
	default:
		h.bot.SendMessage(chatID, "Анкета не открыта. Используйте /setup.")
	}
}

func (h *Handler) submitSetup(chatID int64, us *UserSession) {
	h.bot.SendMessage(chatID, "⏳ Генерирую профиль интервьюера...")
	if err := h.service.SubmitSetup(context.Background(), us.Session, us.Draft); err != nil {
		us.SetupStep = SetupRetry
		h.replyError(chatID, us, err)
		if us.Session.Stage == interviewer.StageSetup {
			h.bot.SendMessage(chatID, "Отправьте любое сообщение, чтобы повторить генерацию профиля.")
		}
		return
	}
	us.SetupStep = SetupNone
	h.showProfile(chatID, us)
}

func (h *Handler) handleBegin(chatID int64, us *UserSession) {
	h.bot.SendMessage(chatID, "🚀 Начинаем интервью...")
	if err := h.service.StartInterview(context.Background(), us.Session); err != nil {
		h.replyError(chatID, us, err)
		return
	}
	// единственная реплика транскрипта — приветствие с первым вопросом
	h.bot.SendFormattedMessage(chatID, "🎙 %s", us.Session.Turns[0].Text)
}

func (h *Handler) handleAnswer(chatID int64, text string, us *UserSession) {
	before := len(us.Session.Turns)
	if err := h.service.SubmitAnswer(context.Background(), us.Session, text); err != nil {
		h.replyError(chatID, us, err)
		return
	}
	if len(us.Session.Turns) == before {
		// пустой ответ игнорируется без перехода
		return
	}

	turns := us.Session.Turns
	candidate := turns[len(turns)-2]
	question := turns[len(turns)-1]

	if us.ShowEval && candidate.Evaluation != "" {
		h.bot.SendFormattedMessage(chatID, "💬 *Оценка:* %s", candidate.Evaluation)
	}
	h.bot.SendFormattedMessage(chatID, "🎙 %s", question.Text)
}

func (h *Handler) handleReport(chatID int64, us *UserSession) {
	if err := h.service.GenerateReport(context.Background(), us.Session); err != nil {
		if errors.Is(err, interviewer.ErrReportTooEarly) {
			h.bot.SendFormattedMessage(chatID, "📄 Отчет доступен после %d и более ходов. Продолжайте интервью!", interviewer.MinTurnsForReport)
			return
		}
		h.replyError(chatID, us, err)
		return
	}
	h.bot.SendFormattedMessage(chatID, "📄 *Итоговый отчет*\n\n%s", us.Session.Report)
}

func (h *Handler) handleExport(chatID int64, us *UserSession) {
	s := us.Session
	if len(s.Turns) == 0 {
		h.bot.SendMessage(chatID, "❌ Экспортировать пока нечего: интервью не начато.")
		return
	}

	filename, err := storage.SaveResult(&storage.Result{
		SessionID: s.ID,
		Timestamp: time.Now().Format(time.RFC3339),
		Config:    s.Config,
		Profile:   s.Profile,
		Turns:     s.Turns,
		Report:    s.Report,
	})
	if err != nil {
		h.bot.SendFormattedMessage(chatID, "❌ Ошибка экспорта: %v", err)
		return
	}
	h.bot.SendFormattedMessage(chatID, "💾 Транскрипт сохранен: `%s`", filename)
}

func (h *Handler) handleStats(chatID int64) {
	snap := h.metrics.GetSnapshot()
	h.bot.SendFormattedMessage(chatID, `📈 *Статистика*
• Сессий: %d
• Профилей: %d
• Интервью: %d
• Ответов: %d
• Отчетов: %d
• API вызовов: %d (успешных %d)`,
		snap.SessionsStarted,
		snap.ProfilesGenerated,
		snap.InterviewsStarted,
		snap.AnswersProcessed,
		snap.ReportsGenerated,
		snap.APICallsTotal,
		snap.APICallsSuccessful)
}

// replyError показывает ошибку с учетом её класса.
// Ошибка ключа возвращает сессию к вводу ключа; временная ошибка сервиса
// предлагает повторить то же действие — история при этом цела.
func (h *Handler) replyError(chatID int64, us *UserSession, err error) {
	var credErr *api.CredentialError
	if errors.As(err, &credErr) {
		h.service.InvalidateKey(us.Session)
		h.bot.SendFormattedMessage(chatID, "🔑 Проблема с API ключом: %v\n\nОтправьте действующий ключ Groq одним сообщением.", credErr.Err)
		return
	}

	var statusErr *api.StatusError
	if errors.As(err, &statusErr) && statusErr.Transient() {
		h.bot.SendMessage(chatID, "⚠️ Сервис Groq сейчас перегружен. Повторите то же действие чуть позже — прогресс не потерян.")
		return
	}

	h.bot.SendFormattedMessage(chatID, "❌ %v", err)
}

// showStage показывает подсказку, соответствующую текущей стадии
func (h *Handler) showStage(chatID int64, us *UserSession) {
	switch us.Session.Stage {
	case interviewer.StageAwaitingKey:
		h.bot.SendMessage(chatID, "🔑 Отправьте ваш API ключ Groq одним сообщением.\nПолучить ключ: https://console.groq.com")
	case interviewer.StageLanding:
		h.showLanding(chatID)
	case interviewer.StageSetup:
		h.bot.SendMessage(chatID, "📝 Анкета в процессе заполнения — продолжайте отвечать на вопросы.")
	case interviewer.StageProfileReady:
		h.showProfile(chatID, us)
	case interviewer.StageInterviewing:
		h.bot.SendMessage(chatID, "🎙 Интервью идет — отвечайте на вопросы свободным текстом.")
	}
}

func (h *Handler) showLanding(chatID int64) {
	var b strings.Builder
	b.WriteString("⚡ *Быстрый старт — выберите шаблон:*\n")
	for i, name := range h.catalog.Names() {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, name))
	}
	b.WriteString("\nОтправьте номер шаблона или /setup, чтобы описать свою вакансию.")
	h.bot.SendMessage(chatID, b.String())
}

func (h *Handler) showProfile(chatID int64, us *UserSession) {
	h.bot.SendFormattedMessage(chatID, "🧑‍💼 *Профиль интервьюера готов:*\n\n%s", us.Session.Profile)
	h.bot.SendMessage(chatID, "🚀 /begin — начать интервью\n✏️ /edit — поправить анкету")
}

// Вспомогательные функции

func (h *Handler) getOrCreateSession(userID int64) *UserSession {
	h.sessionsMutex.Lock()
	defer h.sessionsMutex.Unlock()

	if us, exists := h.sessions[userID]; exists {
		return us
	}

	us := &UserSession{
		UserID:       userID,
		Session:      h.service.NewSession(),
		ShowEval:     true,
		LastActivity: time.Now(),
	}
	h.sessions[userID] = us
	return us
}

func stageDescription(stage interviewer.Stage) string {
	switch stage {
	case interviewer.StageAwaitingKey:
		return "Ожидание API ключа"
	case interviewer.StageLanding:
		return "Выбор вакансии"
	case interviewer.StageSetup:
		return "Заполнение анкеты"
	case interviewer.StageProfileReady:
		return "Профиль готов"
	case interviewer.StageInterviewing:
		return "Интервью"
	default:
		return "Неизвестно"
	}
}

func roundPrompt() string {
	var b strings.Builder
	b.WriteString("Раунд интервью?\n")
	for i, r := range interview.Rounds {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, r))
	}
	b.WriteString("\nОтправьте номер.")
	return b.String()
}

func parseRoundChoice(text string) (interview.Round, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err == nil && n >= 1 && n <= len(interview.Rounds) {
		return interview.Rounds[n-1], nil
	}
	return interview.ParseRound(text)
}

// draftHint подсказывает предзаполненное значение шага анкеты
func draftHint(current string) string {
	if current == "" {
		return ""
	}
	return fmt.Sprintf("\n_Сейчас: %s_\nОтправьте «.», чтобы оставить как есть.", current)
}
