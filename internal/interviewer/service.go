// Package interviewer реализует машину состояний сессии mock-интервью.
// Каждый переход — явный метод сервиса; при ошибке внешнего вызова сессия
// остается ровно в том состоянии, в котором была до действия.
package interviewer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mock-interview-coach/internal/api"
	"mock-interview-coach/internal/interview"
	"mock-interview-coach/internal/metrics"
	"mock-interview-coach/internal/prompts"
)

// MinTurnsForReport — минимум ходов в транскрипте для генерации отчета
const MinTurnsForReport = 4

// ErrReportTooEarly возвращается при попытке сгенерировать отчет
// до накопления минимального транскрипта
var ErrReportTooEarly = fmt.Errorf("для отчёта нужно минимум %d ходов интервью", MinTurnsForReport)

// Completer абстрагирует chat-клиент для подмены в тестах
type Completer interface {
	Complete(ctx context.Context, messages []api.Message, temperature float64) (string, error)
	Validate(ctx context.Context) error
}

// Service проводит сессию через стадии интервью
type Service struct {
	envKey    string
	newClient func(apiKey string) Completer
	metrics   *metrics.Metrics
}

// New создает сервис интервьюера.
// envKey — ключ из окружения (пустой, если пользователь вводит свой);
// newClient — фабрика chat-клиентов под конкретный ключ.
func New(envKey string, newClient func(apiKey string) Completer, m *metrics.Metrics) *Service {
	return &Service{
		envKey:    envKey,
		newClient: newClient,
		metrics:   m,
	}
}

// NewSession создает сессию в начальной стадии
func (s *Service) NewSession() *Session {
	var client Completer
	if s.envKey != "" {
		client = s.newClient(s.envKey)
	}
	sess := newSession(client)
	s.metrics.IncrementSessionsStarted()
	return sess
}

// SubmitKey проверяет ключ пользователя и переводит сессию на Landing.
// При провале валидации сессия остается на AwaitingKey.
func (s *Service) SubmitKey(ctx context.Context, sess *Session, key string) error {
	if sess.Stage != StageAwaitingKey {
		return fmt.Errorf("ключ уже задан, стадия %s", sess.Stage)
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("пустой API ключ")
	}

	client := s.newClient(key)
	err := client.Validate(ctx)
	s.metrics.IncrementAPICall(err == nil)
	if err != nil {
		return err
	}

	sess.client = client
	sess.Stage = StageLanding
	return nil
}

// InvalidateKey возвращает сессию к вводу ключа после ошибки валидации.
// Вызывается handler-ом, когда ключ из окружения оказался непригодным.
func (s *Service) InvalidateKey(sess *Session) {
	sess.client = nil
	sess.Stage = StageAwaitingKey
}

// BeginSetup открывает анкету вакансии: с Landing — пустую,
// с ProfileReady — для правки текущей конфигурации
func (s *Service) BeginSetup(sess *Session) error {
	if sess.Stage != StageLanding && sess.Stage != StageProfileReady {
		return fmt.Errorf("анкета недоступна на стадии %s", sess.Stage)
	}
	sess.Stage = StageSetup
	return nil
}

// ChooseTemplate применяет готовый шаблон вакансии и сразу генерирует
// профиль интервьюера: Landing → ProfileReady
func (s *Service) ChooseTemplate(ctx context.Context, sess *Session, cfg interview.Config) error {
	if sess.Stage != StageLanding {
		return fmt.Errorf("выбор шаблона недоступен на стадии %s", sess.Stage)
	}
	return s.generateProfile(ctx, sess, cfg)
}

// SubmitSetup принимает заполненную анкету и генерирует профиль
// интервьюера: Setup → ProfileReady
func (s *Service) SubmitSetup(ctx context.Context, sess *Session, cfg interview.Config) error {
	if sess.Stage != StageSetup {
		return fmt.Errorf("анкета не открыта, стадия %s", sess.Stage)
	}
	return s.generateProfile(ctx, sess, cfg)
}

// generateProfile валидирует конфигурацию, запрашивает профиль у модели
// и при успехе фиксирует конфигурацию с профилем в сессии
func (s *Service) generateProfile(ctx context.Context, sess *Session, cfg interview.Config) error {
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("конфигурация не готова: %w", err)
	}

	messages := []api.Message{
		{Role: "system", Content: prompts.SystemAssistant},
		{Role: "user", Content: prompts.Profile(cfg)},
	}
	profile, err := s.complete(ctx, sess, messages, prompts.TemperatureProfile)
	if err != nil {
		return fmt.Errorf("ошибка генерации профиля: %w", err)
	}

	sess.Config = cfg
	sess.Profile = strings.TrimSpace(profile)
	sess.Stage = StageProfileReady
	s.metrics.IncrementProfilesGenerated()
	return nil
}

// StartInterview запускает интервью: ProfileReady → Interviewing.
// Транскрипт сбрасывается, отчет очищается, и первой репликой всегда
// становится приветствие интервьюера с первым вопросом.
func (s *Service) StartInterview(ctx context.Context, sess *Session) error {
	if sess.Stage != StageProfileReady {
		return fmt.Errorf("интервью нельзя начать на стадии %s", sess.Stage)
	}

	messages := []api.Message{
		{Role: "system", Content: prompts.SystemInterviewer},
		{Role: "user", Content: prompts.Greeting(sess.Profile)},
	}
	greeting, err := s.complete(ctx, sess, messages, prompts.TemperatureDialogue)
	if err != nil {
		return fmt.Errorf("ошибка генерации приветствия: %w", err)
	}

	sess.Turns = []interview.Turn{{
		Speaker: interview.SpeakerInterviewer,
		Text:    strings.TrimSpace(greeting),
	}}
	sess.Report = ""
	sess.Stage = StageInterviewing
	s.metrics.IncrementInterviewsStarted()
	return nil
}

// SubmitAnswer обрабатывает ответ кандидата: добавляет его в транскрипт,
// получает у модели пару оценка/вопрос, проставляет оценку на реплику
// кандидата и добавляет следующий вопрос интервьюера.
// Пустой ответ — no-op. При ошибке вызова транскрипт не меняется.
func (s *Service) SubmitAnswer(ctx context.Context, sess *Session, answer string) error {
	if sess.Stage != StageInterviewing {
		return fmt.Errorf("ответы принимаются только во время интервью, стадия %s", sess.Stage)
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil
	}

	candidate := interview.Turn{
		Speaker: interview.SpeakerCandidate,
		Text:    answer,
	}
	transcript := make([]interview.Turn, len(sess.Turns), len(sess.Turns)+1)
	copy(transcript, sess.Turns)
	transcript = append(transcript, candidate)

	messages := []api.Message{
		{Role: "system", Content: prompts.SystemInterviewer},
		{Role: "user", Content: prompts.FollowUp(sess.Profile, transcript)},
	}
	resp, err := s.complete(ctx, sess, messages, prompts.TemperatureDialogue)
	if err != nil {
		return fmt.Errorf("ошибка генерации вопроса: %w", err)
	}

	evaluation, question := interview.ParseFollowUp(resp)

	candidate.Evaluation = evaluation
	sess.Turns = append(sess.Turns, candidate, interview.Turn{
		Speaker: interview.SpeakerInterviewer,
		Text:    question,
	})
	s.metrics.IncrementAnswersProcessed()
	return nil
}

// GenerateReport синтезирует итоговый отчет по транскрипту.
// Стадия не меняется, транскрипт не мутируется; отчет можно
// перегенерировать по мере продолжения интервью.
func (s *Service) GenerateReport(ctx context.Context, sess *Session) error {
	if sess.Stage != StageInterviewing {
		return fmt.Errorf("отчёт доступен только во время интервью, стадия %s", sess.Stage)
	}
	if len(sess.Turns) < MinTurnsForReport {
		return ErrReportTooEarly
	}

	messages := []api.Message{
		{Role: "system", Content: prompts.SystemEvaluator},
		{Role: "user", Content: prompts.Report(sess.Profile, sess.Turns)},
	}
	report, err := s.complete(ctx, sess, messages, prompts.TemperatureReport)
	if err != nil {
		return fmt.Errorf("ошибка генерации отчёта: %w", err)
	}

	sess.Report = strings.TrimSpace(report)
	s.metrics.IncrementReportsGenerated()
	return nil
}

// Reset сбрасывает сессию к начальной стадии, сохраняя клиент с ключом
func (s *Service) Reset(sess *Session) {
	fresh := newSession(sess.client)
	*sess = *fresh
}

// complete выполняет вызов модели и учитывает его в метриках
func (s *Service) complete(ctx context.Context, sess *Session, messages []api.Message, temperature float64) (string, error) {
	if sess.client == nil {
		return "", errors.New("chat-клиент не инициализирован")
	}
	text, err := sess.client.Complete(ctx, messages, temperature)
	s.metrics.IncrementAPICall(err == nil)
	return text, err
}
