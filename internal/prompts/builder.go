// Package prompts собирает промпты для всех обращений к модели.
// Все функции чистые: никакой сети и никакого состояния.
package prompts

import (
	"fmt"
	"strings"

	"mock-interview-coach/internal/interview"
)

// Системные роли для разных типов запросов
const (
	SystemAssistant   = "You are an expert interview assistant"
	SystemInterviewer = "You are an interviewer."
	SystemEvaluator   = "You are an expert interview evaluator"
)

// Температуры по типам запросов, подобраны под задачу каждого промпта
const (
	TemperatureProfile  = 0.3
	TemperatureDialogue = 0.5
	TemperatureReport   = 0.25
)

// Profile строит промпт генерации профиля интервьюера.
// Модели явно запрещены placeholder-имена. Строка Tech Stack добавляется
// только для технического раунда.
func Profile(cfg interview.Config) string {
	var b strings.Builder

	b.WriteString("You are an expert interviewer-profile generator.\n\n")
	b.WriteString("Produce a concise markdown profile including:\n")
	b.WriteString("1. **A realistic Name & Title** (e.g. \"Jordan Lee – Senior Product Manager\") — **never use placeholders**\n")
	b.WriteString("2. Interview Style\n")
	b.WriteString("3. Core Focus Areas\n")
	b.WriteString("4. Typical Question Types\n")
	b.WriteString("5. Evaluation Rubric\n")
	b.WriteString("6. Culture-fit Signals\n")
	b.WriteString("7. Common Candidate Mistakes\n\n")

	b.WriteString(fmt.Sprintf("Company: %s\n", cfg.CompanyName))
	b.WriteString(fmt.Sprintf("Job title: %s\n", cfg.JobTitle))
	b.WriteString(fmt.Sprintf("Company description: %s\n", cfg.CompanyDesc))
	b.WriteString(fmt.Sprintf("Job description: %s\n", cfg.JobDesc))
	b.WriteString(fmt.Sprintf("Interview round: %s\n", cfg.Round))
	if cfg.Round == interview.RoundTechnical && cfg.TechStack != "" {
		b.WriteString(fmt.Sprintf("Tech Stack: %s\n", cfg.TechStack))
	}
	b.WriteString(fmt.Sprintf("Evaluation criteria: %s\n", cfg.Criteria))

	return b.String()
}

// Greeting строит промпт приветствия и первого вопроса.
// Используется только при входе в интервью с пустым транскриптом.
func Greeting(profile string) string {
	var b strings.Builder

	b.WriteString(profile)
	b.WriteString("\n\nStart the mock interview with:\n")
	b.WriteString("- A brief professional greeting **using your own name** from the profile (or invent one). **Do not write \"[Interviewer's Name]\".**\n")
	b.WriteString("- The first tailored question.\n")

	return b.String()
}

// FollowUp строит промпт продолжения интервью по накопленному транскрипту.
// Ответ модели обязан следовать двухстрочному контракту EVALUATION:/QUESTION:.
func FollowUp(profile string, turns []interview.Turn) string {
	var b strings.Builder

	b.WriteString(profile)
	b.WriteString("\n\nContinue the interview.\n\n")
	b.WriteString("Provide exactly two lines:\n")
	b.WriteString("EVALUATION: <brief feedback>\n")
	b.WriteString("QUESTION: <specific follow-up question>\n\n")
	b.WriteString("Conversation so far:\n")
	for _, t := range turns {
		b.WriteString(fmt.Sprintf("%s: %s\n", t.Speaker, t.Text))
	}

	return b.String()
}

// Report строит промпт итогового отчёта по полному транскрипту с оценками
func Report(profile string, turns []interview.Turn) string {
	var b strings.Builder

	b.WriteString("Role: interview evaluator. Write a detailed markdown report (summary, assessments, recommendations).\n\n")
	b.WriteString("Profile:\n")
	b.WriteString(profile)
	b.WriteString("\n\nConversation:\n")
	for _, t := range turns {
		b.WriteString(fmt.Sprintf("%s: %s", capitalize(string(t.Speaker)), t.Text))
		if t.Evaluation != "" {
			b.WriteString(fmt.Sprintf("  [Eval: %s]", t.Evaluation))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
