package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"mock-interview-coach/internal/interview"
)

func techConfig() interview.Config {
	return interview.Config{
		CompanyName: "Tech Corp",
		JobTitle:    "Senior Full-Stack Developer",
		CompanyDesc: "A product-led SaaS scale-up.",
		JobDesc:     "Own the end-to-end SDLC.",
		Round:       interview.RoundTechnical,
		TechStack:   "Go, TypeScript, AWS",
		Criteria:    "System-design depth.",
	}
}

func TestProfile_TechnicalRound(t *testing.T) {
	got := Profile(techConfig())

	assert.Contains(t, got, "never use placeholders")
	assert.Contains(t, got, "Company: Tech Corp")
	assert.Contains(t, got, "Job title: Senior Full-Stack Developer")
	assert.Contains(t, got, "Interview round: Technical")
	assert.Contains(t, got, "Tech Stack: Go, TypeScript, AWS")
	assert.Contains(t, got, "Evaluation criteria: System-design depth.")
}

func TestProfile_NoTechStackLineForNonTechnicalRounds(t *testing.T) {
	for _, round := range interview.Rounds {
		if round == interview.RoundTechnical {
			continue
		}
		cfg := techConfig()
		cfg.Round = round
		// даже если стек остался в конфигурации, строка не попадает в промпт
		cfg.TechStack = "Go, TypeScript"

		got := Profile(cfg)
		assert.NotContains(t, got, "Tech Stack:", "раунд %s не должен содержать строку стека", round)
	}
}

func TestProfile_Deterministic(t *testing.T) {
	cfg := techConfig()
	assert.Equal(t, Profile(cfg), Profile(cfg))
}

func TestGreeting(t *testing.T) {
	got := Greeting("## Jordan Lee – Staff Engineer")

	assert.True(t, strings.HasPrefix(got, "## Jordan Lee – Staff Engineer"), "промпт начинается с профиля")
	assert.Contains(t, got, "Start the mock interview")
	assert.Contains(t, got, "using your own name")
	assert.Contains(t, got, "The first tailored question.")
}

func TestFollowUp(t *testing.T) {
	turns := []interview.Turn{
		{Speaker: interview.SpeakerInterviewer, Text: "Hi, I'm Jordan. Tell me about yourself."},
		{Speaker: interview.SpeakerCandidate, Text: "I build backend services in Go."},
	}

	got := FollowUp("profile-md", turns)

	assert.Contains(t, got, "EVALUATION: <brief feedback>")
	assert.Contains(t, got, "QUESTION: <specific follow-up question>")
	assert.Contains(t, got, "interviewer: Hi, I'm Jordan. Tell me about yourself.")
	assert.Contains(t, got, "candidate: I build backend services in Go.")
}

func TestReport_IncludesEvaluations(t *testing.T) {
	turns := []interview.Turn{
		{Speaker: interview.SpeakerInterviewer, Text: "Question one?"},
		{Speaker: interview.SpeakerCandidate, Text: "Answer one.", Evaluation: "Clear and focused"},
		{Speaker: interview.SpeakerInterviewer, Text: "Question two?"},
	}

	got := Report("profile-md", turns)

	assert.Contains(t, got, "interview evaluator")
	assert.Contains(t, got, "Profile:\nprofile-md")
	assert.Contains(t, got, "Interviewer: Question one?")
	assert.Contains(t, got, "Candidate: Answer one.  [Eval: Clear and focused]")
}

func TestReport_NoEvalMarkerWithoutEvaluation(t *testing.T) {
	turns := []interview.Turn{
		{Speaker: interview.SpeakerCandidate, Text: "Answer."},
	}
	got := Report("p", turns)
	assert.NotContains(t, got, "[Eval:")
}
