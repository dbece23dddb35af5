package interview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFollowUp(t *testing.T) {
	tests := []struct {
		name           string
		resp           string
		wantEvaluation string
		wantQuestion   string
	}{
		{
			name:           "обе метки на месте",
			resp:           "EVALUATION: Good clarity\nQUESTION: Tell me about X",
			wantEvaluation: "Good clarity",
			wantQuestion:   "Tell me about X",
		},
		{
			name:           "метки отсутствуют — весь ответ становится вопросом",
			resp:           "Just a question?",
			wantEvaluation: "",
			wantQuestion:   "Just a question?",
		},
		{
			name:           "нет метки EVALUATION, но есть QUESTION",
			resp:           "Decent answer overall.\nQUESTION: What about edge cases?",
			wantEvaluation: "Decent answer overall.",
			wantQuestion:   "What about edge cases?",
		},
		{
			name:           "лишние пробелы и переводы строк",
			resp:           "  EVALUATION:   Solid reasoning  \n\nQUESTION:   How would you scale it?  \n",
			wantEvaluation: "Solid reasoning",
			wantQuestion:   "How would you scale it?",
		},
		{
			name:           "многострочный вопрос после метки",
			resp:           "EVALUATION: ok\nQUESTION: First part.\nSecond part.",
			wantEvaluation: "ok",
			wantQuestion:   "First part.\nSecond part.",
		},
		{
			name:           "пустой ответ",
			resp:           "",
			wantEvaluation: "",
			wantQuestion:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evaluation, question := ParseFollowUp(tt.resp)
			assert.Equal(t, tt.wantEvaluation, evaluation)
			assert.Equal(t, tt.wantQuestion, question)
		})
	}
}

func TestParseRound(t *testing.T) {
	for _, r := range Rounds {
		got, err := ParseRound(string(r))
		if err != nil {
			t.Fatalf("ParseRound(%q): %v", r, err)
		}
		if got != r {
			t.Errorf("ParseRound(%q) = %q", r, got)
		}
	}

	if _, err := ParseRound("System Design"); err == nil {
		t.Error("ожидалась ошибка для неизвестного раунда")
	}
	if _, err := ParseRound(""); err == nil {
		t.Error("ожидалась ошибка для пустого раунда")
	}
}

func TestConfigNormalize(t *testing.T) {
	cfg := Config{Round: RoundBehavioral, TechStack: "Go, Postgres"}
	cfg.Normalize()
	assert.Empty(t, cfg.TechStack, "tech_stack должен очищаться для нетехнических раундов")

	cfg = Config{Round: RoundTechnical, TechStack: "Go, Postgres"}
	cfg.Normalize()
	assert.Equal(t, "Go, Postgres", cfg.TechStack)
}

func TestConfigValidate(t *testing.T) {
	valid := Config{
		CompanyName: "Tech Corp",
		JobTitle:    "Senior Go Developer",
		Round:       RoundTechnical,
		Criteria:    "depth",
	}
	assert.NoError(t, valid.Validate())

	missingCompany := valid
	missingCompany.CompanyName = ""
	assert.Error(t, missingCompany.Validate())

	missingTitle := valid
	missingTitle.JobTitle = ""
	assert.Error(t, missingTitle.Validate())

	badRound := valid
	badRound.Round = "Trivia"
	assert.Error(t, badRound.Validate())
}
