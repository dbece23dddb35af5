package interview

import "fmt"

// Round представляет тип раунда интервью
type Round string

const (
	RoundTechnical  Round = "Technical"
	RoundBehavioral Round = "Behavioral"
	RoundHRCultural Round = "HR / Cultural Fit"
	RoundCaseStudy  Round = "Case Study"
)

// Rounds перечисляет допустимые раунды в порядке показа пользователю
var Rounds = []Round{RoundTechnical, RoundBehavioral, RoundHRCultural, RoundCaseStudy}

// ParseRound проверяет строку и возвращает соответствующий раунд
func ParseRound(s string) (Round, error) {
	for _, r := range Rounds {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("неизвестный раунд интервью: %q", s)
}

// Config описывает вакансию, под которую проводится mock-интервью.
// Неизменяем после генерации профиля; меняется только возвратом в Setup.
type Config struct {
	CompanyName string `json:"company_name"`
	JobTitle    string `json:"job_title"`
	CompanyDesc string `json:"company_desc"`
	JobDesc     string `json:"job_desc"`
	Round       Round  `json:"round"`
	TechStack   string `json:"tech_stack,omitempty"`
	Criteria    string `json:"criteria"`
}

// Validate проверяет заполненность конфигурации перед генерацией профиля
func (c *Config) Validate() error {
	if c.CompanyName == "" {
		return fmt.Errorf("company_name не заполнено")
	}
	if c.JobTitle == "" {
		return fmt.Errorf("job_title не заполнено")
	}
	if _, err := ParseRound(string(c.Round)); err != nil {
		return err
	}
	return nil
}

// Normalize очищает tech_stack для нетехнических раундов
func (c *Config) Normalize() {
	if c.Round != RoundTechnical {
		c.TechStack = ""
	}
}

// Speaker обозначает сторону диалога
type Speaker string

const (
	SpeakerInterviewer Speaker = "interviewer"
	SpeakerCandidate   Speaker = "candidate"
)

// Turn представляет одну реплику транскрипта.
// Evaluation заполняется только у реплик кандидата, и только при обработке
// следующей реплики интервьюера.
type Turn struct {
	Speaker    Speaker `json:"speaker"`
	Text       string  `json:"text"`
	Evaluation string  `json:"evaluation,omitempty"`
}

