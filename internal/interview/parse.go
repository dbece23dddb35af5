package interview

import "strings"

// Метки двухстрочного формата ответа интервьюера
const (
	labelEvaluation = "EVALUATION:"
	labelQuestion   = "QUESTION:"
)

// ParseFollowUp разбирает ответ модели в формате
//
//	EVALUATION: <оценка>
//	QUESTION: <вопрос>
//
// Если метка QUESTION: отсутствует, весь ответ считается вопросом, а оценка
// остаётся пустой. Это штатная деградация формата, не ошибка.
func ParseFollowUp(resp string) (evaluation, question string) {
	resp = strings.TrimSpace(resp)

	before, after, found := strings.Cut(resp, labelQuestion)
	if !found {
		return "", resp
	}

	evaluation = strings.TrimSpace(strings.Replace(before, labelEvaluation, "", 1))
	question = strings.TrimSpace(after)
	return evaluation, question
}
