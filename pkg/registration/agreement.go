package registration

import "strings"

// ReferenceAgreement is the official course agreement. Students copy it into
// the agreement field of their registration file; the comparison is exact
// after Normalize on both sides.
const ReferenceAgreement = `Я подтверждаю следующее:
1. Я не буду списывать решения у других участников курса.
2. При использовании больших языковых моделей (LLM) или других генеративных ИИ-инструментов
   для выполнения домашних заданий я обязуюсь полностью понимать присланный код и быть
   готовым пояснить, как он работает, почему используется та или иная конструкция,
   а также внести в него изменения по запросу преподавателя.

Нарушение этих правил может повлечь за собой исключение из курса или
аннулирование результатов.
`

// Normalize trims the whole text, converts CR and CRLF line breaks to LF,
// strips trailing whitespace from every line and rejoins with \n, so
// editor-introduced line-ending and trailing-space noise does not fail the
// agreement comparison.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
