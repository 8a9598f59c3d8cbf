package registration

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"acceptance-gate/pkg/finding"
)

// ValidateContent applies the content rules to a parsed file. author is the
// PR author's GitHub username (the reference value for github_username), dir
// is the registrations directory named in the agreement hint. Rules run in a
// fixed order and never abort each other; each satisfied rule contributes its
// confirmation line to Result.Passed.
func ValidateContent(f *File, author, dir string) *finding.Result {
	res := finding.NewResult()

	if f.Raw == nil {
		res.Add(finding.New(finding.CodeEmptyDocument,
			"Файл '%s' пустой или содержит только комментарии", f.Path))
		return res
	}

	for _, field := range requiredFields {
		if !f.Has(field) {
			res.Add(finding.New(finding.CodeFieldMissing,
				"В файле отсутствует обязательное поле: '%s'", field).
				WithField(field))
		}
	}

	if f.Has("github_username") {
		v := f.Raw["github_username"]
		s, ok := nonEmptyString(v)
		switch {
		case !ok:
			res.Add(finding.New(finding.CodeFieldValue,
				"Поле 'github_username' должно быть непустой строкой").
				WithField("github_username"))
		case s != author:
			res.Add(finding.New(finding.CodeFieldValue,
				"Несоответствие github_username.\n    Указано: '%s'\n    Ожидается: '%s' (ваш GitHub username)", s, author).
				WithField("github_username").WithExpected(author).WithGot(s))
		default:
			res.Passf("github_username совпадает с логином автора PR: %s", author)
		}
	}

	if f.Has("first_name") {
		if s, ok := nonEmptyString(f.Raw["first_name"]); !ok {
			res.Add(finding.New(finding.CodeFieldValue,
				"Поле 'first_name' должно быть непустой строкой с именем").
				WithField("first_name"))
		} else {
			res.Passf("Имя указано: %s", s)
		}
	}

	if f.Has("last_name") {
		if s, ok := nonEmptyString(f.Raw["last_name"]); !ok {
			res.Add(finding.New(finding.CodeFieldValue,
				"Поле 'last_name' должно быть непустой строкой с фамилией").
				WithField("last_name"))
		} else {
			res.Passf("Фамилия указана: %s", s)
		}
	}

	if f.Has("repo") {
		v := f.Raw["repo"]
		switch {
		case isNone(v):
			res.Passf("Выбран формат сдачи: проект (repo=None)")
		case isRepoURL(v):
			res.Passf("Указан репозиторий для домашних заданий: %s", strings.TrimSpace(v.(string)))
		default:
			res.Add(finding.New(finding.CodeFieldValue,
				"Поле 'repo' должно быть строкой 'None' или валидным URL (начинающимся с http:// или https://).\n    Получено: '%s' (тип: %s)",
				display(v), typeName(v)).
				WithField("repo").WithGot(display(v)))
		}
	}

	if f.Has("grading") {
		v := f.Raw["grading"]
		if v != GradingHomeworks && v != GradingProject {
			res.Add(finding.New(finding.CodeFieldValue,
				"Поле 'grading' должно быть 'homeworks' или 'project'.\n    Получено: '%s'", display(v)).
				WithField("grading").WithExpected("homeworks | project").WithGot(display(v)))
		} else {
			res.Passf("Формат сдачи: %s", v)
		}
	}

	if f.Has("grading") && f.Has("repo") {
		grading, repo := f.Raw["grading"], f.Raw["repo"]
		if grading == GradingProject && !isNone(repo) {
			res.Add(finding.New(finding.CodeFieldValue,
				"При grading: project поле repo должно быть 'None'.").
				WithField("repo"))
		}
		if grading == GradingHomeworks {
			// The track rule matches the raw string: leading whitespace
			// before the scheme fails it.
			if s, ok := repo.(string); !ok || !hasURLScheme(s) {
				res.Add(finding.New(finding.CodeFieldValue,
					"При grading: homeworks поле repo должно содержать URL репозитория.").
					WithField("repo"))
			}
		}
	}

	if f.Has("agreement") {
		s, ok := nonEmptyString(f.Raw["agreement"])
		switch {
		case !ok:
			res.Add(finding.New(finding.CodeFieldValue,
				"Поле 'agreement' должно содержать текст соглашения").
				WithField("agreement"))
		case Normalize(s) != Normalize(ReferenceAgreement):
			res.Add(finding.New(finding.CodeAgreement,
				"Текст соглашения не совпадает с официальным текстом курса.").
				WithField("agreement").
				WithSuggestion(fmt.Sprintf("Скопируйте текст соглашения дословно из файла README.md в папке %s/", dir)))
		default:
			res.Passf("Текст соглашения совпадает с официальным текстом курса")
		}
	}

	if f.Has("agree_to_rules") {
		v := f.Raw["agree_to_rules"]
		// YAML 1.1 reads a bare `yes` as boolean true, a quoted "yes" stays
		// a string; both count as consent.
		if v != "yes" && v != true {
			res.Add(finding.New(finding.CodeRules,
				"Поле 'agree_to_rules' должно содержать значение 'yes'.\n    Получено: '%s'", display(v)).
				WithField("agree_to_rules").WithExpected("yes").WithGot(display(v)))
		} else {
			res.Passf("Согласие с правилами подтверждено (agree_to_rules: yes)")
		}
	}

	return res
}

// nonEmptyString reports whether v is a string with non-whitespace content
// and returns it unmodified.
func nonEmptyString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

// isNone matches the project-track spellings of "no repository": YAML null
// or the literal string None.
func isNone(v any) bool {
	return v == nil || v == "None"
}

func isRepoURL(v any) bool {
	s, ok := v.(string)
	return ok && hasURLScheme(strings.TrimSpace(s))
}

func hasURLScheme(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// display renders a decoded YAML value inside a student-facing message.
func display(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		// YAML integers decode to float64; echo them the way the student
		// wrote them, without exponent notation.
		if t == math.Trunc(t) && math.Abs(t) < 1e15 {
			return strconv.FormatFloat(t, 'f', -1, 64)
		}
		return strconv.FormatFloat(t, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// typeName names a decoded YAML value's type in YAML terms.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	case float64:
		return "number"
	case map[string]any:
		return "mapping"
	case []any:
		return "sequence"
	default:
		return fmt.Sprintf("%T", v)
	}
}
