package checks

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"acceptance-gate/pkg/finding"
	"acceptance-gate/pkg/gitdiff"
	"acceptance-gate/pkg/registration"
)

// Check is one rule of the gate. Run reports whether the check actually ran;
// a check may decline when an earlier check did not produce its input.
type Check interface {
	ID() string
	Run(ctx context.Context, s *State) bool
}

// BranchCheck requires the PR branch to be named <author><suffix>.
type BranchCheck struct{}

func (BranchCheck) ID() string { return "branch-name" }

func (BranchCheck) Run(_ context.Context, s *State) bool {
	expected := s.Course.ExpectedBranch(s.Ctx.Author)
	if s.Ctx.Branch != expected {
		s.Fail(finding.New(finding.CodeBranchName,
			"Неверное имя ветки.\n    Ожидается: '%s'\n    Получено:  '%s'", expected, s.Ctx.Branch).
			WithExpected(expected).WithGot(s.Ctx.Branch))
		return true
	}
	s.Passf("Ветка имеет корректное имя: %s", s.Ctx.Branch)
	return true
}

// TitleCheck requires the PR title to be <prefix><author>.
type TitleCheck struct{}

func (TitleCheck) ID() string { return "pr-title" }

func (TitleCheck) Run(_ context.Context, s *State) bool {
	expected := s.Course.ExpectedTitle(s.Ctx.Author)
	if s.Ctx.Title != expected {
		s.Fail(finding.New(finding.CodeTitleFormat,
			"Неверный заголовок pull request.\n    Ожидается: '%s'\n    Получено:  '%s'", expected, s.Ctx.Title).
			WithExpected(expected).WithGot(s.Ctx.Title))
		return true
	}
	s.Passf("Заголовок PR корректный: %s", s.Ctx.Title)
	return true
}

// FileCheck requires the author's registration file to exist and parse; on
// success the parsed file lands in the state for ContentCheck.
type FileCheck struct{}

func (FileCheck) ID() string { return "registration-file" }

func (FileCheck) Run(_ context.Context, s *State) bool {
	rel := s.Course.RegistrationPath(s.Ctx.Author)
	data, err := os.ReadFile(filepath.Join(s.Root, filepath.FromSlash(rel)))
	if errors.Is(err, fs.ErrNotExist) {
		s.Fail(finding.New(finding.CodeFileMissing,
			"Файл не найден.\n    Ожидаемый путь: '%s'", rel).
			WithExpected(rel).
			WithSuggestion("Убедитесь, что файл создан в правильной папке и имеет правильное имя."))
		return true
	}
	s.Passf("Файл найден: %s", rel)
	if err != nil {
		s.Fail(finding.New(finding.CodeFileUnreadable, "Ошибка с YAML-файлом.\n    %v", err))
		return true
	}
	f, err := registration.Parse(rel, data)
	if err != nil {
		s.Fail(finding.New(finding.CodeYAMLSyntax, "Ошибка с YAML-файлом.\n    %v", err))
		return true
	}
	s.File = f
	return true
}

// ContentCheck applies the registration content rules. It runs only when
// FileCheck produced a parsed file.
type ContentCheck struct{}

func (ContentCheck) ID() string { return "registration-content" }

func (ContentCheck) Run(_ context.Context, s *State) bool {
	if s.File == nil {
		return false
	}
	res := registration.ValidateContent(s.File, s.Ctx.Author, s.Course.RegistrationsDir)
	for _, line := range res.Passed {
		fmt.Fprintf(s.Out, "....%s\n", line)
	}
	s.Result.Merge(res)
	return true
}

// ChangedFilesCheck requires the PR to add exactly one file: the author's
// registration file.
type ChangedFilesCheck struct {
	Differ *gitdiff.Differ
}

func (c *ChangedFilesCheck) ID() string { return "changed-files" }

func (c *ChangedFilesCheck) Run(ctx context.Context, s *State) bool {
	changes, err := c.Differ.Changes(ctx, s.Ctx.BaseSHA, s.Ctx.HeadSHA)
	if err != nil {
		s.Fail(finding.New(finding.CodeDiffFailed, "Ошибка git diff: %v", err))
		return true
	}
	if len(changes) != 1 {
		s.Fail(finding.New(finding.CodeDiffCount,
			"PR должен содержать ровно один изменённый файл.\n    Обнаружено изменений: %d", len(changes)))
		return true
	}

	change := changes[0]
	expected := s.Course.RegistrationPath(s.Ctx.Author)
	if change.Status != "A" {
		s.Fail(finding.New(finding.CodeDiffStatus,
			"Файл должен быть *добавлен*, а не изменён или удалён.\n    Получено: %s %s", change.Status, change.Path).
			WithExpected("A").WithGot(change.Status))
	}
	if change.Path != expected {
		s.Fail(finding.New(finding.CodeDiffPath,
			"Неверное имя файла.\n    Ожидается: %s\n    Получено:  %s", expected, change.Path).
			WithExpected(expected).WithGot(change.Path))
	} else {
		s.Passf("Добавлен корректный файл: %s", change.Path)
	}
	return true
}
