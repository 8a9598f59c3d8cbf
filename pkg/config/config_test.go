package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setFullContext(t *testing.T) {
	t.Helper()
	t.Setenv("PR_AUTHOR", "octocat")
	t.Setenv("PR_TITLE", "acceptance-orch2025-octocat")
	t.Setenv("PR_HEAD_REF", "octocat_accept")
	t.Setenv("BASE_SHA", "1111111")
	t.Setenv("HEAD_SHA", "2222222")
}

func TestFromEnv_ReadsAndTrims(t *testing.T) {
	t.Setenv("PR_AUTHOR", "  octocat \n")
	t.Setenv("PR_TITLE", "\tacceptance-orch2025-octocat ")
	t.Setenv("PR_HEAD_REF", "octocat_accept")
	t.Setenv("BASE_SHA", " 1111111")
	t.Setenv("HEAD_SHA", "2222222 ")

	ctx := FromEnv()

	assert.Equal(t, "octocat", ctx.Author)
	assert.Equal(t, "acceptance-orch2025-octocat", ctx.Title)
	assert.Equal(t, "octocat_accept", ctx.Branch)
	assert.Equal(t, "1111111", ctx.BaseSHA)
	assert.Equal(t, "2222222", ctx.HeadSHA)
}

func TestContext_MissingEmpty(t *testing.T) {
	setFullContext(t)

	ctx := FromEnv()
	assert.Nil(t, ctx.Missing())
}

func TestContext_MissingListsEnvKeysInOrder(t *testing.T) {
	setFullContext(t)
	t.Setenv("PR_AUTHOR", "")
	t.Setenv("HEAD_SHA", "   ")

	ctx := FromEnv()

	assert.Equal(t, []string{"PR_AUTHOR", "HEAD_SHA"}, ctx.Missing())
}

func TestContext_EmptyTitleAndBranchAreAllowed(t *testing.T) {
	setFullContext(t)
	t.Setenv("PR_TITLE", "")
	t.Setenv("PR_HEAD_REF", "")

	ctx := FromEnv()

	assert.Nil(t, ctx.Missing())
}

func TestLoadEnvFile_Explicit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gate.env")
	require.NoError(t, os.WriteFile(path, []byte("GATE_TEST_ONLY_VAR=from-file\n"), 0644))
	t.Setenv("GATE_TEST_ONLY_VAR", "")
	os.Unsetenv("GATE_TEST_ONLY_VAR")

	require.NoError(t, LoadEnvFile(path))

	assert.Equal(t, "from-file", os.Getenv("GATE_TEST_ONLY_VAR"))
}

func TestLoadEnvFile_ExplicitMissingFails(t *testing.T) {
	err := LoadEnvFile(filepath.Join(t.TempDir(), "absent.env"))
	assert.Error(t, err)
}

func TestLoadEnvFile_NoImplicitFileIsFine(t *testing.T) {
	assert.NoError(t, LoadEnvFile(""))
}

func TestDefaultCourse(t *testing.T) {
	c := DefaultCourse()

	assert.Equal(t, "FBB Orchestration 2025", c.Name)
	assert.Equal(t, "accepts_2025", c.RegistrationsDir)
	assert.Equal(t, "octocat_accept", c.ExpectedBranch("octocat"))
	assert.Equal(t, "acceptance-orch2025-octocat", c.ExpectedTitle("octocat"))
	assert.Equal(t, "accepts_2025/octocat.yaml", c.RegistrationPath("octocat"))
}

func TestCourse_OverriddenRules(t *testing.T) {
	c := Course{
		Name:             "FBB Orchestration 2026",
		RegistrationsDir: "accepts_2026",
		BranchSuffix:     "_join",
		TitlePrefix:      "acceptance-orch2026-",
	}

	assert.Equal(t, "octocat_join", c.ExpectedBranch("octocat"))
	assert.Equal(t, "acceptance-orch2026-octocat", c.ExpectedTitle("octocat"))
	assert.Equal(t, "accepts_2026/octocat.yaml", c.RegistrationPath("octocat"))
}

func TestResolveRepoRoot(t *testing.T) {
	t.Setenv("GITHUB_WORKSPACE", "")

	assert.Equal(t, "/explicit", ResolveRepoRoot("/explicit"))
	assert.Equal(t, ".", ResolveRepoRoot(""))

	t.Setenv("GITHUB_WORKSPACE", "/workspace/checkout")
	assert.Equal(t, "/workspace/checkout", ResolveRepoRoot(""))
	assert.Equal(t, "/explicit", ResolveRepoRoot("/explicit"))
}
