package runinfo

import "testing"

var knownEnv = []string{
	"GITHUB_ACTIONS", "GITHUB_REPOSITORY", "GITHUB_HEAD_REF", "GITHUB_REF_NAME", "GITHUB_SHA",
	"GITHUB_RUN_ID", "GITHUB_REF", "GITHUB_SERVER_URL", "CI", "CI_COMMIT_REF_NAME", "BRANCH_NAME",
	"GIT_BRANCH", "CI_COMMIT_SHA", "GIT_COMMIT", "CI_JOB_URL", "BUILD_URL",
	"SIMGEN_RUN_PROVIDER", "SIMGEN_RUN_REPOSITORY", "SIMGEN_RUN_BRANCH", "SIMGEN_RUN_COMMIT",
	"SIMGEN_RUN_ID", "SIMGEN_RUN_BUILD_URL",
}

func clearKnownEnv(t *testing.T) {
	t.Helper()
	for _, key := range knownEnv {
		t.Setenv(key, "")
	}
}

func TestFromEnvOutsideCI(t *testing.T) {
	clearKnownEnv(t)
	if info := FromEnv(); info != nil {
		t.Fatalf("expected nil info, got %+v", info)
	}
}

func TestFromEnvGitHubActions(t *testing.T) {
	clearKnownEnv(t)
	t.Setenv("GITHUB_ACTIONS", "true")
	t.Setenv("GITHUB_REPOSITORY", "acme/simgen")
	t.Setenv("GITHUB_HEAD_REF", "feature/bounds")
	t.Setenv("GITHUB_REF", "refs/pull/12/merge")
	t.Setenv("GITHUB_SHA", "deadbeef")
	t.Setenv("GITHUB_RUN_ID", "99")

	info := FromEnv()
	if info == nil || !info.CI || info.Provider != "github_actions" {
		t.Fatalf("unexpected info %+v", info)
	}
	if info.PullRequest != "12" || info.Branch != "feature/bounds" {
		t.Fatalf("unexpected pr/branch %+v", info)
	}
	if info.BuildURL != "https://github.com/acme/simgen/actions/runs/99" {
		t.Fatalf("build_url=%q", info.BuildURL)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	clearKnownEnv(t)
	t.Setenv("GIT_BRANCH", "origin/main")
	t.Setenv("SIMGEN_RUN_COMMIT", "abc123")
	t.Setenv("SIMGEN_RUN_ID", "nightly-7")

	info := FromEnv()
	if info == nil || !info.CI {
		t.Fatalf("expected ci info, got %+v", info)
	}
	if info.Provider != "generic" || info.Branch != "main" || info.Commit != "abc123" || info.RunID != "nightly-7" {
		t.Fatalf("unexpected info %+v", info)
	}
}
