// Package runinfo describes the CI run that produced a case.
package runinfo

import (
	"os"
	"regexp"
	"strings"
)

var pullRefPattern = regexp.MustCompile(`^refs/pull/([0-9]+)/`)

// BasicInfo captures CI metadata attached to case summaries.
type BasicInfo struct {
	CI          bool   `json:"ci,omitempty"`
	Provider    string `json:"provider,omitempty"`
	Repository  string `json:"repository,omitempty"`
	Branch      string `json:"branch,omitempty"`
	Commit      string `json:"commit,omitempty"`
	RunID       string `json:"run_id,omitempty"`
	PullRequest string `json:"pull_request,omitempty"`
	BuildURL    string `json:"build_url,omitempty"`
}

// FromEnv reads run metadata from the environment. SIMGEN_RUN_* values
// win over provider variables. It returns nil outside of any CI run.
func FromEnv() *BasicInfo {
	info := BasicInfo{}
	if isTruthy(env("GITHUB_ACTIONS")) {
		info = BasicInfo{
			CI:          true,
			Provider:    "github_actions",
			Repository:  env("GITHUB_REPOSITORY"),
			Branch:      envFirst("GITHUB_HEAD_REF", "GITHUB_REF_NAME"),
			Commit:      env("GITHUB_SHA"),
			RunID:       env("GITHUB_RUN_ID"),
			PullRequest: pullRequestFromRef(env("GITHUB_REF")),
		}
		if info.Repository != "" && info.RunID != "" {
			server := envFirst("GITHUB_SERVER_URL")
			if server == "" {
				server = "https://github.com"
			}
			info.BuildURL = strings.TrimRight(server, "/") + "/" + info.Repository + "/actions/runs/" + info.RunID
		}
	} else if isTruthy(env("CI")) {
		info.CI = true
		info.Provider = "generic"
	}
	setIfEmpty(&info.Branch, envFirst("CI_COMMIT_REF_NAME", "BRANCH_NAME", "GIT_BRANCH"))
	setIfEmpty(&info.Commit, envFirst("CI_COMMIT_SHA", "GIT_COMMIT"))
	setIfEmpty(&info.BuildURL, envFirst("CI_JOB_URL", "BUILD_URL"))

	overrides := map[string]*string{
		"SIMGEN_RUN_PROVIDER":   &info.Provider,
		"SIMGEN_RUN_REPOSITORY": &info.Repository,
		"SIMGEN_RUN_BRANCH":     &info.Branch,
		"SIMGEN_RUN_COMMIT":     &info.Commit,
		"SIMGEN_RUN_ID":         &info.RunID,
		"SIMGEN_RUN_BUILD_URL":  &info.BuildURL,
	}
	for key, dst := range overrides {
		if v := env(key); v != "" {
			*dst = v
			info.CI = true
		}
	}
	info.Branch = strings.TrimPrefix(strings.TrimPrefix(info.Branch, "refs/heads/"), "origin/")
	if !info.CI {
		return nil
	}
	if info.Provider == "" {
		info.Provider = "generic"
	}
	return &info
}

func pullRequestFromRef(ref string) string {
	if m := pullRefPattern.FindStringSubmatch(ref); len(m) > 1 {
		return m[1]
	}
	return ""
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envFirst(keys ...string) string {
	for _, key := range keys {
		if value := env(key); value != "" {
			return value
		}
	}
	return ""
}

func setIfEmpty(dst *string, value string) {
	if *dst == "" {
		*dst = value
	}
}

func isTruthy(raw string) bool {
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
