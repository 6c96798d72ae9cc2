package source

import (
	"fmt"
	"strings"
)

// New builds a Source from a registry kind name (github, gitea or gitlab)
// and an optional base URL for self-hosted instances. An empty kind picks
// the registry from the base URL, defaulting to GitHub.
func New(kind, baseURL string) (Source, error) {
	switch strings.ToLower(kind) {
	case "gitea":
		return NewGiteaSource(GiteaConfig{BaseURL: baseURL})

	case "gitlab":
		return NewGitLabSource(GitLabConfig{BaseURL: baseURL})

	case "github":
		return newGitHubSource(baseURL)

	case "", "auto":
		return newSourceFromURL(baseURL)

	default:
		return nil, fmt.Errorf("unknown release source %q", kind)
	}
}

func newSourceFromURL(baseURL string) (Source, error) {
	if strings.Contains(baseURL, "gitea") {
		return NewGiteaSource(GiteaConfig{BaseURL: baseURL})
	}
	if strings.Contains(baseURL, "gitlab") {
		return NewGitLabSource(GitLabConfig{BaseURL: baseURL})
	}
	return newGitHubSource(baseURL)
}

func newGitHubSource(baseURL string) (*GitHubSource, error) {
	config := GitHubConfig{}
	if baseURL != "" && !strings.HasSuffix(baseURL, "://github.com") {
		config.EnterpriseBaseURL = baseURL
	}
	return NewGitHubSource(config)
}
