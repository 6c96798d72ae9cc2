package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/xanzy/go-gitlab"

	"github.com/codexup/codexup/internal/logging"
)

// GitLabConfig is an object to pass to NewGitLabSource
type GitLabConfig struct {
	// APIToken represents GitLab API token. If it's not empty, it will be used for authentication for the API
	APIToken string
	// BaseURL is a base URL of your private GitLab instance
	BaseURL string
}

// GitLabSource is used to load release information from GitLab
type GitLabSource struct {
	api   *gitlab.Client
	token string
}

// NewGitLabSource creates a new GitLabSource from a config object.
// It initializes a GitLab API client.
// If you set your API token to the $GITLAB_TOKEN environment variable, the client will use it.
func NewGitLabSource(config GitLabConfig) (*GitLabSource, error) {
	token := config.APIToken
	if token == "" {
		// try the environment variable
		token = os.Getenv("GITLAB_TOKEN")
	}
	options := make([]gitlab.ClientOptionFunc, 0, 1)
	if config.BaseURL != "" {
		options = append(options, gitlab.WithBaseURL(config.BaseURL))
	}
	client, err := gitlab.NewClient(token, options...)
	if err != nil {
		return nil, fmt.Errorf("cannot create GitLab client: %w", err)
	}
	return &GitLabSource{
		api:   client,
		token: token,
	}, nil
}

// ListReleases returns all available releases
func (s *GitLabSource) ListReleases(ctx context.Context, repository Repository) ([]Release, error) {
	pid, err := repository.Get()
	if err != nil {
		return nil, err
	}

	rels, res, err := s.api.Releases.ListReleases(pid, nil, gitlab.WithContext(ctx))
	if err != nil {
		logging.Printf("API returned an error response: %s", err)
		if res != nil && res.StatusCode == http.StatusTooManyRequests {
			return nil, fmt.Errorf("%w: %v", ErrRateLimited, err)
		}
		if res != nil && res.StatusCode == http.StatusNotFound {
			// 404 means repository not found or release not found. It's not an error here.
			logging.Print("API returned 404. Repository or release not found")
			return nil, nil
		}
		return nil, err
	}
	releases := make([]Release, len(rels))
	for i, rel := range rels {
		releases[i] = NewGitLabRelease(rel)
	}
	return releases, nil
}

// DownloadReleaseAsset downloads an asset from its direct link.
// It returns an io.ReadCloser: it is the caller's responsibility to Close it.
func (s *GitLabSource) DownloadReleaseAsset(ctx context.Context, repository Repository, releaseID int64, asset Asset) (io.ReadCloser, error) {
	if asset == nil {
		return nil, ErrAssetNotFound
	}
	downloadURL := asset.GetBrowserDownloadURL()
	if downloadURL == "" {
		return nil, fmt.Errorf("asset ID %d: %w", asset.GetID(), ErrAssetNotFound)
	}

	header := http.Header{}
	if s.token != "" {
		header.Set("PRIVATE-TOKEN", s.token)
	}
	response, err := DownloadURL(ctx, downloadURL, header)
	if err != nil {
		return nil, err
	}
	return response.Body, nil
}

// Verify interface
var _ Source = &GitLabSource{}
