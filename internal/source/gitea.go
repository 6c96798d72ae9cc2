package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"code.gitea.io/sdk/gitea"

	"github.com/codexup/codexup/internal/logging"
)

// GiteaConfig is an object to pass to NewGiteaSource
type GiteaConfig struct {
	// APIToken represents Gitea API token. If it's not empty, it will be used for authentication for the API
	APIToken string
	// BaseURL is a base URL of your gitea instance. This parameter has NO default value.
	BaseURL string
}

// GiteaSource is used to load release information from Gitea
type GiteaSource struct {
	api   *gitea.Client
	token string
}

// NewGiteaSource creates a new GiteaSource from a config object.
// It initializes a Gitea API Client.
// If you set your API token to the $GITEA_TOKEN environment variable, the client will use it.
func NewGiteaSource(config GiteaConfig) (*GiteaSource, error) {
	token := config.APIToken
	if token == "" {
		// try the environment variable
		token = os.Getenv("GITEA_TOKEN")
	}
	if config.BaseURL == "" {
		return nil, fmt.Errorf("gitea base url must be set")
	}

	client, err := gitea.NewClient(config.BaseURL, gitea.SetToken(token))
	if err != nil {
		return nil, fmt.Errorf("error connecting to gitea: %w", err)
	}

	return &GiteaSource{
		api:   client,
		token: token,
	}, nil
}

// ListReleases returns all available releases
func (s *GiteaSource) ListReleases(ctx context.Context, repository Repository) ([]Release, error) {
	owner, repo, err := repository.GetSlug()
	if err != nil {
		return nil, err
	}

	s.api.SetContext(ctx)
	rels, res, err := s.api.ListReleases(owner, repo, gitea.ListReleasesOptions{})
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
		releases[i] = NewGiteaRelease(rel)
	}
	return releases, nil
}

// DownloadReleaseAsset downloads an asset from its ID.
// It returns an io.ReadCloser: it is the caller's responsibility to Close it.
func (s *GiteaSource) DownloadReleaseAsset(ctx context.Context, repository Repository, releaseID int64, asset Asset) (io.ReadCloser, error) {
	if asset == nil {
		return nil, ErrAssetNotFound
	}
	owner, repo, err := repository.GetSlug()
	if err != nil {
		return nil, err
	}
	s.api.SetContext(ctx)
	attachment, _, err := s.api.GetReleaseAttachment(owner, repo, releaseID, asset.GetID())
	if err != nil {
		return nil, fmt.Errorf("failed to call Gitea Releases API for getting the asset ID %d on repository '%s/%s': %w", asset.GetID(), owner, repo, err)
	}

	header := http.Header{}
	if s.token != "" {
		header.Set("Authorization", "token "+s.token)
	}
	response, err := DownloadURL(ctx, attachment.DownloadURL, header)
	if err != nil {
		return nil, err
	}
	return response.Body, nil
}

// Verify interface
var _ Source = &GiteaSource{}
