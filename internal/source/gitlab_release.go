package source

import (
	"time"

	"github.com/xanzy/go-gitlab"
)

// GitLabRelease wraps a release record returned by the GitLab API.
// GitLab has no draft or prerelease flag on releases: prerelease detection
// relies on the version suffix instead.
type GitLabRelease struct {
	name        string
	tagName     string
	url         string
	publishedAt time.Time
	description string
	assets      []Asset
}

func NewGitLabRelease(from *gitlab.Release) *GitLabRelease {
	release := &GitLabRelease{
		name:        from.Name,
		tagName:     from.TagName,
		description: from.Description,
		assets:      make([]Asset, len(from.Assets.Links)),
	}
	if from.Commit.WebURL != "" {
		release.url = from.Commit.WebURL
	}
	if from.ReleasedAt != nil {
		release.publishedAt = *from.ReleasedAt
	}
	for i, fromLink := range from.Assets.Links {
		release.assets[i] = NewGitLabAsset(fromLink)
	}
	return release
}

func (r *GitLabRelease) GetID() int64 {
	return 0
}

func (r *GitLabRelease) GetTagName() string {
	return r.tagName
}

func (r *GitLabRelease) GetDraft() bool {
	return false
}

func (r *GitLabRelease) GetPrerelease() bool {
	return false
}

func (r *GitLabRelease) GetPublishedAt() time.Time {
	return r.publishedAt
}

func (r *GitLabRelease) GetReleaseNotes() string {
	return r.description
}

func (r *GitLabRelease) GetName() string {
	return r.name
}

func (r *GitLabRelease) GetURL() string {
	return r.url
}

func (r *GitLabRelease) GetAssets() []Asset {
	return r.assets
}

// GitLabAsset wraps a release asset link returned by the GitLab API.
type GitLabAsset struct {
	id   int64
	name string
	url  string
}

func NewGitLabAsset(from *gitlab.ReleaseLink) *GitLabAsset {
	return &GitLabAsset{
		id:   int64(from.ID),
		name: from.Name,
		url:  from.URL,
	}
}

func (a *GitLabAsset) GetID() int64 {
	return a.id
}

func (a *GitLabAsset) GetName() string {
	return a.name
}

// GetSize is always zero: GitLab does not report the size of linked assets.
func (a *GitLabAsset) GetSize() int {
	return 0
}

func (a *GitLabAsset) GetBrowserDownloadURL() string {
	return a.url
}

// Verify interface
var (
	_ Release = &GitLabRelease{}
	_ Asset   = &GitLabAsset{}
)
