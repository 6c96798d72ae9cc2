// Package source loads release information of the target CLI from a remote
// registry: GitHub, Gitea or GitLab.
package source

import (
	"context"
	"io"
	"time"
)

// Release is one release record as returned by the registry.
type Release interface {
	GetID() int64
	GetTagName() string
	GetDraft() bool
	GetPrerelease() bool
	GetPublishedAt() time.Time
	GetReleaseNotes() string
	GetName() string
	GetURL() string

	GetAssets() []Asset
}

// Asset is one downloadable file attached to a release.
type Asset interface {
	GetID() int64
	GetName() string
	GetSize() int
	GetBrowserDownloadURL() string
}

// Source interface to load the releases from (GitHubSource for example)
type Source interface {
	ListReleases(ctx context.Context, repository Repository) ([]Release, error)
	// DownloadReleaseAsset returns an io.ReadCloser: it is the caller's
	// responsibility to Close it.
	DownloadReleaseAsset(ctx context.Context, repository Repository, releaseID int64, asset Asset) (io.ReadCloser, error)
}
