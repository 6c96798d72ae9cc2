// Package release resolves the latest stable release of the target CLI from
// a remote registry and selects the artifact matching the running machine.
package release

import (
	"time"

	"github.com/codexup/codexup/internal/version"
)

// Artifact is one downloadable file belonging to a release.
type Artifact struct {
	// ID of the asset on the registry (zero when the registry has no asset API)
	ID int64
	// Name is the filename of the artifact
	Name string
	// Size of the artifact in bytes, zero when the registry does not report it
	Size int
	// URL is the direct download URL
	URL string
}

// Release is a single release of the target CLI, fetched fresh on every run
// and never persisted.
type Release struct {
	// Version parsed from the release tag
	Version version.Version
	// TagName is the raw tag on the registry
	TagName string
	// Name of the release
	Name string
	// URL of the release page for browsing
	URL string
	// ReleaseNotes of the release
	ReleaseNotes string
	// PublishedAt is the time when the release was published
	PublishedAt time.Time
	// Prerelease is set for alpha, beta or release candidates
	Prerelease bool
	// ID of the release on the registry
	ID int64
	// Artifacts are the downloadable files of this release
	Artifacts []Artifact
}
