package release

import (
	"context"
	"io"
	"time"

	"github.com/codexup/codexup/internal/logging"
	"github.com/codexup/codexup/internal/source"
	"github.com/codexup/codexup/internal/version"
)

// DefaultTimeout bounds the registry metadata fetch.
const DefaultTimeout = 10 * time.Second

// Resolver finds the latest stable release of a repository on a registry.
// It holds no cache: every call performs a fresh network request.
type Resolver struct {
	source source.Source
	repo   source.Repository
	// Timeout overrides DefaultTimeout when positive
	Timeout time.Duration
}

func NewResolver(src source.Source, repo source.Repository) *Resolver {
	return &Resolver{
		source: src,
		repo:   repo,
	}
}

// LatestStable returns the single release with the highest version among the
// releases that are not drafts and not prereleases, either by flag or by
// version suffix. The registry call is always bounded: a deadline brought by
// the caller is kept when it is tighter than the resolver's own timeout.
func (r *Resolver) LatestStable(ctx context.Context) (*Release, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	rels, err := r.source.ListReleases(ctx, r.repo)
	if err != nil {
		return nil, &ResolveError{Err: err}
	}

	var latest *Release
	for _, rel := range rels {
		candidate, ok := stableRelease(rel)
		if !ok {
			continue
		}
		if latest == nil || candidate.Version.GreaterThan(latest.Version) {
			latest = candidate
		}
	}
	if latest == nil {
		return nil, &ResolveError{Err: ErrNoStableRelease}
	}

	logging.Printf("latest stable release: tag %s with %d artifact(s)", latest.TagName, len(latest.Artifacts))
	return latest, nil
}

// DownloadArtifact opens a reader on the content of one artifact of the
// release. It is the caller's responsibility to Close it.
func (r *Resolver) DownloadArtifact(ctx context.Context, rel *Release, artifact Artifact) (io.ReadCloser, error) {
	return r.source.DownloadReleaseAsset(ctx, r.repo, rel.ID, artifactAsset{artifact})
}

// stableRelease converts a registry record into a Release, reporting false
// for drafts, prereleases and tags not carrying a semantic version.
func stableRelease(rel source.Release) (*Release, bool) {
	if rel == nil {
		return nil, false
	}
	if rel.GetDraft() {
		logging.Printf("skip draft version %s", rel.GetTagName())
		return nil, false
	}
	if rel.GetPrerelease() {
		logging.Printf("skip pre-release version %s", rel.GetTagName())
		return nil, false
	}
	ver, found := version.Extract(rel.GetTagName())
	if !found {
		logging.Printf("skip version not adopting semver: %s", rel.GetTagName())
		return nil, false
	}
	if ver.Prerelease() != "" {
		logging.Printf("skip version with a pre-release suffix: %s", rel.GetTagName())
		return nil, false
	}

	assets := rel.GetAssets()
	artifacts := make([]Artifact, len(assets))
	for i, asset := range assets {
		artifacts[i] = Artifact{
			ID:   asset.GetID(),
			Name: asset.GetName(),
			Size: asset.GetSize(),
			URL:  asset.GetBrowserDownloadURL(),
		}
	}

	return &Release{
		Version:      ver,
		TagName:      rel.GetTagName(),
		Name:         rel.GetName(),
		URL:          rel.GetURL(),
		ReleaseNotes: rel.GetReleaseNotes(),
		PublishedAt:  rel.GetPublishedAt(),
		Prerelease:   rel.GetPrerelease(),
		ID:           rel.GetID(),
		Artifacts:    artifacts,
	}, true
}

// artifactAsset adapts an Artifact back to the registry asset interface.
type artifactAsset struct {
	artifact Artifact
}

func (a artifactAsset) GetID() int64                  { return a.artifact.ID }
func (a artifactAsset) GetName() string               { return a.artifact.Name }
func (a artifactAsset) GetSize() int                  { return a.artifact.Size }
func (a artifactAsset) GetBrowserDownloadURL() string { return a.artifact.URL }

var _ source.Asset = artifactAsset{}
