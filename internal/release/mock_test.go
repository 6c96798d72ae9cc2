package release

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/codexup/codexup/internal/source"
)

// mockSource is an in-memory registry pre-populated with canned releases.
type mockSource struct {
	releases []source.Release
	err      error
	payloads map[int64][]byte
	calls    int
}

func (s *mockSource) ListReleases(ctx context.Context, repository source.Repository) ([]source.Release, error) {
	s.calls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.releases, nil
}

func (s *mockSource) DownloadReleaseAsset(ctx context.Context, repository source.Repository, releaseID int64, asset source.Asset) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	payload, ok := s.payloads[asset.GetID()]
	if !ok {
		return nil, source.ErrAssetNotFound
	}
	return io.NopCloser(bytes.NewReader(payload)), nil
}

var _ source.Source = &mockSource{}

type mockRelease struct {
	id          int64
	name        string
	tagName     string
	draft       bool
	prerelease  bool
	publishedAt time.Time
	assets      []source.Asset
}

func (r *mockRelease) GetID() int64              { return r.id }
func (r *mockRelease) GetTagName() string        { return r.tagName }
func (r *mockRelease) GetDraft() bool            { return r.draft }
func (r *mockRelease) GetPrerelease() bool       { return r.prerelease }
func (r *mockRelease) GetPublishedAt() time.Time { return r.publishedAt }
func (r *mockRelease) GetReleaseNotes() string   { return "" }
func (r *mockRelease) GetName() string           { return r.name }
func (r *mockRelease) GetURL() string            { return "" }
func (r *mockRelease) GetAssets() []source.Asset { return r.assets }

type mockAsset struct {
	id   int64
	name string
	size int
	url  string
}

func (a *mockAsset) GetID() int64                  { return a.id }
func (a *mockAsset) GetName() string               { return a.name }
func (a *mockAsset) GetSize() int                  { return a.size }
func (a *mockAsset) GetBrowserDownloadURL() string { return a.url }

var (
	_ source.Release = &mockRelease{}
	_ source.Asset   = &mockAsset{}
)
