package updater

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codexup/codexup/internal/installmethod"
	"github.com/codexup/codexup/internal/release"
	"github.com/codexup/codexup/internal/source"
	"github.com/codexup/codexup/internal/version"
)

func mustParse(t *testing.T, s string) version.Version {
	t.Helper()
	v, err := version.Parse(s)
	require.NoError(t, err)
	return v
}

type fakeProbe struct {
	versions []string
	err      error
	calls    int
}

func (p *fakeProbe) CurrentVersion(ctx context.Context) (version.Version, error) {
	if p.err != nil {
		return version.Version{}, p.err
	}
	index := p.calls
	if index >= len(p.versions) {
		index = len(p.versions) - 1
	}
	p.calls++
	return version.Parse(p.versions[index])
}

type fakeResolver struct {
	latest *release.Release
	err    error
	calls  int
}

func (r *fakeResolver) LatestStable(ctx context.Context) (*release.Release, error) {
	r.calls++
	return r.latest, r.err
}

type fakeDetector struct {
	method installmethod.Method
	path   string
	err    error
	calls  int
}

func (d *fakeDetector) Detect(ctx context.Context) (installmethod.Method, string, error) {
	d.calls++
	return d.method, d.path, d.err
}

type fakeApplier struct {
	err     error
	applied []installmethod.Method
}

func (a *fakeApplier) Apply(ctx context.Context, method installmethod.Method, rel *release.Release, current version.Version) error {
	a.applied = append(a.applied, method)
	return a.err
}

func stableRelease(t *testing.T, v string) *release.Release {
	return &release.Release{
		Version: mustParse(t, v),
		TagName: "rust-v" + v,
	}
}

func testUpdater(probe *fakeProbe, resolver *fakeResolver, detector *fakeDetector, applier *fakeApplier) (*Updater, *bytes.Buffer) {
	warnings := &bytes.Buffer{}
	return &Updater{
		Probe:    probe,
		Resolver: resolver,
		Detector: detector,
		Applier:  applier,
		Command:  "codex",
		Stderr:   warnings,
		resolveBinary: func(command string) (string, error) {
			return "/usr/local/bin/codex", nil
		},
	}, warnings
}

func TestUpdateEndToEnd(t *testing.T) {
	probe := &fakeProbe{versions: []string{"0.61.0", "0.63.0"}}
	detector := &fakeDetector{method: installmethod.Custom{BinaryPath: "/usr/local/bin/codex"}, path: "/usr/local/bin/codex"}
	applier := &fakeApplier{}
	updater, warnings := testUpdater(probe, &fakeResolver{latest: stableRelease(t, "0.63.0")}, detector, applier)

	binaryPath, outcome, err := updater.CheckAndUpdate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/usr/local/bin/codex", binaryPath)
	assert.Equal(t, Updated, outcome.Status)
	assert.Equal(t, "0.61.0", outcome.From.String())
	assert.Equal(t, "0.63.0", outcome.To.String())
	assert.Len(t, applier.applied, 1)
	assert.Empty(t, warnings.String())
}

func TestAlreadyCurrentIsIdempotent(t *testing.T) {
	probe := &fakeProbe{versions: []string{"0.63.0"}}
	resolver := &fakeResolver{latest: stableRelease(t, "0.63.0")}
	detector := &fakeDetector{}
	applier := &fakeApplier{}
	updater, _ := testUpdater(probe, resolver, detector, applier)

	for i := 0; i < 2; i++ {
		_, outcome, err := updater.CheckAndUpdate(context.Background())
		require.NoError(t, err)
		assert.Equal(t, AlreadyCurrent, outcome.Status)
	}
	assert.Empty(t, applier.applied, "no update was attempted")
	assert.Zero(t, detector.calls, "no detection is needed when already current")
	assert.Equal(t, 2, resolver.calls, "nothing is cached across runs")
}

func TestLocalNewerThanRemoteIsAlreadyCurrent(t *testing.T) {
	probe := &fakeProbe{versions: []string{"0.64.0"}}
	updater, _ := testUpdater(probe, &fakeResolver{latest: stableRelease(t, "0.63.0")}, &fakeDetector{}, &fakeApplier{})

	_, outcome, err := updater.CheckAndUpdate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, AlreadyCurrent, outcome.Status)
}

func TestProbeFailureStillLaunches(t *testing.T) {
	probe := &fakeProbe{err: errors.New("codex --version timed out")}
	applier := &fakeApplier{}
	updater, warnings := testUpdater(probe, &fakeResolver{}, &fakeDetector{}, applier)

	binaryPath, outcome, err := updater.CheckAndUpdate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/usr/local/bin/codex", binaryPath)
	assert.Equal(t, Failed, outcome.Status)
	assert.Empty(t, applier.applied)
	assert.Contains(t, warnings.String(), "warning:")
}

func TestRateLimitedStillLaunches(t *testing.T) {
	resolver := &fakeResolver{err: &release.ResolveError{Err: source.ErrRateLimited}}
	updater, warnings := testUpdater(&fakeProbe{versions: []string{"0.61.0"}}, resolver, &fakeDetector{}, &fakeApplier{})

	binaryPath, outcome, err := updater.CheckAndUpdate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/usr/local/bin/codex", binaryPath)
	assert.Equal(t, Failed, outcome.Status)
	assert.ErrorIs(t, outcome.Err, source.ErrRateLimited)
	assert.Contains(t, warnings.String(), "continuing with the installed version")
}

func TestApplyFailureStillLaunches(t *testing.T) {
	probe := &fakeProbe{versions: []string{"0.61.0"}}
	detector := &fakeDetector{method: installmethod.Homebrew{Cask: "codex"}, path: "/opt/homebrew/bin/codex"}
	applier := &fakeApplier{err: errors.New("brew upgrade failed")}
	updater, warnings := testUpdater(probe, &fakeResolver{latest: stableRelease(t, "0.63.0")}, detector, applier)

	binaryPath, outcome, err := updater.CheckAndUpdate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/opt/homebrew/bin/codex", binaryPath, "launches the binary found by detection")
	assert.Equal(t, Failed, outcome.Status)
	assert.Contains(t, warnings.String(), "brew upgrade failed")
}

func TestNoBinaryAtAllIsFatal(t *testing.T) {
	updater, _ := testUpdater(&fakeProbe{versions: []string{"0.61.0"}}, &fakeResolver{}, &fakeDetector{}, &fakeApplier{})
	updater.resolveBinary = func(command string) (string, error) {
		return "", errors.New(`"codex" executable not found in PATH`)
	}

	_, _, err := updater.CheckAndUpdate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "install it first")
}

func TestDetectionFailureStillLaunches(t *testing.T) {
	probe := &fakeProbe{versions: []string{"0.61.0"}}
	detector := &fakeDetector{err: errors.New("failed to resolve symlink")}
	updater, _ := testUpdater(probe, &fakeResolver{latest: stableRelease(t, "0.63.0")}, detector, &fakeApplier{})

	binaryPath, outcome, err := updater.CheckAndUpdate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/usr/local/bin/codex", binaryPath)
	assert.Equal(t, Failed, outcome.Status)
}
