// Package apply performs the update of the target CLI, one strategy per
// installation method: shelling out to the owning package manager, or
// downloading and atomically replacing the binary for custom installs.
package apply

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/codexup/codexup/internal/installmethod"
	"github.com/codexup/codexup/internal/logging"
	"github.com/codexup/codexup/internal/probe"
	"github.com/codexup/codexup/internal/release"
	"github.com/codexup/codexup/internal/version"
)

// DefaultStallTimeout aborts a download making no progress. There is no hard
// cap on the total download time.
const DefaultStallTimeout = 30 * time.Second

// Applier applies a resolved release to the local installation.
type Applier struct {
	// Resolver downloads release artifacts
	Resolver *release.Resolver
	// Probe re-checks the installed version after a managed upgrade
	Probe probe.Probe
	// Command is the base name of the target CLI binary
	Command string
	// OS and Arch of this machine (GOOS/GOARCH values)
	OS   string
	Arch string
	// Stdout and Stderr receive the package manager's own output
	Stdout io.Writer
	Stderr io.Writer
	// StallTimeout overrides DefaultStallTimeout when positive
	StallTimeout time.Duration

	// test seam for the package manager processes
	runCommand func(ctx context.Context, argv []string, stdout, stderr io.Writer) error
}

// Apply updates the installation described by method to the given release.
// current is the version installed before the update.
func (a *Applier) Apply(ctx context.Context, method installmethod.Method, rel *release.Release, current version.Version) error {
	logging.Printf("updating %s from %s to %s using the %s workflow", a.Command, current, rel.Version, method)

	switch m := method.(type) {
	case installmethod.Homebrew:
		return a.applyManaged(ctx, m, current)
	case installmethod.Npm:
		return a.applyManaged(ctx, m, current)
	case installmethod.Custom:
		return a.applyCustom(ctx, rel, m.BinaryPath)
	default:
		return fmt.Errorf("unknown install method %q", method)
	}
}

// applyCustom downloads the artifact matching this machine and atomically
// replaces the binary. On any failure the staged files are removed and the
// original binary is left in place.
func (a *Applier) applyCustom(ctx context.Context, rel *release.Release, binaryPath string) error {
	artifact := release.SelectArtifact(rel.Artifacts, a.OS, a.Arch)
	if artifact == nil {
		return applyError(NoMatchingArtifact, fmt.Errorf("release %s has no artifact for %s/%s", rel.TagName, a.OS, a.Arch))
	}
	logging.Printf("selected artifact %s", artifact.Name)

	data, err := a.downloadArtifact(ctx, rel, *artifact)
	if err != nil {
		return applyError(DownloadFailed, err)
	}

	binary, err := decompressCommand(bytes.NewReader(data), artifact.Name, a.Command, a.OS)
	if err != nil {
		return applyError(ReplaceFailed, err)
	}

	if err = replaceBinary(binary, binaryPath, targetMode(binaryPath)); err != nil {
		return applyError(ReplaceFailed, err)
	}
	logging.Printf("installed new %s binary at %s", a.Command, binaryPath)
	return nil
}

// downloadArtifact reads the whole artifact, guarded by a no-progress
// watchdog, and verifies the size against the declared content length.
func (a *Applier) downloadArtifact(ctx context.Context, rel *release.Release, artifact release.Artifact) ([]byte, error) {
	stall := a.StallTimeout
	if stall <= 0 {
		stall = DefaultStallTimeout
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	rc, err := a.Resolver.DownloadArtifact(ctx, rel, artifact)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	reader := newStallReader(rc, stall, cancel)
	defer reader.stop()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed reading artifact %s: %w", artifact.Name, err)
	}
	if artifact.Size > 0 && len(data) != artifact.Size {
		return nil, fmt.Errorf("artifact %s is %d bytes instead of the %d declared", artifact.Name, len(data), artifact.Size)
	}
	return data, nil
}

// targetMode returns the permissions for the new binary: the bits of the
// original with execution guaranteed, or 0755 when the original cannot be
// read.
func targetMode(binaryPath string) os.FileMode {
	fi, err := os.Stat(binaryPath)
	if err != nil {
		return 0o755
	}
	return fi.Mode().Perm() | 0o111
}
