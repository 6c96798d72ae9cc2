// Package updater orchestrates one run of the update check: probe the
// installed version, resolve the latest stable release, detect the install
// method and apply the update. Every failure on that path is reported as a
// warning and the run still hands the caller a binary to launch: the check
// must never block the user from running the tool.
package updater

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/codexup/codexup/internal/installmethod"
	"github.com/codexup/codexup/internal/logging"
	"github.com/codexup/codexup/internal/release"
	"github.com/codexup/codexup/internal/version"
)

// DefaultResolveTimeout bounds the registry metadata fetch.
const DefaultResolveTimeout = 10 * time.Second

// Status of one update run.
type Status int

const (
	// AlreadyCurrent: the installed version is the latest stable one (or
	// newer); no update was attempted.
	AlreadyCurrent Status = iota
	// Updated: the installation was brought to a new version.
	Updated
	// Failed: some step of the check or the update failed; the previously
	// installed binary is still in place.
	Failed
)

func (s Status) String() string {
	switch s {
	case AlreadyCurrent:
		return "already current"
	case Updated:
		return "updated"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the result of one update run.
type Outcome struct {
	Status Status
	// From and To are set when Status is Updated
	From version.Version
	To   version.Version
	// Err is set when Status is Failed
	Err error
}

// Prober reports the installed version of the target CLI.
type Prober interface {
	CurrentVersion(ctx context.Context) (version.Version, error)
}

// Resolver finds the latest stable release on the registry.
type Resolver interface {
	LatestStable(ctx context.Context) (*release.Release, error)
}

// Detector classifies the local installation.
type Detector interface {
	Detect(ctx context.Context) (installmethod.Method, string, error)
}

// Applier applies a release to the local installation.
type Applier interface {
	Apply(ctx context.Context, method installmethod.Method, rel *release.Release, current version.Version) error
}

// Updater runs the check-then-update sequence.
type Updater struct {
	Probe    Prober
	Resolver Resolver
	Detector Detector
	Applier  Applier
	// Command is the target CLI name on the search path
	Command string
	// ResolveTimeout overrides DefaultResolveTimeout when positive
	ResolveTimeout time.Duration
	// Stderr receives user-facing warnings, os.Stderr when nil
	Stderr io.Writer

	// test seam
	resolveBinary func(command string) (string, error)
}

// Run performs one update check. It returns the path of the binary found
// during the run, when any step got that far, and the outcome of the check.
func (u *Updater) Run(ctx context.Context) (string, Outcome) {
	current, err := u.Probe.CurrentVersion(ctx)
	if err != nil {
		return "", u.fail(fmt.Errorf("update check skipped: %w", err))
	}

	resolveTimeout := u.ResolveTimeout
	if resolveTimeout <= 0 {
		resolveTimeout = DefaultResolveTimeout
	}
	resolveCtx, cancel := context.WithTimeout(ctx, resolveTimeout)
	latest, err := u.Resolver.LatestStable(resolveCtx)
	cancel()
	if err != nil {
		return "", u.fail(fmt.Errorf("update check skipped: %w", err))
	}

	if !latest.Version.GreaterThan(current) {
		logging.Printf("current version %s is the latest, update is not needed", current)
		return "", Outcome{Status: AlreadyCurrent, From: current, To: current}
	}

	method, binaryPath, err := u.Detector.Detect(ctx)
	if err != nil {
		return "", u.fail(fmt.Errorf("update skipped: %w", err))
	}

	if err = u.Applier.Apply(ctx, method, latest, current); err != nil {
		return binaryPath, u.fail(err)
	}

	// confirm what the update left behind
	to := latest.Version
	if confirmed, err := u.Probe.CurrentVersion(ctx); err == nil {
		to = confirmed
	}
	return binaryPath, Outcome{Status: Updated, From: current, To: to}
}

// CheckAndUpdate locates the target CLI, runs the update check and reports
// any failure as a warning. The only fatal condition is the target CLI not
// being installed at all.
func (u *Updater) CheckAndUpdate(ctx context.Context) (string, Outcome, error) {
	binaryPath, err := u.lookupBinary()
	if err != nil {
		// nothing to update and nothing to launch
		return "", Outcome{}, fmt.Errorf("%w - install it first, then run this wrapper again", err)
	}

	updatedPath, outcome := u.Run(ctx)
	if updatedPath != "" {
		binaryPath = updatedPath
	}
	if outcome.Err != nil {
		fmt.Fprintf(u.stderr(), "warning: %s\n", outcome.Err)
		fmt.Fprintf(u.stderr(), "continuing with the installed version\n")
	}
	return binaryPath, outcome, nil
}

func (u *Updater) lookupBinary() (string, error) {
	if u.resolveBinary != nil {
		return u.resolveBinary(u.Command)
	}
	return installmethod.ResolveBinaryPath(u.Command)
}

func (u *Updater) fail(err error) Outcome {
	logging.Printf("update failed: %s", err)
	return Outcome{Status: Failed, Err: err}
}

func (u *Updater) stderr() io.Writer {
	if u.Stderr != nil {
		return u.Stderr
	}
	return os.Stderr
}
