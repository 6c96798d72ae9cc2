package apply

import "fmt"

// Reason classifies an update failure.
type Reason int

const (
	// NoMatchingArtifact: the release has no artifact for this machine's
	// platform and architecture.
	NoMatchingArtifact Reason = iota
	// DownloadFailed: the artifact could not be downloaded in full.
	DownloadFailed
	// ReplaceFailed: the new binary could not be moved into place. The
	// original binary is left untouched unless the error also reports a
	// failed rollback.
	ReplaceFailed
	// ExternalToolFailed: the package manager's upgrade command returned a
	// non-zero exit code.
	ExternalToolFailed
	// NoEffect: the package manager reported success but the installed
	// version did not change.
	NoEffect
)

func (r Reason) String() string {
	switch r {
	case NoMatchingArtifact:
		return "no matching artifact"
	case DownloadFailed:
		return "download failed"
	case ReplaceFailed:
		return "replace failed"
	case ExternalToolFailed:
		return "external tool failed"
	case NoEffect:
		return "no effect"
	default:
		return "unknown"
	}
}

// Error is returned when an update could not be applied.
type Error struct {
	Reason Reason
	Err    error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("update not applied: %s", e.Reason)
	}
	return fmt.Sprintf("update not applied: %s: %s", e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func applyError(reason Reason, err error) *Error {
	return &Error{Reason: reason, Err: err}
}
