package release

import (
	"errors"
	"fmt"
)

var (
	// ErrNoStableRelease is returned when the registry has no release left
	// after filtering out drafts and prereleases. This is distinct from the
	// local version already being current.
	ErrNoStableRelease = errors.New("no stable release found")
)

// ResolveError is returned when the latest version cannot be determined from
// the remote registry.
type ResolveError struct {
	Err error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("cannot resolve latest release: %s", e.Err)
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}
