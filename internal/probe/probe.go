// Package probe determines the version of the locally installed target CLI
// by running it with its version flag.
package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/codexup/codexup/internal/logging"
	"github.com/codexup/codexup/internal/version"
)

// DefaultTimeout bounds the version probe so a wedged binary cannot hang the
// wrapper.
const DefaultTimeout = 5 * time.Second

// ErrNoVersionInOutput is returned when the command ran but its output does
// not contain a parseable version.
var ErrNoVersionInOutput = errors.New("no version found in command output")

// Error is returned when the installed version cannot be determined.
type Error struct {
	Command string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("cannot determine installed version of %q: %s", e.Command, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Probe runs a command with a version flag and parses the reported version.
type Probe struct {
	// Command is the binary to run, a name looked up on PATH or a full path.
	Command string
	// Flag requesting the version, "--version" when empty.
	Flag string
	// Timeout bounds the child process, DefaultTimeout when zero.
	Timeout time.Duration
}

// CurrentVersion runs the command and extracts a version from its output.
// Stdout is searched first, then stderr.
func (p Probe) CurrentVersion(ctx context.Context) (version.Version, error) {
	flag := p.Flag
	if flag == "" {
		flag = "--version"
	}
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, p.Command, flag)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return version.Version{}, &Error{Command: p.Command, Err: fmt.Errorf("%s %s timed out", p.Command, flag)}
		}
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			err = fmt.Errorf("%w: %s", err, detail)
		}
		return version.Version{}, &Error{Command: p.Command, Err: err}
	}

	ver, found := version.Extract(stdout.String())
	if !found {
		// some tools report their version on stderr
		ver, found = version.Extract(stderr.String())
	}
	if !found {
		return version.Version{}, &Error{Command: p.Command, Err: ErrNoVersionInOutput}
	}

	logging.Printf("installed version of %s is %s", p.Command, ver)
	return ver, nil
}
