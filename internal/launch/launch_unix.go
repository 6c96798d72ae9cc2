//go:build !windows

package launch

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// run replaces the current process image. It does not return on success.
func run(binaryPath string, argv, env []string) (int, error) {
	err := unix.Exec(binaryPath, argv, env)
	return 0, fmt.Errorf("cannot execute %q: %w", binaryPath, err)
}
