package installmethod

import (
	"fmt"
	"os/exec"
)

// ResolveBinaryPath locates a command on the search path and resolves all
// symlinks, returning the canonical path of the installed binary.
func ResolveBinaryPath(command string) (string, error) {
	found, err := exec.LookPath(command)
	if err != nil {
		return "", fmt.Errorf("%q executable not found in PATH: %w", command, err)
	}

	resolved, err := resolvePath(found)
	if err != nil {
		return "", fmt.Errorf("failed to resolve symlink %q for executable: %w", found, err)
	}
	return resolved, nil
}
