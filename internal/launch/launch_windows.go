//go:build windows

package launch

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// run starts the target as a child process with inherited standard streams
// and waits for it, propagating its exit code. Windows has no equivalent of
// the exec system call.
func run(binaryPath string, argv, env []string) (int, error) {
	cmd := exec.Command(binaryPath, argv[1:]...)
	cmd.Env = env
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return 0, fmt.Errorf("cannot execute %q: %w", binaryPath, err)
}
