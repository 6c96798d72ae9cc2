package apply

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/codexup/codexup/internal/installmethod"
	"github.com/codexup/codexup/internal/logging"
	"github.com/codexup/codexup/internal/version"
)

// applyManaged delegates the upgrade to the package manager owning the
// installation, streaming its output to the user. The manager's exit code
// alone is not trusted: a manager with a stale index can exit 0 while
// installing nothing, so the installed version is probed again afterwards.
func (a *Applier) applyManaged(ctx context.Context, method installmethod.Method, current version.Version) error {
	argv := method.UpgradeCommand()
	logging.Printf("running: %s", strings.Join(argv, " "))

	if err := a.run(ctx, argv); err != nil {
		return applyError(ExternalToolFailed, fmt.Errorf("command %q: %w", strings.Join(argv, " "), err))
	}

	installed, err := a.Probe.CurrentVersion(ctx)
	if err != nil {
		return applyError(NoEffect, fmt.Errorf("cannot confirm the upgrade: %w", err))
	}
	if installed.Equal(current) {
		return applyError(NoEffect, fmt.Errorf("%s reported success but %s is still at version %s", method, a.Command, current))
	}
	logging.Printf("%s upgraded %s to version %s", method, a.Command, installed)
	return nil
}

func (a *Applier) run(ctx context.Context, argv []string) error {
	stdout := a.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := a.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	if a.runCommand != nil {
		return a.runCommand(ctx, argv, stdout, stderr)
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	// pass-through: the manager's own progress display goes straight to the user
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}
