package apply

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codexup/codexup/internal/installmethod"
	"github.com/codexup/codexup/internal/probe"
	"github.com/codexup/codexup/internal/version"
)

func mustParse(s string) version.Version {
	v, err := version.Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// fakeCLI writes a script reporting the given version, standing in for the
// target CLI after a package manager ran.
func fakeCLI(t *testing.T, reported string) probe.Probe {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("test scripts are POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "codex")
	script := "#!/bin/sh\necho \"codex-cli " + reported + "\"\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return probe.Probe{Command: path}
}

func managedApplier(t *testing.T, reported string, runErr error) (*Applier, *[]string) {
	var commands []string
	applier := &Applier{
		Probe:   fakeCLI(t, reported),
		Command: "codex",
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
		runCommand: func(ctx context.Context, argv []string, stdout, stderr io.Writer) error {
			commands = append(commands, strings.Join(argv, " "))
			return runErr
		},
	}
	return applier, &commands
}

func TestApplyHomebrew(t *testing.T) {
	applier, commands := managedApplier(t, "0.63.0", nil)

	err := applier.Apply(context.Background(), installmethod.Homebrew{Cask: "codex"}, testRelease(), mustParse("0.61.0"))
	require.NoError(t, err)
	assert.Equal(t, []string{"brew upgrade --cask codex"}, *commands)
}

func TestApplyNpm(t *testing.T) {
	applier, commands := managedApplier(t, "0.63.0", nil)

	err := applier.Apply(context.Background(), installmethod.Npm{Package: "@openai/codex"}, testRelease(), mustParse("0.61.0"))
	require.NoError(t, err)
	assert.Equal(t, []string{"npm update -g @openai/codex"}, *commands)
}

func TestApplyManagedCommandFails(t *testing.T) {
	applier, _ := managedApplier(t, "0.61.0", errors.New("exit status 1"))

	err := applier.Apply(context.Background(), installmethod.Homebrew{Cask: "codex"}, testRelease(), mustParse("0.61.0"))
	require.Error(t, err)
	assertReason(t, err, ExternalToolFailed)
}

func TestApplyManagedNoEffect(t *testing.T) {
	// the manager exits 0 but the installed version did not move: its own
	// index was stale
	applier, _ := managedApplier(t, "0.61.0", nil)

	err := applier.Apply(context.Background(), installmethod.Homebrew{Cask: "codex"}, testRelease(), mustParse("0.61.0"))
	require.Error(t, err)
	assertReason(t, err, NoEffect)
}
