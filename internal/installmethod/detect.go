package installmethod

import (
	"context"
	"os/exec"
	"time"

	"github.com/codexup/codexup/internal/logging"
)

// DefaultQueryTimeout bounds each package manager ownership query. A wedged
// manager must not stall the launch.
const DefaultQueryTimeout = 5 * time.Second

// Detector classifies the installation of the target CLI. Detection checks
// the strongest ownership claim first: a package manager's record of the
// installation wins over the path fallback, so concurrent matches always
// resolve to the manager. Detection never fails outright: when no manager
// claims the installation, the binary is a custom install.
type Detector struct {
	// Command is the target CLI name on the search path
	Command string
	// BrewCask is the Homebrew cask name of the target CLI
	BrewCask string
	// NpmPackage is the npm package name of the target CLI
	NpmPackage string
	// QueryTimeout overrides DefaultQueryTimeout when positive
	QueryTimeout time.Duration

	// test seams
	lookPath   func(file string) (string, error)
	commandRun func(ctx context.Context, name string, args ...string) error
}

func (d *Detector) look(file string) (string, error) {
	if d.lookPath != nil {
		return d.lookPath(file)
	}
	return exec.LookPath(file)
}

func (d *Detector) query(ctx context.Context, name string, args ...string) error {
	timeout := d.QueryTimeout
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if d.commandRun != nil {
		return d.commandRun(ctx, name, args...)
	}
	return exec.CommandContext(ctx, name, args...).Run()
}

// Detect returns the method managing the installed target CLI, along with
// the canonical path of its binary. The only error case is the binary not
// being present on the search path at all.
func (d *Detector) Detect(ctx context.Context) (Method, string, error) {
	binaryPath, err := ResolveBinaryPath(d.Command)
	if err != nil {
		return nil, "", err
	}

	if d.isHomebrewInstall(ctx) {
		logging.Printf("%s is installed with Homebrew", d.Command)
		return Homebrew{Cask: d.BrewCask}, binaryPath, nil
	}
	if d.isNpmInstall(ctx) {
		logging.Printf("%s is installed with npm", d.Command)
		return Npm{Package: d.NpmPackage}, binaryPath, nil
	}
	logging.Printf("%s is a custom install at %s", d.Command, binaryPath)
	return Custom{BinaryPath: binaryPath}, binaryPath, nil
}

// isHomebrewInstall reports whether Homebrew claims ownership of the target
// CLI cask.
func (d *Detector) isHomebrewInstall(ctx context.Context) bool {
	if _, err := d.look("brew"); err != nil {
		return false
	}
	return d.query(ctx, "brew", "list", "--cask", d.BrewCask) == nil
}

// isNpmInstall reports whether a global npm installation provides the target
// CLI package.
func (d *Detector) isNpmInstall(ctx context.Context) bool {
	if _, err := d.look("npm"); err != nil {
		return false
	}
	return d.query(ctx, "npm", "list", "-g", d.NpmPackage, "--depth=0") == nil
}
