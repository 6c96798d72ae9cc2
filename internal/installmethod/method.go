// Package installmethod classifies how the target CLI was installed on this
// machine and carries the upgrade procedure for each mechanism.
package installmethod

import "fmt"

// Method is a closed set of installation mechanisms. Exactly one of them
// matches an installation; consumers switch over the concrete types.
type Method interface {
	fmt.Stringer
	// UpgradeCommand returns the argv upgrading this installation through
	// its owning manager, or nil for a custom binary.
	UpgradeCommand() []string

	isMethod()
}

// Homebrew is an installation owned by the Homebrew package manager.
type Homebrew struct {
	// Cask is the Homebrew cask name of the target CLI
	Cask string
}

func (m Homebrew) isMethod() {}

func (m Homebrew) String() string { return "homebrew" }

func (m Homebrew) UpgradeCommand() []string {
	return []string{"brew", "upgrade", "--cask", m.Cask}
}

// Npm is an installation owned by the npm global registry.
type Npm struct {
	// Package is the npm package name of the target CLI
	Package string
}

func (m Npm) isMethod() {}

func (m Npm) String() string { return "npm" }

func (m Npm) UpgradeCommand() []string {
	return []string{"npm", "update", "-g", m.Package}
}

// Custom is a manually placed binary with no managing package system;
// updating it requires direct file replacement.
type Custom struct {
	// BinaryPath is the resolved path of the installed binary
	BinaryPath string
}

func (m Custom) isMethod() {}

func (m Custom) String() string { return "custom" }

func (m Custom) UpgradeCommand() []string { return nil }
