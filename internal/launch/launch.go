// Package launch hands control over to the target CLI once the update
// check is done. On unix the wrapper process is replaced, on Windows the
// target runs as a child with inherited standard streams.
package launch

import (
	"os"
)

// Run starts the binary at binaryPath with the given arguments, forwarding
// the current environment. argv0 is the name the target sees as its own.
// On unix it only returns on error; on Windows it returns the child's exit
// code.
func Run(binaryPath, argv0 string, args []string) (int, error) {
	argv := append([]string{argv0}, args...)
	return run(binaryPath, argv, os.Environ())
}
