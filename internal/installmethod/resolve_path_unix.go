//go:build !windows

package installmethod

import (
	"path/filepath"
)

// resolvePath returns the path of a given filename with all symlinks resolved.
func resolvePath(filename string) (string, error) {
	finalPath, err := filepath.EvalSymlinks(filename)
	if err != nil {
		return "", err
	}

	return finalPath, nil
}
