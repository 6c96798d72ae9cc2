//go:build windows

package installmethod

import (
	"os"
	"strings"
	"syscall"

	"golang.org/x/sys/windows"
)

// resolvePath returns the path of a given filename with all symlinks resolved.
func resolvePath(filename string) (string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return "", err
	}
	defer f.Close()

	handle := windows.Handle(f.Fd())
	buf := make([]uint16, syscall.MAX_PATH)
	_, err = windows.GetFinalPathNameByHandle(handle, &buf[0], uint32(len(buf)), 0)
	if err != nil {
		return "", err
	}
	final := syscall.UTF16ToString(buf)

	// Strip possible "\\?\" prefix
	final = strings.TrimPrefix(final, `\\?\`)

	return final, nil
}
