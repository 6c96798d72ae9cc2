package apply

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var openFile = os.OpenFile

// replaceBinary performs a crash-safe replacement of the binary at
// targetPath with the contents of the given reader:
//
// 1. writes the contents to /path/to/.target.new with the given file mode;
//
// 2. renames /path/to/target to /path/to/.target.old;
//
// 3. renames /path/to/.target.new to /path/to/target;
//
// 4. if the final rename succeeds, deletes /path/to/.target.old. On Windows
// the removal of a running binary fails, so the old file is hidden instead;
//
// 5. if the final rename fails, attempts to roll back by renaming
// /path/to/.target.old back to /path/to/target.
//
// The staged file lives in the same directory as the target so the renames
// stay on one volume and are atomic: a concurrent reader of targetPath sees
// either the old or the new binary, never a partial file. If the roll back
// of step 5 fails too, the returned error also carries the rollback failure
// (see RollbackError) and the caller should tell the user to reinstall
// manually.
func replaceBinary(update io.Reader, targetPath string, mode os.FileMode) error {
	if mode == 0 {
		mode = 0o755
	}

	updateDir := filepath.Dir(targetPath)
	filename := filepath.Base(targetPath)

	// stage the new binary next to the target, never across volumes
	newPath := filepath.Join(updateDir, fmt.Sprintf(".%s.new", filename))
	fp, err := openFile(newPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}

	_, err = io.Copy(fp, update)
	if err != nil {
		fp.Close()
		_ = os.Remove(newPath)
		return err
	}

	// if we don't call fp.Close(), windows won't let us move the new
	// executable because the file will still be "in use"
	if err = fp.Close(); err != nil {
		_ = os.Remove(newPath)
		return err
	}

	oldPath := filepath.Join(updateDir, fmt.Sprintf(".%s.old", filename))

	// delete any existing old exec file - this is necessary on Windows for two reasons:
	// 1. after a successful update, Windows can't remove the .old file because the process is still running
	// 2. windows rename operations fail if the destination file already exists
	_ = os.Remove(oldPath)

	// move the existing executable to a new file in the same directory
	err = os.Rename(targetPath, oldPath)
	if err != nil {
		_ = os.Remove(newPath)
		return err
	}

	// move the new executable in to become the new program
	err = os.Rename(newPath, targetPath)
	if err != nil {
		// move unsuccessful
		//
		// The filesystem is now in a bad state. The old binary was moved
		// aside but the new binary could not take its place: there is no
		// file at all where the executable used to be.
		// Try to rollback by restoring the old binary to its original path.
		rerr := os.Rename(oldPath, targetPath)
		_ = os.Remove(newPath)
		if rerr != nil {
			return &rollbackError{err, rerr}
		}
		return err
	}

	// move successful, remove the old binary
	errRemove := os.Remove(oldPath)

	// windows has trouble with removing old binaries, so hide it instead
	if errRemove != nil {
		_ = hideFile(oldPath)
	}

	return nil
}

// RollbackError takes an error value returned by the replace step and
// returns the error, if any, that occurred when attempting to roll back from
// a failed update.
//
// If no rollback was needed or if the rollback was successful, RollbackError
// returns nil, otherwise it returns the error encountered when trying to
// roll back.
func RollbackError(err error) error {
	if err == nil {
		return nil
	}
	var rerr *rollbackError
	if errors.As(err, &rerr) {
		return rerr.rollbackErr
	}
	return nil
}

type rollbackError struct {
	error             // original error
	rollbackErr error // error encountered while rolling back
}
