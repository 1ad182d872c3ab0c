package emit

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// syncFile flushes a written file to stable storage.
var syncFile = (*os.File).Sync

// contentHash returns the hex xxhash64 of content.
func contentHash(content []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(content))
}

// existingHash returns the hash of the file at path, or ok=false if it does
// not exist.
func existingHash(path string) (hash string, ok bool, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}

	if err != nil {
		return "", false, err
	}

	return contentHash(data), true, nil
}

// writeFileAtomic writes data to a temporary file in the target directory and
// renames it over path, so readers see either the old or the new content.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}

	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}

	if err := tmp.Chmod(filePerm); err != nil {
		return err
	}

	if err := syncFile(tmp); err != nil {
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
