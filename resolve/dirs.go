package resolve

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

const dirPermissions = 0o755

// FileSystem is the filesystem surface used during resolution.
type FileSystem interface {
	Stat(name string) (fs.FileInfo, error)
	MkdirAll(path string, perm fs.FileMode) error
}

// OSFileSystem is the FileSystem backed by package os.
type OSFileSystem struct{}

func (OSFileSystem) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }

func (OSFileSystem) MkdirAll(path string, perm fs.FileMode) error { return os.MkdirAll(path, perm) }

// EnsureDirs creates every directory in plan.Dirs that does not exist yet and
// returns the ones it created. Existing directories are left untouched.
func EnsureDirs(plan *Plan, fsys FileSystem) ([]string, error) {
	var created []string

	for _, dir := range plan.Dirs {
		info, err := fsys.Stat(dir)
		if err == nil {
			if !info.IsDir() {
				return created, fmt.Errorf("output directory %q exists and is not a directory", dir)
			}
			continue
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return created, fmt.Errorf("checking output directory %q: %w", dir, err)
		}

		if err := fsys.MkdirAll(dir, dirPermissions); err != nil {
			return created, fmt.Errorf("creating output directory %q: %w", dir, err)
		}
		created = append(created, dir)
	}

	return created, nil
}
