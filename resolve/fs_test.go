package resolve

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// fakeFS records directories in memory.
type fakeFS struct {
	dirs    map[string]bool
	files   map[string]bool
	mkdirs  []string
	mkdirFn func(string) error
}

func newFakeFS(dirs ...string) *fakeFS {
	f := &fakeFS{dirs: map[string]bool{}, files: map[string]bool{}}
	for _, d := range dirs {
		f.dirs[filepath.Clean(d)] = true
	}
	return f
}

func (f *fakeFS) Stat(name string) (fs.FileInfo, error) {
	name = filepath.Clean(name)
	if f.dirs[name] {
		return fakeInfo{name: filepath.Base(name), dir: true}, nil
	}
	if f.files[name] {
		return fakeInfo{name: filepath.Base(name)}, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
}

func (f *fakeFS) MkdirAll(path string, _ fs.FileMode) error {
	if f.mkdirFn != nil {
		if err := f.mkdirFn(path); err != nil {
			return err
		}
	}
	f.mkdirs = append(f.mkdirs, path)
	f.dirs[filepath.Clean(path)] = true
	return nil
}

type fakeInfo struct {
	name string
	dir  bool
}

func (i fakeInfo) Name() string       { return i.name }
func (i fakeInfo) Size() int64        { return 0 }
func (i fakeInfo) ModTime() time.Time { return time.Time{} }
func (i fakeInfo) IsDir() bool        { return i.dir }
func (i fakeInfo) Sys() any           { return nil }

func (i fakeInfo) Mode() fs.FileMode {
	if i.dir {
		return fs.ModeDir | 0o755
	}
	return 0o644
}

// touch creates empty files below root, creating parents as needed.
func touch(t *testing.T, root string, names ...string) {
	t.Helper()

	for _, name := range names {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}
