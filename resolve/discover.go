package resolve

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Input is a discovered RAW file together with the directory, relative to
// the source root, in which it was found. Subfolder is empty for files at the
// root and whenever discovery is not recursive.
type Input struct {
	Path      string
	Subfolder string
}

// Discover lists the input files for source. The caller is expected to have
// verified that source exists.
func Discover(source string, opts Options) ([]Input, error) {
	opts = opts.withDefaults()
	source = filepath.Clean(source)

	info, err := os.Stat(source)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrSourceNotFound, source)
		}
		return nil, fmt.Errorf("path validation error: %w", err)
	}

	if !info.IsDir() {
		if !info.Mode().IsRegular() || !IsMatch(source, opts.InputExt) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSource, source)
		}
		return []Input{{Path: source}}, nil
	}

	var inputs []Input
	if opts.Recursive {
		inputs, err = walkTree(source, opts.InputExt)
	} else {
		inputs, err = listDir(source, opts.InputExt)
	}
	if err != nil {
		return nil, err
	}

	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptyInputSet, source)
	}

	return inputs, nil
}

func listDir(dir, ext string) ([]Input, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("error while reading directory: %w", err)
	}

	var inputs []Input
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		if !IsMatch(e.Name(), ext) || !isRegularFile(path, e) {
			continue
		}
		inputs = append(inputs, Input{Path: path})
	}

	return inputs, nil
}

func walkTree(root, ext string) ([]Input, error) {
	var inputs []Input

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !IsMatch(d.Name(), ext) || !isRegularFile(path, d) {
			return nil
		}

		sub, err := filepath.Rel(root, filepath.Dir(path))
		if err != nil {
			return err
		}
		if sub == "." {
			sub = ""
		}

		inputs = append(inputs, Input{
			Path:      filepath.Join(root, sub, d.Name()),
			Subfolder: sub,
		})
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("error while exploring directory: %w", err)
	}

	return inputs, nil
}

// isRegularFile reports whether the entry is a regular file, following
// symlinks so that a link to a directory is never taken as an input.
func isRegularFile(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
