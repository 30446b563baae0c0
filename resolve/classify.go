// Package resolve maps a RAW source (file or directory tree) and an optional
// target to one output path per input.
package resolve

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	DefaultInputExt  = ".nef"
	DefaultOutputExt = ".jpg"
)

// IsMatch reports whether path ends in ext, ignoring case. Exactly len(ext)
// trailing characters are compared, so "photo.nef2" does not match ".nef".
func IsMatch(path, ext string) bool {
	if len(path) < len(ext) {
		return false
	}
	return strings.EqualFold(path[len(path)-len(ext):], ext)
}

// RewriteExtension replaces the last dot-delimited segment of the base name
// with ext. The leading dot of ext is optional.
func RewriteExtension(path, ext string) (string, error) {
	ext = strings.TrimPrefix(ext, ".")

	dir, base := filepath.Split(path)
	dot := strings.LastIndex(base, ".")
	if dot < 0 {
		return "", fmt.Errorf("%w: %q", ErrNoExtension, path)
	}

	return dir + base[:dot] + "." + ext, nil
}
