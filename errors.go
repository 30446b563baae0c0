package main

import "errors"

const (
	exitSuccess = 0
	exitError   = 1
	exitUsage   = 2
)

var (
	ErrRender = errors.New("error rendering image")
	ErrWrite  = errors.New("error writing image")
)

// exitCodeFor maps an error to the process exit code. Every fatal condition
// of a run exits with 1; malformed invocations exit with 2.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, ErrUsage):
		return exitUsage
	default:
		return exitError
	}
}
