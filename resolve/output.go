package resolve

import (
	"fmt"
	"path/filepath"
)

// Pair is one unit of work for the batch runner.
type Pair struct {
	Input  string
	Output string
}

// Plan is the fully resolved batch. Dirs lists the distinct output
// directories, in first-seen order, that must exist before rendering.
type Plan struct {
	Pairs []Pair
	Dirs  []string
}

// Resolve computes one output path per input. It does not touch the
// filesystem beyond inspecting target; directory creation is left to
// EnsureDirs. An empty target means outputs are placed beside their inputs.
func Resolve(inputs []Input, target string, opts Options, fsys FileSystem) (*Plan, error) {
	opts = opts.withDefaults()
	plan := &Plan{Pairs: make([]Pair, 0, len(inputs))}

	switch {
	case target == "":
		for _, in := range inputs {
			out, err := RewriteExtension(in.Path, opts.OutputExt)
			if err != nil {
				return nil, err
			}
			plan.Pairs = append(plan.Pairs, Pair{Input: in.Path, Output: out})
		}

	case IsMatch(target, opts.OutputExt) && len(inputs) == 1:
		plan.Pairs = append(plan.Pairs, Pair{Input: inputs[0].Path, Output: target})

	case isDir(fsys, target):
		seen := make(map[string]bool)
		for _, in := range inputs {
			name, err := RewriteExtension(filepath.Base(in.Path), opts.OutputExt)
			if err != nil {
				return nil, err
			}

			dir := target
			if opts.Recursive && in.Subfolder != "" {
				dir = filepath.Join(target, in.Subfolder)
				if !seen[dir] {
					seen[dir] = true
					plan.Dirs = append(plan.Dirs, dir)
				}
			}

			plan.Pairs = append(plan.Pairs, Pair{Input: in.Path, Output: filepath.Join(dir, name)})
		}

	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidTarget, target)
	}

	if len(plan.Pairs) != len(inputs) {
		return nil, fmt.Errorf("%w: %d inputs, %d outputs", ErrResolutionInvariant, len(inputs), len(plan.Pairs))
	}

	return plan, nil
}

func isDir(fsys FileSystem, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && info.IsDir()
}
