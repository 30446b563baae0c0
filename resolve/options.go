package resolve

import "strings"

// Options controls discovery and output placement.
type Options struct {
	Recursive bool
	InputExt  string
	OutputExt string
}

// DefaultOptions returns non-recursive .nef to .jpg options.
func DefaultOptions() Options {
	return Options{
		InputExt:  DefaultInputExt,
		OutputExt: DefaultOutputExt,
	}
}

func (o Options) withDefaults() Options {
	if o.InputExt == "" {
		o.InputExt = DefaultInputExt
	}
	if o.OutputExt == "" {
		o.OutputExt = DefaultOutputExt
	}
	if !strings.HasPrefix(o.InputExt, ".") {
		o.InputExt = "." + o.InputExt
	}
	if !strings.HasPrefix(o.OutputExt, ".") {
		o.OutputExt = "." + o.OutputExt
	}
	return o
}
