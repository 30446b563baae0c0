package resolve

import "errors"

var (
	ErrSourceNotFound      = errors.New("the given path does not exist")
	ErrInvalidSource       = errors.New("path is neither a valid folder nor file")
	ErrEmptyInputSet       = errors.New("folder contains no valid input images")
	ErrInvalidTarget       = errors.New("file ending of target is invalid or folder doesn't exist")
	ErrNoExtension         = errors.New("path has no file extension")
	ErrResolutionInvariant = errors.New("resolved output count differs from input count")
)
