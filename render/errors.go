package render

import "errors"

var (
	ErrNotTIFF           = errors.New("not a TIFF container")
	ErrNoImageData       = errors.New("no decodable image data")
	ErrDecode            = errors.New("error decoding image")
	ErrEncode            = errors.New("error encoding image")
	ErrUnsupportedFormat = errors.New("unsupported output format")
)
