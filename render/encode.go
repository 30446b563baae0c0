package render

import (
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/avif"
)

// Format is an output image format, named by its file extension.
type Format string

const (
	FormatJPEG Format = "jpg"
	FormatAVIF Format = "avif"
)

var formatsByExt = map[string]Format{
	".jpg":  FormatJPEG,
	".jpeg": FormatJPEG,
	".avif": FormatAVIF,
}

// ParseFormat accepts a format name with or without a leading dot.
func ParseFormat(name string) (Format, error) {
	ext := "." + strings.TrimPrefix(strings.ToLower(name), ".")
	f, ok := formatsByExt[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
	return f, nil
}

// FormatFromPath selects the format implied by the output path's extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Ext returns the canonical extension including the leading dot.
func (f Format) Ext() string { return "." + string(f) }

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format Format, opts Options) error {
	var err error

	switch format {
	case FormatJPEG:
		err = imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(opts.Quality))
	case FormatAVIF:
		err = avif.Encode(w, img, avif.Options{
			Quality:           opts.Quality,
			QualityAlpha:      opts.QualityAlpha,
			Speed:             opts.Speed,
			ChromaSubsampling: image.YCbCrSubsampleRatio420,
		})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return nil
}
