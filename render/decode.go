package render

import (
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"os"
	"sort"

	"github.com/disintegration/imaging"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decode opens a RAW file and returns its largest embedded JPEG rendition,
// rotated according to the EXIF orientation. Files without an embedded
// JPEG fall back to a plain TIFF decode and then to any registered decoder.
func Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	return decodeFrom(f, info.Size())
}

func decodeFrom(r io.ReadSeeker, size int64) (image.Image, error) {
	ra, ok := r.(io.ReaderAt)
	if !ok {
		return decodeFallback(r, false, 0)
	}

	c, err := openContainer(ra, size)
	if err != nil {
		return decodeFallback(r, false, 0)
	}

	segments, orientation, err := c.scan()
	if err != nil {
		return decodeFallback(r, true, 0)
	}

	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].length > segments[j].length
	})

	for _, s := range segments {
		img, err := jpeg.Decode(io.NewSectionReader(ra, s.offset, s.length))
		if err == nil {
			return applyOrientation(img, orientation), nil
		}
	}

	return decodeFallback(r, true, orientation)
}

func decodeFallback(r io.ReadSeeker, isTIFF bool, orientation int) (image.Image, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	var (
		img image.Image
		err error
	)
	if isTIFF {
		img, err = tiff.Decode(r)
	} else {
		img, _, err = image.Decode(r)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %v", ErrDecode, ErrNoImageData, err)
	}
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: %w", ErrDecode, ErrNoImageData)
	}

	return applyOrientation(img, orientation), nil
}

// applyOrientation maps EXIF orientation values 2-8 onto imaging transforms.
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}
