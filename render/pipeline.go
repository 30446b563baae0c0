// Package render turns a RAW file into an image and writes it to disk.
package render

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

const (
	DefaultQuality      = 90
	DefaultQualityAlpha = 80
	DefaultSpeed        = 6
	DefaultDenoiseSigma = 0.6

	filePermissions = 0o644
)

type Options struct {
	Quality      int
	QualityAlpha int
	Speed        int
	DenoiseSigma float64
}

func DefaultOptions() Options {
	return Options{
		Quality:      DefaultQuality,
		QualityAlpha: DefaultQualityAlpha,
		Speed:        DefaultSpeed,
		DenoiseSigma: DefaultDenoiseSigma,
	}
}

type Pipeline struct {
	Options Options
}

func NewPipeline(opts Options) *Pipeline {
	return &Pipeline{Options: opts}
}

// Render decodes path and optionally smooths sensor noise.
func (p *Pipeline) Render(path string, denoise bool) (image.Image, error) {
	img, err := Decode(path)
	if err != nil {
		return nil, err
	}

	if denoise && p.Options.DenoiseSigma > 0 {
		img = imaging.Blur(img, p.Options.DenoiseSigma)
	}

	return img, nil
}

// Write encodes img into a temporary file next to path and renames it into
// place, so a failed encode never leaves a truncated output behind.
func (p *Pipeline) Write(img image.Image, path string) (err error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	tempFile, err := os.CreateTemp(filepath.Dir(path), ".rawconv-*"+format.Ext())
	if err != nil {
		return fmt.Errorf("error creating temporary file: %w", err)
	}
	tempPath := tempFile.Name()

	defer func() {
		if err != nil {
			tempFile.Close()
			os.Remove(tempPath)
		}
	}()

	if err = Encode(tempFile, img, format, p.Options); err != nil {
		return err
	}

	if err = tempFile.Close(); err != nil {
		return fmt.Errorf("error closing temporary file: %w", err)
	}

	if err = os.Chmod(tempPath, filePermissions); err != nil {
		return fmt.Errorf("error setting file permissions: %w", err)
	}

	if err = os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("error renaming file: %w", err)
	}

	return nil
}
