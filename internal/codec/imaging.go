// Package codec rewrites image files on disk: the pixel-level side of
// rotate and flip that the transform service stays away from.
package codec

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"iv-go/internal/iv"
)

// ImagingCodec implements iv.Codec by decoding the file, transforming the
// pixels and re-encoding in place. Writes go through a temp file in the
// same directory plus an atomic rename, so the original survives a failed
// write.
type ImagingCodec struct{}

// NewImagingCodec creates a new codec.
func NewImagingCodec() *ImagingCodec {
	return &ImagingCodec{}
}

// RotateFile rotates the image file at path by steps quarter turns
// clockwise.
func (c *ImagingCodec) RotateFile(path string, steps int) error {
	img, err := imaging.Open(path)
	if err != nil {
		return fmt.Errorf("opening image: %w", err)
	}

	var rotated image.Image
	switch ((steps % 4) + 4) % 4 {
	case 1:
		rotated = imaging.Rotate270(img) // 90 degrees clockwise
	case 2:
		rotated = imaging.Rotate180(img)
	case 3:
		rotated = imaging.Rotate90(img) // 90 degrees counter-clockwise
	default:
		return nil
	}

	return c.save(rotated, path)
}

// FlipFile mirrors the image file at path on the requested axis.
func (c *ImagingCodec) FlipFile(path string, horizontal bool) error {
	img, err := imaging.Open(path)
	if err != nil {
		return fmt.Errorf("opening image: %w", err)
	}

	var flipped image.Image
	if horizontal {
		flipped = imaging.FlipH(img)
	} else {
		flipped = imaging.FlipV(img)
	}

	return c.save(flipped, path)
}

// EditSupported reports whether the file's extension maps to a format this
// codec can encode.
func (c *ImagingCodec) EditSupported(path string) bool {
	if path == "" {
		return false
	}
	_, err := imaging.FormatFromFilename(path)
	return err == nil
}

// save re-encodes img over path using a temp file and an atomic rename.
func (c *ImagingCodec) save(img image.Image, path string) error {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return fmt.Errorf("determining format: %w", err)
	}

	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, ".iv-write-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Clean up temp file on failure
	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if err := imaging.Encode(tmpFile, img, format); err != nil {
		tmpFile.Close()
		return fmt.Errorf("encoding image: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replacing image: %w", err)
	}

	success = true
	return nil
}

// Compile-time check that ImagingCodec implements iv.Codec
var _ iv.Codec = (*ImagingCodec)(nil)
