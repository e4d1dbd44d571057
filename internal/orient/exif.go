// Package orient normalizes image orientation: files whose EXIF
// orientation tag disagrees with their pixel data get their pixels
// rotated to match.
package orient

import (
	"fmt"
	"os"
	"strings"

	"github.com/rwcarlsen/goexif/exif"

	"iv-go/internal/iv"
)

// ExifOrienter implements iv.Orienter by reading each file's EXIF
// orientation tag and rewriting the pixel data through the codec.
// Re-encoding strips the metadata, so the tag needs no separate reset.
type ExifOrienter struct {
	codec  iv.Codec
	logger iv.Logger
}

// NewExifOrienter creates an orienter that rewrites files through codec.
func NewExifOrienter(codec iv.Codec, logger iv.Logger) *ExifOrienter {
	return &ExifOrienter{codec: codec, logger: logger}
}

// Normalize processes the given files and returns how many were rotated.
// Files without EXIF data or without a rotating orientation are skipped
// silently; rewrite failures are collected and returned as one error
// after the whole list has been processed.
func (o *ExifOrienter) Normalize(paths []string) (int, error) {
	count := 0
	var problems []string
	for _, path := range paths {
		steps, err := orientationSteps(path)
		if err != nil {
			// Most formats carry no EXIF at all.
			o.logger.Debug("no orientation data", "path", path, "error", err)
			continue
		}
		if steps == 0 {
			continue
		}
		if err := o.codec.RotateFile(path, steps); err != nil {
			problems = append(problems, fmt.Sprintf("rotating %s: %v", path, err))
			continue
		}
		o.logger.Debug("orientation normalized", "path", path, "steps", steps)
		count++
	}

	if len(problems) > 0 {
		return count, fmt.Errorf("%s", strings.Join(problems, "\n"))
	}
	return count, nil
}

// orientationSteps returns how many quarter turns clockwise the file's
// pixels must be rotated to match its recorded orientation. Mirrored
// orientations (2, 4, 5, 7) are left alone: flipping on behalf of the
// user is too surprising.
func orientationSteps(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	meta, err := exif.Decode(f)
	if err != nil {
		return 0, err
	}
	tag, err := meta.Get(exif.Orientation)
	if err != nil {
		return 0, nil // no orientation tag
	}
	orientation, err := tag.Int(0)
	if err != nil {
		return 0, nil
	}

	switch orientation {
	case 3:
		return 2, nil
	case 6:
		return 1, nil
	case 8:
		return 3, nil
	default:
		return 0, nil
	}
}

// Compile-time check that ExifOrienter implements iv.Orienter interface
var _ iv.Orienter = (*ExifOrienter)(nil)
