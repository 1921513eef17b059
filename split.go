package stereoconv

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// ErrDimensionMismatch is returned when two views that must match in size do not.
var ErrDimensionMismatch = errors.New("image dimensions differ")

// JoinMode defines the axis along which two views are packed
type JoinMode int

const (
	// JoinHorizontalMode places the views side by side
	JoinHorizontalMode JoinMode = iota
	// JoinVerticalMode stacks the views
	JoinVerticalMode
)

// Squash halves base along the join axis, so that a joined pair has the size of one view.
func Squash(base image.Image, horizontal bool) image.Image {
	size := base.Bounds().Size()
	if horizontal {
		size.X = max(1, int(math.Round(float64(size.X)/2)))
	} else {
		size.Y = max(1, int(math.Round(float64(size.Y)/2)))
	}
	return imaging.Resize(base, size.X, size.Y, imaging.Lanczos)
}

func checkSize(a, b image.Image) error {
	if sa, sb := a.Bounds().Size(), b.Bounds().Size(); sa != sb {
		return fmt.Errorf("%w: %v and %v", ErrDimensionMismatch, sa, sb)
	}
	return nil
}

// Join places a at the origin and b next to it, to the right or below.
func Join(a, b image.Image, mode JoinMode) (image.Image, error) {
	if err := checkSize(a, b); err != nil {
		return nil, err
	}
	size := a.Bounds().Size()
	var pos image.Point
	if mode == JoinHorizontalMode {
		pos = image.Pt(size.X, 0)
		size.X *= 2
	} else {
		pos = image.Pt(0, size.Y)
		size.Y *= 2
	}
	dst := imaging.New(size.X, size.Y, color.Black)
	dst = imaging.Paste(dst, a, image.Point{})
	return imaging.Paste(dst, b, pos), nil
}

func split(base image.Rectangle, mode JoinMode) (a, b image.Rectangle) {
	if mode == JoinHorizontalMode {
		w := base.Dx() / 2
		return image.Rect(base.Min.X, base.Min.Y, base.Min.X+w, base.Max.Y),
			image.Rect(base.Min.X+w, base.Min.Y, base.Min.X+2*w, base.Max.Y)
	}
	h := base.Dy() / 2
	return image.Rect(base.Min.X, base.Min.Y, base.Max.X, base.Min.Y+h),
		image.Rect(base.Min.X, base.Min.Y+h, base.Max.X, base.Min.Y+2*h)
}

// Split cuts a joined stereo image back into its two views.
// An odd extent along the split axis drops the last row or column.
func Split(base image.Image, mode JoinMode) (a, b image.Image, err error) {
	ra, rb := split(base.Bounds(), mode)
	if ra.Empty() || rb.Empty() {
		return nil, nil, errors.New("failed to split the image: invalid dimensions")
	}
	return imaging.Crop(base, ra), imaging.Crop(base, rb), nil
}

// SplitSource splits a joined stereo image into a left and right source.
// Cross-eye and under/over images carry the right view first.
func SplitSource(src Source, mode Mode) (left, right Source, err error) {
	if mode == Anaglyph {
		return Source{}, Source{}, errors.New("an anaglyph cannot be split into views")
	}
	a, b, err := Split(NormalizeOrientation(src), mode.joinMode())
	if err != nil {
		return
	}
	if mode.swapped() {
		a, b = b, a
	}
	return NewSource(a), NewSource(b), nil
}
