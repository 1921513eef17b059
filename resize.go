package stereoconv

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// DefaultOffset centers the retained region after an offset-crop.
var DefaultOffset = Pct(50)

// ResizeOption is resize option.
// If one of Width or Height is 0, the image aspect ratio is preserved.
// If both are set, the image is scaled to cover Width x Height and the
// overflow on the other axis is cropped, starting at Offset.
type ResizeOption struct {
	Width  int
	Height int
	Offset Length
}

// NewResizeOption returns a ResizeOption with the default centered offset.
func NewResizeOption(width, height int) *ResizeOption {
	return &ResizeOption{Width: width, Height: height, Offset: DefaultOffset}
}

// resizeRatio returns the scale factor for a target side. A zero target never constrains.
func resizeRatio(target, source int) float64 {
	if target == 0 {
		return 0
	}
	return float64(target) / float64(source)
}

// plan computes the scaled size and the region to keep from the scaled image.
// The region is empty when no offset-crop is needed.
func (r *ResizeOption) plan(size image.Point) (scaled image.Point, keep image.Rectangle) {
	widthRatio := resizeRatio(r.Width, size.X)
	heightRatio := resizeRatio(r.Height, size.Y)

	switch {
	case widthRatio > heightRatio:
		scaled = image.Pt(r.Width, max(1, int(math.Round(float64(size.Y)*widthRatio))))
		if r.Height != 0 {
			offset := clampInt(r.Offset.Resolve(scaled.Y-r.Height), 0, scaled.Y-r.Height)
			keep = image.Rect(0, offset, r.Width, r.Height+offset)
		}
	case widthRatio < heightRatio:
		scaled = image.Pt(max(1, int(math.Round(float64(size.X)*heightRatio))), r.Height)
		if r.Width != 0 {
			offset := clampInt(r.Offset.Resolve(scaled.X-r.Width), 0, scaled.X-r.Width)
			keep = image.Rect(offset, 0, r.Width+offset, r.Height)
		}
	default:
		scaled = image.Pt(r.Width, r.Height)
	}
	return
}

func (r *ResizeOption) do(base image.Image) image.Image {
	size := base.Bounds().Size()
	if (r.Width == 0 && r.Height == 0) || size.X == 0 || size.Y == 0 {
		return imaging.Clone(base)
	}

	scaled, keep := r.plan(size)
	img := imaging.Resize(base, scaled.X, scaled.Y, imaging.Lanczos)
	if !keep.Empty() {
		img = imaging.Crop(img, keep)
	}
	return img
}

// Resize resizes base according to option.
func Resize(base image.Image, option *ResizeOption) image.Image {
	return option.do(base)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
