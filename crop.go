package stereoconv

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// ErrDegenerateCrop is returned when crop margins leave no pixels.
var ErrDegenerateCrop = errors.New("crop margins exceed image extent")

// Margins are the amounts removed from each side of an image.
type Margins struct {
	Top, Right, Bottom, Left Length
}

// ParseMargins parses four length tokens given in top, right, bottom, left order.
func ParseMargins(top, right, bottom, left string) (*Margins, error) {
	var m Margins
	for _, i := range []struct {
		token string
		dst   *Length
	}{
		{top, &m.Top},
		{right, &m.Right},
		{bottom, &m.Bottom},
		{left, &m.Left},
	} {
		l, err := ParseLength(i.token)
		if err != nil {
			return nil, err
		}
		*i.dst = l
	}
	return &m, nil
}

// IsZero reports whether m removes nothing.
func (m *Margins) IsZero() bool {
	return m.Top.IsZero() && m.Right.IsZero() && m.Bottom.IsZero() && m.Left.IsZero()
}

// rect returns the region kept by m. Left, top and bottom percentages are
// taken of the width and right of the height.
func (m *Margins) rect(size image.Point) image.Rectangle {
	// Not image.Rect, which would swap reversed coordinates.
	return image.Rectangle{
		Min: image.Pt(m.Left.Resolve(size.X), m.Top.Resolve(size.X)),
		Max: image.Pt(size.X-m.Right.Resolve(size.Y), size.Y-m.Bottom.Resolve(size.X)),
	}
}

func (m *Margins) do(base image.Image) (image.Image, error) {
	size := base.Bounds().Size()
	r := m.rect(size)
	if r.Dx() <= 0 || r.Dy() <= 0 {
		return nil, fmt.Errorf("%w: %v leaves %dx%d", ErrDegenerateCrop, size, r.Dx(), r.Dy())
	}
	if !r.In(image.Rectangle{Max: size}) {
		return nil, fmt.Errorf("%w: %v outside %v", ErrDegenerateCrop, r, size)
	}
	return imaging.Crop(base, r.Add(base.Bounds().Min)), nil
}

// Crop removes the margins m from base.
func Crop(base image.Image, m *Margins) (image.Image, error) {
	return m.do(base)
}
