package stereoconv

import (
	"errors"
	"fmt"
	"image"
	"slices"

	"github.com/disintegration/imaging"
)

// ErrUnknownMatrix is returned when an anaglyph method has no color matrix.
var ErrUnknownMatrix = errors.New("unknown anaglyph method")

// DefaultMatrix is the anaglyph method used when none is given.
const DefaultMatrix = "dubois-red-cyan"

// Matrix mixes the channels of a left and right view into one color image.
// Output red is the dot product of (lr, lg, lb) with Left[0:3] plus
// (rr, rg, rb) with Right[0:3]. Green uses [3:6] and blue [6:9].
type Matrix struct {
	Left  [9]float64
	Right [9]float64
}

var matrices = map[string]Matrix{
	"true": {
		[9]float64{0.299, 0.587, 0.114, 0, 0, 0, 0, 0, 0},
		[9]float64{0, 0, 0, 0, 0, 0, 0.299, 0.587, 0.114},
	},
	"gray": {
		[9]float64{0.299, 0.587, 0.114, 0, 0, 0, 0, 0, 0},
		[9]float64{0, 0, 0, 0.299, 0.587, 0.114, 0.299, 0.587, 0.114},
	},
	"color": {
		[9]float64{1, 0, 0, 0, 0, 0, 0, 0, 0},
		[9]float64{0, 0, 0, 0, 1, 0, 0, 0, 1},
	},
	"half-color": {
		[9]float64{0.299, 0.587, 0.114, 0, 0, 0, 0, 0, 0},
		[9]float64{0, 0, 0, 0, 1, 0, 0, 0, 1},
	},
	"optimized": {
		[9]float64{0, 0.7, 0.3, 0, 0, 0, 0, 0, 0},
		[9]float64{0, 0, 0, 0, 1, 0, 0, 0, 1},
	},
	"dubois-red-cyan": {
		[9]float64{0.456, 0.500, 0.175, -0.040, -0.038, -0.016, -0.015, -0.021, -0.005},
		[9]float64{-0.043, -0.088, -0.002, 0.378, 0.734, -0.018, -0.072, -0.113, 1.226},
	},
	"dubois-red-cyan2": {
		[9]float64{0.437, 0.449, 0.164, -0.062, -0.062, -0.024, -0.048, -0.050, -0.017},
		[9]float64{-0.011, -0.032, -0.007, 0.377, 0.761, 0.009, -0.026, -0.093, 1.234},
	},
	"dubois-green-magenta": {
		[9]float64{-0.062, -0.158, -0.039, 0.284, 0.668, 0.143, -0.015, -0.027, 0.021},
		[9]float64{0.529, 0.705, 0.024, -0.016, -0.015, -0.065, 0.009, 0.075, 0.937},
	},
	"dubois-amber-blue": {
		[9]float64{1.062, -0.205, 0.299, -0.026, 0.908, 0.068, -0.038, -0.173, 0.022},
		[9]float64{-0.016, -0.123, -0.017, 0.006, 0.062, -0.017, 0.094, 0.185, 0.911},
	},
}

// MatrixByName returns the color matrix of an anaglyph method.
func MatrixByName(name string) (Matrix, error) {
	m, ok := matrices[name]
	if !ok {
		return Matrix{}, fmt.Errorf("%w: %q", ErrUnknownMatrix, name)
	}
	return m, nil
}

// Matrices returns the names of all anaglyph methods in sorted order.
func Matrices() []string {
	names := make([]string, 0, len(matrices))
	for name := range matrices {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Apply mixes left and right into a new image. Alpha is taken from left.
func (m Matrix) Apply(left, right image.Image) (image.Image, error) {
	if err := checkSize(left, right); err != nil {
		return nil, err
	}
	dst := imaging.Clone(left)
	src := toNRGBA(right)
	l, r := m.Left, m.Right
	w := dst.Rect.Dx()
	parallel(0, dst.Rect.Dy(), func(ys <-chan int) {
		for y := range ys {
			d := dst.Pix[y*dst.Stride : y*dst.Stride+w*4 : y*dst.Stride+w*4]
			s := src.Pix[y*src.Stride : y*src.Stride+w*4 : y*src.Stride+w*4]
			for i := 0; i < len(d); i += 4 {
				lr, lg, lb := float64(d[i]), float64(d[i+1]), float64(d[i+2])
				rr, rg, rb := float64(s[i]), float64(s[i+1]), float64(s[i+2])
				d[i] = clamp(lr*l[0] + lg*l[1] + lb*l[2] + rr*r[0] + rg*r[1] + rb*r[2])
				d[i+1] = clamp(lr*l[3] + lg*l[4] + lb*l[5] + rr*r[3] + rg*r[4] + rb*r[5])
				d[i+2] = clamp(lr*l[6] + lg*l[7] + lb*l[8] + rr*r[6] + rg*r[7] + rb*r[8])
			}
		}
	})
	return dst, nil
}

// Anaglyph combines left and right into one image with the named color matrix.
func Anaglyph(left, right image.Image, name string) (image.Image, error) {
	m, err := MatrixByName(name)
	if err != nil {
		return nil, err
	}
	return m.Apply(left, right)
}
