package stereoconv

import (
	"bytes"
	"image"
	"io"

	"github.com/disintegration/imaging"
	jseg "github.com/garyhouston/jpegsegs"
	tiff "github.com/garyhouston/tiff66"
)

// Orientation is the EXIF flag that tells how the stored pixels must be
// transformed to be displayed upright.
type Orientation int

// Orientation values defined by EXIF. Only the rotations are applied.
const (
	OrientationUnspecified Orientation = 0
	OrientationNormal      Orientation = 1
	OrientationFlipH       Orientation = 2
	OrientationRotate180   Orientation = 3
	OrientationFlipV       Orientation = 4
	OrientationTranspose   Orientation = 5
	OrientationRotate270   Orientation = 6
	OrientationTransverse  Orientation = 7
	OrientationRotate90    Orientation = 8
)

const orientationTag = 0x0112

var exifHeader = []byte("Exif\x00\x00")

// Valid reports whether o holds a flag read from real metadata.
func (o Orientation) Valid() bool {
	return o >= OrientationNormal && o <= OrientationRotate90
}

// Source is a decoded view together with the orientation stored in its metadata.
type Source struct {
	Image       image.Image
	Orientation Orientation
}

// NewSource wraps an image that carries no orientation metadata.
func NewSource(img image.Image) Source {
	return Source{Image: img}
}

// NormalizeOrientation rotates the source image so its pixels are stored upright.
func NormalizeOrientation(src Source) image.Image {
	return FixOrientation(src.Image, src.Orientation)
}

// FixOrientation applies the rotation that corresponds to o. Angles are
// counter-clockwise, and the canvas grows to hold the rotated image.
// Flags other than 3, 6 and 8 leave the image unchanged.
func FixOrientation(img image.Image, o Orientation) image.Image {
	switch o {
	case OrientationRotate180:
		return imaging.Rotate180(img)
	case OrientationRotate270:
		return imaging.Rotate270(img)
	case OrientationRotate90:
		return imaging.Rotate90(img)
	}
	return img
}

// ReadOrientation reads the EXIF orientation flag from JPEG data in r.
// If the stream is not a JPEG, has no EXIF block, or the block cannot be
// parsed, it returns OrientationUnspecified.
func ReadOrientation(r io.Reader) Orientation {
	scanner, err := jseg.NewScanner(r)
	if err != nil {
		return OrientationUnspecified
	}
	for {
		marker, buf, err := scanner.Scan()
		if err != nil || marker == jseg.SOS {
			return OrientationUnspecified
		}
		if marker == jseg.APP0+1 && bytes.HasPrefix(buf, exifHeader) {
			return exifOrientation(buf[len(exifHeader):])
		}
	}
}

func exifOrientation(buf []byte) Orientation {
	valid, order, pos := tiff.GetHeader(buf)
	if !valid {
		return OrientationUnspecified
	}
	node, err := tiff.GetIFDTree(buf, order, pos, tiff.TIFFSpace)
	if err != nil {
		return OrientationUnspecified
	}
	for _, f := range node.Fields {
		if f.Tag != orientationTag {
			continue
		}
		if f.Count < 1 || len(f.Data) < 2 {
			return OrientationUnspecified
		}
		if o := Orientation(f.Short(0, order)); o.Valid() {
			return o
		}
		return OrientationUnspecified
	}
	return OrientationUnspecified
}
