package stereoconv

import (
	"errors"
	"image"
	"image/draw"
	_ "image/jpeg" // decode jpeg format
	"image/png"
	"io"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/sunshineplan/pdf"
	"github.com/sunshineplan/tiff"
	"golang.org/x/image/bmp"
	_ "golang.org/x/image/webp" // decode webp format
)

func init() {
	image.RegisterFormat("pdf", "%PDF", pdf.Decode, pdf.DecodeConfig)
}

// Format is an image file format.
type Format int

// Image file formats.
const (
	JPEG Format = iota
	PNG
	GIF
	TIFF
	BMP
	PDF
)

var formatExts = map[Format]string{
	JPEG: "jpg",
	PNG:  "png",
	GIF:  "gif",
	TIFF: "tif",
	BMP:  "bmp",
	PDF:  "pdf",
}

var formatFromExt = map[string]Format{
	"jpg":  JPEG,
	"jpeg": JPEG,
	"png":  PNG,
	"gif":  GIF,
	"tif":  TIFF,
	"tiff": TIFF,
	"bmp":  BMP,
	"pdf":  PDF,
}

// ErrUnsupportedFormat means the given image format is not supported.
var ErrUnsupportedFormat = errors.New("stereoconv: unsupported image format")

// FormatFromExtension parses image format from filename extension:
// "jpg" (or "jpeg"), "png", "gif", "tif" (or "tiff"), "bmp" and "pdf" are supported.
func FormatFromExtension(ext string) (Format, error) {
	if f, ok := formatFromExt[strings.TrimPrefix(strings.ToLower(ext), ".")]; ok {
		return f, nil
	}
	return -1, ErrUnsupportedFormat
}

func (f Format) String() string {
	if ext, ok := formatExts[f]; ok {
		return ext
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	if _, ok := formatExts[f]; !ok {
		return nil, ErrUnsupportedFormat
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(text []byte) error {
	format, err := FormatFromExtension(string(text))
	if err != nil {
		return err
	}
	*f = format
	return nil
}

// TIFFCompression describes the type of compression used in Options.
type TIFFCompression int

// Constants for supported TIFF compression types.
const (
	TIFFUncompressed TIFFCompression = iota
	TIFFDeflate
)

func (c TIFFCompression) value() tiff.CompressionType {
	if c == TIFFDeflate {
		return tiff.Deflate
	}
	return tiff.Uncompressed
}

// MarshalText implements encoding.TextMarshaler.
func (c TIFFCompression) MarshalText() ([]byte, error) {
	switch c {
	case TIFFUncompressed:
		return []byte("none"), nil
	case TIFFDeflate:
		return []byte("deflate"), nil
	}
	return nil, errors.New("unsupported tiff compression")
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *TIFFCompression) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "none":
		*c = TIFFUncompressed
	case "deflate":
		*c = TIFFDeflate
	default:
		return errors.New("unsupported tiff compression")
	}
	return nil
}

type encodeConfig struct {
	quality             int
	gifNumColors        int
	gifQuantizer        draw.Quantizer
	gifDrawer           draw.Drawer
	pngCompressionLevel png.CompressionLevel
	tiffCompressionType TIFFCompression
}

var defaultEncodeConfig = encodeConfig{
	quality:             75,
	gifNumColors:        256,
	pngCompressionLevel: png.DefaultCompression,
	tiffCompressionType: TIFFDeflate,
}

// EncodeOption sets an optional parameter for the Encode and Save functions.
type EncodeOption func(*encodeConfig)

// Quality returns an EncodeOption that sets the output JPEG or PDF quality.
// Quality ranges from 1 to 100 inclusive, higher is better.
func Quality(quality int) EncodeOption {
	return func(c *encodeConfig) {
		c.quality = quality
	}
}

// GIFNumColors returns an EncodeOption that sets the maximum number of colors
// used in the GIF-encoded image. It ranges from 1 to 256.  Default is 256.
func GIFNumColors(numColors int) EncodeOption {
	return func(c *encodeConfig) {
		c.gifNumColors = numColors
	}
}

// GIFQuantizer returns an EncodeOption that sets the quantizer that is used to produce
// a palette of the GIF-encoded image.
func GIFQuantizer(quantizer draw.Quantizer) EncodeOption {
	return func(c *encodeConfig) {
		c.gifQuantizer = quantizer
	}
}

// GIFDrawer returns an EncodeOption that sets the drawer that is used to convert
// the source image to the desired palette of the GIF-encoded image.
func GIFDrawer(drawer draw.Drawer) EncodeOption {
	return func(c *encodeConfig) {
		c.gifDrawer = drawer
	}
}

// PNGCompressionLevel returns an EncodeOption that sets the compression level
// of the PNG-encoded image. Default is png.DefaultCompression.
func PNGCompressionLevel(level png.CompressionLevel) EncodeOption {
	return func(c *encodeConfig) {
		c.pngCompressionLevel = level
	}
}

// TIFFCompressionType returns an EncodeOption that sets the compression type
// of the TIFF-encoded image. Default is TIFFDeflate.
func TIFFCompressionType(compressionType TIFFCompression) EncodeOption {
	return func(c *encodeConfig) {
		c.tiffCompressionType = compressionType
	}
}

// FormatOption is format option
type FormatOption struct {
	Format       Format
	EncodeOption []EncodeOption
}

func setFormat(f string, options ...EncodeOption) (fo FormatOption, err error) {
	var format Format
	if format, err = FormatFromExtension(f); err != nil {
		return
	}
	fo.Format = format
	fo.EncodeOption = options
	return
}

func (f *FormatOption) config() encodeConfig {
	cfg := defaultEncodeConfig
	for _, option := range f.EncodeOption {
		option(&cfg)
	}
	return cfg
}

// Encode writes the image img to w in the specified format (JPEG, PNG, GIF, TIFF, BMP or PDF).
func (f *FormatOption) Encode(w io.Writer, img image.Image) error {
	cfg := f.config()

	switch f.Format {
	case JPEG:
		return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(cfg.quality))
	case PNG:
		return imaging.Encode(w, img, imaging.PNG, imaging.PNGCompressionLevel(cfg.pngCompressionLevel))
	case GIF:
		return imaging.Encode(w, img, imaging.GIF,
			imaging.GIFNumColors(cfg.gifNumColors),
			imaging.GIFQuantizer(cfg.gifQuantizer),
			imaging.GIFDrawer(cfg.gifDrawer),
		)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: cfg.tiffCompressionType.value(), Predictor: true})
	case BMP:
		return bmp.Encode(w, img)
	case PDF:
		return pdf.Encode(w, []image.Image{img}, &pdf.Options{Quality: cfg.quality})
	}

	return ErrUnsupportedFormat
}

// EncodeAll writes imgs to w as the pages of one PDF document.
// Other formats hold a single image and return ErrUnsupportedFormat.
func (f *FormatOption) EncodeAll(w io.Writer, imgs []image.Image) error {
	if f.Format != PDF {
		return ErrUnsupportedFormat
	}
	return pdf.Encode(w, imgs, &pdf.Options{Quality: f.config().quality})
}
