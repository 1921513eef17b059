package stereoconv

import (
	"errors"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"reflect"
	"strings"

	"golang.org/x/sync/errgroup"
)

var defaultFormat = FormatOption{Format: JPEG}

// Mode selects the stereoscopic output layout.
type Mode int

const (
	// CrossEye puts the right view on the left.
	CrossEye Mode = iota
	// Parallel puts the left view on the left.
	Parallel
	// OverUnder puts the left view on top.
	OverUnder
	// UnderOver puts the right view on top.
	UnderOver
	// Anaglyph mixes both views into one color image.
	Anaglyph
)

var modeNames = map[Mode]string{
	CrossEye:  "cross-eye",
	Parallel:  "parallel",
	OverUnder: "over-under",
	UnderOver: "under-over",
	Anaglyph:  "anaglyph",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses a mode name such as "cross-eye" or "over-under".
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if strings.EqualFold(s, name) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown stereo mode: %q", s)
}

func (m Mode) joinMode() JoinMode {
	if m == OverUnder || m == UnderOver {
		return JoinVerticalMode
	}
	return JoinHorizontalMode
}

// swapped reports whether the right view comes first in the output.
func (m Mode) swapped() bool { return m == CrossEye || m == UnderOver }

// Options represents options that can be used to configure a stereo image operation.
type Options struct {
	Crop   *Margins
	Resize *ResizeOption
	Squash bool
	Mode   Mode
	Matrix string
	Format FormatOption
}

// NewOptions creates a new option with default setting.
func NewOptions() Options {
	return Options{Format: defaultFormat}
}

// SetCrop sets the value for the Crop field from four length tokens.
func (opts *Options) SetCrop(top, right, bottom, left string) error {
	m, err := ParseMargins(top, right, bottom, left)
	if err != nil {
		return err
	}
	opts.Crop = m
	return nil
}

// SetResize sets the value for the Resize field.
// An empty offset keeps the view centered.
func (opts *Options) SetResize(width, height int, offset string) error {
	opts.Resize = NewResizeOption(width, height)
	if offset != "" {
		l, err := ParseLength(offset)
		if err != nil {
			return err
		}
		opts.Resize.Offset = l
	}
	return nil
}

// SetMode sets the value for the Mode field.
func (opts *Options) SetMode(mode Mode) *Options {
	opts.Mode = mode
	return opts
}

// SetSquash sets the value for the Squash field.
func (opts *Options) SetSquash(squash bool) *Options {
	opts.Squash = squash
	return opts
}

// SetAnaglyph switches to anaglyph output with the named color matrix.
// An empty name selects DefaultMatrix.
func (opts *Options) SetAnaglyph(name string) error {
	if name == "" {
		name = DefaultMatrix
	}
	if _, err := MatrixByName(name); err != nil {
		return err
	}
	opts.Mode = Anaglyph
	opts.Matrix = name
	return nil
}

// SetFormat sets the value for the Format field.
func (opts *Options) SetFormat(f string, options ...EncodeOption) (err error) {
	opts.Format, err = setFormat(f, options...)
	return
}

// Prepare normalizes the orientation of one view, then crops and resizes it.
func (opts *Options) Prepare(src Source) (image.Image, error) {
	img := NormalizeOrientation(src)
	if opts.Crop != nil && !opts.Crop.IsZero() {
		var err error
		if img, err = opts.Crop.do(img); err != nil {
			return nil, err
		}
	}
	if opts.Resize != nil {
		img = opts.Resize.do(img)
	}
	return img, nil
}

// Compose prepares both views and arranges them for the output mode.
// Anaglyph mode returns a single image. The other modes return the two
// views in output order, squashed if requested.
func (opts *Options) Compose(left, right Source) ([]image.Image, error) {
	var views [2]image.Image
	var g errgroup.Group
	for i, src := range []Source{left, right} {
		g.Go(func() (err error) {
			views[i], err = opts.Prepare(src)
			if err != nil {
				if i == 0 {
					return fmt.Errorf("left view: %w", err)
				}
				return fmt.Errorf("right view: %w", err)
			}
			if opts.Squash && opts.Mode != Anaglyph {
				views[i] = Squash(views[i], opts.Mode.joinMode() == JoinHorizontalMode)
			}
			return
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if opts.Mode == Anaglyph {
		name := opts.Matrix
		if name == "" {
			name = DefaultMatrix
		}
		img, err := Anaglyph(views[0], views[1], name)
		if err != nil {
			return nil, err
		}
		return []image.Image{img}, nil
	}

	if err := checkSize(views[0], views[1]); err != nil {
		return nil, err
	}
	if opts.Mode.swapped() {
		views[0], views[1] = views[1], views[0]
	}
	return views[:], nil
}

// Stereo composes left and right into the single output image of the mode.
func (opts *Options) Stereo(left, right Source) (image.Image, error) {
	imgs, err := opts.Compose(left, right)
	if err != nil {
		return nil, err
	}
	if len(imgs) == 1 {
		return imgs[0], nil
	}
	return Join(imgs[0], imgs[1], opts.Mode.joinMode())
}

func (opts *Options) format() *FormatOption {
	if reflect.DeepEqual(opts.Format, FormatOption{}) {
		opts.Format = defaultFormat
	}
	return &opts.Format
}

// Convert composes left and right according options opts and writes the result to w.
func (opts *Options) Convert(w io.Writer, left, right Source) error {
	img, err := opts.Stereo(left, right)
	if err != nil {
		return err
	}
	return opts.format().Encode(w, img)
}

// ConvertSplit writes the two processed views to separate writers in output order.
func (opts *Options) ConvertSplit(w1, w2 io.Writer, left, right Source) error {
	if opts.Mode == Anaglyph {
		return errors.New("anaglyph output cannot be split")
	}
	imgs, err := opts.Compose(left, right)
	if err != nil {
		return err
	}
	format := opts.format()
	if err := format.Encode(w1, imgs[0]); err != nil {
		return err
	}
	return format.Encode(w2, imgs[1])
}

// ConvertPages writes the two processed views as the pages of one PDF document.
func (opts *Options) ConvertPages(w io.Writer, left, right Source) error {
	if opts.Mode == Anaglyph {
		return errors.New("anaglyph output cannot be split")
	}
	imgs, err := opts.Compose(left, right)
	if err != nil {
		return err
	}
	return opts.format().EncodeAll(w, imgs)
}

// ConvertExt convert filename's ext according image format.
func (opts *Options) ConvertExt(filename string) string {
	return filename[0:len(filename)-len(filepath.Ext(filename))] + "." + formatExts[opts.format().Format]
}
