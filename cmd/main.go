package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sunshineplan/stereoconv"
	"github.com/sunshineplan/utils/log"
	"github.com/vharitonsky/iniflags"
)

var (
	crossEye    bool
	parallel    bool
	overUnder   bool
	underOver   bool
	squash      bool
	anaglyph    = flag.String("anaglyph", "", "")
	mpo         = flag.String("mpo", "", "")
	sbs         = flag.String("sbs", "", "")
	crop        = flag.String("crop", "", "")
	width       = flag.Int("width", 0, "")
	height      = flag.Int("height", 0, "")
	offset      = flag.String("offset", "50%", "")
	quality     = flag.Int("quality", 75, "")
	compression = flag.String("compression", "deflate", "")
	pages       = flag.Bool("pages", false, "")
	force       = flag.Bool("force", false, "")
	debug       = flag.Bool("debug", false, "")
)

func init() {
	for _, i := range []struct {
		p           *bool
		short, long string
	}{
		{&crossEye, "x", "cross-eye"},
		{&parallel, "p", "parallel"},
		{&overUnder, "o", "over-under"},
		{&underOver, "u", "under-over"},
		{&squash, "s", "squash"},
	} {
		flag.BoolVar(i.p, i.short, false, "")
		flag.BoolVar(i.p, i.long, false, "")
	}
	flag.StringVar(anaglyph, "a", "", "")
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s:\n", os.Args[0])
	fmt.Fprintf(flag.CommandLine.Output(), `  %[1]s [options] LEFT RIGHT OUT [OUT2]
  %[1]s [options] --mpo FILE OUT [OUT2]
  %[1]s [options] --sbs FILE OUT [OUT2]

  OUT2 is an optional second output image for split left and right.

  -x, --cross-eye
		cross-eye output: Right/Left (default)
  -p, --parallel
		parallel output: Left/Right
  -o, --over-under
		over/under output: Left is over and right is under
  -u, --under-over
		under/over output: Left is under and right is over
  -s, --squash
		squash the two sides to make an image of size equal to that of the sides
  -a, --anaglyph
		anaglyph output with a choice of following methods: %[2]s
  --mpo
		read left and right images from one MPO file
  --sbs
		read left and right images from one joined image laid out as the output mode
  --crop
		crop both images in either pixels or percentage: "TOP RIGHT BOTTOM LEFT"
  --width, --height
		resize both images to WIDTHxHEIGHT, a side with 0 is calculated automatically to preserve aspect ratio
  --offset
		offset after resize from top or left in either pixels or percentage (default: 50%%)
  --quality
		set jpeg or pdf quality (range 1-100, default: 75)
  --compression
		set tiff compression type (none, deflate, default: deflate)
  --pages
		write the two views as pages of one pdf file
  --force
		force overwrite (default: false)
  --debug
		print each step
`, filepath.Base(os.Args[0]), strings.Join(stereoconv.Matrices(), ", "))
}

func main() {
	self, err := os.Executable()
	if err != nil {
		log.Error("Failed to get self path", "error", err)
		os.Exit(1)
	}

	flag.Usage = usage
	iniflags.SetConfigFile(filepath.Join(filepath.Dir(self), "config.ini"))
	iniflags.SetAllowMissingConfigFile(true)
	iniflags.Parse()

	if err := run(flag.Args()); err != nil {
		log.Error("Failed to create stereo image", "error", err)
		os.Exit(1)
	}
}

func mode() stereoconv.Mode {
	switch {
	case parallel:
		return stereoconv.Parallel
	case overUnder:
		return stereoconv.OverUnder
	case underOver:
		return stereoconv.UnderOver
	}
	return stereoconv.CrossEye
}

func newTask() (*stereoconv.Options, error) {
	task := stereoconv.NewOptions()
	task.SetMode(mode()).SetSquash(squash)
	if *anaglyph != "" {
		if err := task.SetAnaglyph(*anaglyph); err != nil {
			return nil, err
		}
	}
	if *crop != "" {
		sides := strings.FieldsFunc(*crop, func(r rune) bool { return r == ' ' || r == ',' })
		if len(sides) != 4 {
			return nil, fmt.Errorf("crop needs 4 values (top right bottom left), got %q", *crop)
		}
		if err := task.SetCrop(sides[0], sides[1], sides[2], sides[3]); err != nil {
			return nil, err
		}
	}
	if *width != 0 || *height != 0 {
		if err := task.SetResize(*width, *height, *offset); err != nil {
			return nil, err
		}
	}
	return &task, nil
}

func run(args []string) (err error) {
	task, err := newTask()
	if err != nil {
		return
	}

	left, right, outputs, err := sources(args)
	if err != nil {
		return
	}
	if *debug {
		log.Info("Loaded views",
			"left", left.Image.Bounds().Size(), "leftOrientation", left.Orientation,
			"right", right.Image.Bounds().Size(), "rightOrientation", right.Orientation)
	}

	var ct stereoconv.TIFFCompression
	if err = ct.UnmarshalText([]byte(*compression)); err != nil {
		return
	}
	if err = task.SetFormat(filepath.Ext(outputs[0]), stereoconv.Quality(*quality), stereoconv.TIFFCompressionType(ct)); err != nil {
		return fmt.Errorf("%s: %w", outputs[0], err)
	}

	var files []*output
	defer func() {
		for _, f := range files {
			f.discard()
		}
	}()
	for _, name := range outputs {
		var f *output
		if f, err = create(name); err != nil {
			return
		}
		files = append(files, f)
	}

	switch {
	case len(files) == 2:
		err = task.ConvertSplit(files[0], files[1], left, right)
	case *pages:
		err = task.ConvertPages(files[0], left, right)
	default:
		err = task.Convert(files[0], left, right)
	}
	if err != nil {
		return
	}
	for _, f := range files {
		if err = f.commit(); err != nil {
			return
		}
	}
	files = nil

	log.Info("Done", "mode", task.Mode, "output", strings.Join(outputs, ", "))
	return nil
}
