package stereoconv_test

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/disintegration/imaging"
	"github.com/sunshineplan/stereoconv"
)

func Example() {
	// Two views of the same scene.
	left := stereoconv.NewSource(imaging.New(400, 300, color.NRGBA{0xff, 0, 0, 0xff}))
	right := stereoconv.NewSource(imaging.New(400, 300, color.NRGBA{0, 0, 0xff, 0xff}))

	opts := stereoconv.NewOptions()

	// Trim 5% from the left edge and scale both views to 200x200.
	if err := opts.SetCrop("0", "0", "0", "5%"); err != nil {
		log.Fatalf("failed to set crop: %v", err)
	}
	if err := opts.SetResize(200, 200, ""); err != nil {
		log.Fatalf("failed to set resize: %v", err)
	}

	// Place the views side by side for parallel viewing.
	img, err := opts.SetMode(stereoconv.Parallel).Stereo(left, right)
	if err != nil {
		log.Fatalf("failed to compose image: %v", err)
	}
	fmt.Println(img.Bounds().Size())

	// Write a red-cyan anaglyph as PNG.
	if err := opts.SetAnaglyph(""); err != nil {
		log.Fatalf("failed to set anaglyph: %v", err)
	}
	opts.Format = stereoconv.FormatOption{Format: stereoconv.PNG}
	if err := opts.Convert(io.Discard, left, right); err != nil {
		log.Fatalf("failed to convert image: %v", err)
	}
	// output:(400,200)
}
