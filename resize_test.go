package stereoconv

import (
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
)

func compare(t *testing.T, img0, img1 image.Image) {
	t.Helper()
	b0 := img0.Bounds()
	b1 := img1.Bounds()
	if b0.Dx() != b1.Dx() || b0.Dy() != b1.Dy() {
		t.Fatalf("wrong image size: want %s, got %s", b0, b1)
	}
	x1 := b1.Min.X - b0.Min.X
	y1 := b1.Min.Y - b0.Min.Y
	for y := b0.Min.Y; y < b0.Max.Y; y++ {
		for x := b0.Min.X; x < b0.Max.X; x++ {
			c0 := img0.At(x, y)
			c1 := img1.At(x+x1, y+y1)
			r0, g0, b0, a0 := c0.RGBA()
			r1, g1, b1, a1 := c1.RGBA()
			if r0 != r1 || g0 != g1 || b0 != b1 || a0 != a1 {
				t.Fatalf("pixel at (%d, %d) has wrong color: want %v, got %v", x, y, c0, c1)
			}
		}
	}
}

// gradient returns an opaque image whose pixels all differ from their neighbours.
func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x * 7), uint8(y * 13), uint8(x + y), 0xff})
		}
	}
	return img
}

func solid(w, h int, c color.Color) *image.NRGBA {
	return imaging.New(w, h, c)
}

func TestResizePlan(t *testing.T) {
	for i, tc := range []struct {
		option *ResizeOption
		size   image.Point
		scaled image.Point
		keep   image.Rectangle
	}{
		{NewResizeOption(150, 0), image.Pt(300, 200), image.Pt(150, 100), image.Rectangle{}},
		{NewResizeOption(0, 50), image.Pt(300, 200), image.Pt(75, 50), image.Rectangle{}},
		{NewResizeOption(150, 100), image.Pt(300, 200), image.Pt(150, 100), image.Rectangle{}},
		{NewResizeOption(100, 100), image.Pt(300, 200), image.Pt(150, 100), image.Rect(25, 0, 125, 100)},
		{NewResizeOption(300, 100), image.Pt(300, 200), image.Pt(300, 200), image.Rect(0, 50, 300, 150)},
		{&ResizeOption{Width: 100, Height: 100, Offset: Px(0)}, image.Pt(300, 200), image.Pt(150, 100), image.Rect(0, 0, 100, 100)},
		{&ResizeOption{Width: 100, Height: 100, Offset: Pct(100)}, image.Pt(300, 200), image.Pt(150, 100), image.Rect(50, 0, 150, 100)},
		{&ResizeOption{Width: 100, Height: 100, Offset: Px(500)}, image.Pt(300, 200), image.Pt(150, 100), image.Rect(50, 0, 150, 100)},
		{&ResizeOption{Width: 100, Height: 100, Offset: Pct(-20)}, image.Pt(300, 200), image.Pt(150, 100), image.Rect(0, 0, 100, 100)},
		{&ResizeOption{Width: 30, Height: 10, Offset: Px(3)}, image.Pt(10, 10), image.Pt(30, 30), image.Rect(0, 3, 30, 13)},
		{NewResizeOption(0, 7), image.Pt(3, 2), image.Pt(11, 7), image.Rectangle{}},
	} {
		scaled, keep := tc.option.plan(tc.size)
		if scaled != tc.scaled || keep != tc.keep {
			t.Errorf("#%d: want %v %v, got %v %v", i, tc.scaled, tc.keep, scaled, keep)
		}
	}
}

func TestResize(t *testing.T) {
	sample := gradient(300, 200)

	testCase := []struct {
		option *ResizeOption
		want   image.Point
	}{
		{NewResizeOption(150, 0), image.Pt(150, 100)},
		{NewResizeOption(0, 50), image.Pt(75, 50)},
		{NewResizeOption(150, 100), image.Pt(150, 100)},
		{NewResizeOption(100, 100), image.Pt(100, 100)},
		{NewResizeOption(300, 100), image.Pt(300, 100)},
		{NewResizeOption(0, 0), image.Pt(300, 200)},
	}

	for _, tc := range testCase {
		img0 := tc.option.do(sample)
		if img0.Bounds().Size() != tc.want {
			t.Fatalf("bounds differ: %v and %v", img0.Bounds().Size(), tc.want)
		}
		img1 := Resize(sample, tc.option)

		compare(t, img0, img1)
	}
}

func TestResizeAspectRatio(t *testing.T) {
	img := Resize(gradient(123, 77), NewResizeOption(50, 0))
	// round(77 * 50 / 123) = round(31.3)
	if want := image.Pt(50, 31); img.Bounds().Size() != want {
		t.Fatalf("want %v, got %v", want, img.Bounds().Size())
	}
	compare(t, imaging.Resize(gradient(123, 77), 50, 31, imaging.Lanczos), img)
}

func TestResizeOffsetCrop(t *testing.T) {
	sample := gradient(300, 200)
	scaled := imaging.Resize(sample, 150, 100, imaging.Lanczos)

	compare(t, imaging.Crop(scaled, image.Rect(25, 0, 125, 100)), Resize(sample, NewResizeOption(100, 100)))
	compare(t, imaging.Crop(scaled, image.Rect(0, 0, 100, 100)),
		Resize(sample, &ResizeOption{Width: 100, Height: 100, Offset: Px(0)}))
	compare(t, imaging.Crop(scaled, image.Rect(10, 0, 110, 100)),
		Resize(sample, &ResizeOption{Width: 100, Height: 100, Offset: Pct(20)}))
}

func TestResizeSubImage(t *testing.T) {
	sample := gradient(40, 40).SubImage(image.Rect(10, 10, 30, 30))
	img := Resize(sample, NewResizeOption(10, 0))
	if want := image.Pt(10, 10); img.Bounds().Size() != want {
		t.Fatalf("want %v, got %v", want, img.Bounds().Size())
	}
}
