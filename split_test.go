package stereoconv

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
)

func TestSquash(t *testing.T) {
	for _, tc := range []struct {
		size       image.Point
		horizontal bool
		want       image.Point
	}{
		{image.Pt(100, 50), true, image.Pt(50, 50)},
		{image.Pt(101, 50), true, image.Pt(51, 50)},
		{image.Pt(100, 51), false, image.Pt(100, 26)},
		{image.Pt(1, 1), true, image.Pt(1, 1)},
	} {
		if got := Squash(gradient(tc.size.X, tc.size.Y), tc.horizontal).Bounds().Size(); got != tc.want {
			t.Errorf("Squash(%v, %v) = %v; want %v", tc.size, tc.horizontal, got, tc.want)
		}
	}

	sample := gradient(80, 60)
	back := imaging.Resize(Squash(sample, true), 80, 60, imaging.Lanczos)
	if back.Bounds().Size() != sample.Bounds().Size() {
		t.Fatalf("squash then double: want %v, got %v", sample.Bounds().Size(), back.Bounds().Size())
	}

	flat := solid(80, 60, color.NRGBA{10, 120, 230, 0xff})
	compare(t, solid(80, 30, color.NRGBA{10, 120, 230, 0xff}), Squash(flat, false))
}

func TestJoin(t *testing.T) {
	a, b := gradient(100, 100), solid(100, 100, color.NRGBA{0, 0, 0xff, 0xff})

	img, err := Join(a, b, JoinHorizontalMode)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != image.Rect(0, 0, 200, 100) {
		t.Fatalf("wrong bounds: %v", img.Bounds())
	}
	nrgba := img.(*image.NRGBA)
	compare(t, a, nrgba.SubImage(image.Rect(0, 0, 100, 100)))
	compare(t, b, nrgba.SubImage(image.Rect(100, 0, 200, 100)))

	img, err = Join(a, b, JoinVerticalMode)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != image.Rect(0, 0, 100, 200) {
		t.Fatalf("wrong bounds: %v", img.Bounds())
	}
	nrgba = img.(*image.NRGBA)
	compare(t, a, nrgba.SubImage(image.Rect(0, 0, 100, 100)))
	compare(t, b, nrgba.SubImage(image.Rect(0, 100, 100, 200)))

	if _, err := Join(a, gradient(100, 99), JoinHorizontalMode); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("want ErrDimensionMismatch, got %v", err)
	}
}

func TestSplit(t *testing.T) {
	for i, testcase := range []struct {
		base image.Rectangle
		mode JoinMode
		a, b image.Rectangle
	}{
		{image.Rect(0, 0, 100, 100), JoinHorizontalMode, image.Rect(0, 0, 50, 100), image.Rect(50, 0, 100, 100)},
		{image.Rect(0, 0, 100, 100), JoinVerticalMode, image.Rect(0, 0, 100, 50), image.Rect(0, 50, 100, 100)},
		{image.Rect(0, 0, 101, 10), JoinHorizontalMode, image.Rect(0, 0, 50, 10), image.Rect(50, 0, 100, 10)},
		{image.Rect(100, 100, 200, 200), JoinHorizontalMode, image.Rect(100, 100, 150, 200), image.Rect(150, 100, 200, 200)},
		{image.Rect(100, 100, 200, 200), JoinVerticalMode, image.Rect(100, 100, 200, 150), image.Rect(100, 150, 200, 200)},
	} {
		if a, b := split(testcase.base, testcase.mode); a != testcase.a || b != testcase.b {
			t.Errorf("#%d wrong split results: want %v %v, got %v %v", i, testcase.a, testcase.b, a, b)
		}
	}
}

func TestSplitJoin(t *testing.T) {
	a, b := gradient(40, 30), solid(40, 30, color.NRGBA{0xff, 0, 0, 0xff})
	for _, mode := range []JoinMode{JoinHorizontalMode, JoinVerticalMode} {
		joined, err := Join(a, b, mode)
		if err != nil {
			t.Fatal(err)
		}
		a1, b1, err := Split(joined, mode)
		if err != nil {
			t.Fatal(err)
		}
		compare(t, a, a1)
		compare(t, b, b1)
	}

	if _, _, err := Split(gradient(1, 10), JoinHorizontalMode); err == nil {
		t.Fatal("want error, got nil")
	}
}

func TestSplitSource(t *testing.T) {
	red := solid(10, 10, color.NRGBA{0xff, 0, 0, 0xff})
	blue := solid(10, 10, color.NRGBA{0, 0, 0xff, 0xff})
	joined, err := Join(red, blue, JoinHorizontalMode)
	if err != nil {
		t.Fatal(err)
	}

	left, right, err := SplitSource(NewSource(joined), Parallel)
	if err != nil {
		t.Fatal(err)
	}
	compare(t, red, left.Image)
	compare(t, blue, right.Image)

	left, right, err = SplitSource(NewSource(joined), CrossEye)
	if err != nil {
		t.Fatal(err)
	}
	compare(t, blue, left.Image)
	compare(t, red, right.Image)

	if _, _, err := SplitSource(NewSource(joined), Anaglyph); err == nil {
		t.Fatal("want error, got nil")
	}
}
