// github.com/disintegration/imaging
package stereoconv

import (
	"image"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/disintegration/imaging"
)

var maxProcs int64

// SetMaxProcs limits the number of concurrent processing goroutines to the given value.
// A value <= 0 clears the limit.
func SetMaxProcs(value int) {
	atomic.StoreInt64(&maxProcs, int64(value))
	imaging.SetMaxProcs(value)
}

// parallel processes the data in separate goroutines.
func parallel(start, stop int, fn func(<-chan int)) {
	count := stop - start
	if count < 1 {
		return
	}

	procs := runtime.GOMAXPROCS(0)
	limit := int(atomic.LoadInt64(&maxProcs))
	if procs > limit && limit > 0 {
		procs = limit
	}
	if procs > count {
		procs = count
	}

	c := make(chan int, count)
	for i := start; i < stop; i++ {
		c <- i
	}
	close(c)

	var wg sync.WaitGroup
	for range procs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn(c)
		}()
	}
	wg.Wait()
}

// clamp rounds and clamps float64 value to fit into uint8.
func clamp(x float64) uint8 {
	if x < 0 {
		return 0
	}
	v := int64(x + 0.5)
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// toNRGBA returns img as an NRGBA image with bounds starting at the origin.
// An *image.NRGBA shares its pixels with the result and must not be written to.
func toNRGBA(img image.Image) *image.NRGBA {
	if img, ok := img.(*image.NRGBA); ok {
		return &image.NRGBA{
			Pix:    img.Pix,
			Stride: img.Stride,
			Rect:   img.Rect.Sub(img.Rect.Min),
		}
	}
	return imaging.Clone(img)
}
