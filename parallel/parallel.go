// Package parallel splits pixel work into fixed-size chunks and runs one
// goroutine per chunk, the same one-unit-of-work-per-goroutine idiom
// hald and cube use, generalized to flat pixel buffers so it applies
// uniformly to both the LUT generator and the applicator.
package parallel

import (
	"sync"

	"github.com/NicoNex/prism/cancel"
)

// ChunkSize is the number of pixels assigned to each worker, matching the
// 1 KiB (256 RGBA8 pixel) load-balancing unit.
const ChunkSize = 256

// Pixels runs fn concurrently over every ChunkSize-sized half-open range
// covering [0, n), and waits for all of them to finish.
func Pixels(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	var wg sync.WaitGroup
	for start := 0; start < n; start += ChunkSize {
		end := min(start+ChunkSize, n)
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(start, end)
	}
	wg.Wait()
}

// PixelsCancellable is like Pixels, but each worker checks tok before
// processing its chunk and returns immediately without calling fn if it has
// already fired. It reports whether the full range completed uncancelled.
func PixelsCancellable(n int, tok *cancel.Token, fn func(start, end int)) bool {
	if n <= 0 {
		return !tok.Cancelled()
	}

	var wg sync.WaitGroup
	for start := 0; start < n; start += ChunkSize {
		end := min(start+ChunkSize, n)
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			if tok.Cancelled() {
				return
			}
			fn(start, end)
		}(start, end)
	}
	wg.Wait()

	return !tok.Cancelled()
}
