package synth

import (
	"fmt"
	"image"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// RenderFrames renders all frames using a worker pool. Frames are
// independent, so workers share only the read-only mask and params.
// The returned slice is in frame order and complete: this is the join
// point before packing and quantization.
func RenderFrames(mask *image.Alpha, p Params, workers int) []*image.NRGBA {
	if workers < 1 {
		workers = 1
	}

	total := p.Frames
	frames := make([]*image.NRGBA, total)
	var rendered atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				n := rendered.Load()
				if n > 0 {
					elapsed := time.Since(start).Seconds()
					fmt.Fprintf(os.Stderr, "  [%d/%d] %.1f frames/sec\n", n, total, float64(n)/elapsed)
				}
			}
		}
	}()

	frameChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range frameChan {
				frames[i] = RenderFrame(mask, p, i)
				rendered.Add(1)
			}
		}()
	}

	for i := 0; i < total; i++ {
		frameChan <- i
	}
	close(frameChan)

	wg.Wait()
	close(done)

	return frames
}
