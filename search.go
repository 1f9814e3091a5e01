package bmpmark

import (
	"sync/atomic"

	"github.com/bodgit/bmpmark/grid"
	"github.com/bodgit/bmpmark/marker"
	"golang.org/x/sync/errgroup"
)

// Origin is the top left corner of a marker.
type Origin struct {
	Row, Col int
}

type band struct {
	start, end int // [start, end)
}

type bandResult struct {
	origin Origin
	found  bool
	err    error
}

// Split n rows into at most workers contiguous bands whose sizes differ by
// no more than one.
func partition(n, workers int) []band {
	if workers > n {
		workers = n
	}
	if workers < 1 {
		return nil
	}

	bands := make([]band, workers)
	size, extra := n/workers, n%workers
	start := 0
	for i := range bands {
		end := start + size
		if i < extra {
			end++
		}
		bands[i] = band{start, end}
		start = end
	}
	return bands
}

// stopAt lowers the shared stop index to i unless an earlier band has
// already stopped.
func stopAt(stop *atomic.Int64, i int) {
	for {
		cur := stop.Load()
		if cur <= int64(i) || stop.CompareAndSwap(cur, int64(i)) {
			return
		}
	}
}

func (d *Decoder) scanBand(g *grid.Grid, i int, b band, cols int, stop *atomic.Int64) bandResult {
	for row := b.start; row < b.end; row++ {
		// An earlier band has a result so nothing found here can win
		if stop.Load() < int64(i) {
			return bandResult{}
		}
		for col := 0; col < cols; col++ {
			ok, err := d.matcher.Match(g, row, col)
			if err != nil {
				stopAt(stop, i)
				return bandResult{err: err}
			}
			if ok {
				stopAt(stop, i)
				return bandResult{origin: Origin{row, col}, found: true}
			}
		}
	}
	return bandResult{}
}

// FindMarker returns the origin of the first marker in g in row-major
// order. The rows are split into bands that are searched concurrently, a
// band stops as soon as an earlier band has found a marker. The result
// doesn't depend on the number of workers or the order in which they
// finish.
func (d *Decoder) FindMarker(g *grid.Grid) (Origin, bool, error) {
	rows, cols := g.Height()-marker.Size+1, g.Width()-marker.Size+1
	if rows < 1 || cols < 1 {
		return Origin{}, false, nil
	}

	bands := partition(rows, d.workers)
	d.logger.Printf("Searching %d rows with %d workers\n", rows, len(bands))

	var stop atomic.Int64
	stop.Store(int64(len(bands)))

	results := make([]bandResult, len(bands))

	var eg errgroup.Group
	for i, b := range bands {
		i, b := i, b
		eg.Go(func() error {
			results[i] = d.scanBand(g, i, b, cols, &stop)
			return nil
		})
	}
	_ = eg.Wait()

	for i, r := range results {
		if r.err != nil {
			return Origin{}, false, r.err
		}
		if r.found {
			d.logger.Printf("Band %d (rows %d-%d) has the marker\n", i, bands[i].start, bands[i].end-1)
			return r.origin, true, nil
		}
	}

	return Origin{}, false, nil
}
