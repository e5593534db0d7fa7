package lines

import "math/rand"

// pool tracks the shrinking working set over one extraction run. Points never
// move in the backing slice, so indices handed out by the spatial index stay
// valid for the whole run; removal tombstones the entry via the alive flags
// and swap-removes its handle from the order slice, keeping uniform draws and
// removals O(1).
type pool struct {
	pts   []Point
	alive []bool
	order []int // indices of live points, arbitrary order
	pos   []int // pos[i] = location of i in order, -1 once removed
}

func newPool(points []Point) *pool {
	pl := &pool{
		pts:   points,
		alive: make([]bool, len(points)),
		order: make([]int, len(points)),
		pos:   make([]int, len(points)),
	}
	for i := range points {
		pl.alive[i] = true
		pl.order[i] = i
		pl.pos[i] = i
	}
	return pl
}

// size returns the number of live points.
func (pl *pool) size() int {
	return len(pl.order)
}

// draw picks one live point index uniformly at random.
func (pl *pool) draw(rng *rand.Rand) int {
	return pl.order[rng.Intn(len(pl.order))]
}

// remove tombstones point i. Removing an already-removed point is a no-op so
// callers may pass overlapping index sets.
func (pl *pool) remove(i int) {
	if !pl.alive[i] {
		return
	}
	pl.alive[i] = false

	at := pl.pos[i]
	last := len(pl.order) - 1
	moved := pl.order[last]
	pl.order[at] = moved
	pl.pos[moved] = at
	pl.order = pl.order[:last]
	pl.pos[i] = -1
}

// remaining returns the live points in backing-array order.
func (pl *pool) remaining() []Point {
	out := make([]Point, 0, len(pl.order))
	for i, p := range pl.pts {
		if pl.alive[i] {
			out = append(out, p)
		}
	}
	return out
}
