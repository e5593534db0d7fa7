package lines

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// ErrInvalidConfig reports extraction parameters or input that cannot produce
// a well-defined run. Callers test for it with errors.Is.
var ErrInvalidConfig = errors.New("invalid extraction configuration")

// Params configures one extraction run. Defaults belong to the calling layer
// (see internal/config); the core never substitutes values.
type Params struct {
	// NeighborhoodRadius bounds the spatial extent of a single segment's
	// supporting neighbourhood.
	NeighborhoodRadius float64
	// MinSamples is the minimum point count both to attempt a fit and to
	// accept its inliers. Must be at least 2: a one-point fit has no
	// defined direction.
	MinSamples int
	// InlierThreshold is the maximum perpendicular distance from the fitted
	// line for a point to count as an inlier.
	InlierThreshold float64
	// MaxIterations caps the number of seed draws, guaranteeing termination
	// even when rejected seeds drain the pool one point at a time.
	MaxIterations int
}

// Validate checks the parameters, returning an ErrInvalidConfig-wrapped error
// describing the first violation. Values are never clamped.
func (p Params) Validate() error {
	if p.NeighborhoodRadius <= 0 || math.IsNaN(p.NeighborhoodRadius) || math.IsInf(p.NeighborhoodRadius, 0) {
		return fmt.Errorf("%w: neighborhood radius must be a positive finite number, got %v", ErrInvalidConfig, p.NeighborhoodRadius)
	}
	if p.MinSamples < 2 {
		return fmt.Errorf("%w: min samples must be at least 2, got %d", ErrInvalidConfig, p.MinSamples)
	}
	if p.InlierThreshold <= 0 || math.IsNaN(p.InlierThreshold) || math.IsInf(p.InlierThreshold, 0) {
		return fmt.Errorf("%w: inlier threshold must be a positive finite number, got %v", ErrInvalidConfig, p.InlierThreshold)
	}
	if p.MaxIterations < 1 {
		return fmt.Errorf("%w: max iterations must be positive, got %d", ErrInvalidConfig, p.MaxIterations)
	}
	return nil
}

// Result carries the output of one extraction run.
type Result struct {
	// Segments in discovery order. The order is not semantically meaningful
	// but is deterministic under a fixed random source.
	Segments []Segment
	// Remaining holds the unclustered points left in the pool at
	// termination, in input order.
	Remaining []Point
	// Iterations is the number of seed draws performed.
	Iterations int
}

// Extractor decomposes an unordered point cloud into short straight segments
// by repeated local RANSAC: draw a random seed, fit a line to its
// neighbourhood, consume the inliers as one segment.
//
// An Extractor is single-use-at-a-time: Extract owns its pool exclusively for
// the duration of a call and keeps no state between calls, so one Extractor
// may run many clouds sequentially.
type Extractor struct {
	params Params
	rng    *rand.Rand
}

// NewExtractor creates an extractor with the given parameters. rng drives
// seed selection; pass a fixed-seed source for reproducible runs. A nil rng
// falls back to a time-seeded source.
func NewExtractor(params Params, rng *rand.Rand) *Extractor {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Extractor{params: params, rng: rng}
}

// Params returns the extractor's parameters.
func (e *Extractor) Params() Params {
	return e.params
}

// Extract runs local RANSAC over the cloud and returns the discovered
// segments. The input slice is not modified.
//
// Each iteration draws one seed uniformly from the pool and gathers the live
// points strictly within NeighborhoodRadius of it. Undersized neighbourhoods
// discard the seed as noise. Otherwise the neighbourhood is fitted with
// FitLine and points strictly within InlierThreshold of the line are
// classified as inliers: enough of them and a segment spanning their extremal
// projections is emitted and the inliers (only the inliers, not the whole
// neighbourhood) leave the pool; too few and only the seed leaves. The loop
// ends when the pool has at most MinSamples points or MaxIterations draws
// have been made.
//
// Invalid parameters, an empty cloud, or non-finite coordinates fail fast
// with an ErrInvalidConfig-wrapped error before any iteration.
func (e *Extractor) Extract(points []Point) (Result, error) {
	if err := e.params.Validate(); err != nil {
		return Result{}, err
	}
	if len(points) == 0 {
		return Result{}, fmt.Errorf("%w: point cloud is empty", ErrInvalidConfig)
	}
	for i, p := range points {
		if !p.IsFinite() {
			return Result{}, fmt.Errorf("%w: point %d has a non-finite coordinate", ErrInvalidConfig, i)
		}
	}

	pl := newPool(points)
	index := NewSpatialIndex(e.params.NeighborhoodRadius)
	index.Build(points)

	var segments []Segment
	iterations := 0

	for pl.size() > e.params.MinSamples && iterations < e.params.MaxIterations {
		iterations++

		seed := pl.draw(e.rng)
		local := index.Neighbors(points, pl.alive, seed, e.params.NeighborhoodRadius)

		if len(local) < e.params.MinSamples {
			// Isolated seed: noise. Drop it and move on.
			pl.remove(seed)
			continue
		}

		localPts := make([]Point, len(local))
		for i, j := range local {
			localPts[i] = points[j]
		}
		anchor, dir := FitLine(localPts)

		inliers := make([]int, 0, len(local))
		tMin, tMax := math.Inf(1), math.Inf(-1)
		for _, j := range local {
			d := points[j].Sub(anchor)
			// dir is unit length, so |d × dir| is the exact perpendicular
			// distance to the fitted line.
			if d.Cross(dir).Norm() < e.params.InlierThreshold {
				inliers = append(inliers, j)
				t := d.Dot(dir)
				if t < tMin {
					tMin = t
				}
				if t > tMax {
					tMax = t
				}
			}
		}

		if len(inliers) < e.params.MinSamples {
			// Degenerate or contested fit. Only the seed is discarded; the
			// rest of the neighbourhood may support a later segment.
			pl.remove(seed)
			continue
		}

		segments = append(segments, Segment{
			Start: anchor.Add(dir.Scale(tMin)),
			End:   anchor.Add(dir.Scale(tMax)),
		})
		for _, j := range inliers {
			pl.remove(j)
		}
	}

	return Result{
		Segments:   segments,
		Remaining:  pl.remaining(),
		Iterations: iterations,
	}, nil
}
