package lines

import (
	"gonum.org/v1/gonum/mat"
)

// FitLine computes the orthogonal least-squares line through a set of points.
// The anchor is the centroid; the direction is the dominant right singular
// vector of the centered coordinate matrix, i.e. the axis of greatest variance.
// The returned direction is unit length with arbitrary sign.
//
// Callers must pass at least one point. With a single point or fully
// coincident input the direction is undefined and an arbitrary unit vector is
// returned; this is never an error, the caller's inlier classification handles
// degenerate fits naturally.
func FitLine(points []Point) (anchor Point, direction Point) {
	n := float64(len(points))
	var sx, sy, sz float64
	for _, p := range points {
		sx += p.X
		sy += p.Y
		sz += p.Z
	}
	anchor = Point{sx / n, sy / n, sz / n}

	centered := mat.NewDense(len(points), 3, nil)
	for i, p := range points {
		centered.Set(i, 0, p.X-anchor.X)
		centered.Set(i, 1, p.Y-anchor.Y)
		centered.Set(i, 2, p.Z-anchor.Z)
	}

	var svd mat.SVD
	if ok := svd.Factorize(centered, mat.SVDThinV); !ok {
		// Factorization only fails on pathological input. Return an arbitrary
		// axis; downstream inlier classification will reject the fit.
		return anchor, Point{X: 1}
	}

	var v mat.Dense
	svd.VTo(&v)
	direction = Point{v.At(0, 0), v.At(1, 0), v.At(2, 0)}

	// Singular vectors are unit length, but guard against a fully degenerate
	// decomposition producing a zero column.
	if direction.Norm() == 0 {
		direction = Point{X: 1}
	}
	return anchor, direction
}
