package lines

import "math"

// Point is one sample in an unordered 3D point cloud. Points carry no identity
// beyond their position; duplicates are permitted.
type Point struct {
	X, Y, Z float64
}

// Add returns p + q componentwise.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y, p.Z + q.Z}
}

// Sub returns p - q componentwise.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

// Scale returns p scaled by s.
func (p Point) Scale(s float64) Point {
	return Point{p.X * s, p.Y * s, p.Z * s}
}

// Dot returns the dot product of p and q as position vectors.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y + p.Z*q.Z
}

// Cross returns the cross product p × q.
func (p Point) Cross(q Point) Point {
	return Point{
		p.Y*q.Z - p.Z*q.Y,
		p.Z*q.X - p.X*q.Z,
		p.X*q.Y - p.Y*q.X,
	}
}

// Norm returns the Euclidean length of p as a position vector.
func (p Point) Norm() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return p.Sub(q).Norm()
}

// IsFinite reports whether all three coordinates are finite numbers.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0) &&
		!math.IsNaN(p.Z) && !math.IsInf(p.Z, 0)
}

// Segment is a bounded straight line piece between two endpoints. Segments are
// immutable once emitted; Start and End are the extremal projections of the
// supporting inliers onto the fitted line, so the segment spans exactly the
// points that produced it.
type Segment struct {
	Start, End Point
}

// Length returns the Euclidean distance between the segment endpoints.
func (s Segment) Length() float64 {
	return s.End.Dist(s.Start)
}

// Direction returns the unit vector from Start to End, or the zero vector for
// a degenerate zero-length segment. The sign carries no meaning.
func (s Segment) Direction() Point {
	d := s.End.Sub(s.Start)
	n := d.Norm()
	if n == 0 {
		return Point{}
	}
	return d.Scale(1 / n)
}
