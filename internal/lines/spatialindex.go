package lines

import "math"

// estimatedPointsPerCell sizes the initial grid allocation.
const estimatedPointsPerCell = 4

// SpatialIndex accelerates fixed-radius neighbourhood queries over a point
// cloud using a regular 3D grid. Cell size should equal the query radius so a
// 3x3x3 cell search covers the full ball around any query point.
//
// The index is built once over an immutable backing slice; callers that
// remove points over time filter query results through their own liveness
// flags instead of rebuilding.
type SpatialIndex struct {
	CellSize float64
	Grid     map[cellKey][]int
}

type cellKey struct {
	x, y, z int64
}

// NewSpatialIndex creates a spatial index with the specified cell size.
func NewSpatialIndex(cellSize float64) *SpatialIndex {
	return &SpatialIndex{
		CellSize: cellSize,
		Grid:     make(map[cellKey][]int),
	}
}

// Build populates the index from a point slice. Within a cell, indices keep
// the input order so queries are deterministic.
func (si *SpatialIndex) Build(points []Point) {
	si.Grid = make(map[cellKey][]int, len(points)/estimatedPointsPerCell+1)
	for i, p := range points {
		k := si.cellOf(p)
		si.Grid[k] = append(si.Grid[k], i)
	}
}

func (si *SpatialIndex) cellOf(p Point) cellKey {
	return cellKey{
		x: int64(math.Floor(p.X / si.CellSize)),
		y: int64(math.Floor(p.Y / si.CellSize)),
		z: int64(math.Floor(p.Z / si.CellSize)),
	}
}

// Neighbors returns indices of all points strictly within radius of
// points[idx], including idx itself. alive may be nil to consider every
// point; otherwise tombstoned points are skipped. radius must not exceed
// CellSize or the 3x3x3 search will miss points.
//
// The strict less-than comparison matters: boundary points are excluded, and
// fixtures rely on that.
func (si *SpatialIndex) Neighbors(points []Point, alive []bool, idx int, radius float64) []int {
	center := points[idx]
	base := si.cellOf(center)
	r2 := radius * radius

	var neighbors []int
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for dz := int64(-1); dz <= 1; dz++ {
				k := cellKey{base.x + dx, base.y + dy, base.z + dz}
				for _, j := range si.Grid[k] {
					if alive != nil && !alive[j] {
						continue
					}
					d := points[j].Sub(center)
					if d.Dot(d) < r2 {
						neighbors = append(neighbors, j)
					}
				}
			}
		}
	}
	return neighbors
}
