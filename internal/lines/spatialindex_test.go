package lines

import (
	"math/rand"
	"sort"
	"testing"
)

func randomCloud(rng *rand.Rand, n int, extent float64) []Point {
	points := make([]Point, n)
	for i := range points {
		points[i] = Point{
			X: (rng.Float64() - 0.5) * extent,
			Y: (rng.Float64() - 0.5) * extent,
			Z: (rng.Float64() - 0.5) * extent,
		}
	}
	return points
}

// bruteNeighbors is the reference implementation: a full scan with the same
// strict less-than radius comparison as the index.
func bruteNeighbors(points []Point, alive []bool, idx int, radius float64) []int {
	var out []int
	for j, p := range points {
		if alive != nil && !alive[j] {
			continue
		}
		if p.Dist(points[idx]) < radius {
			out = append(out, j)
		}
	}
	return out
}

func TestSpatialIndex_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	points := randomCloud(rng, 400, 10.0)
	radius := 0.8

	index := NewSpatialIndex(radius)
	index.Build(points)

	for idx := 0; idx < len(points); idx += 13 {
		got := index.Neighbors(points, nil, idx, radius)
		want := bruteNeighbors(points, nil, idx, radius)

		sort.Ints(got)
		sort.Ints(want)
		if len(got) != len(want) {
			t.Fatalf("point %d: got %d neighbors, want %d", idx, len(got), len(want))
		}
		for i := range got {
			if got[i] != want[i] {
				t.Fatalf("point %d: neighbor mismatch at %d: got %d want %d", idx, i, got[i], want[i])
			}
		}
	}
}

func TestSpatialIndex_RespectsAliveFlags(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	points := randomCloud(rng, 200, 5.0)
	radius := 1.0

	alive := make([]bool, len(points))
	for i := range alive {
		alive[i] = i%3 != 0
	}
	// Keep the query point itself alive.
	alive[42] = true

	index := NewSpatialIndex(radius)
	index.Build(points)

	got := index.Neighbors(points, alive, 42, radius)
	for _, j := range got {
		if !alive[j] {
			t.Errorf("returned tombstoned point %d", j)
		}
	}

	want := bruteNeighbors(points, alive, 42, radius)
	if len(got) != len(want) {
		t.Errorf("got %d live neighbors, want %d", len(got), len(want))
	}
}

func TestSpatialIndex_IncludesQueryPoint(t *testing.T) {
	points := []Point{{X: 0}, {X: 10}, {X: 20}}
	index := NewSpatialIndex(1.0)
	index.Build(points)

	got := index.Neighbors(points, nil, 1, 1.0)
	if len(got) != 1 || got[0] != 1 {
		t.Errorf("expected only the query point, got %v", got)
	}
}

func TestSpatialIndex_StrictRadius(t *testing.T) {
	// A point exactly on the radius boundary is excluded.
	points := []Point{{X: 0}, {X: 1}, {X: 0.999}}
	index := NewSpatialIndex(1.0)
	index.Build(points)

	got := index.Neighbors(points, nil, 0, 1.0)
	sort.Ints(got)
	if len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Errorf("expected [0 2] (boundary point excluded), got %v", got)
	}
}

func TestSpatialIndex_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	points := randomCloud(rng, 300, 8.0)

	index := NewSpatialIndex(0.9)
	index.Build(points)

	first := index.Neighbors(points, nil, 17, 0.9)
	for run := 0; run < 5; run++ {
		again := index.Neighbors(points, nil, 17, 0.9)
		if len(again) != len(first) {
			t.Fatalf("run %d: length changed: %d vs %d", run, len(again), len(first))
		}
		for i := range again {
			if again[i] != first[i] {
				t.Fatalf("run %d: order changed at %d", run, i)
			}
		}
	}
}
