// Package lines recovers fine-grained linear structure from unordered 3D
// point clouds.
//
// Rather than fitting a few global lines, the extractor works one local
// neighbourhood at a time: it draws a random seed point, fits an orthogonal
// least-squares line to the points around it, and emits a short segment
// spanning the inliers. Consumed points leave the pool, so each point
// contributes to at most one segment and the run terminates once the pool is
// exhausted or the iteration budget is spent.
//
// The package performs no I/O. Loading clouds, persisting runs, and rendering
// results live in internal/cloudio, internal/linesdb, and
// internal/lines/monitor respectively.
package lines
