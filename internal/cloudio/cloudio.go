// Package cloudio loads point clouds from, and writes extraction results to,
// row-oriented CSV files. The core algorithm in internal/lines performs no
// I/O; this package is the boundary where malformed sources are rejected.
package cloudio

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/banshee-data/edgelines/internal/lines"
)

// segmentHeader is the column layout for segment CSV files.
var segmentHeader = []string{"x1", "y1", "z1", "x2", "y2", "z2"}

// ReadPointsCSV loads a point cloud from a CSV file. See ReadPoints for the
// expected layout.
func ReadPointsCSV(path string) ([]lines.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open point cloud: %w", err)
	}
	defer f.Close()

	points, err := ReadPoints(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return points, nil
}

// ReadPoints parses a point cloud from CSV data. The first row must be a
// header naming x, y and z columns (case-insensitive, any order); extra
// columns are ignored. Every coordinate must parse as a finite number.
func ReadPoints(r io.Reader) ([]lines.Point, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("point cloud file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	xi, yi, zi := -1, -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "x":
			xi = i
		case "y":
			yi = i
		case "z":
			zi = i
		}
	}
	if xi < 0 || yi < 0 || zi < 0 {
		return nil, fmt.Errorf("header must name x, y and z columns, got %v", header)
	}

	var points []lines.Point
	row := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		p := lines.Point{}
		for _, c := range []struct {
			idx  int
			name string
			dst  *float64
		}{{xi, "x", &p.X}, {yi, "y", &p.Y}, {zi, "z", &p.Z}} {
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[c.idx]), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: bad %s value %q", row, c.name, rec[c.idx])
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("row %d: non-finite %s value %q", row, c.name, rec[c.idx])
			}
			*c.dst = v
		}
		points = append(points, p)
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("point cloud contains no data rows")
	}
	return points, nil
}

// WritePoints writes a point cloud as CSV with an x,y,z header.
func WritePoints(w io.Writer, points []lines.Point) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"x", "y", "z"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, p := range points {
		rec := []string{formatCoord(p.X), formatCoord(p.Y), formatCoord(p.Z)}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write point: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSegmentsCSV writes segments to a CSV file, one row of endpoint
// coordinates per segment in discovery order.
func WriteSegmentsCSV(path string, segments []lines.Segment) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create segments file: %w", err)
	}
	defer f.Close()

	if err := WriteSegments(f, segments); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// WriteSegments writes segments as CSV rows x1,y1,z1,x2,y2,z2.
func WriteSegments(w io.Writer, segments []lines.Segment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(segmentHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, s := range segments {
		rec := []string{
			formatCoord(s.Start.X), formatCoord(s.Start.Y), formatCoord(s.Start.Z),
			formatCoord(s.End.X), formatCoord(s.End.Y), formatCoord(s.End.Z),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write segment: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadSegmentsCSV loads segments previously written by WriteSegmentsCSV.
func ReadSegmentsCSV(path string) ([]lines.Segment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open segments: %w", err)
	}
	defer f.Close()

	segments, err := ReadSegments(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return segments, nil
}

// ReadSegments parses segments from CSV data with a x1..z2 header.
func ReadSegments(r io.Reader) ([]lines.Segment, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("segments file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) < len(segmentHeader) {
		return nil, fmt.Errorf("expected header %v, got %v", segmentHeader, header)
	}

	var segments []lines.Segment
	row := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		vals := make([]float64, len(segmentHeader))
		for i := range vals {
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[i]), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: bad %s value %q", row, segmentHeader[i], rec[i])
			}
			vals[i] = v
		}
		segments = append(segments, lines.Segment{
			Start: lines.Point{X: vals[0], Y: vals[1], Z: vals[2]},
			End:   lines.Point{X: vals[3], Y: vals[4], Z: vals[5]},
		})
	}
	return segments, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
