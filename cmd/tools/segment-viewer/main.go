// Command segment-viewer serves an interactive 3D view of extraction results
// over HTTP, either from a persisted run database or from CSV files.
//
// Usage:
//
//	segment-viewer -db runs.db [-run <id>] [-listen :8080]
//	segment-viewer -segments segments.csv [-cloud cloud.csv] [-listen :8080]
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"

	"github.com/banshee-data/edgelines/internal/cloudio"
	"github.com/banshee-data/edgelines/internal/lines"
	"github.com/banshee-data/edgelines/internal/lines/monitor"
	"github.com/banshee-data/edgelines/internal/linesdb"
)

func main() {
	var (
		dbPath       = flag.String("db", "", "run database to read")
		runID        = flag.String("run", "", "run ID within -db (default: latest run)")
		segmentsPath = flag.String("segments", "", "segments CSV (alternative to -db)")
		cloudPath    = flag.String("cloud", "", "optional residual cloud CSV shown behind the segments")
		listen       = flag.String("listen", ":8080", "HTTP listen address")
	)
	flag.Parse()

	title, cloud, segments, err := loadData(*dbPath, *runID, *segmentsPath, *cloudPath)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("serving %d segments and %d cloud points", len(segments), len(cloud))

	http.HandleFunc("/", monitor.CloudHandler(title, cloud, segments))
	log.Printf("listening on %s", *listen)
	log.Fatal(http.ListenAndServe(*listen, nil))
}

func loadData(dbPath, runID, segmentsPath, cloudPath string) (string, []lines.Point, []lines.Segment, error) {
	switch {
	case dbPath != "" && segmentsPath != "":
		return "", nil, nil, fmt.Errorf("-db and -segments are mutually exclusive")
	case dbPath != "":
		return loadFromDB(dbPath, runID, cloudPath)
	case segmentsPath != "":
		return loadFromCSV(segmentsPath, cloudPath)
	}
	return "", nil, nil, fmt.Errorf("one of -db or -segments is required")
}

func loadFromDB(dbPath, runID, cloudPath string) (string, []lines.Point, []lines.Segment, error) {
	db, err := linesdb.Open(dbPath)
	if err != nil {
		return "", nil, nil, fmt.Errorf("open run database: %w", err)
	}
	defer db.Close()

	var run linesdb.Run
	if runID != "" {
		run, err = db.GetRun(runID)
	} else {
		run, err = db.LatestRun()
	}
	if err != nil {
		return "", nil, nil, fmt.Errorf("load run: %w", err)
	}

	segments, err := db.GetSegments(run.ID)
	if err != nil {
		return "", nil, nil, fmt.Errorf("load segments: %w", err)
	}

	cloud, err := optionalCloud(cloudPath)
	if err != nil {
		return "", nil, nil, err
	}

	title := fmt.Sprintf("run %s (%s)", run.ID, run.Source)
	return title, cloud, segments, nil
}

func loadFromCSV(segmentsPath, cloudPath string) (string, []lines.Point, []lines.Segment, error) {
	segments, err := cloudio.ReadSegmentsCSV(segmentsPath)
	if err != nil {
		return "", nil, nil, fmt.Errorf("load segments: %w", err)
	}

	cloud, err := optionalCloud(cloudPath)
	if err != nil {
		return "", nil, nil, err
	}
	return segmentsPath, cloud, segments, nil
}

func optionalCloud(path string) ([]lines.Point, error) {
	if path == "" {
		return nil, nil
	}
	cloud, err := cloudio.ReadPointsCSV(path)
	if err != nil {
		return nil, fmt.Errorf("load cloud: %w", err)
	}
	return cloud, nil
}
