// Command extract-lines decomposes a CSV point cloud into short straight
// segments and writes the results as CSV, PNG, HTML and/or a sqlite run
// database.
//
// Usage:
//
//	extract-lines -input cloud.csv [-config tuning.json] [-radius 2.0]
//	    [-min-samples 8] [-threshold 0.05] [-max-iterations 5000] [-seed 42]
//	    [-segments-out segments.csv] [-plot out.png] [-proj xy]
//	    [-html view.html] [-db runs.db]
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/banshee-data/edgelines/internal/cloudio"
	"github.com/banshee-data/edgelines/internal/config"
	"github.com/banshee-data/edgelines/internal/lines"
	"github.com/banshee-data/edgelines/internal/lines/monitor"
	"github.com/banshee-data/edgelines/internal/linesdb"
)

func main() {
	var (
		input       = flag.String("input", "", "point cloud CSV with x,y,z columns (required)")
		configPath  = flag.String("config", "", "optional JSON tuning file")
		radius      = flag.Float64("radius", 0, "neighborhood radius (overrides config)")
		minSamples  = flag.Int("min-samples", 0, "minimum samples per fit (overrides config)")
		threshold   = flag.Float64("threshold", 0, "inlier distance threshold (overrides config)")
		maxIter     = flag.Int("max-iterations", 0, "seed draw cap (overrides config)")
		seed        = flag.Int64("seed", 0, "random seed; 0 means time-seeded (overrides config)")
		segmentsOut = flag.String("segments-out", "", "write segments CSV to this path")
		plotOut     = flag.String("plot", "", "write a PNG projection to this path")
		projName    = flag.String("proj", "xy", "plot projection: xy, xz or yz")
		htmlOut     = flag.String("html", "", "write an interactive 3D HTML view to this path")
		dbPath      = flag.String("db", "", "persist the run to this sqlite database")
	)
	flag.Parse()

	if *input == "" {
		flag.Usage()
		log.Fatal("missing required -input")
	}

	cfg := config.EmptyExtractionConfig()
	if *configPath != "" {
		loaded, err := config.LoadExtractionConfig(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}

	params := cfg.Params()
	randomSeed := cfg.GetRandomSeed()

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["radius"] {
		params.NeighborhoodRadius = *radius
	}
	if set["min-samples"] {
		params.MinSamples = *minSamples
	}
	if set["threshold"] {
		params.InlierThreshold = *threshold
	}
	if set["max-iterations"] {
		params.MaxIterations = *maxIter
	}
	if set["seed"] {
		randomSeed = *seed
	}

	proj, err := parseProjection(*projName)
	if err != nil {
		log.Fatal(err)
	}

	points, err := cloudio.ReadPointsCSV(*input)
	if err != nil {
		log.Fatalf("load point cloud: %v", err)
	}
	log.Printf("loaded %d points from %s", len(points), *input)

	var rng *rand.Rand
	if randomSeed != 0 {
		rng = rand.New(rand.NewSource(randomSeed))
	}

	started := time.Now()
	result, err := lines.NewExtractor(params, rng).Extract(points)
	if err != nil {
		log.Fatalf("extraction failed: %v", err)
	}
	elapsed := time.Since(started)

	log.Printf("extracted %d segments in %d iterations (%s); %d points unclustered",
		len(result.Segments), result.Iterations, elapsed.Round(time.Millisecond), len(result.Remaining))

	if *segmentsOut != "" {
		if err := cloudio.WriteSegmentsCSV(*segmentsOut, result.Segments); err != nil {
			log.Fatalf("write segments: %v", err)
		}
		log.Printf("wrote segments to %s", *segmentsOut)
	}

	if *plotOut != "" {
		if err := monitor.PlotSegments(result.Remaining, result.Segments, proj, *plotOut); err != nil {
			log.Fatalf("write plot: %v", err)
		}
		log.Printf("wrote plot to %s", *plotOut)
	}

	if *htmlOut != "" {
		if err := writeHTMLView(*htmlOut, *input, result); err != nil {
			log.Fatalf("write HTML view: %v", err)
		}
		log.Printf("wrote 3D view to %s", *htmlOut)
	}

	if *dbPath != "" {
		id, err := persistRun(*dbPath, *input, params, randomSeed, started, elapsed, len(points), result)
		if err != nil {
			log.Fatalf("persist run: %v", err)
		}
		log.Printf("saved run %s to %s", id, *dbPath)
	}
}

func parseProjection(name string) (monitor.Projection, error) {
	switch name {
	case "xy":
		return monitor.ProjectXY, nil
	case "xz":
		return monitor.ProjectXZ, nil
	case "yz":
		return monitor.ProjectYZ, nil
	}
	return 0, fmt.Errorf("unknown projection %q (want xy, xz or yz)", name)
}

func writeHTMLView(path, source string, result lines.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return monitor.RenderCloudHTML(f, source, result.Remaining, result.Segments)
}

func persistRun(dbPath, source string, params lines.Params, randomSeed int64,
	started time.Time, elapsed time.Duration, inputPoints int, result lines.Result) (string, error) {

	db, err := linesdb.Open(dbPath)
	if err != nil {
		return "", err
	}
	defer db.Close()

	return db.SaveRun(linesdb.Run{
		Source:          source,
		Params:          params,
		RandomSeed:      randomSeed,
		StartedAt:       started,
		FinishedAt:      started.Add(elapsed),
		InputPoints:     inputPoints,
		RemainingPoints: len(result.Remaining),
		Iterations:      result.Iterations,
	}, result.Segments)
}
